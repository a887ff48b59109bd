package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ycode/builder-backend/internal/contenthash"
	"github.com/ycode/builder-backend/internal/patch"
	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/requestdata"
	"github.com/ycode/builder-backend/internal/types"
)

// UndoRedoService walks an entity's version history for the current
// editing session. Undo applies the version's inverse patch to the draft,
// redo the forward patch; both suppress re-recording of the resulting
// write and refuse to apply a patch whose requirements no longer resolve.
type UndoRedoService interface {
	Undo(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) (*types.EntityVersion, error)
	Redo(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) (*types.EntityVersion, error)
	// EndSession drops the session's cursors.
	EndSession(sessionID uuid.UUID)
}

type cursorKey struct {
	SessionID  uuid.UUID
	EntityType types.EntityType
	EntityID   uuid.UUID
}

type undoRedoService struct {
	log        *logger.Logger
	versions   repos.EntityVersionRepo
	recorder   VersionRecorder
	layouts    PageLayoutService
	components ComponentService
	styles     SharedStyleService

	componentRepo repos.ComponentRepo
	styleRepo     repos.SharedStyleRepo

	// verifyHashes enables the previous_hash/current_hash integrity check
	// before applying a patch.
	verifyHashes bool

	mu      sync.Mutex
	applied map[cursorKey]int
}

func NewUndoRedoService(
	log *logger.Logger,
	versions repos.EntityVersionRepo,
	recorder VersionRecorder,
	layouts PageLayoutService,
	components ComponentService,
	styles SharedStyleService,
	componentRepo repos.ComponentRepo,
	styleRepo repos.SharedStyleRepo,
	verifyHashes bool,
) UndoRedoService {
	return &undoRedoService{
		log:           log.With("service", "UndoRedoService"),
		versions:      versions,
		recorder:      recorder,
		layouts:       layouts,
		components:    components,
		styles:        styles,
		componentRepo: componentRepo,
		styleRepo:     styleRepo,
		verifyHashes:  verifyHashes,
		applied:       map[cursorKey]int{},
	}
}

func (s *undoRedoService) Undo(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) (*types.EntityVersion, error) {
	return s.step(ctx, entityType, entityID, true)
}

func (s *undoRedoService) Redo(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) (*types.EntityVersion, error) {
	return s.step(ctx, entityType, entityID, false)
}

func (s *undoRedoService) EndSession(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.applied {
		if key.SessionID == sessionID {
			delete(s.applied, key)
		}
	}
}

func (s *undoRedoService) step(ctx context.Context, entityType types.EntityType, entityID uuid.UUID, undo bool) (*types.EntityVersion, error) {
	operation := "redo"
	if undo {
		operation = "undo"
	}
	ctx, span := otel.Tracer("builder-backend").Start(ctx, "versions."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("entity.type", string(entityType)),
		attribute.String("entity.id", entityID.String()),
	)

	if !entityType.Recordable() {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotRecordable, entityType)
	}

	history, err := s.versions.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("load version history: %w", err)
	}

	key := cursorKey{SessionID: requestdata.SessionID(ctx), EntityType: entityType, EntityID: entityID}
	position := s.position(key, len(history))

	var version *types.EntityVersion
	if undo {
		if position == 0 {
			return nil, ErrNothingToUndo
		}
		version = history[position-1]
	} else {
		if position >= len(history) {
			return nil, ErrNothingToRedo
		}
		version = history[position]
	}

	if err := s.checkRequirements(ctx, version); err != nil {
		return nil, err
	}

	state, err := s.draftState(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	if s.verifyHashes {
		expected := version.CurrentHash
		if !undo {
			expected = version.PreviousHash
		}
		if expected != "" && contenthash.Hash(state) != expected {
			return nil, fmt.Errorf("%w (version %s)", ErrHashMismatch, version.ID)
		}
	}

	rawPatch := version.Undo
	if !undo {
		rawPatch = version.Redo
	}
	p, err := patch.FromJSON(rawPatch)
	if err != nil {
		return nil, fmt.Errorf("decode %s patch: %w", operation, err)
	}
	next, err := patch.Apply(state, p)
	if err != nil {
		return nil, fmt.Errorf("apply %s patch: %w", operation, err)
	}

	// The resulting save is a replay, not a new edit; flag it so the
	// recorder refreshes its baseline instead of recording. The flag
	// auto-expires if the save dies before reaching the recorder.
	s.recorder.MarkReplayWrite(entityType, entityID)

	if err := s.saveDraftState(ctx, entityType, entityID, next); err != nil {
		return nil, fmt.Errorf("persist %s result: %w", operation, err)
	}

	s.mu.Lock()
	if undo {
		s.applied[key] = position - 1
	} else {
		s.applied[key] = position + 1
	}
	s.mu.Unlock()

	return version, nil
}

func (s *undoRedoService) position(key cursorKey, historyLen int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	position, ok := s.applied[key]
	if !ok || position > historyLen {
		// First touch in this session, or history grew underneath the
		// cursor: everything recorded so far counts as applied.
		position = historyLen
		s.applied[key] = position
	}
	return position
}

// checkRequirements refuses the operation when a component or style the
// patch needs has been deleted; applying it anyway would leave dangling
// references in the tree.
func (s *undoRedoService) checkRequirements(ctx context.Context, version *types.EntityVersion) error {
	meta, err := version.DecodedMetadata()
	if err != nil {
		return fmt.Errorf("decode version metadata: %w", err)
	}
	if meta.Requirements == nil {
		return nil
	}
	for _, raw := range meta.Requirements.ComponentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: component %q", ErrMissingRequirement, raw)
		}
		exists, err := s.componentRepo.DraftExists(ctx, id)
		if err != nil {
			return fmt.Errorf("resolve component requirement %s: %w", raw, err)
		}
		if !exists {
			return fmt.Errorf("%w: component %s", ErrMissingRequirement, raw)
		}
	}
	for _, raw := range meta.Requirements.StyleIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: style %q", ErrMissingRequirement, raw)
		}
		exists, err := s.styleRepo.DraftExists(ctx, id)
		if err != nil {
			return fmt.Errorf("resolve style requirement %s: %w", raw, err)
		}
		if !exists {
			return fmt.Errorf("%w: style %s", ErrMissingRequirement, raw)
		}
	}
	return nil
}

func (s *undoRedoService) draftState(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) (interface{}, error) {
	switch entityType {
	case types.EntityTypePageLayout:
		return s.layouts.DraftState(ctx, entityID)
	case types.EntityTypeComponent:
		return s.components.DraftState(ctx, entityID)
	case types.EntityTypeSharedStyle:
		return s.styles.DraftState(ctx, entityID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrEntityNotRecordable, entityType)
	}
}

func (s *undoRedoService) saveDraftState(ctx context.Context, entityType types.EntityType, entityID uuid.UUID, state interface{}) error {
	switch entityType {
	case types.EntityTypePageLayout:
		tree, ok := state.([]interface{})
		if !ok {
			return fmt.Errorf("layout state is %T, expected layer array", state)
		}
		_, err := s.layouts.UpdateDraftLayers(ctx, entityID, tree, nil)
		return err

	case types.EntityTypeComponent:
		wrapper, ok := state.(map[string]interface{})
		if !ok {
			return fmt.Errorf("component state is %T, expected object", state)
		}
		name, _ := wrapper["name"].(string)
		tree, _ := wrapper["layers"].([]interface{})
		_, err := s.components.UpdateDraft(ctx, entityID, name, tree, nil)
		return err

	case types.EntityTypeSharedStyle:
		wrapper, ok := state.(map[string]interface{})
		if !ok {
			return fmt.Errorf("style state is %T, expected object", state)
		}
		name, _ := wrapper["name"].(string)
		selector, _ := wrapper["selector"].(string)
		properties, _ := wrapper["properties"].(map[string]interface{})
		_, err := s.styles.UpdateDraft(ctx, entityID, name, selector, properties, nil)
		return err

	default:
		return fmt.Errorf("%w: %s", ErrEntityNotRecordable, entityType)
	}
}
