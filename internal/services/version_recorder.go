package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ycode/builder-backend/internal/contenthash"
	"github.com/ycode/builder-backend/internal/layers"
	"github.com/ycode/builder-backend/internal/patch"
	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/requestdata"
	"github.com/ycode/builder-backend/internal/types"
)

// DefaultWriteMarkTTL bounds how long an undo/redo write mark can
// suppress recording if the save it covers never completes.
const DefaultWriteMarkTTL = 10 * time.Second

// VersionRecorder turns draft writes into version records. Recording is a
// secondary audit trail: it never fails the draft save it observes, so
// persistence errors are logged and swallowed.
type VersionRecorder interface {
	// Record diffs currentState against the cached previous state and
	// persists a version when the change is real. Returns the stored
	// record, or nil when recording was skipped (first observation,
	// no-op edit, undo/redo replay, or a swallowed storage failure).
	Record(ctx context.Context, entityType types.EntityType, entityID uuid.UUID, currentState interface{}, extra *types.VersionMetadata) *types.EntityVersion

	// MarkReplayWrite flags the entity's next draft save as an undo/redo
	// replay so Record refreshes the cache instead of recording it.
	MarkReplayWrite(entityType types.EntityType, entityID uuid.UUID)

	// ForgetEntity evicts the entity's diff baseline (session end).
	ForgetEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID)
}

type versionRecorder struct {
	log      *logger.Logger
	versions repos.EntityVersionRepo
	cache    PreviousStateCache
	marks    *writeMarks
	markTTL  time.Duration
}

func NewVersionRecorder(log *logger.Logger, versions repos.EntityVersionRepo, cache PreviousStateCache) VersionRecorder {
	return &versionRecorder{
		log:      log.With("service", "VersionRecorder"),
		versions: versions,
		cache:    cache,
		marks:    newWriteMarks(),
		markTTL:  DefaultWriteMarkTTL,
	}
}

func (r *versionRecorder) MarkReplayWrite(entityType types.EntityType, entityID uuid.UUID) {
	r.marks.Mark(stateKey(entityType, entityID), r.markTTL)
}

func (r *versionRecorder) ForgetEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) {
	if err := r.cache.Delete(ctx, stateKey(entityType, entityID)); err != nil {
		r.log.Warn("Failed to evict previous-state cache entry", "entity_type", entityType, "entity_id", entityID, "error", err)
	}
}

func (r *versionRecorder) Record(ctx context.Context, entityType types.EntityType, entityID uuid.UUID, currentState interface{}, extra *types.VersionMetadata) *types.EntityVersion {
	ctx, span := otel.Tracer("builder-backend").Start(ctx, "versions.record")
	defer span.End()
	span.SetAttributes(
		attribute.String("entity.type", string(entityType)),
		attribute.String("entity.id", entityID.String()),
	)

	log := r.log.With("entity_type", entityType, "entity_id", entityID)
	key := stateKey(entityType, entityID)

	current, err := genericState(currentState)
	if err != nil {
		log.Warn("Could not normalize current state, skipping version", "error", err)
		return nil
	}

	// A save flagged as an undo/redo replay refreshes the baseline and is
	// never re-recorded; the flag is one-shot.
	if r.marks.Clear(key) {
		r.refreshCache(ctx, key, current, log)
		return nil
	}

	previous, found, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Previous-state cache read failed, reseeding baseline", "error", err)
		found = false
	}
	if !found {
		// First observation: nothing to diff against yet.
		r.refreshCache(ctx, key, current, log)
		return nil
	}

	normPrevious := layers.NormalizeAny(previous)
	normCurrent := layers.NormalizeAny(current)

	redoPatch, err := patch.Create(normPrevious, normCurrent)
	if err != nil {
		log.Warn("Diff failed, skipping version", "error", err)
		return nil
	}
	if redoPatch.IsEmpty() {
		return nil
	}
	changes, err := patch.ChangesState(normPrevious, redoPatch)
	if err != nil || !changes {
		if err != nil {
			log.Warn("No-op check failed, skipping version", "error", err)
		}
		return nil
	}

	undoPatch, err := patch.Inverse(normPrevious, redoPatch)
	if err != nil {
		log.Warn("Inverse patch failed, skipping version", "error", err)
		return nil
	}

	redoJSON, err := redoPatch.JSON()
	if err != nil {
		log.Warn("Encode redo patch failed, skipping version", "error", err)
		return nil
	}
	undoJSON, err := undoPatch.JSON()
	if err != nil {
		log.Warn("Encode undo patch failed, skipping version", "error", err)
		return nil
	}

	metadata := r.buildMetadata(entityType, normPrevious, normCurrent, extra)
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		log.Warn("Encode version metadata failed, skipping version", "error", err)
		return nil
	}

	version := &types.EntityVersion{
		EntityType:  entityType,
		EntityID:    entityID,
		ActionType:  types.ActionTypeUpdate,
		Description: patch.Describe(redoPatch),
		Redo:        redoJSON,
		Undo:        undoJSON,
		// Hashes cover the full un-normalized states; they integrity-check
		// the persisted row, not the diff.
		PreviousHash: contenthash.Hash(previous),
		CurrentHash:  contenthash.Hash(current),
		SessionID:    requestdata.SessionID(ctx),
		Metadata:     metadataJSON,
	}

	stored, err := r.versions.Create(ctx, nil, version)
	if err != nil {
		// A missed version degrades undo history; the draft save that
		// triggered recording already succeeded and must not be failed.
		log.Error("Version record persistence failed", "error", err)
		return nil
	}

	r.refreshCache(ctx, key, current, log)
	return stored
}

func (r *versionRecorder) buildMetadata(entityType types.EntityType, normPrevious, normCurrent interface{}, extra *types.VersionMetadata) types.VersionMetadata {
	metadata := types.VersionMetadata{}
	if extra != nil {
		metadata.Selection = extra.Selection
	}

	extracted := layers.Requirements{}
	if entityType.TreeShaped() {
		extracted = layers.ExtractRequirements(
			stateTree(entityType, normPrevious),
			stateTree(entityType, normCurrent),
		)
	}
	merged := extracted
	if extra != nil && extra.Requirements != nil {
		merged = layers.Merge(merged, layers.Requirements{
			ComponentIDs: extra.Requirements.ComponentIDs,
			StyleIDs:     extra.Requirements.StyleIDs,
		})
	}
	if !merged.IsEmpty() {
		metadata.Requirements = &types.VersionRequirements{
			ComponentIDs: merged.ComponentIDs,
			StyleIDs:     merged.StyleIDs,
		}
	}
	return metadata
}

func (r *versionRecorder) refreshCache(ctx context.Context, key StateKey, state interface{}, log *logger.Logger) {
	if err := r.cache.Set(ctx, key, state); err != nil {
		log.Warn("Previous-state cache write failed", "error", err)
	}
}

func stateKey(entityType types.EntityType, entityID uuid.UUID) StateKey {
	return StateKey{EntityType: entityType, EntityID: entityID.String()}
}

// stateTree pulls the layer array out of a tree-shaped entity's state.
func stateTree(entityType types.EntityType, state interface{}) []interface{} {
	switch entityType {
	case types.EntityTypePageLayout:
		if tree, ok := state.([]interface{}); ok {
			return tree
		}
	case types.EntityTypeComponent:
		if wrapper, ok := state.(map[string]interface{}); ok {
			if tree, ok := wrapper["layers"].([]interface{}); ok {
				return tree
			}
		}
	}
	return nil
}

// genericState round-trips a state through JSON so cached and freshly
// decoded states compare uniformly.
func genericState(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
