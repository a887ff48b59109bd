package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ycode/builder-backend/internal/contenthash"
	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/types"
)

// SharedStyleState is the recorder's view of a shared style: a plain
// object, so patches address properties by key.
func SharedStyleState(name, selector string, properties interface{}) map[string]interface{} {
	return map[string]interface{}{
		"name":       name,
		"selector":   selector,
		"properties": properties,
	}
}

type SharedStyleService interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error)
	ListDrafts(ctx context.Context) ([]*types.SharedStyle, error)
	CreateDraft(ctx context.Context, name, selector string, properties map[string]interface{}) (*types.SharedStyle, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, name, selector string, properties map[string]interface{}, extra *types.VersionMetadata) (*types.SharedStyle, error)
	DraftState(ctx context.Context, id uuid.UUID) (map[string]interface{}, error)
	SoftDeleteDraft(ctx context.Context, id uuid.UUID) error
}

type sharedStyleService struct {
	log      *logger.Logger
	styles   repos.SharedStyleRepo
	recorder VersionRecorder
}

func NewSharedStyleService(log *logger.Logger, styles repos.SharedStyleRepo, recorder VersionRecorder) SharedStyleService {
	return &sharedStyleService{
		log:      log.With("service", "SharedStyleService"),
		styles:   styles,
		recorder: recorder,
	}
}

func (s *sharedStyleService) GetDraft(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error) {
	return s.styles.GetDraftByID(ctx, id)
}

func (s *sharedStyleService) GetPublished(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error) {
	return s.styles.GetPublishedByID(ctx, id)
}

func (s *sharedStyleService) ListDrafts(ctx context.Context) ([]*types.SharedStyle, error) {
	return s.styles.ListDrafts(ctx)
}

func (s *sharedStyleService) CreateDraft(ctx context.Context, name, selector string, properties map[string]interface{}) (*types.SharedStyle, error) {
	raw, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("encode style properties: %w", err)
	}
	style := &types.SharedStyle{
		ID:         uuid.New(),
		Name:       name,
		Selector:   selector,
		Properties: datatypes.JSON(raw),
	}
	style.ContentHash = contenthash.HashMap(style.ContentFingerprint())
	created, err := s.styles.CreateDraft(ctx, nil, style)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, types.EntityTypeSharedStyle, created.ID, SharedStyleState(name, selector, properties), nil)
	return created, nil
}

func (s *sharedStyleService) UpdateDraft(ctx context.Context, id uuid.UUID, name, selector string, properties map[string]interface{}, extra *types.VersionMetadata) (*types.SharedStyle, error) {
	style, err := s.styles.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, ErrEntityNotFound
	}
	raw, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("encode style properties: %w", err)
	}
	style.Name = name
	style.Selector = selector
	style.Properties = datatypes.JSON(raw)
	style.ContentHash = contenthash.HashMap(style.ContentFingerprint())
	updated, err := s.styles.UpdateDraft(ctx, nil, style)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, types.EntityTypeSharedStyle, id, SharedStyleState(name, selector, properties), extra)
	return updated, nil
}

func (s *sharedStyleService) DraftState(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	style, err := s.styles.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, ErrEntityNotFound
	}
	var properties interface{}
	if len(style.Properties) > 0 {
		if err := json.Unmarshal(style.Properties, &properties); err != nil {
			return nil, fmt.Errorf("decode style properties: %w", err)
		}
	}
	return SharedStyleState(style.Name, style.Selector, properties), nil
}

func (s *sharedStyleService) SoftDeleteDraft(ctx context.Context, id uuid.UUID) error {
	return s.styles.SoftDeleteDraft(ctx, nil, id)
}
