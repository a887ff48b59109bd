package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ycode/builder-backend/internal/contenthash"
	"github.com/ycode/builder-backend/internal/layers"
	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/types"
)

// ComponentState is the shape the recorder sees for a component: the name
// participates in diffs alongside the subtree.
func ComponentState(name string, tree []interface{}) map[string]interface{} {
	if tree == nil {
		tree = []interface{}{}
	}
	return map[string]interface{}{
		"name":   name,
		"layers": tree,
	}
}

type ComponentService interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*types.Component, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*types.Component, error)
	ListDrafts(ctx context.Context) ([]*types.Component, error)
	CreateDraft(ctx context.Context, name string, tree []interface{}) (*types.Component, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, name string, tree []interface{}, extra *types.VersionMetadata) (*types.Component, error)
	DraftState(ctx context.Context, id uuid.UUID) (map[string]interface{}, error)
	SoftDeleteDraft(ctx context.Context, id uuid.UUID) error
}

type componentService struct {
	log        *logger.Logger
	components repos.ComponentRepo
	recorder   VersionRecorder
}

func NewComponentService(log *logger.Logger, components repos.ComponentRepo, recorder VersionRecorder) ComponentService {
	return &componentService{
		log:        log.With("service", "ComponentService"),
		components: components,
		recorder:   recorder,
	}
}

func (s *componentService) GetDraft(ctx context.Context, id uuid.UUID) (*types.Component, error) {
	return s.components.GetDraftByID(ctx, id)
}

func (s *componentService) GetPublished(ctx context.Context, id uuid.UUID) (*types.Component, error) {
	return s.components.GetPublishedByID(ctx, id)
}

func (s *componentService) ListDrafts(ctx context.Context) ([]*types.Component, error) {
	return s.components.ListDrafts(ctx)
}

func (s *componentService) CreateDraft(ctx context.Context, name string, tree []interface{}) (*types.Component, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode layer tree: %w", err)
	}
	component := &types.Component{
		ID:     uuid.New(),
		Name:   name,
		Layers: datatypes.JSON(raw),
	}
	component.ContentHash = contenthash.HashMap(component.ContentFingerprint())
	created, err := s.components.CreateDraft(ctx, nil, component)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, types.EntityTypeComponent, created.ID, ComponentState(name, tree), nil)
	return created, nil
}

func (s *componentService) UpdateDraft(ctx context.Context, id uuid.UUID, name string, tree []interface{}, extra *types.VersionMetadata) (*types.Component, error) {
	component, err := s.components.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, ErrEntityNotFound
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode layer tree: %w", err)
	}
	component.Name = name
	component.Layers = datatypes.JSON(raw)
	component.ContentHash = contenthash.HashMap(component.ContentFingerprint())
	updated, err := s.components.UpdateDraft(ctx, nil, component)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, types.EntityTypeComponent, id, ComponentState(name, tree), extra)
	return updated, nil
}

func (s *componentService) DraftState(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	component, err := s.components.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, ErrEntityNotFound
	}
	tree, err := layers.Decode(component.Layers)
	if err != nil {
		return nil, err
	}
	return ComponentState(component.Name, tree), nil
}

func (s *componentService) SoftDeleteDraft(ctx context.Context, id uuid.UUID) error {
	return s.components.SoftDeleteDraft(ctx, nil, id)
}
