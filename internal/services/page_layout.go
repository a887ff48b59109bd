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

// PageLayoutService is the editor's write path for page layer trees.
// Every successful draft save is offered to the version recorder; the
// recorder decides whether it becomes a version.
type PageLayoutService interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*types.PageLayout, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*types.PageLayout, error)
	ListDrafts(ctx context.Context) ([]*types.PageLayout, error)
	CreateDraft(ctx context.Context, pageID, localeID uuid.UUID, tree []interface{}) (*types.PageLayout, error)
	// UpdateDraftLayers persists a new layer tree and records a version.
	UpdateDraftLayers(ctx context.Context, id uuid.UUID, tree []interface{}, extra *types.VersionMetadata) (*types.PageLayout, error)
	// DraftState returns the layer tree in the shape the recorder and the
	// undo/redo controller operate on.
	DraftState(ctx context.Context, id uuid.UUID) ([]interface{}, error)
	SoftDeleteDraft(ctx context.Context, id uuid.UUID) error
}

type pageLayoutService struct {
	log      *logger.Logger
	layouts  repos.PageLayoutRepo
	recorder VersionRecorder
}

func NewPageLayoutService(log *logger.Logger, layouts repos.PageLayoutRepo, recorder VersionRecorder) PageLayoutService {
	return &pageLayoutService{
		log:      log.With("service", "PageLayoutService"),
		layouts:  layouts,
		recorder: recorder,
	}
}

func (s *pageLayoutService) GetDraft(ctx context.Context, id uuid.UUID) (*types.PageLayout, error) {
	return s.layouts.GetDraftByID(ctx, id)
}

func (s *pageLayoutService) GetPublished(ctx context.Context, id uuid.UUID) (*types.PageLayout, error) {
	return s.layouts.GetPublishedByID(ctx, id)
}

func (s *pageLayoutService) ListDrafts(ctx context.Context) ([]*types.PageLayout, error) {
	return s.layouts.ListDrafts(ctx)
}

func (s *pageLayoutService) CreateDraft(ctx context.Context, pageID, localeID uuid.UUID, tree []interface{}) (*types.PageLayout, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode layer tree: %w", err)
	}
	layout := &types.PageLayout{
		ID:       uuid.New(),
		PageID:   pageID,
		LocaleID: localeID,
		Layers:   datatypes.JSON(raw),
	}
	layout.ContentHash = contenthash.HashMap(layout.ContentFingerprint())
	created, err := s.layouts.CreateDraft(ctx, nil, layout)
	if err != nil {
		return nil, err
	}
	// Seed the diff baseline so the next edit records a version.
	s.recorder.Record(ctx, types.EntityTypePageLayout, created.ID, tree, nil)
	return created, nil
}

func (s *pageLayoutService) UpdateDraftLayers(ctx context.Context, id uuid.UUID, tree []interface{}, extra *types.VersionMetadata) (*types.PageLayout, error) {
	layout, err := s.layouts.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, ErrEntityNotFound
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode layer tree: %w", err)
	}
	layout.Layers = datatypes.JSON(raw)
	layout.ContentHash = contenthash.HashMap(layout.ContentFingerprint())
	updated, err := s.layouts.UpdateDraft(ctx, nil, layout)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, types.EntityTypePageLayout, id, tree, extra)
	return updated, nil
}

func (s *pageLayoutService) DraftState(ctx context.Context, id uuid.UUID) ([]interface{}, error) {
	layout, err := s.layouts.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, ErrEntityNotFound
	}
	return layers.Decode(layout.Layers)
}

func (s *pageLayoutService) SoftDeleteDraft(ctx context.Context, id uuid.UUID) error {
	return s.layouts.SoftDeleteDraft(ctx, nil, id)
}
