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

// PageService manages page settings drafts. Page rows are versioned for
// publish but their settings edits are not undo/redo tracked; only the
// layer-tree entities go through the recorder.
type PageService interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*types.Page, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*types.Page, error)
	ListDrafts(ctx context.Context) ([]*types.Page, error)
	ListPublished(ctx context.Context) ([]*types.Page, error)
	CreateDraft(ctx context.Context, name, slug string, folderID *uuid.UUID, settings map[string]interface{}) (*types.Page, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, name, slug string, folderID *uuid.UUID, settings map[string]interface{}) (*types.Page, error)
	SoftDeleteDraft(ctx context.Context, id uuid.UUID) error
}

type pageService struct {
	log   *logger.Logger
	pages repos.PageRepo
}

func NewPageService(log *logger.Logger, pages repos.PageRepo) PageService {
	return &pageService{log: log.With("service", "PageService"), pages: pages}
}

func (s *pageService) GetDraft(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	return s.pages.GetDraftByID(ctx, id)
}

func (s *pageService) GetPublished(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	return s.pages.GetPublishedByID(ctx, id)
}

func (s *pageService) ListDrafts(ctx context.Context) ([]*types.Page, error) {
	return s.pages.ListDrafts(ctx)
}

func (s *pageService) ListPublished(ctx context.Context) ([]*types.Page, error) {
	return s.pages.ListPublished(ctx)
}

func (s *pageService) CreateDraft(ctx context.Context, name, slug string, folderID *uuid.UUID, settings map[string]interface{}) (*types.Page, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode page settings: %w", err)
	}
	page := &types.Page{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug,
		FolderID: folderID,
		Settings: datatypes.JSON(raw),
	}
	page.ContentHash = contenthash.HashMap(page.ContentFingerprint())
	return s.pages.CreateDraft(ctx, nil, page)
}

func (s *pageService) UpdateDraft(ctx context.Context, id uuid.UUID, name, slug string, folderID *uuid.UUID, settings map[string]interface{}) (*types.Page, error) {
	page, err := s.pages.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrEntityNotFound
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode page settings: %w", err)
	}
	page.Name = name
	page.Slug = slug
	page.FolderID = folderID
	page.Settings = datatypes.JSON(raw)
	page.ContentHash = contenthash.HashMap(page.ContentFingerprint())
	return s.pages.UpdateDraft(ctx, nil, page)
}

func (s *pageService) SoftDeleteDraft(ctx context.Context, id uuid.UUID) error {
	return s.pages.SoftDeleteDraft(ctx, nil, id)
}
