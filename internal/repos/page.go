package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type PageRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Page, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Page, error)
	ListDrafts(ctx context.Context) ([]*types.Page, error)
	ListPublished(ctx context.Context) ([]*types.Page, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, page *types.Page) (*types.Page, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, page *types.Page) (*types.Page, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo {
	return &pageRepo{db: db, log: baseLog.With("repo", "PageRepo")}
}

func (r *pageRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	return fetchOne[types.Page](ctx, r.db, id, false, false)
}

func (r *pageRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Page, error) {
	return fetchOne[types.Page](ctx, r.db, id, true, false)
}

func (r *pageRepo) ListDrafts(ctx context.Context) ([]*types.Page, error) {
	return fetchAll[types.Page](ctx, r.db, false, false)
}

func (r *pageRepo) ListPublished(ctx context.Context) ([]*types.Page, error) {
	return fetchAll[types.Page](ctx, r.db, true, false)
}

func (r *pageRepo) CreateDraft(ctx context.Context, tx *gorm.DB, page *types.Page) (*types.Page, error) {
	page.IsPublished = false
	return createRow(ctx, r.db, tx, page)
}

func (r *pageRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, page *types.Page) (*types.Page, error) {
	page.IsPublished = false
	return saveRow(ctx, r.db, tx, page)
}

func (r *pageRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Page](ctx, r.db, tx, id)
}
