package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type PageLayoutRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.PageLayout, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.PageLayout, error)
	GetDraftForPage(ctx context.Context, pageID, localeID uuid.UUID) (*types.PageLayout, error)
	ListDrafts(ctx context.Context) ([]*types.PageLayout, error)
	ListPublished(ctx context.Context) ([]*types.PageLayout, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pageLayoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageLayoutRepo(db *gorm.DB, baseLog *logger.Logger) PageLayoutRepo {
	return &pageLayoutRepo{db: db, log: baseLog.With("repo", "PageLayoutRepo")}
}

func (r *pageLayoutRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.PageLayout, error) {
	return fetchOne[types.PageLayout](ctx, r.db, id, false, false)
}

func (r *pageLayoutRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.PageLayout, error) {
	return fetchOne[types.PageLayout](ctx, r.db, id, true, false)
}

func (r *pageLayoutRepo) GetDraftForPage(ctx context.Context, pageID, localeID uuid.UUID) (*types.PageLayout, error) {
	var out types.PageLayout
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND locale_id = ? AND is_published = ?", pageID, localeID, false).
		First(&out).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *pageLayoutRepo) ListDrafts(ctx context.Context) ([]*types.PageLayout, error) {
	return fetchAll[types.PageLayout](ctx, r.db, false, false)
}

func (r *pageLayoutRepo) ListPublished(ctx context.Context) ([]*types.PageLayout, error) {
	return fetchAll[types.PageLayout](ctx, r.db, true, false)
}

func (r *pageLayoutRepo) CreateDraft(ctx context.Context, tx *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error) {
	layout.IsPublished = false
	return createRow(ctx, r.db, tx, layout)
}

func (r *pageLayoutRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error) {
	layout.IsPublished = false
	return saveRow(ctx, r.db, tx, layout)
}

func (r *pageLayoutRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.PageLayout](ctx, r.db, tx, id)
}
