package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type ComponentRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Component, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Component, error)
	ListDrafts(ctx context.Context) ([]*types.Component, error)
	ListPublished(ctx context.Context) ([]*types.Component, error)
	DraftExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, component *types.Component) (*types.Component, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, component *types.Component) (*types.Component, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type componentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComponentRepo(db *gorm.DB, baseLog *logger.Logger) ComponentRepo {
	return &componentRepo{db: db, log: baseLog.With("repo", "ComponentRepo")}
}

func (r *componentRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Component, error) {
	return fetchOne[types.Component](ctx, r.db, id, false, false)
}

func (r *componentRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Component, error) {
	return fetchOne[types.Component](ctx, r.db, id, true, false)
}

func (r *componentRepo) ListDrafts(ctx context.Context) ([]*types.Component, error) {
	return fetchAll[types.Component](ctx, r.db, false, false)
}

func (r *componentRepo) ListPublished(ctx context.Context) ([]*types.Component, error) {
	return fetchAll[types.Component](ctx, r.db, true, false)
}

func (r *componentRepo) DraftExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsDraft[types.Component](ctx, r.db, id)
}

func (r *componentRepo) CreateDraft(ctx context.Context, tx *gorm.DB, component *types.Component) (*types.Component, error) {
	component.IsPublished = false
	return createRow(ctx, r.db, tx, component)
}

func (r *componentRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, component *types.Component) (*types.Component, error) {
	component.IsPublished = false
	return saveRow(ctx, r.db, tx, component)
}

func (r *componentRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Component](ctx, r.db, tx, id)
}
