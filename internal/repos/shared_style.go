package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type SharedStyleRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error)
	ListDrafts(ctx context.Context) ([]*types.SharedStyle, error)
	ListPublished(ctx context.Context) ([]*types.SharedStyle, error)
	DraftExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type sharedStyleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSharedStyleRepo(db *gorm.DB, baseLog *logger.Logger) SharedStyleRepo {
	return &sharedStyleRepo{db: db, log: baseLog.With("repo", "SharedStyleRepo")}
}

func (r *sharedStyleRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error) {
	return fetchOne[types.SharedStyle](ctx, r.db, id, false, false)
}

func (r *sharedStyleRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.SharedStyle, error) {
	return fetchOne[types.SharedStyle](ctx, r.db, id, true, false)
}

func (r *sharedStyleRepo) ListDrafts(ctx context.Context) ([]*types.SharedStyle, error) {
	return fetchAll[types.SharedStyle](ctx, r.db, false, false)
}

func (r *sharedStyleRepo) ListPublished(ctx context.Context) ([]*types.SharedStyle, error) {
	return fetchAll[types.SharedStyle](ctx, r.db, true, false)
}

func (r *sharedStyleRepo) DraftExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsDraft[types.SharedStyle](ctx, r.db, id)
}

func (r *sharedStyleRepo) CreateDraft(ctx context.Context, tx *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error) {
	style.IsPublished = false
	return createRow(ctx, r.db, tx, style)
}

func (r *sharedStyleRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error) {
	style.IsPublished = false
	return saveRow(ctx, r.db, tx, style)
}

func (r *sharedStyleRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.SharedStyle](ctx, r.db, tx, id)
}
