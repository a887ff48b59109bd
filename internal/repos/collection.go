package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type CollectionRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Collection, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Collection, error)
	ListDrafts(ctx context.Context) ([]*types.Collection, error)
	ListPublished(ctx context.Context) ([]*types.Collection, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, collection *types.Collection) (*types.Collection, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, collection *types.Collection) (*types.Collection, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type collectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionRepo(db *gorm.DB, baseLog *logger.Logger) CollectionRepo {
	return &collectionRepo{db: db, log: baseLog.With("repo", "CollectionRepo")}
}

func (r *collectionRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Collection, error) {
	return fetchOne[types.Collection](ctx, r.db, id, false, false)
}
func (r *collectionRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Collection, error) {
	return fetchOne[types.Collection](ctx, r.db, id, true, false)
}
func (r *collectionRepo) ListDrafts(ctx context.Context) ([]*types.Collection, error) {
	return fetchAll[types.Collection](ctx, r.db, false, false)
}
func (r *collectionRepo) ListPublished(ctx context.Context) ([]*types.Collection, error) {
	return fetchAll[types.Collection](ctx, r.db, true, false)
}
func (r *collectionRepo) CreateDraft(ctx context.Context, tx *gorm.DB, collection *types.Collection) (*types.Collection, error) {
	collection.IsPublished = false
	return createRow(ctx, r.db, tx, collection)
}
func (r *collectionRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, collection *types.Collection) (*types.Collection, error) {
	collection.IsPublished = false
	return saveRow(ctx, r.db, tx, collection)
}
func (r *collectionRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Collection](ctx, r.db, tx, id)
}

type CollectionFieldRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.CollectionField, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.CollectionField, error)
	ListDrafts(ctx context.Context) ([]*types.CollectionField, error)
	ListPublished(ctx context.Context) ([]*types.CollectionField, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, field *types.CollectionField) (*types.CollectionField, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, field *types.CollectionField) (*types.CollectionField, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type collectionFieldRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionFieldRepo(db *gorm.DB, baseLog *logger.Logger) CollectionFieldRepo {
	return &collectionFieldRepo{db: db, log: baseLog.With("repo", "CollectionFieldRepo")}
}

func (r *collectionFieldRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.CollectionField, error) {
	return fetchOne[types.CollectionField](ctx, r.db, id, false, false)
}
func (r *collectionFieldRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.CollectionField, error) {
	return fetchOne[types.CollectionField](ctx, r.db, id, true, false)
}
func (r *collectionFieldRepo) ListDrafts(ctx context.Context) ([]*types.CollectionField, error) {
	return fetchAll[types.CollectionField](ctx, r.db, false, false)
}
func (r *collectionFieldRepo) ListPublished(ctx context.Context) ([]*types.CollectionField, error) {
	return fetchAll[types.CollectionField](ctx, r.db, true, false)
}
func (r *collectionFieldRepo) CreateDraft(ctx context.Context, tx *gorm.DB, field *types.CollectionField) (*types.CollectionField, error) {
	field.IsPublished = false
	return createRow(ctx, r.db, tx, field)
}
func (r *collectionFieldRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, field *types.CollectionField) (*types.CollectionField, error) {
	field.IsPublished = false
	return saveRow(ctx, r.db, tx, field)
}
func (r *collectionFieldRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.CollectionField](ctx, r.db, tx, id)
}

type CollectionItemRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.CollectionItem, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.CollectionItem, error)
	ListDrafts(ctx context.Context) ([]*types.CollectionItem, error)
	ListPublished(ctx context.Context) ([]*types.CollectionItem, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, item *types.CollectionItem) (*types.CollectionItem, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, item *types.CollectionItem) (*types.CollectionItem, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type collectionItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionItemRepo(db *gorm.DB, baseLog *logger.Logger) CollectionItemRepo {
	return &collectionItemRepo{db: db, log: baseLog.With("repo", "CollectionItemRepo")}
}

func (r *collectionItemRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.CollectionItem, error) {
	return fetchOne[types.CollectionItem](ctx, r.db, id, false, false)
}
func (r *collectionItemRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.CollectionItem, error) {
	return fetchOne[types.CollectionItem](ctx, r.db, id, true, false)
}
func (r *collectionItemRepo) ListDrafts(ctx context.Context) ([]*types.CollectionItem, error) {
	return fetchAll[types.CollectionItem](ctx, r.db, false, false)
}
func (r *collectionItemRepo) ListPublished(ctx context.Context) ([]*types.CollectionItem, error) {
	return fetchAll[types.CollectionItem](ctx, r.db, true, false)
}
func (r *collectionItemRepo) CreateDraft(ctx context.Context, tx *gorm.DB, item *types.CollectionItem) (*types.CollectionItem, error) {
	item.IsPublished = false
	return createRow(ctx, r.db, tx, item)
}
func (r *collectionItemRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, item *types.CollectionItem) (*types.CollectionItem, error) {
	item.IsPublished = false
	return saveRow(ctx, r.db, tx, item)
}
func (r *collectionItemRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.CollectionItem](ctx, r.db, tx, id)
}
