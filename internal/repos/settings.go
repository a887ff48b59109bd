package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

// Repos for the settings-screen entities. Their drafts are written by
// thin CRUD glue; versioning applies to them only through publish.

type FontRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Font, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Font, error)
	ListDrafts(ctx context.Context) ([]*types.Font, error)
	ListPublished(ctx context.Context) ([]*types.Font, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, font *types.Font) (*types.Font, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, font *types.Font) (*types.Font, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type fontRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFontRepo(db *gorm.DB, baseLog *logger.Logger) FontRepo {
	return &fontRepo{db: db, log: baseLog.With("repo", "FontRepo")}
}

func (r *fontRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Font, error) {
	return fetchOne[types.Font](ctx, r.db, id, false, false)
}
func (r *fontRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Font, error) {
	return fetchOne[types.Font](ctx, r.db, id, true, false)
}
func (r *fontRepo) ListDrafts(ctx context.Context) ([]*types.Font, error) {
	return fetchAll[types.Font](ctx, r.db, false, false)
}
func (r *fontRepo) ListPublished(ctx context.Context) ([]*types.Font, error) {
	return fetchAll[types.Font](ctx, r.db, true, false)
}
func (r *fontRepo) CreateDraft(ctx context.Context, tx *gorm.DB, font *types.Font) (*types.Font, error) {
	font.IsPublished = false
	return createRow(ctx, r.db, tx, font)
}
func (r *fontRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, font *types.Font) (*types.Font, error) {
	font.IsPublished = false
	return saveRow(ctx, r.db, tx, font)
}
func (r *fontRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Font](ctx, r.db, tx, id)
}

type LocaleRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Locale, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Locale, error)
	ListDrafts(ctx context.Context) ([]*types.Locale, error)
	ListPublished(ctx context.Context) ([]*types.Locale, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, locale *types.Locale) (*types.Locale, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, locale *types.Locale) (*types.Locale, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type localeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocaleRepo(db *gorm.DB, baseLog *logger.Logger) LocaleRepo {
	return &localeRepo{db: db, log: baseLog.With("repo", "LocaleRepo")}
}

func (r *localeRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Locale, error) {
	return fetchOne[types.Locale](ctx, r.db, id, false, false)
}
func (r *localeRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Locale, error) {
	return fetchOne[types.Locale](ctx, r.db, id, true, false)
}
func (r *localeRepo) ListDrafts(ctx context.Context) ([]*types.Locale, error) {
	return fetchAll[types.Locale](ctx, r.db, false, false)
}
func (r *localeRepo) ListPublished(ctx context.Context) ([]*types.Locale, error) {
	return fetchAll[types.Locale](ctx, r.db, true, false)
}
func (r *localeRepo) CreateDraft(ctx context.Context, tx *gorm.DB, locale *types.Locale) (*types.Locale, error) {
	locale.IsPublished = false
	return createRow(ctx, r.db, tx, locale)
}
func (r *localeRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, locale *types.Locale) (*types.Locale, error) {
	locale.IsPublished = false
	return saveRow(ctx, r.db, tx, locale)
}
func (r *localeRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Locale](ctx, r.db, tx, id)
}

type AssetRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	ListDrafts(ctx context.Context) ([]*types.Asset, error)
	ListPublished(ctx context.Context) ([]*types.Asset, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return fetchOne[types.Asset](ctx, r.db, id, false, false)
}
func (r *assetRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return fetchOne[types.Asset](ctx, r.db, id, true, false)
}
func (r *assetRepo) ListDrafts(ctx context.Context) ([]*types.Asset, error) {
	return fetchAll[types.Asset](ctx, r.db, false, false)
}
func (r *assetRepo) ListPublished(ctx context.Context) ([]*types.Asset, error) {
	return fetchAll[types.Asset](ctx, r.db, true, false)
}
func (r *assetRepo) CreateDraft(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	asset.IsPublished = false
	return createRow(ctx, r.db, tx, asset)
}
func (r *assetRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	asset.IsPublished = false
	return saveRow(ctx, r.db, tx, asset)
}
func (r *assetRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Asset](ctx, r.db, tx, id)
}

type FolderRepo interface {
	GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Folder, error)
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Folder, error)
	ListDrafts(ctx context.Context) ([]*types.Folder, error)
	ListPublished(ctx context.Context) ([]*types.Folder, error)
	CreateDraft(ctx context.Context, tx *gorm.DB, folder *types.Folder) (*types.Folder, error)
	UpdateDraft(ctx context.Context, tx *gorm.DB, folder *types.Folder) (*types.Folder, error)
	SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type folderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFolderRepo(db *gorm.DB, baseLog *logger.Logger) FolderRepo {
	return &folderRepo{db: db, log: baseLog.With("repo", "FolderRepo")}
}

func (r *folderRepo) GetDraftByID(ctx context.Context, id uuid.UUID) (*types.Folder, error) {
	return fetchOne[types.Folder](ctx, r.db, id, false, false)
}
func (r *folderRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*types.Folder, error) {
	return fetchOne[types.Folder](ctx, r.db, id, true, false)
}
func (r *folderRepo) ListDrafts(ctx context.Context) ([]*types.Folder, error) {
	return fetchAll[types.Folder](ctx, r.db, false, false)
}
func (r *folderRepo) ListPublished(ctx context.Context) ([]*types.Folder, error) {
	return fetchAll[types.Folder](ctx, r.db, true, false)
}
func (r *folderRepo) CreateDraft(ctx context.Context, tx *gorm.DB, folder *types.Folder) (*types.Folder, error) {
	folder.IsPublished = false
	return createRow(ctx, r.db, tx, folder)
}
func (r *folderRepo) UpdateDraft(ctx context.Context, tx *gorm.DB, folder *types.Folder) (*types.Folder, error) {
	folder.IsPublished = false
	return saveRow(ctx, r.db, tx, folder)
}
func (r *folderRepo) SoftDeleteDraft(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return softDeleteDraft[types.Folder](ctx, r.db, tx, id)
}
