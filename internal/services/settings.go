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

// SettingsService is the draft write path for the site settings entities
// (fonts, locales, assets, folders). They carry no layer tree and no undo
// history; hashing them on every write is what lets publish skip the
// unchanged ones.
type SettingsService interface {
	ListFonts(ctx context.Context) ([]*types.Font, error)
	CreateFont(ctx context.Context, family, provider string, weights []interface{}) (*types.Font, error)
	UpdateFont(ctx context.Context, id uuid.UUID, family, provider string, weights []interface{}) (*types.Font, error)
	DeleteFont(ctx context.Context, id uuid.UUID) error

	ListLocales(ctx context.Context) ([]*types.Locale, error)
	CreateLocale(ctx context.Context, code, name string, isDefault bool) (*types.Locale, error)
	UpdateLocale(ctx context.Context, id uuid.UUID, code, name string, isDefault bool) (*types.Locale, error)
	DeleteLocale(ctx context.Context, id uuid.UUID) error

	ListAssets(ctx context.Context) ([]*types.Asset, error)
	CreateAsset(ctx context.Context, filename, kind, url string, size int64, metadata map[string]interface{}) (*types.Asset, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, filename, kind, url string, size int64, metadata map[string]interface{}) (*types.Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error

	ListFolders(ctx context.Context) ([]*types.Folder, error)
	CreateFolder(ctx context.Context, name string, parentID *uuid.UUID) (*types.Folder, error)
	UpdateFolder(ctx context.Context, id uuid.UUID, name string, parentID *uuid.UUID) (*types.Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) error
}

type settingsService struct {
	log     *logger.Logger
	fonts   repos.FontRepo
	locales repos.LocaleRepo
	assets  repos.AssetRepo
	folders repos.FolderRepo
}

func NewSettingsService(log *logger.Logger, fonts repos.FontRepo, locales repos.LocaleRepo, assets repos.AssetRepo, folders repos.FolderRepo) SettingsService {
	return &settingsService{
		log:     log.With("service", "SettingsService"),
		fonts:   fonts,
		locales: locales,
		assets:  assets,
		folders: folders,
	}
}

func encodeJSON(v interface{}, what string) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", what, err)
	}
	return datatypes.JSON(raw), nil
}

func (s *settingsService) ListFonts(ctx context.Context) ([]*types.Font, error) {
	return s.fonts.ListDrafts(ctx)
}

func (s *settingsService) CreateFont(ctx context.Context, family, provider string, weights []interface{}) (*types.Font, error) {
	encoded, err := encodeJSON(weights, "font weights")
	if err != nil {
		return nil, err
	}
	font := &types.Font{ID: uuid.New(), Family: family, Provider: provider, Weights: encoded}
	font.ContentHash = contenthash.HashMap(font.ContentFingerprint())
	return s.fonts.CreateDraft(ctx, nil, font)
}

func (s *settingsService) UpdateFont(ctx context.Context, id uuid.UUID, family, provider string, weights []interface{}) (*types.Font, error) {
	font, err := s.fonts.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if font == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(weights, "font weights")
	if err != nil {
		return nil, err
	}
	font.Family = family
	font.Provider = provider
	font.Weights = encoded
	font.ContentHash = contenthash.HashMap(font.ContentFingerprint())
	return s.fonts.UpdateDraft(ctx, nil, font)
}

func (s *settingsService) DeleteFont(ctx context.Context, id uuid.UUID) error {
	return s.fonts.SoftDeleteDraft(ctx, nil, id)
}

func (s *settingsService) ListLocales(ctx context.Context) ([]*types.Locale, error) {
	return s.locales.ListDrafts(ctx)
}

func (s *settingsService) CreateLocale(ctx context.Context, code, name string, isDefault bool) (*types.Locale, error) {
	locale := &types.Locale{ID: uuid.New(), Code: code, Name: name, IsDefault: isDefault}
	locale.ContentHash = contenthash.HashMap(locale.ContentFingerprint())
	return s.locales.CreateDraft(ctx, nil, locale)
}

func (s *settingsService) UpdateLocale(ctx context.Context, id uuid.UUID, code, name string, isDefault bool) (*types.Locale, error) {
	locale, err := s.locales.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if locale == nil {
		return nil, ErrEntityNotFound
	}
	locale.Code = code
	locale.Name = name
	locale.IsDefault = isDefault
	locale.ContentHash = contenthash.HashMap(locale.ContentFingerprint())
	return s.locales.UpdateDraft(ctx, nil, locale)
}

func (s *settingsService) DeleteLocale(ctx context.Context, id uuid.UUID) error {
	return s.locales.SoftDeleteDraft(ctx, nil, id)
}

func (s *settingsService) ListAssets(ctx context.Context) ([]*types.Asset, error) {
	return s.assets.ListDrafts(ctx)
}

func (s *settingsService) CreateAsset(ctx context.Context, filename, kind, url string, size int64, metadata map[string]interface{}) (*types.Asset, error) {
	encoded, err := encodeJSON(metadata, "asset metadata")
	if err != nil {
		return nil, err
	}
	asset := &types.Asset{ID: uuid.New(), Filename: filename, Kind: kind, URL: url, Size: size, Metadata: encoded}
	asset.ContentHash = contenthash.HashMap(asset.ContentFingerprint())
	return s.assets.CreateDraft(ctx, nil, asset)
}

func (s *settingsService) UpdateAsset(ctx context.Context, id uuid.UUID, filename, kind, url string, size int64, metadata map[string]interface{}) (*types.Asset, error) {
	asset, err := s.assets.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(metadata, "asset metadata")
	if err != nil {
		return nil, err
	}
	asset.Filename = filename
	asset.Kind = kind
	asset.URL = url
	asset.Size = size
	asset.Metadata = encoded
	asset.ContentHash = contenthash.HashMap(asset.ContentFingerprint())
	return s.assets.UpdateDraft(ctx, nil, asset)
}

func (s *settingsService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return s.assets.SoftDeleteDraft(ctx, nil, id)
}

func (s *settingsService) ListFolders(ctx context.Context) ([]*types.Folder, error) {
	return s.folders.ListDrafts(ctx)
}

func (s *settingsService) CreateFolder(ctx context.Context, name string, parentID *uuid.UUID) (*types.Folder, error) {
	folder := &types.Folder{ID: uuid.New(), Name: name, ParentID: parentID}
	folder.ContentHash = contenthash.HashMap(folder.ContentFingerprint())
	return s.folders.CreateDraft(ctx, nil, folder)
}

func (s *settingsService) UpdateFolder(ctx context.Context, id uuid.UUID, name string, parentID *uuid.UUID) (*types.Folder, error) {
	folder, err := s.folders.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrEntityNotFound
	}
	folder.Name = name
	folder.ParentID = parentID
	folder.ContentHash = contenthash.HashMap(folder.ContentFingerprint())
	return s.folders.UpdateDraft(ctx, nil, folder)
}

func (s *settingsService) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	return s.folders.SoftDeleteDraft(ctx, nil, id)
}
