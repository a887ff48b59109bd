package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/contenthash"
	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/types"
)

// CollectionService manages CMS collection drafts: the collection shell,
// its field schema, and its items. Items reference their collection by a
// composite key so draft items always join draft collections.
type CollectionService interface {
	ListCollections(ctx context.Context) ([]*types.Collection, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*types.Collection, error)
	CreateCollection(ctx context.Context, name, slug string) (*types.Collection, error)
	UpdateCollection(ctx context.Context, id uuid.UUID, name, slug string) (*types.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	ListFields(ctx context.Context) ([]*types.CollectionField, error)
	CreateField(ctx context.Context, collectionID uuid.UUID, name, kind string, options map[string]interface{}) (*types.CollectionField, error)
	UpdateField(ctx context.Context, id uuid.UUID, name, kind string, options map[string]interface{}) (*types.CollectionField, error)
	DeleteField(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context) ([]*types.CollectionItem, error)
	CreateItem(ctx context.Context, collectionID uuid.UUID, values map[string]interface{}) (*types.CollectionItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*types.CollectionItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type collectionService struct {
	log         *logger.Logger
	collections repos.CollectionRepo
	fields      repos.CollectionFieldRepo
	items       repos.CollectionItemRepo
}

func NewCollectionService(log *logger.Logger, collections repos.CollectionRepo, fields repos.CollectionFieldRepo, items repos.CollectionItemRepo) CollectionService {
	return &collectionService{
		log:         log.With("service", "CollectionService"),
		collections: collections,
		fields:      fields,
		items:       items,
	}
}

func (s *collectionService) ListCollections(ctx context.Context) ([]*types.Collection, error) {
	return s.collections.ListDrafts(ctx)
}

func (s *collectionService) GetCollection(ctx context.Context, id uuid.UUID) (*types.Collection, error) {
	return s.collections.GetDraftByID(ctx, id)
}

func (s *collectionService) CreateCollection(ctx context.Context, name, slug string) (*types.Collection, error) {
	collection := &types.Collection{ID: uuid.New(), Name: name, Slug: slug}
	collection.ContentHash = contenthash.HashMap(collection.ContentFingerprint())
	return s.collections.CreateDraft(ctx, nil, collection)
}

func (s *collectionService) UpdateCollection(ctx context.Context, id uuid.UUID, name, slug string) (*types.Collection, error) {
	collection, err := s.collections.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrEntityNotFound
	}
	collection.Name = name
	collection.Slug = slug
	collection.ContentHash = contenthash.HashMap(collection.ContentFingerprint())
	return s.collections.UpdateDraft(ctx, nil, collection)
}

func (s *collectionService) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return s.collections.SoftDeleteDraft(ctx, nil, id)
}

func (s *collectionService) ListFields(ctx context.Context) ([]*types.CollectionField, error) {
	return s.fields.ListDrafts(ctx)
}

func (s *collectionService) CreateField(ctx context.Context, collectionID uuid.UUID, name, kind string, options map[string]interface{}) (*types.CollectionField, error) {
	collection, err := s.collections.GetDraftByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(options, "field options")
	if err != nil {
		return nil, err
	}
	field := &types.CollectionField{ID: uuid.New(), CollectionID: collectionID, Name: name, Kind: kind, Options: encoded}
	field.ContentHash = contenthash.HashMap(field.ContentFingerprint())
	return s.fields.CreateDraft(ctx, nil, field)
}

func (s *collectionService) UpdateField(ctx context.Context, id uuid.UUID, name, kind string, options map[string]interface{}) (*types.CollectionField, error) {
	field, err := s.fields.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(options, "field options")
	if err != nil {
		return nil, err
	}
	field.Name = name
	field.Kind = kind
	field.Options = encoded
	field.ContentHash = contenthash.HashMap(field.ContentFingerprint())
	return s.fields.UpdateDraft(ctx, nil, field)
}

func (s *collectionService) DeleteField(ctx context.Context, id uuid.UUID) error {
	return s.fields.SoftDeleteDraft(ctx, nil, id)
}

func (s *collectionService) ListItems(ctx context.Context) ([]*types.CollectionItem, error) {
	return s.items.ListDrafts(ctx)
}

func (s *collectionService) CreateItem(ctx context.Context, collectionID uuid.UUID, values map[string]interface{}) (*types.CollectionItem, error) {
	collection, err := s.collections.GetDraftByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(values, "item values")
	if err != nil {
		return nil, err
	}
	item := &types.CollectionItem{ID: uuid.New(), CollectionID: collectionID, Values: encoded}
	item.ContentHash = contenthash.HashMap(item.ContentFingerprint())
	return s.items.CreateDraft(ctx, nil, item)
}

func (s *collectionService) UpdateItem(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*types.CollectionItem, error) {
	item, err := s.items.GetDraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrEntityNotFound
	}
	encoded, err := encodeJSON(values, "item values")
	if err != nil {
		return nil, err
	}
	item.Values = encoded
	item.ContentHash = contenthash.HashMap(item.ContentFingerprint())
	return s.items.UpdateDraft(ctx, nil, item)
}

func (s *collectionService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.items.SoftDeleteDraft(ctx, nil, id)
}
