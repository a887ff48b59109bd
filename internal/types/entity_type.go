package types

// EntityType is the closed set of versioned entity kinds. Publish and
// version recording dispatch on it; the switches below are the single
// place a new kind has to be added.
type EntityType string

const (
	EntityTypePage            EntityType = "page"
	EntityTypePageLayout      EntityType = "page_layout"
	EntityTypeComponent       EntityType = "component"
	EntityTypeSharedStyle     EntityType = "shared_style"
	EntityTypeFont            EntityType = "font"
	EntityTypeLocale          EntityType = "locale"
	EntityTypeAsset           EntityType = "asset"
	EntityTypeFolder          EntityType = "folder"
	EntityTypeCollection      EntityType = "collection"
	EntityTypeCollectionField EntityType = "collection_field"
	EntityTypeCollectionItem  EntityType = "collection_item"
)

func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypePage,
		EntityTypePageLayout,
		EntityTypeComponent,
		EntityTypeSharedStyle,
		EntityTypeFont,
		EntityTypeLocale,
		EntityTypeAsset,
		EntityTypeFolder,
		EntityTypeCollection,
		EntityTypeCollectionField,
		EntityTypeCollectionItem,
	}
}

func (t EntityType) Valid() bool {
	switch t {
	case EntityTypePage, EntityTypePageLayout, EntityTypeComponent,
		EntityTypeSharedStyle, EntityTypeFont, EntityTypeLocale,
		EntityTypeAsset, EntityTypeFolder, EntityTypeCollection,
		EntityTypeCollectionField, EntityTypeCollectionItem:
		return true
	}
	return false
}

func (t EntityType) TableName() string {
	switch t {
	case EntityTypePage:
		return Page{}.TableName()
	case EntityTypePageLayout:
		return PageLayout{}.TableName()
	case EntityTypeComponent:
		return Component{}.TableName()
	case EntityTypeSharedStyle:
		return SharedStyle{}.TableName()
	case EntityTypeFont:
		return Font{}.TableName()
	case EntityTypeLocale:
		return Locale{}.TableName()
	case EntityTypeAsset:
		return Asset{}.TableName()
	case EntityTypeFolder:
		return Folder{}.TableName()
	case EntityTypeCollection:
		return Collection{}.TableName()
	case EntityTypeCollectionField:
		return CollectionField{}.TableName()
	case EntityTypeCollectionItem:
		return CollectionItem{}.TableName()
	}
	return ""
}

// TreeShaped reports whether the entity's editable state is a layer tree,
// which means requirement extraction applies to its versions.
func (t EntityType) TreeShaped() bool {
	return t == EntityTypePageLayout || t == EntityTypeComponent
}

// Recordable reports whether editor writes to this entity go through the
// version recorder. The remaining kinds are settings rows managed by thin
// CRUD screens.
func (t EntityType) Recordable() bool {
	switch t {
	case EntityTypePageLayout, EntityTypeComponent, EntityTypeSharedStyle:
		return true
	}
	return false
}
