package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The remaining versioned entities are settings rows: the editor mutates
// their drafts through thin CRUD screens and publish promotes them the
// same way as pages, but they never carry a layer tree.

type Font struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Family      string         `gorm:"column:family;not null" json:"family"`
	Provider    string         `gorm:"column:provider" json:"provider"`
	Weights     datatypes.JSON `gorm:"column:weights;type:jsonb" json:"weights,omitempty"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Font) TableName() string { return "font" }

func (f Font) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"family":   f.Family,
		"provider": f.Provider,
		"weights":  rawJSON(f.Weights),
	}
}

type Locale struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Code        string         `gorm:"column:code;not null;index" json:"code"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	IsDefault   bool           `gorm:"column:is_default;not null;default:false" json:"is_default"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Locale) TableName() string { return "locale" }

func (l Locale) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"code":       l.Code,
		"name":       l.Name,
		"is_default": l.IsDefault,
	}
}

// Asset rows version the metadata only; upload and storage of the binary
// happen outside this system.
type Asset struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Filename    string         `gorm:"column:filename;not null" json:"filename"`
	Kind        string         `gorm:"column:kind;not null;index" json:"kind"`
	URL         string         `gorm:"column:url" json:"url,omitempty"`
	Size        int64          `gorm:"column:size" json:"size"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset" }

func (a Asset) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"filename": a.Filename,
		"kind":     a.Kind,
		"url":      a.URL,
		"size":     a.Size,
		"metadata": rawJSON(a.Metadata),
	}
}

type Folder struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Folder) TableName() string { return "folder" }

func (f Folder) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"name":      f.Name,
		"parent_id": f.ParentID,
	}
}

type Collection struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Slug        string         `gorm:"column:slug;not null;index" json:"slug"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Collection) TableName() string { return "collection" }

func (c Collection) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"name": c.Name,
		"slug": c.Slug,
	}
}

type CollectionField struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished  bool           `gorm:"primaryKey" json:"is_published"`
	CollectionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"collection_id"`
	Collection   *Collection    `gorm:"foreignKey:CollectionID,IsPublished;references:ID,IsPublished;constraint:OnDelete:CASCADE" json:"collection,omitempty"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Kind         string         `gorm:"column:kind;not null" json:"kind"`
	Options      datatypes.JSON `gorm:"column:options;type:jsonb" json:"options,omitempty"`
	ContentHash  string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CollectionField) TableName() string { return "collection_field" }

func (f CollectionField) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"collection_id": f.CollectionID,
		"name":          f.Name,
		"kind":          f.Kind,
		"options":       rawJSON(f.Options),
	}
}

type CollectionItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished  bool           `gorm:"primaryKey" json:"is_published"`
	CollectionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"collection_id"`
	Collection   *Collection    `gorm:"foreignKey:CollectionID,IsPublished;references:ID,IsPublished;constraint:OnDelete:CASCADE" json:"collection,omitempty"`
	Values       datatypes.JSON `gorm:"column:values;type:jsonb" json:"values"`
	ContentHash  string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CollectionItem) TableName() string { return "collection_item" }

func (i CollectionItem) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"collection_id": i.CollectionID,
		"values":        rawJSON(i.Values),
	}
}
