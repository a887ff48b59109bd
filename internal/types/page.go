package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page is the page settings row. Every versioned entity exists as a draft
// row and a published row sharing the same id; (id, is_published) is the
// primary key. The draft row is the only one the editor writes; the
// published row is only ever written by publish.
type Page struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Slug        string         `gorm:"column:slug;not null;index" json:"slug"`
	FolderID    *uuid.UUID     `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	Settings    datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings,omitempty"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Page) TableName() string { return "page" }

func (p Page) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"name":      p.Name,
		"slug":      p.Slug,
		"folder_id": p.FolderID,
		"settings":  rawJSON(p.Settings),
	}
}
