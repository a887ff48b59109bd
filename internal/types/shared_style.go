package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SharedStyle is a named style definition layers reference via styleId.
type SharedStyle struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Selector    string         `gorm:"column:selector" json:"selector"`
	Properties  datatypes.JSON `gorm:"column:properties;type:jsonb" json:"properties"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SharedStyle) TableName() string { return "shared_style" }

func (s SharedStyle) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"name":       s.Name,
		"selector":   s.Selector,
		"properties": rawJSON(s.Properties),
	}
}
