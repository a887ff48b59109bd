package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Component is a reusable layer subtree that page layouts reference by id.
type Component struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Layers      datatypes.JSON `gorm:"column:layers;type:jsonb" json:"layers"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Component) TableName() string { return "component" }

func (c Component) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"name":   c.Name,
		"layers": rawJSON(c.Layers),
	}
}
