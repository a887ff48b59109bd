package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageLayout holds the layer tree for one page in one locale. The
// composite foreign keys reference (parent_id, parent_is_published) so a
// draft layout can only hang off a draft page and a published layout off
// a published page.
type PageLayout struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	IsPublished bool           `gorm:"primaryKey" json:"is_published"`
	PageID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_page_layout_page,priority:1" json:"page_id"`
	LocaleID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_page_layout_page,priority:2" json:"locale_id"`
	Page        *Page          `gorm:"foreignKey:PageID,IsPublished;references:ID,IsPublished;constraint:OnDelete:CASCADE" json:"page,omitempty"`
	Locale      *Locale        `gorm:"foreignKey:LocaleID,IsPublished;references:ID,IsPublished;constraint:OnDelete:CASCADE" json:"locale,omitempty"`
	Layers      datatypes.JSON `gorm:"column:layers;type:jsonb" json:"layers"`
	ContentHash string         `gorm:"column:content_hash" json:"content_hash"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PageLayout) TableName() string { return "page_layout" }

func (l PageLayout) ContentFingerprint() map[string]interface{} {
	return map[string]interface{}{
		"page_id":   l.PageID,
		"locale_id": l.LocaleID,
		"layers":    rawJSON(l.Layers),
	}
}
