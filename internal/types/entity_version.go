package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const ActionTypeUpdate = "update"

// EntityVersion is one recorded change to a draft entity. Rows are
// append-only and ordered by created_at per (entity_type, entity_id);
// undo/redo traverse that order.
type EntityVersion struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntityType   EntityType     `gorm:"column:entity_type;not null;index:idx_entity_version_entity,priority:1" json:"entity_type"`
	EntityID     uuid.UUID      `gorm:"type:uuid;column:entity_id;not null;index:idx_entity_version_entity,priority:2" json:"entity_id"`
	ActionType   string         `gorm:"column:action_type;not null;default:update" json:"action_type"`
	Description  string         `gorm:"column:description" json:"description"`
	Redo         datatypes.JSON `gorm:"column:redo;type:jsonb" json:"redo"`
	Undo         datatypes.JSON `gorm:"column:undo;type:jsonb" json:"undo"`
	PreviousHash string         `gorm:"column:previous_hash" json:"previous_hash"`
	CurrentHash  string         `gorm:"column:current_hash" json:"current_hash"`
	SessionID    uuid.UUID      `gorm:"type:uuid;column:session_id;index" json:"session_id"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (EntityVersion) TableName() string { return "entity_version" }

// VersionMetadata is the decoded shape of EntityVersion.Metadata.
type VersionMetadata struct {
	Selection    map[string]interface{} `json:"selection,omitempty"`
	Requirements *VersionRequirements   `json:"requirements,omitempty"`
}

type VersionRequirements struct {
	ComponentIDs []string `json:"component_ids,omitempty"`
	StyleIDs     []string `json:"style_ids,omitempty"`
}

func (v EntityVersion) DecodedMetadata() (VersionMetadata, error) {
	var meta VersionMetadata
	if len(v.Metadata) == 0 {
		return meta, nil
	}
	err := json.Unmarshal(v.Metadata, &meta)
	return meta, err
}
