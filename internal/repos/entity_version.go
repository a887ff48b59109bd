package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

type EntityVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, version *types.EntityVersion) (*types.EntityVersion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.EntityVersion, error)
	// ListForEntity returns all versions for one entity ordered oldest
	// first; undo/redo cursors traverse this order.
	ListForEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) ([]*types.EntityVersion, error)
	ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*types.EntityVersion, error)
}

type entityVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityVersionRepo(db *gorm.DB, baseLog *logger.Logger) EntityVersionRepo {
	return &entityVersionRepo{db: db, log: baseLog.With("repo", "EntityVersionRepo")}
}

func (r *entityVersionRepo) Create(ctx context.Context, tx *gorm.DB, version *types.EntityVersion) (*types.EntityVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if version.ID == uuid.Nil {
		version.ID = uuid.New()
	}
	if version.ActionType == "" {
		version.ActionType = types.ActionTypeUpdate
	}
	if err := transaction.WithContext(ctx).Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func (r *entityVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.EntityVersion, error) {
	var out types.EntityVersion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *entityVersionRepo) ListForEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) ([]*types.EntityVersion, error) {
	var out []*types.EntityVersion
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityVersionRepo) ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*types.EntityVersion, error) {
	var out []*types.EntityVersion
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
