package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shared query helpers for the dual-state tables. Every versioned table
// is keyed by (id, is_published) and soft-deletes independently per side,
// so the per-entity repos all reduce to these.

func fetchOne[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, published, includeDeleted bool) (*T, error) {
	q := db.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out T
	err := q.Where("id = ? AND is_published = ?", id, published).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func fetchAll[T any](ctx context.Context, db *gorm.DB, published, includeDeleted bool) ([]*T, error) {
	q := db.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*T
	if err := q.Where("is_published = ?", published).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func createRow[T any](ctx context.Context, db, tx *gorm.DB, row *T) (*T, error) {
	transaction := tx
	if transaction == nil {
		transaction = db
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func saveRow[T any](ctx context.Context, db, tx *gorm.DB, row *T) (*T, error) {
	transaction := tx
	if transaction == nil {
		transaction = db
	}
	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func softDeleteDraft[T any](ctx context.Context, db, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = db
	}
	var model T
	return transaction.WithContext(ctx).
		Where("id = ? AND is_published = ?", id, false).
		Delete(&model).Error
}

func existsDraft[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	var model T
	err := db.WithContext(ctx).Model(&model).
		Where("id = ? AND is_published = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
