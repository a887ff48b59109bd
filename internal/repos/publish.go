package repos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
)

// PublishRepo reads and writes versioned tables generically, by table
// name, so one publish implementation covers every entity type. Rows are
// handled as column maps; all versioned tables share the bookkeeping
// columns (id, is_published, content_hash, deleted_at).
type PublishRepo interface {
	// LoadDrafts returns every draft row including soft-deleted ones;
	// publish needs the soft-deleted drafts to complete their lifecycle.
	LoadDrafts(ctx context.Context, table string) ([]map[string]interface{}, error)
	LoadPublished(ctx context.Context, table string) ([]map[string]interface{}, error)
	// UpsertPublished replaces the published rows for the given draft
	// rows: each row is copied with is_published set and deleted_at
	// cleared. Implemented as delete-then-insert per batch so it is
	// dialect independent and safely re-runnable.
	UpsertPublished(ctx context.Context, table string, rows []map[string]interface{}) error
	DeletePublishedByIDs(ctx context.Context, table string, ids []interface{}) error
	DeleteDraftsByIDs(ctx context.Context, table string, ids []interface{}) error
}

type publishRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublishRepo(db *gorm.DB, baseLog *logger.Logger) PublishRepo {
	return &publishRepo{db: db, log: baseLog.With("repo", "PublishRepo")}
}

func (r *publishRepo) LoadDrafts(ctx context.Context, table string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table(table).
		Where("is_published = ?", false).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *publishRepo) LoadPublished(ctx context.Context, table string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table(table).
		Where("is_published = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *publishRepo) UpsertPublished(ctx context.Context, table string, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	published := make([]map[string]interface{}, 0, len(rows))
	ids := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		copied["is_published"] = true
		copied["deleted_at"] = nil
		copied["updated_at"] = time.Now().UTC()
		published = append(published, copied)
		ids = append(ids, row["id"])
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE is_published = ? AND id IN ?", table), true, ids).Error; err != nil {
			return err
		}
		return tx.Table(table).Create(&published).Error
	})
}

func (r *publishRepo) DeletePublishedByIDs(ctx context.Context, table string, ids []interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE is_published = ? AND id IN ?", table), true, ids).Error
}

func (r *publishRepo) DeleteDraftsByIDs(ctx context.Context, table string, ids []interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE is_published = ? AND id IN ?", table), false, ids).Error
}

// RowID returns the canonical string form of a row's id column, usable as
// a map key across drivers (postgres returns uuids as strings or bytes
// depending on scan path, sqlite as text).
func RowID(row map[string]interface{}) string {
	switch v := row["id"].(type) {
	case string:
		return strings.ToLower(v)
	case []byte:
		if len(v) == 16 {
			if u, err := uuid.FromBytes(v); err == nil {
				return u.String()
			}
		}
		return strings.ToLower(string(v))
	case [16]byte:
		return uuid.UUID(v).String()
	default:
		return strings.ToLower(fmt.Sprintf("%v", v))
	}
}

// RowHash returns the content_hash column as a string.
func RowHash(row map[string]interface{}) string {
	if s, ok := row["content_hash"].(string); ok {
		return s
	}
	if b, ok := row["content_hash"].([]byte); ok {
		return string(b)
	}
	return ""
}

// RowDeleted reports whether the row is soft-deleted.
func RowDeleted(row map[string]interface{}) bool {
	v, ok := row["deleted_at"]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case time.Time:
		return !t.IsZero()
	case *time.Time:
		return t != nil && !t.IsZero()
	case string:
		return t != ""
	case []byte:
		return len(t) > 0
	default:
		return true
	}
}
