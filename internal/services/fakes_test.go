package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
)

func testLogger(t interface{ Fatalf(string, ...interface{}) }) *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

// fakeVersionRepo keeps version rows in insertion order, which is the
// created_at order the real repo returns.
type fakeVersionRepo struct {
	mu       sync.Mutex
	rows     []*types.EntityVersion
	failNext bool
}

func (r *fakeVersionRepo) Create(_ context.Context, _ *gorm.DB, version *types.EntityVersion) (*types.EntityVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return nil, errors.New("storage unavailable")
	}
	stored := *version
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.ActionType == "" {
		stored.ActionType = types.ActionTypeUpdate
	}
	stored.CreatedAt = time.Now()
	r.rows = append(r.rows, &stored)
	return &stored, nil
}

func (r *fakeVersionRepo) GetByID(_ context.Context, id uuid.UUID) (*types.EntityVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeVersionRepo) ListForEntity(_ context.Context, entityType types.EntityType, entityID uuid.UUID) ([]*types.EntityVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.EntityVersion
	for _, row := range r.rows {
		if row.EntityType == entityType && row.EntityID == entityID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVersionRepo) ListForSession(_ context.Context, sessionID uuid.UUID) ([]*types.EntityVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.EntityVersion
	for _, row := range r.rows {
		if row.SessionID == sessionID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVersionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeLayoutRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*types.PageLayout
}

func newFakeLayoutRepo() *fakeLayoutRepo {
	return &fakeLayoutRepo{drafts: map[uuid.UUID]*types.PageLayout{}}
}

func (r *fakeLayoutRepo) GetDraftByID(_ context.Context, id uuid.UUID) (*types.PageLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	layout, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *layout
	return &copied, nil
}

func (r *fakeLayoutRepo) GetPublishedByID(_ context.Context, _ uuid.UUID) (*types.PageLayout, error) {
	return nil, nil
}

func (r *fakeLayoutRepo) GetDraftForPage(_ context.Context, pageID, localeID uuid.UUID) (*types.PageLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, layout := range r.drafts {
		if layout.PageID == pageID && layout.LocaleID == localeID {
			copied := *layout
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeLayoutRepo) ListDrafts(_ context.Context) ([]*types.PageLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.PageLayout
	for _, layout := range r.drafts {
		copied := *layout
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeLayoutRepo) ListPublished(_ context.Context) ([]*types.PageLayout, error) {
	return nil, nil
}

func (r *fakeLayoutRepo) CreateDraft(_ context.Context, _ *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *layout
	copied.IsPublished = false
	r.drafts[copied.ID] = &copied
	return layout, nil
}

func (r *fakeLayoutRepo) UpdateDraft(_ context.Context, _ *gorm.DB, layout *types.PageLayout) (*types.PageLayout, error) {
	return r.CreateDraft(nil, nil, layout)
}

func (r *fakeLayoutRepo) SoftDeleteDraft(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

type fakeComponentRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*types.Component
}

func newFakeComponentRepo() *fakeComponentRepo {
	return &fakeComponentRepo{drafts: map[uuid.UUID]*types.Component{}}
}

func (r *fakeComponentRepo) GetDraftByID(_ context.Context, id uuid.UUID) (*types.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	component, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *component
	return &copied, nil
}

func (r *fakeComponentRepo) GetPublishedByID(_ context.Context, _ uuid.UUID) (*types.Component, error) {
	return nil, nil
}

func (r *fakeComponentRepo) ListDrafts(_ context.Context) ([]*types.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Component
	for _, component := range r.drafts {
		copied := *component
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeComponentRepo) ListPublished(_ context.Context) ([]*types.Component, error) {
	return nil, nil
}

func (r *fakeComponentRepo) DraftExists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.drafts[id]
	return ok, nil
}

func (r *fakeComponentRepo) CreateDraft(_ context.Context, _ *gorm.DB, component *types.Component) (*types.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *component
	copied.IsPublished = false
	r.drafts[copied.ID] = &copied
	return component, nil
}

func (r *fakeComponentRepo) UpdateDraft(_ context.Context, _ *gorm.DB, component *types.Component) (*types.Component, error) {
	return r.CreateDraft(nil, nil, component)
}

func (r *fakeComponentRepo) SoftDeleteDraft(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

type fakeStyleRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*types.SharedStyle
}

func newFakeStyleRepo() *fakeStyleRepo {
	return &fakeStyleRepo{drafts: map[uuid.UUID]*types.SharedStyle{}}
}

func (r *fakeStyleRepo) GetDraftByID(_ context.Context, id uuid.UUID) (*types.SharedStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	style, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *style
	return &copied, nil
}

func (r *fakeStyleRepo) GetPublishedByID(_ context.Context, _ uuid.UUID) (*types.SharedStyle, error) {
	return nil, nil
}

func (r *fakeStyleRepo) ListDrafts(_ context.Context) ([]*types.SharedStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.SharedStyle
	for _, style := range r.drafts {
		copied := *style
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeStyleRepo) ListPublished(_ context.Context) ([]*types.SharedStyle, error) {
	return nil, nil
}

func (r *fakeStyleRepo) DraftExists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.drafts[id]
	return ok, nil
}

func (r *fakeStyleRepo) CreateDraft(_ context.Context, _ *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *style
	copied.IsPublished = false
	r.drafts[copied.ID] = &copied
	return style, nil
}

func (r *fakeStyleRepo) UpdateDraft(_ context.Context, _ *gorm.DB, style *types.SharedStyle) (*types.SharedStyle, error) {
	return r.CreateDraft(nil, nil, style)
}

func (r *fakeStyleRepo) SoftDeleteDraft(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

// fakePublishRepo keeps draft and published rows per table, the way the
// generic publish repo sees them.
type fakePublishRepo struct {
	mu        sync.Mutex
	drafts    map[string][]map[string]interface{}
	published map[string][]map[string]interface{}
	upserted  int
}

func newFakePublishRepo() *fakePublishRepo {
	return &fakePublishRepo{
		drafts:    map[string][]map[string]interface{}{},
		published: map[string][]map[string]interface{}{},
	}
}

func copyRows(rows []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out
}

func (r *fakePublishRepo) LoadDrafts(_ context.Context, table string) ([]map[string]interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyRows(r.drafts[table]), nil
}

func (r *fakePublishRepo) LoadPublished(_ context.Context, table string) ([]map[string]interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyRows(r.published[table]), nil
}

func (r *fakePublishRepo) UpsertPublished(_ context.Context, table string, rows []map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		copied["is_published"] = true
		copied["deleted_at"] = nil

		kept := r.published[table][:0]
		for _, existing := range r.published[table] {
			if existing["id"] != copied["id"] {
				kept = append(kept, existing)
			}
		}
		r.published[table] = append(kept, copied)
		r.upserted++
	}
	return nil
}

func (r *fakePublishRepo) DeletePublishedByIDs(_ context.Context, table string, ids []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published[table] = dropByID(r.published[table], ids)
	return nil
}

func (r *fakePublishRepo) DeleteDraftsByIDs(_ context.Context, table string, ids []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[table] = dropByID(r.drafts[table], ids)
	return nil
}

func dropByID(rows []map[string]interface{}, ids []interface{}) []map[string]interface{} {
	if len(ids) == 0 {
		return rows
	}
	dead := map[interface{}]bool{}
	for _, id := range ids {
		dead[id] = true
	}
	kept := rows[:0]
	for _, row := range rows {
		if !dead[row["id"]] {
			kept = append(kept, row)
		}
	}
	return kept
}
