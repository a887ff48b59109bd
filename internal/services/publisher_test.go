package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/types"
)

func draftRow(id, hash string) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"is_published": false,
		"content_hash": hash,
		"deleted_at":   nil,
	}
}

func publishedRow(id, hash string) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"is_published": true,
		"content_hash": hash,
		"deleted_at":   nil,
	}
}

func deletedDraftRow(id, hash string) map[string]interface{} {
	row := draftRow(id, hash)
	row["deleted_at"] = time.Now()
	return row
}

func TestPublishTypeClassifiesRows(t *testing.T) {
	repo := newFakePublishRepo()
	table := types.EntityTypePage.TableName()

	newID := uuid.NewString()
	changedID := uuid.NewString()
	unchangedID := uuid.NewString()
	retiredID := uuid.NewString()
	tombstoneOnlyID := uuid.NewString()
	orphanID := uuid.NewString()

	repo.drafts[table] = []map[string]interface{}{
		draftRow(newID, "sha256:new"),
		draftRow(changedID, "sha256:v2"),
		draftRow(unchangedID, "sha256:same"),
		deletedDraftRow(retiredID, "sha256:dead"),
		deletedDraftRow(tombstoneOnlyID, "sha256:never-published"),
	}
	repo.published[table] = []map[string]interface{}{
		publishedRow(changedID, "sha256:v1"),
		publishedRow(unchangedID, "sha256:same"),
		publishedRow(retiredID, "sha256:dead"),
		publishedRow(orphanID, "sha256:orphan"),
	}

	publisher := NewPublisher(testLogger(t), repo, 0)
	result, err := publisher.PublishType(context.Background(), types.EntityTypePage)
	if err != nil {
		t.Fatalf("PublishType: %v", err)
	}

	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if result.Updated != 1 {
		t.Errorf("Updated = %d, want 1", result.Updated)
	}
	// The retired draft's published copy plus the orphan. The tombstone
	// that was never published is removed without counting.
	if result.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", result.Deleted)
	}

	publishedByID := map[string]string{}
	for _, row := range repo.published[table] {
		publishedByID[row["id"].(string)] = row["content_hash"].(string)
	}
	if publishedByID[newID] != "sha256:new" {
		t.Errorf("new draft not published: %v", publishedByID)
	}
	if publishedByID[changedID] != "sha256:v2" {
		t.Errorf("changed draft not republished: %v", publishedByID)
	}
	if _, ok := publishedByID[retiredID]; ok {
		t.Error("retired entity still published")
	}
	if _, ok := publishedByID[orphanID]; ok {
		t.Error("orphan row still published")
	}

	// Both tombstone drafts are hard-deleted after publish.
	for _, row := range repo.drafts[table] {
		if row["id"] == retiredID || row["id"] == tombstoneOnlyID {
			t.Errorf("tombstone draft %v survived publish", row["id"])
		}
	}
}

func TestPublishTypeIsIdempotent(t *testing.T) {
	repo := newFakePublishRepo()
	table := types.EntityTypeComponent.TableName()
	repo.drafts[table] = []map[string]interface{}{
		draftRow(uuid.NewString(), "sha256:a"),
		draftRow(uuid.NewString(), "sha256:b"),
	}

	publisher := NewPublisher(testLogger(t), repo, 0)
	first, err := publisher.PublishType(context.Background(), types.EntityTypeComponent)
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if first.Added != 2 {
		t.Fatalf("first publish Added = %d, want 2", first.Added)
	}

	writesAfterFirst := repo.upserted
	second, err := publisher.PublishType(context.Background(), types.EntityTypeComponent)
	if err != nil {
		t.Fatalf("second publish: %v", err)
	}
	if second.Added != 0 || second.Updated != 0 || second.Deleted != 0 {
		t.Fatalf("second publish not a no-op: %+v", second)
	}
	if repo.upserted != writesAfterFirst {
		t.Fatalf("second publish wrote rows: %d -> %d", writesAfterFirst, repo.upserted)
	}
}

func TestPublishTypeBatchesUpserts(t *testing.T) {
	repo := newFakePublishRepo()
	table := types.EntityTypeAsset.TableName()
	for i := 0; i < 5; i++ {
		repo.drafts[table] = append(repo.drafts[table], draftRow(uuid.NewString(), "sha256:x"))
	}

	publisher := NewPublisher(testLogger(t), repo, 2)
	result, err := publisher.PublishType(context.Background(), types.EntityTypeAsset)
	if err != nil {
		t.Fatalf("PublishType: %v", err)
	}
	if result.Added != 5 {
		t.Fatalf("Added = %d, want 5", result.Added)
	}
	if len(repo.published[table]) != 5 {
		t.Fatalf("published rows = %d, want 5", len(repo.published[table]))
	}
}

func TestPublishTypeRejectsUnknownType(t *testing.T) {
	publisher := NewPublisher(testLogger(t), newFakePublishRepo(), 0)
	if _, err := publisher.PublishType(context.Background(), types.EntityType("widget")); err == nil {
		t.Fatal("expected error for unknown entity type")
	}
}

func TestPublishAllAggregates(t *testing.T) {
	repo := newFakePublishRepo()
	pageTable := types.EntityTypePage.TableName()
	styleTable := types.EntityTypeSharedStyle.TableName()
	repo.drafts[pageTable] = []map[string]interface{}{draftRow(uuid.NewString(), "sha256:p")}
	repo.drafts[styleTable] = []map[string]interface{}{
		draftRow(uuid.NewString(), "sha256:s1"),
		draftRow(uuid.NewString(), "sha256:s2"),
	}

	publisher := NewPublisher(testLogger(t), repo, 0)
	summary, err := publisher.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("PublishAll: %v", err)
	}

	if summary.Total.Added != 3 {
		t.Fatalf("Total.Added = %d, want 3", summary.Total.Added)
	}
	if summary.ByType[types.EntityTypePage].Added != 1 {
		t.Fatalf("page Added = %d, want 1", summary.ByType[types.EntityTypePage].Added)
	}
	if summary.ByType[types.EntityTypeSharedStyle].Added != 2 {
		t.Fatalf("style Added = %d, want 2", summary.ByType[types.EntityTypeSharedStyle].Added)
	}
	if len(summary.ByType) != len(types.AllEntityTypes()) {
		t.Fatalf("ByType has %d entries, want %d", len(summary.ByType), len(types.AllEntityTypes()))
	}
}
