package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/requestdata"
	"github.com/ycode/builder-backend/internal/types"
)

func sessionContext(sessionID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		WorkspaceID: uuid.New(),
		SessionID:   sessionID,
	})
}

func layerNode(id, text string) map[string]interface{} {
	return map[string]interface{}{"id": id, "type": "text", "text": text}
}

func TestFirstObservationSeedsWithoutRecording(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)
	if stored != nil {
		t.Fatalf("first observation recorded a version: %#v", stored)
	}
	if versions.count() != 0 {
		t.Fatalf("version persisted on first observation")
	}
}

func TestSecondObservationRecordsDiff(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	sessionID := uuid.New()
	ctx := sessionContext(sessionID)
	entityID := uuid.New()

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)
	stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "two")}, nil)

	if stored == nil {
		t.Fatal("expected a recorded version")
	}
	if stored.SessionID != sessionID {
		t.Fatalf("SessionID = %s, want %s", stored.SessionID, sessionID)
	}
	if len(stored.Redo) == 0 || len(stored.Undo) == 0 {
		t.Fatal("version missing redo or undo patch")
	}
	if stored.PreviousHash == "" || stored.CurrentHash == "" || stored.PreviousHash == stored.CurrentHash {
		t.Fatalf("bad hashes: previous=%s current=%s", stored.PreviousHash, stored.CurrentHash)
	}
	if stored.Description == "" {
		t.Fatal("version missing description")
	}
}

func TestNoOpEditRecordsNothing(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()
	tree := []interface{}{layerNode("a", "one")}

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, tree, nil)
	if stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, tree, nil); stored != nil {
		t.Fatalf("identical state recorded a version: %#v", stored)
	}
	if versions.count() != 0 {
		t.Fatal("no-op edit persisted a version")
	}
}

func TestTransientOnlyChangeRecordsNothing(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)

	withUIState := []interface{}{
		map[string]interface{}{"id": "a", "type": "text", "text": "one", "selected": true, "hovered": true},
	}
	if stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, withUIState, nil); stored != nil {
		t.Fatalf("transient-only change recorded a version: %#v", stored)
	}
}

func TestReplayWriteIsSuppressedOnce(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)

	recorder.MarkReplayWrite(types.EntityTypePageLayout, entityID)
	if stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "two")}, nil); stored != nil {
		t.Fatalf("replay write recorded a version: %#v", stored)
	}

	// The mark is one-shot: the next distinct edit records normally, diffed
	// against the replayed state.
	stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "three")}, nil)
	if stored == nil {
		t.Fatal("edit after replay should record a version")
	}
	if versions.count() != 1 {
		t.Fatalf("expected exactly 1 version, got %d", versions.count())
	}
}

func TestRequirementsExtractedIntoMetadata(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	before := []interface{}{map[string]interface{}{"id": "n1", "componentId": "C1"}}
	after := []interface{}{map[string]interface{}{"id": "n1", "componentId": "C2"}}

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, before, nil)
	stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, after, nil)
	if stored == nil {
		t.Fatal("expected a recorded version")
	}

	meta, err := stored.DecodedMetadata()
	if err != nil {
		t.Fatalf("DecodedMetadata: %v", err)
	}
	if meta.Requirements == nil {
		t.Fatal("expected requirements in metadata")
	}
	want := []string{"C1", "C2"}
	if len(meta.Requirements.ComponentIDs) != 2 || meta.Requirements.ComponentIDs[0] != want[0] || meta.Requirements.ComponentIDs[1] != want[1] {
		t.Fatalf("ComponentIDs = %v, want %v", meta.Requirements.ComponentIDs, want)
	}
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)

	versions.failNext = true
	if stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "two")}, nil); stored != nil {
		t.Fatalf("failed persistence still returned a version: %#v", stored)
	}

	// The baseline was not advanced past the failed record, so the change
	// is still pending and records on the next save.
	stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "two")}, nil)
	if stored == nil {
		t.Fatal("pending change lost after persistence failure")
	}
}

func TestForgetEntityReseedsBaseline(t *testing.T) {
	versions := &fakeVersionRepo{}
	recorder := NewVersionRecorder(testLogger(t), versions, NewMemoryStateCache())
	ctx := sessionContext(uuid.New())
	entityID := uuid.New()

	recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "one")}, nil)
	recorder.ForgetEntity(ctx, types.EntityTypePageLayout, entityID)

	// With the baseline evicted the next write is a first observation.
	if stored := recorder.Record(ctx, types.EntityTypePageLayout, entityID, []interface{}{layerNode("a", "two")}, nil); stored != nil {
		t.Fatalf("recorded against an evicted baseline: %#v", stored)
	}
}
