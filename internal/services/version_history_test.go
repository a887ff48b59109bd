package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ycode/builder-backend/internal/types"
)

func TestVersionHistoryCreateStoresRecord(t *testing.T) {
	repo := &fakeVersionRepo{}
	svc := NewVersionHistoryService(testLogger(t), repo)
	sessionID := uuid.New()
	ctx := sessionContext(sessionID)

	entityID := uuid.New()
	stored, err := svc.Create(ctx, &types.EntityVersion{
		EntityType:   types.EntityTypePageLayout,
		EntityID:     entityID,
		Description:  "Changed text",
		Redo:         datatypes.JSON(`[{"op":"replace","path":"/0/text","value":"b"}]`),
		Undo:         datatypes.JSON(`[{"op":"replace","path":"/0/text","value":"a"}]`),
		PreviousHash: "sha256:before",
		CurrentHash:  "sha256:after",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stored.ID == uuid.Nil {
		t.Fatal("stored record has no id")
	}
	if stored.ActionType != types.ActionTypeUpdate {
		t.Fatalf("ActionType = %q, want %q", stored.ActionType, types.ActionTypeUpdate)
	}
	// The session id defaults to the requesting session.
	if stored.SessionID != sessionID {
		t.Fatalf("SessionID = %s, want %s", stored.SessionID, sessionID)
	}

	history, err := svc.ListForEntity(ctx, types.EntityTypePageLayout, entityID)
	if err != nil {
		t.Fatalf("ListForEntity: %v", err)
	}
	if len(history) != 1 || history[0].Description != "Changed text" {
		t.Fatalf("unexpected history: %#v", history)
	}
}

func TestVersionHistoryCreateKeepsExplicitSession(t *testing.T) {
	repo := &fakeVersionRepo{}
	svc := NewVersionHistoryService(testLogger(t), repo)
	explicit := uuid.New()

	stored, err := svc.Create(sessionContext(uuid.New()), &types.EntityVersion{
		EntityType: types.EntityTypeComponent,
		EntityID:   uuid.New(),
		SessionID:  explicit,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stored.SessionID != explicit {
		t.Fatalf("SessionID = %s, want %s", stored.SessionID, explicit)
	}
}

func TestVersionHistoryCreateRejectsBadInput(t *testing.T) {
	repo := &fakeVersionRepo{}
	svc := NewVersionHistoryService(testLogger(t), repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &types.EntityVersion{
		EntityType: types.EntityType("widget"),
		EntityID:   uuid.New(),
	}); err == nil {
		t.Fatal("expected error for unknown entity type")
	}
	if _, err := svc.Create(ctx, &types.EntityVersion{
		EntityType: types.EntityTypePageLayout,
	}); err == nil {
		t.Fatal("expected error for missing entity id")
	}
	if repo.count() != 0 {
		t.Fatalf("rejected records were persisted: %d", repo.count())
	}
}
