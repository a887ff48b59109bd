package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ycode/builder-backend/internal/types"
)

type editorStack struct {
	versions   *fakeVersionRepo
	layouts    *fakeLayoutRepo
	components *fakeComponentRepo
	styles     *fakeStyleRepo
	recorder   VersionRecorder
	layoutSvc  PageLayoutService
	compSvc    ComponentService
	styleSvc   SharedStyleService
	undoRedo   UndoRedoService
}

func newEditorStack(t *testing.T) *editorStack {
	t.Helper()
	log := testLogger(t)
	versions := &fakeVersionRepo{}
	layouts := newFakeLayoutRepo()
	components := newFakeComponentRepo()
	styles := newFakeStyleRepo()

	recorder := NewVersionRecorder(log, versions, NewMemoryStateCache())
	layoutSvc := NewPageLayoutService(log, layouts, recorder)
	compSvc := NewComponentService(log, components, recorder)
	styleSvc := NewSharedStyleService(log, styles, recorder)
	undoRedo := NewUndoRedoService(log, versions, recorder, layoutSvc, compSvc, styleSvc, components, styles, true)

	return &editorStack{
		versions:   versions,
		layouts:    layouts,
		components: components,
		styles:     styles,
		recorder:   recorder,
		layoutSvc:  layoutSvc,
		compSvc:    compSvc,
		styleSvc:   styleSvc,
		undoRedo:   undoRedo,
	}
}

func mustLayoutState(t *testing.T, svc PageLayoutService, ctx context.Context, id uuid.UUID) []interface{} {
	t.Helper()
	state, err := svc.DraftState(ctx, id)
	if err != nil {
		t.Fatalf("DraftState: %v", err)
	}
	return state
}

func TestUndoRedoWalksLayoutHistory(t *testing.T) {
	stack := newEditorStack(t)
	ctx := sessionContext(uuid.New())

	treeA := []interface{}{layerNode("a", "one")}
	treeB := []interface{}{layerNode("a", "two")}
	treeC := []interface{}{layerNode("a", "three"), layerNode("b", "new")}

	layout, err := stack.layoutSvc.CreateDraft(ctx, uuid.New(), uuid.New(), treeA)
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := stack.layoutSvc.UpdateDraftLayers(ctx, layout.ID, treeB, nil); err != nil {
		t.Fatalf("UpdateDraftLayers: %v", err)
	}
	if _, err := stack.layoutSvc.UpdateDraftLayers(ctx, layout.ID, treeC, nil); err != nil {
		t.Fatalf("UpdateDraftLayers: %v", err)
	}
	if stack.versions.count() != 2 {
		t.Fatalf("expected 2 versions, got %d", stack.versions.count())
	}

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePageLayout, layout.ID); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := mustLayoutState(t, stack.layoutSvc, ctx, layout.ID); !reflect.DeepEqual(got, treeB) {
		t.Fatalf("after first undo state = %#v, want %#v", got, treeB)
	}

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePageLayout, layout.ID); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := mustLayoutState(t, stack.layoutSvc, ctx, layout.ID); !reflect.DeepEqual(got, treeA) {
		t.Fatalf("after second undo state = %#v, want %#v", got, treeA)
	}

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}

	if _, err := stack.undoRedo.Redo(ctx, types.EntityTypePageLayout, layout.ID); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := mustLayoutState(t, stack.layoutSvc, ctx, layout.ID); !reflect.DeepEqual(got, treeB) {
		t.Fatalf("after redo state = %#v, want %#v", got, treeB)
	}

	if _, err := stack.undoRedo.Redo(ctx, types.EntityTypePageLayout, layout.ID); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := mustLayoutState(t, stack.layoutSvc, ctx, layout.ID); !reflect.DeepEqual(got, treeC) {
		t.Fatalf("after second redo state = %#v, want %#v", got, treeC)
	}

	if _, err := stack.undoRedo.Redo(ctx, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}

	// Replayed writes never append to history.
	if stack.versions.count() != 2 {
		t.Fatalf("undo/redo replays added versions: %d", stack.versions.count())
	}
}

func TestUndoRefusedWhenRequirementMissing(t *testing.T) {
	stack := newEditorStack(t)
	ctx := sessionContext(uuid.New())

	component, err := stack.compSvc.CreateDraft(ctx, "Card", []interface{}{layerNode("c1", "inner")})
	if err != nil {
		t.Fatalf("CreateDraft component: %v", err)
	}

	layout, err := stack.layoutSvc.CreateDraft(ctx, uuid.New(), uuid.New(), []interface{}{layerNode("a", "one")})
	if err != nil {
		t.Fatalf("CreateDraft layout: %v", err)
	}

	withRef := []interface{}{
		layerNode("a", "one"),
		map[string]interface{}{"id": "b", "type": "instance", "componentId": component.ID.String()},
	}
	if _, err := stack.layoutSvc.UpdateDraftLayers(ctx, layout.ID, withRef, nil); err != nil {
		t.Fatalf("UpdateDraftLayers: %v", err)
	}

	if err := stack.compSvc.SoftDeleteDraft(ctx, component.ID); err != nil {
		t.Fatalf("SoftDeleteDraft: %v", err)
	}

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrMissingRequirement) {
		t.Fatalf("expected ErrMissingRequirement, got %v", err)
	}
}

func TestUndoRefusedOnHashMismatch(t *testing.T) {
	stack := newEditorStack(t)
	ctx := sessionContext(uuid.New())

	layout, err := stack.layoutSvc.CreateDraft(ctx, uuid.New(), uuid.New(), []interface{}{layerNode("a", "one")})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := stack.layoutSvc.UpdateDraftLayers(ctx, layout.ID, []interface{}{layerNode("a", "two")}, nil); err != nil {
		t.Fatalf("UpdateDraftLayers: %v", err)
	}

	// Corrupt the draft behind the recorder's back.
	stack.layouts.mu.Lock()
	stack.layouts.drafts[layout.ID].Layers = datatypes.JSON(`[{"id":"a","type":"text","text":"tampered"}]`)
	stack.layouts.mu.Unlock()

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestUndoRejectsUnrecordableType(t *testing.T) {
	stack := newEditorStack(t)
	ctx := sessionContext(uuid.New())
	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypePage, uuid.New()); !errors.Is(err, ErrEntityNotRecordable) {
		t.Fatalf("expected ErrEntityNotRecordable, got %v", err)
	}
}

func TestUndoRestoresComponentName(t *testing.T) {
	stack := newEditorStack(t)
	ctx := sessionContext(uuid.New())

	component, err := stack.compSvc.CreateDraft(ctx, "Card", []interface{}{layerNode("c1", "inner")})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := stack.compSvc.UpdateDraft(ctx, component.ID, "Card v2", []interface{}{layerNode("c1", "inner")}, nil); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	if _, err := stack.undoRedo.Undo(ctx, types.EntityTypeComponent, component.ID); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	restored, err := stack.compSvc.GetDraft(ctx, component.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if restored.Name != "Card" {
		t.Fatalf("Name = %q, want %q", restored.Name, "Card")
	}
}

func TestCursorsAreSessionScoped(t *testing.T) {
	stack := newEditorStack(t)
	sessionA := sessionContext(uuid.New())
	sessionB := sessionContext(uuid.New())

	layout, err := stack.layoutSvc.CreateDraft(sessionA, uuid.New(), uuid.New(), []interface{}{layerNode("a", "one")})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := stack.layoutSvc.UpdateDraftLayers(sessionA, layout.ID, []interface{}{layerNode("a", "two")}, nil); err != nil {
		t.Fatalf("UpdateDraftLayers: %v", err)
	}

	if _, err := stack.undoRedo.Undo(sessionA, types.EntityTypePageLayout, layout.ID); err != nil {
		t.Fatalf("Undo in session A: %v", err)
	}
	// Session A's cursor is at 0, session B's starts at the history end --
	// but B's undo is refused because the draft no longer matches the
	// version's recorded hash.
	if _, err := stack.undoRedo.Undo(sessionA, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo in session A, got %v", err)
	}
	if _, err := stack.undoRedo.Undo(sessionB, types.EntityTypePageLayout, layout.ID); !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch in session B, got %v", err)
	}
}
