package services

import (
	"testing"
	"time"

	"github.com/ycode/builder-backend/internal/types"
)

func TestWriteMarksClearIsOneShot(t *testing.T) {
	marks := newWriteMarks()
	key := StateKey{EntityType: types.EntityTypePageLayout, EntityID: "layout-1"}

	marks.Mark(key, time.Minute)
	if !marks.IsMarked(key) {
		t.Fatal("entity not marked after Mark")
	}
	if !marks.Clear(key) {
		t.Fatal("Clear returned false for a marked entity")
	}
	if marks.Clear(key) {
		t.Fatal("second Clear reported the mark again")
	}
	if marks.IsMarked(key) {
		t.Fatal("entity still marked after Clear")
	}
}

func TestWriteMarksExpire(t *testing.T) {
	marks := newWriteMarks()
	key := StateKey{EntityType: types.EntityTypeComponent, EntityID: "component-1"}

	marks.Mark(key, 10*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for marks.IsMarked(key) {
		if time.Now().After(deadline) {
			t.Fatal("mark did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// An expired mark must not suppress the next save.
	if marks.Clear(key) {
		t.Fatal("expired mark still cleared as present")
	}
}

func TestWriteMarksRemarkExtendsTTL(t *testing.T) {
	marks := newWriteMarks()
	key := StateKey{EntityType: types.EntityTypeSharedStyle, EntityID: "style-1"}

	marks.Mark(key, 10*time.Millisecond)
	marks.Mark(key, time.Minute)
	time.Sleep(30 * time.Millisecond)

	if !marks.IsMarked(key) {
		t.Fatal("re-marking did not replace the shorter timer")
	}
}
