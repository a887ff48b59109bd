package services

import (
	"sync"
	"time"
)

// writeMarks flags entities whose next draft save comes from undo/redo so
// the recorder does not re-record the replay as a fresh version. Each mark
// auto-expires: if the save never completes, the timer clears the mark so
// a stuck flag cannot permanently suppress recording.
type writeMarks struct {
	mu     sync.Mutex
	timers map[StateKey]*time.Timer
}

func newWriteMarks() *writeMarks {
	return &writeMarks{timers: map[StateKey]*time.Timer{}}
}

func (m *writeMarks) Mark(key StateKey, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.timers[key]; ok {
		existing.Stop()
	}
	m.timers[key] = time.AfterFunc(ttl, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.timers, key)
	})
}

// Clear cancels the mark's timer and reports whether the entity was
// marked.
func (m *writeMarks) Clear(key StateKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer, ok := m.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(m.timers, key)
	return true
}

func (m *writeMarks) IsMarked(key StateKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[key]
	return ok
}
