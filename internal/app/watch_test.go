package app

import (
	"testing"

	"github.com/blackwell-systems/logwatch/internal/store"
	"github.com/blackwell-systems/logwatch/internal/watcher"
)

// newTestJournal creates an in-memory journal with the schema applied.
func newTestJournal(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return st
}

func TestJournalingNotifyRecordsEveryTransition(t *testing.T) {
	st := newTestJournal(t)
	notify := journalingNotify(st)

	notify(watcher.TransitionWatch, "/var/log/a.log")
	notify(watcher.TransitionRotate, "/var/log/a.log")
	notify(watcher.TransitionUnwatch, "/var/log/a.log")

	events, err := st.RecentEvents(10)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("journaled %d events, want 3", len(events))
	}
	// Most recent first.
	want := []string{store.EventUnwatch, store.EventRotate, store.EventWatch}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("event[%d].Type = %q, want %q", i, e.Type, want[i])
		}
		if e.Path != "/var/log/a.log" {
			t.Errorf("event[%d].Path = %q, want /var/log/a.log", i, e.Path)
		}
	}
}
