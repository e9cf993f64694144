package watcher

import (
	"testing"
	"time"

	"github.com/crjaensch/smart-todo-cli/storage"
	"github.com/crjaensch/smart-todo-cli/task"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	store, err := storage.NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	w, err := New(store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	w.Start()

	// Writing through the store should surface a reload event.
	if err := store.SaveTasks([]*task.Task{{ID: "id-1", Name: "from outside"}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	select {
	case ev := <-w.Events:
		if ev.Err != nil {
			t.Fatalf("event error: %v", ev.Err)
		}
		if len(ev.Tasks) != 1 || ev.Tasks[0].Name != "from outside" {
			t.Errorf("event tasks = %+v", ev.Tasks)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event within 5s")
	}
}
