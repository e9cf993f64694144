package watcher

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/crjaensch/smart-todo-cli/storage"
	"github.com/crjaensch/smart-todo-cli/task"
)

// Event is sent when the tasks file changes on disk and has been reloaded.
type Event struct {
	Tasks []*task.Task
	Err   error
}

// Watcher watches the tasks file for external edits, reloading through the
// store whenever it changes so the TUI stays in sync with other writers.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	store     *storage.Store
	Events    chan Event
	done      chan struct{}
}

// New creates a Watcher over the given store.
func New(store *storage.Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		store:     store,
		Events:    make(chan Event, 10),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers the store directory. The directory, not the file, is
// watched so that editors replacing the file with a rename are still seen.
func (w *Watcher) Watch() error {
	return w.fsWatcher.Add(filepath.Dir(w.store.TasksPath()))
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	go w.run()
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.fsWatcher.Close()
}

func (w *Watcher) run() {
	tasksPath := w.store.TasksPath()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Only care about changes to the tasks file itself
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Name != tasksPath {
				continue
			}

			tasks, err := w.store.LoadTasks()
			w.Events <- Event{
				Tasks: tasks,
				Err:   err,
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}
