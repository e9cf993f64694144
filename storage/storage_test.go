package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crjaensch/smart-todo-cli/task"
)

func TestLoadTasksMissingFile(t *testing.T) {
	s, err := NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	tasks, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks on empty store: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("LoadTasks on empty store returned %d tasks", len(tasks))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	due := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	orig := []*task.Task{
		{
			ID:       "id-1",
			Name:     "Write report",
			Created:  time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC),
			Due:      due,
			Tags:     []string{"work"},
			Project:  "office",
			Priority: task.PriorityHigh,
			Status:   task.StatusPending,
			Note:     "quarterly numbers",
		},
		{
			ID:      "id-2",
			Name:    "No due date",
			Created: time.Date(2026, 1, 13, 11, 0, 0, 0, time.UTC),
			Status:  task.StatusDone,
		},
	}

	if err := s.SaveTasks(orig); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	loaded, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadTasks returned %d tasks, want 2", len(loaded))
	}

	got := loaded[0]
	if got.ID != "id-1" || got.Name != "Write report" || got.Project != "office" {
		t.Errorf("first task = %+v", got)
	}
	if !got.Due.Equal(due) {
		t.Errorf("Due = %v, want %v", got.Due, due)
	}
	if got.Priority != task.PriorityHigh || got.Status != task.StatusPending {
		t.Errorf("priority/status = %v/%v", got.Priority, got.Status)
	}
	if got.Note != "quarterly numbers" {
		t.Errorf("Note = %q", got.Note)
	}

	second := loaded[1]
	if !second.Due.IsZero() {
		t.Errorf("second task Due = %v, want zero", second.Due)
	}
	if second.Status != task.StatusDone {
		t.Errorf("second task Status = %v, want done", second.Status)
	}
	if second.Project != task.DefaultProject {
		t.Errorf("missing project loaded as %q, want %q", second.Project, task.DefaultProject)
	}
}

func TestTasksFileUsesISO8601(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStoreAt(dir)
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	tasks := []*task.Task{{
		ID:      "id-1",
		Name:    "check format",
		Created: time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC),
		Due:     time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC),
	}}
	if err := s.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"2026-05-20T09:00:00Z"`) {
		t.Errorf("tasks file does not contain ISO-8601 due date:\n%s", data)
	}
}

func TestLoadTasksCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStoreAt(dir)
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := s.LoadTasks(); err == nil {
		t.Error("LoadTasks on corrupt file succeeded, want error")
	}
}

func TestProjects(t *testing.T) {
	s, err := NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	projects, err := s.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects on empty store: %v", err)
	}
	if len(projects) != 1 || projects[0] != task.DefaultProject {
		t.Errorf("initial projects = %v, want [%s]", projects, task.DefaultProject)
	}

	if err := s.SaveProjects([]string{task.DefaultProject, "health"}); err != nil {
		t.Fatalf("SaveProjects: %v", err)
	}

	projects, err = s.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 2 || projects[1] != "health" {
		t.Errorf("projects = %v, want [default health]", projects)
	}
}
