package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/task"
)

const (
	dirName          = ".smart-todo"
	tasksFileName    = "tasks.json"
	projectsFileName = "projects.json"
)

// savedTask is the JSON-serializable form of a task. Timestamps are ISO-8601
// strings; a null due date means none.
type savedTask struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Created  string   `json:"created"`
	Due      *string  `json:"due"`
	Tags     []string `json:"tags"`
	Project  string   `json:"project"`
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
	Note     string   `json:"note,omitempty"`
}

// Store reads and writes the task and project files in a single directory.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) the default store under the user's
// home directory.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(homeDir, dirName))
}

// NewStoreAt opens a store rooted at dir, creating the directory if needed.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// TasksPath returns the path of the tasks file, for the file watcher.
func (s *Store) TasksPath() string {
	return filepath.Join(s.dir, tasksFileName)
}

// LoadTasks reads all tasks from the store. A missing file is an empty
// store, not an error.
func (s *Store) LoadTasks() ([]*task.Task, error) {
	data, err := os.ReadFile(s.TasksPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var saved []savedTask
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("corrupt tasks file: %w", err)
	}

	tasks := make([]*task.Task, 0, len(saved))
	for _, sv := range saved {
		t := &task.Task{
			ID:      sv.ID,
			Name:    sv.Name,
			Tags:    sv.Tags,
			Project: sv.Project,
			Status:  task.StatusPending,
			Note:    sv.Note,
		}
		if t.Project == "" {
			t.Project = task.DefaultProject
		}
		if created, err := datetime.ParseISO8601(sv.Created); err == nil {
			t.Created = created
		}
		if sv.Due != nil && *sv.Due != "" {
			if due, err := datetime.ParseISO8601(*sv.Due); err == nil {
				t.Due = due
			}
		}
		if p, ok := task.ParsePriority(sv.Priority); ok {
			t.Priority = p
		}
		if sv.Status == "done" {
			t.Status = task.StatusDone
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// SaveTasks writes all tasks to the store.
func (s *Store) SaveTasks(tasks []*task.Task) error {
	saved := make([]savedTask, len(tasks))
	for i, t := range tasks {
		sv := savedTask{
			ID:       t.ID,
			Name:     t.Name,
			Created:  datetime.FormatISO8601(t.Created),
			Tags:     t.Tags,
			Project:  t.Project,
			Priority: t.Priority.String(),
			Status:   t.Status.String(),
			Note:     t.Note,
		}
		if !t.Due.IsZero() {
			due := datetime.FormatISO8601(t.Due)
			sv.Due = &due
		}
		saved[i] = sv
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.TasksPath(), data, 0644)
}

// LoadProjects reads the project list. The default project is always
// present and always first.
func (s *Store) LoadProjects() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, projectsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{task.DefaultProject}, nil
		}
		return nil, err
	}

	var projects []string
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("corrupt projects file: %w", err)
	}

	out := []string{task.DefaultProject}
	for _, p := range projects {
		if p != task.DefaultProject && p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// SaveProjects writes the project list.
func (s *Store) SaveProjects(projects []string) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, projectsFileName), data, 0644)
}
