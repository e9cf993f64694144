package task

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultProject is where tasks land when no project is named.
const DefaultProject = "default"

// Priority levels for tasks
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParsePriority maps a priority name to its level. Unrecognized input
// reports false and the medium default.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m", "":
		return PriorityMedium, true
	case "high", "h":
		return PriorityHigh, true
	default:
		return PriorityMedium, false
	}
}

// Status represents a task's completion state
type Status int

const (
	StatusPending Status = iota
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Task is a single todo item. A zero Due means no due date.
type Task struct {
	ID       string
	Name     string
	Created  time.Time
	Due      time.Time
	Tags     []string
	Project  string
	Priority Priority
	Status   Status
	Note     string
}

// New creates a pending task in the default project with a fresh ID.
func New(name string, due time.Time, tags []string, priority Priority) *Task {
	return &Task{
		ID:       uuid.NewString(),
		Name:     name,
		Created:  time.Now(),
		Due:      due,
		Tags:     tags,
		Project:  DefaultProject,
		Priority: priority,
		Status:   StatusPending,
	}
}

// HasTag reports whether the task carries the exact tag.
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether the term appears in the task's name or any
// of its tags, case-insensitively.
func (t *Task) MatchesSearch(term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(t.Name), term) {
		return true
	}
	for _, tg := range t.Tags {
		if strings.Contains(strings.ToLower(tg), term) {
			return true
		}
	}
	return false
}

// Toggle flips the task between pending and done and returns the new status.
func (t *Task) Toggle() Status {
	if t.Status == StatusDone {
		t.Status = StatusPending
	} else {
		t.Status = StatusDone
	}
	return t.Status
}

// IsOverdue reports whether the task has a due date that has passed and is
// still pending.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Due.IsZero() && t.Due.Before(now) && t.Status == StatusPending
}

// SortByName sorts tasks alphabetically by name.
func SortByName(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Name < tasks[j].Name
	})
}

// SortByCreation sorts tasks oldest first.
func SortByCreation(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Created.Before(tasks[j].Created)
	})
}

// SortByDue sorts tasks by due date ascending. Tasks without a due date go
// last; equal due dates put higher priority first.
func SortByDue(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.Due.IsZero() && b.Due.IsZero():
			return false
		case a.Due.IsZero():
			return false
		case b.Due.IsZero():
			return true
		case !a.Due.Equal(b.Due):
			return a.Due.Before(b.Due)
		default:
			return a.Priority > b.Priority
		}
	})
}

// FilterBySearch returns the tasks matching the term. An empty term keeps
// everything.
func FilterBySearch(tasks []*Task, term string) []*Task {
	if term == "" {
		return tasks
	}
	var out []*Task
	for _, t := range tasks {
		if t.MatchesSearch(term) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByProject returns the tasks belonging to the named project.
func FilterByProject(tasks []*Task, project string) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.Project == project {
			out = append(out, t)
		}
	}
	return out
}

// FilterByStatus returns the tasks in the given state.
func FilterByStatus(tasks []*Task, status Status) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// FilterByPriority returns the tasks at the given level.
func FilterByPriority(tasks []*Task, priority Priority) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.Priority == priority {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDateRange returns the tasks whose due date falls in [start, end],
// inclusive. A zero bound is open. Tasks without a due date never match.
func FilterByDateRange(tasks []*Task, start, end time.Time) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.Due.IsZero() {
			continue
		}
		if !start.IsZero() && t.Due.Before(start) {
			continue
		}
		if !end.IsZero() && t.Due.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByDatePreset returns the tasks matching a named date range:
// "today", "tomorrow", "this_week", "next_week", or "overdue". Weeks run
// from the current day through the coming Saturday. An unknown preset
// matches nothing.
func FilterByDatePreset(tasks []*Task, preset string, now time.Time) []*Task {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch strings.ToLower(preset) {
	case "today":
		return FilterByDateRange(tasks, dayStart, dayStart.AddDate(0, 0, 1).Add(-time.Second))
	case "tomorrow":
		start := dayStart.AddDate(0, 0, 1)
		return FilterByDateRange(tasks, start, start.AddDate(0, 0, 1).Add(-time.Second))
	case "this_week":
		end := dayStart.AddDate(0, 0, 7-int(now.Weekday()))
		return FilterByDateRange(tasks, dayStart, end.Add(-time.Second))
	case "next_week":
		start := dayStart.AddDate(0, 0, 7-int(now.Weekday()))
		return FilterByDateRange(tasks, start, start.AddDate(0, 0, 7).Add(-time.Second))
	case "overdue":
		var out []*Task
		for _, t := range tasks {
			if t.IsOverdue(now) {
				out = append(out, t)
			}
		}
		return out
	default:
		return nil
	}
}
