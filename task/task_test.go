package task

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	tk := New("buy milk", time.Time{}, []string{"errand"}, PriorityHigh)

	if tk.ID == "" {
		t.Error("New task has no ID")
	}
	if tk.Project != DefaultProject {
		t.Errorf("Project = %q, want %q", tk.Project, DefaultProject)
	}
	if tk.Status != StatusPending {
		t.Errorf("Status = %v, want pending", tk.Status)
	}
	if tk.Created.IsZero() {
		t.Error("Created not set")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input  string
		want   Priority
		wantOK bool
	}{
		{"low", PriorityLow, true},
		{"HIGH", PriorityHigh, true},
		{"med", PriorityMedium, true},
		{" h ", PriorityHigh, true},
		{"", PriorityMedium, true},
		{"urgent", PriorityMedium, false},
	}

	for _, tt := range tests {
		got, ok := ParsePriority(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePriority(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchesSearch(t *testing.T) {
	tk := &Task{Name: "Write report", Tags: []string{"work", "quarterly"}}

	tests := []struct {
		term string
		want bool
	}{
		{"report", true},
		{"REPORT", true},
		{"work", true},
		{"quart", true},
		{"groceries", false},
	}

	for _, tt := range tests {
		if got := tk.MatchesSearch(tt.term); got != tt.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestToggle(t *testing.T) {
	tk := &Task{Status: StatusPending}

	if got := tk.Toggle(); got != StatusDone {
		t.Errorf("Toggle from pending = %v, want done", got)
	}
	if got := tk.Toggle(); got != StatusPending {
		t.Errorf("Toggle from done = %v, want pending", got)
	}
}

func TestSortByDue(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)

	noDue := &Task{Name: "no due"}
	early := &Task{Name: "early", Due: now.AddDate(0, 0, 1)}
	lateLow := &Task{Name: "late low", Due: now.AddDate(0, 0, 5), Priority: PriorityLow}
	lateHigh := &Task{Name: "late high", Due: now.AddDate(0, 0, 5), Priority: PriorityHigh}

	tasks := []*Task{noDue, lateLow, early, lateHigh}
	SortByDue(tasks)

	want := []*Task{early, lateHigh, lateLow, noDue}
	for i, tk := range want {
		if tasks[i] != tk {
			t.Fatalf("SortByDue order[%d] = %q, want %q", i, tasks[i].Name, tk.Name)
		}
	}
}

func TestFilterByDatePreset(t *testing.T) {
	// Fixed reference time: Tuesday, January 13, 2026 at 10:00am
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)

	overdue := &Task{Name: "overdue", Due: now.AddDate(0, 0, -2)}
	doneOverdue := &Task{Name: "done overdue", Due: now.AddDate(0, 0, -2), Status: StatusDone}
	today := &Task{Name: "today", Due: time.Date(2026, 1, 13, 17, 0, 0, 0, time.Local)}
	tomorrow := &Task{Name: "tomorrow", Due: time.Date(2026, 1, 14, 9, 0, 0, 0, time.Local)}
	saturday := &Task{Name: "saturday", Due: time.Date(2026, 1, 17, 9, 0, 0, 0, time.Local)}
	nextWeek := &Task{Name: "next week", Due: time.Date(2026, 1, 20, 9, 0, 0, 0, time.Local)}
	farOut := &Task{Name: "far out", Due: time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)}
	noDue := &Task{Name: "no due"}

	tasks := []*Task{overdue, doneOverdue, today, tomorrow, saturday, nextWeek, farOut, noDue}

	tests := []struct {
		preset string
		want   []*Task
	}{
		{"today", []*Task{today}},
		{"tomorrow", []*Task{tomorrow}},
		{"this_week", []*Task{today, tomorrow, saturday}},
		{"next_week", []*Task{nextWeek}},
		{"overdue", []*Task{overdue}},
		{"someday", nil},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			got := FilterByDatePreset(tasks, tt.preset, now)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByDatePreset(%q) returned %d tasks, want %d", tt.preset, len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("FilterByDatePreset(%q)[%d] = %q, want %q", tt.preset, i, got[i].Name, tt.want[i].Name)
				}
			}
		})
	}
}

func TestFilterBySearch(t *testing.T) {
	a := &Task{Name: "Call dentist", Tags: []string{"health"}}
	b := &Task{Name: "Pay rent"}

	tasks := []*Task{a, b}

	if got := FilterBySearch(tasks, ""); len(got) != 2 {
		t.Errorf("empty term kept %d tasks, want 2", len(got))
	}
	if got := FilterBySearch(tasks, "health"); len(got) != 1 || got[0] != a {
		t.Errorf("FilterBySearch(health) = %v", got)
	}
}
