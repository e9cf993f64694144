package tui

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/crjaensch/smart-todo-cli/task"
)

// fixedClock pins "now" so due-date math is deterministic in tests
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// createTestModel creates a properly initialized Model for testing.
// Store and assistant are nil since tests need neither persistence nor
// a network client.
func createTestModel(t *testing.T, tasks []*task.Task, now time.Time) *Model {
	t.Helper()
	m := New(tasks, []string{task.DefaultProject, "work"}, nil, nil, fixedClock{now: now}, nil)
	return &m
}

func testTasks(now time.Time) []*task.Task {
	rent := task.New("pay rent", now.AddDate(0, 0, 1), nil, task.PriorityHigh)
	milk := task.New("buy milk", time.Time{}, []string{"errand"}, task.PriorityLow)
	report := task.New("quarterly report", now.AddDate(0, 0, 10), []string{"office"}, task.PriorityMedium)
	report.Project = "work"
	late := task.New("overdue review", now.AddDate(0, 0, -2), nil, task.PriorityMedium)
	late.Status = task.StatusDone
	return []*task.Task{rent, milk, report, late}
}

func TestVisibleTasksScopedToProject(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)
	m := createTestModel(t, testTasks(now), now)

	visible := m.visibleTasks()
	if len(visible) != 3 {
		t.Fatalf("default project shows %d tasks, want 3", len(visible))
	}
	for _, tk := range visible {
		if tk.Project != task.DefaultProject {
			t.Errorf("task %q from project %q leaked into default view", tk.Name, tk.Project)
		}
	}

	m.cycleProject()
	visible = m.visibleTasks()
	if len(visible) != 1 || visible[0].Name != "quarterly report" {
		t.Errorf("work project shows %v", names(visible))
	}
}

func TestVisibleTasksBracketFilters(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)

	cases := []struct {
		term string
		want []string
	}{
		{"[date:tomorrow]", []string{"pay rent"}},
		{"[date:overdue]", nil}, // the overdue task is done
		{"[priority:high]", []string{"pay rent"}},
		{"[status:done]", []string{"overdue review"}},
		{"[status:pending]", []string{"pay rent", "buy milk"}},
		{"[priority:urgent]", nil},
		{"milk", []string{"buy milk"}},
		{"errand", []string{"buy milk"}}, // tag match
	}

	for _, c := range cases {
		m := createTestModel(t, testTasks(now), now)
		m.filterInput.SetValue(c.term)

		got := names(m.visibleTasks())
		if !sameNames(got, c.want) {
			t.Errorf("filter %q = %v, want %v", c.term, got, c.want)
		}
	}
}

func TestAcceptFieldDueDate(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)
	m := createTestModel(t, nil, now)
	m.beginAdd()

	if !m.acceptField("pay rent") {
		t.Fatalf("name rejected: %s", m.inputError)
	}
	m.field = fieldDue

	if m.acceptField("not a date at all") {
		t.Fatal("nonsense due date accepted")
	}
	if m.inputError == "" {
		t.Error("no error message after bad due date")
	}

	if !m.acceptField("tomorrow") {
		t.Fatalf("due date rejected: %s", m.inputError)
	}
	want := time.Date(2026, 1, 14, 9, 0, 0, 0, time.Local)
	if !m.draft.due.Equal(want) {
		t.Errorf("draft due = %v, want %v", m.draft.due, want)
	}
	if m.duePreview != "Tomorrow at 9:00 AM" {
		t.Errorf("due preview = %q, want %q", m.duePreview, "Tomorrow at 9:00 AM")
	}
}

func TestAddFlowCommit(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)
	m := createTestModel(t, nil, now)
	m.beginAdd()

	steps := []struct {
		field addField
		value string
	}{
		{fieldName, "water plants"},
		{fieldDue, "next friday"},
		{fieldTags, "home, garden"},
		{fieldPriority, ""},
	}
	for _, s := range steps {
		m.field = s.field
		if !m.acceptField(s.value) {
			t.Fatalf("field %v rejected %q: %s", s.field, s.value, m.inputError)
		}
	}
	m.commitDraft()

	if len(m.tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(m.tasks))
	}
	added := m.tasks[0]
	if added.Name != "water plants" {
		t.Errorf("Name = %q", added.Name)
	}
	wantDue := time.Date(2026, 1, 16, 9, 0, 0, 0, time.Local)
	if !added.Due.Equal(wantDue) {
		t.Errorf("Due = %v, want %v", added.Due, wantDue)
	}
	if len(added.Tags) != 2 || added.Tags[0] != "home" || added.Tags[1] != "garden" {
		t.Errorf("Tags = %v", added.Tags)
	}
	if added.Priority != task.PriorityMedium {
		t.Errorf("Priority = %v, want medium for empty input", added.Priority)
	}
	if added.Project != task.DefaultProject {
		t.Errorf("Project = %q", added.Project)
	}
}

func TestEditFlowUpdatesInPlace(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)
	original := task.New("pay rent", now.AddDate(0, 0, 1), nil, task.PriorityHigh)
	m := createTestModel(t, []*task.Task{original}, now)

	m.beginEdit(original)
	if m.fieldInput.Value() != "pay rent" {
		t.Errorf("name prefill = %q", m.fieldInput.Value())
	}

	m.field = fieldName
	if !m.acceptField("pay rent early") {
		t.Fatalf("name rejected: %s", m.inputError)
	}
	m.field = fieldDue
	if !m.acceptField("") {
		t.Fatalf("empty due rejected: %s", m.inputError)
	}
	m.field = fieldTags
	if !m.acceptField("bills") {
		t.Fatalf("tags rejected: %s", m.inputError)
	}
	m.field = fieldPriority
	if !m.acceptField("low") {
		t.Fatalf("priority rejected: %s", m.inputError)
	}
	m.commitDraft()

	if original.Name != "pay rent early" {
		t.Errorf("Name = %q", original.Name)
	}
	if !original.Due.IsZero() {
		t.Errorf("Due = %v, want cleared", original.Due)
	}
	if original.Priority != task.PriorityLow {
		t.Errorf("Priority = %v", original.Priority)
	}
	if len(m.tasks) != 1 {
		t.Errorf("edit created a new task, len = %d", len(m.tasks))
	}
}

func TestDeleteCurrentTask(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.Local)
	m := createTestModel(t, testTasks(now), now)

	before := len(m.visibleTasks())
	target := m.selectedTask()
	if target == nil {
		t.Fatal("no selected task")
	}
	m.deleteCurrentTask()
	if len(m.visibleTasks()) != before-1 {
		t.Errorf("visible count = %d, want %d", len(m.visibleTasks()), before-1)
	}
	for _, tk := range m.tasks {
		if tk == target {
			t.Errorf("deleted task %q still present", target.Name)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"a very long task name", 10, "a very ..."},
		{"☕☕☕☕☕☕☕☕☕☕", 8, "☕☕☕☕☕..."},
		{"héllo wörld with accénts", 10, "héllo w..."},
	}
	for _, c := range cases {
		got := truncate(c.in, c.max)
		if got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", c.in, c.max, got)
		}
	}
}

func names(tasks []*task.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Name)
	}
	return out
}

func sameNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]int)
	for _, n := range got {
		seen[n]++
	}
	for _, n := range want {
		seen[n]--
		if seen[n] < 0 {
			return false
		}
	}
	return true
}
