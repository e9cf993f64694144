package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/task"
)

// saveState persists the current tasks and projects to disk
func (m *Model) saveState() {
	if m.store == nil {
		return
	}
	tasks := make([]*task.Task, len(m.tasks))
	copy(tasks, m.tasks)
	projects := make([]string, len(m.projects))
	copy(projects, m.projects)
	// Save in background to avoid blocking UI
	go func() {
		_ = m.store.SaveTasks(tasks)
		_ = m.store.SaveProjects(projects)
	}()
}

// currentProject returns the name of the project the view is scoped to.
func (m *Model) currentProject() string {
	if m.projectIndex < 0 || m.projectIndex >= len(m.projects) {
		return task.DefaultProject
	}
	return m.projects[m.projectIndex]
}

// visibleTasks returns the tasks the list shows: scoped to the current
// project, sorted, then narrowed by the active search. Bracketed search
// terms like "[date:this_week]" or "[priority:high]" select the matching
// filter instead of a text search.
func (m *Model) visibleTasks() []*task.Task {
	now := m.clock.Now()
	visible := task.FilterByProject(m.tasks, m.currentProject())

	switch m.sort {
	case sortByName:
		task.SortByName(visible)
	case sortByCreation:
		task.SortByCreation(visible)
	default:
		task.SortByDue(visible)
	}

	term := strings.TrimSpace(m.filterInput.Value())
	if term == "" {
		return visible
	}

	if kind, value, ok := splitBracketTerm(term); ok {
		switch kind {
		case "date":
			return task.FilterByDatePreset(visible, value, now)
		case "priority":
			if p, ok := task.ParsePriority(value); ok {
				return task.FilterByPriority(visible, p)
			}
			return nil
		case "status":
			switch value {
			case "done":
				return task.FilterByStatus(visible, task.StatusDone)
			case "pending":
				return task.FilterByStatus(visible, task.StatusPending)
			}
			return nil
		}
	}

	return task.FilterBySearch(visible, term)
}

// splitBracketTerm parses "[kind:value]" search terms.
func splitBracketTerm(term string) (kind, value string, ok bool) {
	if !strings.HasPrefix(term, "[") || !strings.HasSuffix(term, "]") {
		return "", "", false
	}
	inner := term[1 : len(term)-1]
	kind, value, found := strings.Cut(inner, ":")
	if !found || kind == "" || value == "" {
		return "", "", false
	}
	return kind, value, true
}

// refreshList updates the list items from the current tasks
func (m *Model) refreshList() {
	m.list.SetItems(tasksToItems(m.visibleTasks(), m.clock))
}

// selectedTask returns the currently selected task, or nil if none
func (m *Model) selectedTask() *task.Task {
	item := m.list.SelectedItem()
	if item == nil {
		return nil
	}
	ti, ok := item.(taskItem)
	if !ok {
		return nil
	}
	return ti.task
}

// deleteCurrentTask removes the currently selected task
func (m *Model) deleteCurrentTask() {
	t := m.selectedTask()
	if t == nil {
		return
	}
	for i, candidate := range m.tasks {
		if candidate == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
	m.refreshList()
	m.saveState()
	m.setStatus(fmt.Sprintf("Deleted %q", t.Name))
}

// cycleProject advances the view to the next project
func (m *Model) cycleProject() {
	if len(m.projects) == 0 {
		return
	}
	m.projectIndex = (m.projectIndex + 1) % len(m.projects)
	m.refreshList()
}

func (m *Model) setStatus(message string) {
	m.statusMessage = message
	m.statusMessageTime = m.clock.Now()
}

// statusLine returns the current status message, or "" once it has expired.
func (m *Model) statusLine() string {
	if m.statusMessage == "" {
		return ""
	}
	if m.clock.Now().Sub(m.statusMessageTime) > 4*time.Second {
		return ""
	}
	return m.statusMessage
}

// fieldPrompt returns the label and placeholder for the current add/edit field.
func (m *Model) fieldPrompt() (label, placeholder string) {
	switch m.field {
	case fieldName:
		return "Task name", "buy milk"
	case fieldDue:
		return "Due date", "tomorrow, next friday, in 3 days, 2:30pm, or empty"
	case fieldTags:
		return "Tags", "comma,separated or empty"
	default:
		return "Priority", "low, medium, or high (empty = medium)"
	}
}

// beginAdd resets the draft and starts the add flow at the name field.
func (m *Model) beginAdd() {
	m.editingTask = nil
	m.draft = taskDraft{priority: task.PriorityMedium}
	m.field = fieldName
	m.inputError = ""
	m.duePreview = ""
	m.fieldInput.Reset()
	m.fieldInput.Focus()
}

// beginEdit starts the add flow prefilled from an existing task.
func (m *Model) beginEdit(t *task.Task) {
	m.editingTask = t
	m.draft = taskDraft{
		name:     t.Name,
		due:      t.Due,
		tags:     append([]string(nil), t.Tags...),
		priority: t.Priority,
	}
	m.field = fieldName
	m.inputError = ""
	m.duePreview = ""
	m.fieldInput.SetValue(t.Name)
	m.fieldInput.Focus()
	m.fieldInput.CursorEnd()
}

// acceptField validates the current field's input, stages it in the draft,
// and reports whether the flow may advance. Parse failures stay on the same
// field with an error message so the user can retry.
func (m *Model) acceptField(value string) bool {
	value = strings.TrimSpace(value)
	now := m.clock.Now()

	switch m.field {
	case fieldName:
		if value == "" {
			m.inputError = "task name cannot be empty"
			return false
		}
		m.draft.name = value

	case fieldDue:
		if value == "" {
			m.draft.due = time.Time{}
			m.duePreview = ""
			break
		}
		due := datetime.ParseDueDate(value, now)
		if due.IsZero() {
			m.inputError = fmt.Sprintf("couldn't understand %q, try 'tomorrow' or 'jan 15'", value)
			return false
		}
		m.draft.due = due
		m.duePreview = datetime.FormatNaturalDate(due, now)

	case fieldTags:
		m.draft.tags = splitTags(value)

	case fieldPriority:
		p, ok := task.ParsePriority(value)
		if !ok {
			m.inputError = fmt.Sprintf("unknown priority %q", value)
			return false
		}
		m.draft.priority = p
	}

	m.inputError = ""
	return true
}

// prefillField loads the staged draft value for the field being entered.
func (m *Model) prefillField() {
	if m.editingTask == nil {
		m.fieldInput.Reset()
		return
	}
	switch m.field {
	case fieldDue:
		if m.draft.due.IsZero() {
			m.fieldInput.Reset()
		} else {
			m.fieldInput.SetValue(datetime.FormatISO8601(m.draft.due))
		}
	case fieldTags:
		m.fieldInput.SetValue(strings.Join(m.draft.tags, ","))
	case fieldPriority:
		m.fieldInput.SetValue(m.draft.priority.String())
	default:
		m.fieldInput.Reset()
	}
	m.fieldInput.CursorEnd()
}

// commitDraft applies the completed draft: a new task, or updates in place.
func (m *Model) commitDraft() {
	if m.editingTask != nil {
		m.editingTask.Name = m.draft.name
		m.editingTask.Due = m.draft.due
		m.editingTask.Tags = m.draft.tags
		m.editingTask.Priority = m.draft.priority
		m.setStatus(fmt.Sprintf("Updated %q", m.editingTask.Name))
	} else {
		t := task.New(m.draft.name, m.draft.due, m.draft.tags, m.draft.priority)
		t.Project = m.currentProject()
		m.tasks = append(m.tasks, t)
		m.setStatus(fmt.Sprintf("Added %q", t.Name))
	}
	m.refreshList()
	m.saveState()
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(value, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
