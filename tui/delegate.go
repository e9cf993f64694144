package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/task"
)

// taskItem wraps a Task to implement list.Item
type taskItem struct {
	task  *task.Task
	clock datetime.Clock
}

func (i taskItem) Title() string {
	return i.task.Name
}

func (i taskItem) Description() string {
	return dueLabel(i.task, i.clock.Now())
}

func (i taskItem) FilterValue() string {
	return i.task.Name
}

// dueLabel renders the due date the way it reads in conversation, or "None".
func dueLabel(t *task.Task, now time.Time) string {
	if t.Due.IsZero() {
		return "None"
	}
	return datetime.FormatNaturalDate(t.Due, now)
}

// itemDelegate handles rendering of list items
type itemDelegate struct {
	clock datetime.Clock
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(taskItem)
	if !ok {
		return
	}

	t := i.task
	now := d.clock.Now()

	var statusIcon string
	var style lipgloss.Style

	switch {
	case t.Status == task.StatusDone:
		statusIcon = "✓"
		style = doneStyle
	case t.IsOverdue(now):
		statusIcon = "!"
		style = overdueStyle
	default:
		statusIcon = "○"
		style = normalStyle
	}

	isSelected := index == m.Index()
	if isSelected {
		statusIcon = "▸"
		if t.Status != task.StatusDone && !t.IsOverdue(now) {
			style = selectedItemStyle
		}
	}

	var prio lipgloss.Style
	switch t.Priority {
	case task.PriorityHigh:
		prio = priorityHighStyle
	case task.PriorityLow:
		prio = priorityLowStyle
	default:
		prio = metaStyle
	}

	line := fmt.Sprintf("%s %-16s %-28s", statusIcon, dueLabel(t, now), truncate(t.Name, 28))
	styledLine := style.Render(line)
	prioPart := prio.Render(fmt.Sprintf("%-6s", t.Priority.String()))

	parts := []string{styledLine, prioPart}
	if len(t.Tags) > 0 {
		parts = append(parts, tagStyle.Render("#"+strings.Join(t.Tags, " #")))
	}
	if t.Note != "" {
		parts = append(parts, metaStyle.Render("▪"))
	}

	fmt.Fprint(w, strings.Join(parts, "  "))
}

// truncate shortens on rune boundaries so multi-byte names never render a
// mangled final character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func tasksToItems(tasks []*task.Task, clock datetime.Clock) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t, clock: clock}
	}
	return items
}
