package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// welcomeView renders the welcome screen shown when no tasks exist yet
func (m Model) welcomeView() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var lines []string

	lines = append(lines, welcomeTitleStyle.Render("Welcome to Smart Todo!"))
	lines = append(lines, "")
	lines = append(lines, welcomeTextStyle.Render("A todo list that understands plain English dates."))
	lines = append(lines, "")
	lines = append(lines, welcomeTextStyle.Render("Get started:"))
	lines = append(lines, welcomeTextStyle.Render("Press ")+welcomeHighlightStyle.Render("n")+welcomeTextStyle.Render(" to add a new task"))
	lines = append(lines, welcomeTextStyle.Render("Press ")+welcomeHighlightStyle.Render("c")+welcomeTextStyle.Render(" to talk to the assistant"))
	lines = append(lines, welcomeTextStyle.Render("Press ")+welcomeHighlightStyle.Render("?")+welcomeTextStyle.Render(" to see all commands"))
	lines = append(lines, "")
	lines = append(lines, welcomeTextStyle.Render("Due dates take natural language:"))
	lines = append(lines, inputHintStyle.Render("tomorrow  •  next friday  •  in 3 days  •  jan 15  •  2:30pm"))

	// Center each line
	var centered []string
	for _, line := range lines {
		centered = append(centered, lipgloss.PlaceHorizontal(width-4, lipgloss.Center, line))
	}

	return strings.Join(centered, "\n")
}

// headerView renders the project and sort line above the list
func (m Model) headerView() string {
	project := titleStyle.Render("⦿ " + m.currentProject())
	meta := metaStyle.Render(fmt.Sprintf("  sort: %s  •  %d tasks", m.sort, len(m.visibleTasks())))
	return project + meta
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	// Show welcome screen when there is nothing to list
	if len(m.tasks) == 0 && m.mode == modeNormal {
		b.WriteString(m.welcomeView())
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return appStyle.Render(b.String())
	}

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.list.View())

	// Show input boxes based on mode
	switch m.mode {
	case modeFilter:
		label := inputLabelStyle.Render("🔍 Filter: ")
		input := m.filterInput.View()
		hint := inputHintStyle.Render("  (enter to apply, esc to cancel)")
		box := inputBoxStyle.Render(label + input + hint)
		b.WriteString("\n")
		b.WriteString(box)

	case modeAdd, modeEdit:
		label, placeholder := m.fieldPrompt()
		if m.mode == modeEdit {
			label = "✏️  " + label
		} else {
			label = "➕ " + label
		}
		m.fieldInput.Placeholder = placeholder
		box := inputBoxStyle.Render(inputLabelStyle.Render(label+": ") + m.fieldInput.View())
		b.WriteString("\n")
		b.WriteString(box)

		if m.field == fieldDue && m.duePreview != "" {
			b.WriteString("\n")
			b.WriteString(inputHintStyle.Render("  Due " + m.duePreview))
		}
		hint := inputHintStyle.Render("  (enter to continue, esc to cancel)")
		b.WriteString("\n")
		b.WriteString(hint)

		if m.inputError != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("  ⚠ " + m.inputError))
		}

	case modeChat:
		label := inputLabelStyle.Render("🤖 Assistant: ")
		box := inputBoxStyle.Render(label + m.chatInput.View())
		b.WriteString("\n")
		b.WriteString(box)
		if m.chatMessage != "" {
			b.WriteString("\n")
			b.WriteString(inputHintStyle.Render("  " + m.chatMessage))
		}
		b.WriteString("\n")
		b.WriteString(inputHintStyle.Render("  (enter to send, esc to leave chat)"))

	default:
		// Show filter indicator if filter is active
		if m.filterInput.Value() != "" {
			filterIndicator := inputLabelStyle.Render(fmt.Sprintf("🔍 Filtered: %q", m.filterInput.Value()))
			clearHint := inputHintStyle.Render("  (/ to modify, esc in filter to clear)")
			b.WriteString("\n")
			b.WriteString(filterIndicator + clearHint)
		}

		if status := m.statusLine(); status != "" {
			b.WriteString("\n")
			b.WriteString(metaStyle.Render(status))
		}

		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	return appStyle.Render(b.String())
}
