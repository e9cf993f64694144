package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crjaensch/smart-todo-cli/assist"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle based on mode
		switch m.mode {
		case modeFilter:
			return m.updateFilterMode(msg)
		case modeAdd, modeEdit:
			return m.updateAddMode(msg)
		case modeChat:
			return m.updateChatMode(msg)
		default:
			return m.updateNormalMode(msg)
		}

	case TickMsg:
		// Due labels ("Today", "Tomorrow") and overdue highlighting depend
		// on the wall clock, so redraw the list every second.
		m.refreshList()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 10
		if listHeight < 5 {
			listHeight = 5
		}
		m.list.SetSize(msg.Width-4, listHeight)

	case TasksReloadedMsg:
		// Applying a reload mid-edit would orphan the task being edited,
		// so hold off until the flow is closed.
		if m.mode == modeAdd || m.mode == modeEdit {
			return m, m.waitForReload()
		}
		m.tasks = msg.Tasks
		m.refreshList()
		m.setStatus("Tasks reloaded from disk")
		return m, m.waitForReload()

	case chatReplyMsg:
		return m.handleChatReply(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle 'dd' for delete (vim-style)
	if msg.String() == "d" {
		if m.pendingDelete {
			m.deleteCurrentTask()
			m.pendingDelete = false
		} else {
			m.pendingDelete = true
		}
		return m, nil
	}
	m.pendingDelete = false

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		t := m.selectedTask()
		if t != nil {
			t.Toggle()
			m.refreshList()
			m.saveState()
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		m.mode = modeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		m.beginAdd()
		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		t := m.selectedTask()
		if t == nil {
			return m, nil
		}
		m.mode = modeEdit
		m.beginEdit(t)
		return m, textinput.Blink

	case key.Matches(msg, keys.Sort):
		m.sort = (m.sort + 1) % 3
		m.refreshList()
		m.setStatus("Sorted by " + m.sort.String())
		return m, nil

	case key.Matches(msg, keys.Project):
		m.cycleProject()
		return m, nil

	case key.Matches(msg, keys.Chat):
		if m.assistant == nil {
			m.setStatus("Set OPENAI_API_KEY to enable the assistant")
			return m, nil
		}
		m.mode = modeChat
		m.chatMessage = ""
		m.chatInput.Reset()
		m.chatInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.filterInput.Blur()
		m.filterInput.Reset()
		m.refreshList()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.filterInput.Blur()
		// Keep the filter applied
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.refreshList()
	return m, cmd
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.fieldInput.Blur()
		m.fieldInput.Reset()
		m.inputError = ""
		m.editingTask = nil
		return m, nil
	case tea.KeyEnter:
		if !m.acceptField(m.fieldInput.Value()) {
			return m, nil
		}
		if m.field == fieldPriority {
			m.commitDraft()
			m.mode = modeNormal
			m.fieldInput.Blur()
			m.fieldInput.Reset()
			m.editingTask = nil
			return m, nil
		}
		m.field++
		m.prefillField()
		return m, nil
	}

	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

func (m Model) updateChatMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.chatInput.Blur()
		m.chatInput.Reset()
		m.chatBusy = false
		return m, nil
	case tea.KeyEnter:
		if m.chatBusy {
			return m, nil
		}
		prompt := m.chatInput.Value()
		if prompt == "" {
			return m, nil
		}
		m.chatBusy = true
		m.chatMessage = "Thinking..."
		m.chatInput.Reset()
		return m, m.chatCmd(prompt)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// chatCmd asks the assistant for an action, off the UI goroutine.
func (m Model) chatCmd(prompt string) tea.Cmd {
	client := m.assistant
	system := assist.SystemPrompt(m.visibleTasks(), m.projects, m.currentProject(), m.clock.Now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		reply, err := client.Chat(ctx, system, prompt)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// handleChatReply parses the assistant's reply and applies the action.
func (m Model) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	m.chatBusy = false
	if msg.err != nil {
		m.chatMessage = "Assistant error: " + msg.err.Error()
		return m, nil
	}

	action, err := assist.ParseAction(msg.reply)
	if err != nil {
		m.chatMessage = "Couldn't understand the assistant's reply"
		return m, nil
	}

	st := &assist.State{
		All:            m.tasks,
		Visible:        m.visibleTasks(),
		Projects:       m.projects,
		CurrentProject: m.currentProject(),
		Now:            m.clock.Now(),
	}
	result, err := assist.Apply(action, st)
	if err != nil {
		m.chatMessage = err.Error()
		return m, nil
	}

	m.tasks = st.All
	m.projects = st.Projects
	m.projectIndex = projectIndexOf(m.projects, st.CurrentProject)
	if result.SetSearch {
		m.filterInput.SetValue(result.Search)
	}
	m.chatMessage = result.Message
	if result.Exit {
		m.mode = modeNormal
		m.chatInput.Blur()
		m.chatInput.Reset()
	}
	m.refreshList()
	m.saveState()
	return m, nil
}

func projectIndexOf(projects []string, name string) int {
	for i, p := range projects {
		if p == name {
			return i
		}
	}
	return 0
}
