package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crjaensch/smart-todo-cli/assist"
	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/storage"
	"github.com/crjaensch/smart-todo-cli/task"
	"github.com/crjaensch/smart-todo-cli/watcher"
)

// Input modes
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeAdd
	modeEdit
	modeChat
)

// addField tracks which field of the add/edit flow the input box is on.
type addField int

const (
	fieldName addField = iota
	fieldDue
	fieldTags
	fieldPriority
)

// Sort orders, cycled with 's'
type sortOrder int

const (
	sortByDue sortOrder = iota
	sortByName
	sortByCreation
)

func (s sortOrder) String() string {
	switch s {
	case sortByName:
		return "name"
	case sortByCreation:
		return "creation"
	default:
		return "due"
	}
}

// TickMsg is sent every second so due labels and overdue highlighting stay fresh
type TickMsg time.Time

// TasksReloadedMsg is sent when the tasks file changed on disk
type TasksReloadedMsg struct {
	Tasks []*task.Task
}

// chatReplyMsg carries the assistant's reply (or failure) back into Update
type chatReplyMsg struct {
	reply string
	err   error
}

// taskDraft stages the add/edit flow fields until the final commit.
type taskDraft struct {
	name     string
	due      time.Time
	tags     []string
	priority task.Priority
}

// Model is the Bubble Tea model for the todo TUI
type Model struct {
	list          list.Model
	tasks         []*task.Task
	projects      []string
	projectIndex  int
	watcherEvents <-chan watcher.Event
	store         *storage.Store
	clock         datetime.Clock
	assistant     *assist.Client
	pendingDelete bool
	width         int
	height        int

	// Sorting
	sort sortOrder

	// Input handling
	mode        inputMode
	filterInput textinput.Model
	fieldInput  textinput.Model
	chatInput   textinput.Model
	inputError  string
	field       addField
	draft       taskDraft
	duePreview  string
	editingTask *task.Task // non-nil while editing an existing task

	// Chat
	chatBusy    bool
	chatMessage string

	// Help
	help help.Model
	keys keyMap

	// Status message (shown after actions)
	statusMessage     string
	statusMessageTime time.Time
}

// New creates a new TUI model with the given tasks and projects
func New(tasks []*task.Task, projects []string, watcherEvents <-chan watcher.Event, store *storage.Store, clock datetime.Clock, assistant *assist.Client) Model {
	if clock == nil {
		clock = datetime.RealClock{}
	}
	if len(projects) == 0 {
		projects = []string{task.DefaultProject}
	}

	task.SortByDue(tasks)

	l := list.New(nil, itemDelegate{clock: clock}, 80, 20)
	l.Title = ""
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false) // We'll handle filtering ourselves
	l.SetShowHelp(false)

	// Filter input
	fi := textinput.New()
	fi.Placeholder = "type to filter..."
	fi.CharLimit = 100
	fi.Width = 40

	// Add/edit field input
	ai := textinput.New()
	ai.CharLimit = 200
	ai.Width = 50

	// Chat input
	ci := textinput.New()
	ci.Placeholder = "ask the assistant..."
	ci.CharLimit = 400
	ci.Width = 60

	h := help.New()

	m := Model{
		list:          l,
		tasks:         tasks,
		projects:      projects,
		watcherEvents: watcherEvents,
		store:         store,
		clock:         clock,
		assistant:     assistant,
		mode:          modeNormal,
		filterInput:   fi,
		fieldInput:    ai,
		chatInput:     ci,
		help:          h,
		keys:          keys,
	}
	m.refreshList()
	return m
}

// Init initializes the model and starts the tick timer
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
	}
	if m.watcherEvents != nil {
		cmds = append(cmds, m.waitForReload())
	}
	return tea.Batch(cmds...)
}

// tickCmd returns a command that sends a TickMsg after 1 second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForReload waits for a reload event from the watcher
func (m Model) waitForReload() tea.Cmd {
	return func() tea.Msg {
		if m.watcherEvents == nil {
			return nil
		}
		event, ok := <-m.watcherEvents
		if !ok || event.Err != nil {
			return nil
		}
		return TasksReloadedMsg{Tasks: event.Tasks}
	}
}
