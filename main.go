package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crjaensch/smart-todo-cli/assist"
	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/storage"
	"github.com/crjaensch/smart-todo-cli/tui"
	"github.com/crjaensch/smart-todo-cli/watcher"
)

func main() {
	store, err := storage.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}
	projects, err := store.LoadProjects()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		os.Exit(1)
	}

	// Reload when the tasks file changes on disk (another instance, an
	// editor, a sync tool)
	w, err := watcher.New(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	if err := w.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching tasks file: %v\n", err)
		os.Exit(1)
	}
	w.Start()

	// The assistant is optional; without an API key the chat key just
	// explains how to enable it.
	assistant, _ := assist.NewClient()

	model := tui.New(tasks, projects, w.Events, store, datetime.RealClock{}, assistant)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
