package assist

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/task"
)

// Action is one JSON command from the model.
type Action struct {
	Name   string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// State is the application state an action operates on. All owns the task
// list; Visible is what the user currently sees and is what 1-based index
// parameters refer to.
type State struct {
	All            []*task.Task
	Visible        []*task.Task
	Projects       []string
	CurrentProject string
	Now            time.Time
}

// Result reports what an action did so the UI can react.
type Result struct {
	Message   string
	Search    string // replacement search term; meaningful when SetSearch
	SetSearch bool
	Exit      bool
}

// ParseAction extracts the single JSON action from a model reply, tolerating
// a markdown code fence or prose around the object.
func ParseAction(reply string) (Action, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return Action{}, fmt.Errorf("no JSON object in reply")
	}

	var a Action
	if err := json.Unmarshal([]byte(reply[start:end+1]), &a); err != nil {
		return Action{}, fmt.Errorf("malformed action: %w", err)
	}
	if a.Name == "" {
		return Action{}, fmt.Errorf("action has no name")
	}
	return a, nil
}

// parseActionDue accepts the date shapes the model produces: a full ISO
// timestamp or a bare date, which lands at midnight UTC. Natural language
// is not accepted here; the model is told to send machine dates.
func parseActionDue(s string) (time.Time, error) {
	if t, err := datetime.ParseISO8601(s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q", s)
}

// Apply executes an action against the state. The returned error carries a
// user-facing message; state is unchanged when an error is returned.
func Apply(a Action, st *State) (Result, error) {
	switch a.Name {
	case "add_task":
		return applyAddTask(a.Params, st)
	case "mark_done":
		return applyMarkDone(a.Params, st)
	case "delete_task":
		return applyDeleteTask(a.Params, st)
	case "edit_task":
		return applyEditTask(a.Params, st)
	case "add_note":
		return applyAddNote(a.Params, st)
	case "add_project":
		return applyAddProject(a.Params, st)
	case "delete_project":
		return applyDeleteProject(a.Params, st)
	case "search_tasks":
		return applySearchTasks(a.Params)
	case "filter_by_date":
		return applyFilter(a.Params, "range", "date",
			[]string{"today", "tomorrow", "this_week", "next_week", "overdue"})
	case "filter_by_priority":
		return applyFilter(a.Params, "level", "priority",
			[]string{"low", "medium", "high"})
	case "filter_by_status":
		return applyFilter(a.Params, "status", "status",
			[]string{"pending", "done"})
	case "sort_tasks":
		return applySortTasks(a.Params, st)
	case "list_tasks":
		return Result{Message: "Showing all tasks.", SetSearch: true}, nil
	case "exit":
		return Result{Message: "Leaving chat.", Exit: true}, nil
	default:
		return Result{}, fmt.Errorf("unknown action %q", a.Name)
	}
}

// visibleAt resolves a 1-based index parameter against the visible list.
func visibleAt(st *State, index int) (*task.Task, error) {
	if index < 1 || index > len(st.Visible) {
		return nil, fmt.Errorf("no task at index %d", index)
	}
	return st.Visible[index-1], nil
}

func applyAddTask(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Name     string   `json:"name"`
		Due      *string  `json:"due"`
		Tags     []string `json:"tags"`
		Priority string   `json:"priority"`
		Project  string   `json:"project"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return Result{}, fmt.Errorf("invalid params for add_task")
	}

	var due time.Time
	if p.Due != nil && *p.Due != "" {
		d, err := parseActionDue(*p.Due)
		if err != nil {
			return Result{}, err
		}
		due = d
	}

	prio, _ := task.ParsePriority(p.Priority)
	t := task.New(p.Name, due, p.Tags, prio)
	t.Project = st.CurrentProject
	if p.Project != "" {
		t.Project = p.Project
	}

	st.All = append(st.All, t)
	return Result{Message: "Task added."}, nil
}

func applyMarkDone(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return Result{}, fmt.Errorf("invalid params for mark_done")
	}

	t, err := visibleAt(st, p.Index)
	if err != nil {
		return Result{}, err
	}
	t.Status = task.StatusDone
	return Result{Message: fmt.Sprintf("Marked %q done.", t.Name)}, nil
}

func applyDeleteTask(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return Result{}, fmt.Errorf("invalid params for delete_task")
	}

	t, err := visibleAt(st, p.Index)
	if err != nil {
		return Result{}, err
	}

	for i, candidate := range st.All {
		if candidate == t {
			st.All = append(st.All[:i], st.All[i+1:]...)
			break
		}
	}
	return Result{Message: fmt.Sprintf("Deleted %q.", t.Name)}, nil
}

func applyEditTask(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Index    int       `json:"index"`
		Name     *string   `json:"name"`
		Due      *string   `json:"due"`
		Tags     *[]string `json:"tags"`
		Priority *string   `json:"priority"`
		Status   *string   `json:"status"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return Result{}, fmt.Errorf("invalid params for edit_task")
	}

	t, err := visibleAt(st, p.Index)
	if err != nil {
		return Result{}, err
	}

	// Validate everything before touching the task.
	var due time.Time
	if p.Due != nil && *p.Due != "" {
		due, err = parseActionDue(*p.Due)
		if err != nil {
			return Result{}, err
		}
	}
	var prio task.Priority
	if p.Priority != nil {
		var ok bool
		if prio, ok = task.ParsePriority(*p.Priority); !ok {
			return Result{}, fmt.Errorf("invalid priority %q", *p.Priority)
		}
	}

	if p.Name != nil && *p.Name != "" {
		t.Name = *p.Name
	}
	if p.Due != nil {
		t.Due = due // empty string or null clears the due date
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Priority != nil {
		t.Priority = prio
	}
	if p.Status != nil {
		if strings.EqualFold(*p.Status, "done") {
			t.Status = task.StatusDone
		} else {
			t.Status = task.StatusPending
		}
	}
	return Result{Message: fmt.Sprintf("Updated %q.", t.Name)}, nil
}

func applyAddNote(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Index int    `json:"index"`
		Note  string `json:"note"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Note == "" {
		return Result{}, fmt.Errorf("invalid params for add_note")
	}

	t, err := visibleAt(st, p.Index)
	if err != nil {
		return Result{}, err
	}
	t.Note = p.Note
	return Result{Message: fmt.Sprintf("Note added to %q.", t.Name)}, nil
}

func applyAddProject(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return Result{}, fmt.Errorf("invalid params for add_project")
	}

	for _, existing := range st.Projects {
		if existing == p.Name {
			return Result{}, fmt.Errorf("project %q already exists", p.Name)
		}
	}
	st.Projects = append(st.Projects, p.Name)
	return Result{Message: fmt.Sprintf("Project %q added.", p.Name)}, nil
}

func applyDeleteProject(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return Result{}, fmt.Errorf("invalid params for delete_project")
	}
	if p.Name == task.DefaultProject {
		return Result{}, fmt.Errorf("the default project cannot be deleted")
	}
	if len(task.FilterByProject(st.All, p.Name)) > 0 {
		return Result{}, fmt.Errorf("project %q still has tasks", p.Name)
	}

	found := false
	for i, existing := range st.Projects {
		if existing == p.Name {
			st.Projects = append(st.Projects[:i], st.Projects[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return Result{}, fmt.Errorf("no project named %q", p.Name)
	}
	if st.CurrentProject == p.Name {
		st.CurrentProject = task.DefaultProject
	}
	return Result{Message: fmt.Sprintf("Project %q deleted.", p.Name)}, nil
}

func applySearchTasks(params json.RawMessage) (Result, error) {
	var p struct {
		Term *string `json:"term"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return Result{}, fmt.Errorf("invalid params for search_tasks")
	}

	if p.Term == nil || *p.Term == "" {
		return Result{Message: "Search cleared.", SetSearch: true}, nil
	}
	return Result{
		Message:   fmt.Sprintf("Searching for %q.", *p.Term),
		Search:    *p.Term,
		SetSearch: true,
	}, nil
}

// applyFilter handles the three single-criterion filters. Filters travel as
// bracketed search terms ("[date:this_week]") that the task list view
// recognizes and expands.
func applyFilter(params json.RawMessage, key, kind string, allowed []string) (Result, error) {
	var raw map[string]string
	if err := json.Unmarshal(params, &raw); err != nil {
		return Result{}, fmt.Errorf("invalid params for filter_by_%s", kind)
	}

	value := strings.ToLower(raw[key])
	ok := false
	for _, a := range allowed {
		if value == a {
			ok = true
			break
		}
	}
	if !ok {
		return Result{}, fmt.Errorf("invalid %q value %q", key, raw[key])
	}

	return Result{
		Message:   fmt.Sprintf("Filtering tasks by %s: %s.", kind, value),
		Search:    fmt.Sprintf("[%s:%s]", kind, value),
		SetSearch: true,
	}, nil
}

func applySortTasks(params json.RawMessage, st *State) (Result, error) {
	var p struct {
		By string `json:"by"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return Result{}, fmt.Errorf("invalid params for sort_tasks")
	}

	switch strings.ToLower(p.By) {
	case "name":
		task.SortByName(st.All)
	case "due":
		task.SortByDue(st.All)
	case "creation":
		task.SortByCreation(st.All)
	default:
		return Result{}, fmt.Errorf("invalid sort field %q", p.By)
	}
	return Result{Message: fmt.Sprintf("Sorted by %s.", strings.ToLower(p.By))}, nil
}
