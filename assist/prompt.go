package assist

import (
	"fmt"
	"strings"
	"time"

	"github.com/crjaensch/smart-todo-cli/datetime"
	"github.com/crjaensch/smart-todo-cli/task"
)

// SystemPrompt builds the instruction block sent with every chat turn. The
// model sees the visible task list with 1-based indices and must answer
// with exactly one JSON action.
func SystemPrompt(visible []*task.Task, projects []string, currentProject string, now time.Time) string {
	var b strings.Builder

	b.WriteString("Persona: You are Smartodo, a specialized AI assistant for a command-line todo application.\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString("- Analyze the user request and the current task list.\n")
	fmt.Fprintf(&b, "- Today's date is %s UTC.\n", now.UTC().Format("2006-01-02"))
	b.WriteString("- Output exactly one JSON object: {\"action\": \"ACTION_NAME\", \"params\": {PARAM_DICT}}. No extra text.\n")
	b.WriteString("- For actions targeting a specific task (mark, delete, edit, note), use the 'index' parameter, referring to the 1-based index shown in the 'Current Tasks' list.\n")
	b.WriteString("- Only use task indices that are explicitly shown in the current task list.\n")
	b.WriteString("- Projects can only be deleted if they have no tasks.\n\n")

	b.WriteString("Supported Actions & Params:\n")
	b.WriteString(" add_task: { \"name\": string, \"due\": \"YYYY-MM-DD\" | null, \"tags\": [string], \"priority\": \"low\"|\"medium\"|\"high\", \"project\": string }\n")
	b.WriteString(" mark_done: { \"index\": number }\n")
	b.WriteString(" delete_task: { \"index\": number }\n")
	b.WriteString(" edit_task: { \"index\": number, \"name\": string?, \"due\": \"YYYY-MM-DD\" | null?, \"tags\": [string]?, \"priority\": string?, \"status\": string? }\n")
	b.WriteString(" add_note: { \"index\": number, \"note\": string }\n")
	b.WriteString(" add_project: { \"name\": string }\n")
	b.WriteString(" delete_project: { \"name\": string } (Only allowed if the project has no tasks)\n")
	b.WriteString(" search_tasks: { \"term\": string | null } (null term clears search)\n")
	b.WriteString(" filter_by_date: { \"range\": \"today\"|\"tomorrow\"|\"this_week\"|\"next_week\"|\"overdue\" }\n")
	b.WriteString(" filter_by_priority: { \"level\": \"high\"|\"medium\"|\"low\" }\n")
	b.WriteString(" filter_by_status: { \"status\": \"done\"|\"pending\" }\n")
	b.WriteString(" sort_tasks: { \"by\": \"name\"|\"due\"|\"creation\" }\n")
	b.WriteString(" list_tasks: {} (Use this if the user asks to see tasks, effectively clears search)\n")
	b.WriteString(" exit: {} (Use this to exit the AI chat mode)\n\n")

	fmt.Fprintf(&b, "Current project: %s\n", currentProject)
	fmt.Fprintf(&b, "Projects: %s\n\n", strings.Join(projects, ", "))

	b.WriteString("Current Tasks:\n")
	if len(visible) == 0 {
		b.WriteString("(none)\n")
	}
	for i, t := range visible {
		due := "none"
		if !t.Due.IsZero() {
			due = datetime.FormatISO8601(t.Due)
		}
		fmt.Fprintf(&b, "%d. %s | due: %s | priority: %s | status: %s | project: %s | tags: %s\n",
			i+1, t.Name, due, t.Priority, t.Status, t.Project, strings.Join(t.Tags, ","))
	}

	b.WriteString("\nExample (Add): User: \"add buy milk tomorrow high prio\" -> {\"action\":\"add_task\",\"params\":{\"name\":\"buy milk\",\"due\":\"YYYY-MM-DD\",\"tags\":[],\"priority\":\"high\"}}\n")
	b.WriteString("Example (Mark): User: \"mark item 2 done\" -> {\"action\":\"mark_done\",\"params\":{\"index\":2}}\n")
	b.WriteString("Example (Date Filter): User: \"What tasks are due this week?\" -> {\"action\":\"filter_by_date\",\"params\":{\"range\":\"this_week\"}}\n")
	b.WriteString("\nNow, process the user's request:\n")

	return b.String()
}
