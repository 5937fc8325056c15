// Package report renders task lists as markdown. Generation is pure
// formatting - grouping and counting only, no decision logic. Terminal
// rendering goes through glamour with a plain-text fallback.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"tasklink/internal/logging"
	"tasklink/internal/types"
)

// Options controls report generation.
type Options struct {
	Title       string
	ProjectID   string
	GeneratedAt time.Time // zero means now
}

var statusOrder = []types.Status{
	types.StatusInProgress,
	types.StatusTodo,
	types.StatusDone,
}

var statusHeadings = map[types.Status]string{
	types.StatusTodo:       "To Do",
	types.StatusInProgress: "In Progress",
	types.StatusDone:       "Done",
}

// Markdown builds a markdown report for a task list: summary counts by
// status and priority, then one section per status with the tasks and their
// tags.
func Markdown(tasks []types.Task, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "Task Report"
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if opts.ProjectID != "" {
		fmt.Fprintf(&b, "Project: `%s`  \n", opts.ProjectID)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04"))

	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
		return b.String()
	}

	byStatus := make(map[types.Status][]types.Task)
	byPriority := make(map[types.Priority]int)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
		byPriority[t.Priority]++
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total**: %d\n", len(tasks))
	for _, s := range statusOrder {
		if n := len(byStatus[s]); n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d\n", statusHeadings[s], n)
		}
	}
	if byPriority[types.PriorityHigh] > 0 {
		fmt.Fprintf(&b, "- **High priority**: %d\n", byPriority[types.PriorityHigh])
	}
	b.WriteString("\n")

	for _, s := range statusOrder {
		group := byStatus[s]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", statusHeadings[s])
		for _, t := range group {
			writeTaskLine(&b, t)
		}
		b.WriteString("\n")
	}

	logging.Report("generated report for %d tasks", len(tasks))
	return b.String()
}

func writeTaskLine(b *strings.Builder, t types.Task) {
	check := " "
	if t.Status == types.StatusDone {
		check = "x"
	}
	fmt.Fprintf(b, "- [%s] **%s**", check, t.Title)
	if t.Priority == types.PriorityHigh {
		b.WriteString(" (high)")
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(b, " `%s`", strings.Join(t.Tags, "` `"))
	}
	b.WriteString("\n")
	if t.Description != "" {
		fmt.Fprintf(b, "  %s\n", t.Description)
	}
}

// Render pretty-prints markdown for the terminal. Falls back to the raw
// markdown if glamour errors or panics.
func Render(md string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = md
		}
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
