package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tasklink/internal/types"
)

var reportTasks = []types.Task{
	{ID: "t1", Title: "Fix stripe webhook retries", Status: types.StatusInProgress, Priority: types.PriorityHigh, Tags: []string{"stripe", "billing"}},
	{ID: "t2", Title: "Write onboarding docs", Status: types.StatusTodo, Description: "Cover the CLI flags"},
	{ID: "t3", Title: "Ship invoice export", Status: types.StatusDone, Priority: types.PriorityLow},
}

func TestMarkdown(t *testing.T) {
	md := Markdown(reportTasks, Options{
		Title:       "Sprint 12",
		ProjectID:   "proj-1",
		GeneratedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, md, "# Sprint 12\n")
	assert.Contains(t, md, "Project: `proj-1`")
	assert.Contains(t, md, "Generated: 2026-08-30 10:00")

	assert.Contains(t, md, "- **Total**: 3\n")
	assert.Contains(t, md, "- **In Progress**: 1\n")
	assert.Contains(t, md, "- **To Do**: 1\n")
	assert.Contains(t, md, "- **Done**: 1\n")
	assert.Contains(t, md, "- **High priority**: 1\n")

	assert.Contains(t, md, "- [ ] **Fix stripe webhook retries** (high) `stripe` `billing`\n")
	assert.Contains(t, md, "- [ ] **Write onboarding docs**\n  Cover the CLI flags\n")
	assert.Contains(t, md, "- [x] **Ship invoice export**\n")
}

func TestMarkdown_SectionOrder(t *testing.T) {
	md := Markdown(reportTasks, Options{})

	inProgress := strings.Index(md, "## In Progress")
	toDo := strings.Index(md, "## To Do")
	done := strings.Index(md, "## Done")

	assert.Greater(t, inProgress, -1)
	assert.Greater(t, toDo, inProgress)
	assert.Greater(t, done, toDo)
}

func TestMarkdown_OmitsEmptySections(t *testing.T) {
	md := Markdown([]types.Task{
		{ID: "t1", Title: "Only task", Status: types.StatusTodo},
	}, Options{})

	assert.Contains(t, md, "## To Do")
	assert.NotContains(t, md, "## In Progress")
	assert.NotContains(t, md, "## Done")
	assert.NotContains(t, md, "High priority")
}

func TestMarkdown_NoTasks(t *testing.T) {
	md := Markdown(nil, Options{Title: "Empty"})

	assert.Contains(t, md, "# Empty\n")
	assert.Contains(t, md, "_No tasks._")
	assert.NotContains(t, md, "## Summary")
}

func TestMarkdown_DefaultTitleAndTime(t *testing.T) {
	md := Markdown(nil, Options{})

	assert.Contains(t, md, "# Task Report\n")
	assert.Contains(t, md, "Generated: ")
}

func TestRender(t *testing.T) {
	md := Markdown(reportTasks, Options{Title: "Sprint 12"})

	out := Render(md)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Sprint 12")
}
