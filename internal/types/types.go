// Package types provides shared type definitions used across tasklink packages.
// This package exists so that keyword, match, advisor and the collaborators
// (tracker, hook, report) agree on one task model without import cycles.
// Types in this package are foundational data structures with no dependencies.
package types

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task as the remote tracker reports it.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the three tracker statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a wire/CLI string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q (want todo, in_progress or done)", raw)
	}
	return s, nil
}

// Priority is the tracker-assigned priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ChangeType describes an observed file-system event. It carries no payload
// beyond the tag itself; the path and content travel separately.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeModify ChangeType = "modify"
	ChangeDelete ChangeType = "delete"
)

// Valid reports whether c is a known change type.
func (c ChangeType) Valid() bool {
	switch c {
	case ChangeCreate, ChangeModify, ChangeDelete:
		return true
	}
	return false
}

// ParseChangeType converts a hook/CLI string into a ChangeType. Common
// editor-event synonyms are accepted.
func ParseChangeType(raw string) (ChangeType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "create", "created", "add", "added":
		return ChangeCreate, nil
	case "modify", "modified", "write", "change", "changed", "edit", "edited":
		return ChangeModify, nil
	case "delete", "deleted", "remove", "removed":
		return ChangeDelete, nil
	}
	return "", fmt.Errorf("unknown change type %q (want create, modify or delete)", raw)
}

// Task is a read-only snapshot of a task record owned by the remote tracker.
// The core never mutates tasks; status changes go back through the tracker
// client.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags,omitempty"`
}

// SearchText returns the task's full searchable surface: title, description
// and tags joined by single spaces. Missing fields contribute nothing.
func (t Task) SearchText() string {
	parts := make([]string, 0, 2+len(t.Tags))
	if t.Title != "" {
		parts = append(parts, t.Title)
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	parts = append(parts, t.Tags...)
	return strings.Join(parts, " ")
}

// MatchResult pairs a task with its relevance score for one query. Results
// are produced fresh per query and never persisted.
type MatchResult struct {
	Task  Task
	Score int
}
