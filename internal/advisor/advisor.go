// Package advisor proposes task status transitions from observed file
// changes. Suggest is a pure function, total on its input domain, and
// advisory only - the caller decides whether to apply the result remotely.
package advisor

import "tasklink/internal/types"

// Suggest returns the status a task should move to after the given change.
// Activity on a todo task moves it to in_progress; in_progress stays put;
// done is terminal and never auto-reopened. Deletions never change status,
// for any state.
func Suggest(current types.Status, change types.ChangeType) types.Status {
	if change == types.ChangeDelete {
		return current
	}

	switch current {
	case types.StatusTodo:
		if change == types.ChangeCreate || change == types.ChangeModify {
			return types.StatusInProgress
		}
	case types.StatusInProgress, types.StatusDone:
		return current
	}

	return current
}

// WouldChange reports whether applying Suggest would alter the task's
// current status. Callers use this to skip no-op tracker mutations.
func WouldChange(current types.Status, change types.ChangeType) bool {
	return Suggest(current, change) != current
}
