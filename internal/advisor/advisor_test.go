package advisor

import (
	"testing"

	"tasklink/internal/types"
)

func TestSuggest_TransitionTable(t *testing.T) {
	tests := []struct {
		current types.Status
		change  types.ChangeType
		want    types.Status
	}{
		{types.StatusTodo, types.ChangeCreate, types.StatusInProgress},
		{types.StatusTodo, types.ChangeModify, types.StatusInProgress},
		{types.StatusTodo, types.ChangeDelete, types.StatusTodo},
		{types.StatusInProgress, types.ChangeCreate, types.StatusInProgress},
		{types.StatusInProgress, types.ChangeModify, types.StatusInProgress},
		{types.StatusInProgress, types.ChangeDelete, types.StatusInProgress},
		{types.StatusDone, types.ChangeCreate, types.StatusDone},
		{types.StatusDone, types.ChangeModify, types.StatusDone},
		{types.StatusDone, types.ChangeDelete, types.StatusDone},
	}

	for _, tt := range tests {
		if got := Suggest(tt.current, tt.change); got != tt.want {
			t.Errorf("Suggest(%s, %s) = %s, want %s", tt.current, tt.change, got, tt.want)
		}
	}
}

func TestSuggest_DoneIsTerminal(t *testing.T) {
	for _, change := range []types.ChangeType{types.ChangeCreate, types.ChangeModify, types.ChangeDelete} {
		if got := Suggest(types.StatusDone, change); got != types.StatusDone {
			t.Errorf("Suggest(done, %s) = %s, want done", change, got)
		}
	}
}

func TestSuggest_DeleteIsIdentity(t *testing.T) {
	for _, status := range []types.Status{types.StatusTodo, types.StatusInProgress, types.StatusDone} {
		if got := Suggest(status, types.ChangeDelete); got != status {
			t.Errorf("Suggest(%s, delete) = %s, want %s", status, got, status)
		}
	}
}

func TestWouldChange(t *testing.T) {
	if !WouldChange(types.StatusTodo, types.ChangeModify) {
		t.Error("WouldChange(todo, modify) = false, want true")
	}
	if WouldChange(types.StatusDone, types.ChangeModify) {
		t.Error("WouldChange(done, modify) = true, want false")
	}
	if WouldChange(types.StatusInProgress, types.ChangeCreate) {
		t.Error("WouldChange(in_progress, create) = true, want false")
	}
}
