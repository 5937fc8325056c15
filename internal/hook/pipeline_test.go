package hook

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklink/internal/tracker"
	"tasklink/internal/types"
)

// fakeService stubs the tracker for pipeline tests.
type fakeService struct {
	listFn   func(ctx context.Context, projectID string) ([]types.Task, error)
	updateFn func(ctx context.Context, taskID string, status types.Status) error
	updates  []string
}

func (f *fakeService) ListTasks(ctx context.Context, projectID string) ([]types.Task, error) {
	return f.listFn(ctx, projectID)
}

func (f *fakeService) UpdateTaskStatus(ctx context.Context, taskID string, status types.Status) error {
	f.updates = append(f.updates, taskID+":"+string(status))
	if f.updateFn != nil {
		return f.updateFn(ctx, taskID, status)
	}
	return nil
}

var stripeTasks = []types.Task{
	{ID: "t1", Title: "Fix stripe webhook retries", Status: types.StatusTodo, Tags: []string{"stripe"}},
	{ID: "t2", Title: "Write onboarding docs", Status: types.StatusTodo},
}

func TestRun_SuggestsForTopMatch(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		assert.Equal(t, "proj-1", projectID)
		return stripeTasks, nil
	}}
	runner := NewRunner(svc, "proj-1")

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Contains(t, res.Keywords, "stripe")
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, "t1", res.Matches[0].Task.ID)

	require.NotNil(t, res.Suggested)
	assert.Equal(t, "t1", res.Suggested.TaskID)
	assert.Equal(t, types.StatusTodo, res.Suggested.From)
	assert.Equal(t, types.StatusInProgress, res.Suggested.To)

	assert.False(t, res.Applied)
	assert.Empty(t, svc.updates)
}

func TestRun_AutoApply(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return stripeTasks, nil
	}}
	runner := NewRunner(svc, "proj-1", WithAutoApply(true))

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)

	assert.True(t, res.Applied)
	require.Len(t, svc.updates, 1)
	assert.Equal(t, "t1:in_progress", svc.updates[0])
}

func TestRun_AutoApplySkipsIdentityTransition(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return []types.Task{
			{ID: "t1", Title: "Fix stripe webhook retries", Status: types.StatusInProgress, Tags: []string{"stripe"}},
		}, nil
	}}
	runner := NewRunner(svc, "proj-1", WithAutoApply(true))

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Suggested)
	assert.Equal(t, types.StatusInProgress, res.Suggested.To)
	assert.False(t, res.Applied)
	assert.Empty(t, svc.updates)
}

func TestRun_NoKeywords(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		t.Fatal("ListTasks should not be called when no keywords extract")
		return nil, nil
	}}
	runner := NewRunner(svc, "proj-1")

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/test/db.go",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Keywords)
	assert.Empty(t, res.Matches)
	assert.Nil(t, res.Suggested)
}

func TestRun_NoMatches(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return []types.Task{{ID: "t9", Title: "Rotate TLS certificates", Status: types.StatusTodo}}, nil
	}}
	runner := NewRunner(svc, "proj-1")

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Keywords)
	assert.Empty(t, res.Matches)
	assert.Nil(t, res.Suggested)
}

func TestRun_TrackerErrorWithoutCache(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return nil, errors.New("connection refused")
	}}
	runner := NewRunner(svc, "proj-1")

	_, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch tasks")
}

func TestRun_CacheFallback(t *testing.T) {
	cache, err := tracker.OpenSnapshotCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Put("proj-1", stripeTasks))

	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return nil, errors.New("connection refused")
	}}
	runner := NewRunner(svc, "proj-1", WithCache(cache), WithAutoApply(true))

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)

	assert.True(t, res.FromCache)
	require.NotNil(t, res.Suggested)
	assert.Equal(t, "t1", res.Suggested.TaskID)

	// Cached snapshots may be stale; never mutate the tracker from one.
	assert.False(t, res.Applied)
	assert.Empty(t, svc.updates)
}

func TestRun_SuccessRefreshesCache(t *testing.T) {
	cache, err := tracker.OpenSnapshotCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	svc := &fakeService{listFn: func(ctx context.Context, projectID string) ([]types.Task, error) {
		return stripeTasks, nil
	}}
	runner := NewRunner(svc, "proj-1", WithCache(cache))

	res, err := runner.Run(context.Background(), Event{
		Change: types.ChangeModify,
		Path:   "src/billing/stripe_webhook.js",
	})
	require.NoError(t, err)
	assert.False(t, res.FromCache)

	cached, _, err := cache.Get("proj-1")
	require.NoError(t, err)
	assert.Equal(t, stripeTasks, cached)
}
