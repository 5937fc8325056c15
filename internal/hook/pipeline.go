// Package hook runs the edit-event pipeline: a file change comes in from an
// editor hook or the watcher, keywords come out of the path and content, the
// project's tasks are ranked against them, and the top match gets a status
// suggestion. Applying the suggestion to the tracker is opt-in.
package hook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tasklink/internal/advisor"
	"tasklink/internal/keyword"
	"tasklink/internal/logging"
	"tasklink/internal/match"
	"tasklink/internal/tracker"
	"tasklink/internal/types"
)

// Event is one observed file change. Content may be empty (delete events,
// unreadable files); the pipeline then extracts from the path alone.
type Event struct {
	Change  types.ChangeType
	Path    string
	Content string
}

// Suggestion is a proposed status transition for one task.
type Suggestion struct {
	TaskID string
	From   types.Status
	To     types.Status
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID     string
	Keywords  []string
	Matches   []types.MatchResult
	Suggested *Suggestion // nil when nothing matched
	Applied   bool
	FromCache bool
}

// Runner wires the pure core to the tracker. Zero value is not usable;
// construct with NewRunner.
type Runner struct {
	svc       tracker.Service
	cache     *tracker.SnapshotCache // optional offline fallback
	projectID string
	weights   match.Weights
	autoApply bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithCache gives the runner a snapshot cache to fall back on when the
// tracker is unreachable, and to refresh after successful fetches.
func WithCache(cache *tracker.SnapshotCache) Option {
	return func(r *Runner) { r.cache = cache }
}

// WithWeights overrides the scoring weights.
func WithWeights(w match.Weights) Option {
	return func(r *Runner) { r.weights = w }
}

// WithAutoApply makes the runner push suggested transitions to the tracker.
func WithAutoApply(apply bool) Option {
	return func(r *Runner) { r.autoApply = apply }
}

// NewRunner creates a pipeline runner for one project.
func NewRunner(svc tracker.Service, projectID string, opts ...Option) *Runner {
	r := &Runner{
		svc:       svc,
		projectID: projectID,
		weights:   match.DefaultWeights,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pipeline for one event. Malformed input never fails the
// run (no keywords just means no matches); tracker errors surface as errors
// unless the cache can answer instead.
func (r *Runner) Run(ctx context.Context, ev Event) (Result, error) {
	res := Result{RunID: uuid.NewString()}

	res.Keywords = keyword.Merge(
		keyword.ExtractFromPath(ev.Path),
		keyword.ExtractFromContent(ev.Content, ev.Path),
	)
	logging.Hook("[run:%s] %s %s -> %d keywords", res.RunID, ev.Change, ev.Path, len(res.Keywords))

	if len(res.Keywords) == 0 {
		return res, nil
	}

	tasks, fromCache, err := r.fetchTasks(ctx)
	if err != nil {
		return res, err
	}
	res.FromCache = fromCache

	res.Matches = match.RankWith(r.weights, tasks, res.Keywords)
	if len(res.Matches) == 0 {
		logging.HookDebug("[run:%s] no matching tasks", res.RunID)
		return res, nil
	}

	top := res.Matches[0].Task
	suggested := advisor.Suggest(top.Status, ev.Change)
	res.Suggested = &Suggestion{TaskID: top.ID, From: top.Status, To: suggested}
	logging.Hook("[run:%s] top match %s (%s), suggest %s -> %s",
		res.RunID, top.ID, top.Title, top.Status, suggested)

	if r.autoApply && suggested != top.Status {
		if fromCache {
			// A stale snapshot must not drive remote mutations.
			logging.HookDebug("[run:%s] cached snapshot, skipping auto-apply", res.RunID)
			return res, nil
		}
		if err := r.svc.UpdateTaskStatus(ctx, top.ID, suggested); err != nil {
			return res, fmt.Errorf("failed to apply status suggestion: %w", err)
		}
		res.Applied = true
	}

	return res, nil
}

// fetchTasks gets the project snapshot from the tracker, falling back to
// the cache when the tracker is unreachable. Successful fetches refresh the
// cache best-effort.
func (r *Runner) fetchTasks(ctx context.Context) ([]types.Task, bool, error) {
	tasks, err := r.svc.ListTasks(ctx, r.projectID)
	if err == nil {
		if r.cache != nil {
			if cerr := r.cache.Put(r.projectID, tasks); cerr != nil {
				logging.HookDebug("cache refresh failed: %v", cerr)
			}
		}
		return tasks, false, nil
	}

	if r.cache == nil {
		return nil, false, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	cached, age, cerr := r.cache.Get(r.projectID)
	if cerr != nil || len(cached) == 0 {
		return nil, false, fmt.Errorf("failed to fetch tasks (no usable cache): %w", err)
	}

	logging.Hook("tracker unreachable, using cached snapshot (age %s): %v", age, err)
	return cached, true, nil
}
