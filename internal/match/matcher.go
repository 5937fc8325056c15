// Package match scores tasks against keyword sets and ranks them by
// relevance. Scoring is additive across keywords: exact title hits weigh
// most, tags are a strong-but-secondary signal, and bidirectional partial
// word containment is a low-weight fallback so compound identifiers still
// surface without a literal substring hit.
package match

import (
	"sort"
	"strings"

	"tasklink/internal/logging"
	"tasklink/internal/types"
)

// Weights holds the per-signal score contributions. They are static
// configuration, overridable from .tasklink/scoring.yaml, so tuning does not
// touch the algorithm.
type Weights struct {
	TitleHit       int `yaml:"title_hit"`
	DescriptionHit int `yaml:"description_hit"`
	TagHit         int `yaml:"tag_hit"`
	WordOverlap    int `yaml:"word_overlap"`
}

// DefaultWeights is the shipped scoring table.
var DefaultWeights = Weights{
	TitleHit:       10,
	DescriptionHit: 5,
	TagHit:         7,
	// WordOverlap fires once per matching word per keyword with no upper
	// bound, so a short keyword can accumulate outsized score on verbose
	// task text. Known behavior, kept as-is; revisit before tuning weights.
	WordOverlap: 2,
}

// Score computes the relevance of a task for a keyword set using the
// default weights. The result is always >= 0; no textual overlap scores 0.
func Score(task types.Task, keywords []string) int {
	return ScoreWith(DefaultWeights, task, keywords)
}

// ScoreWith computes the relevance of a task for a keyword set.
// All comparisons are case-insensitive.
func ScoreWith(w Weights, task types.Task, keywords []string) int {
	title := strings.ToLower(task.Title)
	description := strings.ToLower(task.Description)
	words := strings.Fields(strings.ToLower(task.SearchText()))

	tags := make([]string, len(task.Tags))
	for i, tag := range task.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}

		if strings.Contains(title, kw) {
			score += w.TitleHit
		}
		if description != "" && strings.Contains(description, kw) {
			score += w.DescriptionHit
		}
		for _, tag := range tags {
			if strings.Contains(tag, kw) {
				score += w.TagHit
				break
			}
		}

		// Bidirectional partial word match, once per matching word.
		for _, word := range words {
			if strings.Contains(word, kw) || strings.Contains(kw, word) {
				score += w.WordOverlap
			}
		}
	}

	return score
}

// Rank scores every task and returns non-zero results ordered by descending
// score. The sort is stable: tasks scoring equally keep their input order.
func Rank(tasks []types.Task, keywords []string) []types.MatchResult {
	return RankWith(DefaultWeights, tasks, keywords)
}

// RankWith is Rank with an explicit weight table.
func RankWith(w Weights, tasks []types.Task, keywords []string) []types.MatchResult {
	if len(tasks) == 0 || len(keywords) == 0 {
		// A match needs both a corpus and a query.
		return nil
	}

	results := make([]types.MatchResult, 0, len(tasks))
	for _, task := range tasks {
		s := ScoreWith(w, task, keywords)
		if s == 0 {
			continue
		}
		results = append(results, types.MatchResult{Task: task, Score: s})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logging.MatchDebug("ranked %d/%d tasks for %d keywords", len(results), len(tasks), len(keywords))
	return results
}

// FindMatching returns the tasks relevant to a keyword set, best first.
// Zero-score tasks are never included; scores are not exposed.
func FindMatching(tasks []types.Task, keywords []string) []types.Task {
	return FindMatchingWith(DefaultWeights, tasks, keywords)
}

// FindMatchingWith is FindMatching with an explicit weight table.
func FindMatchingWith(w Weights, tasks []types.Task, keywords []string) []types.Task {
	results := RankWith(w, tasks, keywords)
	matched := make([]types.Task, len(results))
	for i, r := range results {
		matched[i] = r.Task
	}
	return matched
}
