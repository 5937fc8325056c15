package match

import (
	"testing"

	"tasklink/internal/types"
)

func stripeTask() types.Task {
	return types.Task{
		ID:          "t1",
		Title:       "Stripe webhook implementation",
		Description: "Handle payment confirmations from Stripe",
		Status:      types.StatusTodo,
		Priority:    types.PriorityHigh,
		Tags:        []string{"stripe", "webhook", "payment"},
	}
}

func TestScore_TitleOutweighsDescription(t *testing.T) {
	titleHit := stripeTask()
	descOnly := types.Task{
		ID:          "t2",
		Title:       "Some task",
		Description: "Handle stripe payments",
	}

	a := Score(titleHit, []string{"stripe"})
	b := Score(descOnly, []string{"stripe"})
	if a <= b {
		t.Fatalf("Score(title hit) = %d, want > Score(description only) = %d", a, b)
	}
}

func TestScore_WeightBreakdown(t *testing.T) {
	// "stripe" hits: title (+10), description (+5), a tag (+7), and the
	// word "stripe" three times across title/description/tags (+2 each).
	got := Score(stripeTask(), []string{"stripe"})
	if want := 28; got != want {
		t.Fatalf("Score() = %d, want %d", got, want)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	lower := Score(stripeTask(), []string{"stripe"})
	upper := Score(stripeTask(), []string{"STRIPE"})
	if lower != upper {
		t.Fatalf("Score(stripe) = %d, Score(STRIPE) = %d, want equal", lower, upper)
	}
}

func TestScore_NoOverlapIsZero(t *testing.T) {
	if got := Score(stripeTask(), []string{"kubernetes"}); got != 0 {
		t.Fatalf("Score() = %d, want 0", got)
	}
}

func TestScore_Monotonicity(t *testing.T) {
	task := stripeTask()
	base := Score(task, []string{"stripe"})

	t.Run("non_matching_keyword_never_decreases", func(t *testing.T) {
		got := Score(task, []string{"stripe", "zzzz"})
		if got < base {
			t.Fatalf("Score() = %d, want >= %d", got, base)
		}
	})

	t.Run("title_keyword_never_decreases", func(t *testing.T) {
		got := Score(task, []string{"stripe", "webhook"})
		if got < base {
			t.Fatalf("Score() = %d, want >= %d", got, base)
		}
	})
}

func TestScore_BidirectionalWordOverlap(t *testing.T) {
	// Keyword "paymentcontroller" contains the word "payment", so the
	// compound identifier still surfaces without a substring hit in the
	// task's bulk text.
	task := types.Task{ID: "t3", Title: "payment flow"}
	if got := Score(task, []string{"paymentcontroller"}); got == 0 {
		t.Fatalf("Score() = 0, want > 0 for compound identifier overlap")
	}
}

func TestScore_MissingOptionalFields(t *testing.T) {
	task := types.Task{ID: "t4", Title: "Stripe billing"}
	if got := Score(task, []string{"stripe"}); got <= 0 {
		t.Fatalf("Score() = %d, want > 0 with empty description and tags", got)
	}
}

func TestFindMatching_EmptyInputs(t *testing.T) {
	tasks := []types.Task{stripeTask()}

	if got := FindMatching(nil, []string{"stripe"}); len(got) != 0 {
		t.Fatalf("FindMatching(nil tasks) = %v, want empty", got)
	}
	if got := FindMatching(tasks, nil); len(got) != 0 {
		t.Fatalf("FindMatching(nil keywords) = %v, want empty", got)
	}
}

func TestFindMatching_ExcludesZeroScores(t *testing.T) {
	tasks := []types.Task{
		stripeTask(),
		{ID: "t5", Title: "Unrelated infra chore"},
	}

	got := FindMatching(tasks, []string{"stripe"})
	if len(got) != 1 {
		t.Fatalf("FindMatching() returned %d tasks, want 1", len(got))
	}
	if got[0].ID != "t1" {
		t.Fatalf("FindMatching()[0].ID = %s, want t1", got[0].ID)
	}
}

func TestFindMatching_OrdersByScoreDescending(t *testing.T) {
	tasks := []types.Task{
		{ID: "weak", Description: "mentions stripe once"},
		stripeTask(),
	}

	got := FindMatching(tasks, []string{"stripe"})
	if len(got) != 2 {
		t.Fatalf("FindMatching() returned %d tasks, want 2", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "weak" {
		t.Fatalf("order = [%s %s], want [t1 weak]", got[0].ID, got[1].ID)
	}
}

func TestFindMatching_StableOnTies(t *testing.T) {
	// Identical searchable surfaces score identically; input order must
	// survive.
	tasks := []types.Task{
		{ID: "first", Title: "stripe refunds"},
		{ID: "second", Title: "stripe refunds"},
		{ID: "third", Title: "stripe refunds"},
	}

	got := FindMatching(tasks, []string{"stripe"})
	if len(got) != 3 {
		t.Fatalf("FindMatching() returned %d tasks, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestRank_ExposesScores(t *testing.T) {
	results := Rank([]types.Task{stripeTask()}, []string{"stripe"})
	if len(results) != 1 {
		t.Fatalf("Rank() returned %d results, want 1", len(results))
	}
	if results[0].Score != 28 {
		t.Fatalf("Rank()[0].Score = %d, want 28", results[0].Score)
	}
}

func TestScoreWith_CustomWeights(t *testing.T) {
	w := Weights{TitleHit: 1, DescriptionHit: 1, TagHit: 1, WordOverlap: 1}
	// title + description + tag + 3 word overlaps = 6
	if got := ScoreWith(w, stripeTask(), []string{"stripe"}); got != 6 {
		t.Fatalf("ScoreWith() = %d, want 6", got)
	}
}
