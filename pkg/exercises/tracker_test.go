package exercises

import (
	"testing"
	"time"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/store"
)

func testTracker(t *testing.T) *Tracker {
	t.Helper()
	return NewTracker(NewRegistry(), store.NewMemory())
}

func TestStreakCompletion(t *testing.T) {
	tr := testTracker(t)

	var completions []string
	tr.OnComplete = func(name string) { completions = append(completions, name) }

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	pass := jawDropFrame()
	for i := 0; i < CompletionStreak; i++ {
		tr.Evaluate(pass)
	}

	if len(completions) != 1 {
		t.Fatalf("expected exactly one completion, got %d", len(completions))
	}
	if completions[0] != "Jaw Dropper" {
		t.Errorf("completed %q", completions[0])
	}
	if tr.Streak() != 0 {
		t.Errorf("streak should reset after completion, got %d", tr.Streak())
	}
}

func TestFailureResetsStreak(t *testing.T) {
	tr := testTracker(t)

	var completions int
	tr.OnComplete = func(string) { completions++ }

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	pass := jawDropFrame()
	for i := 0; i < CompletionStreak-1; i++ {
		tr.Evaluate(pass)
	}
	if tr.Streak() != CompletionStreak-1 {
		t.Fatalf("streak = %d, want %d", tr.Streak(), CompletionStreak-1)
	}

	// One failed frame at streak 14: no partial credit.
	tr.Evaluate(lm.Neutral())

	if tr.Streak() != 0 {
		t.Errorf("streak = %d after failure, want 0", tr.Streak())
	}
	if completions != 0 {
		t.Errorf("got %d completions, want 0", completions)
	}
}

func TestSelectionChangeResetsStreak(t *testing.T) {
	tr := testTracker(t)

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		tr.Evaluate(jawDropFrame())
	}

	if err := tr.Select("Eye Winker"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if tr.Streak() != 0 {
		t.Errorf("streak = %d after switch, want 0", tr.Streak())
	}
}

func TestInvalidFrameFreezesStreak(t *testing.T) {
	tr := testTracker(t)

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		tr.Evaluate(jawDropFrame())
	}

	// No face: the streak neither grows nor resets.
	tr.Evaluate(nil)
	tr.Evaluate(&lm.Frame{Points: make([]lm.Point, 3)})

	if tr.Streak() != 5 {
		t.Errorf("streak = %d after no-face ticks, want 5", tr.Streak())
	}
}

func TestDailyCompletionIdempotent(t *testing.T) {
	tr := testTracker(t)

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	// Complete the same exercise twice in one day.
	for i := 0; i < CompletionStreak*2; i++ {
		tr.Evaluate(jawDropFrame())
	}

	done := tr.CompletedToday()
	if len(done) != 1 {
		t.Fatalf("expected 1 distinct exercise today, got %d", len(done))
	}
}

func TestDailyFlagKeyedByDate(t *testing.T) {
	tr := testTracker(t)

	day1 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	now := day1
	tr.now = func() time.Time { return now }

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	for i := 0; i < CompletionStreak; i++ {
		tr.Evaluate(jawDropFrame())
	}
	if len(tr.CompletedToday()) != 1 {
		t.Fatal("expected 1 completion on day 1")
	}

	// A new day starts empty.
	now = day2
	if len(tr.CompletedToday()) != 0 {
		t.Error("day 2 should start with no completions")
	}
}

func TestSummary(t *testing.T) {
	tr := testTracker(t)

	name, percent := tr.Summary()
	if name != "" || percent != 0 {
		t.Errorf("empty tracker summary = %q/%v", name, percent)
	}

	if err := tr.Select("Jaw Dropper"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		tr.Evaluate(jawDropFrame())
	}

	name, percent = tr.Summary()
	if name != "Jaw Dropper" {
		t.Errorf("summary name = %q", name)
	}
	want := float64(3) / CompletionStreak * 100
	if percent != want {
		t.Errorf("summary percent = %v, want %v", percent, want)
	}
}
