package exercises

import (
	"sort"
	"sync"
	"time"

	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/store"
)

const (
	// CompletionStreak is how many consecutive successful evaluations
	// complete an exercise.
	CompletionStreak = 15

	// DailyCap is the most distinct exercises counted per day.
	DailyCap = 10

	dailyKeyPrefix = "exercises/completed/"
)

// Tracker runs one selected exercise at a time, counting a streak of
// consecutive successful frames. The streak contract is explicit:
// completion requires CompletionStreak successes in a row; a separate
// distinct-exercises-completed-today set (capped at DailyCap) feeds the
// resilience aggregator.
type Tracker struct {
	mu       sync.Mutex
	registry *Registry
	store    store.Store

	selected   *Definition
	streak     int
	lastResult *bool

	now func() time.Time

	// Callbacks, fired synchronously from Evaluate. Nil callbacks are
	// skipped.
	OnComplete         func(name string)
	OnSelectionChanged func(name string)
	OnProgress         func(percent float64)
	OnFeedback         func(message string, ok bool)
}

// NewTracker creates a tracker over the given registry and store.
func NewTracker(registry *Registry, st store.Store) *Tracker {
	return &Tracker{
		registry: registry,
		store:    st,
		now:      time.Now,
	}
}

// Select switches the active exercise. The streak resets and feedback
// clears; the previous exercise gets no partial credit.
func (t *Tracker) Select(name string) error {
	def, err := t.registry.Get(name)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.selected = def
	t.streak = 0
	t.lastResult = nil
	cb := t.OnSelectionChanged
	t.mu.Unlock()

	if cb != nil {
		cb(name)
	}
	return nil
}

// Selected returns the active exercise name, or "" if none.
func (t *Tracker) Selected() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return ""
	}
	return t.selected.Name
}

// Streak returns the current consecutive-success count.
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// Summary returns the progress summary exposed to the assistant
// collaborator: the active exercise and a 0-100 progress percent.
func (t *Tracker) Summary() (name string, progressPercent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return "", 0
	}
	return t.selected.Name, float64(t.streak) / CompletionStreak * 100
}

// Evaluate runs the selected exercise's validator against one frame.
// An invalid frame freezes the session for the tick: the streak neither
// grows nor resets, and no feedback fires.
func (t *Tracker) Evaluate(f *landmarks.Frame) {
	if !f.Valid() {
		return
	}

	t.mu.Lock()
	def := t.selected
	if def == nil {
		t.mu.Unlock()
		return
	}

	ok, _ := def.Check(f)
	t.lastResult = &ok

	var (
		completed bool
		percent   float64
		feedback  string
	)
	if ok {
		t.streak++
		feedback = def.SuccessMessage
		if t.streak >= CompletionStreak {
			completed = true
			t.streak = 0
			percent = 100
		} else {
			percent = float64(t.streak) / CompletionStreak * 100
		}
	} else {
		t.streak = 0
		percent = 0
		feedback = def.FailureMessage
	}

	onProgress := t.OnProgress
	onFeedback := t.OnFeedback
	onComplete := t.OnComplete
	t.mu.Unlock()

	if onProgress != nil {
		onProgress(percent)
	}
	if onFeedback != nil {
		onFeedback(feedback, ok)
	}
	if completed {
		t.markCompleted(def.Name)
		if onComplete != nil {
			onComplete(def.Name)
		}
	}
}

// CompletedToday returns the distinct exercises completed today, capped
// at DailyCap.
func (t *Tracker) CompletedToday() []string {
	var names []string
	if _, err := t.store.Get(t.dailyKey(), &names); err != nil {
		log.Warn("daily completion read failed", "error", err)
		return nil
	}
	sort.Strings(names)
	return names
}

// markCompleted records the date-stamped daily flag. Re-completing the
// same exercise on the same day does not double-count.
func (t *Tracker) markCompleted(name string) {
	key := t.dailyKey()

	var names []string
	if _, err := t.store.Get(key, &names); err != nil {
		log.Warn("daily completion read failed", "error", err)
		names = nil
	}

	for _, n := range names {
		if n == name {
			return
		}
	}
	if len(names) >= DailyCap {
		return
	}

	names = append(names, name)
	if err := t.store.Set(key, names); err != nil {
		log.Warn("daily completion write failed", "error", err)
	}
}

func (t *Tracker) dailyKey() string {
	return dailyKeyPrefix + t.now().Format("2006-01-02")
}
