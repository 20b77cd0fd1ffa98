// Package resilience derives the daily resilience score from exercise
// volume and stress, and tracks the day-over-day exercise streak.
package resilience

import (
	"sync"
	"time"

	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/store"
)

const (
	// stressPenalty is the K constant in the resilience formula
	// score = clamp(0, 100, exercises*10 - stress*K). With stress in
	// [0,1] the penalty spans half the scale: ten exercises at zero
	// stress score 100, zero exercises at full stress clamp to 0.
	stressPenalty = 50

	exerciseCredit = 10

	// maxRecords caps the persisted series; oldest entries are pruned.
	maxRecords = 30

	seriesKey = "resilience/series"
	streakKey = "resilience/streak"

	dateLayout = "2006-01-02"
)

// Record is one calendar day's resilience entry, keyed by ISO date.
type Record struct {
	Date          string  `json:"date"`
	ExerciseCount int     `json:"exercise_count"`
	Stress        float64 `json:"stress"`
	Score         float64 `json:"score"`
}

// StreakRecord tracks consecutive days with at least one completed
// exercise.
type StreakRecord struct {
	Streak           int    `json:"streak"`
	LastExerciseDate string `json:"last_exercise_date,omitempty"`
}

// Score computes the resilience score for a day.
func Score(exerciseCount int, stressScore float64) float64 {
	s := float64(exerciseCount)*exerciseCredit - stressScore*stressPenalty
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// Aggregator persists the resilience series and the day streak.
type Aggregator struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st, now: time.Now}
}

// RecordToday upserts today's record: a same-day entry is overwritten,
// never duplicated. The series stays capped at maxRecords, oldest first
// out. Persistence is best-effort; failures are logged and swallowed.
func (a *Aggregator) RecordToday(exerciseCount int, stressScore float64) Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := a.now().Format(dateLayout)
	rec := Record{
		Date:          today,
		ExerciseCount: exerciseCount,
		Stress:        stressScore,
		Score:         Score(exerciseCount, stressScore),
	}

	series := a.loadSeries()
	replaced := false
	for i := range series {
		if series[i].Date == today {
			series[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		series = append(series, rec)
	}
	if len(series) > maxRecords {
		series = series[len(series)-maxRecords:]
	}

	if err := a.store.Set(seriesKey, series); err != nil {
		log.Warn("resilience series write failed", "error", err)
	}
	return rec
}

// Series returns the persisted records, oldest first.
func (a *Aggregator) Series() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadSeries()
}

func (a *Aggregator) loadSeries() []Record {
	var series []Record
	if _, err := a.store.Get(seriesKey, &series); err != nil {
		log.Warn("resilience series read failed", "error", err)
		return nil
	}
	return series
}

// TouchStreak applies the streak transition rules and returns the
// updated record. doneToday reports whether at least one exercise was
// completed today. The break check is lazy: it runs here, not on a
// background timer.
func (a *Aggregator) TouchStreak(doneToday bool) StreakRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rec StreakRecord
	if _, err := a.store.Get(streakKey, &rec); err != nil {
		log.Warn("streak read failed", "error", err)
		rec = StreakRecord{}
	}

	now := a.now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	switch {
	case doneToday && rec.LastExerciseDate == today:
		// Already counted today; idempotent.
		return rec

	case doneToday && (rec.LastExerciseDate == yesterday || rec.Streak == 0):
		rec.Streak++
		rec.LastExerciseDate = today

	case doneToday:
		// Gap of two or more days: the streak broke, but today counts
		// as a fresh start.
		rec.Streak = 1
		rec.LastExerciseDate = today

	case rec.Streak > 0 && rec.LastExerciseDate != "" &&
		rec.LastExerciseDate != today && rec.LastExerciseDate != yesterday:
		// Nothing done today and the last exercise is two or more days
		// back: the streak is broken.
		rec.Streak = 0

	default:
		return rec
	}

	if err := a.store.Set(streakKey, rec); err != nil {
		log.Warn("streak write failed", "error", err)
	}
	return rec
}

// Streak returns the persisted streak record without mutating it.
func (a *Aggregator) Streak() StreakRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rec StreakRecord
	if _, err := a.store.Get(streakKey, &rec); err != nil {
		log.Warn("streak read failed", "error", err)
	}
	return rec
}
