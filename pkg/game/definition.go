// Package game implements the stress-triggered mini-game engine: ten
// short facial challenges, a bounded stress history, and the session
// state machine that decides when a challenge launches, ticks it while
// active, and resolves it.
package game

import (
	"time"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
)

// Difficulty buckets games for stress-aware selection.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ValidateFunc evaluates one frame against a game's requirement.
// Validators needing memory across ticks keep it in the scratch store;
// pure validators ignore it. The returned boolean is "requirement
// currently met", re-evaluated every tick.
type ValidateFunc func(f *lm.Frame, elapsed time.Duration, s *Scratch) bool

// Definition is one immutable mini-game.
type Definition struct {
	ID             string
	Name           string
	Duration       time.Duration
	Difficulty     Difficulty
	Validate       ValidateFunc
	SuccessMessage string
	FailureMessage string
}
