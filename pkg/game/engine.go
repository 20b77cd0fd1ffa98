package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PittPrat/facevibe/internal/log"
	lm "github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/stress"
)

// State is the engine's session state.
type State int

const (
	// StateIdle: no active game; stress is sampled and the trigger gate
	// is evaluated.
	StateIdle State = iota
	// StateAwaiting: a game has been chosen and announced; a short
	// countdown runs before play begins.
	StateAwaiting
	// StateActive: the game is being played; every tick re-runs its
	// validator against the latest frame.
	StateActive
	// StateResolved: the result is on display for a fixed dwell before
	// the engine returns to idle.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	case StateActive:
		return "active"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Config holds the engine's tunable parameters.
type Config struct {
	SampleInterval time.Duration // stress sampling cadence
	TickInterval   time.Duration // active-game validator cadence

	HistorySize    int     // bounded stress history length
	TrailingWindow int     // samples averaged for the sustained gate
	HighStress     float64 // trigger threshold for current and trailing
	ExtremeStress  float64 // above this, hard games are filtered out

	Cooldown      time.Duration // minimum wait after a game ends
	TriggerChance float64       // stochastic gate pass probability

	Countdown     time.Duration // awaiting dwell before play
	ResolveDwell  time.Duration // result display time
	SuccessRelief float64       // stress decrement on a won game
}

// DefaultConfig returns the recommended engine configuration.
func DefaultConfig() Config {
	return Config{
		SampleInterval: 2 * time.Second,
		TickInterval:   50 * time.Millisecond, // 20 Hz validator tick

		HistorySize:    20,
		TrailingWindow: 5,
		HighStress:     0.70,
		ExtremeStress:  0.85,

		Cooldown:      60 * time.Second,
		TriggerChance: 0.5,

		Countdown:     3 * time.Second,
		ResolveDwell:  3 * time.Second,
		SuccessRelief: 0.15,
	}
}

// activeGame is the per-instance state of a triggered game. The instance
// ID gates every deferred effect: a timer firing after the game was
// cancelled or superseded finds a different ID and does nothing.
type activeGame struct {
	def       Definition
	instance  uuid.UUID
	startedAt time.Time
	lastMet   bool
	success   bool
}

// Engine samples stress on a fixed cadence, maintains the bounded
// history, launches mini-games through the trigger gate, ticks the
// active game, and resolves it.
type Engine struct {
	cfg   Config
	games []Definition
	est   *stress.Estimator

	mu          sync.Mutex
	state       State
	history     *History
	current     float64
	haveCurrent bool
	latest      *lm.Frame
	active      *activeGame
	lastGameEnd time.Time
	scratch     *Scratch

	rnd *rand.Rand
	now func() time.Time

	// Callbacks, fired synchronously from within ticks. Nil callbacks
	// are skipped.
	OnStress       func(score float64)
	OnGameStarted  func(def Definition)
	OnGameProgress func(def Definition, percent float64, met bool)
	OnGameResolved func(def Definition, success bool, message string)
	OnGameClosed   func()
}

// New creates an engine over the given games. A nil rnd gets a
// time-seeded source; tests inject a fixed seed to force the stochastic
// gate deterministically.
func New(cfg Config, games []Definition, est *stress.Estimator, rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:     cfg,
		games:   games,
		est:     est,
		state:   StateIdle,
		history: NewHistory(cfg.HistorySize),
		scratch: NewScratch(),
		rnd:     rnd,
		now:     time.Now,
	}
}

// SubmitFrame stores the latest frame snapshot. A nil frame (no face)
// clears it; evaluation freezes until a face returns.
func (e *Engine) SubmitFrame(f *lm.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f.Valid() {
		e.latest = f
	} else {
		e.latest = nil
	}
}

// State returns the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CurrentStress returns the most recent stress score, or stress.Neutral
// before the first sample.
func (e *Engine) CurrentStress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.haveCurrent {
		return stress.Neutral
	}
	return e.current
}

// History returns the stress history buffer.
func (e *Engine) History() *History {
	return e.history
}

// ActiveGame returns the running game definition and true while a game
// is awaiting, active, or resolved.
func (e *Engine) ActiveGame() (Definition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return Definition{}, false
	}
	return e.active.def, true
}

// Run drives the sampling and tick loops until the context is done.
// Each tick runs to completion before the next of its kind fires.
func (e *Engine) Run(ctx context.Context) {
	sampleTicker := time.NewTicker(e.cfg.SampleInterval)
	tickTicker := time.NewTicker(e.cfg.TickInterval)
	defer sampleTicker.Stop()
	defer tickTicker.Stop()

	log.Info("game engine started",
		"sample_interval", e.cfg.SampleInterval,
		"tick_interval", e.cfg.TickInterval,
		"cooldown", e.cfg.Cooldown)

	for {
		select {
		case <-ctx.Done():
			e.Cancel()
			return
		case <-sampleTicker.C:
			e.sample()
		case <-tickTicker.C:
			e.tick()
		}
	}
}

// sample computes stress from the latest frame, appends to the history,
// and evaluates the trigger gate when idle. No face means no sample.
func (e *Engine) sample() {
	e.mu.Lock()
	frame := e.latest
	e.mu.Unlock()

	if !frame.Valid() {
		return
	}

	score := e.est.Estimate(frame)
	e.history.Push(score)

	e.mu.Lock()
	e.current = score
	e.haveCurrent = true
	onStress := e.OnStress
	idle := e.state == StateIdle
	e.mu.Unlock()

	if onStress != nil {
		onStress(score)
	}
	if idle {
		e.maybeTrigger(score)
	}
}

// maybeTrigger runs the four-part launch gate: sustained high stress,
// elapsed cooldown, and a coin flip so qualifying moments do not all
// interrupt the user.
func (e *Engine) maybeTrigger(score float64) {
	if score <= e.cfg.HighStress {
		return
	}

	avg, ok := e.history.TrailingAverage(e.cfg.TrailingWindow)
	if !ok || avg <= e.cfg.HighStress {
		return
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return
	}
	if !e.lastGameEnd.IsZero() && e.now().Sub(e.lastGameEnd) < e.cfg.Cooldown {
		e.mu.Unlock()
		return
	}
	if e.rnd.Float64() >= e.cfg.TriggerChance {
		e.mu.Unlock()
		return
	}

	def := e.pickGame(score)
	instance := uuid.New()
	e.active = &activeGame{def: def, instance: instance}
	e.state = StateAwaiting
	e.scratch.Clear()
	onStarted := e.OnGameStarted
	e.mu.Unlock()

	log.Info("game triggered", "game", def.ID, "stress", score)
	if onStarted != nil {
		onStarted(def)
	}

	time.AfterFunc(e.cfg.Countdown, func() { e.beginPlay(instance) })
}

// pickGame selects uniformly at random, excluding hard games when the
// user is already overwhelmed. An emptied candidate set falls back to
// the full list. Caller holds the lock.
func (e *Engine) pickGame(score float64) Definition {
	candidates := e.games
	if score > e.cfg.ExtremeStress {
		var gentle []Definition
		for _, g := range e.games {
			if g.Difficulty != Hard {
				gentle = append(gentle, g)
			}
		}
		if len(gentle) > 0 {
			candidates = gentle
		}
	}
	return candidates[e.rnd.Intn(len(candidates))]
}

// beginPlay moves Awaiting to Active once the countdown elapses. Stale
// instances are no-ops.
func (e *Engine) beginPlay(instance uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateAwaiting || e.active == nil || e.active.instance != instance {
		return
	}
	e.active.startedAt = e.now()
	e.state = StateActive
}

// tick advances the active game: progress from elapsed time, requirement
// from the validator against the latest frame. A missing frame keeps the
// previous requirement value rather than failing the tick.
func (e *Engine) tick() {
	e.mu.Lock()
	if e.state != StateActive || e.active == nil {
		e.mu.Unlock()
		return
	}
	ag := e.active
	frame := e.latest
	elapsed := e.now().Sub(ag.startedAt)
	e.mu.Unlock()

	percent := float64(elapsed) / float64(ag.def.Duration) * 100
	if percent > 100 {
		percent = 100
	}

	if frame.Valid() {
		met := ag.def.Validate(frame, elapsed, e.scratch)
		e.mu.Lock()
		ag.lastMet = met
		e.mu.Unlock()
	}

	e.mu.Lock()
	met := ag.lastMet
	onProgress := e.OnGameProgress
	e.mu.Unlock()

	if onProgress != nil {
		onProgress(ag.def, percent, met)
	}

	if percent >= 100 {
		e.resolve(ag.instance)
	}
}

// resolve finishes the game with whatever the requirement's last value
// was, shows the result for the dwell time, then closes.
func (e *Engine) resolve(instance uuid.UUID) {
	e.mu.Lock()
	if e.state != StateActive || e.active == nil || e.active.instance != instance {
		e.mu.Unlock()
		return
	}
	ag := e.active
	ag.success = ag.lastMet
	e.state = StateResolved

	message := ag.def.FailureMessage
	if ag.success {
		message = ag.def.SuccessMessage
	}
	onResolved := e.OnGameResolved
	e.mu.Unlock()

	log.Info("game resolved", "game", ag.def.ID, "success", ag.success)
	if onResolved != nil {
		onResolved(ag.def, ag.success, message)
	}

	time.AfterFunc(e.cfg.ResolveDwell, func() { e.closeGame(instance) })
}

// closeGame returns to idle after the resolve dwell: records the
// cooldown anchor, clears scratch, and on success nudges the stress
// estimate down. The nudge is a one-way decrement, not a recomputation.
func (e *Engine) closeGame(instance uuid.UUID) {
	e.mu.Lock()
	if e.state != StateResolved || e.active == nil || e.active.instance != instance {
		e.mu.Unlock()
		return
	}

	success := e.active.success
	e.lastGameEnd = e.now()
	e.active = nil
	e.state = StateIdle
	e.scratch.Clear()

	var relieved float64
	notifyStress := false
	if success && e.haveCurrent {
		e.current -= e.cfg.SuccessRelief
		if e.current < 0 {
			e.current = 0
		}
		relieved = e.current
		notifyStress = true
	}
	onStress := e.OnStress
	onClosed := e.OnGameClosed
	e.mu.Unlock()

	if notifyStress && onStress != nil {
		onStress(relieved)
	}
	if onClosed != nil {
		onClosed()
	}
}

// Cancel aborts any in-flight game synchronously: the user closed the
// modal or face visibility was lost. The cooldown anchor is still set so
// a cancelled game cannot be immediately re-triggered.
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return
	}
	e.active = nil
	e.state = StateIdle
	e.lastGameEnd = e.now()
	e.scratch.Clear()
	onClosed := e.OnGameClosed
	e.mu.Unlock()

	if onClosed != nil {
		onClosed()
	}
}
