package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/stress"
)

// testEngine builds an engine with deterministic randomness, a frozen
// clock, and timers pushed out far enough that deferred transitions
// never fire on their own. Tests drive the transitions directly.
func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TriggerChance = 1
	cfg.Countdown = time.Hour
	cfg.ResolveDwell = time.Hour

	e := New(cfg, Builtin[:], stress.NewDeterministic(), rand.New(rand.NewSource(1)))
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }
	return e
}

func fillHistory(e *Engine, score float64) {
	for i := 0; i < e.cfg.TrailingWindow; i++ {
		e.history.Push(score)
	}
}

func TestTriggerLaunchesGame(t *testing.T) {
	e := testEngine(t)
	fillHistory(e, 0.9)

	var started bool
	e.OnGameStarted = func(def Definition) { started = true }

	e.maybeTrigger(0.9)

	if e.State() != StateAwaiting {
		t.Fatalf("state = %v, want awaiting", e.State())
	}
	if !started {
		t.Error("OnGameStarted did not fire")
	}
	if _, ok := e.ActiveGame(); !ok {
		t.Error("no active game after trigger")
	}
}

func TestTriggerNeedsSustainedStress(t *testing.T) {
	e := testEngine(t)

	// A single spike with an empty history must not launch.
	e.maybeTrigger(0.9)
	if e.State() != StateIdle {
		t.Fatal("triggered without a full trailing window")
	}

	// A full window of low scores must not launch either.
	fillHistory(e, 0.2)
	e.maybeTrigger(0.9)
	if e.State() != StateIdle {
		t.Error("triggered on a low trailing average")
	}
}

func TestTriggerNeedsHighCurrentScore(t *testing.T) {
	e := testEngine(t)
	fillHistory(e, 0.9)

	e.maybeTrigger(0.5)
	if e.State() != StateIdle {
		t.Error("triggered below the stress threshold")
	}
}

func TestTriggerRespectsCooldown(t *testing.T) {
	e := testEngine(t)
	fillHistory(e, 0.9)

	e.lastGameEnd = e.now().Add(-30 * time.Second)
	e.maybeTrigger(0.9)
	if e.State() != StateIdle {
		t.Fatal("triggered inside the cooldown window")
	}

	e.lastGameEnd = e.now().Add(-e.cfg.Cooldown - time.Second)
	e.maybeTrigger(0.9)
	if e.State() != StateAwaiting {
		t.Error("did not trigger once the cooldown elapsed")
	}
}

func TestTriggerStochasticGate(t *testing.T) {
	e := testEngine(t)
	e.cfg.TriggerChance = 0
	fillHistory(e, 0.9)

	for i := 0; i < 20; i++ {
		e.maybeTrigger(0.9)
	}
	if e.State() != StateIdle {
		t.Error("zero trigger chance still launched a game")
	}
}

func TestTriggerClearsScratch(t *testing.T) {
	e := testEngine(t)
	fillHistory(e, 0.9)
	e.scratch.SetInt("jaw_reps", 5)

	e.maybeTrigger(0.9)

	if _, ok := e.scratch.Int("jaw_reps"); ok {
		t.Error("scratch survived a game launch")
	}
}

func TestPickGameFiltersHardWhenOverwhelmed(t *testing.T) {
	e := testEngine(t)

	for i := 0; i < 100; i++ {
		def := e.pickGame(0.9)
		if def.Difficulty == Hard {
			t.Fatalf("picked hard game %q at extreme stress", def.ID)
		}
	}
}

func TestPickGameAllowsHardBelowExtreme(t *testing.T) {
	e := testEngine(t)

	var sawHard bool
	for i := 0; i < 200; i++ {
		if e.pickGame(0.75).Difficulty == Hard {
			sawHard = true
			break
		}
	}
	if !sawHard {
		t.Error("hard games never picked at moderate stress")
	}
}

func grinFrame() *lm.Frame {
	f := lm.Neutral()
	f.Points[lm.LeftMouthCorner] = lm.Point{X: 0.40, Y: 0.64}
	f.Points[lm.RightMouthCorner] = lm.Point{X: 0.60, Y: 0.64}
	return f
}

// installGame puts the engine directly into awaiting with a known game,
// bypassing the random pick.
func installGame(t *testing.T, e *Engine, id string) uuid.UUID {
	t.Helper()
	instance := uuid.New()
	e.mu.Lock()
	e.active = &activeGame{def: gameByID(t, id), instance: instance}
	e.state = StateAwaiting
	e.mu.Unlock()
	return instance
}

func TestGameLifecycleSuccess(t *testing.T) {
	e := testEngine(t)
	start := e.now()
	instance := installGame(t, e, "grin-and-hold")

	e.beginPlay(instance)
	if e.State() != StateActive {
		t.Fatalf("state after countdown = %v, want active", e.State())
	}

	var resolvedSuccess bool
	var resolvedMsg string
	e.OnGameResolved = func(def Definition, success bool, msg string) {
		resolvedSuccess = success
		resolvedMsg = msg
	}

	// Meet the requirement, then let the clock run out.
	e.SubmitFrame(grinFrame())
	e.tick()

	e.now = func() time.Time { return start.Add(9 * time.Second) }
	e.tick()

	if e.State() != StateResolved {
		t.Fatalf("state after duration = %v, want resolved", e.State())
	}
	if !resolvedSuccess {
		t.Error("game should resolve as a success")
	}
	if resolvedMsg != gameByID(t, "grin-and-hold").SuccessMessage {
		t.Errorf("resolved message = %q, want the success message", resolvedMsg)
	}

	// Closing a won game nudges stress down and returns to idle.
	e.mu.Lock()
	e.current = 0.9
	e.haveCurrent = true
	e.mu.Unlock()

	var relieved float64
	e.OnStress = func(score float64) { relieved = score }
	var closed bool
	e.OnGameClosed = func() { closed = true }

	e.closeGame(instance)

	if e.State() != StateIdle {
		t.Errorf("state after close = %v, want idle", e.State())
	}
	if !closed {
		t.Error("OnGameClosed did not fire")
	}
	if relieved < 0.749 || relieved > 0.751 {
		t.Errorf("relieved stress = %v, want 0.75", relieved)
	}
	if e.lastGameEnd.IsZero() {
		t.Error("cooldown anchor not set on close")
	}
}

func TestGameLifecycleFailure(t *testing.T) {
	e := testEngine(t)
	start := e.now()
	instance := installGame(t, e, "grin-and-hold")
	e.beginPlay(instance)

	var resolvedSuccess = true
	e.OnGameResolved = func(def Definition, success bool, _ string) {
		resolvedSuccess = success
	}

	// Neutral face never meets the grin requirement.
	e.SubmitFrame(lm.Neutral())
	e.now = func() time.Time { return start.Add(9 * time.Second) }
	e.tick()

	if resolvedSuccess {
		t.Error("relaxed face should resolve as a failure")
	}

	// A lost game leaves the stress score alone.
	e.mu.Lock()
	e.current = 0.9
	e.haveCurrent = true
	e.mu.Unlock()

	stressFired := false
	e.OnStress = func(float64) { stressFired = true }
	e.closeGame(instance)

	if stressFired {
		t.Error("failed game should not adjust stress")
	}
	if got := e.CurrentStress(); got != 0.9 {
		t.Errorf("stress after failed game = %v, want 0.9", got)
	}
}

func TestSuccessReliefFloorsAtZero(t *testing.T) {
	e := testEngine(t)
	instance := installGame(t, e, "grin-and-hold")
	e.mu.Lock()
	e.state = StateResolved
	e.active.success = true
	e.current = 0.1
	e.haveCurrent = true
	e.mu.Unlock()

	e.closeGame(instance)

	if got := e.CurrentStress(); got != 0 {
		t.Errorf("stress after relief = %v, want 0", got)
	}
}

func TestMissingFrameFreezesRequirement(t *testing.T) {
	e := testEngine(t)
	instance := installGame(t, e, "grin-and-hold")
	e.beginPlay(instance)

	e.SubmitFrame(grinFrame())
	e.tick()

	// Face lost: the last requirement value carries forward.
	e.SubmitFrame(nil)
	var lastMet bool
	e.OnGameProgress = func(_ Definition, _ float64, met bool) { lastMet = met }
	e.tick()

	if !lastMet {
		t.Error("losing the face should keep the last met value, not fail")
	}
}

func TestCancelAbortsGame(t *testing.T) {
	e := testEngine(t)
	instance := installGame(t, e, "grin-and-hold")

	var closed bool
	e.OnGameClosed = func() { closed = true }

	e.Cancel()

	if e.State() != StateIdle {
		t.Fatalf("state after cancel = %v, want idle", e.State())
	}
	if !closed {
		t.Error("OnGameClosed did not fire on cancel")
	}
	if e.lastGameEnd.IsZero() {
		t.Error("cancel must set the cooldown anchor")
	}

	// The countdown timer for the cancelled instance is now stale.
	e.beginPlay(instance)
	if e.State() != StateIdle {
		t.Error("stale countdown revived a cancelled game")
	}
}

func TestCancelWithoutGameIsNoOp(t *testing.T) {
	e := testEngine(t)
	e.OnGameClosed = func() { t.Error("OnGameClosed fired with no game") }
	e.Cancel()
	if !e.lastGameEnd.IsZero() {
		t.Error("idle cancel should not touch the cooldown anchor")
	}
}

func TestStaleResolveAndClose(t *testing.T) {
	e := testEngine(t)
	installGame(t, e, "grin-and-hold")

	stale := uuid.New()
	e.resolve(stale)
	if e.State() != StateAwaiting {
		t.Error("stale resolve changed state")
	}
	e.closeGame(stale)
	if e.State() != StateAwaiting {
		t.Error("stale close changed state")
	}
}

func TestSubmitFrameValidation(t *testing.T) {
	e := testEngine(t)

	e.SubmitFrame(lm.Neutral())
	e.mu.Lock()
	got := e.latest
	e.mu.Unlock()
	if got == nil {
		t.Fatal("valid frame dropped")
	}

	e.SubmitFrame(&lm.Frame{Points: make([]lm.Point, 10)})
	e.mu.Lock()
	got = e.latest
	e.mu.Unlock()
	if got != nil {
		t.Error("short frame should clear the snapshot")
	}
}

func TestSampleSkipsWithoutFace(t *testing.T) {
	e := testEngine(t)
	e.SubmitFrame(nil)

	e.sample()

	if e.history.Len() != 0 {
		t.Error("sampled stress with no face present")
	}
	if got := e.CurrentStress(); got != stress.Neutral {
		t.Errorf("stress before first sample = %v, want neutral", got)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:     "idle",
		StateAwaiting: "awaiting",
		StateActive:   "active",
		StateResolved: "resolved",
		State(99):     "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
