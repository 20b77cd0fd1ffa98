// facevibe is the facial-exercise and stress session server. It ingests
// landmark frames from an external face-mesh detector, validates
// exercises, estimates stress, runs the mini-game session engine, and
// broadcasts session events over websockets.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PittPrat/facevibe/internal/config"
	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/detector"
	"github.com/PittPrat/facevibe/pkg/exercises"
	"github.com/PittPrat/facevibe/pkg/game"
	"github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/resilience"
	"github.com/PittPrat/facevibe/pkg/store"
	"github.com/PittPrat/facevibe/pkg/stress"
	"github.com/PittPrat/facevibe/pkg/web"
)

func main() {
	// Best-effort .env load for local development.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	st, err := store.NewJSONStore(cfg.StorePath)
	if err != nil {
		log.Error("store init failed", "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := exercises.NewRegistry()
	tracker := exercises.NewTracker(registry, st)
	estimator := stress.New(seed)
	engine := game.New(game.DefaultConfig(), game.Builtin[:], estimator,
		rand.New(rand.NewSource(seed)))
	aggregator := resilience.NewAggregator(st)

	server := web.NewServer(cfg.Port, registry, tracker, engine, aggregator)

	// One consistent frame snapshot per tick feeds both consumers.
	submit := func(f *landmarks.Frame) {
		engine.SubmitFrame(f)
		tracker.Evaluate(f)
	}
	server.OnFrame = submit

	tracker.OnSelectionChanged = func(name string) {
		server.Publish("exercise_selected", map[string]any{"name": name})
	}
	tracker.OnProgress = func(percent float64) {
		server.Publish("exercise_progress", map[string]any{"percent": percent})
	}
	tracker.OnFeedback = func(message string, ok bool) {
		server.Publish("exercise_feedback", map[string]any{"message": message, "ok": ok})
	}
	tracker.OnComplete = func(name string) {
		server.Publish("exercise_complete", map[string]any{"name": name})
		count := len(tracker.CompletedToday())
		rec := aggregator.RecordToday(count, engine.CurrentStress())
		streak := aggregator.TouchStreak(true)
		server.Publish("resilience_update", map[string]any{
			"record": rec,
			"streak": streak,
		})
	}

	engine.OnStress = func(score float64) {
		server.Publish("stress_update", map[string]any{
			"score": score,
			"trend": engine.History().Trend(),
		})
	}
	engine.OnGameStarted = func(def game.Definition) {
		server.Publish("game_started", map[string]any{
			"id":         def.ID,
			"name":       def.Name,
			"duration":   def.Duration.Seconds(),
			"difficulty": def.Difficulty,
		})
	}
	engine.OnGameProgress = func(def game.Definition, percent float64, met bool) {
		server.Publish("game_progress", map[string]any{
			"id":      def.ID,
			"percent": percent,
			"met":     met,
		})
	}
	engine.OnGameResolved = func(def game.Definition, success bool, message string) {
		server.Publish("game_resolved", map[string]any{
			"id":      def.ID,
			"success": success,
			"message": message,
		})
	}
	engine.OnGameClosed = func() {
		server.Publish("game_closed", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Lazy streak-break check on startup: a two-day gap zeroes the
	// streak even before any exercise happens today.
	aggregator.TouchStreak(len(tracker.CompletedToday()) > 0)

	go engine.Run(ctx)

	if cfg.DetectorURL != "" {
		if !detector.Healthy(cfg.DetectorHealth) {
			log.Warn("detector health probe failed, connecting anyway", "url", cfg.DetectorHealth)
		}
		feed := detector.NewClient(cfg.DetectorURL)
		feed.OnFrame = submit
		go feed.Run(ctx)
	}

	server.StartAsync()

	<-ctx.Done()
	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
