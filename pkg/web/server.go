// Package web exposes facevibe over HTTP and websockets: a frame-ingest
// endpoint fed by the external landmark detector, a broadcast event
// stream for UI and assistant collaborators, and a small REST API over
// session state.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/exercises"
	"github.com/PittPrat/facevibe/pkg/game"
	"github.com/PittPrat/facevibe/pkg/hub"
	"github.com/PittPrat/facevibe/pkg/landmarks"
	"github.com/PittPrat/facevibe/pkg/resilience"
)

// Server is the facevibe HTTP/websocket surface.
type Server struct {
	app  *fiber.App
	port string

	events *hub.Hub

	registry   *exercises.Registry
	tracker    *exercises.Tracker
	engine     *game.Engine
	aggregator *resilience.Aggregator

	// OnFrame receives every ingested frame snapshot. A frame with nil
	// points means "no face this tick".
	OnFrame func(f *landmarks.Frame)
}

// NewServer creates the server over the session components.
func NewServer(port string, registry *exercises.Registry, tracker *exercises.Tracker,
	engine *game.Engine, aggregator *resilience.Aggregator) *Server {

	s := &Server{
		port:       port,
		events:     hub.New("events"),
		registry:   registry,
		tracker:    tracker,
		engine:     engine,
		aggregator: aggregator,
	}

	app := fiber.New(fiber.Config{
		AppName:               "facevibe",
		DisableStartupMessage: true,
	})

	// CORS for local development against a separately served UI.
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/exercises", s.handleListExercises)
	api.Post("/exercises/select", s.handleSelectExercise)
	api.Get("/stress/history", s.handleStressHistory)
	api.Get("/resilience", s.handleResilience)
	api.Get("/summary", s.handleSummary)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start starts the server and blocks.
func (s *Server) Start() error {
	go s.events.Run()
	log.Info("facevibe listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Publish broadcasts an event to all event-stream clients.
func (s *Server) Publish(eventType string, payload any) {
	s.events.Publish(hub.Event{Type: eventType, Payload: payload})
}
