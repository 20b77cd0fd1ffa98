package web

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/hub"
	"github.com/PittPrat/facevibe/pkg/landmarks"
)

func (s *Server) handleStatus(c *fiber.Ctx) error {
	def, hasGame := s.engine.ActiveGame()
	status := fiber.Map{
		"state":         s.engine.State().String(),
		"stress":        s.engine.CurrentStress(),
		"exercise":      s.tracker.Selected(),
		"streak":        s.tracker.Streak(),
		"event_clients": s.events.ClientCount(),
		"streak_record": s.aggregator.Streak(),
	}
	if hasGame {
		status["game"] = fiber.Map{
			"id":         def.ID,
			"name":       def.Name,
			"difficulty": def.Difficulty,
		}
	}
	return c.JSON(status)
}

func (s *Server) handleListExercises(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"exercises": s.registry.Names(),
		"completed": s.tracker.CompletedToday(),
	})
}

func (s *Server) handleSelectExercise(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.tracker.Select(req.Name); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"selected": req.Name})
}

func (s *Server) handleStressHistory(c *fiber.Ctx) error {
	h := s.engine.History()
	return c.JSON(fiber.Map{
		"samples": h.Values(),
		"trend":   h.Trend(),
		"current": s.engine.CurrentStress(),
	})
}

func (s *Server) handleResilience(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"series": s.aggregator.Series(),
		"streak": s.aggregator.Streak(),
	})
}

// handleSummary exposes the progress summary the assistant collaborator
// phrases feedback from. It consumes nothing back.
func (s *Server) handleSummary(c *fiber.Ctx) error {
	name, percent := s.tracker.Summary()
	return c.JSON(fiber.Map{
		"exercise_name":    name,
		"progress_percent": percent,
	})
}

// handleFramesWS ingests landmark frames. Each text message is either a
// full 468-point frame or {"points":null} for a no-face tick. Malformed
// messages are logged at debug and skipped, never fatal to the socket.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	defer conn.Close()
	log.Info("frame source connected", "remote", conn.RemoteAddr())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("frame source disconnected", "remote", conn.RemoteAddr())
			return
		}

		var frame landmarks.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Debug("discarding malformed frame", "error", err)
			continue
		}

		if s.OnFrame != nil {
			s.OnFrame(&frame)
		}
	}
}

// handleEventsWS attaches a client to the broadcast event stream.
func (s *Server) handleEventsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.events, conn)
	client.Run()
}
