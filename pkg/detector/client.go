// Package detector consumes the external face-mesh detector feed: a
// websocket stream of 468-point landmark frames (or nulls for no-face
// ticks). The detector owns the camera and the model; this client only
// subscribes, tracks feed liveness, and hands frames to the pipeline.
package detector

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/PittPrat/facevibe/internal/httpc"
	"github.com/PittPrat/facevibe/internal/log"
	"github.com/PittPrat/facevibe/pkg/landmarks"
)

const (
	// staleAfter is how long without a frame before the feed reads
	// stale: the "no frames arriving" signal surfaced upward.
	staleAfter = 5 * time.Second

	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Client subscribes to a detector websocket feed.
type Client struct {
	url string

	// OnFrame receives every decoded frame. A frame with nil points is
	// a no-face tick.
	OnFrame func(f *landmarks.Frame)

	mu          sync.RWMutex
	lastFrameAt time.Time
	connected   bool
}

// NewClient creates a client for the given websocket URL.
func NewClient(url string) *Client {
	return &Client{url: url}
}

// Connected reports whether the feed socket is currently up.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Stale reports whether no frame has arrived recently. True both before
// the first frame and after the feed goes quiet.
func (c *Client) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastFrameAt.IsZero() || time.Since(c.lastFrameAt) > staleAfter
}

// Run connects and consumes the feed until the context is done,
// reconnecting with exponential backoff on any failure.
func (c *Client) Run(ctx context.Context) {
	backoff := reconnectMin

	for {
		if ctx.Err() != nil {
			return
		}

		err := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}

		log.Warn("detector feed lost, reconnecting", "url", c.url, "backoff", backoff, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > reconnectMax {
			backoff = reconnectMax
		}
	}
}

// consume runs one connection until it fails.
func (c *Client) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.setConnected(true)
	defer c.setConnected(false)
	log.Info("detector feed connected", "url", c.url)

	// Close the socket when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame landmarks.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Debug("discarding malformed detector frame", "error", err)
			continue
		}

		c.mu.Lock()
		c.lastFrameAt = time.Now()
		c.mu.Unlock()

		if c.OnFrame != nil {
			c.OnFrame(&frame)
		}
	}
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// Healthy probes the detector's HTTP health endpoint. An empty URL
// reports healthy; the probe is advisory only.
func Healthy(healthURL string) bool {
	if healthURL == "" {
		return true
	}
	resp, err := httpc.Get(healthURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}
