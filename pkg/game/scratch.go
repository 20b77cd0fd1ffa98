package game

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Scratch is short-lived memory for validators that need history across
// ticks (oscillation counters, stillness anchors, previous positions).
// It is scoped to one game instance: the engine clears it when a game
// starts and again when it ends, so state can never leak between games.
// The TTL is a backstop against a crashed session, not a contract.
type Scratch struct {
	c *cache.Cache
}

// NewScratch creates an empty scratch store.
func NewScratch() *Scratch {
	return &Scratch{c: cache.New(5*time.Minute, 10*time.Minute)}
}

// Float returns a stored float and whether it was present.
func (s *Scratch) Float(key string) (float64, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// SetFloat stores a float.
func (s *Scratch) SetFloat(key string, v float64) {
	s.c.Set(key, v, cache.DefaultExpiration)
}

// Int returns a stored int and whether it was present.
func (s *Scratch) Int(key string) (int, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// SetInt stores an int.
func (s *Scratch) SetInt(key string, v int) {
	s.c.Set(key, v, cache.DefaultExpiration)
}

// Increment adds one to a counter, creating it at 1, and returns the
// new value.
func (s *Scratch) Increment(key string) int {
	v, _ := s.Int(key)
	v++
	s.SetInt(key, v)
	return v
}

// String returns a stored string, defaulting to "".
func (s *Scratch) String(key string) string {
	v, ok := s.c.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// SetString stores a string.
func (s *Scratch) SetString(key, v string) {
	s.c.Set(key, v, cache.DefaultExpiration)
}

// Bool returns a stored bool, defaulting to false.
func (s *Scratch) Bool(key string) bool {
	v, ok := s.c.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// SetBool stores a bool.
func (s *Scratch) SetBool(key string, v bool) {
	s.c.Set(key, v, cache.DefaultExpiration)
}

// Clear drops everything. Called on every game start and end.
func (s *Scratch) Clear() {
	s.c.Flush()
}
