package game

import "sync"

// Trend classifies the recent direction of the stress series.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// trendSlack is the average change below which the series reads stable.
const trendSlack = 0.05

// History is a bounded FIFO of stress samples. Old samples are silently
// evicted once the capacity is reached.
type History struct {
	mu       sync.RWMutex
	samples  []float64
	capacity int
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// Push appends a sample, evicting the oldest when full.
func (h *History) Push(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = append(h.samples, v)
	if len(h.samples) > h.capacity {
		h.samples = h.samples[1:]
	}
}

// Len returns the current sample count.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

// TrailingAverage returns the mean of the last k samples. The boolean is
// false when fewer than k samples exist, which callers must treat as
// "gate not satisfied".
func (h *History) TrailingAverage(k int) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if k < 1 || len(h.samples) < k {
		return 0, false
	}

	var sum float64
	for _, v := range h.samples[len(h.samples)-k:] {
		sum += v
	}
	return sum / float64(k), true
}

// Trend compares the mean of the newest three samples against the three
// before them. With fewer than six samples the series reads stable.
func (h *History) Trend() Trend {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.samples)
	if n < 6 {
		return TrendStable
	}

	var recent, prior float64
	for _, v := range h.samples[n-3:] {
		recent += v
	}
	for _, v := range h.samples[n-6 : n-3] {
		prior += v
	}
	recent /= 3
	prior /= 3

	switch {
	case recent-prior > trendSlack:
		return TrendRising
	case prior-recent > trendSlack:
		return TrendFalling
	default:
		return TrendStable
	}
}
