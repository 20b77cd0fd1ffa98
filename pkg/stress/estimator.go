// Package stress estimates a facial tension score from a single
// landmark frame.
//
// The estimator decomposes tension into independent indicators (brow
// pinch, asymmetry, mouth compression, eye tension, forehead variation,
// jaw clench, lip/nostril tension), normalizes each to [0,1], and
// combines them with fixed weights. There is no claim of clinical
// validity; the score drives session pacing, nothing else.
package stress

import (
	"math"
	"math/rand"
	"sync"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
)

// Neutral is the score returned when no frame is available: stress is
// unknown, not zero.
const Neutral = 0.5

// Indicator weights. They sum to 1 so the weighted sum stays in [0,1]
// before jitter.
const (
	weightBrowPinch  = 0.20
	weightBrowAsym   = 0.10
	weightMouth      = 0.15
	weightEyes       = 0.20
	weightForehead   = 0.10
	weightJawClench  = 0.15
	weightLipNostril = 0.10
)

// Normalization anchors, in normalized coordinate space. Each pair maps
// a relaxed-face reading to 0 and a visibly tense reading to 1.
const (
	browPinchTense   = 0.06 // inner-brow gap fully contracted
	browPinchRelaxed = 0.10

	browAsymSpan = 0.03 // left/right brow height difference at full skew

	mouthTense   = 0.10 // corner span fully compressed
	mouthRelaxed = 0.16

	eyeNeutralOpen = 0.025 // relaxed eyelid gap
	eyeDevSpan     = 0.015 // deviation (either direction) scoring 1
	eyeAsymSpan    = 0.015

	foreheadCalm  = 0.00002 // vertical variance, smooth brow
	foreheadTense = 0.0002

	jawRatioRelaxed = 1.2 // jaw width / jaw drop, mouth at rest
	jawRatioTense   = 1.6 // clenched, lips pressed

	lipThickRelaxed = 0.04
	lipThickTense   = 0.02

	nostrilRelaxed = 0.09
	nostrilFlared  = 0.12
)

// defaultJitter is the perceptual-variation amplitude: ±5% uniform.
const defaultJitter = 0.05

// Indicator is one named tension component of the final score.
type Indicator struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"` // normalized [0,1]
	Weight float64 `json:"weight"`
}

// Estimator maps a landmark frame to a stress score in [0,1]. It is a
// pure function of the frame plus an explicit jitter source, so a seeded
// estimator is reproducible.
type Estimator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	jitter float64
}

// New creates an estimator with the default ±5% jitter, seeded from the
// given value.
func New(seed int64) *Estimator {
	return &Estimator{
		rnd:    rand.New(rand.NewSource(seed)),
		jitter: defaultJitter,
	}
}

// NewDeterministic creates an estimator with jitter disabled. Two
// identical frames always yield identical scores.
func NewDeterministic() *Estimator {
	return &Estimator{jitter: 0}
}

// Estimate returns the stress score for one frame, clamped to [0,1].
// A nil or partial frame returns Neutral.
func (e *Estimator) Estimate(f *lm.Frame) float64 {
	if !f.Valid() {
		return Neutral
	}

	score := 0.0
	for _, ind := range e.Breakdown(f) {
		score += ind.Value * ind.Weight
	}

	if e.jitter > 0 {
		e.mu.Lock()
		score += (e.rnd.Float64()*2 - 1) * e.jitter
		e.mu.Unlock()
	}

	return clamp01(score)
}

// Breakdown returns every indicator for one frame, in fixed order.
// The weighted sum of the values is the pre-jitter score.
func (e *Estimator) Breakdown(f *lm.Frame) []Indicator {
	return []Indicator{
		{"brow_pinch", browPinch(f), weightBrowPinch},
		{"brow_asymmetry", browAsymmetry(f), weightBrowAsym},
		{"mouth_compression", mouthCompression(f), weightMouth},
		{"eye_tension", eyeTension(f), weightEyes},
		{"forehead_variation", foreheadVariation(f), weightForehead},
		{"jaw_clench", jawClench(f), weightJawClench},
		{"lip_nostril", lipNostril(f), weightLipNostril},
	}
}

// browPinch scores contraction of the brows toward the nose bridge.
func browPinch(f *lm.Frame) float64 {
	return rampDown(lm.BrowPinch(f), browPinchTense, browPinchRelaxed)
}

// browAsymmetry scores one brow sitting higher than the other.
func browAsymmetry(f *lm.Frame) float64 {
	left := lm.VerticalGap(f, lm.LeftBrowMid, lm.LeftEyeTop)
	right := lm.VerticalGap(f, lm.RightBrowMid, lm.RightEyeTop)
	return clamp01(math.Abs(left-right) / browAsymSpan)
}

// mouthCompression scores a narrowed, tightened mouth.
func mouthCompression(f *lm.Frame) float64 {
	return rampDown(lm.MouthWidth(f), mouthTense, mouthRelaxed)
}

// eyeTension scores eyes held too wide or too narrow, and left/right
// asymmetry. Both directions of deviation count as tension.
func eyeTension(f *lm.Frame) float64 {
	left := lm.LeftEyeOpenness(f)
	right := lm.RightEyeOpenness(f)

	mean := (left + right) / 2
	deviation := clamp01(math.Abs(mean-eyeNeutralOpen) / eyeDevSpan)
	asymmetry := clamp01(math.Abs(left-right) / eyeAsymSpan)

	if asymmetry > deviation {
		return asymmetry
	}
	return deviation
}

// foreheadVariation scores unevenness across the forehead band.
func foreheadVariation(f *lm.Frame) float64 {
	return rampUp(lm.ForeheadVariance(f), foreheadCalm, foreheadTense)
}

// jawClench scores the jaw width-to-drop ratio; a clenched jaw narrows
// the drop while the width holds.
func jawClench(f *lm.Frame) float64 {
	drop := lm.JawDrop(f)
	if drop < 1e-6 {
		return 1
	}
	return rampUp(lm.JawWidth(f)/drop, jawRatioRelaxed, jawRatioTense)
}

// lipNostril scores pressed lips and flared nostrils, whichever reads
// stronger.
func lipNostril(f *lm.Frame) float64 {
	lips := rampDown(lm.LipThickness(f), lipThickTense, lipThickRelaxed)
	flare := rampUp(lm.NostrilWidth(f), nostrilRelaxed, nostrilFlared)
	if flare > lips {
		return flare
	}
	return lips
}

// rampUp maps v linearly from 0 at lo to 1 at hi.
func rampUp(v, lo, hi float64) float64 {
	return clamp01((v - lo) / (hi - lo))
}

// rampDown maps v linearly from 1 at tense to 0 at relaxed, where
// tense < relaxed.
func rampDown(v, tense, relaxed float64) float64 {
	return clamp01((relaxed - v) / (relaxed - tense))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
