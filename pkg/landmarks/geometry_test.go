package landmarks

import (
	"math"
	"testing"
)

func TestFrameValid(t *testing.T) {
	if (&Frame{}).Valid() {
		t.Error("empty frame should be invalid")
	}

	var nilFrame *Frame
	if nilFrame.Valid() {
		t.Error("nil frame should be invalid")
	}

	partial := &Frame{Points: make([]Point, 100)}
	if partial.Valid() {
		t.Error("partial frame should be invalid")
	}

	if !NewFrame().Valid() {
		t.Error("full frame should be valid")
	}
}

func TestDistance(t *testing.T) {
	f := NewFrame()
	f.Points[0] = Point{X: 0, Y: 0}
	f.Points[1] = Point{X: 3, Y: 4}

	if got := Distance(f, 0, 1); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestAxisGaps(t *testing.T) {
	f := NewFrame()
	f.Points[0] = Point{X: 0.2, Y: 0.7, Z: -0.03}
	f.Points[1] = Point{X: 0.5, Y: 0.4, Z: 0.01}

	if got := HorizontalGap(f, 0, 1); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("HorizontalGap = %v, want 0.3", got)
	}
	if got := VerticalGap(f, 1, 0); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("VerticalGap = %v, want 0.3", got)
	}
	if got := DepthDelta(f, 0, 1); math.Abs(got-(-0.04)) > 1e-9 {
		t.Errorf("DepthDelta = %v, want -0.04", got)
	}
}

func TestVerticalVariance(t *testing.T) {
	f := NewFrame()
	f.Points[0] = Point{Y: 0.5}
	f.Points[1] = Point{Y: 0.5}
	f.Points[2] = Point{Y: 0.5}

	if got := VerticalVariance(f, 0, 1, 2); got != 0 {
		t.Errorf("flat points: variance = %v, want 0", got)
	}

	f.Points[1] = Point{Y: 0.53}
	if got := VerticalVariance(f, 0, 1, 2); got <= 0 {
		t.Errorf("uneven points: variance = %v, want > 0", got)
	}

	if got := VerticalVariance(f); got != 0 {
		t.Errorf("no points: variance = %v, want 0", got)
	}
}

func TestNeutralReadsRelaxed(t *testing.T) {
	f := Neutral()
	if !f.Valid() {
		t.Fatal("neutral frame should be valid")
	}

	// Spot-check the relaxed-face measurements the heuristics key on.
	checks := []struct {
		name     string
		got      float64
		min, max float64
	}{
		{"MouthWidth", MouthWidth(f), 0.15, 0.17},
		{"JawDrop", JawDrop(f), 0.27, 0.29},
		{"LeftEyeOpenness", LeftEyeOpenness(f), 0.02, 0.03},
		{"RightEyeOpenness", RightEyeOpenness(f), 0.02, 0.03},
		{"BrowEyeGap", BrowEyeGap(f), 0.05, 0.06},
		{"BrowPinch", BrowPinch(f), 0.09, 0.11},
		{"CheekSpan", CheekSpan(f), 0.23, 0.25},
		{"NostrilWidth", NostrilWidth(f), 0.07, 0.09},
		{"NoseLength", NoseLength(f), 0.09, 0.11},
	}
	for _, c := range checks {
		if c.got < c.min || c.got > c.max {
			t.Errorf("%s = %v, want in [%v, %v]", c.name, c.got, c.min, c.max)
		}
	}
}
