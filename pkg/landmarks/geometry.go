package landmarks

import "math"

// Distance returns the 2D Euclidean distance between two mesh points,
// ignoring depth. Units are normalized coordinate space.
func Distance(f *Frame, a, b int) float64 {
	pa, pb := f.At(a), f.At(b)
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HorizontalGap returns the absolute x-axis separation between two points.
func HorizontalGap(f *Frame, a, b int) float64 {
	return math.Abs(f.At(a).X - f.At(b).X)
}

// VerticalGap returns the absolute y-axis separation between two points.
func VerticalGap(f *Frame, a, b int) float64 {
	return math.Abs(f.At(a).Y - f.At(b).Y)
}

// DepthDelta returns z(a) - z(b). Negative means a sits closer to the
// camera than b; used for protrusion checks (chin jut, lip pucker).
func DepthDelta(f *Frame, a, b int) float64 {
	return f.At(a).Z - f.At(b).Z
}

// VerticalVariance returns the variance of the y coordinates of the given
// points. A furrowed forehead pulls its points apart vertically, so low
// variance is a smoothness proxy.
func VerticalVariance(f *Frame, idx ...int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var mean float64
	for _, i := range idx {
		mean += f.At(i).Y
	}
	mean /= float64(len(idx))

	var variance float64
	for _, i := range idx {
		d := f.At(i).Y - mean
		variance += d * d
	}
	return variance / float64(len(idx))
}

// Midpoint returns the 2D midpoint of two mesh points.
func Midpoint(f *Frame, a, b int) Point {
	pa, pb := f.At(a), f.At(b)
	return Point{
		X: (pa.X + pb.X) / 2,
		Y: (pa.Y + pb.Y) / 2,
		Z: (pa.Z + pb.Z) / 2,
	}
}

// Named measurements shared by the validators and the stress estimator.

// MouthWidth is the corner-to-corner mouth span.
func MouthWidth(f *Frame) float64 {
	return HorizontalGap(f, LeftMouthCorner, RightMouthCorner)
}

// MouthOpening is the inner-lip vertical gap.
func MouthOpening(f *Frame) float64 {
	return VerticalGap(f, UpperLipBottom, LowerLipTop)
}

// JawDrop is the chin-to-nose-tip vertical span.
func JawDrop(f *Frame) float64 {
	return VerticalGap(f, Chin, NoseTip)
}

// LeftEyeOpenness is the left eyelid vertical gap.
func LeftEyeOpenness(f *Frame) float64 {
	return VerticalGap(f, LeftEyeTop, LeftEyeBottom)
}

// RightEyeOpenness is the right eyelid vertical gap.
func RightEyeOpenness(f *Frame) float64 {
	return VerticalGap(f, RightEyeTop, RightEyeBottom)
}

// BrowEyeGap is the mean brow-to-upper-eyelid distance across both sides.
// It grows with a brow lift and shrinks with a frown.
func BrowEyeGap(f *Frame) float64 {
	left := VerticalGap(f, LeftBrowMid, LeftEyeTop)
	right := VerticalGap(f, RightBrowMid, RightEyeTop)
	return (left + right) / 2
}

// BrowPinch is the distance between the inner brows. Contracting the
// brows toward the nose bridge shrinks it.
func BrowPinch(f *Frame) float64 {
	return HorizontalGap(f, LeftBrowInner, RightBrowInner)
}

// JawWidth is the jaw hinge-to-hinge span.
func JawWidth(f *Frame) float64 {
	return HorizontalGap(f, LeftJaw, RightJaw)
}

// NostrilWidth is the nose wing-to-wing span; grows with a flare.
func NostrilWidth(f *Frame) float64 {
	return HorizontalGap(f, LeftNostril, RightNostril)
}

// LipThickness is the outer-lip vertical extent; lip compression
// (pressing lips together) shrinks it.
func LipThickness(f *Frame) float64 {
	return VerticalGap(f, UpperLipTop, LowerLipBottom)
}

// CheekSpan is the cheek-to-cheek span; grows with puffed cheeks.
func CheekSpan(f *Frame) float64 {
	return HorizontalGap(f, LeftCheek, RightCheek)
}

// NoseLength is the bridge-to-tip vertical span; shrinks with a scrunch.
func NoseLength(f *Frame) float64 {
	return VerticalGap(f, NoseBridge, NoseTip)
}

// ForeheadVariance is the vertical variance across the forehead band.
// The three points sit at the same height on a relaxed face, so variance
// rises with furrowing or an uneven brow raise.
func ForeheadVariance(f *Frame) float64 {
	return VerticalVariance(f, ForeheadLeft, ForeheadCenter, ForeheadRight)
}
