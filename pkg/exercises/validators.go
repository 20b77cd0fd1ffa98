package exercises

import (
	lm "github.com/PittPrat/facevibe/pkg/landmarks"
)

// Per-exercise thresholds, tuned empirically against the detector's
// normalized coordinate space. No real-world distance calibration exists;
// every value below is a fraction of image width/height (or raw depth
// units for z). Tuning happens here, never in control flow.
const (
	jawDropMin = 0.34 // chin-to-nose span, relaxed face ≈ 0.28

	browLiftMin = 0.075 // brow-to-eyelid gap, relaxed ≈ 0.055

	winkClosedMax = 0.008 // eyelid gap counting as "shut"
	winkOpenMin   = 0.020 // eyelid gap counting as "open"

	smileWidthMin  = 0.20  // corner-to-corner span, relaxed ≈ 0.16
	smileUpturnMin = 0.005 // corners this far above the lip center

	cheekPuffMin = 0.28 // cheek span, relaxed ≈ 0.24

	puckerWidthMax = 0.11   // mouth span when puckered
	puckerDepthMin = -0.015 // lip z minus nose z, protruding lips go below

	noseScrunchMax = 0.085 // bridge-to-tip span, relaxed ≈ 0.10

	foreheadSmoothMax = 0.00004 // vertical variance across the brow band

	chinJutMax = -0.025 // chin z minus nose z, jutting chin goes below

	eyePopMin = 0.035 // eyelid gap with eyes wide, relaxed ≈ 0.025
)

// Builtin is the fixed set of ten exercises. Order is presentation
// order; lookups go through the Registry.
var Builtin = [10]Definition{
	{
		Name:           "Jaw Dropper",
		Check:          checkJawDropper,
		SuccessMessage: "Jaw unhinged! Tension has nowhere to hide.",
		FailureMessage: "Open wider, like you just saw your rent go down.",
	},
	{
		Name:           "Brow Lifter",
		Check:          checkBrowLifter,
		SuccessMessage: "Brows to the sky! Forehead fully awake.",
		FailureMessage: "Lift those brows like you mean it.",
	},
	{
		Name:           "Eye Winker",
		Check:          checkEyeWinker,
		SuccessMessage: "Smooth wink. Very smooth.",
		FailureMessage: "One eye shut, one eye open. Not both.",
	},
	{
		Name:           "Smile Stretcher",
		Check:          checkSmileStretcher,
		SuccessMessage: "That grin could power a small village.",
		FailureMessage: "Wider! Corners up, not just out.",
	},
	{
		Name:           "Cheek Puffer",
		Check:          checkCheekPuffer,
		SuccessMessage: "Maximum puff achieved.",
		FailureMessage: "Fill those cheeks like a trumpet player.",
	},
	{
		Name:           "Lip Pucker",
		Check:          checkLipPucker,
		SuccessMessage: "World-class pucker.",
		FailureMessage: "Push those lips forward, fish-style.",
	},
	{
		Name:           "Nose Scruncher",
		Check:          checkNoseScruncher,
		SuccessMessage: "Scrunch perfected. Nose fully exercised.",
		FailureMessage: "Scrunch harder, like something smells suspicious.",
	},
	{
		Name:           "Forehead Smoother",
		Check:          checkForeheadSmoother,
		SuccessMessage: "Forehead like still water.",
		FailureMessage: "Relax the brow. Let the worry lines go.",
	},
	{
		Name:           "Chin Jutter",
		Check:          checkChinJutter,
		SuccessMessage: "Chin boldly forward. Defiance achieved.",
		FailureMessage: "Push that chin toward the camera.",
	},
	{
		Name:           "Eye Popper",
		Check:          checkEyePopper,
		SuccessMessage: "Eyes wide open. Nothing escapes you now.",
		FailureMessage: "Bigger! Surprise-party big.",
	},
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

func checkJawDropper(f *lm.Frame) (bool, float64) {
	drop := lm.JawDrop(f)
	return drop > jawDropMin, clamp01(drop / jawDropMin)
}

func checkBrowLifter(f *lm.Frame) (bool, float64) {
	gap := lm.BrowEyeGap(f)
	return gap > browLiftMin, clamp01(gap / browLiftMin)
}

// checkEyeWinker requires one eye closed and the other open; symmetric
// squinting or wide eyes do not count.
func checkEyeWinker(f *lm.Frame) (bool, float64) {
	left := lm.LeftEyeOpenness(f)
	right := lm.RightEyeOpenness(f)

	closed, open := left, right
	if right < left {
		closed, open = right, left
	}

	ok := closed < winkClosedMax && open > winkOpenMin
	// Progress tracks how far the closing eye has shut.
	progress := clamp01(1 - (closed-winkClosedMax)/winkClosedMax)
	if open <= winkOpenMin {
		progress = 0
	}
	return ok, progress
}

// checkSmileStretcher requires width and shape: the mouth must stretch
// wide and both corners must sit above the lip center.
func checkSmileStretcher(f *lm.Frame) (bool, float64) {
	width := lm.MouthWidth(f)
	center := lm.Midpoint(f, lm.UpperLipBottom, lm.LowerLipTop)

	// y grows downward, so "above" means a smaller y.
	leftUp := center.Y-f.At(lm.LeftMouthCorner).Y > smileUpturnMin
	rightUp := center.Y-f.At(lm.RightMouthCorner).Y > smileUpturnMin

	ok := width > smileWidthMin && leftUp && rightUp
	return ok, clamp01(width / smileWidthMin)
}

func checkCheekPuffer(f *lm.Frame) (bool, float64) {
	span := lm.CheekSpan(f)
	return span > cheekPuffMin, clamp01(span / cheekPuffMin)
}

func checkLipPucker(f *lm.Frame) (bool, float64) {
	width := lm.MouthWidth(f)
	depth := lm.DepthDelta(f, lm.UpperLipTop, lm.NoseTip)

	ok := width < puckerWidthMax && depth < puckerDepthMin
	return ok, clamp01(puckerWidthMax / maxf(width, 1e-6))
}

func checkNoseScruncher(f *lm.Frame) (bool, float64) {
	length := lm.NoseLength(f)
	return length < noseScrunchMax, clamp01(noseScrunchMax / maxf(length, 1e-6))
}

func checkForeheadSmoother(f *lm.Frame) (bool, float64) {
	variance := lm.ForeheadVariance(f)
	return variance < foreheadSmoothMax, clamp01(foreheadSmoothMax / maxf(variance, 1e-9))
}

func checkChinJutter(f *lm.Frame) (bool, float64) {
	depth := lm.DepthDelta(f, lm.Chin, lm.NoseTip)
	return depth < chinJutMax, clamp01(depth / chinJutMax)
}

func checkEyePopper(f *lm.Frame) (bool, float64) {
	left := lm.LeftEyeOpenness(f)
	right := lm.RightEyeOpenness(f)

	ok := left > eyePopMin && right > eyePopMin
	return ok, clamp01(minf(left, right) / eyePopMin)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
