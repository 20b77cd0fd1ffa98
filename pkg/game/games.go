package game

import (
	"time"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
)

// Game thresholds, in normalized coordinate space. Oscillation games use
// a two-level hysteresis band so landmark noise cannot fake a rep.
const (
	jawOpenMin    = 0.32 // jaw counts as open above this
	jawClosedMax  = 0.29 // and as closed below this
	jawTargetReps = 6    // open->close transitions to win

	stillnessSlack = 0.012 // nose-tip drift allowed before the freeze breaks

	browUpMin      = 0.070
	browDownMax    = 0.060
	browTargetReps = 4

	grinWidthMin = 0.19

	winkShutMax    = 0.008
	winkOpenMin    = 0.020
	winkTargetReps = 4

	puffSpanMin = 0.27

	fishWidthMax = 0.12

	zenVarianceMax = 0.00005

	flareWideMin    = 0.095
	flareNarrowMax  = 0.085
	flareTargetReps = 3

	jutDepthMax = -0.02
)

// Builtin is the fixed set of ten mini-games.
var Builtin = [10]Definition{
	{
		ID:             "jaw-metronome",
		Name:           "Jaw Metronome",
		Duration:       15 * time.Second,
		Difficulty:     Hard,
		Validate:       validateJawMetronome,
		SuccessMessage: "Six clean reps! Your jaw keeps better time than a drummer.",
		FailureMessage: "The metronome wants six full open-close swings.",
	},
	{
		ID:             "stone-face",
		Name:           "Stone Face",
		Duration:       10 * time.Second,
		Difficulty:     Hard,
		Validate:       validateStoneFace,
		SuccessMessage: "Not a single twitch. Statues are jealous.",
		FailureMessage: "You moved! Stillness is the whole game.",
	},
	{
		ID:             "brow-disco",
		Name:           "Brow Disco",
		Duration:       12 * time.Second,
		Difficulty:     Medium,
		Validate:       validateBrowDisco,
		SuccessMessage: "Four brow pumps! The dance floor approves.",
		FailureMessage: "Pump those brows up and down, four full times.",
	},
	{
		ID:             "grin-and-hold",
		Name:           "Grin and Hold",
		Duration:       8 * time.Second,
		Difficulty:     Easy,
		Validate:       validateGrinAndHold,
		SuccessMessage: "Held the grin to the end. Instant mood upgrade.",
		FailureMessage: "The grin slipped. Lock it in place next time.",
	},
	{
		ID:             "wink-volley",
		Name:           "Wink Volley",
		Duration:       15 * time.Second,
		Difficulty:     Hard,
		Validate:       validateWinkVolley,
		SuccessMessage: "Left, right, left, right. A flawless volley.",
		FailureMessage: "Alternate winks, four in a row, no doubles.",
	},
	{
		ID:             "balloon-cheeks",
		Name:           "Balloon Cheeks",
		Duration:       8 * time.Second,
		Difficulty:     Medium,
		Validate:       validateBalloonCheeks,
		SuccessMessage: "Fully inflated to the buzzer!",
		FailureMessage: "Keep those cheeks puffed the whole time.",
	},
	{
		ID:             "fish-face",
		Name:           "Fish Face",
		Duration:       8 * time.Second,
		Difficulty:     Easy,
		Validate:       validateFishFace,
		SuccessMessage: "Magnificent fish. The aquarium called.",
		FailureMessage: "Pucker and hold, all the way through.",
	},
	{
		ID:             "zen-forehead",
		Name:           "Zen Forehead",
		Duration:       10 * time.Second,
		Difficulty:     Easy,
		Validate:       validateZenForehead,
		SuccessMessage: "A perfectly calm forehead. Deeply zen.",
		FailureMessage: "Smooth the brow. Let the lines melt away.",
	},
	{
		ID:             "nostril-breather",
		Name:           "Nostril Breather",
		Duration:       12 * time.Second,
		Difficulty:     Medium,
		Validate:       validateNostrilBreather,
		SuccessMessage: "Three deep flares. Breathing like a pro.",
		FailureMessage: "Flare and release, three slow breaths.",
	},
	{
		ID:             "chin-captain",
		Name:           "Chin Captain",
		Duration:       8 * time.Second,
		Difficulty:     Easy,
		Validate:       validateChinCaptain,
		SuccessMessage: "Chin held proudly forward. Aye, captain.",
		FailureMessage: "Jut that chin out and keep it there.",
	},
}

// validateJawMetronome counts full open-close jaw swings via a
// hysteresis band in scratch.
func validateJawMetronome(f *lm.Frame, _ time.Duration, s *Scratch) bool {
	drop := lm.JawDrop(f)

	open := s.Bool("jaw_open")
	if !open && drop > jawOpenMin {
		s.SetBool("jaw_open", true)
	} else if open && drop < jawClosedMax {
		s.SetBool("jaw_open", false)
		s.Increment("jaw_reps")
	}

	reps, _ := s.Int("jaw_reps")
	return reps >= jawTargetReps
}

// validateStoneFace anchors the nose tip on the first frame and breaks
// permanently on any drift beyond the slack. Once broken, the game
// cannot recover within the same instance.
func validateStoneFace(f *lm.Frame, _ time.Duration, s *Scratch) bool {
	if s.Bool("broken") {
		return false
	}

	nose := f.At(lm.NoseTip)
	ax, okX := s.Float("anchor_x")
	ay, okY := s.Float("anchor_y")
	if !okX || !okY {
		s.SetFloat("anchor_x", nose.X)
		s.SetFloat("anchor_y", nose.Y)
		return true
	}

	dx := nose.X - ax
	dy := nose.Y - ay
	if dx*dx+dy*dy > stillnessSlack*stillnessSlack {
		s.SetBool("broken", true)
		return false
	}
	return true
}

func validateBrowDisco(f *lm.Frame, _ time.Duration, s *Scratch) bool {
	gap := lm.BrowEyeGap(f)

	up := s.Bool("brow_up")
	if !up && gap > browUpMin {
		s.SetBool("brow_up", true)
	} else if up && gap < browDownMax {
		s.SetBool("brow_up", false)
		s.Increment("brow_reps")
	}

	reps, _ := s.Int("brow_reps")
	return reps >= browTargetReps
}

func validateGrinAndHold(f *lm.Frame, _ time.Duration, _ *Scratch) bool {
	center := lm.Midpoint(f, lm.UpperLipBottom, lm.LowerLipTop)
	cornersUp := f.At(lm.LeftMouthCorner).Y < center.Y &&
		f.At(lm.RightMouthCorner).Y < center.Y
	return lm.MouthWidth(f) > grinWidthMin && cornersUp
}

// validateWinkVolley counts winks that alternate sides; winking the same
// eye twice does not advance the count.
func validateWinkVolley(f *lm.Frame, _ time.Duration, s *Scratch) bool {
	left := lm.LeftEyeOpenness(f)
	right := lm.RightEyeOpenness(f)

	var side string
	switch {
	case left < winkShutMax && right > winkOpenMin:
		side = "left"
	case right < winkShutMax && left > winkOpenMin:
		side = "right"
	default:
		// Both eyes open again: the current wink is finished.
		if left > winkOpenMin && right > winkOpenMin {
			s.SetBool("wink_active", false)
		}
		reps, _ := s.Int("wink_reps")
		return reps >= winkTargetReps
	}

	if !s.Bool("wink_active") {
		if side != s.String("wink_last") {
			s.Increment("wink_reps")
			s.SetString("wink_last", side)
		}
		s.SetBool("wink_active", true)
	}

	reps, _ := s.Int("wink_reps")
	return reps >= winkTargetReps
}

func validateBalloonCheeks(f *lm.Frame, _ time.Duration, _ *Scratch) bool {
	return lm.CheekSpan(f) > puffSpanMin
}

func validateFishFace(f *lm.Frame, _ time.Duration, _ *Scratch) bool {
	return lm.MouthWidth(f) < fishWidthMax
}

func validateZenForehead(f *lm.Frame, _ time.Duration, _ *Scratch) bool {
	return lm.ForeheadVariance(f) < zenVarianceMax
}

func validateNostrilBreather(f *lm.Frame, _ time.Duration, s *Scratch) bool {
	width := lm.NostrilWidth(f)

	flared := s.Bool("flare_wide")
	if !flared && width > flareWideMin {
		s.SetBool("flare_wide", true)
	} else if flared && width < flareNarrowMax {
		s.SetBool("flare_wide", false)
		s.Increment("flare_reps")
	}

	reps, _ := s.Int("flare_reps")
	return reps >= flareTargetReps
}

func validateChinCaptain(f *lm.Frame, _ time.Duration, _ *Scratch) bool {
	return lm.DepthDelta(f, lm.Chin, lm.NoseTip) < jutDepthMax
}
