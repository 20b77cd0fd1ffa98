package landmarks

// Canonical face-mesh indices for the anatomical points the heuristics use.
// The 468-point topology is fixed by the external detector; keeping the
// mapping in one place stops magic numbers drifting between validators.
//
// "Left" and "Right" are the subject's left and right as seen in the image
// (mirror view), matching the detector's convention.
const (
	NoseTip    = 1
	NoseBridge = 168
	NoseBottom = 2

	Chin = 152

	// Horizontal band across the forehead, used for the smoothness proxy.
	ForeheadLeft   = 67
	ForeheadCenter = 10
	ForeheadRight  = 297

	LeftMouthCorner  = 61
	RightMouthCorner = 291
	UpperLipTop      = 0
	UpperLipBottom   = 13
	LowerLipTop      = 14
	LowerLipBottom   = 17

	LeftEyeTop    = 159
	LeftEyeBottom = 145
	LeftEyeOuter  = 33
	LeftEyeInner  = 133

	RightEyeTop    = 386
	RightEyeBottom = 374
	RightEyeInner  = 362
	RightEyeOuter  = 263

	LeftBrowInner = 55
	LeftBrowMid   = 105
	LeftBrowOuter = 70

	RightBrowInner = 285
	RightBrowMid   = 334
	RightBrowOuter = 300

	LeftCheek  = 205
	RightCheek = 425

	LeftJaw  = 132
	RightJaw = 361

	LeftNostril  = 64
	RightNostril = 294
)
