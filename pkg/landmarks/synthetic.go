package landmarks

// Synthetic frames for tests and the development simulator. The layout
// places every named index at a relaxed-face position in normalized
// coordinate space; unnamed mesh points sit at the face center and are
// never read by the heuristics.

// neutralLayout maps named indices to their relaxed positions.
var neutralLayout = map[int]Point{
	NoseTip:    {X: 0.50, Y: 0.50, Z: -0.02},
	NoseBridge: {X: 0.50, Y: 0.40, Z: -0.01},
	NoseBottom: {X: 0.50, Y: 0.54, Z: -0.015},

	Chin: {X: 0.50, Y: 0.78, Z: 0},

	ForeheadLeft:   {X: 0.42, Y: 0.26, Z: 0},
	ForeheadCenter: {X: 0.50, Y: 0.24, Z: 0},
	ForeheadRight:  {X: 0.58, Y: 0.25, Z: 0},

	LeftMouthCorner:  {X: 0.42, Y: 0.66, Z: 0},
	RightMouthCorner: {X: 0.58, Y: 0.66, Z: 0},
	UpperLipTop:      {X: 0.50, Y: 0.63, Z: -0.01},
	UpperLipBottom:   {X: 0.50, Y: 0.645, Z: -0.01},
	LowerLipTop:      {X: 0.50, Y: 0.655, Z: -0.01},
	LowerLipBottom:   {X: 0.50, Y: 0.67, Z: 0},

	LeftEyeTop:    {X: 0.40, Y: 0.445, Z: 0},
	LeftEyeBottom: {X: 0.40, Y: 0.47, Z: 0},
	LeftEyeOuter:  {X: 0.35, Y: 0.46, Z: 0},
	LeftEyeInner:  {X: 0.44, Y: 0.46, Z: 0},

	RightEyeTop:    {X: 0.60, Y: 0.445, Z: 0},
	RightEyeBottom: {X: 0.60, Y: 0.47, Z: 0},
	RightEyeInner:  {X: 0.56, Y: 0.46, Z: 0},
	RightEyeOuter:  {X: 0.65, Y: 0.46, Z: 0},

	LeftBrowInner: {X: 0.45, Y: 0.40, Z: 0},
	LeftBrowMid:   {X: 0.40, Y: 0.39, Z: 0},
	LeftBrowOuter: {X: 0.34, Y: 0.40, Z: 0},

	RightBrowInner: {X: 0.55, Y: 0.40, Z: 0},
	RightBrowMid:   {X: 0.60, Y: 0.39, Z: 0},
	RightBrowOuter: {X: 0.66, Y: 0.40, Z: 0},

	LeftCheek:  {X: 0.38, Y: 0.58, Z: 0},
	RightCheek: {X: 0.62, Y: 0.58, Z: 0},

	LeftJaw:  {X: 0.34, Y: 0.62, Z: 0},
	RightJaw: {X: 0.66, Y: 0.62, Z: 0},

	LeftNostril:  {X: 0.46, Y: 0.52, Z: -0.01},
	RightNostril: {X: 0.54, Y: 0.52, Z: -0.01},
}

// Neutral returns a full synthetic frame of a relaxed face. Every
// exercise validator returns false on it and the stress estimator reads
// near zero (before jitter).
func Neutral() *Frame {
	f := NewFrame()
	for i := range f.Points {
		f.Points[i] = Point{X: 0.5, Y: 0.5, Z: 0}
	}
	for idx, p := range neutralLayout {
		f.Points[idx] = p
	}
	return f
}
