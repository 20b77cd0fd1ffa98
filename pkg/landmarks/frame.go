// Package landmarks defines the face-mesh frame type and the geometric
// measurements every validator and estimator is built from.
//
// All coordinates live in normalized image space: x and y in [0,1],
// z a small signed depth offset (negative = toward the camera). No pixel
// conversion or camera calibration exists anywhere in this package.
package landmarks

// FrameSize is the number of points in a full face-mesh frame.
const FrameSize = 468

// Point is a single 3D landmark in normalized coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is one detector output: a fixed ordered set of points describing
// one face at one instant. A frame is either fully populated or absent
// entirely; partial frames are treated the same as no face.
type Frame struct {
	Points []Point `json:"points"`
}

// Valid reports whether the frame holds a complete face mesh.
// Callers must skip evaluation for the tick when this is false.
func (f *Frame) Valid() bool {
	return f != nil && len(f.Points) == FrameSize
}

// At returns the point at the given mesh index.
// Only call after Valid() has been checked.
func (f *Frame) At(i int) Point {
	return f.Points[i]
}

// NewFrame allocates an all-zero frame of the full mesh size.
// Useful for synthetic frames in tests and the simulator.
func NewFrame() *Frame {
	return &Frame{Points: make([]Point, FrameSize)}
}
