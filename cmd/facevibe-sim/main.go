// facevibe-sim streams synthetic landmark frames into a running
// facevibe server, for development without a camera or detector.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gorilla/websocket"

	lm "github.com/PittPrat/facevibe/pkg/landmarks"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8090/ws/frames", "frame ingest websocket URL")
	preset := flag.String("preset", "neutral", "face preset: neutral, smile, jawdrop, stressed, noface")
	fps := flag.Int("fps", 15, "frames per second")
	duration := flag.Duration("duration", 0, "how long to stream (0 = forever)")
	flag.Parse()

	build, ok := presets[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset %q\n", *preset)
		os.Exit(1)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("streaming %q frames to %s at %d fps\n", *preset, *addr, *fps)

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		select {
		case <-ticker.C:
			frame := build()
			if frame != nil {
				wobble(frame, rnd)
			}
			data, err := json.Marshal(frameMessage(frame))
			if err != nil {
				fmt.Fprintf(os.Stderr, "encode: %v\n", err)
				os.Exit(1)
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				fmt.Fprintf(os.Stderr, "write: %v\n", err)
				os.Exit(1)
			}
		case <-deadline:
			fmt.Println("done")
			return
		}
	}
}

var presets = map[string]func() *lm.Frame{
	"neutral": lm.Neutral,
	"noface":  func() *lm.Frame { return nil },
	"smile": func() *lm.Frame {
		f := lm.Neutral()
		f.Points[lm.LeftMouthCorner] = lm.Point{X: 0.39, Y: 0.64}
		f.Points[lm.RightMouthCorner] = lm.Point{X: 0.61, Y: 0.64}
		return f
	},
	"jawdrop": func() *lm.Frame {
		f := lm.Neutral()
		f.Points[lm.Chin] = lm.Point{X: 0.50, Y: 0.86}
		return f
	},
	// stressed pinches the brows, compresses the mouth, squints, and
	// presses the lips; the estimator reads it well above the game
	// trigger threshold.
	"stressed": func() *lm.Frame {
		f := lm.Neutral()
		f.Points[lm.LeftBrowInner] = lm.Point{X: 0.47, Y: 0.40}
		f.Points[lm.RightBrowInner] = lm.Point{X: 0.53, Y: 0.40}
		f.Points[lm.LeftMouthCorner] = lm.Point{X: 0.455, Y: 0.66}
		f.Points[lm.RightMouthCorner] = lm.Point{X: 0.545, Y: 0.66}
		f.Points[lm.LeftEyeBottom] = lm.Point{X: 0.40, Y: 0.457}
		f.Points[lm.RightEyeBottom] = lm.Point{X: 0.60, Y: 0.457}
		f.Points[lm.UpperLipTop] = lm.Point{X: 0.50, Y: 0.645, Z: -0.01}
		f.Points[lm.LowerLipBottom] = lm.Point{X: 0.50, Y: 0.665}
		f.Points[lm.Chin] = lm.Point{X: 0.50, Y: 0.74}
		return f
	},
}

// wobble adds small landmark noise so streams look alive without
// crossing any validator threshold.
func wobble(f *lm.Frame, rnd *rand.Rand) {
	for i := range f.Points {
		f.Points[i].X += (rnd.Float64() - 0.5) * 0.002
		f.Points[i].Y += (rnd.Float64() - 0.5) * 0.002
	}
}

// frameMessage shapes the ingest payload: a real frame or a no-face
// tick with null points.
func frameMessage(f *lm.Frame) *lm.Frame {
	if f == nil {
		return &lm.Frame{Points: nil}
	}
	return f
}
