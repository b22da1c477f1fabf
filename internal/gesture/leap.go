package gesture

import (
	"encoding/json"
	"fmt"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// DefaultLeapURL is the Leap Motion service's local websocket endpoint.
const DefaultLeapURL = "ws://127.0.0.1:6437/v6.json"

type leapVec [3]float64

type leapFrame struct {
	ID    int64 `json:"id"`
	Hands *[]struct {
		ID                     int64   `json:"id"`
		Type                   string  `json:"type"`
		PalmPosition           leapVec `json:"palmPosition"`
		StabilizedPalmPosition leapVec `json:"stabilizedPalmPosition"`
	} `json:"hands"`
	Pointables []struct {
		HandID                int64   `json:"handId"`
		TipPosition           leapVec `json:"tipPosition"`
		StabilizedTipPosition leapVec `json:"stabilizedTipPosition"`
	} `json:"pointables"`
	InteractionBox *struct {
		Center leapVec `json:"center"`
		Size   leapVec `json:"size"`
	} `json:"interactionBox"`
}

// DecodeLeap parses a Leap Motion service message. Handshake and event
// messages carry no hands and are reported with ok == false. Positions are
// normalised through the interaction box without clamping, so hands outside
// the box land off screen.
func DecodeLeap(data []byte, vp Viewport) (f Frame, ok bool, err error) {
	var lf leapFrame
	if err := json.Unmarshal(data, &lf); err != nil {
		return Frame{}, false, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if lf.Hands == nil || lf.InteractionBox == nil {
		return Frame{}, false, nil
	}
	box := lf.InteractionBox
	if box.Size[0] == 0 || box.Size[1] == 0 {
		return Frame{}, false, fmt.Errorf("%w: empty interaction box", ErrMalformedFrame)
	}

	toScreen := func(v leapVec) geom.Point {
		nx := (v[0]-box.Center[0])/box.Size[0] + 0.5
		ny := (v[1]-box.Center[1])/box.Size[1] + 0.5
		return geom.Pt(nx*vp.Width, (1-ny)*vp.Height)
	}

	for _, h := range *lf.Hands {
		f.Hands = append(f.Hands, toScreen(h.StabilizedPalmPosition))
	}
	for _, p := range lf.Pointables {
		f.Fingers = append(f.Fingers, toScreen(p.StabilizedTipPosition))
	}
	return f.tidy(), true, nil
}
