package sink

import (
	"encoding/json"

	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/scene"
)

type jsonOutput struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Diagnostic string            `json:"diagnostic,omitempty"`
	Bounds     *layout.Rect      `json:"bounds,omitempty"`
	Transform  scene.Transform   `json:"transform"`
	Cards      []scene.Card      `json:"cards"`
	Connectors []scene.Connector `json:"connectors"`
}

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONTransform records the viewport transform instead of the default.
func WithJSONTransform(t scene.Transform) JSONOption {
	return func(o *jsonOutput) { o.Transform = t }
}

// RenderJSON exports the scene primitives as indented JSON.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{
		Width:      s.Width,
		Height:     s.Height,
		Diagnostic: s.Diagnostic,
		Transform:  scene.DefaultTransform(s.Width),
		Cards:      s.Cards,
		Connectors: s.Connectors,
	}
	if !s.Empty() {
		b := s.Bounds()
		out.Bounds = &b
	}
	if out.Cards == nil {
		out.Cards = []scene.Card{}
	}
	if out.Connectors == nil {
		out.Connectors = []scene.Connector{}
	}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
