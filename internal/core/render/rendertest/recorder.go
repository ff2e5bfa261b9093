// Package rendertest provides a Renderer that records calls for assertions.
package rendertest

import (
	"image/color"

	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

type Kind uint8

const (
	KindSprite Kind = iota + 1
	KindMarker
	KindRectLines
)

type Call struct {
	Kind   Kind
	Sprite render.SpriteDraw
	At     physics.Vec2
	Rect   physics.Rect
	Color  color.RGBA
}

// Recorder implements render.Renderer by appending every call to Calls.
type Recorder struct {
	Calls []Call
}

var _ render.Renderer = (*Recorder)(nil)

func (r *Recorder) DrawSprite(d render.SpriteDraw) {
	r.Calls = append(r.Calls, Call{Kind: KindSprite, Sprite: d, At: d.Position, Color: d.Tint})
}

func (r *Recorder) DrawMarker(at physics.Vec2, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: KindMarker, At: at, Color: c})
}

func (r *Recorder) DrawRectLines(rect physics.Rect, _ float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: KindRectLines, Rect: rect, At: rect.Position(), Color: c})
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Of returns the recorded calls of kind in order.
func (r *Recorder) Of(kind Kind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
