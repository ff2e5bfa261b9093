// Package render holds the visual side of scene nodes: sprite parameters, the
// Sprite built from them and the Renderer contract backends implement.
package render

import (
	"image/color"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

// Renderer is implemented by drawing backends.
type Renderer interface {
	DrawSprite(d SpriteDraw)
	DrawMarker(at physics.Vec2, c color.RGBA)
	DrawRectLines(r physics.Rect, thickness float64, c color.RGBA)
}

// Presenter is optionally implemented by backends that buffer a frame.
type Presenter interface {
	Begin()
	Present()
}

// SpriteDraw is one sprite draw request.
type SpriteDraw struct {
	Texture  string
	Frame    uint32
	Position physics.Vec2
	// Size is the destination size; zero lets the backend pick the texture size.
	Size     physics.Vec2
	Rotation float64
	FlipX    bool
	FlipY    bool
	Tint     color.RGBA
}

// Context is handed to draw hooks.
type Context struct {
	Renderer Renderer
	// Debug enables diagnostic overlays (markers, collider outlines).
	Debug bool
}

// NewContext returns a Context whose Debug flag follows the build configuration.
func NewContext(r Renderer) Context {
	return Context{Renderer: r, Debug: DiagnosticsBuild}
}

// Nop discards every draw call.
type Nop struct{}

var _ Renderer = Nop{}

func (Nop) DrawSprite(SpriteDraw)                           {}
func (Nop) DrawMarker(physics.Vec2, color.RGBA)             {}
func (Nop) DrawRectLines(physics.Rect, float64, color.RGBA) {}
