package render

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

var (
	white        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	debugMarker  = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}
	defaultScale = 1.0
)

// SpriteParams configures a Sprite. It is the `sprite` object of an item record.
type SpriteParams struct {
	TextureID string        `json:"texture_id" yaml:"texture_id"`
	Frame     uint32        `json:"frame,omitempty" yaml:"frame,omitempty"`
	Size      *physics.Vec2 `json:"size,omitempty" yaml:"size,omitempty"`
	Offset    physics.Vec2  `json:"offset,omitzero" yaml:"offset,omitempty"`
	Scale     float64       `json:"scale,omitempty" yaml:"scale,omitempty"`
	// Tint is #rrggbb or #rrggbbaa; empty means opaque white.
	Tint string `json:"tint,omitempty" yaml:"tint,omitempty"`
}

func (p SpriteParams) Validate() error {
	if strings.TrimSpace(p.TextureID) == "" {
		return ErrMissingTexture
	}
	if p.Scale < 0 {
		return fmt.Errorf("sprite scale %g is negative", p.Scale)
	}
	if _, err := ParseColor(p.Tint); err != nil {
		return err
	}
	return nil
}

// Clone returns a copy that shares no pointers with p.
func (p SpriteParams) Clone() SpriteParams {
	if p.Size != nil {
		size := *p.Size
		p.Size = &size
	}
	return p
}

// Sprite is the visual representation of a node.
type Sprite struct {
	params SpriteParams
	tint   color.RGBA
	scale  float64
}

// Build creates a Sprite. Params are expected to be validated; an unparsable
// tint falls back to white.
func Build(p SpriteParams) *Sprite {
	tint, err := ParseColor(p.Tint)
	if err != nil {
		tint = white
	}
	scale := p.Scale
	if scale == 0 {
		scale = defaultScale
	}
	return &Sprite{params: p.Clone(), tint: tint, scale: scale}
}

func (s *Sprite) Params() SpriteParams { return s.params.Clone() }

// Draw issues one sprite draw at position.
func (s *Sprite) Draw(r Renderer, position physics.Vec2, rotation float64, flipX, flipY bool) {
	var size physics.Vec2
	if s.params.Size != nil {
		size = s.params.Size.Scale(s.scale)
	}
	r.DrawSprite(SpriteDraw{
		Texture:  s.params.TextureID,
		Frame:    s.params.Frame,
		Position: position.Add(s.params.Offset),
		Size:     size,
		Rotation: rotation,
		FlipX:    flipX,
		FlipY:    flipY,
		Tint:     s.tint,
	})
}

// DebugDraw marks the anchor position of the sprite.
func (s *Sprite) DebugDraw(r Renderer, position physics.Vec2) {
	r.DrawMarker(position, debugMarker)
}

// ParseColor parses #rrggbb or #rrggbbaa. The empty string is opaque white.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return white, nil
	}
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
