package items

import (
	"image/color"

	"github.com/zeusync/arena/internal/core/capabilities"
	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

var triggerColor = color.RGBA{R: 0xff, G: 0xd0, B: 0x20, A: 0xff}

// SproingerParams configures a jump pad.
type SproingerParams struct {
	Sprite render.SpriteParams `json:"sprite" yaml:"sprite"`
	Size   physics.Vec2        `json:"size" yaml:"size"`
	// Force is the upward speed given to launched objects.
	Force float64 `json:"force" yaml:"force"`
	// Cooldown is the number of updates the pad stays inactive after a launch.
	Cooldown int `json:"cooldown" yaml:"cooldown"`
}

func DefaultSproingerParams() SproingerParams {
	return SproingerParams{
		Sprite:   render.SpriteParams{TextureID: "sproinger"},
		Size:     physics.Vec2{X: 32, Y: 8},
		Force:    600,
		Cooldown: 30,
	}
}

// Sproinger is a jump pad. It launches every physics object overlapping its
// trigger area straight up.
type Sproinger struct {
	position physics.Vec2
	params   SproingerParams
	sprite   *render.Sprite
	cooldown int
	launches int
}

var (
	_ scene.Updater = (*Sproinger)(nil)
	_ scene.Drawer  = (*Sproinger)(nil)
)

func NewSproinger(position physics.Vec2, params SproingerParams) *Sproinger {
	def := DefaultSproingerParams()
	if params.Size.IsZero() {
		params.Size = def.Size
	}
	if params.Sprite.TextureID == "" {
		params.Sprite = def.Sprite
	}
	return &Sproinger{position: position, params: params, sprite: render.Build(params.Sprite)}
}

// Trigger is the area that launches objects.
func (sp *Sproinger) Trigger() physics.Rect {
	return physics.Rect{X: sp.position.X, Y: sp.position.Y, W: sp.params.Size.X, H: sp.params.Size.Y}
}

func (sp *Sproinger) Launches() int { return sp.launches }

func (sp *Sproinger) Update(s *scene.Scene, _ scene.Handle) {
	if sp.cooldown > 0 {
		sp.cooldown--
		return
	}
	launched := false
	for _, target := range capabilities.Overlapping(s, sp.Trigger()) {
		table, ok := scene.Lookup[capabilities.PhysicsObject](s, target)
		if !ok {
			continue
		}
		table.SetSpeedY(s, target, -sp.params.Force)
		launched = true
	}
	if launched {
		sp.launches++
		sp.cooldown = sp.params.Cooldown
	}
}

func (sp *Sproinger) Draw(ctx render.Context) {
	sp.sprite.Draw(ctx.Renderer, sp.position, 0, false, false)
	if ctx.Debug {
		ctx.Renderer.DrawRectLines(sp.Trigger(), 1, triggerColor)
	}
}
