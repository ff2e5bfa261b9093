package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/render/rendertest"
	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

func TestSproingerLaunchesOverlappingItems(t *testing.T) {
	world := physics.NewWorld(physics.DefaultWorldConfig())
	s := scene.New()

	on := New(world, physics.Vec2{X: 10, Y: 0}, grenade(t))
	off := New(world, physics.Vec2{X: 200, Y: 0}, grenade(t))
	s.Add(on)
	s.Add(off)

	params := DefaultSproingerParams()
	params.Size = physics.Vec2{X: 40, Y: 10}
	params.Force = 500
	params.Cooldown = 2
	pad := NewSproinger(physics.Vec2{X: 0, Y: 15}, params)
	s.Add(pad)

	s.Update()
	assert.Equal(t, -500.0, on.Body().Velocity.Y)
	assert.Zero(t, off.Body().Velocity.Y)
	assert.Equal(t, 1, pad.Launches())

	on.Body().Velocity.Y = 0
	s.Update()
	s.Update()
	assert.Zero(t, on.Body().Velocity.Y, "cooling down")

	s.Update()
	assert.Equal(t, -500.0, on.Body().Velocity.Y)
	assert.Equal(t, 2, pad.Launches())
}

func TestSproingerIdleWithoutTargets(t *testing.T) {
	s := scene.New()
	pad := NewSproinger(physics.Vec2{}, SproingerParams{})
	s.Add(pad)
	s.Update()
	assert.Zero(t, pad.Launches())
	assert.Equal(t, physics.Rect{W: 32, H: 8}, pad.Trigger())
}

func TestSproingerDraw(t *testing.T) {
	s := scene.New()
	s.Add(NewSproinger(physics.Vec2{X: 5, Y: 6}, DefaultSproingerParams()))
	rec := &rendertest.Recorder{}

	s.Draw(render.Context{Renderer: rec, Debug: true})
	require.Equal(t, 1, rec.Count(rendertest.KindSprite))
	assert.Equal(t, "sproinger", rec.Calls[0].Sprite.Texture)
	assert.Equal(t, physics.Rect{X: 5, Y: 6, W: 32, H: 8}, rec.Of(rendertest.KindRectLines)[0].Rect)
}
