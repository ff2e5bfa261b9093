// Package items implements the placeable world objects of a level: their
// declarative definitions and the live entities spawned from them.
package items

import (
	"github.com/zeusync/arena/internal/core/capabilities"
	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

// Item is a live item entity. It is owned by the scene it is added to.
type Item struct {
	id           string
	kind         ItemKind
	networkReady bool
	body         *physics.Body
	sprite       *render.Sprite
}

var (
	_ scene.Readier = (*Item)(nil)
	_ scene.Drawer  = (*Item)(nil)
	_ scene.Remover = (*Item)(nil)
)

// New spawns an item at position: a collidable dynamic body with zero rotation
// and the definition's collider footprint, plus its sprite. A nil world is a
// programming error and panics.
func New(world *physics.World, position physics.Vec2, params ItemParams) *Item {
	if world == nil {
		panic("items: New with nil collision world")
	}
	if params.Kind == nil {
		panic("items: New with definition lacking a kind")
	}
	body := physics.Allocate(world, position, 0, params.ColliderSize.AsVec2(), true, true, nil)
	return &Item{
		id:           params.ID,
		kind:         params.Kind.Clone(),
		networkReady: params.IsNetworkReady,
		body:         body,
		sprite:       render.Build(params.Sprite),
	}
}

func (it *Item) ID() string           { return it.id }
func (it *Item) Kind() ItemKind       { return it.kind }
func (it *Item) Body() *physics.Body  { return it.body }
func (it *Item) IsNetworkReady() bool { return it.networkReady }

// Ready provides the physics and network capability tables for h.
func (it *Item) Ready(s *scene.Scene, h scene.Handle) {
	if err := capabilities.ProvidePhysics(s, h, physicsCapabilities()); err != nil {
		panic(err)
	}
	if err := capabilities.ProvideNetwork(s, h, networkCapabilities()); err != nil {
		panic(err)
	}
}

// Draw draws the sprite at the body, unflipped. Debug contexts also get the
// anchor marker and the collider outline.
func (it *Item) Draw(ctx render.Context) {
	it.sprite.Draw(ctx.Renderer, it.body.Position, it.body.Rotation, false, false)
	if ctx.Debug {
		it.sprite.DebugDraw(ctx.Renderer, it.body.Position)
		it.body.DebugDraw(ctx.Renderer)
	}
}

// Removed releases the body from the collision world.
func (it *Item) Removed() {
	it.body.Release()
}

func physicsCapabilities() capabilities.PhysicsObject {
	return capabilities.PhysicsObject{
		Active: func(s *scene.Scene, h scene.Handle) bool {
			scene.MustGet[*Item](s, h)
			return true
		},
		Collider: func(s *scene.Scene, h scene.Handle) physics.Rect {
			return scene.MustGet[*Item](s, h).body.ColliderRect()
		},
		SetSpeedX: func(s *scene.Scene, h scene.Handle, speed float64) {
			scene.MustGet[*Item](s, h).body.Velocity.X = speed
		},
		SetSpeedY: func(s *scene.Scene, h scene.Handle, speed float64) {
			scene.MustGet[*Item](s, h).body.Velocity.Y = speed
		},
	}
}

func networkCapabilities() capabilities.NetworkReplicate {
	return capabilities.NetworkReplicate{
		NetworkUpdate: func(s *scene.Scene, h scene.Handle) {
			scene.MustGet[*Item](s, h).body.Update()
		},
	}
}
