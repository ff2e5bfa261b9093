package physics

import (
	"image/color"
	"math"

	"github.com/solarlune/resolv"
)

// OutlineDrawer is the part of a renderer needed to outline a body.
type OutlineDrawer interface {
	DrawRectLines(r Rect, thickness float64, c color.RGBA)
}

// BodyParams carries optional per-body tuning passed to Allocate.
type BodyParams struct {
	// DisableGravity keeps a dynamic body from accelerating downwards.
	DisableGravity bool
}

var debugOutline = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}

// Body is a rectangular physical body living in a World. Position is the
// top-left corner of the collider.
type Body struct {
	Position   Vec2
	Velocity   Vec2
	Rotation   float64
	Size       Vec2
	Collidable bool
	Dynamic    bool
	OnGround   bool

	gravity bool
	world   *World
	object  *resolv.Object
}

// Allocate creates a body in world. A nil world is a programming error and panics.
func Allocate(world *World, position Vec2, rotation float64, size Vec2, collidable, dynamic bool, extra *BodyParams) *Body {
	if world == nil {
		panic("physics: Allocate called without a collision world")
	}

	obj := resolv.NewObject(position.X, position.Y, size.X, size.Y, TagBody)
	world.space.Add(obj)
	world.bodies++

	b := &Body{
		Position:   position,
		Rotation:   rotation,
		Size:       size,
		Collidable: collidable,
		Dynamic:    dynamic,
		gravity:    dynamic,
		world:      world,
		object:     obj,
	}
	if extra != nil && extra.DisableGravity {
		b.gravity = false
	}
	obj.Data = b
	return b
}

// ColliderRect returns the collision rectangle in world coordinates.
func (b *Body) ColliderRect() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, W: b.Size.X, H: b.Size.Y}
}

// Update advances the body by one world timestep: gravity, then the X move,
// then the Y move, each stopped at the first solid it would enter. Solids the
// body already overlaps do not block it.
func (b *Body) Update() {
	if !b.Dynamic || b.object == nil {
		return
	}
	// Position may have been written directly since the last step.
	b.sync()
	dt := b.world.timestep

	if b.gravity {
		b.Velocity.Y += b.world.gravity * dt
	}

	if dx := b.Velocity.X * dt; dx != 0 {
		moved, hit := b.sweep(dx, 0)
		b.Position.X += moved
		if hit {
			b.Velocity.X = 0
		}
		b.sync()
	}

	b.OnGround = false
	if dy := b.Velocity.Y * dt; dy != 0 {
		moved, hit := b.sweep(0, dy)
		b.Position.Y += moved
		if hit {
			if dy > 0 {
				b.OnGround = true
			}
			b.Velocity.Y = 0
		}
		b.sync()
	}
}

// sweep clamps a single-axis move against solids. Exactly one of dx, dy is non-zero.
func (b *Body) sweep(dx, dy float64) (float64, bool) {
	delta := dx + dy
	if !b.Collidable {
		return delta, false
	}
	collision := b.object.Check(dx, dy, TagSolid)
	if collision == nil {
		return delta, false
	}

	from := b.ColliderRect()
	target := from.Translate(dx, dy)
	hit := false
	for _, obj := range collision.Objects {
		other := objectRect(obj)
		if from.Overlaps(other) || !target.Overlaps(other) {
			continue
		}
		hit = true
		switch {
		case dx > 0:
			delta = math.Min(delta, math.Max(0, other.X-from.Right()))
		case dx < 0:
			delta = math.Max(delta, math.Min(0, other.Right()-from.X))
		case dy > 0:
			delta = math.Min(delta, math.Max(0, other.Y-from.Bottom()))
		case dy < 0:
			delta = math.Max(delta, math.Min(0, other.Bottom()-from.Y))
		}
	}
	return delta, hit
}

func (b *Body) sync() {
	b.object.X = b.Position.X
	b.object.Y = b.Position.Y
	b.object.Update()
}

// Teleport moves the body without integrating, e.g. when authoritative state
// arrives from the network.
func (b *Body) Teleport(p Vec2) {
	b.Position = p
	if b.object != nil {
		b.sync()
	}
}

// DebugDraw outlines the collider.
func (b *Body) DebugDraw(d OutlineDrawer) {
	d.DrawRectLines(b.ColliderRect(), 1, debugOutline)
}

// Released reports whether the body was removed from its world.
func (b *Body) Released() bool { return b.object == nil }

// Release removes the body from its world. Calling it twice is a no-op.
func (b *Body) Release() {
	if b.object == nil {
		return
	}
	b.world.space.Remove(b.object)
	b.world.bodies--
	b.object = nil
}
