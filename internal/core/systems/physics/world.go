package physics

import (
	"github.com/solarlune/resolv"
)

const (
	TagSolid = "solid"
	TagBody  = "body"
)

// WorldConfig sizes the collision space and fixes the simulation step.
type WorldConfig struct {
	Width    int
	Height   int
	CellSize int
	// Gravity is applied to dynamic bodies in world units per second squared.
	Gravity float64
	// Timestep is the duration of one integration step in seconds.
	Timestep float64
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:    2048,
		Height:   1024,
		CellSize: 32,
		Gravity:  900,
		Timestep: 1.0 / 60.0,
	}
}

// World is the collision world shared by every body of a level. It is not safe
// for concurrent use; the frame loop touches it from one goroutine.
type World struct {
	space    *resolv.Space
	gravity  float64
	timestep float64
	bodies   int
	solids   []*resolv.Object
}

func NewWorld(cfg WorldConfig) *World {
	def := DefaultWorldConfig()
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Timestep <= 0 {
		cfg.Timestep = def.Timestep
	}

	cellsX := (cfg.Width + cfg.CellSize - 1) / cfg.CellSize
	cellsY := (cfg.Height + cfg.CellSize - 1) / cfg.CellSize

	return &World{
		space:    resolv.NewSpace(cellsX*cfg.CellSize, cellsY*cfg.CellSize, cfg.CellSize, cfg.CellSize),
		gravity:  cfg.Gravity,
		timestep: cfg.Timestep,
	}
}

func (w *World) Gravity() float64  { return w.gravity }
func (w *World) Timestep() float64 { return w.timestep }

// Bodies reports how many allocated bodies are still in the world.
func (w *World) Bodies() int { return w.bodies }

// AddSolid inserts a static obstacle that collidable bodies cannot enter.
func (w *World) AddSolid(r Rect) {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, TagSolid)
	w.space.Add(obj)
	w.solids = append(w.solids, obj)
}

// Solids returns the static obstacles in insertion order.
func (w *World) Solids() []Rect {
	out := make([]Rect, len(w.solids))
	for i, obj := range w.solids {
		out[i] = objectRect(obj)
	}
	return out
}

func objectRect(obj *resolv.Object) Rect {
	return Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
}
