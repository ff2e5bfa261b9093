// Package game runs the frame loop over a level: activation, physics, network
// and draw phases in that order, one frame at a time.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeusync/arena/internal/catalog"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/netsync"
	"github.com/zeusync/arena/internal/core/systems/physics"
	"github.com/zeusync/arena/internal/items"
)

// ErrUnknownItem is returned when a level places an id the catalog lacks.
var ErrUnknownItem = errors.New("game: unknown item")

type Config struct {
	// Networked sessions only spawn definitions marked network ready.
	Networked bool
	// Realtime paces Run by the world timestep instead of stepping flat out.
	Realtime bool
	// Debug forces diagnostic overlays regardless of the build configuration.
	Debug bool
}

// FrameObserver is notified after every completed frame.
type FrameObserver interface {
	OnFrame(frame uint64, s *scene.Scene)
}

type Game struct {
	cfg       Config
	world     *physics.World
	scene     *scene.Scene
	net       *netsync.Driver
	renderer  render.Renderer
	logger    log.Log
	observers []FrameObserver
	frame     uint64
}

func New(cfg Config, world *physics.World, sc *scene.Scene, net *netsync.Driver, renderer render.Renderer, logger log.Log) *Game {
	if logger == nil {
		logger = log.NewNop()
	}
	if renderer == nil {
		renderer = render.Nop{}
	}
	if net == nil {
		net = netsync.New(logger)
	}
	return &Game{cfg: cfg, world: world, scene: sc, net: net, renderer: renderer, logger: logger}
}

func (g *Game) Scene() *scene.Scene      { return g.scene }
func (g *Game) World() *physics.World    { return g.world }
func (g *Game) Network() *netsync.Driver { return g.net }
func (g *Game) Frame() uint64            { return g.frame }

func (g *Game) AddObserver(o FrameObserver) {
	g.observers = append(g.observers, o)
}

// Spawn constructs an item at position and adds it to the scene.
func (g *Game) Spawn(params items.ItemParams, position physics.Vec2) scene.Handle {
	return g.scene.Add(items.New(g.world, position, params))
}

// SpawnLevel adds the solids, jump pads and items of level. Placed ids must all
// be defined by cat; nothing is spawned otherwise. It returns the number of
// items spawned.
func (g *Game) SpawnLevel(cat *catalog.Catalog, level catalog.Level) (int, error) {
	if missing := level.Missing(cat); len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, strings.Join(missing, ", "))
	}

	for _, r := range level.Solids {
		g.world.AddSolid(r)
	}
	for _, pos := range level.Sproingers {
		g.scene.Add(items.NewSproinger(pos, items.DefaultSproingerParams()))
	}

	spawned := 0
	for _, placement := range level.Items {
		params, _ := cat.Get(placement.ID)
		if g.cfg.Networked && !params.IsNetworkReady {
			g.logger.Warn("item is not network ready, skipping", log.String("id", placement.ID))
			continue
		}
		g.Spawn(params, placement.Position)
		spawned++
	}
	g.logger.Info("level spawned",
		log.String("level", level.Name),
		log.Int("items", spawned),
		log.Int("solids", len(level.Solids)),
		log.Int("sproingers", len(level.Sproingers)),
	)
	return spawned, nil
}

// Step runs one frame.
func (g *Game) Step() {
	g.scene.Activate()
	g.scene.Update()
	g.net.Tick(g.scene)

	ctx := render.NewContext(g.renderer)
	if g.cfg.Debug {
		ctx.Debug = true
	}
	presenter, buffered := g.renderer.(render.Presenter)
	if buffered {
		presenter.Begin()
	}
	g.scene.Draw(ctx)
	if buffered {
		presenter.Present()
	}

	g.frame++
	for _, o := range g.observers {
		o.OnFrame(g.frame, g.scene)
	}
}

// Run steps frames until frames have run, or until ctx is done when frames is
// zero. Stopping early because of ctx returns its error.
func (g *Game) Run(ctx context.Context, frames uint64) error {
	var tick <-chan time.Time
	if g.cfg.Realtime {
		ticker := time.NewTicker(time.Duration(g.world.Timestep() * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	first := g.frame
	defer func() {
		g.logger.Debug("run finished", log.Uint64("frames", g.frame-first), log.Duration("elapsed", time.Since(start)))
	}()

	for n := uint64(0); frames == 0 || n < frames; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return g.stopped(ctx, frames)
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return g.stopped(ctx, frames)
		}
		g.Step()
	}
	return nil
}

func (g *Game) stopped(ctx context.Context, frames uint64) error {
	if frames == 0 {
		return nil
	}
	return ctx.Err()
}
