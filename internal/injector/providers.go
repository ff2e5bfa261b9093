package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/netsync"
	"github.com/zeusync/arena/internal/core/systems/physics"
	"github.com/zeusync/arena/internal/game"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideWorldConfig,
	physics.NewWorld,
	bus.New,
	ProvideScene,
	netsync.New,
	ProvideGameConfig,
	game.New,
	wire.Struct(new(App), "*"),
)

// App is everything cmd/arena needs from the composition root.
type App struct {
	Logger log.Log
	Game   *game.Game
}

// ProvideLogger builds the process logger; the cleanup flushes it.
func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := log.New(log.Config{Level: cfg.LogLevel(), Development: cfg.Log.Development})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideWorldConfig(cfg config.Config) physics.WorldConfig {
	return physics.WorldConfig{
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		CellSize: cfg.World.CellSize,
		Gravity:  cfg.World.Gravity,
		Timestep: cfg.World.Timestep,
	}
}

func ProvideScene(b bus.EventBus, logger log.Log) *scene.Scene {
	return scene.New(scene.WithBus(b), scene.WithLogger(logger))
}

func ProvideGameConfig(cfg config.Config) game.Config {
	return game.Config{
		Networked: cfg.Game.Networked,
		Realtime:  cfg.Game.Realtime,
		Debug:     cfg.Render.Debug,
	}
}
