//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/render"
)

func InitializeApp(cfg config.Config, renderer render.Renderer) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
