// Package netsync drives the per-frame network replication hook of every node
// that provides one.
package netsync

import (
	"github.com/zeusync/arena/internal/core/capabilities"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/scene"
)

type Stats struct {
	Ticks   uint64
	Updates uint64
	// LastFrame is the number of hooks called by the latest Tick.
	LastFrame int
}

type Driver struct {
	logger log.Log
	stats  Stats
}

func New(logger log.Log) *Driver {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Driver{logger: logger}
}

// Tick calls NetworkUpdate once for every node providing it.
func (d *Driver) Tick(s *scene.Scene) {
	n := 0
	for h, table := range capabilities.Network(s) {
		table.NetworkUpdate(s, h)
		n++
	}
	d.stats.Ticks++
	d.stats.Updates += uint64(n)
	d.stats.LastFrame = n
	d.logger.Debug("network tick", log.Uint64("tick", d.stats.Ticks), log.Int("updates", n))
}

func (d *Driver) Stats() Stats { return d.stats }
