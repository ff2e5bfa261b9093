package inspect

import (
	"github.com/zeusync/arena/internal/core/capabilities"
	"github.com/zeusync/arena/internal/core/scene"
)

// Collider is one physics object as seen by the physics capability.
type Collider struct {
	Handle uint64  `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Active bool    `json:"active"`
}

type Snapshot struct {
	Frame     uint64     `json:"frame"`
	Colliders []Collider `json:"colliders"`
}

// BuildSnapshot collects every physics object of s through its capability
// table. It never looks at concrete node types.
func BuildSnapshot(frame uint64, s *scene.Scene) Snapshot {
	snap := Snapshot{Frame: frame, Colliders: []Collider{}}
	for h, table := range capabilities.Physics(s) {
		r := table.Collider(s, h)
		snap.Colliders = append(snap.Colliders, Collider{
			Handle: h.Uint64(),
			X:      r.X,
			Y:      r.Y,
			W:      r.W,
			H:      r.H,
			Active: table.Active(s, h),
		})
	}
	return snap
}
