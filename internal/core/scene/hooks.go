package scene

import "github.com/zeusync/arena/internal/core/render"

// Readier is called once when a node transitions from constructed to ready.
// Capability tables are provided from here.
type Readier interface {
	Ready(s *Scene, h Handle)
}

// Updater is called once per Update dispatch on ready nodes.
type Updater interface {
	Update(s *Scene, h Handle)
}

// Drawer is called once per Draw dispatch on ready nodes.
type Drawer interface {
	Draw(ctx render.Context)
}

// Remover is called when a node is removed from the scene.
type Remover interface {
	Removed()
}
