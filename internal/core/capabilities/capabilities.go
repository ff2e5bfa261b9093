// Package capabilities defines the tables of functions a node provides to the
// scene so that systems can drive it without knowing its concrete kind.
//
// Every function receives the scene and the node's own handle and is expected
// to resolve the node on each call.
package capabilities

import (
	"errors"
	"fmt"
	"iter"

	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

// ErrIncompleteTable is returned when a capability table has a nil function.
var ErrIncompleteTable = errors.New("capabilities: incomplete table")

// PhysicsObject lets physics-aware systems query and push a node.
type PhysicsObject struct {
	Active    func(s *scene.Scene, h scene.Handle) bool
	Collider  func(s *scene.Scene, h scene.Handle) physics.Rect
	SetSpeedX func(s *scene.Scene, h scene.Handle, speed float64)
	SetSpeedY func(s *scene.Scene, h scene.Handle, speed float64)
}

func (t PhysicsObject) Validate() error {
	var missing []string
	if t.Active == nil {
		missing = append(missing, "Active")
	}
	if t.Collider == nil {
		missing = append(missing, "Collider")
	}
	if t.SetSpeedX == nil {
		missing = append(missing, "SetSpeedX")
	}
	if t.SetSpeedY == nil {
		missing = append(missing, "SetSpeedY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: physics object lacks %v", ErrIncompleteTable, missing)
	}
	return nil
}

// NetworkReplicate is called once per frame by the replication driver.
type NetworkReplicate struct {
	NetworkUpdate func(s *scene.Scene, h scene.Handle)
}

func (t NetworkReplicate) Validate() error {
	if t.NetworkUpdate == nil {
		return fmt.Errorf("%w: network replicate lacks NetworkUpdate", ErrIncompleteTable)
	}
	return nil
}

// ProvidePhysics validates t and registers it for h.
func ProvidePhysics(s *scene.Scene, h scene.Handle, t PhysicsObject) error {
	if err := t.Validate(); err != nil {
		return err
	}
	scene.Provide(s, h, t)
	return nil
}

// ProvideNetwork validates t and registers it for h.
func ProvideNetwork(s *scene.Scene, h scene.Handle, t NetworkReplicate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	scene.Provide(s, h, t)
	return nil
}

func Physics(s *scene.Scene) iter.Seq2[scene.Handle, PhysicsObject] {
	return scene.Capable[PhysicsObject](s)
}

func Network(s *scene.Scene) iter.Seq2[scene.Handle, NetworkReplicate] {
	return scene.Capable[NetworkReplicate](s)
}

// Overlapping returns the handles of active physics objects whose collider
// overlaps rect, in scene order.
func Overlapping(s *scene.Scene, rect physics.Rect) []scene.Handle {
	var out []scene.Handle
	for h, t := range Physics(s) {
		if t.Active(s, h) && t.Collider(s, h).Overlaps(rect) {
			out = append(out, h)
		}
	}
	return out
}
