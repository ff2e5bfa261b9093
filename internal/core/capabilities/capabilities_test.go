package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/scene"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

type box struct {
	rect   physics.Rect
	active bool
	vx, vy float64
	ticks  int
}

func (b *box) Ready(s *scene.Scene, h scene.Handle) {
	err := ProvidePhysics(s, h, PhysicsObject{
		Active:    func(s *scene.Scene, h scene.Handle) bool { return scene.MustGet[*box](s, h).active },
		Collider:  func(s *scene.Scene, h scene.Handle) physics.Rect { return scene.MustGet[*box](s, h).rect },
		SetSpeedX: func(s *scene.Scene, h scene.Handle, v float64) { scene.MustGet[*box](s, h).vx = v },
		SetSpeedY: func(s *scene.Scene, h scene.Handle, v float64) { scene.MustGet[*box](s, h).vy = v },
	})
	if err != nil {
		panic(err)
	}
	err = ProvideNetwork(s, h, NetworkReplicate{
		NetworkUpdate: func(s *scene.Scene, h scene.Handle) { scene.MustGet[*box](s, h).ticks++ },
	})
	if err != nil {
		panic(err)
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, PhysicsObject{}.Validate(), ErrIncompleteTable)
	assert.ErrorIs(t, NetworkReplicate{}.Validate(), ErrIncompleteTable)

	s := scene.New()
	h := s.Add(&box{})
	assert.ErrorIs(t, ProvidePhysics(s, h, PhysicsObject{Active: func(*scene.Scene, scene.Handle) bool { return true }}), ErrIncompleteTable)
	_, ok := scene.Lookup[PhysicsObject](s, h)
	assert.False(t, ok)
}

func TestTablesDriveNode(t *testing.T) {
	s := scene.New()
	b := &box{rect: physics.Rect{W: 10, H: 10}, active: true}
	h := s.Add(b)

	n := 0
	for got, table := range Physics(s) {
		require.Equal(t, h, got)
		table.SetSpeedX(s, got, 3)
		table.SetSpeedY(s, got, -4)
		n++
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, 3.0, b.vx)
	assert.Equal(t, -4.0, b.vy)

	for got, table := range Network(s) {
		table.NetworkUpdate(s, got)
	}
	assert.Equal(t, 1, b.ticks)
}

func TestOverlapping(t *testing.T) {
	s := scene.New()
	inside := s.Add(&box{rect: physics.Rect{X: 0, Y: 0, W: 10, H: 10}, active: true})
	s.Add(&box{rect: physics.Rect{X: 0, Y: 0, W: 10, H: 10}, active: false})
	s.Add(&box{rect: physics.Rect{X: 50, Y: 50, W: 10, H: 10}, active: true})
	s.Add(&box{rect: physics.Rect{X: 10, Y: 0, W: 10, H: 10}, active: true})

	got := Overlapping(s, physics.Rect{X: 5, Y: 5, W: 5, H: 5})
	assert.Equal(t, []scene.Handle{inside}, got)
}

func TestRemovedNodeLosesTables(t *testing.T) {
	s := scene.New()
	h := s.Add(&box{active: true, rect: physics.Rect{W: 1, H: 1}})
	s.Activate()
	s.Remove(h)

	for range Physics(s) {
		t.Fatal("removed node still yielded")
	}
}
