package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

func TestLoadLevelYAML(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "level.yaml", `
name: pier
solids:
  - [0, 200, 640, 40]
sproingers:
  - [300, 192]
items:
  - id: grenade01
    position: [100, 50]
  - id: helmet
    position: {x: 400, y: 20}
`)
	l, err := LoadLevel(path)
	require.NoError(t, err)

	assert.Equal(t, "pier", l.Name)
	assert.Equal(t, []physics.Rect{{X: 0, Y: 200, W: 640, H: 40}}, l.Solids)
	assert.Equal(t, []physics.Vec2{{X: 300, Y: 192}}, l.Sproingers)
	assert.Equal(t, []Placement{
		{ID: "grenade01", Position: physics.Vec2{X: 100, Y: 50}},
		{ID: "helmet", Position: physics.Vec2{X: 400, Y: 20}},
	}, l.Items)
}

func TestLoadLevelRejectsMissingID(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "level.json", `{"items": [{"position": [1, 2]}]}`)
	_, err := LoadLevel(path)
	assert.ErrorIs(t, err, ErrMalformedFile)
}

func TestSaveLevelRoundTrip(t *testing.T) {
	l := Level{
		Name:       "test",
		Solids:     []physics.Rect{{X: 1, Y: 2, W: 3, H: 4}},
		Sproingers: []physics.Vec2{{X: 5, Y: 6}},
		Items:      []Placement{{ID: "a", Position: physics.Vec2{X: 7, Y: 8}}},
	}
	for _, name := range []string{"level.json", "level.yaml.zst"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, SaveLevel(path, l))
		got, err := LoadLevel(path)
		require.NoError(t, err)
		assert.Equal(t, l, got, name)
	}
}

func TestLevelMissing(t *testing.T) {
	c, err := Load(writeTemp(t, t.TempDir(), "items.json", jsonCatalog))
	require.NoError(t, err)

	l := Level{Items: []Placement{{ID: "grenade01"}, {ID: "ghost"}, {ID: "ghost"}}}
	assert.Equal(t, []string{"ghost"}, l.Missing(c))
}
