package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/systems/physics"
	"github.com/zeusync/arena/internal/items"
)

const jsonCatalog = `[
	{"id": "grenade01", "type": "weapon", "cooldown": 1, "sprite": {"texture_id": "grenade"}, "collider_size": [20, 20], "is_network_ready": true},
	{"id": "helmet", "type": "equipped_item", "slot": "head", "sprite": {"texture_id": "helmet"}, "collider_size": [16, 12]}
]`

const yamlCatalog = `
- id: sword
  type: weapon
  attack_duration: 0.3
  sprite:
    texture_id: sword
  collider_size: [32, 8]
- id: boots
  type: equipped_item
  effects: [speed]
  sprite: {texture_id: boots}
  collider_size: {x: 10, y: 6}
`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]FileFormat{
		"items.json":     {Format: FormatJSON},
		"items.YAML":     {Format: FormatYAML},
		"a/b/items.yml":  {Format: FormatYAML},
		"items.json.zst": {Format: FormatJSON, Compressed: true},
		"items.yml.zst":  {Format: FormatYAML, Compressed: true},
	}
	for path, want := range cases {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	for _, path := range []string{"items.toml", "items", "items.zst"} {
		_, err := DetectFormat(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, path)
	}
}

func TestLoadJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(writeTemp(t, dir, "items.json", jsonCatalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"grenade01", "helmet"}, c.IDs())
	p, ok := c.Get("grenade01")
	require.True(t, ok)
	assert.True(t, p.IsNetworkReady)
	assert.True(t, items.IsWeapon(p.Kind))

	c, err = Load(writeTemp(t, dir, "items.yaml", yamlCatalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"boots", "sword"}, c.IDs())
	boots, _ := c.Get("boots")
	assert.Equal(t, physics.UVec2{X: 10, Y: 6}, boots.ColliderSize)
	assert.Equal(t, []string{"speed"}, boots.Kind.(items.EquippedItemKind).Params.Effects)
}

func TestGetReturnsCopy(t *testing.T) {
	c, err := Load(writeTemp(t, t.TempDir(), "items.yaml", yamlCatalog))
	require.NoError(t, err)

	boots, _ := c.Get("boots")
	boots.Kind.(items.EquippedItemKind).Params.Effects[0] = "changed"
	again, _ := c.Get("boots")
	assert.Equal(t, "speed", again.Kind.(items.EquippedItemKind).Params.Effects[0])
}

func TestMalformedAbortsByDefault(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "items.json", `[
		{"id": "ok", "type": "weapon", "sprite": {"texture_id": "t"}, "collider_size": [1, 1]},
		{"id": "x", "collider_size": [-1, 5]}
	]`)
	_, err := Load(path)
	assert.ErrorIs(t, err, items.ErrMalformedDefinition)
}

func TestYAMLRejectsFractionalColliderLikeJSON(t *testing.T) {
	dir := t.TempDir()
	record := `{"id": "crate", "type": "equipped_item", "sprite": {"texture_id": "crate"}, "collider_size": [20.0, 5]}`

	_, err := Load(writeTemp(t, dir, "items.json", "["+record+"]"))
	assert.ErrorIs(t, err, items.ErrMalformedDefinition)

	_, err = Load(writeTemp(t, dir, "items.yaml", "- "+record+"\n"))
	assert.ErrorIs(t, err, items.ErrMalformedDefinition)
}

func TestSkipMalformed(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "items.json", `[
		{"id": "x", "collider_size": [-1, 5]},
		{"id": "ok", "type": "weapon", "sprite": {"texture_id": "t"}, "collider_size": [1, 1]},
		{"id": "y", "type": "spell", "sprite": {"texture_id": "t"}, "collider_size": [1, 1]}
	]`)
	core, logs := observer.New(zapcore.WarnLevel)

	c, err := Load(path, WithSkipMalformed(log.FromZap(zap.New(core), log.LevelWarn)))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, c.IDs())
	assert.ErrorIs(t, c.Rejected(), items.ErrMalformedDefinition)
	assert.Equal(t, 2, logs.FilterMessage("skipping malformed item definition").Len())
}

func TestDuplicateIDs(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "items.json", `[
		{"id": "a", "type": "weapon", "sprite": {"texture_id": "t"}, "collider_size": [1, 1]},
		{"id": "a", "type": "weapon", "sprite": {"texture_id": "t"}, "collider_size": [2, 2]}
	]`)
	_, err := Load(path, WithSkipMalformed(nil))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestStrictOption(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "items.json", `[
		{"id": "a", "type": "weapon", "glow": true, "sprite": {"texture_id": "t"}, "collider_size": [1, 1]}
	]`)
	_, err := Load(path)
	require.NoError(t, err)
	_, err = Load(path, WithStrict())
	assert.ErrorIs(t, err, items.ErrMalformedDefinition)
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(writeTemp(t, dir, "items.json", `{"id": "not a list"}`))
	assert.ErrorIs(t, err, ErrMalformedFile)
	_, err = Load(writeTemp(t, dir, "items.toml", ``))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveAndLoadCompressed(t *testing.T) {
	dir := t.TempDir()
	src, err := Load(writeTemp(t, dir, "items.json", jsonCatalog))
	require.NoError(t, err)

	for _, name := range []string{"packed.json.zst", "packed.yaml.zst", "plain.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, src.Save(path), name)

		got, err := Load(path, WithStrict())
		require.NoError(t, err, name)
		assert.Equal(t, src.IDs(), got.IDs(), name)
		for _, id := range src.IDs() {
			want, _ := src.Get(id)
			have, _ := got.Get(id)
			assert.Equal(t, want, have, name)
		}
	}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a, err := Load(writeTemp(t, dir, "a.json", jsonCatalog))
	require.NoError(t, err)
	b, err := Load(writeTemp(t, dir, "b.json", `[
		{"id": "helmet", "type": "equipped_item", "slot": "head", "sprite": {"texture_id": "helmet"}, "collider_size": {"x": 16, "y": 12}, "ignored": 1},
		{"collider_size": [20, 20], "is_network_ready": true, "sprite": {"texture_id": "grenade"}, "cooldown": 1, "type": "weapon", "id": "grenade01"}
	]`))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	p, _ := b.Get("helmet")
	p.ID = "helmet2"
	require.NoError(t, b.Add(p))
	fc, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.json", jsonCatalog)
	writeTemp(t, dir, "b.yaml", yamlCatalog)
	writeTemp(t, dir, "README.md", "not a catalog")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	c, err := LoadDir(context.Background(), dir, WithParallelism(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"boots", "grenade01", "helmet", "sword"}, c.IDs())
}

func TestLoadDirDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.json", jsonCatalog)
	writeTemp(t, dir, "b.json", jsonCatalog)

	_, err := LoadDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.json", jsonCatalog)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
