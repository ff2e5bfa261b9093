package items

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

const grenadeRecord = `{
	"id": "grenade01",
	"type": "weapon",
	"cooldown": 1.5,
	"attack_duration": 0.25,
	"recoil": 120,
	"uses": 3,
	"sound_effect": "explode",
	"mount_offset": [4, -2],
	"animation": {"texture_id": "grenade_throw", "attack_frames": 4, "fps": 12},
	"sprite": {"texture_id": "grenade", "size": [20, 20]},
	"collider_size": [20, 20],
	"is_network_ready": true
}`

const helmetRecord = `{
	"id": "helmet",
	"type": "equipped_item",
	"duration": 30,
	"slot": "head",
	"effects": ["armor"],
	"sprite": {"texture_id": "helmet"},
	"collider_size": {"x": 16, "y": 12}
}`

func TestParseWeapon(t *testing.T) {
	p, err := ParseParams([]byte(grenadeRecord))
	require.NoError(t, err)

	assert.Equal(t, "grenade01", p.ID)
	assert.Equal(t, physics.UVec2{X: 20, Y: 20}, p.ColliderSize)
	assert.True(t, p.IsNetworkReady)
	assert.Equal(t, "grenade", p.Sprite.TextureID)
	require.True(t, IsWeapon(p.Kind))

	w := p.Kind.(WeaponKind).Params
	assert.Equal(t, 1.5, w.Cooldown)
	assert.Equal(t, 0.25, w.AttackDuration)
	assert.Equal(t, 120.0, w.Recoil)
	require.NotNil(t, w.Uses)
	assert.Equal(t, uint32(3), *w.Uses)
	assert.Equal(t, "explode", w.SoundEffect)
	assert.Equal(t, physics.Vec2{X: 4, Y: -2}, w.MountOffset)
	assert.Equal(t, &WeaponAnimationParams{TextureID: "grenade_throw", AttackFrames: 4, FPS: 12}, w.Animation)
}

func TestParseEquippedItem(t *testing.T) {
	p, err := ParseParams([]byte(helmetRecord))
	require.NoError(t, err)

	assert.False(t, IsWeapon(p.Kind))
	assert.Equal(t, TagEquippedItem, p.Kind.Tag())
	assert.False(t, p.IsNetworkReady)
	assert.Equal(t, physics.UVec2{X: 16, Y: 12}, p.ColliderSize)

	e := p.Kind.(EquippedItemKind).Params
	assert.Equal(t, 30.0, e.Duration)
	assert.Equal(t, "head", e.Slot)
	assert.Equal(t, []string{"armor"}, e.Effects)
	assert.Nil(t, e.Uses)
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"not an object":      `[1, 2]`,
		"null":               `null`,
		"missing type":       `{"id":"x","sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"unknown type":       `{"id":"x","type":"shield","sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"type not a string":  `{"id":"x","type":3,"sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"missing id":         `{"type":"weapon","sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"empty id":           `{"id":"","type":"weapon","sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"missing sprite":     `{"id":"x","type":"weapon","collider_size":[1,1]}`,
		"missing texture":    `{"id":"x","type":"weapon","sprite":{},"collider_size":[1,1]}`,
		"missing collider":   `{"id":"x","type":"weapon","sprite":{"texture_id":"t"}}`,
		"negative collider":  `{"id":"x","type":"weapon","sprite":{"texture_id":"t"},"collider_size":[-1,5]}`,
		"fraction collider":  `{"id":"x","type":"weapon","sprite":{"texture_id":"t"},"collider_size":[1.5,5]}`,
		"string collider":    `{"id":"x","type":"weapon","sprite":{"texture_id":"t"},"collider_size":["1",5]}`,
		"short collider":     `{"id":"x","type":"weapon","sprite":{"texture_id":"t"},"collider_size":[1]}`,
		"bad network flag":   `{"id":"x","type":"weapon","sprite":{"texture_id":"t"},"collider_size":[1,1],"is_network_ready":"yes"}`,
		"negative uses":      `{"id":"x","type":"weapon","uses":-1,"sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"negative cooldown":  `{"id":"x","type":"weapon","cooldown":-1,"sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"bad effects":        `{"id":"x","type":"equipped_item","effects":"armor","sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"negative duration":  `{"id":"x","type":"equipped_item","duration":-2,"sprite":{"texture_id":"t"},"collider_size":[1,1]}`,
		"no kind, bad width": `{"id":"x","collider_size":[-1,5]}`,
	}
	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := ParseParams([]byte(record))
			assert.ErrorIs(t, err, ErrMalformedDefinition)
			assert.Equal(t, ItemParams{}, p)
		})
	}
}

func TestUnmarshalLeavesTargetOnError(t *testing.T) {
	p := ItemParams{ID: "keep"}
	err := json.Unmarshal([]byte(`{"id":"x"}`), &p)
	assert.ErrorIs(t, err, ErrMalformedDefinition)
	assert.Equal(t, "keep", p.ID)
}

func TestUnknownKeysIgnored(t *testing.T) {
	record := `{"id":"x","type":"weapon","future_field":{"a":1},"duration":5,"sprite":{"texture_id":"t","glow":true},"collider_size":[1,2]}`
	p, err := ParseParams([]byte(record))
	require.NoError(t, err)
	assert.Equal(t, "x", p.ID)
	assert.True(t, IsWeapon(p.Kind))
}

func TestStrictRejectsUnknownKeys(t *testing.T) {
	cases := []string{
		`{"id":"x","type":"weapon","future_field":1,"sprite":{"texture_id":"t"},"collider_size":[1,2]}`,
		`{"id":"x","type":"weapon","duration":5,"sprite":{"texture_id":"t"},"collider_size":[1,2]}`,
		`{"id":"x","type":"equipped_item","cooldown":1,"sprite":{"texture_id":"t"},"collider_size":[1,2]}`,
		`{"id":"x","type":"weapon","sprite":{"texture_id":"t","glow":true},"collider_size":[1,2]}`,
	}
	for _, record := range cases {
		_, err := ParseParams([]byte(record), Strict())
		assert.ErrorIs(t, err, ErrMalformedDefinition, record)
	}
}

func TestStrictAcceptsValidRecords(t *testing.T) {
	for _, record := range []string{grenadeRecord, helmetRecord} {
		_, err := ParseParams([]byte(record), Strict())
		assert.NoError(t, err)
	}
	_, err := ParseParams([]byte(`{"id":"x","collider_size":[-1,5]}`), Strict())
	assert.ErrorIs(t, err, ErrMalformedDefinition)
}

func TestNetworkReadyRoundTrip(t *testing.T) {
	for _, ready := range []bool{true, false} {
		p := ItemParams{
			ID:             "x",
			Kind:           EquippedItemKind{},
			ColliderSize:   physics.UVec2{X: 1, Y: 1},
			IsNetworkReady: ready,
		}
		p.Sprite.TextureID = "t"

		data, err := json.Marshal(p)
		require.NoError(t, err)
		got, err := ParseParams(data)
		require.NoError(t, err)
		assert.Equal(t, ready, got.IsNetworkReady)
	}
}

func TestEncodeFlattensAndRoundTrips(t *testing.T) {
	for _, record := range []string{grenadeRecord, helmetRecord} {
		p, err := ParseParams([]byte(record))
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var flat map[string]any
		require.NoError(t, json.Unmarshal(data, &flat))
		assert.Equal(t, p.Kind.Tag(), flat["type"])
		assert.NotContains(t, flat, "params")
		assert.NotContains(t, flat, "Kind")

		again, err := ParseParams(data, Strict())
		require.NoError(t, err)
		assert.Equal(t, p, again)
	}
}

func TestMarshalWithoutKindFails(t *testing.T) {
	_, err := json.Marshal(ItemParams{ID: "x"})
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	doc := `
id: helmet
type: equipped_item
slot: head
sprite:
  texture_id: helmet
  offset: [1, 2]
collider_size: [16, 12]
is_network_ready: true
`
	var p ItemParams
	require.NoError(t, yaml.Unmarshal([]byte(doc), &p))
	assert.Equal(t, "helmet", p.ID)
	assert.Equal(t, "head", p.Kind.(EquippedItemKind).Params.Slot)
	assert.Equal(t, physics.Vec2{X: 1, Y: 2}, p.Sprite.Offset)
	assert.True(t, p.IsNetworkReady)

	out, err := yaml.Marshal(p)
	require.NoError(t, err)
	var again ItemParams
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, p, again)

	err = yaml.Unmarshal([]byte("id: x\ncollider_size: [-1, 5]\n"), &again)
	assert.ErrorIs(t, err, ErrMalformedDefinition)
}

func TestCloneDoesNotAlias(t *testing.T) {
	p, err := ParseParams([]byte(grenadeRecord))
	require.NoError(t, err)
	c := p.Clone()

	*c.Kind.(WeaponKind).Params.Uses = 99
	c.Kind.(WeaponKind).Params.Animation.FPS = 1
	assert.Equal(t, uint32(3), *p.Kind.(WeaponKind).Params.Uses)
	assert.Equal(t, 12.0, p.Kind.(WeaponKind).Params.Animation.FPS)
}
