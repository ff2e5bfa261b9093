package items

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/core/systems/physics"
)

// ItemParams is the declarative description of an item, one record of a level
// catalog. The variant fields of Kind are flattened into the record next to the
// shared fields and selected by the `type` field.
type ItemParams struct {
	ID             string
	Kind           ItemKind
	Sprite         render.SpriteParams
	ColliderSize   physics.UVec2
	IsNetworkReady bool
}

// Clone returns a deep copy of p.
func (p ItemParams) Clone() ItemParams {
	if p.Kind != nil {
		p.Kind = p.Kind.Clone()
	}
	p.Sprite = p.Sprite.Clone()
	return p
}

type decodeOptions struct {
	strict bool
}

type DecodeOption func(*decodeOptions)

// Strict validates records against the item schema before decoding. Unknown
// keys, including fields of the other variant, are rejected.
func Strict() DecodeOption {
	return func(o *decodeOptions) { o.strict = true }
}

// ParseParams decodes one JSON item record. Unknown keys are ignored unless
// Strict is given. Every failure wraps ErrMalformedDefinition.
func ParseParams(data []byte, opts ...DecodeOption) (ItemParams, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.strict {
		if err := validateStrict(data); err != nil {
			return ItemParams{}, err
		}
	}
	return decodeParams(data)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDefinition, fmt.Sprintf(format, args...))
}

func decodeParams(data []byte) (ItemParams, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ItemParams{}, malformed("record is not an object: %v", err)
	}
	if fields == nil {
		return ItemParams{}, malformed("record is null")
	}

	var (
		p   ItemParams
		tag string
	)
	if err := requireField(fields, "type", &tag); err != nil {
		return ItemParams{}, err
	}
	if err := requireField(fields, "id", &p.ID); err != nil {
		return ItemParams{}, err
	}
	if p.ID == "" {
		return ItemParams{}, malformed("id is empty")
	}
	if err := requireField(fields, "sprite", &p.Sprite); err != nil {
		return ItemParams{}, err
	}
	if err := p.Sprite.Validate(); err != nil {
		return ItemParams{}, fmt.Errorf("%w: item %q: sprite: %w", ErrMalformedDefinition, p.ID, err)
	}
	if err := requireField(fields, "collider_size", &p.ColliderSize); err != nil {
		return ItemParams{}, fmt.Errorf("item %q: %w", p.ID, err)
	}
	if raw, ok := fields["is_network_ready"]; ok {
		if err := json.Unmarshal(raw, &p.IsNetworkReady); err != nil {
			return ItemParams{}, malformed("item %q: is_network_ready: %v", p.ID, err)
		}
	}

	kind, err := decodeKind(tag, data)
	if err != nil {
		return ItemParams{}, fmt.Errorf("item %q: %w", p.ID, err)
	}
	p.Kind = kind
	return p, nil
}

func requireField(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return malformed("missing %s", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if errors.Is(err, physics.ErrInvalidUVec2) {
			return fmt.Errorf("%w: %s: %w", ErrMalformedDefinition, key, err)
		}
		return malformed("%s: %v", key, err)
	}
	return nil
}

// decodeKind reads the variant fields of the flat record selected by tag.
func decodeKind(tag string, data []byte) (ItemKind, error) {
	var kind ItemKind
	switch tag {
	case TagWeapon:
		var params WeaponParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, malformed("weapon fields: %v", err)
		}
		kind = WeaponKind{Params: params}
	case TagEquippedItem:
		var params EquippedItemParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, malformed("equipped item fields: %v", err)
		}
		kind = EquippedItemKind{Params: params}
	default:
		return nil, malformed("unknown type %q", tag)
	}
	if err := kind.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
	}
	return kind, nil
}

func (p *ItemParams) UnmarshalJSON(data []byte) error {
	decoded, err := decodeParams(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalJSON re-flattens the variant fields into the record.
func (p ItemParams) MarshalJSON() ([]byte, error) {
	if p.Kind == nil {
		return nil, fmt.Errorf("item %q: no kind", p.ID)
	}
	var variant any
	switch k := p.Kind.(type) {
	case WeaponKind:
		variant = k.Params
	case EquippedItemKind:
		variant = k.Params
	default:
		return nil, fmt.Errorf("item %q: unsupported kind %T", p.ID, p.Kind)
	}

	raw, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	record := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	shared := map[string]any{
		"type":             p.Kind.Tag(),
		"id":               p.ID,
		"sprite":           p.Sprite,
		"collider_size":    p.ColliderSize,
		"is_network_ready": p.IsNetworkReady,
	}
	for key, value := range shared {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("item %q: %s: %w", p.ID, key, err)
		}
		record[key] = encoded
	}
	return json.Marshal(record)
}

// UnmarshalYAML decodes a YAML mapping with the same rules as the JSON form.
func (p *ItemParams) UnmarshalYAML(node *yaml.Node) error {
	data, err := YAMLToJSON(node)
	if err != nil {
		return malformed("%v", err)
	}
	return p.UnmarshalJSON(data)
}

func (p ItemParams) MarshalYAML() (any, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
