package physics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Vec2 is a 2D float vector in world units.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) String() string       { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

func (v Vec2) MarshalJSON() ([]byte, error) { return json.Marshal([2]float64{v.X, v.Y}) }

func (v *Vec2) UnmarshalJSON(data []byte) error {
	x, y, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVec2, err)
	}
	fx, errX := x.Float64()
	fy, errY := y.Float64()
	if errX != nil || errY != nil {
		return fmt.Errorf("%w: components must be numbers", ErrInvalidVec2)
	}
	*v = Vec2{fx, fy}
	return nil
}

func (v Vec2) MarshalYAML() (any, error) { return []float64{v.X, v.Y}, nil }

func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalYAMLViaJSON(node, v)
}

// UVec2 is an unsigned integer 2D vector, used for collision footprints.
type UVec2 struct{ X, Y uint32 }

func (u UVec2) AsVec2() Vec2 { return Vec2{float64(u.X), float64(u.Y)} }

func (u UVec2) MarshalJSON() ([]byte, error) { return json.Marshal([2]uint32{u.X, u.Y}) }

// UnmarshalJSON accepts [x, y] or {"x": x, "y": y}. Components must be integer
// literals in the uint32 range.
func (u *UVec2) UnmarshalJSON(data []byte) error {
	x, y, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUVec2, err)
	}
	ux, err := parseUint32(x)
	if err != nil {
		return fmt.Errorf("%w: x: %v", ErrInvalidUVec2, err)
	}
	uy, err := parseUint32(y)
	if err != nil {
		return fmt.Errorf("%w: y: %v", ErrInvalidUVec2, err)
	}
	*u = UVec2{ux, uy}
	return nil
}

func (u UVec2) MarshalYAML() (any, error) { return []uint32{u.X, u.Y}, nil }

func (u *UVec2) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalYAMLViaJSON(node, u)
}

func parseUint32(n json.Number) (uint32, error) {
	v, err := strconv.ParseUint(n.String(), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a non-negative integer", n.String())
	}
	return uint32(v), nil
}

func decodePair(data []byte) (json.Number, json.Number, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty value")
	}
	var x, y json.RawMessage
	switch data[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err != nil {
			return "", "", err
		}
		if len(arr) != 2 {
			return "", "", fmt.Errorf("want 2 components, got %d", len(arr))
		}
		x, y = arr[0], arr[1]
	case '{':
		var obj struct {
			X json.RawMessage `json:"x"`
			Y json.RawMessage `json:"y"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return "", "", err
		}
		if obj.X == nil || obj.Y == nil {
			return "", "", fmt.Errorf("missing x or y")
		}
		x, y = obj.X, obj.Y
	default:
		return "", "", fmt.Errorf("want [x, y] or {x, y}")
	}

	nx, err := toNumber(x)
	if err != nil {
		return "", "", err
	}
	ny, err := toNumber(y)
	if err != nil {
		return "", "", err
	}
	return nx, ny, nil
}

func toNumber(raw json.RawMessage) (json.Number, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("%s is not a number", bytes.TrimSpace(raw))
	}
	return n, nil
}

func unmarshalYAMLViaJSON(node *yaml.Node, target json.Unmarshaler) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return target.UnmarshalJSON(data)
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct{ X, Y, W, H float64 }

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Position() Vec2  { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2      { return Vec2{r.W, r.H} }

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// Overlaps reports strict intersection; rectangles that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r Rect) MarshalJSON() ([]byte, error) { return json.Marshal([4]float64{r.X, r.Y, r.W, r.H}) }

// UnmarshalJSON accepts [x, y, w, h] with non-negative, finite width and height.
func (r *Rect) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("rect: %w", err)
	}
	if len(arr) != 4 {
		return fmt.Errorf("rect: want [x, y, w, h], got %d components", len(arr))
	}
	if arr[2] < 0 || arr[3] < 0 || math.IsInf(arr[2], 0) || math.IsInf(arr[3], 0) {
		return fmt.Errorf("rect: invalid size %gx%g", arr[2], arr[3])
	}
	*r = Rect{arr[0], arr[1], arr[2], arr[3]}
	return nil
}

func (r Rect) MarshalYAML() (any, error) { return []float64{r.X, r.Y, r.W, r.H}, nil }

func (r *Rect) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalYAMLViaJSON(node, r)
}
