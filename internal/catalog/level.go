package catalog

import (
	"errors"
	"fmt"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

// Placement puts one catalog item into a level.
type Placement struct {
	ID       string       `json:"id" yaml:"id"`
	Position physics.Vec2 `json:"position" yaml:"position"`
}

// Level is the layout of a map: static solids, jump pads and item spawns.
type Level struct {
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Solids     []physics.Rect `json:"solids,omitempty" yaml:"solids,omitempty"`
	Sproingers []physics.Vec2 `json:"sproingers,omitempty" yaml:"sproingers,omitempty"`
	Items      []Placement    `json:"items" yaml:"items"`
}

func (l Level) Validate() error {
	var errs []error
	for i, p := range l.Items {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("item placement %d: missing id", i))
		}
	}
	return errors.Join(errs...)
}

// Missing returns the placed ids the catalog does not define.
func (l Level) Missing(c *Catalog) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range l.Items {
		if _, ok := c.defs[p.ID]; ok || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.ID)
	}
	return out
}

// LoadLevel reads a level file in any catalog file format.
func LoadLevel(path string) (Level, error) {
	var l Level
	if _, err := readFile(path, &l); err != nil {
		return Level{}, err
	}
	if err := l.Validate(); err != nil {
		return Level{}, fmt.Errorf("%w: %s: %w", ErrMalformedFile, path, err)
	}
	return l, nil
}

func SaveLevel(path string, l Level) error {
	return writeFile(path, l)
}
