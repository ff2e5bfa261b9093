package items

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zeusync/arena/internal/core/systems/physics"
)

// Discriminant values of the `type` field.
const (
	TagWeapon       = "weapon"
	TagEquippedItem = "equipped_item"
)

// ItemKind is the behavioral variant of an item: WeaponKind or EquippedItemKind.
type ItemKind interface {
	Tag() string
	Clone() ItemKind
	validate() error
}

type WeaponKind struct {
	Params WeaponParams
}

type EquippedItemKind struct {
	Params EquippedItemParams
}

func (WeaponKind) Tag() string       { return TagWeapon }
func (EquippedItemKind) Tag() string { return TagEquippedItem }

func (k WeaponKind) Clone() ItemKind       { return WeaponKind{Params: k.Params.Clone()} }
func (k EquippedItemKind) Clone() ItemKind { return EquippedItemKind{Params: k.Params.Clone()} }

func (k WeaponKind) validate() error       { return k.Params.Validate() }
func (k EquippedItemKind) validate() error { return k.Params.Validate() }

// IsWeapon reports whether kind is the weapon variant.
func IsWeapon(kind ItemKind) bool {
	_, ok := kind.(WeaponKind)
	return ok
}

type WeaponAnimationParams struct {
	TextureID    string  `json:"texture_id"`
	AttackFrames uint32  `json:"attack_frames,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
}

// WeaponParams are the weapon-specific fields of an item record. Durations are
// in seconds.
type WeaponParams struct {
	Cooldown       float64 `json:"cooldown,omitempty"`
	AttackDuration float64 `json:"attack_duration,omitempty"`
	Recoil         float64 `json:"recoil,omitempty"`
	// Uses limits how many times the weapon can be used; nil is unlimited.
	Uses        *uint32                `json:"uses,omitempty"`
	SoundEffect string                 `json:"sound_effect,omitempty"`
	MountOffset physics.Vec2           `json:"mount_offset,omitzero"`
	Animation   *WeaponAnimationParams `json:"animation,omitempty"`
}

func (p WeaponParams) Validate() error {
	if p.Cooldown < 0 || p.AttackDuration < 0 {
		return fmt.Errorf("weapon timings must not be negative (cooldown %g, attack_duration %g)", p.Cooldown, p.AttackDuration)
	}
	if p.Animation != nil && p.Animation.TextureID == "" {
		return errors.New("weapon animation: missing texture_id")
	}
	return nil
}

func (p WeaponParams) Clone() WeaponParams {
	if p.Uses != nil {
		uses := *p.Uses
		p.Uses = &uses
	}
	if p.Animation != nil {
		anim := *p.Animation
		p.Animation = &anim
	}
	return p
}

// EquippedItemParams are the fields of an item that is worn rather than fired.
type EquippedItemParams struct {
	// Duration in seconds the item stays equipped; zero is until dropped.
	Duration    float64      `json:"duration,omitempty"`
	Uses        *uint32      `json:"uses,omitempty"`
	Slot        string       `json:"slot,omitempty"`
	Effects     []string     `json:"effects,omitempty"`
	MountOffset physics.Vec2 `json:"mount_offset,omitzero"`
}

func (p EquippedItemParams) Validate() error {
	if p.Duration < 0 {
		return fmt.Errorf("equipped item duration %g is negative", p.Duration)
	}
	return nil
}

func (p EquippedItemParams) Clone() EquippedItemParams {
	if p.Uses != nil {
		uses := *p.Uses
		p.Uses = &uses
	}
	p.Effects = slices.Clone(p.Effects)
	return p
}
