package domain

import "fmt"

// EntityID identifies one game object for the lifetime of a simulation run.
// IDs are allocated monotonically by the World and never reused.
type EntityID uint64

func (id EntityID) String() string {
	return fmt.Sprintf("e%d", uint64(id))
}

// ComponentKind enumerates the closed set of component types. Content
// records refer to these by name; anything outside this set is a
// configuration error, not a silent skip.
type ComponentKind uint8

const (
	KindPosition ComponentKind = iota
	KindVision
	KindBlocker
	KindHealth
	KindStats
	KindArmor
	KindWeapon
	KindInventory
	KindEquipment
	KindSpellbook
	KindStatus
	KindAI
	KindInteractable
	KindDescriptor
	KindVisible

	componentKindCount
)

// KindOf maps a component value to its kind. Passing anything outside the
// closed component set is a programming error.
func KindOf(c any) ComponentKind {
	switch c.(type) {
	case *Position:
		return KindPosition
	case *Vision:
		return KindVision
	case *Blocker:
		return KindBlocker
	case *Health:
		return KindHealth
	case *Stats:
		return KindStats
	case *Armor:
		return KindArmor
	case *Weapon:
		return KindWeapon
	case *Inventory:
		return KindInventory
	case *Equipment:
		return KindEquipment
	case *Spellbook:
		return KindSpellbook
	case *Status:
		return KindStatus
	case *AI:
		return KindAI
	case *Interactable:
		return KindInteractable
	case *Descriptor:
		return KindDescriptor
	case *Visible:
		return KindVisible
	default:
		panic(fmt.Sprintf("domain: unknown component type %T", c))
	}
}
