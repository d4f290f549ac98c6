package systems

import (
	"fmt"

	"github.com/ESikich/TopDownRPG/internal/domain"
)

// InventorySystem picks up items under entities that just finished a move.
// Picked items lose their Position and exist only inside the inventory.
type InventorySystem struct {
	world *domain.World
}

func NewInventorySystem(w *domain.World) *InventorySystem {
	return &InventorySystem{world: w}
}

func (s *InventorySystem) Consumes(k domain.EventKind) bool {
	return k == domain.EvMoveResolved
}

func (s *InventorySystem) Process(events []domain.Event) {
	for _, ev := range events {
		if mv, ok := ev.(domain.MoveResolved); ok {
			s.pickupAt(mv.EID, mv.To)
		}
	}
}

func (s *InventorySystem) pickupAt(eid domain.EntityID, at domain.Point) {
	inv, ok := s.world.InventoryOf(eid)
	if !ok {
		return
	}

	for _, itemID := range s.world.EntitiesAt(at.X, at.Y, domain.KindInteractable) {
		if itemID == eid {
			continue
		}
		it, _ := s.world.InteractableOf(itemID)
		if it.Kind != domain.InteractableItem {
			continue
		}

		if len(inv.Items) >= inv.Capacity {
			s.world.Post(domain.Msg("Inventory full!"))
			return
		}

		inv.Items = append(inv.Items, itemID)
		s.world.Remove(itemID, domain.KindPosition)

		s.world.Post(domain.ItemPicked{EID: eid, ItemID: itemID})
		s.world.Post(domain.Msg(fmt.Sprintf("Picked up %s", s.world.NameOf(itemID))))
	}
}

// Equip moves an already-carried item into the named slot, displacing any
// previous occupant back into the bag. The item must be in the inventory
// and carry the component the slot calls for: a Weapon for the weapon slot,
// an Armor for the armor slot. Any other slot name is rejected.
func Equip(w *domain.World, eid domain.EntityID, slot string, itemID domain.EntityID) error {
	inv, ok := w.InventoryOf(eid)
	if !ok {
		return fmt.Errorf("systems: entity %v has no inventory", eid)
	}
	eq, ok := w.EquipmentOf(eid)
	if !ok {
		return fmt.Errorf("systems: entity %v has no equipment slots", eid)
	}

	carried := false
	for _, id := range inv.Items {
		if id == itemID {
			carried = true
			break
		}
	}
	if !carried {
		return fmt.Errorf("systems: item %v is not in the inventory of %v", itemID, eid)
	}

	switch slot {
	case domain.SlotWeapon:
		if _, ok := w.WeaponOf(itemID); !ok {
			return fmt.Errorf("systems: %s is not a weapon", w.NameOf(itemID))
		}
	case domain.SlotArmor:
		if _, ok := w.ArmorOf(itemID); !ok {
			return fmt.Errorf("systems: %s is not armor", w.NameOf(itemID))
		}
	default:
		return fmt.Errorf("systems: unknown equipment slot %q", slot)
	}

	eq.Slots[slot] = itemID
	w.Post(domain.ItemEquipped{EID: eid, Slot: slot, ItemID: itemID})
	w.Post(domain.Msg(fmt.Sprintf("Equipped %s", w.NameOf(itemID))))
	return nil
}
