package domain

// Typed accessors over World.Get. They keep the call sites in the systems
// free of type assertions.

func (w *World) PositionOf(id EntityID) (*Position, bool) {
	c, ok := w.Get(id, KindPosition)
	if !ok {
		return nil, false
	}
	return c.(*Position), true
}

func (w *World) VisionOf(id EntityID) (*Vision, bool) {
	c, ok := w.Get(id, KindVision)
	if !ok {
		return nil, false
	}
	return c.(*Vision), true
}

func (w *World) BlockerOf(id EntityID) (*Blocker, bool) {
	c, ok := w.Get(id, KindBlocker)
	if !ok {
		return nil, false
	}
	return c.(*Blocker), true
}

func (w *World) HealthOf(id EntityID) (*Health, bool) {
	c, ok := w.Get(id, KindHealth)
	if !ok {
		return nil, false
	}
	return c.(*Health), true
}

func (w *World) StatsOf(id EntityID) (*Stats, bool) {
	c, ok := w.Get(id, KindStats)
	if !ok {
		return nil, false
	}
	return c.(*Stats), true
}

func (w *World) ArmorOf(id EntityID) (*Armor, bool) {
	c, ok := w.Get(id, KindArmor)
	if !ok {
		return nil, false
	}
	return c.(*Armor), true
}

func (w *World) WeaponOf(id EntityID) (*Weapon, bool) {
	c, ok := w.Get(id, KindWeapon)
	if !ok {
		return nil, false
	}
	return c.(*Weapon), true
}

func (w *World) InventoryOf(id EntityID) (*Inventory, bool) {
	c, ok := w.Get(id, KindInventory)
	if !ok {
		return nil, false
	}
	return c.(*Inventory), true
}

func (w *World) EquipmentOf(id EntityID) (*Equipment, bool) {
	c, ok := w.Get(id, KindEquipment)
	if !ok {
		return nil, false
	}
	return c.(*Equipment), true
}

func (w *World) SpellbookOf(id EntityID) (*Spellbook, bool) {
	c, ok := w.Get(id, KindSpellbook)
	if !ok {
		return nil, false
	}
	return c.(*Spellbook), true
}

func (w *World) AIOf(id EntityID) (*AI, bool) {
	c, ok := w.Get(id, KindAI)
	if !ok {
		return nil, false
	}
	return c.(*AI), true
}

func (w *World) InteractableOf(id EntityID) (*Interactable, bool) {
	c, ok := w.Get(id, KindInteractable)
	if !ok {
		return nil, false
	}
	return c.(*Interactable), true
}

func (w *World) DescriptorOf(id EntityID) (*Descriptor, bool) {
	c, ok := w.Get(id, KindDescriptor)
	if !ok {
		return nil, false
	}
	return c.(*Descriptor), true
}

func (w *World) VisibleOf(id EntityID) (*Visible, bool) {
	c, ok := w.Get(id, KindVisible)
	if !ok {
		return nil, false
	}
	return c.(*Visible), true
}

// NameOf returns the descriptor name or a generic fallback for logging and
// player-facing messages.
func (w *World) NameOf(id EntityID) string {
	if d, ok := w.DescriptorOf(id); ok {
		return d.Name
	}
	return "something"
}
