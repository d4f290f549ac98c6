package content

import (
	"fmt"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SpawnPlayer creates the player entity. Player composition is fixed rather
// than data-driven.
func SpawnPlayer(w *domain.World, x, y int) domain.EntityID {
	id := w.CreateEntity()

	w.Add(id, &domain.Position{X: x, Y: y})
	w.Add(id, &domain.Health{HP: 100, MaxHP: 100})
	w.Add(id, &domain.Stats{
		Strength:   12,
		Agility:    14,
		Intellect:  10,
		Accuracy:   5,
		Evasion:    3,
		CritChance: 10.0,
		CritMult:   2.0,
	})
	w.Add(id, &domain.Vision{Radius: domain.DefaultVisionRadius})
	w.Add(id, &domain.Inventory{Capacity: 20})
	w.Add(id, &domain.Equipment{Slots: make(map[string]domain.EntityID)})
	w.Add(id, &domain.Spellbook{Known: []string{"firebolt"}, MP: 10, MaxMP: 10})
	w.Add(id, &domain.Blocker{BlocksMovement: true})
	w.Add(id, &domain.Descriptor{Name: "Hero", Glyph: "@", Color: "#3b82f6"})
	w.Add(id, domain.NewVisible())

	logger.Log.WithFields(logrus.Fields{
		"component": "content",
		"entity_id": id,
		"x":         x,
		"y":         y,
	}).Debug("Player spawned.")

	return id
}

// SpawnMonster creates a monster entity from the catalog. Every monster
// blocks movement and sees 4 tiles regardless of its record.
func (c *Catalog) SpawnMonster(w *domain.World, monsterID string, x, y int) (domain.EntityID, error) {
	rec, ok := c.Monsters[monsterID]
	if !ok {
		return 0, fmt.Errorf("content: unknown monster %q", monsterID)
	}

	id := w.CreateEntity()
	w.Add(id, &domain.Position{X: x, Y: y})
	w.Add(id, &domain.Blocker{BlocksMovement: true})
	w.Add(id, &domain.Vision{Radius: 4})
	w.Add(id, &domain.Descriptor{Name: rec.Name, Glyph: rec.Glyph, Color: rec.Color})

	comps, err := decodeComponents(rec)
	if err != nil {
		w.DestroyEntity(id)
		return 0, err
	}
	for _, comp := range comps {
		w.Add(id, comp)
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "content",
		"entity_id":  id,
		"monster_id": monsterID,
		"x":          x,
		"y":          y,
	}).Debug("Monster spawned.")

	return id, nil
}

// SpawnItem creates a pickupable item entity from the catalog. Items never
// block movement.
func (c *Catalog) SpawnItem(w *domain.World, itemID string, x, y int) (domain.EntityID, error) {
	rec, ok := c.Items[itemID]
	if !ok {
		return 0, fmt.Errorf("content: unknown item %q", itemID)
	}

	id := w.CreateEntity()
	w.Add(id, &domain.Position{X: x, Y: y})
	w.Add(id, &domain.Blocker{BlocksMovement: false})
	w.Add(id, &domain.Descriptor{Name: rec.Name, Glyph: rec.Glyph, Color: rec.Color})
	w.Add(id, &domain.Interactable{Kind: domain.InteractableItem})

	comps, err := decodeComponents(rec)
	if err != nil {
		w.DestroyEntity(id)
		return 0, err
	}
	for _, comp := range comps {
		w.Add(id, comp)
	}

	return id, nil
}
