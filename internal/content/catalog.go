// Package content loads monster, item and spell definitions from JSON and
// spawns them into a world. Definitions carry components by name; the name
// set is closed and a record naming an unknown component fails validation
// instead of being skipped.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ESikich/TopDownRPG/internal/domain"
)

//go:embed data/default.json
var defaultCatalogJSON []byte

// Record is one spawnable definition. Components maps component names to
// their raw JSON payloads, decoded at spawn time.
type Record struct {
	Name       string                     `json:"name"`
	Glyph      string                     `json:"glyph"`
	Color      string                     `json:"color"`
	Components map[string]json.RawMessage `json:"components"`
}

// Spell is a castable definition. TargetType is "enemy" or "self".
type Spell struct {
	Name       string `json:"name"`
	MPCost     int    `json:"mp_cost"`
	DamageDice string `json:"damage_dice"`
	DamageType string `json:"damage_type"`
	TargetType string `json:"target_type"`
	Range      int    `json:"range"`
}

// Catalog is the full content set for one game.
type Catalog struct {
	Monsters map[string]Record `json:"monsters"`
	Items    map[string]Record `json:"items"`
	Spells   map[string]Spell  `json:"spells"`
}

// componentDecoders is the closed set of component names a record may carry.
var componentDecoders = map[string]func(json.RawMessage) (any, error){
	"CHealth": func(raw json.RawMessage) (any, error) {
		c := &domain.Health{}
		return c, json.Unmarshal(raw, c)
	},
	"CStats": func(raw json.RawMessage) (any, error) {
		c := &domain.Stats{}
		return c, json.Unmarshal(raw, c)
	},
	"CWeapon": func(raw json.RawMessage) (any, error) {
		c := &domain.Weapon{}
		return c, json.Unmarshal(raw, c)
	},
	"CArmor": func(raw json.RawMessage) (any, error) {
		c := &domain.Armor{}
		return c, json.Unmarshal(raw, c)
	},
	"CAI": func(raw json.RawMessage) (any, error) {
		c := &domain.AI{}
		return c, json.Unmarshal(raw, c)
	},
	"CVision": func(raw json.RawMessage) (any, error) {
		c := &domain.Vision{}
		return c, json.Unmarshal(raw, c)
	},
	"CSpellbook": func(raw json.RawMessage) (any, error) {
		c := &domain.Spellbook{}
		return c, json.Unmarshal(raw, c)
	},
	"CInventory": func(raw json.RawMessage) (any, error) {
		c := &domain.Inventory{}
		return c, json.Unmarshal(raw, c)
	},
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("content: parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultCatalog parses the embedded content set. The embedded data is part
// of the build, so a failure here is a programming error.
func DefaultCatalog() *Catalog {
	c, err := Parse(defaultCatalogJSON)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks every record against the closed component name set and
// every spell for a positive MP cost.
func (c *Catalog) Validate() error {
	for id, rec := range c.Monsters {
		if err := validateRecord("monster", id, rec); err != nil {
			return err
		}
	}
	for id, rec := range c.Items {
		if err := validateRecord("item", id, rec); err != nil {
			return err
		}
	}
	for id, sp := range c.Spells {
		if sp.MPCost < 0 {
			return fmt.Errorf("content: spell %q has negative mp_cost %d", id, sp.MPCost)
		}
	}
	return nil
}

func validateRecord(kind, id string, rec Record) error {
	if rec.Name == "" {
		return fmt.Errorf("content: %s %q has no name", kind, id)
	}
	for comp := range rec.Components {
		if _, ok := componentDecoders[comp]; !ok {
			return fmt.Errorf("content: %s %q names unknown component %q", kind, id, comp)
		}
	}
	return nil
}

func decodeComponents(rec Record) ([]any, error) {
	comps := make([]any, 0, len(rec.Components))
	for name, raw := range rec.Components {
		decode := componentDecoders[name]
		c, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("content: decode %s for %q: %w", name, rec.Name, err)
		}
		comps = append(comps, c)
	}
	return comps, nil
}
