// Package api defines the wire protocol between the game server and its
// clients. The simulation core never sees these types; the server builds a
// per-client snapshot from the world each turn.
package api

import "encoding/json"

// --- Client -> server ---

// ClientCommand is the root object for every client message. Action is one
// of the discrete input tokens (MOVE is split into UP/DOWN/LEFT/RIGHT) plus
// the non-turn verbs CAST and EQUIP.
type ClientCommand struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CastPayload targets a spell at an entity.
type CastPayload struct {
	SpellID  string `json:"spellId"`
	TargetID uint64 `json:"targetId"`
}

// EquipPayload moves a carried item into an equipment slot.
type EquipPayload struct {
	Slot   string `json:"slot"`
	ItemID uint64 `json:"itemId"`
}

// --- Server -> client ---

// ServerResponse is the full per-client snapshot sent after every processed
// command.
type ServerResponse struct {
	Type string `json:"type"` // INIT, UPDATE, GAME_OVER

	Floor      int    `json:"floor"`
	MyEntityID uint64 `json:"myEntityId"`

	Grid     GridMeta     `json:"grid"`
	Map      []TileView   `json:"map,omitempty"`
	Entities []EntityView `json:"entities,omitempty"`
	Player   *PlayerView  `json:"player,omitempty"`

	Logs []string `json:"logs,omitempty"`
}

// GridMeta carries the floor dimensions for the client's render surface.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView is the render DTO for one explored tile. IsVisible tiles render
// bright; explored-only tiles render dimmed (fog of war).
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Glyph string `json:"glyph"`
	Color string `json:"color"`

	Walkable   bool `json:"walkable"`
	IsVisible  bool `json:"isVisible"`
	IsExplored bool `json:"isExplored"`
}

// EntityView is the render DTO for one visible entity.
type EntityView struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	X     int    `json:"x"`
	Y     int    `json:"y"`

	HP     int  `json:"hp,omitempty"`
	MaxHP  int  `json:"maxHp,omitempty"`
	IsDead bool `json:"isDead,omitempty"`
}

// PlayerView is the client's own character sheet.
type PlayerView struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`

	Inventory []ItemView          `json:"inventory"`
	Equipment map[string]ItemView `json:"equipment,omitempty"`
	Spells    []string            `json:"spells,omitempty"`
}

// ItemView describes one carried or equipped item.
type ItemView struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}
