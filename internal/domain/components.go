package domain

// Components are plain data, one instance per entity per type. An entity
// "has" a component iff it is present in the World's store for that kind.

// Position places an entity on the floor grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Vision sets how far an entity can see.
type Vision struct {
	Radius int `json:"radius"`
}

// Blocker marks an entity as occupying its tile. True means the tile cannot
// be entered. (The historical "passable" flag read both ways depending on the
// call site; BlocksMovement is unambiguous.)
type Blocker struct {
	BlocksMovement bool `json:"blocks_movement"`
}

// Health tracks hit points. IsDead is set exactly once.
type Health struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"max_hp"`
	IsDead bool `json:"is_dead"`
}

// Stats are the attack/defense attributes consumed by the combat resolvers.
type Stats struct {
	Strength   int     `json:"strength"`
	Agility    int     `json:"agility"`
	Intellect  int     `json:"intellect"`
	Accuracy   int     `json:"accuracy"`
	Evasion    int     `json:"evasion"`
	CritChance float64 `json:"crit_chance"` // percentage, 0-100
	CritMult   float64 `json:"crit_mult"`
}

// Armor provides rolled soak against physical damage and fractional
// resistances by damage type. SpellResist, when present for a type, takes
// precedence over Resist for spell damage.
type Armor struct {
	SoakDice    string             `json:"soak_dice"`
	Resist      map[string]float64 `json:"resist"`
	SpellResist map[string]float64 `json:"spell_resist"`
}

// Weapon describes an attack source. DamageDice is a dice expression
// evaluated against the wielder's attributes.
type Weapon struct {
	DamageDice string   `json:"damage_dice"`
	DamageType string   `json:"damage_type"`
	Reach      int      `json:"reach"`
	Tags       []string `json:"tags"`
}

// Inventory holds carried item entities.
type Inventory struct {
	Capacity int        `json:"capacity"`
	Items    []EntityID `json:"items"`
}

// Equipment maps slot names ("weapon", "armor") to item entities.
type Equipment struct {
	Slots map[string]EntityID `json:"slots"`
}

// Spellbook lists known spell ids and tracks mana.
type Spellbook struct {
	Known []string `json:"known_spells"`
	MP    int      `json:"mp"`
	MaxMP int      `json:"max_mp"`
}

// Effect is one active status effect.
type Effect struct {
	Name      string `json:"name"`
	Magnitude int    `json:"magnitude"`
	TurnsLeft int    `json:"turns_left"`
}

// Status carries an entity's active effects.
type Status struct {
	Effects []Effect `json:"effects"`
}

// Behavior selects an AI strategy.
type Behavior string

const (
	BehaviorChase  Behavior = "chase"
	BehaviorWander Behavior = "wander"
)

// AI marks an entity as simulation-controlled.
type AI struct {
	Behavior Behavior       `json:"behavior"`
	Memory   map[string]any `json:"memory"`
}

// Interactable tags an entity with a world interaction. Kind "item" marks
// the entity as pickupable.
type Interactable struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

const InteractableItem = "item"

// Descriptor is presentation-facing identity: what to call and how to draw
// an entity. The core never renders it.
type Descriptor struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// Visible caches FOV results. VisibleTiles is replaced wholesale each turn;
// SeenTiles only ever grows.
type Visible struct {
	VisibleTiles map[Point]bool
	SeenTiles    map[Point]bool
}

func NewVisible() *Visible {
	return &Visible{
		VisibleTiles: make(map[Point]bool),
		SeenTiles:    make(map[Point]bool),
	}
}
