package domain

// Damage types. Physical is the only type soaked by armor dice.
const (
	DamagePhysical = "Physical"
	DamageFire     = "Fire"
	DamageFrost    = "Frost"
	DamageArcane   = "Arcane"
)

// Equipment slots.
const (
	SlotWeapon = "weapon"
	SlotArmor  = "armor"
)

// Perception and AI tuning.
const (
	ChaseRange          = 5 // Manhattan distance at which chase AI pursues
	DefaultVisionRadius = 5
)

// Unarmed fallback for attackers without a weapon.
const (
	UnarmedDice  = "1d4+STR"
	UnarmedReach = 1
)
