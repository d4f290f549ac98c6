package domain

// EventKind tags every event variant. The dispatcher routes events to
// systems by kind; systems declare which kinds they consume.
type EventKind uint8

const (
	EvMoveRequested EventKind = iota
	EvMoveResolved
	EvBump
	EvAttackRequested
	EvDamageApplied
	EvEntityDied
	EvSpellCastRequested
	EvItemPicked
	EvItemEquipped
	EvDescendRequested
	EvMessage
	EvCombatStarted
	EvCombatEnded
)

var eventKindNames = map[EventKind]string{
	EvMoveRequested:      "MOVE_REQUESTED",
	EvMoveResolved:       "MOVE_RESOLVED",
	EvBump:               "BUMP",
	EvAttackRequested:    "ATTACK_REQUESTED",
	EvDamageApplied:      "DAMAGE_APPLIED",
	EvEntityDied:         "ENTITY_DIED",
	EvSpellCastRequested: "SPELL_CAST_REQUESTED",
	EvItemPicked:         "ITEM_PICKED",
	EvItemEquipped:       "ITEM_EQUIPPED",
	EvDescendRequested:   "DESCEND_REQUESTED",
	EvMessage:            "MESSAGE",
	EvCombatStarted:      "COMBAT_STARTED",
	EvCombatEnded:        "COMBAT_ENDED",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Event is an immutable value posted to the World's per-turn FIFO queue.
type Event interface {
	EventKind() EventKind
}

type MoveRequested struct {
	EID EntityID
	To  Point
}

type MoveResolved struct {
	EID  EntityID
	From Point
	To   Point
}

type Bump struct {
	EID      EntityID
	TargetID EntityID
}

type AttackRequested struct {
	AttackerID EntityID
	TargetID   EntityID
}

type DamageApplied struct {
	TargetID   EntityID
	Amount     int
	DamageType string
	SourceID   EntityID
}

type EntityDied struct {
	EID      EntityID
	KillerID EntityID
}

type SpellCastRequested struct {
	CasterID EntityID
	SpellID  string
	TargetID EntityID
}

type ItemPicked struct {
	EID    EntityID
	ItemID EntityID
}

type ItemEquipped struct {
	EID    EntityID
	Slot   string
	ItemID EntityID
}

type DescendRequested struct {
	EID     EntityID
	StairXY Point
}

type Message struct {
	Text    string
	Channel string
}

type CombatStarted struct {
	Participants []EntityID
}

type CombatEnded struct {
	Participants []EntityID
}

func (MoveRequested) EventKind() EventKind      { return EvMoveRequested }
func (MoveResolved) EventKind() EventKind       { return EvMoveResolved }
func (Bump) EventKind() EventKind               { return EvBump }
func (AttackRequested) EventKind() EventKind    { return EvAttackRequested }
func (DamageApplied) EventKind() EventKind      { return EvDamageApplied }
func (EntityDied) EventKind() EventKind         { return EvEntityDied }
func (SpellCastRequested) EventKind() EventKind { return EvSpellCastRequested }
func (ItemPicked) EventKind() EventKind         { return EvItemPicked }
func (ItemEquipped) EventKind() EventKind       { return EvItemEquipped }
func (DescendRequested) EventKind() EventKind   { return EvDescendRequested }
func (Message) EventKind() EventKind            { return EvMessage }
func (CombatStarted) EventKind() EventKind      { return EvCombatStarted }
func (CombatEnded) EventKind() EventKind        { return EvCombatEnded }

// Msg builds a log-channel message event.
func Msg(text string) Message {
	return Message{Text: text, Channel: "log"}
}
