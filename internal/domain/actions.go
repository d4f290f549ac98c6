package domain

import "strings"

// ActionType is the discrete input token the core accepts. The core never
// parses raw key codes; the input collaborator maps keys to these.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionWait
	ActionDescend
	ActionInventory
	ActionSpellbook
	ActionPause
	ActionRestart
)

var actionStringToCmd = map[string]ActionType{
	"UP":        ActionUp,
	"DOWN":      ActionDown,
	"LEFT":      ActionLeft,
	"RIGHT":     ActionRight,
	"WAIT":      ActionWait,
	"DESCEND":   ActionDescend,
	"INVENTORY": ActionInventory,
	"SPELLBOOK": ActionSpellbook,
	"PAUSE":     ActionPause,
	"RESTART":   ActionRestart,
}

var actionCmdToString = map[ActionType]string{
	ActionUp:        "UP",
	ActionDown:      "DOWN",
	ActionLeft:      "LEFT",
	ActionRight:     "RIGHT",
	ActionWait:      "WAIT",
	ActionDescend:   "DESCEND",
	ActionInventory: "INVENTORY",
	ActionSpellbook: "SPELLBOOK",
	ActionPause:     "PAUSE",
	ActionRestart:   "RESTART",
}

// ParseAction converts a wire string into an ActionType. Matching is
// case-insensitive.
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Direction returns the movement delta for directional actions and
// ok=false for everything else.
func (a ActionType) Direction() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}
