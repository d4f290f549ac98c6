// Package dice evaluates the damage/soak expressions used by weapons, armor
// and spells. An expression combines at most one dice term with flat and
// attribute modifiers:
//
//   - Dice term: "2d6" (roll 2 six-sided dice)
//   - Flat modifiers: "+3", "-1"
//   - Attribute modifiers: "+STR", "-AGI", "+INT/2"
//
// Attribute references resolve against a caller-supplied context; unknown
// attributes resolve to 0. Attribute division is floor division (rounds
// toward negative infinity). A dice term with a zero or negative count or
// die size is treated as absent. The final total never goes below 0.
package dice

import (
	"regexp"
	"strconv"

	"github.com/ESikich/TopDownRPG/pkg/rng"
)

var (
	diceRe    = regexp.MustCompile(`(-?\d+)[dD](-?\d+)`)
	flatRe    = regexp.MustCompile(`[+-]\d+`)
	leadingRe = regexp.MustCompile(`^\d+`)
	attrRe    = regexp.MustCompile(`([+-])(STR|AGI|INT)(?:/(-?\d+))?`)
)

// Breakdown reports how a total was assembled. Crit handling doubles
// DiceTotal only, so the split matters to the damage resolver.
type Breakdown struct {
	DiceTotal int   // sum of all dice rolled
	Rolls     []int // individual die results, in roll order
	ModTotal  int   // sum of flat and attribute modifiers
}

// Roller evaluates dice expressions against an injected random source.
type Roller struct {
	src rng.Source
}

func NewRoller(src rng.Source) *Roller {
	return &Roller{src: src}
}

// Roll evaluates expr against attrs and returns the clamped total plus its
// breakdown. Malformed pieces degrade to zero contributions; Roll never
// fails.
func (r *Roller) Roll(expr string, attrs map[string]int) (int, Breakdown) {
	var bd Breakdown

	// Pull the dice term out first so its digits are not re-read as flat
	// modifiers (e.g. the "-2" in "-2d6").
	rest := expr
	if loc := diceRe.FindStringSubmatchIndex(rest); loc != nil {
		count, _ := strconv.Atoi(rest[loc[2]:loc[3]])
		size, _ := strconv.Atoi(rest[loc[4]:loc[5]])
		rest = rest[:loc[0]] + rest[loc[1]:]

		if count > 0 && size > 0 {
			bd.Rolls = make([]int, count)
			for i := 0; i < count; i++ {
				roll := r.src.RollRange(1, size)
				bd.Rolls[i] = roll
				bd.DiceTotal += roll
			}
		}
	}

	// A bare leading constant ("5", "5+1d4").
	if lead := leadingRe.FindString(rest); lead != "" {
		v, _ := strconv.Atoi(lead)
		bd.ModTotal += v
	}

	for _, m := range flatRe.FindAllString(rest, -1) {
		v, _ := strconv.Atoi(m)
		bd.ModTotal += v
	}

	for _, m := range attrRe.FindAllStringSubmatch(rest, -1) {
		val := attrs[m[2]]
		if m[3] != "" {
			div, _ := strconv.Atoi(m[3])
			if div != 0 {
				val = floorDiv(val, div)
			}
		}
		if m[1] == "-" {
			val = -val
		}
		bd.ModTotal += val
	}

	total := bd.DiceTotal + bd.ModTotal
	if total < 0 {
		total = 0
	}
	return total, bd
}

// floorDiv rounds toward negative infinity, unlike Go's / which truncates.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
