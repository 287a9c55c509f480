// Package dice rolls sheet formulas such as "2d6+@stats.combat.hitCheck.total"
// against a character's roll data.
package dice

import "fmt"

// Data resolves @references in formulas. sheet.RollData satisfies it.
type Data interface {
	Lookup(path string) (any, bool)
}

// RollResult is what a table sees after a sheet roll: the formula, the kept
// dice and the flat part, with each sheet reference that fed the flat part.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string         // formula as written, e.g. "2d6+@abilities.luck.checkBonus"
	Dice       []int          // kept die results
	Modifier   int            // constant and resolved reference terms combined
	Refs       map[string]int // @path -> resolved value
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns the chat line for a roll, e.g.
// "2d6+@stats.combat.hitCheck.total → [4 5] +3 = 12".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
