package sheet

import "errors"

// MovementOffset is the fixed game-balance bonus added to movement's base.
const MovementOffset = 5

// requirement names the abilities a derived stat reads.
type requirement struct {
	stat      string
	abilities []string
}

// characterRequirements is ordered as the stats appear on the sheet, so the
// first unmet requirement is reported deterministically.
var characterRequirements = []requirement{
	{stat: "hitCheck", abilities: []string{Dexterity}},
	{stat: "dodgeCheck", abilities: []string{Agility}},
	{stat: "magicalDefense", abilities: []string{Mind}},
	{stat: "actionPoints", abilities: []string{Agility, Perception}},
	{stat: "movement", abilities: []string{Strength}},
	{stat: "magicCheck", abilities: []string{Intelligence}},
	{stat: "detectTraps", abilities: []string{Perception}},
	{stat: "disarmTraps", abilities: []string{Dexterity}},
	{stat: "senseThreats", abilities: []string{Perception}},
	{stat: "identifyEnemy", abilities: []string{Intelligence}},
}

// floorDiv divides rounding toward negative infinity.
//
// Precondition: b != 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Score returns the ability score for a:
// floor((base + abilityBonus + otherBonus) / 3) + classBonus + abilityScoreBonus.
func Score(a Ability) int {
	return floorDiv(a.Base+a.AbilityBonus+a.OtherBonus, 3) + a.ClassBonus + a.AbilityScoreBonus
}

// Derive computes every derived field of s in place.
//
// Characters get ability scores plus all combat and special stats; NPCs get
// ability scores only. Any other Type derives nothing and leaves s unchanged.
// Derived values depend only on input fields, so calling Derive again with
// unchanged inputs yields identical results.
//
// Precondition: s must be non-nil.
// Postcondition: Returns nil with s enriched, or a *MissingAbilityError with
// s unmodified.
func Derive(s *Sheet) error {
	if s == nil {
		return errors.New("sheet must not be nil")
	}
	switch s.Type {
	case TypeCharacter:
		if err := checkRequirements(s.System.Abilities); err != nil {
			return err
		}
		deriveAbilities(s.System.Abilities)
		if s.System.Stats == nil {
			s.System.Stats = &Stats{}
		}
		deriveCombat(&s.System.Stats.Combat, s.System.Abilities)
		deriveSpecial(&s.System.Stats.Special, s.System.Abilities)
	case TypeNPC:
		deriveAbilities(s.System.Abilities)
	}
	return nil
}

func checkRequirements(abilities map[string]*Ability) error {
	for _, req := range characterRequirements {
		for _, key := range req.abilities {
			if abilities[key] == nil {
				return &MissingAbilityError{Ability: key, Stat: req.stat}
			}
		}
	}
	return nil
}

func deriveAbilities(abilities map[string]*Ability) {
	for _, a := range abilities {
		if a == nil {
			continue
		}
		a.AbilityScore = Score(*a)
		a.CheckBonus = a.AbilityScore
	}
}

// deriveCombat fills combat stat bases and totals.
//
// Precondition: abilities satisfies characterRequirements and has been derived.
func deriveCombat(c *CombatStats, abilities map[string]*Ability) {
	check := func(key string) int { return abilities[key].CheckBonus }

	c.HitCheck.Base = check(Dexterity)
	c.HitCheck.Total = c.HitCheck.Base + c.HitCheck.HitModifier + c.HitCheck.SkillModifier + c.HitCheck.OtherModifier

	c.AttackPower.Total = c.AttackPower.AttackPower + c.AttackPower.SkillModifier + c.AttackPower.OtherModifier

	c.DodgeCheck.Base = check(Agility)
	c.DodgeCheck.Total = c.DodgeCheck.Base + c.DodgeCheck.DodgeModifier + c.DodgeCheck.SkillModifier + c.DodgeCheck.OtherModifier

	c.PhysicalDefense.Total = c.PhysicalDefense.ArmorModifier + c.PhysicalDefense.SkillModifier + c.PhysicalDefense.OtherModifier

	c.MagicalDefense.Base = check(Mind)
	c.MagicalDefense.Total = c.MagicalDefense.Base + c.MagicalDefense.ArmorModifier + c.MagicalDefense.SkillModifier + c.MagicalDefense.OtherModifier

	c.ActionPoints.Base = check(Agility) + check(Perception)
	c.ActionPoints.Total = c.ActionPoints.Base + c.ActionPoints.ActionModifier + c.ActionPoints.SkillModifier + c.ActionPoints.OtherModifier

	c.Movement.Base = check(Strength) + MovementOffset
	c.Movement.Total = c.Movement.Base + c.Movement.MovementModifier + c.Movement.SkillModifier + c.Movement.OtherModifier
}

func deriveSpecial(sp *SpecialStats, abilities map[string]*Ability) {
	sp.MagicCheck.derive(abilities[Intelligence].CheckBonus)
	sp.DetectTraps.derive(abilities[Perception].CheckBonus)
	sp.DisarmTraps.derive(abilities[Dexterity].CheckBonus)
	sp.SenseThreats.derive(abilities[Perception].CheckBonus)
	sp.IdentifyEnemy.derive(abilities[Intelligence].CheckBonus)
}

func (c *SpecialCheck) derive(base int) {
	c.Base = base
	c.Total = base + c.SkillModifier + c.OtherModifier
}
