// Package sheet defines the Konosuba character sheet model and the pure
// derivation of ability scores, combat stats and special checks.
package sheet

// Sheet discriminants.
const (
	TypeCharacter = "character"
	TypeNPC       = "npc"
)

// Ability holds one ability's raw inputs and its derived scores.
type Ability struct {
	Base              int `yaml:"base"`
	AbilityBonus      int `yaml:"abilityBonus"`
	OtherBonus        int `yaml:"otherBonus"`
	ClassBonus        int `yaml:"classBonus"`
	AbilityScoreBonus int `yaml:"abilityScoreBonus"`

	// Derived.
	AbilityScore int `yaml:"abilityScore"`
	CheckBonus   int `yaml:"checkBonus"`
}

// HitCheck is based on dexterity.
type HitCheck struct {
	Base          int `yaml:"base"`
	HitModifier   int `yaml:"hitModifier"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// AttackPower has no ability base; the entered attackPower stands in for it.
type AttackPower struct {
	AttackPower   int `yaml:"attackPower"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// DodgeCheck is based on agility.
type DodgeCheck struct {
	Base          int `yaml:"base"`
	DodgeModifier int `yaml:"dodgeModifier"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// PhysicalDefense has no ability base.
type PhysicalDefense struct {
	ArmorModifier int `yaml:"armorModifier"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// MagicalDefense is based on mind.
type MagicalDefense struct {
	Base          int `yaml:"base"`
	ArmorModifier int `yaml:"armorModifier"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// ActionPoints is based on agility plus perception.
type ActionPoints struct {
	Base           int `yaml:"base"`
	ActionModifier int `yaml:"actionModifier"`
	SkillModifier  int `yaml:"skillModifier"`
	OtherModifier  int `yaml:"otherModifier"`
	Total          int `yaml:"total"`
}

// Movement is based on strength plus MovementOffset.
type Movement struct {
	Base             int `yaml:"base"`
	MovementModifier int `yaml:"movementModifier"`
	SkillModifier    int `yaml:"skillModifier"`
	OtherModifier    int `yaml:"otherModifier"`
	Total            int `yaml:"total"`
}

// SpecialCheck is the shared shape of every special stat.
type SpecialCheck struct {
	Base          int `yaml:"base"`
	SkillModifier int `yaml:"skillModifier"`
	OtherModifier int `yaml:"otherModifier"`
	Total         int `yaml:"total"`
}

// CombatStats groups the stats used in combat resolution.
type CombatStats struct {
	HitCheck        HitCheck        `yaml:"hitCheck"`
	AttackPower     AttackPower     `yaml:"attackPower"`
	DodgeCheck      DodgeCheck      `yaml:"dodgeCheck"`
	PhysicalDefense PhysicalDefense `yaml:"physicalDefense"`
	MagicalDefense  MagicalDefense  `yaml:"magicalDefense"`
	ActionPoints    ActionPoints    `yaml:"actionPoints"`
	Movement        Movement        `yaml:"movement"`
}

// SpecialStats groups the out-of-combat special checks.
type SpecialStats struct {
	MagicCheck    SpecialCheck `yaml:"magicCheck"`
	DetectTraps   SpecialCheck `yaml:"detectTraps"`
	DisarmTraps   SpecialCheck `yaml:"disarmTraps"`
	SenseThreats  SpecialCheck `yaml:"senseThreats"`
	IdentifyEnemy SpecialCheck `yaml:"identifyEnemy"`
}

// Stats is the stat block of a character sheet. NPC and other sheets carry
// it only when the document supplies one.
type Stats struct {
	Combat  CombatStats  `yaml:"combat"`
	Special SpecialStats `yaml:"special"`
}

// System is the game-system payload of a sheet document.
type System struct {
	Abilities map[string]*Ability `yaml:"abilities"`
	Stats     *Stats              `yaml:"stats,omitempty"`
}

// Sheet is a character or NPC document as supplied by the host.
//
// Type selects which derivations apply; see Derive.
type Sheet struct {
	ID     string `yaml:"id,omitempty"`
	Name   string `yaml:"name,omitempty"`
	Type   string `yaml:"type"`
	System System `yaml:"system"`
}
