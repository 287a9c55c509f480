package sheet

import "fmt"

// Ability keys recognised by the Konosuba system.
const (
	Strength     = "strength"
	Dexterity    = "dexterity"
	Agility      = "agility"
	Intelligence = "intelligence"
	Perception   = "perception"
	Mind         = "mind"
	Luck         = "luck"
)

// Abilities lists every ability key in canonical sheet order.
var Abilities = []string{Strength, Dexterity, Agility, Intelligence, Perception, Mind, Luck}

var abilityLabels = map[string]string{
	Strength:     "KONOSUBA.strength",
	Dexterity:    "KONOSUBA.dexterity",
	Agility:      "KONOSUBA.agility",
	Intelligence: "KONOSUBA.intelligence",
	Perception:   "KONOSUBA.perception",
	Mind:         "KONOSUBA.mind",
	Luck:         "KONOSUBA.luck",
}

var abilityShortNames = map[string]string{
	Strength:     "STR",
	Dexterity:    "DEX",
	Agility:      "AGI",
	Intelligence: "INT",
	Perception:   "PER",
	Mind:         "MND",
	Luck:         "LCK",
}

// Label returns the localization key for an ability. The key is opaque to
// this package; the host resolves it to display text.
//
// Postcondition: Returns "" if key is not a recognised ability.
func Label(key string) string {
	return abilityLabels[key]
}

// ShortName returns the three letter display label for an ability key.
func ShortName(key string) string {
	if n, ok := abilityShortNames[key]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", key)
}

// ParseAbility validates key as a recognised ability.
//
// Postcondition: Returns key unchanged, or a non-nil error.
func ParseAbility(key string) (string, error) {
	if _, ok := abilityLabels[key]; !ok {
		return "", fmt.Errorf("unknown ability %q", key)
	}
	return key, nil
}
