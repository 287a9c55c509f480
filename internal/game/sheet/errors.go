package sheet

import "fmt"

// MissingAbilityError reports that a derived stat references an ability the
// sheet does not define.
type MissingAbilityError struct {
	Ability string // missing ability key
	Stat    string // first stat that needed it
}

func (e *MissingAbilityError) Error() string {
	return fmt.Sprintf("ability %q required by %s is missing", e.Ability, e.Stat)
}

// MalformedAbilityError reports an ability entry whose input field is absent,
// null or not a number, or whose key is unknown.
type MalformedAbilityError struct {
	Ability string
	Field   string // empty when the ability key itself is unknown
}

func (e *MalformedAbilityError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown ability %q", e.Ability)
	}
	return fmt.Sprintf("ability %q field %q is missing or not a number", e.Ability, e.Field)
}
