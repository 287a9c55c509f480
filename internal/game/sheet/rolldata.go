package sheet

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RollData is the derived sheet data handed to dice formulas. Keys follow the
// document's wire names, e.g. data["stats"]["combat"]["hitCheck"]["total"].
type RollData map[string]any

// Augmenter injects extra roll data for a sheet type.
//
// Implementations may add keys. BuildRollData puts back every key and value
// of the derived data, so dropped or overwritten fields do not survive.
type Augmenter interface {
	Augment(sheetType string, data RollData) (RollData, error)
}

// NopAugmenter leaves roll data untouched.
type NopAugmenter struct{}

// Augment returns data unchanged.
func (NopAugmenter) Augment(_ string, data RollData) (RollData, error) {
	return data, nil
}

// BuildRollData flattens the already-derived system data of s into RollData
// and runs aug for character and NPC sheets. A nil aug behaves as
// NopAugmenter.
//
// Precondition: s must be non-nil and already passed through Derive.
// Postcondition: Every key present before augmentation is present in the
// result with its derived value; only new keys come from aug.
func BuildRollData(s *Sheet, aug Augmenter) (RollData, error) {
	if aug == nil {
		aug = NopAugmenter{}
	}
	base, err := toRollData(s.System)
	if err != nil {
		return nil, err
	}
	if s.Type != TypeCharacter && s.Type != TypeNPC {
		return base, nil
	}

	// The augmenter gets its own copy so base stays intact for the restore pass.
	work, err := toRollData(s.System)
	if err != nil {
		return nil, err
	}
	out, err := aug.Augment(s.Type, work)
	if err != nil {
		return nil, fmt.Errorf("augmenting %s roll data: %w", s.Type, err)
	}
	if out == nil {
		out = RollData{}
	}
	restoreBase(out, base)
	return out, nil
}

func toRollData(sys System) (RollData, error) {
	raw, err := yaml.Marshal(sys)
	if err != nil {
		return nil, fmt.Errorf("flattening roll data: %w", err)
	}
	// Nested sections must decode as plain maps, not RollData.
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("flattening roll data: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return RollData(data), nil
}

// restoreBase writes every leaf of src back into dst, descending into nested
// maps. Keys only dst has are left alone.
func restoreBase(dst, src map[string]any) {
	for k, sv := range src {
		sm, sok := asMap(sv)
		if !sok {
			dst[k] = sv
			continue
		}
		if dm, dok := asMap(dst[k]); dok {
			restoreBase(dm, sm)
		} else {
			dst[k] = sv
		}
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RollData:
		return m, true
	}
	return nil, false
}

// Lookup resolves a dotted path such as "abilities.strength.checkBonus".
//
// Postcondition: Returns the value and true, or nil and false when any
// segment is absent.
func (d RollData) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}
