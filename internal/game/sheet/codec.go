package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// inputFields are the ability fields a document must supply.
var inputFields = []string{"base", "abilityBonus", "otherBonus", "classBonus", "abilityScoreBonus"}

// rawDocument mirrors just enough of a sheet to check field presence.
type rawDocument struct {
	System struct {
		Abilities map[string]map[string]any `yaml:"abilities"`
	} `yaml:"system"`
}

// Decode parses a YAML sheet document.
//
// Postcondition: Returns a non-nil Sheet, or a non-nil error. Every ability
// key is recognised and carries all input fields as numbers.
func Decode(data []byte) (*Sheet, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}
	if err := validateAbilities(raw.System.Abilities); err != nil {
		return nil, err
	}

	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}
	return &s, nil
}

func validateAbilities(abilities map[string]map[string]any) error {
	keys := make([]string, 0, len(abilities))
	for k := range abilities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := ParseAbility(key); err != nil {
			return &MalformedAbilityError{Ability: key}
		}
		fields := abilities[key]
		for _, f := range inputFields {
			if !isNumber(fields[f]) {
				return &MalformedAbilityError{Ability: key, Field: f}
			}
		}
	}
	return nil
}

// isNumber reports whether a decoded YAML scalar is numeric. Absent and null
// fields decode to nil.
func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	}
	return false
}

// Encode renders s as a YAML document.
func Encode(s *Sheet) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding sheet %q: %w", s.Name, err)
	}
	return out, nil
}

// LoadSheet reads and decodes a single sheet file.
//
// Precondition: path must name a readable file.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading sheet file %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return s, nil
}

// LoadSheets reads all .yaml and .yml files in dir as sheets, in
// lexicographic file order.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Every returned sheet has a non-empty ID.
func LoadSheets(dir string) ([]*Sheet, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	sheets := make([]*Sheet, 0, len(files))
	for _, path := range files {
		s, err := LoadSheet(path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
