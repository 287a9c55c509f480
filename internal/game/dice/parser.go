package dice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Expression is a parsed formula ready to be rolled.
//
// Count == 0 denotes a flat formula with no dice; otherwise Sides >= 2.
type Expression struct {
	Raw         string // original formula
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // sum of constant and resolved reference terms
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)

	// Refs records the value each @path resolved to. Nil for Parse.
	Refs map[string]int
}

type term struct {
	sign int
	text string
}

// Parse parses a formula that contains no @references.
// Supported terms: "d20", "2d6", "4d6kh3", integers, joined by + or -.
//
// Postcondition: Returns an Expression or a descriptive error.
func Parse(formula string) (Expression, error) {
	return parse(formula, nil)
}

// Resolve parses formula, replacing each @path term with the integer found at
// path in data.
//
// Precondition: data must be non-nil.
// Postcondition: Returns an Expression whose Modifier includes every resolved
// reference, or an error naming the first unresolvable one.
func Resolve(formula string, data Data) (Expression, error) {
	return parse(formula, data)
}

func parse(raw string, data Data) (Expression, error) {
	if strings.TrimSpace(raw) == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	terms, err := splitTerms(strings.Join(strings.Fields(raw), ""))
	if err != nil {
		return Expression{}, fmt.Errorf("dice: %w in %q", err, raw)
	}

	e := Expression{Raw: raw}
	for _, t := range terms {
		switch {
		case strings.HasPrefix(t.text, "@"):
			if data == nil {
				return Expression{}, fmt.Errorf("dice: unresolved reference %q in %q", t.text, raw)
			}
			v, err := lookupInt(data, t.text[1:])
			if err != nil {
				return Expression{}, fmt.Errorf("dice: %w in %q", err, raw)
			}
			e.Modifier += t.sign * v
			if e.Refs == nil {
				e.Refs = make(map[string]int)
			}
			e.Refs[t.text[1:]] = v
		case strings.ContainsAny(t.text, "dD"):
			if e.Count > 0 {
				return Expression{}, fmt.Errorf("dice: multiple dice terms in %q", raw)
			}
			if t.sign < 0 {
				return Expression{}, fmt.Errorf("dice: negative dice term in %q", raw)
			}
			if e.Count, e.Sides, e.KeepHighest, err = parseDice(strings.ToLower(t.text)); err != nil {
				return Expression{}, fmt.Errorf("dice: %w in %q", err, raw)
			}
		default:
			n, err := strconv.Atoi(t.text)
			if err != nil {
				return Expression{}, fmt.Errorf("dice: invalid term %q in %q", t.text, raw)
			}
			e.Modifier += t.sign * n
		}
	}
	return e, nil
}

// splitTerms splits s at top-level + and - signs.
func splitTerms(s string) ([]term, error) {
	var terms []term
	sign, start := 1, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '+' && s[i] != '-' {
			continue
		}
		if i == 0 && i < len(s) {
			// leading sign
			if s[i] == '-' {
				sign = -1
			}
			start = 1
			continue
		}
		if start == i {
			return nil, fmt.Errorf("dangling operator")
		}
		terms = append(terms, term{sign: sign, text: s[start:i]})
		if i < len(s) && s[i] == '-' {
			sign = -1
		} else {
			sign = 1
		}
		start = i + 1
	}
	return terms, nil
}

// parseDice parses "NdS" or "NdSkhK"; N defaults to 1.
func parseDice(s string) (count, sides, keepHighest int, err error) {
	dIdx := strings.Index(s, "d")
	count = 1
	if countStr := s[:dIdx]; countStr != "" {
		if count, err = strconv.Atoi(countStr); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid die count %q", countStr)
		}
		if count <= 0 {
			return 0, 0, 0, fmt.Errorf("invalid die count %d: must be >= 1", count)
		}
	}

	rest := s[dIdx+1:]
	if khIdx := strings.Index(rest, "kh"); khIdx >= 0 {
		khStr := rest[khIdx+2:]
		rest = rest[:khIdx]
		if keepHighest, err = strconv.Atoi(khStr); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid kh value %q", khStr)
		}
		if keepHighest <= 0 || keepHighest >= count {
			return 0, 0, 0, fmt.Errorf("kh value %d must be > 0 and < count %d", keepHighest, count)
		}
	}

	if sides, err = strconv.Atoi(rest); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid die sides %q", rest)
	}
	if sides < 2 {
		return 0, 0, 0, fmt.Errorf("invalid die sides %d: must be >= 2", sides)
	}
	return count, sides, keepHighest, nil
}

func lookupInt(data Data, path string) (int, error) {
	v, ok := data.Lookup(path)
	if !ok {
		return 0, fmt.Errorf("unknown reference @%s", path)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("reference @%s is not an integer (%v)", path, v)
}
