package entities

import (
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

// Set is a named release grouping of cards. Code is the identifier used by
// the stores; Alias is an alternate label accepted when classifying records.
type Set struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Bonus bool   `json:"bonus,omitempty"`
}

// Known sets
var (
	SetBAZ = Set{Code: "BAZ", Name: "Base", Alias: "БАЗ"}
	SetKOV = Set{Code: "KOV", Name: "Kovcheg", Alias: "КОВ"}

	// SetHallOfFame holds promotional cards used for bonus substitution
	SetHallOfFame = Set{Code: "HOF", Name: "Hall of Fame", Alias: "Зал Славы", Bonus: true}
)

// DefaultSets returns the sets every catalog knows about
func DefaultSets() []Set {
	return []Set{SetBAZ, SetKOV, SetHallOfFame}
}

// Matches reports whether label names this set by code, name or alias
func (s Set) Matches(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	return strings.EqualFold(label, s.Code) ||
		strings.EqualFold(label, s.Name) ||
		(s.Alias != "" && strings.EqualFold(label, s.Alias))
}

// FindSet looks up label among sets
func FindSet(sets []Set, label string) (Set, bool) {
	for _, s := range sets {
		if s.Matches(label) {
			return s, true
		}
	}
	return Set{}, false
}

// ParseSetSpec parses "CODE" or "CODE:Name" as used by configuration
func ParseSetSpec(spec string) (Set, error) {
	code, name, _ := strings.Cut(strings.TrimSpace(spec), ":")
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return Set{}, errors.InvalidArgumentf("invalid set spec: %q", spec)
	}
	if name == "" {
		name = code
	}
	return Set{Code: strings.ToUpper(code), Name: name}, nil
}
