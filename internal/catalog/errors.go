package catalog

import "fmt"

// ClassificationError reports a store record whose rarity, slot or set label
// the catalog does not recognise. A set load that hits one commits nothing.
type ClassificationError struct {
	SetCode  string
	Card     string
	Position int
	Field    string
	Value    string
}

// Error implements the error interface
func (e *ClassificationError) Error() string {
	return fmt.Sprintf("set %s: card %q (#%d): unknown %s %q", e.SetCode, e.Card, e.Position, e.Field, e.Value)
}
