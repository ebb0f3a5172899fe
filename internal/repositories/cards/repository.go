// Package cards provides the card catalog store: the read contract the
// in-memory catalog loads sets through, plus the write side used for seeding.
package cards

//go:generate mockgen -destination=mock/mock_repository.go -package=cardsmock github.com/KirkDiggler/booster-sim/internal/repositories/cards Repository,Writer

import (
	"context"
)

// Record is a card as the store holds it. Classification fields are free-form
// labels; the catalog maps them onto rarities, slots and sets.
type Record struct {
	Name          string `json:"name" yaml:"name"`
	PositionInSet int    `json:"position_in_set" yaml:"position_in_set"`
	RarityName    string `json:"rarity" yaml:"rarity"`
	SlotName      string `json:"slot" yaml:"slot"`
	SetName       string `json:"set" yaml:"set"`
	ImageURL      string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Repository is the read contract for card records
type Repository interface {
	// ListBySet returns every record filed under the set, in no particular order
	// Returns an empty list for sets the store has never seen
	// Returns errors.InvalidArgument for an empty set code
	// Returns errors.Internal or errors.Unavailable for storage failures
	ListBySet(ctx context.Context, input ListBySetInput) (*ListBySetOutput, error)
}

// Writer is the write contract used to seed a store
type Writer interface {
	// Upsert stores records under a set, replacing any record with the same
	// position in that set
	// Returns errors.InvalidArgument for an empty set code or invalid records
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)
}

// ListBySetInput defines the input for listing a set
type ListBySetInput struct {
	SetCode string
	// Aliases are alternate names a store may have filed the set under
	Aliases []string
}

// ListBySetOutput defines the output for listing a set
type ListBySetOutput struct {
	Records []Record
}

// UpsertInput defines the input for storing records
type UpsertInput struct {
	SetCode string
	Records []Record
}

// UpsertOutput defines the output for storing records
type UpsertOutput struct {
	Stored int
}
