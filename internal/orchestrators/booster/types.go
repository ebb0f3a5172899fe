package booster

import (
	"time"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

// PackSize is the number of cards in every pack
const PackSize = 18

// Entry is one position of a generated pack
type Entry struct {
	Position     int             `json:"position"`
	Slot         entities.Slot   `json:"slot"`
	TargetRarity entities.Rarity `json:"target_rarity"`
	BonusRolled  bool            `json:"bonus_rolled"`
	Card         entities.Card   `json:"card"`
}

// Pack is a fully assembled booster
type Pack struct {
	ID          string          `json:"id"`
	Set         entities.Set    `json:"set"`
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     [PackSize]Entry `json:"entries"`
}

// Cards returns the pack's cards in position order
func (p *Pack) Cards() []entities.Card {
	out := make([]entities.Card, PackSize)
	for i, e := range p.Entries {
		out[i] = e.Card
	}
	return out
}

// BonusCount returns how many cards came from a bonus set
func (p *Pack) BonusCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Card.Set.Bonus {
			n++
		}
	}
	return n
}

// Exhaustion describes the position at which assembly found no card to draw
type Exhaustion struct {
	Position     int             `json:"position"`
	Slot         entities.Slot   `json:"slot"`
	Set          entities.Set    `json:"set"`
	Bonus        bool            `json:"bonus"`
	TargetRarity entities.Rarity `json:"target_rarity"`
}

// GenerateInput defines the input for generating one pack
type GenerateInput struct {
	Rules *Rules
	// Random is held exclusively for the whole assembly when it implements
	// sync.Locker
	Random random.Source
}

// GenerateOutput holds either a pack or the exhaustion that prevented it
type GenerateOutput struct {
	Pack       *Pack
	Exhaustion *Exhaustion
}

// SimulateInput defines the input for a "packs until a bonus card" simulation
type SimulateInput struct {
	Rules  *Rules
	Random random.Source
	// Trials is the number of independent runs
	Trials int
	// MaxPacksPerTrial bounds each run; 0 means DefaultMaxPacksPerTrial
	MaxPacksPerTrial int
}

// SimulateOutput summarises a simulation
type SimulateOutput struct {
	// PacksOpened holds, per trial, the packs opened up to and including the
	// first one with a bonus card
	PacksOpened []int
	Mean        float64
	Min         int
	Max         int
	// Exhausted counts attempts that could not be assembled
	Exhausted int
	// Unfinished counts trials that hit MaxPacksPerTrial without a bonus card
	Unfinished int
}
