// Package conversion turns packs and simulation results into the flat views
// the front ends serialise, as JSON for HTTP and as structpb for gRPC.
package conversion

import (
	"time"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
)

// SetView is a set as front ends show it
type SetView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Bonus bool   `json:"bonus"`
}

// CardView is one pack entry with its card flattened
type CardView struct {
	Position      int    `json:"position"`
	Slot          string `json:"slot"`
	SlotName      string `json:"slot_name"`
	TargetRarity  string `json:"target_rarity"`
	Rarity        string `json:"rarity"`
	RarityName    string `json:"rarity_name"`
	BonusRolled   bool   `json:"bonus_rolled"`
	Name          string `json:"name"`
	PositionInSet int    `json:"position_in_set"`
	Set           string `json:"set"`
	ImageURL      string `json:"image_url,omitempty"`
}

// PackView is a generated pack
type PackView struct {
	ID          string     `json:"id"`
	Set         SetView    `json:"set"`
	GeneratedAt string     `json:"generated_at"`
	BonusCount  int        `json:"bonus_count"`
	Cards       []CardView `json:"cards"`
}

// SimulationView is a simulation summary
type SimulationView struct {
	Set         string  `json:"set"`
	Trials      int     `json:"trials"`
	Mean        float64 `json:"mean"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Exhausted   int     `json:"exhausted"`
	Unfinished  int     `json:"unfinished"`
	PacksOpened []int   `json:"packs_opened,omitempty"`
}

// NewSetView converts a set
func NewSetView(s entities.Set) SetView {
	return SetView{Code: s.Code, Name: s.Name, Alias: s.Alias, Bonus: s.Bonus}
}

// NewSetViews converts a list of sets
func NewSetViews(sets []entities.Set) []SetView {
	out := make([]SetView, len(sets))
	for i, s := range sets {
		out[i] = NewSetView(s)
	}
	return out
}

// NewPackView converts a pack
func NewPackView(p *booster.Pack) PackView {
	view := PackView{
		ID:          p.ID,
		Set:         NewSetView(p.Set),
		GeneratedAt: p.GeneratedAt.UTC().Format(time.RFC3339Nano),
		BonusCount:  p.BonusCount(),
		Cards:       make([]CardView, 0, booster.PackSize),
	}
	for _, e := range p.Entries {
		view.Cards = append(view.Cards, CardView{
			Position:      e.Position,
			Slot:          string(e.Slot),
			SlotName:      e.Slot.DisplayName(),
			TargetRarity:  string(e.TargetRarity),
			Rarity:        string(e.Card.Rarity),
			RarityName:    e.Card.Rarity.DisplayName(),
			BonusRolled:   e.BonusRolled,
			Name:          e.Card.Name,
			PositionInSet: e.Card.PositionInSet,
			Set:           e.Card.Set.Code,
			ImageURL:      e.Card.ImageURL,
		})
	}
	return view
}

// NewSimulationView converts a simulation result; per-trial counts are only
// included when withTrials is set
func NewSimulationView(set entities.Set, out *booster.SimulateOutput, withTrials bool) SimulationView {
	view := SimulationView{
		Set:        set.Code,
		Trials:     len(out.PacksOpened),
		Mean:       out.Mean,
		Min:        out.Min,
		Max:        out.Max,
		Exhausted:  out.Exhausted,
		Unfinished: out.Unfinished,
	}
	if withTrials {
		view.PacksOpened = out.PacksOpened
	}
	return view
}
