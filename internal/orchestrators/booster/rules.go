package booster

import (
	"math"

	"github.com/KirkDiggler/booster-sim/internal/distribution"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

// RarityPolicy controls whether a position's target rarity restricts the draw
type RarityPolicy string

const (
	// RarityIgnore records the target rarity on the entry but draws from the
	// whole (slot, set) bucket
	RarityIgnore RarityPolicy = "ignore"
	// RarityFilter draws only cards of the target rarity, bonus bucket first
	RarityFilter RarityPolicy = "filter"
)

// ParseRarityPolicy parses a policy name; empty means RarityIgnore
func ParseRarityPolicy(s string) (RarityPolicy, error) {
	switch RarityPolicy(s) {
	case "", RarityIgnore:
		return RarityIgnore, nil
	case RarityFilter:
		return RarityFilter, nil
	default:
		return "", errors.InvalidArgumentf("unknown rarity policy %q (want %q or %q)", s, RarityIgnore, RarityFilter)
	}
}

// Outcome tables for the rarity distributions, indexed by sampled outcome
var (
	upgradeOutcomes = []entities.Rarity{entities.RaritySilver, entities.RarityGold}
	openOutcomes    = []entities.Rarity{entities.RarityBronze, entities.RaritySilver, entities.RarityGold}
)

// Rules is a validated bundle of pack-generation parameters. Build it with
// NewRules or DefaultRules and treat it as read-only; the With methods return
// modified copies.
type Rules struct {
	Set            entities.Set
	BonusSetChance float64
	// HeroRarity picks Silver or Gold for position 0
	HeroRarity *distribution.Distribution
	// CommandRarityOpen picks Bronze, Silver or Gold for position 1
	CommandRarityOpen *distribution.Distribution
	// CommandRarityUpgrade picks Silver or Gold for position 2
	CommandRarityUpgrade *distribution.Distribution
	// BasicRarityUpgrade picks Silver or Gold for position 5
	BasicRarityUpgrade *distribution.Distribution
	RarityPolicy       RarityPolicy
}

// NewRules validates and builds Rules with the RarityIgnore policy
func NewRules(
	set entities.Set,
	bonusSetChance float64,
	hero, commandOpen, commandUpgrade, basicUpgrade *distribution.Distribution,
) (*Rules, error) {
	vb := errors.NewValidationBuilder()

	if set.Code == "" {
		vb.RequiredField("set")
	}
	if math.IsNaN(bonusSetChance) || bonusSetChance < 0 || bonusSetChance > 1 {
		vb.Fieldf("bonus_set_chance", "must be between 0.0 and 1.0, got %v", bonusSetChance)
	}
	checkArity(vb, "hero_rarity", hero, len(upgradeOutcomes))
	checkArity(vb, "command_rarity_open", commandOpen, len(openOutcomes))
	checkArity(vb, "command_rarity_upgrade", commandUpgrade, len(upgradeOutcomes))
	checkArity(vb, "basic_rarity_upgrade", basicUpgrade, len(upgradeOutcomes))

	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &Rules{
		Set:                  set,
		BonusSetChance:       bonusSetChance,
		HeroRarity:           hero,
		CommandRarityOpen:    commandOpen,
		CommandRarityUpgrade: commandUpgrade,
		BasicRarityUpgrade:   basicUpgrade,
		RarityPolicy:         RarityIgnore,
	}, nil
}

func checkArity(vb *errors.ValidationBuilder, field string, d *distribution.Distribution, want int) {
	if d == nil {
		vb.RequiredField(field)
		return
	}
	if d.Len() != want {
		vb.Fieldf(field, "must have %d outcomes, got %d", want, d.Len())
	}
}

// DefaultRules returns the rules the simulator ships with for a set
func DefaultRules(set entities.Set) *Rules {
	rules, err := NewRules(set, 0.02,
		distribution.MustNew(0.8, 0.2),
		distribution.MustNew(0.7, 0.2, 0.1),
		distribution.MustNew(0.75, 0.25),
		distribution.MustNew(0.7, 0.3),
	)
	if err != nil {
		panic(err)
	}
	return rules
}

// WithRarityPolicy returns a copy of the rules using policy
func (r *Rules) WithRarityPolicy(policy RarityPolicy) *Rules {
	out := *r
	out.RarityPolicy = policy
	return &out
}

// WithSet returns a copy of the rules targeting set
func (r *Rules) WithSet(set entities.Set) *Rules {
	out := *r
	out.Set = set
	return &out
}

// RollBonusSubstitution reports whether one pack position is replaced from
// the bonus set. Each position rolls independently.
func (r *Rules) RollBonusSubstitution(src random.Source) bool {
	return src.Float64() < r.BonusSetChance
}
