package booster

import (
	"github.com/KirkDiggler/booster-sim/internal/distribution"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

// Drawer picks cards from a loaded catalog
type Drawer interface {
	Draw(slot entities.Slot, set entities.Set, preferBonus bool, src random.Source) (entities.Card, bool)
	DrawRarity(slot entities.Slot, set entities.Set, rarity entities.Rarity, preferBonus bool, src random.Source) (entities.Card, bool)
}

// position describes how one pack position picks its rarity
type position struct {
	slot     entities.Slot
	fixed    entities.Rarity
	dist     func(*Rules) *distribution.Distribution
	outcomes []entities.Rarity
}

func (p position) rarity(rules *Rules, src random.Source) entities.Rarity {
	if p.dist == nil {
		return p.fixed
	}
	return p.outcomes[p.dist(rules).Sample(src)]
}

var recipe = func() [PackSize]position {
	var r [PackSize]position
	r[0] = position{slot: entities.SlotHero, dist: func(r *Rules) *distribution.Distribution { return r.HeroRarity }, outcomes: upgradeOutcomes}
	r[1] = position{slot: entities.SlotCommand, dist: func(r *Rules) *distribution.Distribution { return r.CommandRarityOpen }, outcomes: openOutcomes}
	r[2] = position{slot: entities.SlotCommand, dist: func(r *Rules) *distribution.Distribution { return r.CommandRarityUpgrade }, outcomes: upgradeOutcomes}
	r[3] = position{slot: entities.SlotCommand, fixed: entities.RarityBronze}
	r[4] = position{slot: entities.SlotBasicCard, fixed: entities.RarityGold}
	r[5] = position{slot: entities.SlotBasicCard, dist: func(r *Rules) *distribution.Distribution { return r.BasicRarityUpgrade }, outcomes: upgradeOutcomes}
	r[6] = position{slot: entities.SlotBasicCard, fixed: entities.RaritySilver}
	for i := 7; i < PackSize; i++ {
		r[i] = position{slot: entities.SlotBasicCard, fixed: entities.RarityBronze}
	}
	return r
}()

// Assemble draws a full pack from cat. For each position it resolves the
// target rarity, rolls the bonus substitution and then draws, in that order.
// The first empty draw stops assembly and is reported as an Exhaustion.
// The returned pack has no ID or timestamp.
func Assemble(cat Drawer, rules *Rules, src random.Source) (*Pack, *Exhaustion) {
	pack := &Pack{Set: rules.Set}

	for i, pos := range recipe {
		rarity := pos.rarity(rules, src)
		bonus := rules.RollBonusSubstitution(src)

		var (
			card entities.Card
			ok   bool
		)
		if rules.RarityPolicy == RarityFilter {
			card, ok = cat.DrawRarity(pos.slot, rules.Set, rarity, bonus, src)
		} else {
			card, ok = cat.Draw(pos.slot, rules.Set, bonus, src)
		}
		if !ok {
			return nil, &Exhaustion{
				Position:     i,
				Slot:         pos.slot,
				Set:          rules.Set,
				Bonus:        bonus,
				TargetRarity: rarity,
			}
		}

		pack.Entries[i] = Entry{
			Position:     i,
			Slot:         pos.slot,
			TargetRarity: rarity,
			BonusRolled:  bonus,
			Card:         card,
		}
	}

	return pack, nil
}
