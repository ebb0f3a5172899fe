package testutils

import (
	"fmt"

	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
)

// Labels as the original card database spells them
const (
	RarityBronzeLabel = "Бронза"
	RaritySilverLabel = "Серебро"
	RarityGoldLabel   = "Золото"

	SlotHeroLabel    = "Герой"
	SlotCommandLabel = "Приказ"
	SlotBasicLabel   = "Основная карта"
)

// CardRecord builds a store record with sensible defaults
func CardRecord(set string, position int, slot, rarity string) cards.Record {
	return cards.Record{
		Name:          fmt.Sprintf("%s card %d", set, position),
		PositionInSet: position,
		RarityName:    rarity,
		SlotName:      slot,
		SetName:       set,
	}
}

// FullSetRecords returns a set with `perCell` cards for every slot and rarity
// pair, numbered from 1
func FullSetRecords(set string, perCell int) []cards.Record {
	slots := []string{SlotHeroLabel, SlotCommandLabel, SlotBasicLabel}
	rarities := []string{RarityBronzeLabel, RaritySilverLabel, RarityGoldLabel}

	records := make([]cards.Record, 0, len(slots)*len(rarities)*perCell)
	pos := 1
	for _, slot := range slots {
		for _, rarity := range rarities {
			for i := 0; i < perCell; i++ {
				records = append(records, CardRecord(set, pos, slot, rarity))
				pos++
			}
		}
	}
	return records
}
