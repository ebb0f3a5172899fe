// Package entities provides the card value types shared by the catalog, the
// booster orchestrator and the stores.
package entities

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

// Rarity is the tier a card is printed at
type Rarity string

// Rarity constants
const (
	RarityBronze Rarity = "bronze"
	RaritySilver Rarity = "silver"
	RarityGold   Rarity = "gold"
)

// Slot is the structural role a card occupies in a pack
type Slot string

// Slot constants
const (
	SlotHero      Slot = "hero"
	SlotCommand   Slot = "command"
	SlotBasicCard Slot = "basic_card"
)

// Slots lists every slot in pack order
func Slots() []Slot {
	return []Slot{SlotHero, SlotCommand, SlotBasicCard}
}

// Rarities lists every rarity from lowest to highest
func Rarities() []Rarity {
	return []Rarity{RarityBronze, RaritySilver, RarityGold}
}

// rarityAliases maps lowercased store labels to rarities. The Russian labels
// are what the upstream card site and the original database use.
var rarityAliases = map[string]Rarity{
	"bronze":  RarityBronze,
	"silver":  RaritySilver,
	"gold":    RarityGold,
	"бронза":  RarityBronze,
	"серебро": RaritySilver,
	"золото":  RarityGold,
}

var slotAliases = map[string]Slot{
	"hero":           SlotHero,
	"command":        SlotCommand,
	"basic_card":     SlotBasicCard,
	"basic card":     SlotBasicCard,
	"basic":          SlotBasicCard,
	"герой":          SlotHero,
	"приказ":         SlotCommand,
	"основная карта": SlotBasicCard,
}

// ParseRarity converts a store or user supplied label into a Rarity
func ParseRarity(label string) (Rarity, error) {
	if r, ok := rarityAliases[normalize(label)]; ok {
		return r, nil
	}
	return "", errors.InvalidArgumentf("unknown rarity: %q", label)
}

// ParseSlot converts a store or user supplied label into a Slot
func ParseSlot(label string) (Slot, error) {
	if s, ok := slotAliases[normalize(label)]; ok {
		return s, nil
	}
	return "", errors.InvalidArgumentf("unknown slot: %q", label)
}

// DisplayName returns the human readable rarity name
func (r Rarity) DisplayName() string {
	switch r {
	case RarityBronze:
		return "Bronze"
	case RaritySilver:
		return "Silver"
	case RarityGold:
		return "Gold"
	default:
		return string(r)
	}
}

// DisplayName returns the human readable slot name
func (s Slot) DisplayName() string {
	switch s {
	case SlotHero:
		return "Hero"
	case SlotCommand:
		return "Command"
	case SlotBasicCard:
		return "Basic card"
	default:
		return string(s)
	}
}

// Card is a single printed card. Cards are values; copying one is cheap.
type Card struct {
	Name          string `json:"name"`
	PositionInSet int    `json:"position_in_set"`
	Rarity        Rarity `json:"rarity"`
	Slot          Slot   `json:"slot"`
	Set           Set    `json:"set"`
	ImageURL      string `json:"image_url,omitempty"`
}

// String renders the card the way the CLI prints it
func (c Card) String() string {
	return fmt.Sprintf("%s #%d %s (%s, %s)", c.Set.Code, c.PositionInSet, c.Name, c.Slot.DisplayName(), c.Rarity.DisplayName())
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
