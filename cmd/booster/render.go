package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
)

var (
	bronzeColor = color.New(color.FgYellow)
	silverColor = color.New(color.FgHiWhite)
	goldColor   = color.New(color.FgHiYellow, color.Bold)
	bonusColor  = color.New(color.FgHiMagenta, color.Bold)
	headerColor = color.New(color.FgCyan, color.Bold)
)

func rarityColor(r entities.Rarity) *color.Color {
	switch r {
	case entities.RaritySilver:
		return silverColor
	case entities.RarityGold:
		return goldColor
	default:
		return bronzeColor
	}
}

func renderPack(w io.Writer, pack *booster.Pack) {
	headerColor.Fprintf(w, "%s booster %s\n", pack.Set.Name, pack.ID)
	for _, e := range pack.Entries {
		marker := "  "
		if e.Card.Set.Bonus {
			marker = bonusColor.Sprint("★ ")
		}
		fmt.Fprintf(w, "%2d %s%s\n", e.Position, marker, rarityColor(e.Card.Rarity).Sprint(e.Card.String()))
	}
	if n := pack.BonusCount(); n > 0 {
		bonusColor.Fprintf(w, "%d bonus card(s)\n", n)
	}
}

func renderSimulation(w io.Writer, view conversion.SimulationView) {
	headerColor.Fprintf(w, "%s: %d trials\n", view.Set, view.Trials)
	fmt.Fprintf(w, "  packs until a bonus card: mean %.2f, min %d, max %d\n", view.Mean, view.Min, view.Max)
	if view.Exhausted > 0 {
		fmt.Fprintf(w, "  exhausted packs: %d\n", view.Exhausted)
	}
	if view.Unfinished > 0 {
		bonusColor.Fprintf(w, "  trials that hit the pack limit: %d\n", view.Unfinished)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
