package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
)

var (
	simulateSet      string
	simulateSeed     string
	simulateTrials   int
	simulateMaxPacks int
	simulateJSON     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate how many packs it takes to pull a bonus card",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateSet, "set", "", "set code, name or alias (default BOOSTER_SET)")
	simulateCmd.Flags().StringVar(&simulateSeed, "seed", "", "seed for a reproducible run")
	simulateCmd.Flags().IntVar(&simulateTrials, "trials", 1000, "number of trials")
	simulateCmd.Flags().IntVar(&simulateMaxPacks, "max-packs", 0, "pack limit per trial (0 uses the default)")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "print the result as JSON, including per-trial counts")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	seed, err := packs.ParseSeed(simulateSeed)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	out, err := a.packs.Simulate(ctx, &packs.SimulateInput{
		Set:              simulateSet,
		Seed:             seed,
		Trials:           simulateTrials,
		MaxPacksPerTrial: simulateMaxPacks,
	})
	if err != nil {
		return err
	}

	view := conversion.NewSimulationView(out.Set, out.Result, simulateJSON)
	if simulateJSON {
		return writeJSON(cmd.OutOrStdout(), view)
	}
	renderSimulation(cmd.OutOrStdout(), view)
	return nil
}
