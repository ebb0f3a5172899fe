package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
)

var (
	generateSet     string
	generateSeed    string
	generateRetries int
	generateJSON    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Open one booster pack",
	Long: `Open one booster pack from the configured card store. Examples:

  booster generate
  booster generate --set BAZ --seed 42
  booster generate --json`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateSet, "set", "", "set code, name or alias (default BOOSTER_SET)")
	generateCmd.Flags().StringVar(&generateSeed, "seed", "", "seed for a reproducible pack")
	generateCmd.Flags().IntVar(&generateRetries, "retries", 3, "attempts to retry an exhausted pack (unseeded only)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the pack as JSON")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	seed, err := packs.ParseSeed(generateSeed)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	out, err := openWithRetry(ctx, a.packs, &packs.OpenInput{Set: generateSet, Seed: seed}, generateRetries)
	if err != nil {
		return err
	}

	if generateJSON {
		return writeJSON(cmd.OutOrStdout(), conversion.NewPackView(out.Pack))
	}
	renderPack(cmd.OutOrStdout(), out.Pack)
	return nil
}

// openWithRetry retries exhausted packs; a seeded pack would exhaust the same
// way every time so it is tried once
func openWithRetry(ctx context.Context, svc packs.Service, input *packs.OpenInput, retries int) (*packs.OpenOutput, error) {
	if input.Seed != nil {
		retries = 0
	}
	for attempt := 0; ; attempt++ {
		out, err := svc.Open(ctx, input)
		if err == nil || !errors.IsResourceExhausted(err) || attempt >= retries {
			return out, err
		}
	}
}
