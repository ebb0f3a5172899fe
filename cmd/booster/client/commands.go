package client

import (
	"context"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	v1 "github.com/KirkDiggler/booster-sim/internal/handlers/booster/v1"
)

var (
	set           string
	seed          string
	trials        int
	maxPacks      int
	includeTrials bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Open one pack on the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return call(cmd.OutOrStdout(), requestFields(), method((*v1.Client).GenerateBooster))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulation on the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields := requestFields()
		fields["trials"] = trials
		if maxPacks > 0 {
			fields["max_packs_per_trial"] = maxPacks
		}
		fields["include_trials"] = includeTrials
		return call(cmd.OutOrStdout(), fields, method((*v1.Client).Simulate))
	},
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the sets the server knows",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return call(cmd.OutOrStdout(), map[string]any{}, method((*v1.Client).ListSets))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, simulateCmd} {
		cmd.Flags().StringVar(&set, "set", "", "set code, name or alias")
		cmd.Flags().StringVar(&seed, "seed", "", "seed for a reproducible result")
	}
	simulateCmd.Flags().IntVar(&trials, "trials", 1000, "number of trials")
	simulateCmd.Flags().IntVar(&maxPacks, "max-packs", 0, "pack limit per trial")
	simulateCmd.Flags().BoolVar(&includeTrials, "include-trials", false, "include per-trial pack counts")
}

func requestFields() map[string]any {
	fields := map[string]any{}
	if set != "" {
		fields["set"] = set
	}
	if seed != "" {
		// sent as a string so seeds above 2^53 survive the trip
		fields["seed"] = seed
	}
	return fields
}

func method(fn func(*v1.Client, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)) callFunc {
	return func(ctx context.Context, client *v1.Client, req *structpb.Struct) (*structpb.Struct, error) {
		return fn(client, ctx, req)
	}
}
