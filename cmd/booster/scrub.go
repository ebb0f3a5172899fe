package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/booster-sim/internal/config"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
)

var scrubApply bool

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Find (and optionally delete) corrupt card records in a Redis store",
	Long: `Scan every set in the Redis card store for records that do not decode,
fail validation or are filed under the wrong position. Nothing is deleted
without --apply.`,
	RunE: runScrub,
}

func init() {
	scrubCmd.Flags().BoolVar(&scrubApply, "apply", false, "delete the corrupt records")
}

func runScrub(cmd *cobra.Command, _ []string) error {
	if cfg.Store != config.StoreRedis {
		return errors.FailedPreconditionf("scrub needs the redis store, configured store is %s", cfg.Store)
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	redisStore, ok := store.(*cards.Redis)
	if !ok {
		return errors.Internalf("redis store has unexpected type %T", store)
	}

	corrupt, err := redisStore.FindCorrupt(ctx)
	if err != nil {
		return err
	}
	if len(corrupt) == 0 {
		cmd.Println("No corrupt records found")
		return nil
	}

	for _, c := range corrupt {
		cmd.Printf("✗ %s position %s: %s\n", c.SetCode, c.Field, c.Reason)
	}
	if !scrubApply {
		cmd.Printf("%d corrupt records; rerun with --apply to delete them\n", len(corrupt))
		return nil
	}

	deleted, err := redisStore.DeleteRecords(ctx, corrupt)
	if err != nil {
		return err
	}
	cmd.Printf("Deleted %d records\n", deleted)
	return nil
}
