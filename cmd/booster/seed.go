package main

import (
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
)

var (
	seedFile string
	seedSet  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load card records from a YAML file into the card store",
	Long: `Load card records into the configured store. The file is a YAML list:

  - name: Archivist
    position_in_set: 1
    rarity: Золото
    slot: Герой
    set: KOV

Records without a set go to --set. Use --file - to read stdin.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "cards.yaml", "YAML file with card records")
	seedCmd.Flags().StringVar(&seedSet, "set", "", "set for records that do not name one (default BOOSTER_SET)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	var r io.Reader = cmd.InOrStdin()
	if seedFile != "-" {
		f, err := os.Open(seedFile)
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to open %s", seedFile)
		}
		defer f.Close()
		r = f
	}

	sets, err := cfg.Sets()
	if err != nil {
		return err
	}
	fallback := seedSet
	if fallback == "" {
		fallback = cfg.Set
	}

	bySet, err := readSeedRecords(r, sets, fallback)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	codes := make([]string, 0, len(bySet))
	for code := range bySet {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		out, err := store.Upsert(ctx, cards.UpsertInput{SetCode: code, Records: bySet[code]})
		if err != nil {
			return errors.Wrapf(err, "failed to seed set %s", code)
		}
		cmd.Printf("%s: stored %d records\n", code, out.Stored)
	}
	return nil
}

// readSeedRecords decodes a YAML record list and groups it by canonical set
// code. Records keep the set label they were written with.
func readSeedRecords(r io.Reader, sets []entities.Set, fallback string) (map[string][]cards.Record, error) {
	var records []cards.Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidArgument("seed file has no records")
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode seed file")
	}
	if len(records) == 0 {
		return nil, errors.InvalidArgument("seed file has no records")
	}

	bySet := make(map[string][]cards.Record)
	for i, rec := range records {
		label := rec.SetName
		if label == "" {
			label = fallback
		}
		set, ok := entities.FindSet(sets, label)
		if !ok {
			return nil, errors.InvalidArgumentf("record %d (%q): unknown set %q", i, rec.Name, label)
		}
		bySet[set.Code] = append(bySet[set.Code], rec)
	}
	return bySet, nil
}
