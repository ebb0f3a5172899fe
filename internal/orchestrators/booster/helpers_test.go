package booster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/booster-sim/internal/catalog"
	"github.com/KirkDiggler/booster-sim/internal/distribution"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
	cardsmock "github.com/KirkDiggler/booster-sim/internal/repositories/cards/mock"
	"github.com/KirkDiggler/booster-sim/internal/testutils"
	"github.com/KirkDiggler/booster-sim/internal/testutils/mocks"
)

// loadedCatalog returns a catalog holding bonus and KOV records, both loaded
func loadedCatalog(t *testing.T, bonus, kov []cards.Record) *catalog.Catalog {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := cardsmock.NewMockRepository(ctrl)
	mocks.ExpectSetListing(store, "HOF", bonus)
	mocks.ExpectSetListing(store, "KOV", kov)

	cat, err := catalog.New(context.Background(), &catalog.Config{Store: store})
	require.NoError(t, err)
	require.NoError(t, cat.EnsureLoaded(context.Background(), entities.SetKOV))
	return cat
}

// guaranteedRules always picks Gold for hero and both upgrades, Silver for the
// open command slot
func guaranteedRules(t *testing.T, bonusChance float64) *booster.Rules {
	t.Helper()

	rules, err := booster.NewRules(entities.SetKOV, bonusChance,
		distribution.MustNew(0, 1),
		distribution.MustNew(0, 1, 0),
		distribution.MustNew(0, 1),
		distribution.MustNew(0, 1),
	)
	require.NoError(t, err)
	return rules
}

func kovFull() []cards.Record {
	return testutils.FullSetRecords("KOV", 2)
}

// rulesWithChance builds the default KOV rules with a different bonus chance
func rulesWithChance(t *testing.T, chance float64) *booster.Rules {
	t.Helper()

	defaults := booster.DefaultRules(entities.SetKOV)
	rules, err := booster.NewRules(entities.SetKOV, chance,
		defaults.HeroRarity,
		defaults.CommandRarityOpen,
		defaults.CommandRarityUpgrade,
		defaults.BasicRarityUpgrade,
	)
	require.NoError(t, err)
	return rules
}
