package booster_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/booster-sim/internal/distribution"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

func TestNewRulesValidation(t *testing.T) {
	two := distribution.MustNew(0.5, 0.5)
	three := distribution.MustNew(0.2, 0.3, 0.5)

	testCases := []struct {
		name    string
		set     entities.Set
		chance  float64
		dists   [4]*distribution.Distribution
		wantErr bool
	}{
		{name: "valid", set: entities.SetKOV, chance: 0.02, dists: [4]*distribution.Distribution{two, three, two, two}},
		{name: "chance zero", set: entities.SetKOV, chance: 0, dists: [4]*distribution.Distribution{two, three, two, two}},
		{name: "chance one", set: entities.SetKOV, chance: 1, dists: [4]*distribution.Distribution{two, three, two, two}},
		{name: "chance negative", set: entities.SetKOV, chance: -0.01, dists: [4]*distribution.Distribution{two, three, two, two}, wantErr: true},
		{name: "chance above one", set: entities.SetKOV, chance: 1.01, dists: [4]*distribution.Distribution{two, three, two, two}, wantErr: true},
		{name: "chance NaN", set: entities.SetKOV, chance: math.NaN(), dists: [4]*distribution.Distribution{two, three, two, two}, wantErr: true},
		{name: "missing set", chance: 0.5, dists: [4]*distribution.Distribution{two, three, two, two}, wantErr: true},
		{name: "nil distribution", set: entities.SetKOV, chance: 0.5, dists: [4]*distribution.Distribution{nil, three, two, two}, wantErr: true},
		{name: "hero with three outcomes", set: entities.SetKOV, chance: 0.5, dists: [4]*distribution.Distribution{three, three, two, two}, wantErr: true},
		{name: "open with two outcomes", set: entities.SetKOV, chance: 0.5, dists: [4]*distribution.Distribution{two, two, two, two}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := booster.NewRules(tc.set, tc.chance, tc.dists[0], tc.dists[1], tc.dists[2], tc.dists[3])
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booster.RarityIgnore, rules.RarityPolicy)
		})
	}
}

func TestRollBonusSubstitution(t *testing.T) {
	half := rulesWithChance(t, 0.5)
	assert.True(t, half.RollBonusSubstitution(random.NewScripted(0.49)))
	assert.False(t, half.RollBonusSubstitution(random.NewScripted(0.5)))

	always := rulesWithChance(t, 1)
	assert.True(t, always.RollBonusSubstitution(random.NewScripted(0.999999)))

	never := rulesWithChance(t, 0)
	assert.False(t, never.RollBonusSubstitution(random.NewScripted(0)))
}

func TestDefaultRules(t *testing.T) {
	rules := booster.DefaultRules(entities.SetKOV)

	assert.Equal(t, entities.SetKOV, rules.Set)
	assert.Equal(t, 0.02, rules.BonusSetChance)
	assert.Equal(t, []float64{0.8, 0.2}, rules.HeroRarity.Values())
	assert.Equal(t, []float64{0.7, 0.2, 0.1}, rules.CommandRarityOpen.Values())
	assert.Equal(t, []float64{0.75, 0.25}, rules.CommandRarityUpgrade.Values())
	assert.Equal(t, []float64{0.7, 0.3}, rules.BasicRarityUpgrade.Values())
}

func TestRulesCopies(t *testing.T) {
	rules := booster.DefaultRules(entities.SetKOV)

	filtered := rules.WithRarityPolicy(booster.RarityFilter)
	moved := rules.WithSet(entities.SetBAZ)

	assert.Equal(t, booster.RarityIgnore, rules.RarityPolicy)
	assert.Equal(t, booster.RarityFilter, filtered.RarityPolicy)
	assert.Equal(t, entities.SetKOV, rules.Set)
	assert.Equal(t, entities.SetBAZ, moved.Set)
}

func TestParseRarityPolicy(t *testing.T) {
	p, err := booster.ParseRarityPolicy("")
	require.NoError(t, err)
	assert.Equal(t, booster.RarityIgnore, p)

	p, err = booster.ParseRarityPolicy("filter")
	require.NoError(t, err)
	assert.Equal(t, booster.RarityFilter, p)

	_, err = booster.ParseRarityPolicy("strict")
	assert.True(t, errors.IsInvalidArgument(err))
}
