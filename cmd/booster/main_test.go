package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
	packsmock "github.com/KirkDiggler/booster-sim/internal/services/packs/mock"
)

func TestReadSeedRecordsGroupsBySet(t *testing.T) {
	input := `
- name: Archivist
  position_in_set: 1
  rarity: Золото
  slot: Герой
  set: КОВ
- name: Militia
  position_in_set: 2
  rarity: bronze
  slot: basic
- name: Banner
  position_in_set: 1
  rarity: silver
  slot: command
  set: Hall of Fame
`
	bySet, err := readSeedRecords(strings.NewReader(input), entities.DefaultSets(), "KOV")
	require.NoError(t, err)

	require.Len(t, bySet["KOV"], 2)
	require.Len(t, bySet["HOF"], 1)
	assert.Equal(t, "КОВ", bySet["KOV"][0].SetName)
	assert.Equal(t, "", bySet["KOV"][1].SetName)
	assert.Equal(t, "Banner", bySet["HOF"][0].Name)
}

func TestReadSeedRecordsRejectsUnknownSet(t *testing.T) {
	input := `
- name: Stranger
  position_in_set: 1
  rarity: gold
  slot: hero
  set: XYZ
`
	_, err := readSeedRecords(strings.NewReader(input), entities.DefaultSets(), "KOV")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestReadSeedRecordsRejectsEmptyFile(t *testing.T) {
	_, err := readSeedRecords(strings.NewReader(""), entities.DefaultSets(), "KOV")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = readSeedRecords(strings.NewReader("not: a list"), entities.DefaultSets(), "KOV")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestOpenWithRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := packsmock.NewMockService(ctrl)
	exhausted := packs.ExhaustionError(&booster.Exhaustion{Position: 1, Slot: entities.SlotCommand, Set: entities.SetKOV})
	want := &packs.OpenOutput{Pack: &booster.Pack{ID: "pack_1"}}

	gomock.InOrder(
		svc.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, exhausted),
		svc.EXPECT().Open(gomock.Any(), gomock.Any()).Return(want, nil),
	)

	got, err := openWithRetry(context.Background(), svc, &packs.OpenInput{}, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenWithRetryGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := packsmock.NewMockService(ctrl)
	exhausted := packs.ExhaustionError(&booster.Exhaustion{Position: 1, Slot: entities.SlotCommand, Set: entities.SetKOV})

	svc.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, exhausted).Times(3)

	_, err := openWithRetry(context.Background(), svc, &packs.OpenInput{}, 2)
	assert.True(t, errors.IsResourceExhausted(err))
}

func TestOpenWithRetrySeededTriesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := packsmock.NewMockService(ctrl)
	exhausted := packs.ExhaustionError(&booster.Exhaustion{Position: 1, Slot: entities.SlotCommand, Set: entities.SetKOV})
	seed := uint64(9)

	svc.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, exhausted).Times(1)

	_, err := openWithRetry(context.Background(), svc, &packs.OpenInput{Seed: &seed}, 5)
	assert.True(t, errors.IsResourceExhausted(err))
}

func TestOpenWithRetryPassesOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := packsmock.NewMockService(ctrl)

	svc.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("unknown set")).Times(1)

	_, err := openWithRetry(context.Background(), svc, &packs.OpenInput{Set: "XYZ"}, 5)
	assert.True(t, errors.IsNotFound(err))
}

func TestRenderPack(t *testing.T) {
	color.NoColor = true

	pack := &booster.Pack{ID: "pack_1", Set: entities.SetKOV, GeneratedAt: time.Now()}
	for i := range pack.Entries {
		pack.Entries[i] = booster.Entry{
			Position: i,
			Card: entities.Card{
				Name: "Militia", PositionInSet: i + 1,
				Rarity: entities.RarityBronze, Slot: entities.SlotBasicCard, Set: entities.SetKOV,
			},
		}
	}
	pack.Entries[0].Card = entities.Card{
		Name: "Founder", PositionInSet: 7,
		Rarity: entities.RarityGold, Slot: entities.SlotHero, Set: entities.SetHallOfFame,
	}

	var buf bytes.Buffer
	renderPack(&buf, pack)

	out := buf.String()
	assert.Contains(t, out, "Kovcheg booster pack_1")
	assert.Contains(t, out, " 0 ★ HOF #7 Founder (Hero, Gold)")
	assert.Contains(t, out, "17   KOV #18 Militia (Basic card, Bronze)")
	assert.Contains(t, out, "1 bonus card(s)")
}

func TestRenderSimulation(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderSimulation(&buf, conversion.SimulationView{Set: "KOV", Trials: 10, Mean: 3.5, Min: 1, Max: 9, Unfinished: 2})

	out := buf.String()
	assert.Contains(t, out, "KOV: 10 trials")
	assert.Contains(t, out, "mean 3.50, min 1, max 9")
	assert.Contains(t, out, "trials that hit the pack limit: 2")
	assert.NotContains(t, out, "exhausted")
}
