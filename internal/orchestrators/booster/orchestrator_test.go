package booster_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/booster-sim/internal/catalog"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/pkg/clock"
	"github.com/KirkDiggler/booster-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/booster-sim/internal/random"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
	cardsmock "github.com/KirkDiggler/booster-sim/internal/repositories/cards/mock"
	"github.com/KirkDiggler/booster-sim/internal/testutils"
	"github.com/KirkDiggler/booster-sim/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *cardsmock.MockRepository
	catalog *catalog.Catalog
	clock   *clock.Fixed
	service booster.Service
	ctx     context.Context
	now     time.Time
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = cardsmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	s.clock = clock.NewFixed(s.now)

	mocks.ExpectSetListing(s.store, "HOF", []cards.Record{
		testutils.CardRecord("HOF", 1, testutils.SlotHeroLabel, testutils.RarityGoldLabel),
	})
	cat, err := catalog.New(s.ctx, &catalog.Config{Store: s.store})
	s.Require().NoError(err)
	s.catalog = cat

	svc, err := booster.NewOrchestrator(&booster.Config{
		Catalog:     cat,
		IDGenerator: idgen.NewSequential("pack"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorRequiresCatalog() {
	_, err := booster.NewOrchestrator(&booster.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = booster.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerateValidatesInput() {
	_, err := s.service.Generate(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service.Generate(s.ctx, &booster.GenerateInput{Random: random.NewSeeded(1)})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service.Generate(s.ctx, &booster.GenerateInput{Rules: booster.DefaultRules(entities.SetKOV)})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerateLoadsSetOnce() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	rules := booster.DefaultRules(entities.SetKOV)
	src := random.NewSeeded(4)

	first, err := s.service.Generate(s.ctx, &booster.GenerateInput{Rules: rules, Random: src})
	s.Require().NoError(err)
	s.Require().NotNil(first.Pack)
	s.Nil(first.Exhaustion)
	s.Equal("pack_1", first.Pack.ID)
	s.Equal(s.now, first.Pack.GeneratedAt)
	s.Equal(entities.SetKOV, first.Pack.Set)

	s.clock.Advance(time.Second)
	second, err := s.service.Generate(s.ctx, &booster.GenerateInput{Rules: rules, Random: src})
	s.Require().NoError(err)
	s.Equal("pack_2", second.Pack.ID)
	s.Equal(s.now.Add(time.Second), second.Pack.GeneratedAt)
}

func (s *OrchestratorTestSuite) TestGenerateLoadFailure() {
	mocks.ExpectSetListingError(s.store, "KOV", errors.Unavailable("connection refused"))

	_, err := s.service.Generate(s.ctx, &booster.GenerateInput{
		Rules:  booster.DefaultRules(entities.SetKOV),
		Random: random.NewSeeded(1),
	})
	s.Error(err)
	s.True(errors.IsUnavailable(err))
	s.False(s.catalog.HasSet(entities.SetKOV))
}

func (s *OrchestratorTestSuite) TestGenerateClassificationFailure() {
	mocks.ExpectSetListing(s.store, "KOV", []cards.Record{
		testutils.CardRecord("KOV", 1, "Заклинание", testutils.RarityGoldLabel),
	})

	_, err := s.service.Generate(s.ctx, &booster.GenerateInput{
		Rules:  booster.DefaultRules(entities.SetKOV),
		Random: random.NewSeeded(1),
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestGenerateUnknownSet() {
	_, err := s.service.Generate(s.ctx, &booster.GenerateInput{
		Rules:  booster.DefaultRules(entities.Set{Code: "XYZ", Name: "Unknown"}),
		Random: random.NewSeeded(1),
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGenerateExhaustionIsNotAnError() {
	mocks.ExpectSetListing(s.store, "KOV", []cards.Record{
		testutils.CardRecord("KOV", 1, testutils.SlotHeroLabel, testutils.RarityGoldLabel),
	})
	rules := rulesWithChance(s.T(), 0)

	out, err := s.service.Generate(s.ctx, &booster.GenerateInput{Rules: rules, Random: random.NewSeeded(1)})
	s.Require().NoError(err)
	s.Nil(out.Pack)
	s.Require().NotNil(out.Exhaustion)
	s.Equal(1, out.Exhaustion.Position)
	s.Equal(entities.SlotCommand, out.Exhaustion.Slot)
}

func (s *OrchestratorTestSuite) TestConcurrentGenerateOnSharedSource() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	rules := booster.DefaultRules(entities.SetKOV)
	src := random.NewSeeded(99)

	var wg sync.WaitGroup
	ids := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.service.Generate(s.ctx, &booster.GenerateInput{Rules: rules, Random: src})
			if s.NoError(err) && s.NotNil(out.Pack) {
				ids <- out.Pack.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	s.Len(seen, 16)
}

func (s *OrchestratorTestSuite) TestSimulateAlwaysBonus() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	rules := rulesWithChance(s.T(), 1)

	out, err := s.service.Simulate(s.ctx, &booster.SimulateInput{
		Rules:  rules,
		Random: random.NewSeeded(8),
		Trials: 25,
	})
	s.Require().NoError(err)
	s.Len(out.PacksOpened, 25)
	s.Equal(1.0, out.Mean)
	s.Equal(1, out.Min)
	s.Equal(1, out.Max)
	s.Zero(out.Exhausted)
	s.Zero(out.Unfinished)
}

func (s *OrchestratorTestSuite) TestSimulateNeverBonusIsBounded() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	rules := rulesWithChance(s.T(), 0)

	out, err := s.service.Simulate(s.ctx, &booster.SimulateInput{
		Rules:            rules,
		Random:           random.NewSeeded(8),
		Trials:           4,
		MaxPacksPerTrial: 3,
	})
	s.Require().NoError(err)
	s.Equal([]int{3, 3, 3, 3}, out.PacksOpened)
	s.Equal(4, out.Unfinished)
	s.Equal(3.0, out.Mean)
}

func (s *OrchestratorTestSuite) TestSimulateCountsExhaustedAttempts() {
	mocks.ExpectSetListing(s.store, "KOV", []cards.Record{
		testutils.CardRecord("KOV", 1, testutils.SlotHeroLabel, testutils.RarityGoldLabel),
	})
	rules := rulesWithChance(s.T(), 0)

	out, err := s.service.Simulate(s.ctx, &booster.SimulateInput{
		Rules:            rules,
		Random:           random.NewSeeded(8),
		Trials:           2,
		MaxPacksPerTrial: 5,
	})
	s.Require().NoError(err)
	s.Equal(10, out.Exhausted)
	s.Equal(2, out.Unfinished)
	s.Equal([]int{5, 5}, out.PacksOpened)
}

func (s *OrchestratorTestSuite) TestSimulateValidation() {
	rules := booster.DefaultRules(entities.SetKOV)

	testCases := []struct {
		name  string
		input *booster.SimulateInput
	}{
		{name: "nil input"},
		{name: "no trials", input: &booster.SimulateInput{Rules: rules, Random: random.NewSeeded(1)}},
		{name: "too many trials", input: &booster.SimulateInput{Rules: rules, Random: random.NewSeeded(1), Trials: booster.MaxTrials + 1}},
		{name: "negative max", input: &booster.SimulateInput{Rules: rules, Random: random.NewSeeded(1), Trials: 1, MaxPacksPerTrial: -1}},
		{name: "no random", input: &booster.SimulateInput{Rules: rules, Trials: 1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Simulate(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestSimulateHonoursCancellation() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	ctx, cancel := context.WithCancel(s.ctx)
	s.Require().NoError(s.catalog.EnsureLoaded(ctx, entities.SetKOV))
	cancel()

	_, err := s.service.Simulate(ctx, &booster.SimulateInput{
		Rules:  booster.DefaultRules(entities.SetKOV),
		Random: random.NewSeeded(1),
		Trials: 10,
	})
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
}

// cancelingCatalog cancels a context on the first card drawn
type cancelingCatalog struct {
	*catalog.Catalog
	cancel context.CancelFunc
	draws  atomic.Int64
}

func (c *cancelingCatalog) Draw(slot entities.Slot, set entities.Set, preferBonus bool, src random.Source) (entities.Card, bool) {
	if c.draws.Add(1) == 1 {
		c.cancel()
	}
	return c.Catalog.Draw(slot, set, preferBonus, src)
}

func (s *OrchestratorTestSuite) TestSimulateStopsBetweenPacksWhenCanceled() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())
	s.Require().NoError(s.catalog.EnsureLoaded(s.ctx, entities.SetKOV))

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	cat := &cancelingCatalog{Catalog: s.catalog, cancel: cancel}
	svc, err := booster.NewOrchestrator(&booster.Config{Catalog: cat})
	s.Require().NoError(err)

	out, err := svc.Simulate(ctx, &booster.SimulateInput{
		Rules:            rulesWithChance(s.T(), 0),
		Random:           random.NewSeeded(1),
		Trials:           1,
		MaxPacksPerTrial: 50_000,
	})
	s.Nil(out)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
	// the pack in progress finishes, the next one never starts
	s.Equal(int64(booster.PackSize), cat.draws.Load())
}

func (s *OrchestratorTestSuite) TestGenerateAcceptsLowercaseSetCode() {
	mocks.ExpectSetListing(s.store, "KOV", kovFull())

	out, err := s.service.Generate(s.ctx, &booster.GenerateInput{
		Rules:  booster.DefaultRules(entities.Set{Code: "kov"}),
		Random: random.NewSeeded(5),
	})
	s.Require().NoError(err)
	s.Nil(out.Exhaustion)
	s.Require().NotNil(out.Pack)
	s.True(s.catalog.HasSet(entities.Set{Code: "kov"}))
	for _, entry := range out.Pack.Entries {
		if !entry.Card.Set.Bonus {
			s.Equal("KOV", entry.Card.Set.Code)
		}
	}
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
