package cards_test

import (
	"encoding/json"

	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
	"github.com/KirkDiggler/booster-sim/internal/testutils"
)

func (s *RedisRepositoryTestSuite) TestFindCorruptCleanStore() {
	_, err := s.repo.Upsert(s.ctx, cards.UpsertInput{SetCode: "KOV", Records: testutils.FullSetRecords("KOV", 1)})
	s.Require().NoError(err)

	corrupt, err := s.repo.FindCorrupt(s.ctx)
	s.Require().NoError(err)
	s.Empty(corrupt)
}

func (s *RedisRepositoryTestSuite) TestFindCorruptAndDelete() {
	_, err := s.repo.Upsert(s.ctx, cards.UpsertInput{SetCode: "KOV", Records: testutils.FullSetRecords("KOV", 1)})
	s.Require().NoError(err)

	s.miniRedis.HSet(cards.SetKey("KOV"), "100", "{not json")

	nameless, err := json.Marshal(cards.Record{PositionInSet: 101, RarityName: "gold", SlotName: "hero"})
	s.Require().NoError(err)
	s.miniRedis.HSet(cards.SetKey("BAZ"), "101", string(nameless))

	misfiled, err := json.Marshal(testutils.CardRecord("KOV", 5, testutils.SlotHeroLabel, testutils.RarityGoldLabel))
	s.Require().NoError(err)
	s.miniRedis.HSet(cards.SetKey("KOV"), "102", string(misfiled))

	corrupt, err := s.repo.FindCorrupt(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(corrupt, 3)

	byField := make(map[string]cards.CorruptRecord)
	for _, c := range corrupt {
		byField[c.Field] = c
	}
	s.Equal("KOV", byField["100"].SetCode)
	s.Equal("invalid JSON", byField["100"].Reason)
	s.Equal("BAZ", byField["101"].SetCode)
	s.Contains(byField["101"].Reason, "name")
	s.Contains(byField["102"].Reason, "claims 5")

	deleted, err := s.repo.DeleteRecords(s.ctx, corrupt)
	s.Require().NoError(err)
	s.Equal(3, deleted)

	listed, err := s.repo.ListBySet(s.ctx, cards.ListBySetInput{SetCode: "KOV"})
	s.Require().NoError(err)
	s.Len(listed.Records, 9)
}
