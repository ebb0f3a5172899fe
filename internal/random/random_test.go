package random_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/booster-sim/internal/random"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.IntN(7), b.IntN(7))
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestSeededRanges(t *testing.T) {
	src := random.NewSeeded(7)
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)

		n := src.IntN(5)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 5)
	}
}

func TestScripted(t *testing.T) {
	src := random.NewScripted(0.1, 0.99)

	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 3, src.IntN(4)) // 0.99 * 4
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 3, src.Calls())

	empty := random.NewScripted()
	assert.Equal(t, 0.0, empty.Float64())
	assert.Equal(t, 0, empty.IntN(10))
}

func TestExclusiveHoldsLock(t *testing.T) {
	src := random.NewSeeded(1)

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			random.Exclusive(src, func() {
				for i := 0; i < 50; i++ {
					results[g] = append(results[g], src.Float64())
				}
			})
		}(g)
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	assert.Equal(t, 400, total)
}

func TestExclusiveWithoutLocker(t *testing.T) {
	called := false
	random.Exclusive(random.NewScripted(0.5), func() { called = true })
	assert.True(t, called)
}

type stubRoller struct {
	value int
	err   error
}

func (s *stubRoller) Roll(size int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.value > size {
		return size, nil
	}
	return s.value, nil
}

func (s *stubRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestDiceSource(t *testing.T) {
	src := random.NewDice(&stubRoller{value: 3})

	assert.Equal(t, 2, src.IntN(6))
	assert.Equal(t, 0, src.IntN(1))
	assert.InDelta(t, 2.0/float64(1<<53), src.Float64(), 1e-18)
	assert.NoError(t, src.Err())
}

func TestDiceSourceFallsBack(t *testing.T) {
	src := random.NewDice(&stubRoller{err: errors.New("entropy unavailable")})

	n := src.IntN(4)
	assert.GreaterOrEqual(t, n, 0)
	assert.Less(t, n, 4)

	f := src.Float64()
	assert.GreaterOrEqual(t, f, 0.0)
	assert.Less(t, f, 1.0)
	assert.EqualError(t, src.Err(), "entropy unavailable")
}
