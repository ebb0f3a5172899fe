// Package distribution implements a fixed-arity discrete probability sampler.
package distribution

import (
	"math"

	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

// Epsilon is the tolerance allowed between the sum of a distribution's
// values and 1.0: the float64 machine epsilon
const Epsilon = 0x1p-52

// Distribution is an immutable list of outcome probabilities. Index i is
// selected with probability Values()[i].
type Distribution struct {
	values []float64
}

// New validates values and builds a distribution. Every value must lie in
// [0,1] and the values must sum to 1.0 within Epsilon.
func New(values ...float64) (*Distribution, error) {
	if len(values) == 0 {
		return nil, errors.InvalidArgument("distribution needs at least one value")
	}

	sum := 0.0
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, errors.InvalidArgumentf("distribution value %d is %v, must be between 0 and 1", i, v)
		}
		sum += v
	}
	if math.Abs(1-sum) > Epsilon {
		return nil, errors.InvalidArgumentf("distribution values sum to %v, must sum to 1", sum)
	}

	copied := make([]float64, len(values))
	copy(copied, values)
	return &Distribution{values: copied}, nil
}

// MustNew is New for package-level literals known to be valid
func MustNew(values ...float64) *Distribution {
	d, err := New(values...)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of outcomes
func (d *Distribution) Len() int {
	return len(d.values)
}

// Values returns a copy of the outcome probabilities
func (d *Distribution) Values() []float64 {
	out := make([]float64, len(d.values))
	copy(out, d.values)
	return out
}

// Generate maps a uniform sample in [0,1) to an outcome index: the first index
// whose cumulative probability reaches the sample. Outcomes with zero
// probability are never selected, even for a sample of exactly 0. When
// rounding leaves the cumulative sum short of the sample, the last index is
// returned.
func (d *Distribution) Generate(sample float64) int {
	cumulative := 0.0
	for i, v := range d.values {
		if v == 0 {
			continue
		}
		cumulative += v
		if sample <= cumulative {
			return i
		}
	}
	return len(d.values) - 1
}

// Sample draws one outcome using src
func (d *Distribution) Sample(src random.Source) int {
	return d.Generate(src.Float64())
}
