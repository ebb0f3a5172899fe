package random

import (
	"log/slog"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// floatDieSize is 2^53, the number of distinct float64 values in [0,1) that
// are evenly spaced
const floatDieSize = 1 << 53

// Dice adapts an rpg-toolkit dice roller into a Source. Integers come from a
// single n-sided die; floats come from a 2^53-sided die scaled into [0,1).
type Dice struct {
	roller dice.Roller
	err    error
}

// NewDice creates a Source backed by roller. With a nil roller the toolkit's
// default crypto roller is used.
func NewDice(roller dice.Roller) *Dice {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Dice{roller: roller}
}

// Err returns the last roller error, if any
func (d *Dice) Err() error {
	return d.err
}

// Float64 implements Source
func (d *Dice) Float64() float64 {
	v, err := d.roller.Roll(floatDieSize)
	if err != nil {
		d.fail(err)
		return rand.Float64()
	}
	return float64(v-1) / floatDieSize
}

// IntN implements Source
func (d *Dice) IntN(n int) int {
	if n == 1 {
		return 0
	}
	v, err := d.roller.Roll(n)
	if err != nil {
		d.fail(err)
		return rand.IntN(n)
	}
	return v - 1
}

// fail records the error and lets the caller fall back to math/rand so a
// broken entropy source degrades a draw instead of aborting a pack
func (d *Dice) fail(err error) {
	d.err = err
	slog.Warn("dice roller failed, falling back to math/rand", "error", err)
}
