// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/booster-sim/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// Seeded derives UUIDs from a counter and a seed, so packs generated from a
// seeded random source also get reproducible IDs
type Seeded struct {
	prefix  string
	space   uuid.UUID
	counter uint64
}

// NewSeeded creates a reproducible generator for seed
func NewSeeded(prefix string, seed uint64) *Seeded {
	return &Seeded{
		prefix: prefix,
		space:  uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("booster-sim/%d", seed))),
	}
}

// Generate creates the next ID in the sequence
func (g *Seeded) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	id := uuid.NewSHA1(g.space, []byte(fmt.Sprintf("%d", n))).String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
