// Package packs resolves front-end requests (a set label and an optional
// seed) into booster generation calls and maps exhaustion onto a retryable
// error for transports that need one.
package packs

//go:generate mockgen -destination=mock/mock_service.go -package=packsmock github.com/KirkDiggler/booster-sim/internal/services/packs Service

import (
	"context"
	"strconv"
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

// Service opens packs and runs simulations on behalf of a front end
type Service interface {
	// Open generates one pack
	// Returns errors.NotFound for an unknown set
	// Returns errors.ResourceExhausted when a position had no card to draw
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)
	// Simulate runs a "packs until a bonus card" simulation
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
	// ListSets returns every known set
	ListSets() []entities.Set
}

// SetResolver finds sets by label
type SetResolver interface {
	LookupSet(label string) (entities.Set, bool)
	Sets() []entities.Set
}

// RulesFactory builds the rules used for a set
type RulesFactory func(set entities.Set) (*booster.Rules, error)

// Config holds the dependencies for the packs service
type Config struct {
	Booster    booster.Service
	Sets       SetResolver
	Rules      RulesFactory
	DefaultSet entities.Set
	// Random serves requests without a seed; it is shared across requests
	Random random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Booster == nil {
		vb.RequiredField("Booster")
	}
	if c.Sets == nil {
		vb.RequiredField("Sets")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.DefaultSet.Code == "" {
		vb.RequiredField("DefaultSet")
	}
	return vb.Build()
}

// OpenInput defines the input for opening a pack
type OpenInput struct {
	// Set is a set code, name or alias; empty means the default set
	Set  string
	Seed *uint64
}

// OpenOutput defines the output for opening a pack
type OpenOutput struct {
	Pack *booster.Pack
}

// SimulateInput defines the input for a simulation
type SimulateInput struct {
	Set              string
	Seed             *uint64
	Trials           int
	MaxPacksPerTrial int
}

// SimulateOutput defines the output of a simulation
type SimulateOutput struct {
	Set    entities.Set
	Result *booster.SimulateOutput
}

type service struct {
	booster    booster.Service
	sets       SetResolver
	rules      RulesFactory
	defaultSet entities.Set
	random     random.Source
}

// NewService creates a packs service
func NewService(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	src := cfg.Random
	if src == nil {
		src = random.NewLocked(random.NewDice(nil))
	}

	return &service{
		booster:    cfg.Booster,
		sets:       cfg.Sets,
		rules:      cfg.Rules,
		defaultSet: cfg.DefaultSet,
		random:     src,
	}, nil
}

// Open implements Service
func (s *service) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	if input == nil {
		input = &OpenInput{}
	}

	rules, err := s.resolveRules(input.Set)
	if err != nil {
		return nil, err
	}

	out, err := s.booster.Generate(ctx, &booster.GenerateInput{
		Rules:  rules,
		Random: s.source(input.Seed),
	})
	if err != nil {
		return nil, err
	}
	if out.Exhaustion != nil {
		return nil, ExhaustionError(out.Exhaustion)
	}

	return &OpenOutput{Pack: out.Pack}, nil
}

// Simulate implements Service
func (s *service) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rules, err := s.resolveRules(input.Set)
	if err != nil {
		return nil, err
	}

	result, err := s.booster.Simulate(ctx, &booster.SimulateInput{
		Rules:            rules,
		Random:           s.source(input.Seed),
		Trials:           input.Trials,
		MaxPacksPerTrial: input.MaxPacksPerTrial,
	})
	if err != nil {
		return nil, err
	}

	return &SimulateOutput{Set: rules.Set, Result: result}, nil
}

// ListSets implements Service
func (s *service) ListSets() []entities.Set {
	return s.sets.Sets()
}

func (s *service) resolveRules(label string) (*booster.Rules, error) {
	set := s.defaultSet
	if strings.TrimSpace(label) != "" {
		found, ok := s.sets.LookupSet(label)
		if !ok {
			return nil, errors.NotFoundf("unknown set %q", label)
		}
		set = found
	}

	rules, err := s.rules(set)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build rules for set %s", set.Code)
	}
	return rules, nil
}

func (s *service) source(seed *uint64) random.Source {
	if seed != nil {
		return random.NewSeeded(*seed)
	}
	return s.random
}

// ExhaustionError converts an exhaustion into a retryable error carrying the
// failed position as metadata
func ExhaustionError(e *booster.Exhaustion) *errors.Error {
	return errors.ResourceExhaustedf("no %s card left to draw for position %d of a %s pack",
		e.Slot.DisplayName(), e.Position, e.Set.Code).
		WithMeta("position", e.Position).
		WithMeta("slot", string(e.Slot)).
		WithMeta("set", e.Set.Code).
		WithMeta("bonus", e.Bonus).
		WithMeta("target_rarity", string(e.TargetRarity))
}

// ParseSeed parses an optional decimal seed; empty means no seed
func ParseSeed(s string) (*uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid seed %q: must be a non-negative integer", s)
	}
	return &seed, nil
}
