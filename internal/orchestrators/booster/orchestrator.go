// Package booster implements pack generation: the slot recipe, the rules that
// parameterise it and the service that loads sets on demand.
package booster

//go:generate mockgen -destination=mock/mock_service.go -package=boostermock github.com/KirkDiggler/booster-sim/internal/orchestrators/booster Service

import (
	"context"
	"log/slog"
	"math"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/pkg/clock"
	"github.com/KirkDiggler/booster-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/booster-sim/internal/random"
)

const (
	// DefaultMaxPacksPerTrial bounds a simulation trial
	DefaultMaxPacksPerTrial = 100_000
	// MaxTrials bounds a simulation request
	MaxTrials = 1_000_000
)

// Service defines pack generation operations
type Service interface {
	// Generate loads the rules' set if needed and assembles one pack
	// Returns errors.InvalidArgument for missing rules or random source
	// Returns the catalog's load error when the set cannot be loaded
	// Exhaustion is reported in the output, not as an error
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// Simulate opens packs until one holds a bonus card, Trials times
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
}

// Catalog is the part of the card catalog the service needs
type Catalog interface {
	Drawer
	HasSet(set entities.Set) bool
	EnsureLoaded(ctx context.Context, set entities.Set) error
}

// Config holds the dependencies for the booster orchestrator
type Config struct {
	Catalog     Catalog
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog Catalog
	idGen   idgen.Generator
	clock   clock.Clock
	logger  *slog.Logger
}

// NewOrchestrator creates a new booster orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		catalog: cfg.Catalog,
		idGen:   cfg.IDGenerator,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
	}
	if o.idGen == nil {
		o.idGen = idgen.NewUUID("pack")
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o, nil
}

// Generate implements Service
func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Rules == nil {
		vb.RequiredField("rules")
	}
	if input.Random == nil {
		vb.RequiredField("random")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := o.ensureLoaded(ctx, input.Rules.Set); err != nil {
		return nil, err
	}

	pack, exhausted := o.assemble(input.Rules, input.Random)
	if exhausted != nil {
		o.logger.Warn("pack exhausted",
			"set", exhausted.Set.Code,
			"position", exhausted.Position,
			"slot", exhausted.Slot,
			"bonus", exhausted.Bonus)
		return &GenerateOutput{Exhaustion: exhausted}, nil
	}

	return &GenerateOutput{Pack: pack}, nil
}

func (o *orchestrator) ensureLoaded(ctx context.Context, set entities.Set) error {
	if o.catalog.HasSet(set) {
		return nil
	}
	if err := o.catalog.EnsureLoaded(ctx, set); err != nil {
		return errors.Wrapf(err, "failed to load set %s", set.Code)
	}
	return nil
}

func (o *orchestrator) assemble(rules *Rules, src random.Source) (*Pack, *Exhaustion) {
	var (
		pack      *Pack
		exhausted *Exhaustion
	)
	random.Exclusive(src, func() {
		pack, exhausted = Assemble(o.catalog, rules, src)
	})
	if pack != nil {
		pack.ID = o.idGen.Generate()
		pack.GeneratedAt = o.clock.Now()
	}
	return pack, exhausted
}

// Simulate implements Service
func (o *orchestrator) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Rules == nil {
		vb.RequiredField("rules")
	}
	if input.Random == nil {
		vb.RequiredField("random")
	}
	if input.Trials <= 0 || input.Trials > MaxTrials {
		vb.Fieldf("trials", "must be between 1 and %d, got %d", MaxTrials, input.Trials)
	}
	if input.MaxPacksPerTrial < 0 {
		vb.Fieldf("max_packs_per_trial", "cannot be negative, got %d", input.MaxPacksPerTrial)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	maxPacks := input.MaxPacksPerTrial
	if maxPacks == 0 {
		maxPacks = DefaultMaxPacksPerTrial
	}

	if err := o.ensureLoaded(ctx, input.Rules.Set); err != nil {
		return nil, err
	}

	out := &SimulateOutput{
		PacksOpened: make([]int, 0, input.Trials),
		Min:         math.MaxInt,
	}
	total := 0

	for trial := 0; trial < input.Trials; trial++ {
		opened, found := 0, false
		for opened < maxPacks && !found {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapWithCodef(err, errors.CodeCanceled, "simulation canceled in trial %d after %d packs", trial, opened)
			}
			opened++
			var (
				pack      *Pack
				exhausted *Exhaustion
			)
			random.Exclusive(input.Random, func() {
				pack, exhausted = Assemble(o.catalog, input.Rules, input.Random)
			})
			if exhausted != nil {
				out.Exhausted++
				continue
			}
			found = pack.BonusCount() > 0
		}
		if !found {
			out.Unfinished++
		}

		out.PacksOpened = append(out.PacksOpened, opened)
		total += opened
		out.Min = min(out.Min, opened)
		out.Max = max(out.Max, opened)
	}

	out.Mean = float64(total) / float64(input.Trials)

	o.logger.Info("simulation finished",
		"set", input.Rules.Set.Code,
		"trials", input.Trials,
		"mean", out.Mean,
		"min", out.Min,
		"max", out.Max,
		"exhausted", out.Exhausted,
		"unfinished", out.Unfinished)

	return out, nil
}
