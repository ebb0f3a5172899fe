// Package v1 serves the booster service over gRPC
package v1

import (
	"context"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
)

// HandlerConfig holds dependencies for the booster handler
type HandlerConfig struct {
	PacksService packs.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.PacksService == nil {
		return errors.InvalidArgument("packs service is required")
	}
	return nil
}

// Handler implements BoosterServiceServer
type Handler struct {
	packs packs.Service
}

var _ BoosterServiceServer = (*Handler)(nil)

// NewHandler creates a new booster handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		packs: cfg.PacksService,
	}, nil
}

// GenerateBooster opens one pack. Request fields: set (string), seed (string
// or number). An exhausted pack returns RESOURCE_EXHAUSTED with an ErrorInfo
// detail naming the position.
func (h *Handler) GenerateBooster(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seed, err := seedField(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.packs.Open(ctx, &packs.OpenInput{
		Set:  stringField(req, "set"),
		Seed: seed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := conversion.ToStruct(conversion.NewPackView(out.Pack))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// Simulate runs "packs until a bonus card". Request fields: set, seed,
// trials, max_packs_per_trial, include_trials (bool).
func (h *Handler) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seed, err := seedField(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	trials, err := intField(req, "trials")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	maxPacks, err := intField(req, "max_packs_per_trial")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.packs.Simulate(ctx, &packs.SimulateInput{
		Set:              stringField(req, "set"),
		Seed:             seed,
		Trials:           trials,
		MaxPacksPerTrial: maxPacks,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	includeTrials := req.GetFields()["include_trials"].GetBoolValue()
	resp, err := conversion.ToStruct(conversion.NewSimulationView(out.Set, out.Result, includeTrials))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ListSets returns the known sets under "sets"
func (h *Handler) ListSets(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	resp, err := conversion.ToStruct(map[string]any{
		"sets": conversion.NewSetViews(h.packs.ListSets()),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func seedField(req *structpb.Struct) (*uint64, error) {
	v, ok := req.GetFields()["seed"]
	if !ok {
		return nil, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return packs.ParseSeed(kind.StringValue)
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n < 0 || n != math.Trunc(n) || n > 1<<53 {
			return nil, errors.InvalidArgumentf("invalid seed %v: numeric seeds must be whole numbers up to 2^53, pass larger ones as strings", n)
		}
		return packs.ParseSeed(strconv.FormatUint(uint64(n), 10))
	case *structpb.Value_NullValue:
		return nil, nil
	default:
		return nil, errors.InvalidArgument("seed must be a string or a number")
	}
}

func intField(req *structpb.Struct, name string) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, errors.InvalidArgumentf("%s must be a whole number", name)
	}
	return int(n.NumberValue), nil
}
