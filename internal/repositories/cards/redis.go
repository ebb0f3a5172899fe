package cards

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/errors"
	redisclient "github.com/KirkDiggler/booster-sim/internal/redis"
)

const (
	// Key pattern: cards:set:{set_code} -> hash of position -> record JSON
	setKeyPrefix = "cards:set:"
	// setIndexKey holds every set code that has records
	setIndexKey = "cards:sets"
)

// RedisConfig contains configuration for the Redis card repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// Redis is a Redis-backed card store
type Redis struct {
	client redisclient.Client
}

// Ensure Redis implements the store contracts
var (
	_ Repository = (*Redis)(nil)
	_ Writer     = (*Redis)(nil)
)

// NewRedis creates a new Redis-backed card repository
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Redis{
		client: cfg.Client,
	}, nil
}

// ListBySet implements Repository
func (r *Redis) ListBySet(ctx context.Context, input ListBySetInput) (*ListBySetOutput, error) {
	code := strings.TrimSpace(input.SetCode)
	if code == "" {
		return nil, errors.InvalidArgument(errSetCodeEmpty)
	}

	values, err := r.client.HVals(ctx, SetKey(code)).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to list cards for set %s", code)
	}

	records := make([]Record, 0, len(values))
	for _, v := range values {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal card record in set %s", code)
		}
		records = append(records, rec)
	}

	return &ListBySetOutput{Records: records}, nil
}

// Upsert implements Writer
func (r *Redis) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	code := strings.TrimSpace(input.SetCode)
	if code == "" {
		return nil, errors.InvalidArgument(errSetCodeEmpty)
	}
	if err := validateRecords(input.Records); err != nil {
		return nil, err
	}
	if len(input.Records) == 0 {
		return &UpsertOutput{}, nil
	}

	fields := make([]interface{}, 0, len(input.Records)*2)
	for _, rec := range input.Records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal card record %q", rec.Name)
		}
		fields = append(fields, strconv.Itoa(rec.PositionInSet), data)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, SetKey(code), fields...)
	pipe.SAdd(ctx, setIndexKey, code)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to store cards for set %s", code)
	}

	return &UpsertOutput{Stored: len(input.Records)}, nil
}

// ListSetCodes returns the codes of every set that has records
func (r *Redis) ListSetCodes(ctx context.Context) ([]string, error) {
	codes, err := r.client.SMembers(ctx, setIndexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list set codes")
	}
	return codes, nil
}

// SetKey returns the Redis key holding a set's records
// Exposed for testing purposes
func SetKey(setCode string) string {
	return setKeyPrefix + setCode
}
