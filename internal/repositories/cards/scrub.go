package cards

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

// CorruptRecord is a stored record that cannot be decoded, fails validation,
// or sits under a field that does not match its position
type CorruptRecord struct {
	SetCode string
	Field   string
	Reason  string
}

// FindCorrupt scans every set key for records the catalog would reject
func (r *Redis) FindCorrupt(ctx context.Context) ([]CorruptRecord, error) {
	var corrupt []CorruptRecord

	iter := r.client.Scan(ctx, 0, setKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		code := strings.TrimPrefix(key, setKeyPrefix)

		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read set %s", code)
		}
		for field, value := range fields {
			if reason := checkStored(field, value); reason != "" {
				corrupt = append(corrupt, CorruptRecord{SetCode: code, Field: field, Reason: reason})
			}
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan card sets")
	}

	return corrupt, nil
}

// DeleteRecords removes the given records and returns how many were deleted
func (r *Redis) DeleteRecords(ctx context.Context, records []CorruptRecord) (int, error) {
	deleted := 0
	for _, rec := range records {
		n, err := r.client.HDel(ctx, SetKey(rec.SetCode), rec.Field).Result()
		if err != nil {
			return deleted, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to delete %s/%s", rec.SetCode, rec.Field)
		}
		deleted += int(n)
	}
	return deleted, nil
}

func checkStored(field, value string) string {
	var rec Record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return "invalid JSON"
	}
	if err := validateRecords([]Record{rec}); err != nil {
		return err.Error()
	}
	if field != strconv.Itoa(rec.PositionInSet) {
		return "stored under position " + field + " but claims " + strconv.Itoa(rec.PositionInSet)
	}
	return ""
}
