package cards

import (
	"strings"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

const errSetCodeEmpty = "set code cannot be empty"

func validateRecords(records []Record) error {
	for i, r := range records {
		vb := errors.NewValidationBuilder()
		if strings.TrimSpace(r.Name) == "" {
			vb.RequiredField("name")
		}
		if r.PositionInSet <= 0 {
			vb.Fieldf("position_in_set", "must be positive, got %d", r.PositionInSet)
		}
		if strings.TrimSpace(r.RarityName) == "" {
			vb.RequiredField("rarity")
		}
		if strings.TrimSpace(r.SlotName) == "" {
			vb.RequiredField("slot")
		}
		if err := vb.Build(); err != nil {
			return errors.Wrapf(err, "record %d (%q) is invalid", i, r.Name)
		}
	}
	return nil
}
