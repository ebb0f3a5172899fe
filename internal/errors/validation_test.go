package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Store").
		Fieldf("BonusSetChance", "must be between %d and %d", 0, 1).
		InvalidField("StoreKind", "unknown kind mongo")

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Store: is required")
	s.Contains(err.Error(), "BonusSetChance: must be between 0 and 1")
	s.Contains(err.Error(), "StoreKind: is invalid: unknown kind mongo")

	var customErr *errors.Error
	s.Require().True(errors.As(err, &customErr))
	s.NotNil(customErr.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderStableOrder() {
	err := errors.NewValidationBuilder().
		RequiredField("b").
		RequiredField("a").
		Build()

	s.Equal("INVALID_ARGUMENT: validation failed: a: is required; b: is required", err.Error())
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidationErrorHasErrors() {
	verr := &errors.ValidationError{Fields: map[string][]string{}}
	s.False(verr.HasErrors())

	verr.Fields["Trials"] = []string{"must be positive"}
	s.True(verr.HasErrors())
}
