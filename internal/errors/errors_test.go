package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "set XYZ not found",
			expected: "NOT_FOUND: set XYZ not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "bad distribution",
			expected: "INVALID_ARGUMENT: bad distribution",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load set KOV")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load set KOV", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.FailedPrecondition("unknown rarity")
	wrapped := errors.Wrap(baseErr, "failed to load set KOV")

	s.Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.True(errors.IsFailedPrecondition(wrapped))
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("no such key").WithMeta("set", "KOV")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "store unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("KOV", wrapped.Meta["set"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	s.True(errors.IsNotFound(errors.Wrap(errors.NotFound("x"), "wrapped")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgumentf("chance %v", 1.5)))
	s.True(errors.IsResourceExhausted(errors.ResourceExhausted("empty bucket")))
	s.True(errors.IsUnavailable(errors.Unavailablef("store %s", "redis")))
	s.True(errors.IsInternal(fmt.Errorf("plain")))
	s.True(errors.IsInternal(errors.Internalf("store has type %T", 0)))
	s.Equal("INTERNAL: store has type int", errors.Internalf("store has type %T", 0).Error())
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Equal("wrapped", errors.GetMessage(errors.Wrap(errors.NotFound("x"), "wrapped")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeNotFound, 404},
		{errors.CodeFailedPrecondition, 422},
		{errors.CodeResourceExhausted, 503},
		{errors.CodeInternal, 500},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.ResourceExhausted("no card available").
		WithMeta("position", 4)

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.ResourceExhausted, st.Code())
	s.Equal("no card available", st.Message())

	s.Require().Len(st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Equal("4", info.GetMetadata()["position"])
	s.Equal(errors.ErrorDomain, info.GetDomain())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsResourceExhausted(back))
	s.Equal("no card available", errors.GetMessage(back))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeResourceExhausted, codes.ResourceExhausted},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
