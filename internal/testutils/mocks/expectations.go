// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
	cardsmock "github.com/KirkDiggler/booster-sim/internal/repositories/cards/mock"
)

// ListingFor matches a cards.ListBySetInput by set code, ignoring aliases
func ListingFor(setCode string) gomock.Matcher {
	return setCodeMatcher(setCode)
}

type setCodeMatcher string

func (m setCodeMatcher) Matches(x any) bool {
	in, ok := x.(cards.ListBySetInput)
	return ok && in.SetCode == string(m)
}

func (m setCodeMatcher) String() string {
	return fmt.Sprintf("lists set %s", string(m))
}

// ExpectSetListing expects exactly one ListBySet call for the set code and
// answers it with the given records
func ExpectSetListing(store *cardsmock.MockRepository, setCode string, records []cards.Record) *gomock.Call {
	return store.EXPECT().
		ListBySet(gomock.Any(), ListingFor(setCode)).
		Return(&cards.ListBySetOutput{Records: records}, nil).
		Times(1)
}

// ExpectSetListingError expects one ListBySet call for the set code that fails
func ExpectSetListingError(store *cardsmock.MockRepository, setCode string, err error) *gomock.Call {
	return store.EXPECT().
		ListBySet(gomock.Any(), ListingFor(setCode)).
		Return(nil, err).
		Times(1)
}
