package access

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Directory when a record does not exist.
var ErrNotFound = errors.New("access: record not found")

// Account is the identity side of the facts.
type Account struct {
	UserID     int64
	IsAdmin    bool
	BusinessID *int64
}

// Directory looks up the collaborator records the policy depends on.
type Directory interface {
	Account(ctx context.Context, userID int64) (Account, error)
	BusinessState(ctx context.Context, businessID int64) (BusinessState, error)
}

// LoadFacts gathers the facts for userID. A nil userID is an anonymous
// request. Missing records degrade the facts instead of failing: an unknown
// user is unauthenticated and a dangling business id has no business.
// Any other lookup error is returned and the caller must fail closed.
func LoadFacts(ctx context.Context, dir Directory, userID *int64) (Facts, error) {
	if userID == nil {
		return Facts{}, nil
	}
	acct, err := dir.Account(ctx, *userID)
	if errors.Is(err, ErrNotFound) {
		return Facts{}, nil
	}
	if err != nil {
		return Facts{}, fmt.Errorf("load account %d: %w", *userID, err)
	}

	f := Facts{Authenticated: true, IsAdmin: acct.IsAdmin, BusinessID: acct.BusinessID}
	if acct.BusinessID == nil {
		return f, nil
	}
	state, err := dir.BusinessState(ctx, *acct.BusinessID)
	if errors.Is(err, ErrNotFound) {
		return f, nil
	}
	if err != nil {
		return Facts{}, fmt.Errorf("load business %d: %w", *acct.BusinessID, err)
	}
	f.Business = &state
	return f, nil
}
