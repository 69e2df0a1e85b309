package chain

import "errors"

var ErrUnauthorized = errors.New("unauthorized: origin is not signed")

// Origin is the caller of a state transition. Only signed origins carry an
// account.
type Origin struct {
	account AccountID
	signed  bool
}

// Signed returns an origin authenticated as account.
func Signed(account AccountID) Origin {
	return Origin{account: account, signed: true}
}

// Unsigned returns an origin with no authenticated account.
func Unsigned() Origin {
	return Origin{}
}

// EnsureSigned returns the signing account, or ErrUnauthorized.
func EnsureSigned(o Origin) (AccountID, error) {
	if !o.signed {
		return AccountID{}, ErrUnauthorized
	}
	return o.account, nil
}
