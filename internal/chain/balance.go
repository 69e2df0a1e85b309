package chain

import (
	"errors"
	"math/bits"
)

var ErrBalanceOverflow = errors.New("balance overflow")

// Balance is a share amount.
type Balance uint64

// CheckedAdd returns b+other, or ErrBalanceOverflow when the sum does not fit.
func (b Balance) CheckedAdd(other Balance) (Balance, error) {
	sum, carry := bits.Add64(uint64(b), uint64(other), 0)
	if carry != 0 {
		return 0, ErrBalanceOverflow
	}
	return Balance(sum), nil
}
