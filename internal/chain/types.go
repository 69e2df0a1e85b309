// Package chain holds the primitive value types shared by the registry:
// account identifiers, 32-byte hashes, block heights and balances, plus the
// collaborators the registry consumes from the surrounding platform (the
// block clock and the signed-origin check).
package chain

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// HashLength is the byte width of AccountID and Hash.
const HashLength = 32

var ErrInvalidHex = errors.New("invalid 32-byte hex value")

// AccountID identifies an account. It is the account's ed25519 public key.
type AccountID [HashLength]byte

// Hash is a 32-byte digest. Organization identifiers are Hashes.
type Hash [HashLength]byte

// BlockHeight is the monotonically non-decreasing height reported by the Clock.
type BlockHeight uint64

// ParseAccountID parses a hex account id, with or without a 0x prefix.
func ParseAccountID(s string) (AccountID, error) {
	b, err := parseHex32(s)
	return AccountID(b), err
}

// ParseHash parses a hex hash, with or without a 0x prefix.
func ParseHash(s string) (Hash, error) {
	b, err := parseHex32(s)
	return Hash(b), err
}

func parseHex32(s string) ([HashLength]byte, error) {
	var out [HashLength]byte
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != HashLength*2 {
		return out, fmt.Errorf("%w: want %d hex chars, got %d", ErrInvalidHex, HashLength*2, len(s))
	}
	if _, err := hex.Decode(out[:], []byte(s)); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return out, nil
}

func formatHex32(b [HashLength]byte) string {
	return "0x" + hex.EncodeToString(b[:])
}

func scanHex32(dst *[HashLength]byte, src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a 32-byte value", src)
	}
	b, err := parseHex32(s)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func (a AccountID) String() string { return formatHex32(a) }

func (a AccountID) IsZero() bool { return a == AccountID{} }

// Value stores the account as 0x-prefixed lowercase hex.
func (a AccountID) Value() (driver.Value, error) { return a.String(), nil }

func (a *AccountID) Scan(src interface{}) error { return scanHex32((*[HashLength]byte)(a), src) }

func (a AccountID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (h Hash) String() string { return formatHex32(h) }

func (h Hash) IsZero() bool { return h == Hash{} }

// Value stores the hash as 0x-prefixed lowercase hex.
func (h Hash) Value() (driver.Value, error) { return h.String(), nil }

func (h *Hash) Scan(src interface{}) error { return scanHex32((*[HashLength]byte)(h), src) }

func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
