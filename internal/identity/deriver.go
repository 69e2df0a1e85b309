// Package identity derives organization identifiers.
//
// An id is the hash of the SCALE encoding of (creator, name): the 32 raw
// account bytes followed by the compact-encoded name length and the name.
// With the default BLAKE2b-256 hasher the result matches the id a Substrate
// runtime computes for the same pair.
package identity

import (
	"encoding/binary"
	"math/bits"

	"github.com/yukikurage/organization-registry/internal/chain"
	"golang.org/x/crypto/blake2b"
)

// Hasher is a collision-resistant hash over an arbitrary byte encoding.
type Hasher func(data []byte) chain.Hash

// Blake2b256 is the default Hasher.
func Blake2b256(data []byte) chain.Hash {
	return chain.Hash(blake2b.Sum256(data))
}

// Deriver maps (creator, name) pairs to organization ids.
type Deriver struct {
	hash Hasher
}

// New returns a Deriver using h, or Blake2b256 when h is nil.
func New(h Hasher) *Deriver {
	if h == nil {
		h = Blake2b256
	}
	return &Deriver{hash: h}
}

// DeriveID returns the organization id for creator and name.
func (d *Deriver) DeriveID(creator chain.AccountID, name []byte) chain.Hash {
	return d.hash(EncodeKey(creator, name))
}

// EncodeKey returns the byte encoding hashed by DeriveID.
func EncodeKey(creator chain.AccountID, name []byte) []byte {
	buf := make([]byte, 0, chain.HashLength+9+len(name))
	buf = append(buf, creator[:]...)
	buf = AppendCompact(buf, uint64(len(name)))
	return append(buf, name...)
}

// AppendCompact appends n in SCALE compact form.
func AppendCompact(dst []byte, n uint64) []byte {
	switch {
	case n < 1<<6:
		return append(dst, byte(n<<2))
	case n < 1<<14:
		return binary.LittleEndian.AppendUint16(dst, uint16(n<<2)|0b01)
	case n < 1<<30:
		return binary.LittleEndian.AppendUint32(dst, uint32(n<<2)|0b10)
	}
	size := (bits.Len64(n) + 7) / 8
	dst = append(dst, byte((size-4)<<2)|0b11)
	for i := 0; i < size; i++ {
		dst = append(dst, byte(n>>(8*i)))
	}
	return dst
}
