package fhe

import (
	"math/big"

	"github.com/NatureVault-project/naturevault-core/naturevault/util"
)

// Ciphertext is an opaque handle to an encrypted numeric value. The registry
// never inspects its contents; the only operations it relies on are the
// homomorphic addition and the initialized-handle predicate of a Scheme.
type Ciphertext []byte

func (self Ciphertext) Initialized() bool {
	return len(self) != 0
}

// Scheme is the ciphertext representation the registry composes over.
// Add must be deterministic: independently recomputed aggregates are compared
// bitwise through their commitments.
type Scheme interface {
	Add(a, b Ciphertext) (Ciphertext, error)
	Valid(ct Ciphertext) bool
}

var (
	ErrMalformedCiphertext = util.ErrorString("malformed ciphertext handle")
)

// additive dev scheme handle layout: tag byte + big-endian value bytes
const additive_tag = byte(0xEC)

// AdditiveScheme is the development scheme: values are merely encoded, not
// protected. It exists to exercise the protocol in tests and local setups
// where a real FHE backend is not available.
type AdditiveScheme struct{}

func (self AdditiveScheme) Encrypt(value *big.Int) Ciphertext {
	return append([]byte{additive_tag}, value.Bytes()...)
}

func (self AdditiveScheme) Decrypt(ct Ciphertext) (*big.Int, error) {
	if !self.Valid(ct) {
		return nil, ErrMalformedCiphertext
	}
	return new(big.Int).SetBytes(ct[1:]), nil
}

func (self AdditiveScheme) Add(a, b Ciphertext) (Ciphertext, error) {
	a_val, err := self.Decrypt(a)
	if err != nil {
		return nil, err
	}
	b_val, err := self.Decrypt(b)
	if err != nil {
		return nil, err
	}
	return self.Encrypt(new(big.Int).Add(a_val, b_val)), nil
}

func (self AdditiveScheme) Valid(ct Ciphertext) bool {
	return ct.Initialized() && ct[0] == additive_tag
}
