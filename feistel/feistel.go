// Package feistel implements the 4-round balanced Feistel cipher SLIP-39
// uses to encrypt a master secret under a passphrase before it is split:
// each round's key stream is derived from the passphrase, the share
// identifier, the round index, and the iteration exponent via
// PBKDF2-HMAC-SHA256.
package feistel

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"

	"github.com/mrz1836/slip39/pkg/slip39err"
)

const (
	roundCount          = 4
	minIterationCount   = 10000
	customizationString = "shamir"
)

// Encrypt runs the Feistel cipher forward over secret, returning the
// encrypted master secret (EMS). len(secret) must be even; that invariant
// is the caller's responsibility (enforced by the splitter before secret
// ever reaches here).
func Encrypt(secret []byte, passphrase string, iterationExponent byte, identifier uint16) []byte {
	return crypt(secret, passphrase, iterationExponent, identifier, roundRangeForward())
}

// Decrypt reverses Encrypt.
func Decrypt(ems []byte, passphrase string, iterationExponent byte, identifier uint16) []byte {
	return crypt(ems, passphrase, iterationExponent, identifier, roundRangeBackward())
}

func roundRangeForward() []int {
	rounds := make([]int, roundCount)
	for i := range rounds {
		rounds[i] = i
	}
	return rounds
}

func roundRangeBackward() []int {
	rounds := make([]int, roundCount)
	for i := range rounds {
		rounds[i] = roundCount - 1 - i
	}
	return rounds
}

func crypt(secret []byte, passphrase string, iterationExponent byte, identifier uint16, rounds []int) []byte {
	half := len(secret) / 2
	l := append([]byte(nil), secret[:half]...)
	r := append([]byte(nil), secret[half:]...)
	salt := getSalt(identifier)

	for _, i := range rounds {
		f := roundFunction(i, passphrase, iterationExponent, salt, r)
		newR := xor(l, f)
		l = r
		r = newR
	}

	return append(append([]byte(nil), r...), l...)
}

func getSalt(identifier uint16) []byte {
	salt := make([]byte, len(customizationString)+2)
	copy(salt, customizationString)
	binary.BigEndian.PutUint16(salt[len(customizationString):], identifier)
	return salt
}

// roundFunction derives this round's key stream via PBKDF2-HMAC-SHA256.
//
// The iteration count is computed as (minIterationCount / roundCount) << e.
// This intentionally departs from the naive "(min_iteration_count << e) /
// round_count" some reference implementations use: dividing first and then
// shifting keeps the round's per-call iteration count a clean multiple of
// the shift, rather than rounding down inside the shifted value.
func roundFunction(round int, passphrase string, iterationExponent byte, salt, r []byte) []byte {
	iterations := (minIterationCount / roundCount) << iterationExponent

	password := make([]byte, 1+len(passphrase))
	password[0] = byte(round)
	copy(password[1:], passphrase)

	fullSalt := append(append([]byte(nil), salt...), r...)
	return pbkdf2.Key(password, fullSalt, iterations, len(r), sha256.New)
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// ValidateSecretLength returns an error if secret's length is not even and
// nonzero, the precondition the Feistel split enforces.
func ValidateSecretLength(secret []byte) error {
	if len(secret) == 0 || len(secret)%2 != 0 {
		return slip39err.New(slip39err.ValueError, "secret length must be even and nonzero, got %d", len(secret))
	}
	return nil
}
