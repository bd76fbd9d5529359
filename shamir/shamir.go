// Package shamir implements the single-level Shamir splitter/combiner used
// at both levels of the SLIP-39 hierarchy: splitting the encrypted master
// secret across groups, and splitting each group's share across its
// members. It adds a truncated HMAC-SHA256 digest share so a quorum can
// detect that it reconstructed the intended secret, not a point on the
// wrong curve.
package shamir

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"

	"github.com/mrz1836/slip39/gf256"
	"github.com/mrz1836/slip39/pkg/slip39err"
)

const (
	// MaxShareCount is the largest number of shares a single split may
	// produce (a single byte x-coordinate leaves 256 values, but the wire
	// format's 4-bit share counts cap this at 16).
	MaxShareCount = 16

	digestLengthBytes = 4
	secretIndex       = 255
	digestIndex       = 254
)

// Part is one share of a split secret: an x-coordinate (the member index)
// and the corresponding share value.
type Part struct {
	Index byte
	Value []byte
}

// Split divides secret into shareCount Parts, threshold of which are
// required (and sufficient) to recover it. secret must be at least 16
// bytes and of even length.
//
// When threshold is 1, every part carries the secret directly (Shamir
// splitting is vacuous at a threshold of one) and no digest share is
// produced: Recover with threshold 1 trusts a single part outright.
func Split(threshold, shareCount int, secret []byte) ([]Part, error) {
	if threshold <= 0 || threshold > MaxShareCount {
		return nil, slip39err.New(slip39err.ArgumentError, "threshold must be between 1 and %d", MaxShareCount)
	}
	if shareCount < threshold || shareCount > MaxShareCount {
		return nil, slip39err.New(slip39err.ArgumentError, "share count with given threshold must be between %d and %d", threshold, MaxShareCount)
	}
	if len(secret) < 16 || len(secret)%2 != 0 {
		return nil, slip39err.New(slip39err.ArgumentError, "secret must be at least 16 bytes and of even length")
	}

	if threshold == 1 {
		parts := make([]Part, shareCount)
		for i := 0; i < shareCount; i++ {
			parts[i] = Part{Index: byte(i), Value: append([]byte(nil), secret...)}
		}
		return parts, nil
	}

	randomShareCount := threshold - 2
	parts := make([]Part, 0, shareCount)
	for i := 0; i < randomShareCount; i++ {
		val, err := randomBytes(len(secret))
		if err != nil {
			return nil, err
		}
		parts = append(parts, Part{Index: byte(i), Value: val})
	}

	randomPart, err := randomBytes(len(secret) - digestLengthBytes)
	if err != nil {
		return nil, err
	}
	digestValue := append(createDigest(randomPart, secret), randomPart...)

	baseParts := append(append([]Part(nil), parts...),
		Part{Index: digestIndex, Value: digestValue},
		Part{Index: secretIndex, Value: append([]byte(nil), secret...)},
	)

	for i := randomShareCount; i < shareCount; i++ {
		value := interpolate(baseParts, byte(i))
		parts = append(parts, Part{Index: byte(i), Value: value})
	}

	return parts, nil
}

// Recover reconstructs the secret from a quorum of parts. If threshold is
// not 1, it also verifies the embedded digest and returns a DigestError if
// the quorum does not reconstruct the secret it was generated for.
func Recover(parts []Part, threshold int) ([]byte, error) {
	if len(parts) == 0 {
		return nil, slip39err.New(slip39err.ValueError, "share set must not be empty")
	}
	if err := validateEqualLengths(parts); err != nil {
		return nil, err
	}

	secret := interpolate(parts, secretIndex)

	if threshold != 1 {
		if err := checkDigest(parts, secret); err != nil {
			return nil, err
		}
	}

	return secret, nil
}

func checkDigest(parts []Part, secret []byte) error {
	digestValue := interpolate(parts, digestIndex)
	if len(digestValue) < digestLengthBytes {
		return slip39err.New(slip39err.DigestError, "digest share too short")
	}
	digest := digestValue[:digestLengthBytes]
	randomPart := digestValue[digestLengthBytes:]
	if !hmac.Equal(digest, createDigest(randomPart, secret)) {
		return slip39err.New(slip39err.DigestError, "invalid digest of the shared secret")
	}
	return nil
}

func createDigest(randomData, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomData)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLengthBytes]
}

// interpolate evaluates the polynomial defined by parts at x. If x already
// appears among the parts' indices, that part's value is returned directly
// rather than recomputed; interpolating at one of the sample points gives
// that sample's value anyway.
func interpolate(parts []Part, x byte) []byte {
	for _, p := range parts {
		if p.Index == x {
			return append([]byte(nil), p.Value...)
		}
	}

	xs := make([]byte, len(parts))
	ys := make([][]byte, len(parts))
	for i, p := range parts {
		xs[i] = p.Index
		ys[i] = p.Value
	}
	return gf256.EvaluateVectorAt(xs, ys, x)
}

func validateEqualLengths(parts []Part) error {
	length := len(parts[0].Value)
	for _, p := range parts {
		if len(p.Value) != length {
			return slip39err.New(slip39err.MnemonicError, "all share values must have the same length")
		}
	}
	return nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "failed to generate random share material")
	}
	return b, nil
}
