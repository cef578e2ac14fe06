package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// maxIterations is the number of times we try to generate a value before
// concluding that the source of randomness is broken.
const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Scalar returns a new curve.Scalar, uniform in [0, q), read from rand.
//
// It reads SafeScalarBytes of entropy and reduces modulo the group order, so
// the statistical distance from uniform stays negligible.
//
// The protocol's zero-knowledge property depends on rand being a
// cryptographically secure source; the other accepted reader is the digest of
// a transcript hash, for Fiat-Shamir challenges.
func Scalar(rand io.Reader, group curve.Curve) curve.Scalar {
	buf := make([]byte, group.SafeScalarBytes())
	mustReadBits(rand, buf)
	return group.NewScalar().SetNat(new(saferith.Nat).SetBytes(buf))
}

// ScalarUnit returns a new curve.Scalar, uniform in [1, q).
func ScalarUnit(rand io.Reader, group curve.Curve) curve.Scalar {
	for i := 0; i < maxIterations; i++ {
		s := Scalar(rand, group)
		if !s.IsZero() {
			return s
		}
	}
	panic(ErrMaxIterations)
}

// ScalarPointPair returns a new scalar x, together with the point x⋅G.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point) {
	s := Scalar(rand, group)
	return s, s.ActOnBase()
}
