package curve

import (
	"encoding"

	"github.com/cronokirby/saferith"
)

// Curve represents the starting point for working with an Elliptic Curve group.
//
// The expectation is that this interface will be implemented by a nominal struct,
// and use associated types for its Scalar and Point. Thus, a given implementation
// of this interface should only return its own kinds of Scalars and Points, and
// only be passed the same kinds as well. The methods of Scalar and Point are
// allowed to panic when mixing elements of different groups.
type Curve interface {
	// NewPoint creates an identity point.
	NewPoint() Point
	// NewBasePoint creates the generator of this group.
	NewBasePoint() Point
	// NewScalar creates a scalar with the value of 0.
	NewScalar() Scalar
	// Name returns the name of this curve.
	//
	// This should be unique between curves.
	Name() string
	// SafeScalarBytes returns the number of random bytes need to sample a scalar
	// through modular reduction, safely.
	//
	// Usually, this is the number of bytes in the scalar, plus an extra security
	// parameters worth of bytes, say 32.
	SafeScalarBytes() int
	// Order returns a Modulus holding the order of this group.
	Order() *saferith.Modulus
	// HashToPoint maps arbitrary bytes to a point on the curve.
	//
	// The result is deterministic in data, never the identity, and has an
	// unknown discrete logarithm relative to the base point.
	HashToPoint(data []byte) Point
}

// Scalar represents a number modulo the order of some elliptic curve group.
//
// Scalars act on points, but should also form a field amongst themselves.
//
// The methods on Scalar are all intended to be mutable, modifying the current
// scalar, before returning it. The exception is Act and ActOnBase, which should
// leave the current scalar intact. The convention is to write chains like
// group.NewScalar().Set(x).Mul(y) when x must survive.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	// Curve returns the Curve associated with this kind of Scalar.
	Curve() Curve
	// Add mutates this scalar, by adding in another.
	Add(Scalar) Scalar
	// Sub mutates this scalar, by subtracting another.
	Sub(Scalar) Scalar
	// Negate mutates this scalar, replacing it with its negation.
	Negate() Scalar
	// Mul mutates this scalar, multiplying it with another.
	Mul(Scalar) Scalar
	// Invert mutates this scalar, replacing it with its multiplicative inverse.
	Invert() Scalar
	// Equal checks if this scalar is equal to another.
	//
	// This check should be done in constant time.
	Equal(Scalar) bool
	// IsZero checks if this scalar is equal to 0.
	//
	// This check should be done in constant time.
	IsZero() bool
	// Set mutates this scalar, replacing it with the value of another.
	Set(Scalar) Scalar
	// SetNat mutates this scalar, replacing it with the value of a number,
	// reduced modulo the group order.
	SetNat(*saferith.Nat) Scalar
	// Act acts on a point with this scalar, returning a new point.
	//
	// This shouldn't mutate the current scalar, or the point.
	Act(Point) Point
	// ActOnBase acts on the base point with this scalar, returning a new point.
	ActOnBase() Point
}

// Point represents an element of our elliptic curve group.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	// Curve returns the Curve associated with this kind of Point.
	Curve() Curve
	// Add returns the sum of this point with another, without mutating either.
	Add(Point) Point
	// Sub returns the difference of this point with another, without mutating either.
	Sub(Point) Point
	// Negate returns the negation of this point, without mutating it.
	Negate() Point
	// Equal checks if this point is equal to another.
	Equal(Point) bool
	// IsIdentity checks if this is the identity element of this group.
	IsIdentity() bool
}

// SameGroup reports whether all elements belong to a single group.
func SameGroup(group Curve, points ...Point) bool {
	for _, p := range points {
		if p == nil || p.Curve().Name() != group.Name() {
			return false
		}
	}
	return true
}

// FromHash converts a hash value to a Scalar.
//
// There is some disagreement about how this should be done.
// [NSA] suggests that this is done in the obvious
// manner, but [SECG] truncates the hash to the bit-length of the curve order
// first. We follow [SECG] because that's what OpenSSL does. Additionally,
// OpenSSL right shifts excess bits from the number if the hash is too large
// and we mirror that too.
//
// Taken from crypto/ecdsa.
func FromHash(group Curve, h []byte) Scalar {
	order := group.Order()
	orderBits := order.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(h) > orderBytes {
		h = h[:orderBytes]
	}
	s := new(saferith.Nat).SetBytes(h)
	excess := len(h)*8 - orderBits
	if excess > 0 {
		s.Rsh(s, uint(excess), -1)
	}
	return group.NewScalar().SetNat(s)
}
