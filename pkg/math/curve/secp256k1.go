package curve

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/sigma-compose/internal/params"
	"github.com/zeebo/blake3"
)

// Secp256k1 is an implementation of Curve for the secp256k1 group, backed by
// decred's constant-time arithmetic.
type Secp256k1 struct{}

func (Secp256k1) NewPoint() Point {
	return new(secp256k1Point)
}

func (Secp256k1) NewBasePoint() Point {
	out := new(secp256k1Point)
	out.value.X.Set(&secp256k1BaseX)
	out.value.Y.Set(&secp256k1BaseY)
	out.value.Z.SetInt(1)
	return out
}

func (Secp256k1) NewScalar() Scalar {
	return new(secp256k1Scalar)
}

func (Secp256k1) Name() string {
	return "secp256k1"
}

func (Secp256k1) SafeScalarBytes() int {
	return params.BytesScalar + params.SecBytes
}

func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1Order
}

// secp256k1HashIterations bounds the try-and-increment loop in HashToPoint.
//
// Each candidate x coordinate lies on the curve with probability ~1/2, so
// failing 255 times in a row means the hash function is broken.
const secp256k1HashIterations = 255

// HashToPoint maps data to a point with unknown discrete logarithm, by reading
// candidate compressed encodings from an extendable digest of the input until
// one decodes to a curve point.
func (Secp256k1) HashToPoint(data []byte) Point {
	h := blake3.New()
	_, _ = h.Write([]byte("secp256k1 hash to point"))
	_, _ = h.Write(data)
	digest := h.Digest()
	buf := make([]byte, params.BytesPoint)
	for i := 0; i < secp256k1HashIterations; i++ {
		if _, err := io.ReadFull(digest, buf); err != nil {
			break
		}
		buf[0] = byte(secp256k1.PubKeyFormatCompressedEven) + (buf[0] & 1)
		out := new(secp256k1Point)
		if err := out.UnmarshalBinary(buf); err == nil && !out.IsIdentity() {
			return out
		}
	}
	panic("curve.Secp256k1: failed to hash to a point")
}

var (
	secp256k1BaseX secp256k1.FieldVal
	secp256k1BaseY secp256k1.FieldVal
	secp256k1Order *saferith.Modulus
)

func mustHex(s string) []byte {
	data, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return data
}

func init() {
	// Constants taken from https://www.secg.org/sec2-v2.pdf
	secp256k1BaseX.SetByteSlice(mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
	secp256k1BaseY.SetByteSlice(mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))
	secp256k1Order = saferith.ModulusFromBytes(mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"))
}

type secp256k1Scalar struct {
	value secp256k1.ModNScalar
}

func secp256k1CastScalar(generic Scalar) *secp256k1Scalar {
	out, ok := generic.(*secp256k1Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to secp256k1Scalar: %v", generic))
	}
	return out
}

func (*secp256k1Scalar) Curve() Curve {
	return Secp256k1{}
}

func (s *secp256k1Scalar) MarshalBinary() ([]byte, error) {
	data := s.value.Bytes()
	return data[:], nil
}

func (s *secp256k1Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesScalar {
		return fmt.Errorf("curve.Scalar.UnmarshalBinary: invalid length for secp256k1 scalar: %d", len(data))
	}
	var exactData [32]byte
	copy(exactData[:], data)
	if s.value.SetBytes(&exactData) != 0 {
		return errors.New("curve.Scalar.UnmarshalBinary: scalar was >= q")
	}
	return nil
}

func (s *secp256k1Scalar) Add(that Scalar) Scalar {
	other := secp256k1CastScalar(that)

	s.value.Add(&other.value)
	return s
}

func (s *secp256k1Scalar) Sub(that Scalar) Scalar {
	other := secp256k1CastScalar(that)

	negated := new(secp256k1.ModNScalar).NegateVal(&other.value)
	s.value.Add(negated)
	return s
}

func (s *secp256k1Scalar) Mul(that Scalar) Scalar {
	other := secp256k1CastScalar(that)

	s.value.Mul(&other.value)
	return s
}

func (s *secp256k1Scalar) Invert() Scalar {
	s.value.InverseNonConst()
	return s
}

func (s *secp256k1Scalar) Negate() Scalar {
	s.value.Negate()
	return s
}

func (s *secp256k1Scalar) Equal(that Scalar) bool {
	other := secp256k1CastScalar(that)

	return s.value.Equals(&other.value)
}

func (s *secp256k1Scalar) IsZero() bool {
	return s.value.IsZero()
}

func (s *secp256k1Scalar) Set(that Scalar) Scalar {
	other := secp256k1CastScalar(that)

	s.value.Set(&other.value)
	return s
}

func (s *secp256k1Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, secp256k1Order)
	if s.value.SetByteSlice(reduced.Bytes()) {
		panic("curve.Scalar.SetNat: reduced value overflowed")
	}
	return s
}

func (s *secp256k1Scalar) Act(that Point) Point {
	other := secp256k1CastPoint(that)
	out := new(secp256k1Point)
	secp256k1.ScalarMultNonConst(&s.value, &other.value, &out.value)
	return out
}

func (s *secp256k1Scalar) ActOnBase() Point {
	out := new(secp256k1Point)
	secp256k1.ScalarBaseMultNonConst(&s.value, &out.value)
	return out
}

type secp256k1Point struct {
	value secp256k1.JacobianPoint
}

func secp256k1CastPoint(generic Point) *secp256k1Point {
	out, ok := generic.(*secp256k1Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to secp256k1Point: %v", generic))
	}
	return out
}

func (*secp256k1Point) Curve() Curve {
	return Secp256k1{}
}

// MarshalBinary encodes the point in 33 bytes, compressed, with the identity
// encoded as all zero bytes.
func (p *secp256k1Point) MarshalBinary() ([]byte, error) {
	out := make([]byte, params.BytesPoint)
	if p.IsIdentity() {
		return out, nil
	}
	var affine secp256k1.JacobianPoint
	affine.Set(&p.value)
	affine.ToAffine()
	out[0] = byte(secp256k1.PubKeyFormatCompressedEven)
	if affine.Y.IsOdd() {
		out[0] = byte(secp256k1.PubKeyFormatCompressedOdd)
	}
	affine.X.PutBytesUnchecked(out[1:])
	return out, nil
}

func (p *secp256k1Point) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesPoint {
		return fmt.Errorf("curve.Point.UnmarshalBinary: invalid length for secp256k1Point: %d", len(data))
	}
	if data[0] == 0 {
		for _, b := range data[1:] {
			if b != 0 {
				return errors.New("curve.Point.UnmarshalBinary: invalid identity encoding")
			}
		}
		p.value.X.SetInt(0)
		p.value.Y.SetInt(0)
		p.value.Z.SetInt(0)
		return nil
	}
	if data[0] != byte(secp256k1.PubKeyFormatCompressedEven) && data[0] != byte(secp256k1.PubKeyFormatCompressedOdd) {
		return errors.New("curve.Point.UnmarshalBinary: incorrect format byte")
	}
	var x, y secp256k1.FieldVal
	if x.SetByteSlice(data[1:]) {
		return errors.New("curve.Point.UnmarshalBinary: x coordinate out of range")
	}
	wantOddY := data[0] == byte(secp256k1.PubKeyFormatCompressedOdd)
	if !secp256k1.DecompressY(&x, wantOddY, &y) {
		return errors.New("curve.Point.UnmarshalBinary: x coordinate not on curve")
	}
	y.Normalize()
	p.value.X.Set(&x)
	p.value.Y.Set(&y)
	p.value.Z.SetInt(1)
	return nil
}

func (p *secp256k1Point) Add(that Point) Point {
	other := secp256k1CastPoint(that)

	out := new(secp256k1Point)
	secp256k1.AddNonConst(&p.value, &other.value, &out.value)
	return out
}

func (p *secp256k1Point) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *secp256k1Point) Negate() Point {
	out := new(secp256k1Point)
	out.value.Set(&p.value)
	out.value.Y.Normalize()
	out.value.Y.Negate(1)
	out.value.Y.Normalize()
	return out
}

func (p *secp256k1Point) Equal(that Point) bool {
	other := secp256k1CastPoint(that)

	var a, b secp256k1.JacobianPoint
	a.Set(&p.value)
	b.Set(&other.value)
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y) && a.Z.Equals(&b.Z)
}

func (p *secp256k1Point) IsIdentity() bool {
	var a secp256k1.JacobianPoint
	a.Set(&p.value)
	a.Z.Normalize()
	if a.Z.IsZero() {
		return true
	}
	a.ToAffine()
	return a.X.IsZero() && a.Y.IsZero()
}
