package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// A reader holding exactly SafeScalarBytes must satisfy one sample; reading
// any more would exhaust it and fail.
func TestScalarConsumesSafeScalarBytes(t *testing.T) {
	group := curve.Secp256k1{}
	buf := make([]byte, group.SafeScalarBytes())
	for i := range buf {
		buf[i] = byte(i)
	}
	a := Scalar(bytes.NewReader(buf), group)
	b := Scalar(bytes.NewReader(buf), group)
	assert.True(t, a.Equal(b), "sampling is deterministic in the input stream")
	assert.False(t, a.IsZero())
}

func TestScalarDistinct(t *testing.T) {
	group := curve.Secp256k1{}
	a := Scalar(rand.Reader, group)
	b := Scalar(rand.Reader, group)
	assert.False(t, a.Equal(b), "two random scalars should not collide")
}

func TestScalarUnit(t *testing.T) {
	group := curve.Secp256k1{}
	for i := 0; i < 8; i++ {
		assert.False(t, ScalarUnit(rand.Reader, group).IsZero())
	}
}

func TestScalarPointPair(t *testing.T) {
	group := curve.Secp256k1{}
	x, X := ScalarPointPair(rand.Reader, group)
	assert.True(t, x.ActOnBase().Equal(X))
}
