package zkdlneq

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/math/sample"
	"github.com/taurusgroup/sigma-compose/pkg/sigma"
)

var testGroup = curve.Secp256k1{}

type testSetup struct {
	x                          curve.Scalar
	validBase, validTarget     curve.Point
	invalidBase, invalidTarget curve.Point
}

// unequalSetup builds H₀ = x⋅h₀ and H₁ = y⋅h₁ with y ≠ x, so the
// inequality holds.
func unequalSetup(t *testing.T) testSetup {
	t.Helper()
	x := sample.Scalar(rand.Reader, testGroup)
	y := sample.Scalar(rand.Reader, testGroup)
	require.False(t, x.Equal(y))

	h0 := testGroup.NewBasePoint()
	h1 := testGroup.HashToPoint([]byte("second base"))
	return testSetup{
		x:             x,
		validBase:     h0,
		validTarget:   x.Act(h0),
		invalidBase:   h1,
		invalidTarget: y.Act(h1),
	}
}

func TestDLNotEqual(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	statement, err := New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, x, false)
	require.NoError(t, err)

	prover, err := statement.Prover(sigma.Witness{x: s.x})
	require.NoError(t, err)
	ok, err := sigma.NewProtocol(prover, statement.Verifier()).Run(rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDLNotEqualExcludedCase(t *testing.T) {
	// H₁ = x⋅h₁: the claimed inequality does not hold. The precommitment
	// collapses to the identity, and the verifier must reject.
	x := sample.Scalar(rand.Reader, testGroup)
	h0 := testGroup.NewBasePoint()
	h1 := testGroup.HashToPoint([]byte("second base"))

	sec := sigma.NewSecret("x")
	statement, err := New(x.Act(h0), h0, x.Act(h1), h1, sec, false)
	require.NoError(t, err)

	prover, err := statement.Prover(sigma.Witness{sec: x})
	require.NoError(t, err)
	verifier := statement.Verifier()

	// The prover's own resolution also rejects the degenerate precommitment,
	// so run the moves by hand against a simulated opening.
	_, err = prover.Commit(rand.Reader)
	if err == nil {
		t.Fatal("committing to a false inequality should not succeed")
	}

	// A forged commitment around an identity precommitment must also fail.
	forged := &sigma.Commitment{
		Precommitment: []curve.Point{testGroup.NewPoint()},
		Points:        []curve.Point{testGroup.NewPoint(), testGroup.NewPoint()},
	}
	_, err = verifier.Challenge(rand.Reader, forged)
	require.NoError(t, err)
	zero := testGroup.NewScalar()
	assert.False(t, verifier.Verify(&sigma.Response{Scalars: []curve.Scalar{zero, zero}}),
		"an identity precommitment must be rejected")
}

func TestDLNotEqualNonInteractive(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	statement, err := New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, x, false)
	require.NoError(t, err)

	proof, err := sigma.Prove(rand.Reader, hash.New(), statement, sigma.Witness{x: s.x}, []byte("blacklist"))
	require.NoError(t, err)
	assert.True(t, proof.Verify(hash.New(), statement, []byte("blacklist")))
	assert.False(t, proof.Verify(hash.New(), statement, []byte("whitelist")))

	data, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := sigma.EmptyProof(statement)
	require.NoError(t, cbor.Unmarshal(data, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.Verify(hash.New(), statement, []byte("blacklist")))
}

func TestDLNotEqualBinding(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	statement, err := New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, x, true)
	require.NoError(t, err)

	// With binding, the proof can be conjoined with another statement about
	// the same x, under the same handle.
	extra := testGroup.HashToPoint([]byte("extra base"))
	outer, err := sigma.NewLinear(s.x.Act(extra), sigma.T(x, extra))
	require.NoError(t, err)
	composed, err := sigma.NewAnd(statement, outer)
	require.NoError(t, err)

	prover, err := composed.Prover(sigma.Witness{x: s.x})
	require.NoError(t, err)
	ok, err := sigma.NewProtocol(prover, composed.Verifier()).Run(rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDLNotEqualBindingWrongSecret(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	statement, err := New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, x, true)
	require.NoError(t, err)

	wrong := sample.Scalar(rand.Reader, testGroup)
	prover, err := statement.Prover(sigma.Witness{x: wrong})
	require.NoError(t, err)
	ok, err := sigma.NewProtocol(prover, statement.Verifier()).Run(rand.Reader)
	require.NoError(t, err)
	assert.False(t, ok, "the binding clause must reject a different secret")
}

func TestSimulatePrecommitment(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	statement, err := New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, x, false)
	require.NoError(t, err)

	pre := statement.SimulatePrecommitment(rand.Reader)
	require.Len(t, pre, 1)
	assert.False(t, pre[0].IsIdentity())
}

func TestDLNotEqualMalformed(t *testing.T) {
	s := unequalSetup(t)
	x := sigma.NewSecret("x")
	_, err := New(nil, s.validBase, s.invalidTarget, s.invalidBase, x, false)
	assert.ErrorIs(t, err, sigma.ErrMalformedStatement)
	_, err = New(s.validTarget, s.validBase, s.invalidTarget, s.invalidBase, nil, false)
	assert.ErrorIs(t, err, sigma.ErrMalformedStatement)
}
