package sigma

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/math/sample"
)

// Verifier holds the public statement and the state of one interactive run:
// the commitment it received and the challenge it issued. Like a Prover, a
// Verifier is single-use.
type Verifier struct {
	statement  Statement
	commitment *Commitment
	challenge  curve.Scalar
}

func newVerifier(statement Statement) *Verifier {
	return &Verifier{statement: statement}
}

// Challenge stores the prover's commitment and draws a single uniformly
// random challenge scalar. Composed statements receive this one challenge
// for all of their children.
func (v *Verifier) Challenge(rand io.Reader, commitment *Commitment) (curve.Scalar, error) {
	if v.challenge != nil {
		return nil, errors.New("sigma.Verifier: Challenge called twice, verifiers are single-use")
	}
	if commitment == nil {
		return nil, fmt.Errorf("sigma.Verifier: nil commitment: %w", ErrMalformedStatement)
	}
	v.commitment = commitment
	v.challenge = sample.Scalar(rand, v.statement.Group())
	return v.challenge, nil
}

// Verify checks every leaf's equation Σ zᵢ⋅gᵢ == A + e⋅T against the stored
// commitment and challenge.
//
// A false return is an expected outcome, not an error: wrong public data,
// tampered responses and degenerate precommitments all surface here as
// false.
func (v *Verifier) Verify(response *Response) bool {
	if v.challenge == nil || v.commitment == nil || response == nil {
		return false
	}
	leaves, rest, err := v.statement.resolve(v.commitment.Precommitment)
	if err != nil || len(rest) != 0 {
		return false
	}
	if len(v.commitment.Points) != len(leaves) {
		return false
	}
	secrets := leafSecrets(leaves)
	if len(response.Scalars) != len(secrets) {
		return false
	}
	responses := make(map[*Secret]curve.Scalar, len(secrets))
	for i, sec := range secrets {
		if response.Scalars[i] == nil {
			return false
		}
		responses[sec] = response.Scalars[i]
	}
	for i, leaf := range leaves {
		if v.commitment.Points[i] == nil {
			return false
		}
		if !leaf.check(v.commitment.Points[i], v.challenge, responses) {
			return false
		}
	}
	return true
}
