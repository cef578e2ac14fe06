package sigma

import (
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// Statement describes a provable relation. It is immutable once built, and
// safe to share between concurrent protocol runs; all per-run state lives in
// the Prover and Verifier instances it creates.
//
// The set of statement kinds is closed: Linear leaves, And conjunctions, and
// Extended two-phase statements.
type Statement interface {
	// Group returns the group every element of the statement belongs to.
	Group() curve.Curve
	// Secrets returns the distinct secrets of the resolved statement, in
	// first-appearance depth-first order. Responses follow this order.
	Secrets() []*Secret
	// Prover binds the statement to secret values for one protocol run.
	//
	// It fails with ErrMissingSecret if the witness lacks a value for any
	// free secret of the statement.
	Prover(witness Witness) (*Prover, error)
	// Verifier prepares one protocol run against the public statement.
	Verifier() *Verifier

	// freeSecrets lists the secrets whose values a prover must supply.
	freeSecrets() []*Secret
	// precommitmentSize is the total number of precommitment elements the
	// statement's extended parts produce.
	precommitmentSize() int
	// precommit runs the precommitment round on all extended parts, in
	// depth-first order, merging internal secret values into the witness.
	precommit(rand io.Reader, witness Witness) ([]curve.Point, error)
	// resolve derives the depth-first list of leaf statements, consuming the
	// precommitment elements the statement's extended parts require, and
	// returns the unconsumed remainder.
	resolve(precommitment []curve.Point) (leaves []*Linear, rest []curve.Point, err error)
	// writePublic binds the statement's public data into a transcript hash.
	writePublic(h *hash.Hash) error
}

func appendUnique(secrets []*Secret, extra ...*Secret) []*Secret {
	for _, sec := range extra {
		seen := false
		for _, s := range secrets {
			if s == sec {
				seen = true
				break
			}
		}
		if !seen {
			secrets = append(secrets, sec)
		}
	}
	return secrets
}

// leafSecrets collects the distinct secrets of resolved leaves, in
// first-appearance order. Both sides of the protocol derive the response
// ordering from this.
func leafSecrets(leaves []*Linear) []*Secret {
	var secrets []*Secret
	for _, leaf := range leaves {
		secrets = appendUnique(secrets, leaf.secrets...)
	}
	return secrets
}
