package sigma

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/math/sample"
)

// Commitment is the prover's first message.
type Commitment struct {
	// Precommitment holds the randomized setup elements of the statement's
	// extended parts, in depth-first order. Empty for plain statements.
	Precommitment []curve.Point
	// Points holds one commitment per leaf statement, in depth-first order.
	Points []curve.Point
}

// Response is the prover's final message: one scalar per distinct secret of
// the resolved statement, in first-appearance order.
type Response struct {
	Scalars []curve.Scalar
}

// Prover holds the secret values and the per-run randomizer state for one
// protocol run. A Prover must not be shared between runs: reusing a
// randomizer under two different challenges reveals the secrets.
type Prover struct {
	statement Statement

	// witness is this run's private secret-value table. It starts as a copy
	// of the caller's witness and picks up internally constructed secrets
	// during the precommitment round.
	witness Witness

	leaves      []*Linear
	secrets     []*Secret
	randomizers map[*Secret]curve.Scalar
	committed   bool
	responded   bool
}

func newProver(statement Statement, witness Witness) (*Prover, error) {
	group := statement.Group()
	copied := make(Witness)
	for _, sec := range statement.freeSecrets() {
		v, ok := witness[sec]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSecret, sec)
		}
		if v.Curve().Name() != group.Name() {
			return nil, fmt.Errorf("value for %s: %w", sec, ErrGroupMismatch)
		}
		copied[sec] = group.NewScalar().Set(v)
	}
	return &Prover{statement: statement, witness: copied}, nil
}

// Commit runs the precommitment round for any extended parts of the
// statement, samples one fresh randomizer per distinct secret, and computes
// the commitment of every leaf as Σ rᵢ⋅gᵢ. A secret used in several terms or
// several children contributes its single randomizer at every occurrence.
func (p *Prover) Commit(rand io.Reader) (*Commitment, error) {
	if p.committed {
		return nil, errors.New("sigma.Prover: Commit called twice, provers are single-use")
	}
	precommitment, err := p.statement.precommit(rand, p.witness)
	if err != nil {
		return nil, err
	}
	leaves, rest, err := p.statement.resolve(precommitment)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("sigma.Prover: leftover precommitment elements: %w", ErrMalformedStatement)
	}
	secrets := leafSecrets(leaves)
	group := p.statement.Group()
	randomizers := make(map[*Secret]curve.Scalar, len(secrets))
	for _, sec := range secrets {
		if _, ok := p.witness[sec]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSecret, sec)
		}
		randomizers[sec] = sample.Scalar(rand, group)
	}
	points := make([]curve.Point, len(leaves))
	for i, leaf := range leaves {
		points[i] = leaf.commitment(randomizers)
	}

	p.leaves = leaves
	p.secrets = secrets
	p.randomizers = randomizers
	p.committed = true
	return &Commitment{Precommitment: precommitment, Points: points}, nil
}

// Respond computes zᵢ = rᵢ + e⋅xᵢ for every distinct secret, in the same
// order both sides derive from the statement.
func (p *Prover) Respond(e curve.Scalar) (*Response, error) {
	if !p.committed {
		return nil, errors.New("sigma.Prover: Respond before Commit")
	}
	if p.responded {
		return nil, errors.New("sigma.Prover: Respond called twice, randomizers must not be reused")
	}
	if e == nil {
		return nil, fmt.Errorf("sigma.Prover: nil challenge: %w", ErrMalformedStatement)
	}
	group := p.statement.Group()
	scalars := make([]curve.Scalar, len(p.secrets))
	for i, sec := range p.secrets {
		scalars[i] = group.NewScalar().Set(e).Mul(p.witness[sec]).Add(p.randomizers[sec])
	}
	p.responded = true
	return &Response{Scalars: scalars}, nil
}
