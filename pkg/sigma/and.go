package sigma

import (
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// And is the conjunction of two or more statements.
//
// A single challenge is broadcast to every child, which is what binds the
// conjunction together cryptographically. A secret handle shared between
// children receives exactly one randomizer and one response, so the
// conjunction proves that the same scalar satisfies every child, not merely
// that each child is satisfiable. Conjunctions nest arbitrarily and behave
// like their flattening.
type And struct {
	group    curve.Curve
	children []Statement
	secrets  []*Secret
	free     []*Secret
}

// NewAnd composes child statements into a conjunction.
//
// All children must live in the same group: a secret shared between children
// can only mean one scalar in one group, so mixing groups fails here with
// ErrGroupMismatch rather than producing an unverifiable statement.
func NewAnd(children ...Statement) (*And, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("sigma.NewAnd: need at least two children: %w", ErrMalformedStatement)
	}
	// writePublic encodes the child count in a single byte.
	if len(children) > 255 {
		return nil, fmt.Errorf("sigma.NewAnd: %d children, at most 255 supported: %w",
			len(children), ErrMalformedStatement)
	}
	group := children[0].Group()
	var secrets, free []*Secret
	for _, child := range children {
		if child == nil {
			return nil, fmt.Errorf("sigma.NewAnd: nil child: %w", ErrMalformedStatement)
		}
		if child.Group().Name() != group.Name() {
			return nil, fmt.Errorf("sigma.NewAnd: children from different groups: %w", ErrGroupMismatch)
		}
		secrets = appendUnique(secrets, child.Secrets()...)
		free = appendUnique(free, child.freeSecrets()...)
	}
	return &And{
		group:    group,
		children: append([]Statement{}, children...),
		secrets:  secrets,
		free:     free,
	}, nil
}

func (a *And) Group() curve.Curve {
	return a.group
}

func (a *And) Secrets() []*Secret {
	return append([]*Secret{}, a.secrets...)
}

func (a *And) Prover(witness Witness) (*Prover, error) {
	return newProver(a, witness)
}

func (a *And) Verifier() *Verifier {
	return newVerifier(a)
}

func (a *And) freeSecrets() []*Secret {
	return a.free
}

func (a *And) precommitmentSize() int {
	total := 0
	for _, child := range a.children {
		total += child.precommitmentSize()
	}
	return total
}

func (a *And) precommit(rand io.Reader, witness Witness) ([]curve.Point, error) {
	var out []curve.Point
	for _, child := range a.children {
		pre, err := child.precommit(rand, witness)
		if err != nil {
			return nil, err
		}
		out = append(out, pre...)
	}
	return out, nil
}

func (a *And) resolve(precommitment []curve.Point) ([]*Linear, []curve.Point, error) {
	var leaves []*Linear
	for _, child := range a.children {
		sub, rest, err := child.resolve(precommitment)
		if err != nil {
			return nil, nil, err
		}
		leaves = append(leaves, sub...)
		precommitment = rest
	}
	return leaves, precommitment, nil
}

func (a *And) writePublic(h *hash.Hash) error {
	if err := h.WriteAny(hash.BytesWithDomain{TheDomain: "And", Bytes: []byte{byte(len(a.children))}}); err != nil {
		return err
	}
	for _, child := range a.children {
		if err := child.writePublic(h); err != nil {
			return err
		}
	}
	return nil
}
