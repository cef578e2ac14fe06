package sigma

import (
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// Term weights a single generator by one secret scalar.
type Term struct {
	Secret    *Secret
	Generator curve.Point
}

// T is shorthand for building a Term.
func T(secret *Secret, generator curve.Point) Term {
	return Term{Secret: secret, Generator: generator}
}

// Linear is a discrete-log representation statement: knowledge of scalars xᵢ
// such that T = Σ xᵢ⋅gᵢ.
type Linear struct {
	group  curve.Curve
	target curve.Point
	terms  []Term

	// distinct secrets, first-appearance order
	secrets []*Secret
}

// NewLinear describes knowledge of secrets xᵢ such that target = Σ xᵢ⋅gᵢ.
//
// Reusing one secret handle across several terms means the same scalar is
// multiplied with each of those generators. All generators and the target
// must belong to one group; mixing groups fails here with ErrGroupMismatch,
// never later during verification.
func NewLinear(target curve.Point, terms ...Term) (*Linear, error) {
	if target == nil {
		return nil, fmt.Errorf("sigma.NewLinear: nil target: %w", ErrMalformedStatement)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("sigma.NewLinear: no terms: %w", ErrMalformedStatement)
	}
	group := target.Curve()
	var secrets []*Secret
	for _, t := range terms {
		if t.Secret == nil || t.Generator == nil {
			return nil, fmt.Errorf("sigma.NewLinear: incomplete term: %w", ErrMalformedStatement)
		}
		if !curve.SameGroup(group, t.Generator) {
			return nil, fmt.Errorf("sigma.NewLinear: generator for %s: %w", t.Secret, ErrGroupMismatch)
		}
		secrets = appendUnique(secrets, t.Secret)
	}
	// writePublic encodes each term's secret index in a single byte.
	if len(secrets) > 255 {
		return nil, fmt.Errorf("sigma.NewLinear: %d distinct secrets, at most 255 supported: %w",
			len(secrets), ErrMalformedStatement)
	}
	return &Linear{
		group:   group,
		target:  target,
		terms:   append([]Term{}, terms...),
		secrets: secrets,
	}, nil
}

func (l *Linear) Group() curve.Curve {
	return l.group
}

// Target returns the public element the linear combination must equal.
func (l *Linear) Target() curve.Point {
	return l.target
}

func (l *Linear) Secrets() []*Secret {
	return append([]*Secret{}, l.secrets...)
}

func (l *Linear) Prover(witness Witness) (*Prover, error) {
	return newProver(l, witness)
}

func (l *Linear) Verifier() *Verifier {
	return newVerifier(l)
}

func (l *Linear) freeSecrets() []*Secret {
	return l.secrets
}

func (l *Linear) precommitmentSize() int {
	return 0
}

func (l *Linear) precommit(io.Reader, Witness) ([]curve.Point, error) {
	return nil, nil
}

func (l *Linear) resolve(precommitment []curve.Point) ([]*Linear, []curve.Point, error) {
	return []*Linear{l}, precommitment, nil
}

func (l *Linear) writePublic(h *hash.Hash) error {
	// The index bytes bind which terms share a secret, so that two statements
	// differing only in their sharing pattern hash differently.
	indices := make([]byte, len(l.terms))
	for i, t := range l.terms {
		for j, sec := range l.secrets {
			if sec == t.Secret {
				indices[i] = byte(j)
				break
			}
		}
	}
	if err := h.WriteAny(hash.BytesWithDomain{TheDomain: "DLRep", Bytes: indices}, l.target); err != nil {
		return err
	}
	for _, t := range l.terms {
		if err := h.WriteAny(t.Generator); err != nil {
			return err
		}
	}
	return nil
}

// commitment computes Σ sᵢ⋅gᵢ over the terms, resolving each occurrence of a
// secret from the given scalar map. Used with randomizers during the commit
// phase, and with responses during verification.
func (l *Linear) commitment(scalars map[*Secret]curve.Scalar) curve.Point {
	acc := l.group.NewPoint()
	for _, t := range l.terms {
		acc = acc.Add(scalars[t.Secret].Act(t.Generator))
	}
	return acc
}

// check verifies Σ zᵢ⋅gᵢ == A + e⋅T.
func (l *Linear) check(commitment curve.Point, e curve.Scalar, responses map[*Secret]curve.Scalar) bool {
	lhs := l.commitment(responses)
	rhs := commitment.Add(e.Act(l.target))
	return lhs.Equal(rhs)
}

// impliedCommitment recomputes the commitment a transcript implies,
// A = Σ zᵢ⋅gᵢ − e⋅T.
func (l *Linear) impliedCommitment(e curve.Scalar, responses map[*Secret]curve.Scalar) curve.Point {
	return l.commitment(responses).Sub(e.Act(l.target))
}
