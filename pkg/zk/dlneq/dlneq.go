// Package zkdlneq implements a zero-knowledge proof of inequality of two
// discrete logarithms, following Protocol 1 in "Thinking Inside the BLAC
// Box: Smarter Protocols for Faster Anonymous Blacklisting" by Henry and
// Goldberg, 2013.
//
// The statement is
//
//	PK{ x: H₀ = x⋅h₀ ∧ H₁ ≠ x⋅h₁ }
//
// proven through two internal secrets α = x⋅b, β = −b for a fresh nonzero
// blinder b, and the precommitment C = b⋅(x⋅h₁ − H₁):
//
//	0 = α⋅h₀ + β⋅H₀
//	C = α⋅h₁ + β⋅H₁
//
// The first clause ties α, β to x algebraically; the second only has a
// nonzero C when x⋅h₁ ≠ H₁. A verifier must reject C = 0, since the system
// becomes trivially satisfiable there; the engine's precommitment validation
// does so, reporting it as a failed verification.
package zkdlneq

import (
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/math/sample"
	"github.com/taurusgroup/sigma-compose/pkg/sigma"
)

// Statement holds the public pairs of the inequality proof. It implements
// sigma.ExtendedStatement.
type Statement struct {
	group curve.Curve

	// ValidTarget = x⋅ValidBase
	validTarget, validBase curve.Point
	// InvalidTarget ≠ x⋅InvalidBase
	invalidTarget, invalidBase curve.Point

	x           *sigma.Secret
	alpha, beta *sigma.Secret
	binding     bool
}

// New builds the inequality statement from the valid pair (H₀, h₀) with
// H₀ = x⋅h₀ and the invalid pair (H₁, h₁) for which x⋅h₁ ≠ H₁ is claimed.
//
// With binding set, a third clause proves H₀ = x⋅h₀ under the caller's own
// handle for x, which lets the proof be conjoined with other statements
// about the same x. Without binding, only the internal randomized secrets
// appear, and an enclosing conjunction cannot conclude that the same x was
// used; callers composing a non-binding proof do so at their own risk.
func New(validTarget, validBase, invalidTarget, invalidBase curve.Point, x *sigma.Secret, binding bool) (*sigma.Extended, error) {
	if validTarget == nil || validBase == nil || invalidTarget == nil || invalidBase == nil || x == nil {
		return nil, fmt.Errorf("zkdlneq.New: incomplete statement: %w", sigma.ErrMalformedStatement)
	}
	group := validTarget.Curve()
	if !curve.SameGroup(group, validBase, invalidTarget, invalidBase) {
		return nil, fmt.Errorf("zkdlneq.New: %w", sigma.ErrGroupMismatch)
	}
	return sigma.NewExtended(&Statement{
		group:         group,
		validTarget:   validTarget,
		validBase:     validBase,
		invalidTarget: invalidTarget,
		invalidBase:   invalidBase,
		x:             x,
		alpha:         sigma.NewSecret("alpha"),
		beta:          sigma.NewSecret("beta"),
		binding:       binding,
	}), nil
}

func (s *Statement) Group() curve.Curve {
	return s.group
}

func (s *Statement) Secrets() []*sigma.Secret {
	if s.binding {
		return []*sigma.Secret{s.alpha, s.beta, s.x}
	}
	return []*sigma.Secret{s.alpha, s.beta}
}

func (s *Statement) FreeSecrets() []*sigma.Secret {
	return []*sigma.Secret{s.x}
}

func (s *Statement) PrecommitmentSize() int {
	return 1
}

// Precommit draws the blinder b, fixes α = x⋅b and β = −b for this run, and
// produces the precommitment C = b⋅(x⋅h₁ − H₁).
func (s *Statement) Precommit(rand io.Reader, witness sigma.Witness) ([]curve.Point, sigma.Witness, error) {
	x, ok := witness[s.x]
	if !ok || x == nil {
		return nil, nil, fmt.Errorf("%w: %s", sigma.ErrMissingSecret, s.x)
	}
	b := sample.ScalarUnit(rand, s.group)
	alpha := s.group.NewScalar().Set(x).Mul(b)
	beta := s.group.NewScalar().Set(b).Negate()
	diff := x.Act(s.invalidBase).Sub(s.invalidTarget)
	precommitment := []curve.Point{b.Act(diff)}
	internal := sigma.Witness{s.alpha: alpha, s.beta: beta}
	return precommitment, internal, nil
}

// SimulatePrecommitment draws a random non-identity element, the way a
// simulator unable to satisfy the statement would.
func (s *Statement) SimulatePrecommitment(rand io.Reader) []curve.Point {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(rand, seed); err != nil {
		panic(fmt.Sprintf("zkdlneq: failed to read randomness: %v", err))
	}
	return []curve.Point{s.group.HashToPoint(seed)}
}

// BuildInner derives the conjunction both parties prove once the
// precommitment is fixed.
func (s *Statement) BuildInner(precommitment []curve.Point) (sigma.Statement, error) {
	first, err := sigma.NewLinear(s.group.NewPoint(),
		sigma.T(s.alpha, s.validBase), sigma.T(s.beta, s.validTarget))
	if err != nil {
		return nil, err
	}
	second, err := sigma.NewLinear(precommitment[0],
		sigma.T(s.alpha, s.invalidBase), sigma.T(s.beta, s.invalidTarget))
	if err != nil {
		return nil, err
	}
	if !s.binding {
		return sigma.NewAnd(first, second)
	}
	// The binding clause repeats the valid pair without randomizing the
	// secret, under the caller's original handle.
	third, err := sigma.NewLinear(s.validTarget, sigma.T(s.x, s.validBase))
	if err != nil {
		return nil, err
	}
	return sigma.NewAnd(first, second, third)
}

// ValidatePrecommitment rejects the identity: a collapsed precommitment
// would make the second clause trivially true.
func (s *Statement) ValidatePrecommitment(precommitment []curve.Point) bool {
	for _, p := range precommitment {
		if p.IsIdentity() {
			return false
		}
	}
	return true
}

func (s *Statement) WritePublic(h *hash.Hash) error {
	bindingByte := byte(0)
	if s.binding {
		bindingByte = 1
	}
	return h.WriteAny(
		hash.BytesWithDomain{TheDomain: "DLRepNotEqual", Bytes: []byte{bindingByte}},
		s.validTarget, s.validBase, s.invalidTarget, s.invalidBase,
	)
}
