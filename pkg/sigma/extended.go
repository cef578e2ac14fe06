package sigma

import (
	"fmt"
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
)

// ExtendedStatement describes a protocol whose statement is only fully
// determined after an extra randomized precommitment round.
//
// The prover draws a precommitment first; both sides then derive the same
// inner statement from it with BuildInner, and the standard three-move
// protocol runs against that inner statement. Inner statements must resolve
// without further precommitments, so they are built from Linear leaves and
// And conjunctions.
type ExtendedStatement interface {
	Group() curve.Curve
	// Secrets lists every secret of the derived inner statement, in the
	// order the inner conjunction uses them.
	Secrets() []*Secret
	// FreeSecrets lists the secrets whose values the prover must supply; the
	// remaining secrets are computed during Precommit.
	FreeSecrets() []*Secret
	// PrecommitmentSize is the number of group elements in a precommitment.
	PrecommitmentSize() int
	// Precommit draws a fresh precommitment and returns the per-run values
	// of the statement's internal secrets.
	Precommit(rand io.Reader, witness Witness) ([]curve.Point, Witness, error)
	// SimulatePrecommitment draws a precommitment the way a simulator would,
	// without knowing any secret value.
	SimulatePrecommitment(rand io.Reader) []curve.Point
	// BuildInner derives the inner statement from a precommitment. This must
	// be a pure function: both parties derive the statement independently.
	BuildInner(precommitment []curve.Point) (Statement, error)
	// ValidatePrecommitment rejects degenerate precommitments which would
	// make the inner statement trivially true.
	ValidatePrecommitment(precommitment []curve.Point) bool
	// WritePublic binds the statement's public data into a transcript hash.
	WritePublic(h *hash.Hash) error
}

// Extended lifts an ExtendedStatement into the statement tree.
type Extended struct {
	impl ExtendedStatement
}

// NewExtended wraps a two-phase statement so it can be proven on its own or
// composed inside a conjunction.
func NewExtended(impl ExtendedStatement) *Extended {
	return &Extended{impl: impl}
}

func (e *Extended) Group() curve.Curve {
	return e.impl.Group()
}

func (e *Extended) Secrets() []*Secret {
	return append([]*Secret{}, e.impl.Secrets()...)
}

func (e *Extended) Prover(witness Witness) (*Prover, error) {
	return newProver(e, witness)
}

func (e *Extended) Verifier() *Verifier {
	return newVerifier(e)
}

// SimulatePrecommitment exposes the simulator's precommitment, for verifiers
// producing fake transcripts.
func (e *Extended) SimulatePrecommitment(rand io.Reader) []curve.Point {
	return e.impl.SimulatePrecommitment(rand)
}

func (e *Extended) freeSecrets() []*Secret {
	return e.impl.FreeSecrets()
}

func (e *Extended) precommitmentSize() int {
	return e.impl.PrecommitmentSize()
}

func (e *Extended) precommit(rand io.Reader, witness Witness) ([]curve.Point, error) {
	pre, internal, err := e.impl.Precommit(rand, witness)
	if err != nil {
		return nil, err
	}
	if len(pre) != e.impl.PrecommitmentSize() {
		return nil, fmt.Errorf("sigma.Extended: wrong precommitment size %d: %w", len(pre), ErrMalformedStatement)
	}
	for sec, v := range internal {
		witness[sec] = v
	}
	return pre, nil
}

func (e *Extended) resolve(precommitment []curve.Point) ([]*Linear, []curve.Point, error) {
	n := e.impl.PrecommitmentSize()
	if len(precommitment) < n {
		return nil, nil, fmt.Errorf("sigma.Extended: missing precommitment: %w", ErrMalformedStatement)
	}
	pre, rest := precommitment[:n], precommitment[n:]
	for _, p := range pre {
		if p == nil || !curve.SameGroup(e.impl.Group(), p) {
			return nil, nil, fmt.Errorf("sigma.Extended: bad precommitment element: %w", ErrGroupMismatch)
		}
	}
	if !e.impl.ValidatePrecommitment(pre) {
		return nil, nil, errDegeneratePrecommitment
	}
	inner, err := e.impl.BuildInner(pre)
	if err != nil {
		return nil, nil, err
	}
	leaves, leftover, err := inner.resolve(nil)
	if err != nil {
		return nil, nil, err
	}
	if len(leftover) != 0 {
		return nil, nil, fmt.Errorf("sigma.Extended: inner statement is extended: %w", ErrMalformedStatement)
	}
	return leaves, rest, nil
}

func (e *Extended) writePublic(h *hash.Hash) error {
	if err := h.WriteAny(hash.BytesWithDomain{TheDomain: "Extended"}); err != nil {
		return err
	}
	return e.impl.WritePublic(h)
}
