package sigma

import "github.com/taurusgroup/sigma-compose/pkg/math/curve"

// Secret is an opaque handle naming an unknown scalar inside a statement.
//
// Identity is the handle itself: using the same *Secret in several terms, or
// in several composed statements, declares that a single scalar is shared
// there, and the protocol will use a single randomizer and a single response
// for it. The label is only used for display.
type Secret struct {
	label string
}

// NewSecret creates a fresh secret handle with a display label.
func NewSecret(label string) *Secret {
	return &Secret{label: label}
}

// Label returns the display label of the secret.
func (s *Secret) Label() string {
	return s.label
}

func (s *Secret) String() string {
	if s == nil {
		return "Secret(nil)"
	}
	return "Secret(" + s.label + ")"
}

// Witness assigns a value to every secret a prover must know.
//
// A Prover copies the scalars it needs at construction, so the same Witness
// can safely be reused for several runs.
type Witness map[*Secret]curve.Scalar
