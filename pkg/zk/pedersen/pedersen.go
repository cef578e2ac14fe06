// Package zkpedersen proves knowledge of the opening of a multi-generator
// commitment: scalars xᵢ with T = Σ xᵢ⋅gᵢ.
//
// This is the canonical linear statement. Passing independent secret handles
// proves N independent discrete logarithms; repeating one handle across
// several generators proves that a single scalar is used at each of them.
package zkpedersen

import (
	"fmt"

	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/sigma"
)

// New builds the statement T = Σ xᵢ⋅gᵢ over matching generator and secret
// slices.
func New(target curve.Point, generators []curve.Point, secrets []*sigma.Secret) (*sigma.Linear, error) {
	if len(generators) == 0 || len(generators) != len(secrets) {
		return nil, fmt.Errorf("zkpedersen.New: %d generators for %d secrets: %w",
			len(generators), len(secrets), sigma.ErrMalformedStatement)
	}
	terms := make([]sigma.Term, len(generators))
	for i := range generators {
		terms[i] = sigma.T(secrets[i], generators[i])
	}
	return sigma.NewLinear(target, terms...)
}

// Target computes Σ xᵢ⋅gᵢ, the public element an honest prover can open.
func Target(group curve.Curve, generators []curve.Point, values []curve.Scalar) curve.Point {
	acc := group.NewPoint()
	for i := range generators {
		acc = acc.Add(values[i].Act(generators[i]))
	}
	return acc
}
