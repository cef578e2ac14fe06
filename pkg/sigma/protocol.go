package sigma

import (
	"errors"
	"io"
)

// Protocol drives one interactive three-move run between a prover and a
// verifier bound to the same statement.
type Protocol struct {
	prover   *Prover
	verifier *Verifier
	done     bool
}

// NewProtocol pairs a prover and a verifier for a single run.
func NewProtocol(prover *Prover, verifier *Verifier) *Protocol {
	return &Protocol{prover: prover, verifier: verifier}
}

// Run executes commitment, challenge, response and verification, strictly in
// that order, and reports whether the verifier accepted.
//
// A Protocol instance is good for exactly one run. Rerunning requires fresh
// prover and verifier instances, so that no randomizer survives into a
// second challenge.
func (p *Protocol) Run(rand io.Reader) (bool, error) {
	if p.done {
		return false, errors.New("sigma.Protocol: Run called twice, protocols are single-use")
	}
	p.done = true
	commitment, err := p.prover.Commit(rand)
	if err != nil {
		return false, err
	}
	e, err := p.verifier.Challenge(rand, commitment)
	if err != nil {
		return false, err
	}
	response, err := p.prover.Respond(e)
	if err != nil {
		return false, err
	}
	return p.verifier.Verify(response), nil
}
