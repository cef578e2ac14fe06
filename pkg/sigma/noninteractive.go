package sigma

import (
	"io"

	"github.com/taurusgroup/sigma-compose/pkg/hash"
	"github.com/taurusgroup/sigma-compose/pkg/math/curve"
	"github.com/taurusgroup/sigma-compose/pkg/math/sample"
)

// Proof is a non-interactive transcript: the Fiat-Shamir challenge plus one
// response per distinct secret, bound to an application message. It is
// self-contained and verifiable without a live verifier.
//
// Proofs marshal with cbor; use EmptyProof to obtain a shell whose group
// elements can be decoded into.
type Proof struct {
	Precommitment []curve.Point
	Challenge     curve.Scalar
	Responses     []curve.Scalar
}

// challenge derives the Fiat-Shamir challenge from the statement's public
// data, the full commitment and the application message. Changing any of the
// three changes the challenge.
func challenge(h *hash.Hash, statement Statement, commitment *Commitment, message []byte) (curve.Scalar, error) {
	if err := statement.writePublic(h); err != nil {
		return nil, err
	}
	for _, p := range commitment.Precommitment {
		if err := h.WriteAny(p); err != nil {
			return nil, err
		}
	}
	for _, p := range commitment.Points {
		if err := h.WriteAny(p); err != nil {
			return nil, err
		}
	}
	if err := h.WriteAny(message); err != nil {
		return nil, err
	}
	return sample.Scalar(h.Digest(), statement.Group()), nil
}

// Prove produces a non-interactive proof of the statement, replacing the
// verifier's random challenge with a hash of the statement, the commitment
// and the message.
func Prove(rand io.Reader, h *hash.Hash, statement Statement, witness Witness, message []byte) (*Proof, error) {
	prover, err := statement.Prover(witness)
	if err != nil {
		return nil, err
	}
	commitment, err := prover.Commit(rand)
	if err != nil {
		return nil, err
	}
	e, err := challenge(h, statement, commitment, message)
	if err != nil {
		return nil, err
	}
	response, err := prover.Respond(e)
	if err != nil {
		return nil, err
	}
	return &Proof{
		Precommitment: commitment.Precommitment,
		Challenge:     e,
		Responses:     response.Scalars,
	}, nil
}

// Verify checks the transcript against the statement and message. It
// recomputes the commitment each leaf implies, A = Σ zᵢ⋅gᵢ − e⋅T, and
// accepts iff hashing the implied commitment with the same message
// reproduces the challenge.
func (p *Proof) Verify(h *hash.Hash, statement Statement, message []byte) bool {
	if p == nil || p.Challenge == nil {
		return false
	}
	leaves, rest, err := statement.resolve(p.Precommitment)
	if err != nil || len(rest) != 0 {
		return false
	}
	secrets := leafSecrets(leaves)
	if len(p.Responses) != len(secrets) {
		return false
	}
	responses := make(map[*Secret]curve.Scalar, len(secrets))
	for i, sec := range secrets {
		if p.Responses[i] == nil {
			return false
		}
		responses[sec] = p.Responses[i]
	}
	points := make([]curve.Point, len(leaves))
	for i, leaf := range leaves {
		points[i] = leaf.impliedCommitment(p.Challenge, responses)
	}
	e, err := challenge(h, statement, &Commitment{Precommitment: p.Precommitment, Points: points}, message)
	if err != nil {
		return false
	}
	return e.Equal(p.Challenge)
}

// EmptyProof returns a proof shell for the statement, ready for
// unmarshalling: cbor needs concrete group types behind the interfaces to
// decode into.
func EmptyProof(statement Statement) *Proof {
	group := statement.Group()
	responses := make([]curve.Scalar, len(statement.Secrets()))
	for i := range responses {
		responses[i] = group.NewScalar()
	}
	precommitment := make([]curve.Point, statement.precommitmentSize())
	for i := range precommitment {
		precommitment[i] = group.NewPoint()
	}
	return &Proof{
		Precommitment: precommitment,
		Challenge:     group.NewScalar(),
		Responses:     responses,
	}
}
