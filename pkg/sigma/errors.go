package sigma

import "errors"

// Construction-time failures. Cryptographic falsity is never an error:
// Verify methods report it as a plain false.
var (
	// ErrGroupMismatch indicates that the elements of one statement tree do
	// not all belong to the same group.
	ErrGroupMismatch = errors.New("sigma: group mismatch")
	// ErrMalformedStatement indicates a structurally invalid statement, such
	// as a linear statement without terms.
	ErrMalformedStatement = errors.New("sigma: malformed statement")
	// ErrMissingSecret indicates that a witness lacks a value for a secret
	// the statement references.
	ErrMissingSecret = errors.New("sigma: missing value for secret")
)

// errDegeneratePrecommitment marks a precommitment which would make an inner
// statement trivially true. Verifiers never surface it: they report a failed
// verification instead, to avoid leaking information through an error side
// channel. A prover hitting it learns that its own statement is false.
var errDegeneratePrecommitment = errors.New("sigma: degenerate precommitment")
