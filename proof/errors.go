package proof

import "errors"

var (
	// ErrProofDeserialization covers any structural defect in the prover's
	// serialized proof payload.
	ErrProofDeserialization = errors.New("malformed evaluation proof")

	// ErrSchemeMismatch means the proof was produced under a different
	// commitment scheme than the configured verifier setup.
	ErrSchemeMismatch = errors.New("proof scheme does not match verifier setup")

	// ErrMissingCommitment means an opening references a table or column
	// with no attested commitment.
	ErrMissingCommitment = errors.New("no attested commitment for opening")

	// ErrEvaluationProof is the terminal failure of the third verification
	// stage: an opening did not check out against its commitment.
	ErrEvaluationProof = errors.New("evaluation proof verification failed")
)
