// Package verifier composes the three verification stages into a single
// entry point. Nothing here retries or recovers; any failure means the
// result cannot be trusted and the claimed table must not be surfaced.
package verifier

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/attestation"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/proof"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// QueryResultsResponse is the prover's full response for one query: the
// compiled plan, the claimed result and its evaluation proof, and the
// attested commitments covering every table the plan touches. The blobs
// are canonical-binary and stay opaque until their stage decodes them.
type QueryResultsResponse struct {
	Plan             hexutil.Bytes                         `json:"plan"`
	Proof            hexutil.Bytes                         `json:"proof"`
	Results          hexutil.Bytes                         `json:"results"`
	Params           hexutil.Bytes                         `json:"params,omitempty"`
	Commitments      attestation.AttestedCommitmentsBundle `json:"commitments"`
	CommitmentScheme commitment.Scheme                     `json:"commitmentScheme"`
}

// Postprocessor transforms a verified table before it is surfaced. It only
// ever sees tables the pipeline has fully verified.
type Postprocessor interface {
	Apply(*table.OwnedTable) (*table.OwnedTable, error)
}

// VerifyQueryResult runs attestation, commitment-extraction, and
// evaluation-proof verification in sequence, short-circuiting on the first
// failure, then applies any postprocessors in order. The pipeline is pure;
// the same response and setups always yield the same outcome.
func VerifyQueryResult(resp *QueryResultsResponse, setups *commitment.VerifierSetups, post ...Postprocessor) (*table.OwnedTable, error) {
	setup, err := setups.For(resp.CommitmentScheme)
	if err != nil {
		return nil, err
	}

	verified, err := attestation.VerifyAttestations(&resp.Commitments, resp.CommitmentScheme)
	if err != nil {
		return nil, err
	}

	accessor, err := commitment.ExtractQueryCommitments(verified, resp.CommitmentScheme)
	if err != nil {
		return nil, err
	}

	result, err := proof.VerifyProverResponse(resp.Proof, resp.Results, resp.Plan, resp.Params, accessor, setup)
	if err != nil {
		return nil, err
	}

	for _, p := range post {
		result, err = p.Apply(result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
