package client

import (
	"context"
	"errors"

	ethcommon "github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/attestation"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/telemetry"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/verifier"
)

// SxTClient bundles the three service clients and the verifier setups into
// the end-to-end query path. Safe for concurrent use.
type SxTClient struct {
	ZkQuery *ZkQueryClient
	Chain   *ChainClient
	Setups  *commitment.VerifierSetups
	Network Network
}

func NewSxTClient(zkQueryURL, authURL, chainURL, apiKey string, setups *commitment.VerifierSetups) *SxTClient {
	auth := NewAuthenticator(authURL, apiKey)
	return &SxTClient{
		ZkQuery: NewZkQueryClient(zkQueryURL, auth),
		Chain:   NewChainClient(chainURL),
		Setups:  setups,
		Network: NetworkMainnet,
	}
}

// QueryOptions tune one QueryAndVerify call.
type QueryOptions struct {
	// Scheme forces a commitment scheme; nil lets the API choose.
	Scheme *commitment.Scheme
	// BlockHash pins attestation fetching to one chain block; nil uses
	// the best recent attested block.
	BlockHash *ethcommon.Hash
	// Timeout in seconds for the prover, forwarded verbatim.
	Timeout *int64
	// Postprocessors run over the verified table, in order.
	Postprocessors []verifier.Postprocessor
}

// QueryAndVerify runs a SQL query through the prover, fetches the attested
// commitments for the tables it touches, and verifies the claimed result
// end to end. Only a fully verified table is ever returned.
func (c *SxTClient) QueryAndVerify(ctx context.Context, sqlText string, opts QueryOptions) (*table.OwnedTable, error) {
	results, err := c.ZkQuery.Run(ctx, &QuerySubmitRequest{
		SQLText:          sqlText,
		SourceNetwork:    c.Network,
		Timeout:          opts.Timeout,
		CommitmentScheme: opts.Scheme,
	})
	if err != nil {
		telemetry.IncrementQueriesFailed()
		return nil, err
	}

	bundle, err := c.Chain.FetchAttestedCommitments(ctx, results.Plan, results.CommitmentScheme, opts.BlockHash)
	if err != nil {
		telemetry.IncrementQueriesFailed()
		return nil, err
	}

	verified, err := verifier.VerifyQueryResult(&verifier.QueryResultsResponse{
		Plan:             results.Plan,
		Proof:            results.Proof,
		Results:          results.Results,
		Commitments:      *bundle,
		CommitmentScheme: results.CommitmentScheme,
	}, c.Setups, opts.Postprocessors...)
	if err != nil {
		telemetry.IncrementQueriesFailed()
		if isAttestationFailure(err) {
			telemetry.IncrementAttestationCheckFail()
		}
		log.WithError(err).WithField("queryId", results.QueryID).Error("QueryVerificationFailed")
		return nil, err
	}

	telemetry.IncrementQueriesVerified()
	telemetry.IncrementAttestationCheckSuccess()
	log.WithFields(log.Fields{
		"queryId": results.QueryID,
		"scheme":  results.CommitmentScheme.String(),
		"rows":    verified.NumRows(),
	}).Info("QueryVerified")
	return verified, nil
}

// isAttestationFailure reports whether a pipeline error came from the
// attestation stage rather than proof verification.
func isAttestationFailure(err error) bool {
	var recoveryErr *attestation.InvalidRecoveryIDError
	return errors.Is(err, attestation.ErrSignatureRecovery) ||
		errors.Is(err, attestation.ErrKeyRecovery) ||
		errors.Is(err, attestation.ErrInvalidPublicKeyRecovered) ||
		errors.Is(err, attestation.ErrMerkleProofVerification) ||
		errors.Is(err, attestation.ErrMalformedData) ||
		errors.As(err, &recoveryErr)
}
