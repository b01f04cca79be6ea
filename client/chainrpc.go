package client

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/imroc/req/v3"
	"github.com/torusresearch/bijson"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/attestation"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
)

const (
	methodAttestationsForBlock   = "attestation_v1_attestationsForBlock"
	methodBestRecentAttestations = "attestation_v1_bestRecentAttestations"
	methodVerifiableCommitments  = "commitments_v1_verifiableCommitmentsForProofPlan"
)

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      uint64            `json:"id"`
	Result  bijson.RawMessage `json:"result,omitempty"`
	Error   *rpcError         `json:"error,omitempty"`
}

// ChainClient speaks JSON-RPC 2.0 to a chain node over HTTP.
type ChainClient struct {
	url    string
	client *req.Client
	nextID uint64
}

func NewChainClient(url string) *ChainClient {
	return &ChainClient{url: url, client: req.C()}
}

func (c *ChainClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	request := rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	}

	var response rpcResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(&request).
		SetSuccessResult(&response).
		Post(c.url)
	if err != nil {
		return err
	}
	if res.IsErrorState() {
		return fmt.Errorf("chain rpc returned %d for %s", res.StatusCode, method)
	}
	if response.Error != nil {
		return fmt.Errorf("chain rpc %s: %s (%d)", method, response.Error.Message, response.Error.Code)
	}
	if response.Result == nil {
		return fmt.Errorf("chain rpc %s: empty result", method)
	}
	return bijson.Unmarshal(response.Result, out)
}

// AttestationsForBlock fetches the attestations covering one block.
func (c *ChainClient) AttestationsForBlock(ctx context.Context, blockHash ethcommon.Hash) (*AttestationsResponse, error) {
	var out AttestationsResponse
	if err := c.call(ctx, methodAttestationsForBlock, []interface{}{blockHash.Hex()}, &out); err != nil {
		return nil, err
	}
	out.AttestationsFor = blockHash
	return &out, nil
}

// BestRecentAttestations fetches the recent block with the most
// attestations.
func (c *ChainClient) BestRecentAttestations(ctx context.Context) (*AttestationsResponse, error) {
	var out AttestationsResponse
	if err := c.call(ctx, methodBestRecentAttestations, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifiableCommitments fetches, for every table a proof plan touches, the
// commitment bytes and Merkle path stored at a block.
func (c *ChainClient) VerifiableCommitments(
	ctx context.Context,
	serializedPlan hexutil.Bytes,
	scheme commitment.Scheme,
	blockHash ethcommon.Hash,
) (*VerifiableCommitmentsResponse, error) {
	var out VerifiableCommitmentsResponse
	params := []interface{}{serializedPlan.String(), scheme, blockHash.Hex()}
	if err := c.call(ctx, methodVerifiableCommitments, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchAttestedCommitments assembles the full bundle the verification
// pipeline consumes: attestations for a block (the best recent one when
// blockHash is nil) zipped with the verifiable commitments stored at it.
func (c *ChainClient) FetchAttestedCommitments(
	ctx context.Context,
	serializedPlan hexutil.Bytes,
	scheme commitment.Scheme,
	blockHash *ethcommon.Hash,
) (*attestation.AttestedCommitmentsBundle, error) {
	var (
		attestations *AttestationsResponse
		err          error
	)
	if blockHash != nil {
		attestations, err = c.AttestationsForBlock(ctx, *blockHash)
	} else {
		attestations, err = c.BestRecentAttestations(ctx)
	}
	if err != nil {
		return nil, err
	}
	if attestations.AttestationsFor == (ethcommon.Hash{}) {
		return nil, errors.New("chain rpc returned attestations with no block hash")
	}

	verifiable, err := c.VerifiableCommitments(ctx, serializedPlan, scheme, attestations.AttestationsFor)
	if err != nil {
		return nil, err
	}

	bundle := &attestation.AttestedCommitmentsBundle{
		R:           attestations.R,
		S:           attestations.S,
		V:           attestations.V,
		Addresses:   attestations.Addresses,
		StateRoots:  attestations.StateRoots,
		BlockNumber: attestations.BlockNumber,
		BlockHash:   attestations.AttestationsFor.Bytes(),
	}
	for id, vc := range verifiable.VerifiableCommitments {
		bundle.Commitments = append(bundle.Commitments, attestation.CommitmentWithProof{
			TableIdentifier: id,
			Commitment:      vc.Commitment,
			MerkleProof:     vc.MerkleProof,
		})
	}
	return bundle, nil
}
