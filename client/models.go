// Package client talks to the Space and Time services: the ZK Query API,
// the auth service, and the chain node's JSON-RPC surface. It fetches the
// material the verification pipeline consumes; it never verifies anything
// itself.
package client

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
)

// Network selects the source of the underlying data.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// ZkQueryStatus is a query job's lifecycle state.
type ZkQueryStatus string

const (
	StatusQueued   ZkQueryStatus = "queued"
	StatusRunning  ZkQueryStatus = "running"
	StatusDone     ZkQueryStatus = "done"
	StatusCanceled ZkQueryStatus = "canceled"
	StatusFailed   ZkQueryStatus = "failed"
)

// Terminal reports whether the job will make no further progress.
func (s ZkQueryStatus) Terminal() bool {
	return s == StatusDone || s == StatusCanceled || s == StatusFailed
}

type QuerySubmitRequest struct {
	SQLText          string             `json:"sqlText"`
	SourceNetwork    Network            `json:"sourceNetwork"`
	Timeout          *int64             `json:"timeout,omitempty"`
	CommitmentScheme *commitment.Scheme `json:"commitmentScheme,omitempty"`
}

type QuerySubmitResponse struct {
	QueryID          uuid.UUID         `json:"queryId"`
	Created          string            `json:"created"`
	CommitmentScheme commitment.Scheme `json:"commitmentScheme"`
}

type QueryStatusResponse struct {
	QueryID          uuid.UUID         `json:"queryId"`
	Created          string            `json:"created"`
	CommitmentScheme commitment.Scheme `json:"commitmentScheme"`
	Status           ZkQueryStatus     `json:"status"`
}

// ZkQueryResults is the prover's completed-job payload. Plan, proof and
// results are hex on the wire and opaque canonical-binary underneath.
type ZkQueryResults struct {
	QueryID          uuid.UUID         `json:"queryId"`
	Created          string            `json:"created"`
	CommitmentScheme commitment.Scheme `json:"commitmentScheme"`
	Success          bool              `json:"success"`
	Canceled         bool              `json:"canceled"`
	Error            *string           `json:"error,omitempty"`
	Completed        string            `json:"completed"`
	Plan             hexutil.Bytes     `json:"plan"`
	Proof            hexutil.Bytes     `json:"proof"`
	Results          hexutil.Bytes     `json:"results"`
}

type QueryPlanRequest struct {
	SQLText       string  `json:"sqlText"`
	SourceNetwork Network `json:"sourceNetwork"`
	EVMCompatible bool    `json:"evmCompatible"`
}

type QueryPlanResponse struct {
	Plan string `json:"plan"`
}

// AttestationsResponse is the chain's attestation payload for one block,
// parallel arrays keyed by attestor index.
type AttestationsResponse struct {
	R               []ethcommon.Hash    `json:"r"`
	S               []ethcommon.Hash    `json:"s"`
	V               []uint8             `json:"v"`
	Addresses       []ethcommon.Address `json:"addresses"`
	StateRoots      []hexutil.Bytes     `json:"stateRoots"`
	BlockNumber     uint64              `json:"blockNumber"`
	AttestationsFor ethcommon.Hash      `json:"attestationsFor"`
}

// VerifiableCommitment is one table's commitment bytes plus its Merkle
// path to the attested root.
type VerifiableCommitment struct {
	Commitment  hexutil.Bytes    `json:"commitment"`
	MerkleProof []ethcommon.Hash `json:"merkleProof"`
}

// VerifiableCommitmentsResponse maps each table the plan touches to its
// verifiable commitment, plus the block the chain answered at.
type VerifiableCommitmentsResponse struct {
	VerifiableCommitments map[string]VerifiableCommitment `json:"verifiableCommitments"`
	At                    ethcommon.Hash                  `json:"at"`
}
