package attestation

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// rootsDomainTag prefixes state roots carrying the table-commitments tree.
// Roots of other lengths or with other tags belong to unrelated trees and
// are skipped during verification.
const rootsDomainTag byte = 0x00

// taggedRootLen is one domain byte plus a 32-byte keccak root.
const taggedRootLen = 33

// Attestation is a single validator's signature over a tagged state root at
// a block height.
type Attestation struct {
	Signature   EthereumSignature
	Address     ethcommon.Address
	StateRoot   []byte
	BlockNumber uint64
}

// message returns the exact bytes this attestation signs.
func (a *Attestation) message() []byte {
	return CreateAttestationMessage(a.StateRoot, a.BlockNumber)
}

// commitmentsRoot returns the Merkle root for the table-commitments tree,
// or nil when this attestation covers a different domain.
func (a *Attestation) commitmentsRoot() []byte {
	if len(a.StateRoot) != taggedRootLen || a.StateRoot[0] != rootsDomainTag {
		return nil
	}
	return a.StateRoot[1:]
}

// CommitmentWithProof carries one table's serialized commitment together
// with its Merkle path to the attested root.
type CommitmentWithProof struct {
	TableIdentifier string           `json:"tableIdentifier"`
	Commitment      hexutil.Bytes    `json:"commitment"`
	MerkleProof     []ethcommon.Hash `json:"merkleProof"`
}

// siblings flattens the proof path into the form the Merkle walker takes.
func (c *CommitmentWithProof) siblings() [][]byte {
	out := make([][]byte, len(c.MerkleProof))
	for i := range c.MerkleProof {
		out[i] = c.MerkleProof[i][:]
	}
	return out
}

// AttestedCommitmentsBundle is the wire shape the chain RPC returns:
// parallel arrays of signature components and attestor metadata, plus the
// commitments with their proofs. All five arrays must share one length.
type AttestedCommitmentsBundle struct {
	R           []ethcommon.Hash      `json:"r"`
	S           []ethcommon.Hash      `json:"s"`
	V           []uint8               `json:"v"`
	Addresses   []ethcommon.Address   `json:"addresses"`
	StateRoots  []hexutil.Bytes       `json:"stateRoots"`
	BlockNumber uint64                `json:"blockNumber"`
	BlockHash   hexutil.Bytes         `json:"blockHash"`
	Commitments []CommitmentWithProof `json:"commitments"`
}

// attestations zips the parallel arrays into attestation values. A length
// mismatch anywhere means the payload was corrupted in transit.
func (b *AttestedCommitmentsBundle) attestations() ([]Attestation, error) {
	n := len(b.R)
	if len(b.S) != n || len(b.V) != n || len(b.Addresses) != n || len(b.StateRoots) != n {
		return nil, ErrMalformedData
	}
	out := make([]Attestation, n)
	for i := 0; i < n; i++ {
		out[i] = Attestation{
			Signature: EthereumSignature{
				R: [32]byte(b.R[i]),
				S: [32]byte(b.S[i]),
				V: b.V[i],
			},
			Address:     b.Addresses[i],
			StateRoot:   b.StateRoots[i],
			BlockNumber: b.BlockNumber,
		}
	}
	return out, nil
}
