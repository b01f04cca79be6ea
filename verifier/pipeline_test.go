package verifier

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/attestation"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/merkle"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/proof"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// buildResponse produces a fully honest end-to-end fixture: an attested
// HyperKZG table commitment under a nine-level Merkle tree signed by three
// attestors, and a matching evaluation proof opened at the transcript
// challenge.
func buildResponse(t *testing.T) (*QueryResultsResponse, *commitment.VerifierSetups, *table.OwnedTable) {
	t.Helper()

	srs, err := kzg.NewSRS(8, big.NewInt(4242))
	require.NoError(t, err)

	poly := make([]bn254fr.Element, 4)
	for i := range poly {
		poly[i].SetUint64(uint64(13 + 2*i))
	}
	digest, err := kzg.Commit(poly, srs.Pk)
	require.NoError(t, err)

	tc := &commitment.TableCommitment{
		Scheme:   commitment.HyperKzg,
		RangeEnd: 3,
		Columns:  []commitment.ColumnCommitment{{Name: "BLOCK_NUMBER", HyperKzg: &digest}},
	}
	commitmentBytes := commitment.SerializeTableCommitment(tc)

	leaf, err := commitment.EncodeLeaf("ETHEREUM.BLOCKS", commitment.HyperKzg, commitmentBytes)
	require.NoError(t, err)
	siblings := make([][]byte, 9)
	merkleProof := make([]ethcommon.Hash, 9)
	for i := range siblings {
		sibling := make([]byte, 32)
		_, err := rand.Read(sibling)
		require.NoError(t, err)
		siblings[i] = sibling
		merkleProof[i] = ethcommon.BytesToHash(sibling)
	}
	stateRoot := append([]byte{0x00}, merkle.ComputeRoot(leaf, siblings)...)

	bundle := attestation.AttestedCommitmentsBundle{
		BlockNumber: 4539877,
		Commitments: []attestation.CommitmentWithProof{{
			TableIdentifier: "ETHEREUM.BLOCKS",
			Commitment:      commitmentBytes,
			MerkleProof:     merkleProof,
		}},
	}
	message := attestation.CreateAttestationMessage(stateRoot, bundle.BlockNumber)
	for i := 0; i < 3; i++ {
		key, err := ethcrypto.GenerateKey()
		require.NoError(t, err)
		sig, err := attestation.SignEthMessage(key, message)
		require.NoError(t, err)
		bundle.R = append(bundle.R, ethcommon.Hash(sig.R))
		bundle.S = append(bundle.S, ethcommon.Hash(sig.S))
		bundle.V = append(bundle.V, sig.V)
		bundle.Addresses = append(bundle.Addresses, ethcrypto.PubkeyToAddress(key.PublicKey))
		bundle.StateRoots = append(bundle.StateRoots, stateRoot)
	}

	result := &table.OwnedTable{Columns: []table.Column{{
		Name:    "BLOCK_NUMBER",
		Type:    table.ColumnBigInt,
		BigInts: []int64{4539875, 4539876, 4539877},
	}}}
	resultBytes := table.SerializeOwnedTable(result)
	planBytes := []byte("SELECT block_number FROM ethereum.blocks")

	digestBytes := digest.Bytes()
	challenge := proof.EvaluationChallenge(planBytes, resultBytes, nil, []proof.CommitmentBinding{{
		Table:      "ETHEREUM.BLOCKS",
		Column:     "BLOCK_NUMBER",
		Commitment: digestBytes[:],
	}})
	var point bn254fr.Element
	point.SetBytes(challenge[:])
	opening, err := kzg.Open(poly, point, srs.Pk)
	require.NoError(t, err)

	ref, err := table.ParseTableRef("ETHEREUM.BLOCKS")
	require.NoError(t, err)
	witness := opening.H.Bytes()
	proofBytes := proof.SerializeQueryProof(&proof.QueryProof{
		Scheme: commitment.HyperKzg,
		Openings: []proof.Opening{{
			Table:        ref,
			Column:       "BLOCK_NUMBER",
			Witness:      witness[:],
			ClaimedValue: opening.ClaimedValue.Bytes(),
		}},
	})

	resp := &QueryResultsResponse{
		Plan:             planBytes,
		Proof:            proofBytes,
		Results:          resultBytes,
		Commitments:      bundle,
		CommitmentScheme: commitment.HyperKzg,
	}
	setups := commitment.NewVerifierSetups(&commitment.VerifierSetup{
		Scheme:   commitment.HyperKzg,
		HyperKzg: &srs.Vk,
	})
	return resp, setups, result
}

func TestVerifyQueryResultEndToEnd(t *testing.T) {
	resp, setups, want := buildResponse(t)

	got, err := VerifyQueryResult(resp, setups)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestVerifyQueryResultIdempotent(t *testing.T) {
	resp, setups, _ := buildResponse(t)

	first, err := VerifyQueryResult(resp, setups)
	require.NoError(t, err)
	second, err := VerifyQueryResult(resp, setups)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestVerifyQueryResultMissingSetup(t *testing.T) {
	resp, _, _ := buildResponse(t)

	_, err := VerifyQueryResult(resp, commitment.NewVerifierSetups())
	assert.ErrorIs(t, err, commitment.ErrMissingSetup)
}

func TestVerifyQueryResultRejectsTamperedResults(t *testing.T) {
	resp, setups, _ := buildResponse(t)
	resp.Results[len(resp.Results)-1] ^= 0x01

	_, err := VerifyQueryResult(resp, setups)
	assert.ErrorIs(t, err, proof.ErrEvaluationProof)
}

func TestVerifyQueryResultRejectsBrokenAttestation(t *testing.T) {
	resp, setups, _ := buildResponse(t)
	resp.Commitments.S[0][5] ^= 0xff

	_, err := VerifyQueryResult(resp, setups)
	require.Error(t, err)
}

type limitRows struct{ n int }

func (l limitRows) Apply(t *table.OwnedTable) (*table.OwnedTable, error) {
	out := &table.OwnedTable{Columns: make([]table.Column, len(t.Columns))}
	for i := range t.Columns {
		col := t.Columns[i]
		if col.Type == table.ColumnBigInt && len(col.BigInts) > l.n {
			col.BigInts = col.BigInts[:l.n]
		}
		out.Columns[i] = col
	}
	return out, nil
}

type failingPost struct{}

func (failingPost) Apply(*table.OwnedTable) (*table.OwnedTable, error) {
	return nil, errors.New("postprocess boom")
}

func TestVerifyQueryResultAppliesPostprocessors(t *testing.T) {
	resp, setups, _ := buildResponse(t)

	got, err := VerifyQueryResult(resp, setups, limitRows{n: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumRows())

	_, err = VerifyQueryResult(resp, setups, failingPost{})
	assert.EqualError(t, err, "postprocess boom")
}
