package attestation

import (
	"crypto/rand"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/merkle"
)

const testBlockNumber = 4539877

// buildBundle signs a tagged commitments root with freshly generated
// attestor keys and attaches one table commitment with a nine-level proof.
func buildBundle(t *testing.T, attestors int) *AttestedCommitmentsBundle {
	t.Helper()

	commitmentBytes := make([]byte, 64)
	_, err := rand.Read(commitmentBytes)
	require.NoError(t, err)

	leaf, err := commitment.EncodeLeaf("ETHEREUM.BLOCKS", commitment.HyperKzg, commitmentBytes)
	require.NoError(t, err)

	siblings := make([][]byte, 9)
	proof := make([]ethcommon.Hash, 9)
	for i := range siblings {
		sibling := make([]byte, 32)
		_, err := rand.Read(sibling)
		require.NoError(t, err)
		siblings[i] = sibling
		proof[i] = ethcommon.BytesToHash(sibling)
	}
	root := merkle.ComputeRoot(leaf, siblings)

	stateRoot := append([]byte{rootsDomainTag}, root...)
	message := CreateAttestationMessage(stateRoot, testBlockNumber)

	bundle := &AttestedCommitmentsBundle{
		BlockNumber: testBlockNumber,
		BlockHash:   make([]byte, 32),
		Commitments: []CommitmentWithProof{{
			TableIdentifier: "ETHEREUM.BLOCKS",
			Commitment:      commitmentBytes,
			MerkleProof:     proof,
		}},
	}
	for i := 0; i < attestors; i++ {
		key, err := ethcrypto.GenerateKey()
		require.NoError(t, err)
		sig, err := SignEthMessage(key, message)
		require.NoError(t, err)

		bundle.R = append(bundle.R, ethcommon.Hash(sig.R))
		bundle.S = append(bundle.S, ethcommon.Hash(sig.S))
		bundle.V = append(bundle.V, sig.V)
		bundle.Addresses = append(bundle.Addresses, ethcrypto.PubkeyToAddress(key.PublicKey))
		bundle.StateRoots = append(bundle.StateRoots, stateRoot)
	}
	return bundle
}

func TestVerifyAttestations(t *testing.T) {
	bundle := buildBundle(t, 3)

	commitments, err := VerifyAttestations(bundle, commitment.HyperKzg)
	require.NoError(t, err)
	require.Len(t, commitments, 1)
	assert.Equal(t, []byte(bundle.Commitments[0].Commitment), commitments["ETHEREUM.BLOCKS"])
}

func TestVerifyAttestationsRejectsForgedSignature(t *testing.T) {
	bundle := buildBundle(t, 3)
	bundle.R[1][0] ^= 0xff

	_, err := VerifyAttestations(bundle, commitment.HyperKzg)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMerkleProofVerification)
}

func TestVerifyAttestationsRejectsSwappedAddress(t *testing.T) {
	bundle := buildBundle(t, 2)
	bundle.Addresses[0], bundle.Addresses[1] = bundle.Addresses[1], bundle.Addresses[0]

	_, err := VerifyAttestations(bundle, commitment.HyperKzg)
	assert.ErrorIs(t, err, ErrInvalidPublicKeyRecovered)
}

func TestVerifyAttestationsRejectsTamperedCommitment(t *testing.T) {
	bundle := buildBundle(t, 1)
	root := append([]byte{}, bundle.StateRoots[0]...)
	bundle.Commitments[0].Commitment[3] ^= 0x01

	// Re-sign so the signature stage still passes and the failure is
	// attributable to the Merkle stage.
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	sig, err := SignEthMessage(key, CreateAttestationMessage(root, testBlockNumber))
	require.NoError(t, err)
	bundle.R[0] = ethcommon.Hash(sig.R)
	bundle.S[0] = ethcommon.Hash(sig.S)
	bundle.V[0] = sig.V
	bundle.Addresses[0] = ethcrypto.PubkeyToAddress(key.PublicKey)

	_, err = VerifyAttestations(bundle, commitment.HyperKzg)
	assert.ErrorIs(t, err, ErrMerkleProofVerification)
}

func TestVerifyAttestationsRejectsBrokenProofPath(t *testing.T) {
	bundle := buildBundle(t, 1)
	bundle.Commitments[0].MerkleProof[4][7] ^= 0x80

	_, err := VerifyAttestations(bundle, commitment.HyperKzg)
	assert.ErrorIs(t, err, ErrMerkleProofVerification)
}

func TestVerifyAttestationsWrongSchemeChangesLeaf(t *testing.T) {
	bundle := buildBundle(t, 1)

	_, err := VerifyAttestations(bundle, commitment.DynamicDory)
	assert.ErrorIs(t, err, ErrMerkleProofVerification)
}

func TestVerifyAttestationsSkipsForeignDomains(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	// A 32-byte root has no domain tag; a tagged root with 0x01 belongs to
	// a different tree. Neither constrains the commitments.
	foreign := [][]byte{
		make([]byte, 32),
		append([]byte{0x01}, make([]byte, 32)...),
	}
	bundle := &AttestedCommitmentsBundle{
		BlockNumber: testBlockNumber,
		Commitments: []CommitmentWithProof{{
			TableIdentifier: "ETHEREUM.BLOCKS",
			Commitment:      []byte{1, 2, 3},
		}},
	}
	for _, stateRoot := range foreign {
		sig, err := SignEthMessage(key, CreateAttestationMessage(stateRoot, testBlockNumber))
		require.NoError(t, err)
		bundle.R = append(bundle.R, ethcommon.Hash(sig.R))
		bundle.S = append(bundle.S, ethcommon.Hash(sig.S))
		bundle.V = append(bundle.V, sig.V)
		bundle.Addresses = append(bundle.Addresses, ethcrypto.PubkeyToAddress(key.PublicKey))
		bundle.StateRoots = append(bundle.StateRoots, stateRoot)
	}

	commitments, err := VerifyAttestations(bundle, commitment.HyperKzg)
	require.NoError(t, err)
	assert.Len(t, commitments, 1)
}

func TestVerifyAttestationsSkipsForeignDomainsWithGarbageSignatures(t *testing.T) {
	// Foreign-domain attestations are filtered out before the signature
	// stage, so even unrecoverable signatures on them must not reject the
	// bundle.
	bundle := &AttestedCommitmentsBundle{
		BlockNumber: testBlockNumber,
		R:           []ethcommon.Hash{{}},
		S:           []ethcommon.Hash{{}},
		V:           []uint8{27},
		Addresses:   []ethcommon.Address{{}},
		StateRoots:  []hexutil.Bytes{make([]byte, 32)},
		Commitments: []CommitmentWithProof{{
			TableIdentifier: "ETHEREUM.BLOCKS",
			Commitment:      []byte{1, 2, 3},
		}},
	}

	commitments, err := VerifyAttestations(bundle, commitment.HyperKzg)
	require.NoError(t, err)
	assert.Len(t, commitments, 1)
}

func TestVerifyAttestationsRejectsDuplicateTables(t *testing.T) {
	bundle := buildBundle(t, 1)
	bundle.Commitments = append(bundle.Commitments, bundle.Commitments[0])

	_, err := VerifyAttestations(bundle, commitment.HyperKzg)
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestVerifyAttestationsRejectsRaggedArrays(t *testing.T) {
	bundle := buildBundle(t, 2)
	bundle.V = bundle.V[:1]

	_, err := VerifyAttestations(bundle, commitment.HyperKzg)
	assert.ErrorIs(t, err, ErrMalformedData)
}
