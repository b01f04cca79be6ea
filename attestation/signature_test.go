package attestation

import (
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	message := CreateAttestationMessage([]byte("attested state"), 4539877)
	sig, err := SignEthMessage(key, message)
	require.NoError(t, err)

	assert.NoError(t, VerifyEthSignature(message, sig, address))
}

func TestVerifyNormalizedRecoveryID(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	message := []byte("normalized recovery id")
	sig, err := SignEthMessage(key, message)
	require.NoError(t, err)
	require.Contains(t, []uint8{0, 1}, sig.V)

	sig.V += 27
	assert.NoError(t, VerifyEthSignature(message, sig, address))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	sig, err := SignEthMessage(key, []byte("original"))
	require.NoError(t, err)

	err = VerifyEthSignature([]byte("tampered"), sig, address)
	assert.ErrorIs(t, err, ErrInvalidPublicKeyRecovered)
}

func TestVerifyRejectsWrongAddress(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	message := []byte("addressed elsewhere")
	sig, err := SignEthMessage(key, message)
	require.NoError(t, err)

	err = VerifyEthSignature(message, sig, ethcrypto.PubkeyToAddress(otherKey.PublicKey))
	assert.ErrorIs(t, err, ErrInvalidPublicKeyRecovered)
}

func TestVerifyRejectsBadRecoveryID(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	message := []byte("bad recovery id")
	sig, err := SignEthMessage(key, message)
	require.NoError(t, err)

	for _, v := range []uint8{2, 5, 26, 29, 255} {
		bad := *sig
		bad.V = v
		err := VerifyEthSignature(message, &bad, address)
		var recoveryErr *InvalidRecoveryIDError
		require.ErrorAs(t, err, &recoveryErr, "v=%d", v)
		assert.Equal(t, v, recoveryErr.RecoveryID)
	}
}

func TestVerifyRejectsZeroSignature(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	err = VerifyEthSignature([]byte("zeroed"), &EthereumSignature{V: 27}, address)
	assert.ErrorIs(t, err, ErrSignatureRecovery)
}

func TestHashEthereumMessagePrefix(t *testing.T) {
	message := []byte("hello sxt")
	expected := ethcrypto.Keccak256([]byte("\x19Ethereum Signed Message:\n9"), message)
	assert.Equal(t, expected, HashEthereumMessage(message))
}

func TestCreateAttestationMessageLayout(t *testing.T) {
	root := []byte{0xaa, 0xbb}
	message := CreateAttestationMessage(root, 0x0102030405060708)
	assert.Equal(t, []byte{0xaa, 0xbb, 1, 2, 3, 4, 5, 6, 7, 8}, message)
}
