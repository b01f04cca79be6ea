// Package attestation verifies validator attestations over chain state
// roots and the Merkle membership of table commitments under them.
package attestation

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// EthereumSignature is a recoverable ECDSA signature broken into its
// components. V is the recovery id as delivered by the chain; both the raw
// form (0, 1) and the Ethereum-normalized form (27, 28) are accepted.
type EthereumSignature struct {
	R [32]byte
	S [32]byte
	V uint8
}

// recoveryID maps V onto the raw 0/1 range go-ethereum recovers with.
func recoveryID(v uint8) (byte, error) {
	switch v {
	case 0, 1:
		return v, nil
	case 27, 28:
		return v - 27, nil
	}
	return 0, &InvalidRecoveryIDError{RecoveryID: v}
}

// HashEthereumMessage hashes a message with the Ethereum signed-message
// prefix: keccak256("\x19Ethereum Signed Message:\n" || len || message).
func HashEthereumMessage(message []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return ethcrypto.Keccak256([]byte(prefix), message)
}

// CreateAttestationMessage builds the byte string attestors sign:
// state_root || big-endian u64 block number. Signer and verifier must use
// the identical layout.
func CreateAttestationMessage(stateRoot []byte, blockNumber uint64) []byte {
	msg := make([]byte, 0, len(stateRoot)+8)
	msg = append(msg, stateRoot...)
	return binary.BigEndian.AppendUint64(msg, blockNumber)
}

// VerifyEthSignature checks that signature over message recovers to the
// expected 20-byte address. Pure; no side effects.
func VerifyEthSignature(message []byte, signature *EthereumSignature, expected ethcommon.Address) error {
	v, err := recoveryID(signature.V)
	if err != nil {
		return err
	}
	r := new(big.Int).SetBytes(signature.R[:])
	s := new(big.Int).SetBytes(signature.S[:])
	if !ethcrypto.ValidateSignatureValues(v, r, s, false) {
		return ErrSignatureRecovery
	}

	sig := make([]byte, 65)
	copy(sig[:32], signature.R[:])
	copy(sig[32:64], signature.S[:])
	sig[64] = v

	pubKey, err := ethcrypto.SigToPub(HashEthereumMessage(message), sig)
	if err != nil {
		return ErrKeyRecovery
	}
	if ethcrypto.PubkeyToAddress(*pubKey) != expected {
		return ErrInvalidPublicKeyRecovered
	}
	return nil
}

// SignEthMessage signs a message with the Ethereum prefix, returning the
// split signature with a raw (0/1) recovery id. The verification pipeline
// never signs; this is the counterpart used by attestors and fixtures.
func SignEthMessage(privateKey *ecdsa.PrivateKey, message []byte) (*EthereumSignature, error) {
	raw, err := ethcrypto.Sign(HashEthereumMessage(message), privateKey)
	if err != nil {
		return nil, err
	}
	sig := &EthereumSignature{V: raw[64]}
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	return sig, nil
}
