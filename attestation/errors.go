package attestation

import (
	"errors"
	"fmt"
)

// Each verification stage fails with a distinguishable kind so callers can
// tell which link of the trust chain broke.
var (
	ErrSignatureRecovery         = errors.New("signature recovery error")
	ErrKeyRecovery               = errors.New("key recovery error")
	ErrInvalidPublicKeyRecovered = errors.New("signature recovery resulted in an incorrect public key")
	ErrMerkleProofVerification   = errors.New("failed to verify merkle proof")
	ErrMalformedData             = errors.New("malformed attestation data")
)

// InvalidRecoveryIDError reports a recovery id outside the values the
// Ethereum signature scheme produces.
type InvalidRecoveryIDError struct {
	RecoveryID uint8
}

func (e *InvalidRecoveryIDError) Error() string {
	return fmt.Sprintf("invalid recovery id: %d", e.RecoveryID)
}
