package proof

import (
	"fmt"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
)

// verifyHyperKzgOpening checks one opening against a bn254 KZG commitment.
// The witness is a compressed G1 quotient point; the pairing check itself
// is delegated to gnark.
func verifyHyperKzgOpening(op *Opening, com *bn254.G1Affine, challenge [32]byte, vk *kzg.VerifyingKey) error {
	var quotient bn254.G1Affine
	if _, err := quotient.SetBytes(op.Witness); err != nil {
		return fmt.Errorf("%w: %s.%s witness: %v", ErrProofDeserialization, op.Table, op.Column, err)
	}

	var point, claimed bn254fr.Element
	point.SetBytes(challenge[:])
	claimed.SetBytes(op.ClaimedValue[:])

	opening := kzg.OpeningProof{H: quotient, ClaimedValue: claimed}
	if err := kzg.Verify(com, &opening, point, *vk); err != nil {
		return fmt.Errorf("%w: %s.%s: %v", ErrEvaluationProof, op.Table, op.Column, err)
	}
	return nil
}
