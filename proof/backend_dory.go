package proof

import (
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	bls12377fr "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
)

// verifyDoryOpening checks one opening against a GT-resident commitment
// C = gtBase^p(tau). With witness W = g1^q(tau) for the quotient
// q(x) = (p(x) - y) / (x - z), the check is
//
//	e(W, tau*H - z*H) * gtBase^y == C
//
// which holds exactly when p(z) = y.
func verifyDoryOpening(op *Opening, com *bls12377.GT, challenge [32]byte, setup *commitment.DoryVerifierSetup) error {
	var witness bls12377.G1Affine
	if _, err := witness.SetBytes(op.Witness); err != nil {
		return fmt.Errorf("%w: %s.%s witness: %v", ErrProofDeserialization, op.Table, op.Column, err)
	}

	var z, y bls12377fr.Element
	z.SetBytes(challenge[:])
	y.SetBytes(op.ClaimedValue[:])

	var shift bls12377.G2Jac
	shift.FromAffine(&setup.H)
	shift.ScalarMultiplication(&shift, z.BigInt(new(big.Int)))
	shift.Neg(&shift)

	var diffJac bls12377.G2Jac
	diffJac.FromAffine(&setup.TauH)
	diffJac.AddAssign(&shift)
	var diff bls12377.G2Affine
	diff.FromJacobian(&diffJac)

	lhs, err := bls12377.Pair([]bls12377.G1Affine{witness}, []bls12377.G2Affine{diff})
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %v", ErrEvaluationProof, op.Table, op.Column, err)
	}

	var claimedTerm bls12377.GT
	claimedTerm.Exp(setup.GtBase, y.BigInt(new(big.Int)))
	lhs.Mul(&lhs, &claimedTerm)

	if !lhs.Equal(com) {
		return fmt.Errorf("%w: %s.%s", ErrEvaluationProof, op.Table, op.Column)
	}
	return nil
}
