package proof

import (
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// VerifyProverResponse runs the third verification stage. It decodes the
// prover's proof and claimed result, derives the transcript-bound
// evaluation point, and checks every opening against the attested
// commitments in the accessor. Table lookups are case-insensitive. On
// success the decoded result table is returned; it is the only prover
// output a caller should ever surface.
func VerifyProverResponse(
	proofBytes, resultBytes, planBytes, params []byte,
	accessor commitment.CommitmentAccessor,
	setup *commitment.VerifierSetup,
) (*table.OwnedTable, error) {
	qp, err := DeserializeQueryProof(proofBytes)
	if err != nil {
		return nil, err
	}
	if qp.Scheme != setup.Scheme {
		return nil, fmt.Errorf("%w: proof %s, setup %s", ErrSchemeMismatch, qp.Scheme, setup.Scheme)
	}

	result, err := table.DeserializeOwnedTable(resultBytes)
	if err != nil {
		return nil, err
	}

	upper := commitment.UppercaseAccessor{Inner: accessor}
	commitments, bindings, err := resolveOpenings(qp, upper)
	if err != nil {
		return nil, err
	}

	challenge := EvaluationChallenge(planBytes, resultBytes, params, bindings)

	for i := range qp.Openings {
		op := &qp.Openings[i]
		col := commitments[i]
		switch qp.Scheme {
		case commitment.HyperKzg:
			err = verifyHyperKzgOpening(op, col.HyperKzg, challenge, setup.HyperKzg)
		case commitment.DynamicDory:
			err = verifyDoryOpening(op, col.DynamicDory, challenge, setup.DynamicDory)
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolveOpenings maps each opening to its attested column commitment and
// builds the transcript bindings in opening order.
func resolveOpenings(qp *QueryProof, accessor commitment.CommitmentAccessor) ([]*commitment.ColumnCommitment, []CommitmentBinding, error) {
	columns := make([]*commitment.ColumnCommitment, len(qp.Openings))
	bindings := make([]CommitmentBinding, len(qp.Openings))
	for i := range qp.Openings {
		op := &qp.Openings[i]
		tc, ok := accessor.TableCommitment(op.Table)
		if !ok {
			return nil, nil, fmt.Errorf("%w: table %s", ErrMissingCommitment, op.Table)
		}
		col, ok := tc.Column(op.Column)
		if !ok {
			return nil, nil, fmt.Errorf("%w: column %s.%s", ErrMissingCommitment, op.Table, op.Column)
		}
		columns[i] = col
		bindings[i] = CommitmentBinding{
			Table:      op.Table.Uppercase().String(),
			Column:     op.Column,
			Commitment: col.Bytes(),
		}
	}
	return columns, bindings, nil
}
