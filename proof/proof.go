// Package proof checks prover evaluation proofs against attested
// commitments. The prover never gets to choose what it is checked against:
// commitments come from the attestation stage and the evaluation point is
// derived from the full transcript.
package proof

import (
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/codec"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// Opening is one column's claimed evaluation together with the witness
// point proving it. The witness encoding is scheme-dependent; the claimed
// value is a 32-byte big-endian scalar in the scheme's field.
type Opening struct {
	Table        table.TableRef
	Column       string
	Witness      []byte
	ClaimedValue [32]byte
}

// QueryProof is the prover's full evaluation proof for one query.
type QueryProof struct {
	Scheme   commitment.Scheme
	Openings []Opening
}

// witnessSize returns the fixed witness width for a scheme. Both backends
// carry compressed G1 witnesses on their respective curves.
func witnessSize(scheme commitment.Scheme) (int, error) {
	switch scheme {
	case commitment.HyperKzg:
		return 32, nil
	case commitment.DynamicDory:
		return 48, nil
	}
	return 0, fmt.Errorf("%w: scheme %d", ErrProofDeserialization, uint8(scheme))
}

// DeserializeQueryProof parses the canonical proof layout: a u8 scheme tag,
// a u64 opening count, then per opening a table reference, a column name,
// the fixed-width witness, and a 32-byte claimed value. Trailing bytes are
// rejected.
func DeserializeQueryProof(data []byte) (*QueryProof, error) {
	d := codec.NewDecoder(data)
	scheme := commitment.Scheme(d.Uint8())
	if d.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrProofDeserialization, d.Err())
	}
	width, err := witnessSize(scheme)
	if err != nil {
		return nil, err
	}

	qp := &QueryProof{Scheme: scheme}
	count := d.Uint64()
	for i := uint64(0); i < count && d.Err() == nil; i++ {
		id := d.String()
		column := d.String()
		witness := d.Bytes(width)
		value := d.Bytes(32)
		if d.Err() != nil {
			break
		}
		ref, err := table.ParseTableRef(id)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %d: %v", ErrProofDeserialization, i, err)
		}
		op := Opening{Table: ref, Column: column, Witness: witness}
		copy(op.ClaimedValue[:], value)
		qp.Openings = append(qp.Openings, op)
	}
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProofDeserialization, err)
	}
	return qp, nil
}

// SerializeQueryProof mirrors DeserializeQueryProof. Provers and test
// fixtures encode; the verifier only decodes.
func SerializeQueryProof(qp *QueryProof) []byte {
	e := codec.NewEncoder()
	e.Uint8(uint8(qp.Scheme)).Uint64(uint64(len(qp.Openings)))
	for i := range qp.Openings {
		op := &qp.Openings[i]
		e.String(op.Table.String()).String(op.Column)
		e.Bytes(op.Witness).Bytes(op.ClaimedValue[:])
	}
	return e.Encoded()
}
