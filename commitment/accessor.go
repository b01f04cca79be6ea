package commitment

import (
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// QueryCommitments maps each table touched by a query to its verified
// typed commitment, keyed by the canonical upper-cased reference.
type QueryCommitments map[table.TableRef]*TableCommitment

// CommitmentAccessor resolves the commitment for a table reference.
type CommitmentAccessor interface {
	TableCommitment(ref table.TableRef) (*TableCommitment, bool)
}

func (qc QueryCommitments) TableCommitment(ref table.TableRef) (*TableCommitment, bool) {
	tc, ok := qc[ref]
	return tc, ok
}

// UppercaseAccessor makes lookups case-insensitive without mutating caller
// data: chain identifiers are canonically upper-cased, so references are
// upper-cased on the way in.
type UppercaseAccessor struct {
	Inner CommitmentAccessor
}

func (u UppercaseAccessor) TableCommitment(ref table.TableRef) (*TableCommitment, bool) {
	return u.Inner.TableCommitment(ref.Uppercase())
}

// ExtractQueryCommitments deserializes verified opaque commitment bytes
// into scheme-typed commitments keyed by table reference. A malformed table
// identifier or commitment aborts immediately; no partial map is returned.
func ExtractQueryCommitments(verified map[string][]byte, scheme Scheme) (QueryCommitments, error) {
	out := make(QueryCommitments, len(verified))
	for id, raw := range verified {
		ref, err := table.ParseTableRef(id)
		if err != nil {
			return nil, err
		}
		tc, err := DeserializeTableCommitment(scheme, raw)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", id, err)
		}
		out[ref.Uppercase()] = tc
	}
	return out, nil
}
