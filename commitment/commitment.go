package commitment

import (
	"errors"
	"fmt"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/codec"
)

var ErrCommitmentDeserialization = errors.New("malformed commitment bytes")

// ColumnCommitment is a scheme-typed cryptographic binding to one column's
// contents. Exactly one typed field is set, matching the parent scheme.
type ColumnCommitment struct {
	Name string

	HyperKzg    *bn254.G1Affine
	DynamicDory *bls12377.GT
}

// Bytes returns the scheme's canonical serialization of the commitment,
// identical to what the chain stores and the proof transcript binds.
func (c *ColumnCommitment) Bytes() []byte {
	switch {
	case c.HyperKzg != nil:
		b := c.HyperKzg.Bytes()
		return b[:]
	case c.DynamicDory != nil:
		b := c.DynamicDory.Bytes()
		return b[:]
	}
	return nil
}

// TableCommitment binds a table's columns over a contiguous row range.
type TableCommitment struct {
	Scheme     Scheme
	Columns    []ColumnCommitment
	RangeStart uint64
	RangeEnd   uint64
}

// Column looks a column commitment up by exact name.
func (tc *TableCommitment) Column(name string) (*ColumnCommitment, bool) {
	for i := range tc.Columns {
		if tc.Columns[i].Name == name {
			return &tc.Columns[i], true
		}
	}
	return nil, false
}

// DeserializeTableCommitment parses the chain's canonical commitment
// layout: u64 range start, u64 range end, u64 column count, then per column
// a length-prefixed name and the scheme's fixed-width commitment encoding.
// Any malformed input aborts the whole decode.
func DeserializeTableCommitment(scheme Scheme, data []byte) (*TableCommitment, error) {
	desc, err := Lookup(scheme)
	if err != nil {
		return nil, err
	}
	d := codec.NewDecoder(data)
	tc := &TableCommitment{
		Scheme:     scheme,
		RangeStart: d.Uint64(),
		RangeEnd:   d.Uint64(),
	}
	numCols := d.Uint64()
	for i := uint64(0); i < numCols && d.Err() == nil; i++ {
		name := d.String()
		raw := d.Bytes(desc.CommitmentSize)
		if d.Err() != nil {
			break
		}
		col := ColumnCommitment{Name: name}
		if err := col.setBytes(scheme, raw); err != nil {
			return nil, err
		}
		tc.Columns = append(tc.Columns, col)
	}
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitmentDeserialization, err)
	}
	if tc.RangeStart > tc.RangeEnd {
		return nil, fmt.Errorf("%w: range %d..%d", ErrCommitmentDeserialization, tc.RangeStart, tc.RangeEnd)
	}
	return tc, nil
}

func (c *ColumnCommitment) setBytes(scheme Scheme, raw []byte) error {
	switch scheme {
	case HyperKzg:
		var p bn254.G1Affine
		if _, err := p.SetBytes(raw); err != nil {
			return fmt.Errorf("%w: column %s: %v", ErrCommitmentDeserialization, c.Name, err)
		}
		c.HyperKzg = &p
	case DynamicDory:
		var gt bls12377.GT
		if err := gt.SetBytes(raw); err != nil {
			return fmt.Errorf("%w: column %s: %v", ErrCommitmentDeserialization, c.Name, err)
		}
		c.DynamicDory = &gt
	}
	return nil
}

// SerializeTableCommitment is the codec mirror of
// DeserializeTableCommitment; the verifier itself only decodes.
func SerializeTableCommitment(tc *TableCommitment) []byte {
	e := codec.NewEncoder()
	e.Uint64(tc.RangeStart).Uint64(tc.RangeEnd)
	e.Uint64(uint64(len(tc.Columns)))
	for i := range tc.Columns {
		e.String(tc.Columns[i].Name).Bytes(tc.Columns[i].Bytes())
	}
	return e.Encoded()
}
