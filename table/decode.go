package table

import (
	"errors"
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/codec"
)

// ErrTableDeserialization wraps any failure to decode a serialized result
// table. Malformed blobs are rejected, never repaired.
var ErrTableDeserialization = errors.New("unable to deserialize verifiable query result")

// ErrRaggedTable is returned when columns disagree on the row count.
var ErrRaggedTable = errors.New("columns disagree on row count")

// DeserializeOwnedTable decodes a result table from its canonical binary
// form: u64 column count, then per column a length-prefixed name, a type
// tag, decimal metadata where applicable, a u64 row count and the
// fixed-width values.
func DeserializeOwnedTable(data []byte) (*OwnedTable, error) {
	d := codec.NewDecoder(data)
	numCols := d.Uint64()
	if d.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableDeserialization, d.Err())
	}

	t := &OwnedTable{}
	for i := uint64(0); i < numCols && d.Err() == nil; i++ {
		col, err := decodeColumn(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTableDeserialization, err)
		}
		t.Columns = append(t.Columns, *col)
	}
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableDeserialization, err)
	}
	for i := range t.Columns {
		if t.Columns[i].NumRows() != t.NumRows() {
			return nil, fmt.Errorf("%w: %v", ErrTableDeserialization, ErrRaggedTable)
		}
	}
	return t, nil
}

func decodeColumn(d *codec.Decoder) (*Column, error) {
	col := &Column{
		Name: d.String(),
		Type: ColumnType(d.Uint8()),
	}
	if col.Type == ColumnDecimal75 {
		col.Precision = d.Uint8()
		col.Scale = int8(d.Uint8())
	}
	numRows := d.Uint64()
	if err := d.Err(); err != nil {
		return nil, err
	}

	for r := uint64(0); r < numRows && d.Err() == nil; r++ {
		switch col.Type {
		case ColumnBoolean:
			col.Booleans = append(col.Booleans, d.Bool())
		case ColumnBigInt:
			col.BigInts = append(col.BigInts, d.Int64())
		case ColumnVarChar:
			col.VarChars = append(col.VarChars, d.String())
		case ColumnDecimal75:
			col.Decimals = append(col.Decimals, scalar32(d))
		case ColumnTimestamp:
			col.Timestamps = append(col.Timestamps, d.Int64())
		case ColumnScalar:
			col.Scalars = append(col.Scalars, scalar32(d))
		default:
			return nil, fmt.Errorf("%w: tag %d", ErrUnknownColumnType, col.Type)
		}
	}
	return col, d.Err()
}

func scalar32(d *codec.Decoder) [32]byte {
	var out [32]byte
	copy(out[:], d.Bytes(32))
	return out
}

// SerializeOwnedTable is the codec mirror of DeserializeOwnedTable. The
// verifier never serializes results; this exists for transcript replay and
// fixtures.
func SerializeOwnedTable(t *OwnedTable) []byte {
	e := codec.NewEncoder()
	e.Uint64(uint64(len(t.Columns)))
	for i := range t.Columns {
		encodeColumn(e, &t.Columns[i])
	}
	return e.Encoded()
}

func encodeColumn(e *codec.Encoder, col *Column) {
	e.String(col.Name).Uint8(uint8(col.Type))
	if col.Type == ColumnDecimal75 {
		e.Uint8(col.Precision).Uint8(uint8(col.Scale))
	}
	e.Uint64(uint64(col.NumRows()))
	for i := 0; i < col.NumRows(); i++ {
		switch col.Type {
		case ColumnBoolean:
			e.Bool(col.Booleans[i])
		case ColumnBigInt:
			e.Int64(col.BigInts[i])
		case ColumnVarChar:
			e.String(col.VarChars[i])
		case ColumnDecimal75:
			v := col.Decimals[i]
			e.Bytes(v[:])
		case ColumnTimestamp:
			e.Int64(col.Timestamps[i])
		case ColumnScalar:
			v := col.Scalars[i]
			e.Bytes(v[:])
		}
	}
}
