// Package table holds the materialized query result model and the canonical
// binary codec the prover serializes results with.
package table

import (
	"errors"
	"fmt"
)

// ColumnType tags the value kind a column holds.
type ColumnType uint8

const (
	ColumnBoolean ColumnType = iota
	ColumnBigInt
	ColumnVarChar
	ColumnDecimal75
	ColumnTimestamp
	ColumnScalar
)

var ErrUnknownColumnType = errors.New("unknown column type")

func (ct ColumnType) String() string {
	switch ct {
	case ColumnBoolean:
		return "boolean"
	case ColumnBigInt:
		return "bigint"
	case ColumnVarChar:
		return "varchar"
	case ColumnDecimal75:
		return "decimal75"
	case ColumnTimestamp:
		return "timestamp"
	case ColumnScalar:
		return "scalar"
	}
	return fmt.Sprintf("ColumnType(%d)", uint8(ct))
}

// Column is one named column of typed values. Exactly one of the value
// slices is populated, selected by Type. Decimal and scalar values are
// 32-byte big-endian field representatives.
type Column struct {
	Name string
	Type ColumnType

	Booleans   []bool
	BigInts    []int64
	VarChars   []string
	Decimals   [][32]byte
	Timestamps []int64
	Scalars    [][32]byte

	// Decimal75 metadata.
	Precision uint8
	Scale     int8
}

// NumRows returns the number of values in the column.
func (c *Column) NumRows() int {
	switch c.Type {
	case ColumnBoolean:
		return len(c.Booleans)
	case ColumnBigInt:
		return len(c.BigInts)
	case ColumnVarChar:
		return len(c.VarChars)
	case ColumnDecimal75:
		return len(c.Decimals)
	case ColumnTimestamp:
		return len(c.Timestamps)
	case ColumnScalar:
		return len(c.Scalars)
	}
	return 0
}

// Value returns row i as an unwrapped Go value.
func (c *Column) Value(i int) interface{} {
	switch c.Type {
	case ColumnBoolean:
		return c.Booleans[i]
	case ColumnBigInt:
		return c.BigInts[i]
	case ColumnVarChar:
		return c.VarChars[i]
	case ColumnDecimal75:
		return c.Decimals[i]
	case ColumnTimestamp:
		return c.Timestamps[i]
	case ColumnScalar:
		return c.Scalars[i]
	}
	return nil
}

func (c *Column) equal(other *Column) bool {
	if c.Name != other.Name || c.Type != other.Type || c.NumRows() != other.NumRows() {
		return false
	}
	if c.Type == ColumnDecimal75 && (c.Precision != other.Precision || c.Scale != other.Scale) {
		return false
	}
	for i := 0; i < c.NumRows(); i++ {
		if c.Value(i) != other.Value(i) {
			return false
		}
	}
	return true
}

// OwnedTable is a fully materialized query result. A verified instance is
// the pipeline's output; it is built fresh per call and never mutated.
type OwnedTable struct {
	Columns []Column
}

// NumRows returns the row count shared by every column.
func (t *OwnedTable) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].NumRows()
}

// Column looks a column up by exact name.
func (t *OwnedTable) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Equal reports whether two tables hold identical columns in identical
// order.
func (t *OwnedTable) Equal(other *OwnedTable) bool {
	if len(t.Columns) != len(other.Columns) {
		return false
	}
	for i := range t.Columns {
		if !t.Columns[i].equal(&other.Columns[i]) {
			return false
		}
	}
	return true
}
