// Package postprocess applies deterministic display transforms to verified
// result tables: projection, row slicing, and simple group-by aggregation.
// It satisfies the verifier's Postprocessor contract and must only ever be
// fed verified tables.
package postprocess

import (
	"errors"
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

var (
	ErrUnknownColumn        = errors.New("postprocess references unknown column")
	ErrUnsupportedAggregate = errors.New("aggregate unsupported for column type")
)

// AggOp is a group-by aggregation operator.
type AggOp uint8

const (
	AggCount AggOp = iota
	AggSum
	AggMin
	AggMax
)

func (op AggOp) String() string {
	switch op {
	case AggCount:
		return "count"
	case AggSum:
		return "sum"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	}
	return fmt.Sprintf("AggOp(%d)", uint8(op))
}

// Aggregate is one aggregation over a column, emitted under the As name.
// Count ignores the source column; sum/min/max require a bigint column.
type Aggregate struct {
	Op     AggOp
	Column string
	As     string
}

// Plan is a deterministic transform applied after verification. Stages run
// in order: group-by (with aggregates), projection, then offset/limit
// slicing. Zero values disable each stage; Limit 0 means unlimited.
type Plan struct {
	GroupBy    string
	Aggregates []Aggregate
	Select     []string
	Offset     int
	Limit      int
}

// Apply runs the plan over a table, returning a fresh table. The input is
// never mutated.
func (p *Plan) Apply(t *table.OwnedTable) (*table.OwnedTable, error) {
	out := t
	var err error
	if p.GroupBy != "" {
		out, err = p.groupBy(out)
		if err != nil {
			return nil, err
		}
	}
	if len(p.Select) > 0 {
		out, err = project(out, p.Select)
		if err != nil {
			return nil, err
		}
	}
	return slice(out, p.Offset, p.Limit), nil
}

func project(t *table.OwnedTable, names []string) (*table.OwnedTable, error) {
	out := &table.OwnedTable{Columns: make([]table.Column, 0, len(names))}
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		out.Columns = append(out.Columns, *col)
	}
	return out, nil
}

func slice(t *table.OwnedTable, offset, limit int) *table.OwnedTable {
	lo := offset
	if lo < 0 {
		lo = 0
	}
	if lo > t.NumRows() {
		lo = t.NumRows()
	}
	hi := t.NumRows()
	if limit > 0 && lo+limit < hi {
		hi = lo + limit
	}

	out := &table.OwnedTable{Columns: make([]table.Column, len(t.Columns))}
	for i := range t.Columns {
		col := t.Columns[i]
		switch col.Type {
		case table.ColumnBoolean:
			col.Booleans = col.Booleans[lo:hi]
		case table.ColumnBigInt:
			col.BigInts = col.BigInts[lo:hi]
		case table.ColumnVarChar:
			col.VarChars = col.VarChars[lo:hi]
		case table.ColumnDecimal75:
			col.Decimals = col.Decimals[lo:hi]
		case table.ColumnTimestamp:
			col.Timestamps = col.Timestamps[lo:hi]
		case table.ColumnScalar:
			col.Scalars = col.Scalars[lo:hi]
		}
		out.Columns[i] = col
	}
	return out
}

// groupBy buckets rows by the key column in first-seen order and computes
// each aggregate per bucket.
func (p *Plan) groupBy(t *table.OwnedTable) (*table.OwnedTable, error) {
	key, ok := t.Column(p.GroupBy)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, p.GroupBy)
	}
	sources := make([]*table.Column, len(p.Aggregates))
	for i := range p.Aggregates {
		agg := &p.Aggregates[i]
		if agg.Op == AggCount {
			continue
		}
		col, ok := t.Column(agg.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, agg.Column)
		}
		if col.Type != table.ColumnBigInt {
			return nil, fmt.Errorf("%w: %s(%s) over %s column",
				ErrUnsupportedAggregate, agg.Op, agg.Column, col.Type)
		}
		sources[i] = col
	}

	groupIndex := make(map[interface{}]int)
	var groups [][]int
	var keyOrder []int
	for row := 0; row < t.NumRows(); row++ {
		k := key.Value(row)
		idx, seen := groupIndex[k]
		if !seen {
			idx = len(groups)
			groupIndex[k] = idx
			groups = append(groups, nil)
			keyOrder = append(keyOrder, row)
		}
		groups[idx] = append(groups[idx], row)
	}

	keyCol := table.Column{Name: key.Name, Type: key.Type, Precision: key.Precision, Scale: key.Scale}
	for _, row := range keyOrder {
		appendValue(&keyCol, key, row)
	}

	out := &table.OwnedTable{Columns: []table.Column{keyCol}}
	for i := range p.Aggregates {
		agg := &p.Aggregates[i]
		col := table.Column{Name: agg.As, Type: table.ColumnBigInt}
		if col.Name == "" {
			col.Name = fmt.Sprintf("%s_%s", agg.Op, agg.Column)
		}
		for _, rows := range groups {
			col.BigInts = append(col.BigInts, aggregate(agg.Op, sources[i], rows))
		}
		out.Columns = append(out.Columns, col)
	}
	return out, nil
}

func appendValue(dst, src *table.Column, row int) {
	switch src.Type {
	case table.ColumnBoolean:
		dst.Booleans = append(dst.Booleans, src.Booleans[row])
	case table.ColumnBigInt:
		dst.BigInts = append(dst.BigInts, src.BigInts[row])
	case table.ColumnVarChar:
		dst.VarChars = append(dst.VarChars, src.VarChars[row])
	case table.ColumnDecimal75:
		dst.Decimals = append(dst.Decimals, src.Decimals[row])
	case table.ColumnTimestamp:
		dst.Timestamps = append(dst.Timestamps, src.Timestamps[row])
	case table.ColumnScalar:
		dst.Scalars = append(dst.Scalars, src.Scalars[row])
	}
}

func aggregate(op AggOp, src *table.Column, rows []int) int64 {
	if op == AggCount {
		return int64(len(rows))
	}
	acc := src.BigInts[rows[0]]
	for _, row := range rows[1:] {
		v := src.BigInts[row]
		switch op {
		case AggSum:
			acc += v
		case AggMin:
			if v < acc {
				acc = v
			}
		case AggMax:
			if v > acc {
				acc = v
			}
		}
	}
	return acc
}
