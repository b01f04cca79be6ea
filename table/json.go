package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/torusresearch/bijson"
)

// RenderJSON serializes a table as a column-name -> values object. Decimal
// and scalar values render as 0x-prefixed hex.
func RenderJSON(t *OwnedTable) ([]byte, error) {
	out := make(map[string][]interface{}, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		values := make([]interface{}, col.NumRows())
		for r := range values {
			values[r] = renderValue(col, r)
		}
		out[col.Name] = values
	}
	return bijson.Marshal(out)
}

func renderValue(col *Column, row int) interface{} {
	switch col.Type {
	case ColumnDecimal75:
		return hexutil.Encode(col.Decimals[row][:])
	case ColumnScalar:
		return hexutil.Encode(col.Scalars[row][:])
	default:
		return col.Value(row)
	}
}

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, t *OwnedTable) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(t.Columns))
	for i := range t.Columns {
		header[i] = t.Columns[i].Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for r := 0; r < t.NumRows(); r++ {
		for i := range t.Columns {
			record[i] = formatValue(&t.Columns[i], r)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(col *Column, row int) string {
	switch col.Type {
	case ColumnBoolean:
		return strconv.FormatBool(col.Booleans[row])
	case ColumnBigInt:
		return strconv.FormatInt(col.BigInts[row], 10)
	case ColumnVarChar:
		return col.VarChars[row]
	case ColumnDecimal75:
		return hexutil.Encode(col.Decimals[row][:])
	case ColumnTimestamp:
		return strconv.FormatInt(col.Timestamps[row], 10)
	case ColumnScalar:
		return hexutil.Encode(col.Scalars[row][:])
	}
	return fmt.Sprintf("%v", col.Value(row))
}
