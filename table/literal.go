package table

import "github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/codec"

// LiteralValue is a query parameter bound into the proof plan. The proof
// transcript commits to every parameter, so the canonical encoding here
// must match the prover byte for byte.
type LiteralValue struct {
	Type ColumnType

	Boolean bool
	BigInt  int64
	VarChar string
	Scalar  [32]byte
}

func BooleanLiteral(v bool) LiteralValue {
	return LiteralValue{Type: ColumnBoolean, Boolean: v}
}

func BigIntLiteral(v int64) LiteralValue {
	return LiteralValue{Type: ColumnBigInt, BigInt: v}
}

func VarCharLiteral(v string) LiteralValue {
	return LiteralValue{Type: ColumnVarChar, VarChar: v}
}

func ScalarLiteral(v [32]byte) LiteralValue {
	return LiteralValue{Type: ColumnScalar, Scalar: v}
}

// Encode appends the literal's canonical binary form.
func (v LiteralValue) Encode(e *codec.Encoder) {
	e.Uint8(uint8(v.Type))
	switch v.Type {
	case ColumnBoolean:
		e.Bool(v.Boolean)
	case ColumnBigInt, ColumnTimestamp:
		e.Int64(v.BigInt)
	case ColumnVarChar:
		e.String(v.VarChar)
	default:
		e.Bytes(v.Scalar[:])
	}
}
