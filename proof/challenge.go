package proof

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/codec"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
)

// CommitmentBinding fixes one opening's attested commitment bytes into the
// challenge transcript. Bindings are fed in opening order.
type CommitmentBinding struct {
	Table      string
	Column     string
	Commitment []byte
}

// EvaluationChallenge derives the evaluation point for a query from the
// full public transcript: the query plan, the claimed result, each
// opening's attested commitment, and the serialized query parameters. Every
// input is length-prefixed so no two transcripts can collide by
// concatenation. The caller reduces the digest into its scheme's scalar
// field.
func EvaluationChallenge(plan, result, params []byte, bindings []CommitmentBinding) [32]byte {
	e := codec.NewEncoder()
	e.VarBytes(plan).VarBytes(result)
	e.Uint64(uint64(len(bindings)))
	for i := range bindings {
		b := &bindings[i]
		e.String(b.Table).String(b.Column).VarBytes(b.Commitment)
	}
	e.VarBytes(params)

	var out [32]byte
	copy(out[:], ethcrypto.Keccak256(e.Encoded()))
	return out
}

// EncodeParams serializes query parameters into the canonical params blob
// the transcript commits to.
func EncodeParams(params []table.LiteralValue) []byte {
	e := codec.NewEncoder()
	e.Uint64(uint64(len(params)))
	for _, p := range params {
		p.Encode(e)
	}
	return e.Encoded()
}
