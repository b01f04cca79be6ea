package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	enc := NewEncoder().
		Uint8(7).
		Bool(true).
		Uint64(4539877).
		Int64(-42).
		String("ETHEREUM.BLOCKS").
		VarBytes([]byte{1, 2, 3, 4})

	d := NewDecoder(enc.Encoded())
	assert.Equal(t, uint8(7), d.Uint8())
	assert.Equal(t, true, d.Bool())
	assert.Equal(t, uint64(4539877), d.Uint64())
	assert.Equal(t, int64(-42), d.Int64())
	assert.Equal(t, "ETHEREUM.BLOCKS", d.String())
	assert.Equal(t, []byte{1, 2, 3, 4}, d.VarBytes())
	require.NoError(t, d.Finish())
}

func TestBigEndianLayout(t *testing.T) {
	enc := NewEncoder().Uint64(0x0102030405060708)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, enc.Encoded())
}

func TestTruncatedBuffer(t *testing.T) {
	d := NewDecoder([]byte{0, 0, 0})
	d.Uint64()
	assert.ErrorIs(t, d.Err(), ErrUnexpectedEOF)
	assert.ErrorIs(t, d.Finish(), ErrUnexpectedEOF)
}

func TestTruncatedVarBytes(t *testing.T) {
	// Prefix says 16 bytes, only 2 follow.
	buf := NewEncoder().Uint64(16).Bytes([]byte{1, 2}).Encoded()
	d := NewDecoder(buf)
	d.VarBytes()
	assert.ErrorIs(t, d.Err(), ErrUnexpectedEOF)
}

func TestTrailingBytes(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	d.Uint8()
	assert.ErrorIs(t, d.Finish(), ErrTrailingBytes)
}

func TestErrorSticks(t *testing.T) {
	d := NewDecoder([]byte{1})
	d.Uint64()
	require.Error(t, d.Err())
	// Later reads return zero values instead of panicking.
	assert.Equal(t, uint8(0), d.Uint8())
	assert.Nil(t, d.VarBytes())
}
