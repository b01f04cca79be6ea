// Package codec implements the canonical binary layout shared with the
// prover service and the on-chain commitment storage: fixed-width integers,
// big-endian, uncompressed, with 8-byte length prefixes on variable data.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when a decode runs past the end of the
	// buffer.
	ErrUnexpectedEOF = errors.New("unexpected end of canonical binary data")
	// ErrTrailingBytes is returned by Finish when the buffer was not fully
	// consumed.
	ErrTrailingBytes = errors.New("trailing bytes after canonical binary value")
)

// maxPrefixLen bounds length prefixes so a corrupted prefix cannot drive a
// huge allocation before the buffer bound check catches it.
const maxPrefixLen = 1 << 32

// Decoder reads canonical binary values from a byte slice. The first error
// sticks; callers check Err or Finish once after a run of reads.
type Decoder struct {
	buf []byte
	off int
	err error
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Bytes consumes exactly n bytes. The returned slice aliases the input.
func (d *Decoder) Bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.off+n > len(d.buf) {
		d.fail(ErrUnexpectedEOF)
		return nil
	}
	out := d.buf[d.off : d.off+n]
	d.off += n
	return out
}

func (d *Decoder) Uint8() uint8 {
	b := d.Bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) Bool() bool {
	return d.Uint8() != 0
}

func (d *Decoder) Uint64() uint64 {
	b := d.Bytes(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (d *Decoder) Int64() int64 {
	return int64(d.Uint64())
}

// VarBytes consumes a u64 length prefix followed by that many bytes.
func (d *Decoder) VarBytes() []byte {
	n := d.Uint64()
	if d.err != nil {
		return nil
	}
	if n > maxPrefixLen {
		d.fail(fmt.Errorf("%w: implausible length prefix %d", ErrUnexpectedEOF, n))
		return nil
	}
	return d.Bytes(int(n))
}

func (d *Decoder) String() string {
	return string(d.VarBytes())
}

// Err reports the first decode error, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Remaining reports how many bytes have not been consumed yet.
func (d *Decoder) Remaining() int {
	if d.err != nil {
		return 0
	}
	return len(d.buf) - d.off
}

// Finish returns the first decode error, or ErrTrailingBytes if the buffer
// holds unconsumed data. A fully decoded value consumes its buffer exactly.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return fmt.Errorf("%w: %d bytes left", ErrTrailingBytes, len(d.buf)-d.off)
	}
	return nil
}

// Encoder writes canonical binary values. It is the mirror of Decoder and
// exists mainly for building transcripts and test fixtures; production
// blobs arrive already serialized.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Bytes(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) Uint8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		return e.Uint8(1)
	}
	return e.Uint8(0)
}

func (e *Encoder) Uint64(v uint64) *Encoder {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) Int64(v int64) *Encoder {
	return e.Uint64(uint64(v))
}

// VarBytes writes a u64 length prefix followed by the bytes.
func (e *Encoder) VarBytes(b []byte) *Encoder {
	return e.Uint64(uint64(len(b))).Bytes(b)
}

func (e *Encoder) String(s string) *Encoder {
	return e.VarBytes([]byte(s))
}

func (e *Encoder) Encoded() []byte {
	return e.buf
}
