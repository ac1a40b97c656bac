// Package breader implements a cursor-based, bounds-checked reader over
// a byte range, used by every container parser and resource decoder in
// this module (spec §4.1).
package breader

import (
	"encoding/binary"
	"fmt"

	"rsrcdasm.dev/go/rsrc"
)

// Reader is a view over a byte slice with a cursor offset. It never
// copies or mutates the underlying bytes; Sub and Read return borrowed
// subslices. A Reader must not be used concurrently with mutation of its
// backing slice.
type Reader struct {
	data []byte
	pos  int64
}

// New returns a Reader over data, positioned at offset 0.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total length of the reader's range.
func (r *Reader) Len() int64 {
	return int64(len(r.data))
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Remaining returns the number of bytes between the cursor and the end
// of the range.
func (r *Reader) Remaining() int64 {
	return r.Len() - r.pos
}

// EOF reports whether the cursor is at or past the end of the range.
func (r *Reader) EOF() bool {
	return r.pos >= r.Len()
}

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(absolute int64) error {
	if absolute < 0 || absolute > r.Len() {
		return r.outOfRange(absolute, 0, "seek")
	}
	r.pos = absolute
	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int64) error {
	return r.Seek(r.pos + n)
}

func (r *Reader) outOfRange(offset, n int64, context string) error {
	return &rsrc.OutOfRangeError{Offset: offset, Len: n, Bound: r.Len(), Context: context}
}

// checkRange validates that [offset, offset+n) lies within the range.
func (r *Reader) checkRange(offset, n int64, context string) error {
	if offset < 0 || n < 0 || offset+n > r.Len() {
		return r.outOfRange(offset, n, context)
	}
	return nil
}

// Read returns a borrowed subslice of length n starting at the cursor,
// and advances the cursor past it.
func (r *Reader) Read(n int64) ([]byte, error) {
	if err := r.checkRange(r.pos, n, "read"); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// PeekAt performs a random-access read of n bytes at offset without
// moving the cursor.
func (r *Reader) PeekAt(offset, n int64) ([]byte, error) {
	if err := r.checkRange(offset, n, "peek"); err != nil {
		return nil, err
	}
	return r.data[offset : offset+n], nil
}

// Sub returns a new Reader over an inclusive sub-range [offset, offset+length).
func (r *Reader) Sub(offset, length int64) (*Reader, error) {
	if err := r.checkRange(offset, length, "sub"); err != nil {
		return nil, err
	}
	return New(r.data[offset : offset+length]), nil
}

// U8 reads an unsigned 8-bit big-endian value, advancing the cursor.
func (r *Reader) U8() (uint8, error) {
	b, err := r.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads an unsigned 16-bit big-endian value, advancing the cursor.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U32 reads an unsigned 32-bit big-endian value, advancing the cursor.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// U64 reads an unsigned 64-bit big-endian value, advancing the cursor.
func (r *Reader) U64() (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// I8, I16, I32, I64 are the signed equivalents of U8..U64.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// U16LE, U32LE read little-endian values, for the few inputs that are
// not big-endian (spec §9).
func (r *Reader) U16LE() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) U32LE() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// PeekU8At, PeekU16At, PeekU32At are peek_at(offset, T) random-access
// reads for the primitive widths commonly needed by container parsers.
func (r *Reader) PeekU8At(offset int64) (uint8, error) {
	b, err := r.PeekAt(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) PeekU16At(offset int64) (uint16, error) {
	b, err := r.PeekAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) PeekU32At(offset int64) (uint32, error) {
	b, err := r.PeekAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// PString reads a Pascal string (one length byte followed by that many
// bytes) at the cursor.
func (r *Reader) PString() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	b, err := r.Read(int64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PStringAt reads a Pascal string at an absolute offset without moving
// the cursor.
func (r *Reader) PStringAt(offset int64) (string, error) {
	n, err := r.PeekU8At(offset)
	if err != nil {
		return "", err
	}
	b, err := r.PeekAt(offset+1, int64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String renders a Reader's state for debugging.
func (r *Reader) String() string {
	return fmt.Sprintf("breader.Reader{pos: %d, len: %d}", r.pos, r.Len())
}
