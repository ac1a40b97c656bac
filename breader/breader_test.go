package breader

import (
	"errors"
	"testing"

	"rsrcdasm.dev/go/rsrc"
)

func TestReaderPrimitives(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFE, 0xFD, 0xFC}
	r := New(data)

	u8, err := r.U8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("U8() = %d, %v", u8, err)
	}
	u16, err := r.U16()
	if err != nil || u16 != 0x0203 {
		t.Fatalf("U16() = %#x, %v", u16, err)
	}
	u32, err := r.U32()
	if err != nil || u32 != 0x04FFFEFD {
		t.Fatalf("U32() = %#x, %v", u32, err)
	}
	if r.Pos() != 7 {
		t.Fatalf("Pos() = %d, want 7", r.Pos())
	}
}

func TestReaderOutOfRange(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	_, err := r.Read(3)
	var target *rsrc.OutOfRangeError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want *rsrc.OutOfRangeError", err)
	}
}

func TestReaderSubIsIndependentCursor(t *testing.T) {
	r := New([]byte{0, 1, 2, 3, 4, 5})
	_, _ = r.Read(2) // advance outer cursor past [0,1]

	sub, err := r.Sub(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sub.Read(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 3, 4}
	if string(b) != string(want) {
		t.Fatalf("got %v, want %v", b, want)
	}
	if r.Pos() != 2 {
		t.Fatalf("outer cursor moved: Pos() = %d, want 2", r.Pos())
	}
}

func TestReaderPString(t *testing.T) {
	r := New([]byte{0x05, 'H', 'e', 'l', 'l', 'o', 'X'})
	s, err := r.PString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "Hello" {
		t.Fatalf("got %q, want %q", s, "Hello")
	}
}

func TestReaderLittleEndian(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := r.U16LE()
	if err != nil || v != 0x0201 {
		t.Fatalf("U16LE() = %#x, %v", v, err)
	}
	v32, err := r.U32LE()
	if err == nil {
		t.Fatalf("U32LE() should fail: only 2 bytes remain")
	}
	_ = v32
}
