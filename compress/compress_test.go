package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"rsrcdasm.dev/go/rsrc"
)

func buildCompressedResource(t *testing.T, dcmpID int16, decompressedSize uint32, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(compressedMagic))
	binary.Write(&buf, binary.BigEndian, decompressedSize)
	binary.Write(&buf, binary.BigEndian, uint16(0)) // working buffer len
	binary.Write(&buf, binary.BigEndian, dcmpID)
	binary.Write(&buf, binary.BigEndian, uint16(0)) // extra
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecompressStoreRoundTrip(t *testing.T) {
	want := []byte("hello, world")
	data := buildCompressedResource(t, 0, uint32(len(want)), want)

	set := rsrc.NewResourceSet()
	res := rsrc.Resource{Type: rsrc.ParseType("snd "), ID: 128, Flags: rsrc.FlagCompressed, Data: data}
	set.Add(res)

	d := NewDispatcher()
	out, err := set.Get(res.Type, res.ID, d, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(out.Data, want) {
		t.Errorf("got %q, want %q", out.Data, want)
	}
	if !out.Flags.Has(rsrc.FlagDecompressed) {
		t.Errorf("expected FlagDecompressed to be set")
	}
}

func TestDecompressPackBitsExpandsRepeatRun(t *testing.T) {
	want := bytes.Repeat([]byte{0x41}, 10)
	payload := []byte{0xF7, 0x41} // repeat packet: 0xF7 is -9, so 1-(-9) = 10 copies of 0x41
	data := buildCompressedResource(t, 1, uint32(len(want)), payload)

	set := rsrc.NewResourceSet()
	res := rsrc.Resource{Type: rsrc.ParseType("snd "), ID: 129, Flags: rsrc.FlagCompressed, Data: data}
	set.Add(res)

	d := NewDispatcher()
	out, err := set.Get(res.Type, res.ID, d, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(out.Data, want) {
		t.Errorf("got %q, want %q", out.Data, want)
	}
}

func TestDecompressMissingCollaboratorFails(t *testing.T) {
	data := buildCompressedResource(t, -1, 4, []byte{0, 0, 0, 0})

	set := rsrc.NewResourceSet()
	res := rsrc.Resource{Type: rsrc.ParseType("snd "), ID: 130, Flags: rsrc.FlagCompressed, Data: data}
	set.Add(res)
	set.Add(rsrc.Resource{Type: rsrc.TypeDcmp, ID: -1, Data: []byte("fake code")})

	d := NewDispatcher()
	_, err := set.Get(res.Type, res.ID, d, 0)
	if err == nil {
		t.Fatalf("expected an error with no CodeResourceRunner configured")
	}
	var decErr *rsrc.DecompressionFailedError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecompressionFailedError, got %T: %v", err, err)
	}
}
