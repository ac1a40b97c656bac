package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"rsrcdasm.dev/go/rsrc"
)

// buildSingleResourceFork assembles a minimal resource fork containing
// one resource, computing every offset from the pieces it writes
// rather than hardcoding them (spec §4.2, scenario S1).
func buildSingleResourceFork(t *testing.T, resType string, id int16, name string, data []byte) []byte {
	t.Helper()
	if len(resType) != 4 {
		t.Fatalf("resType must be 4 bytes")
	}

	const headerSize = 16
	dataOffset := headerSize

	var dataSection bytes.Buffer
	binary.Write(&dataSection, binary.BigEndian, uint32(len(data)))
	dataSection.Write(data)

	mapOffset := dataOffset + dataSection.Len()

	const mapHeaderFixedSize = 16 + 4 + 2 + 2 // reserved + handle + file ref num + attributes
	typeListOffset := mapHeaderFixedSize + 4  // +4 for the two offset fields themselves
	typeListContentLen := 2 + 8               // count-1 word + one 8-byte type entry
	refListOffsetWithinTypeList := typeListContentLen
	refListLen := 12
	nameListOffset := typeListOffset + typeListContentLen + refListLen

	var nameList bytes.Buffer
	nameOffsetInList := uint16(0xFFFF)
	if name != "" {
		nameOffsetInList = uint16(nameList.Len())
		nameList.WriteByte(byte(len(name)))
		nameList.WriteString(name)
	}

	var mapSection bytes.Buffer
	mapSection.Write(make([]byte, 16))                                  // reserved
	binary.Write(&mapSection, binary.BigEndian, uint32(0))              // reserved handle
	binary.Write(&mapSection, binary.BigEndian, uint16(0))              // file ref num
	binary.Write(&mapSection, binary.BigEndian, uint16(0))              // attributes
	binary.Write(&mapSection, binary.BigEndian, uint16(typeListOffset)) // relative to map start
	binary.Write(&mapSection, binary.BigEndian, uint16(nameListOffset))

	// Type list.
	binary.Write(&mapSection, binary.BigEndian, uint16(0)) // count - 1 => 1 type
	mapSection.WriteString(resType)
	binary.Write(&mapSection, binary.BigEndian, uint16(0)) // numItems - 1 => 1 item
	binary.Write(&mapSection, binary.BigEndian, uint16(refListOffsetWithinTypeList))

	// Reference list.
	binary.Write(&mapSection, binary.BigEndian, id)
	binary.Write(&mapSection, binary.BigEndian, nameOffsetInList)
	binary.Write(&mapSection, binary.BigEndian, uint32(0)) // attributes=0, data offset=0 (relative to data section)
	binary.Write(&mapSection, binary.BigEndian, uint32(0)) // reserved

	mapSection.Write(nameList.Bytes())

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(dataOffset))
	binary.Write(&out, binary.BigEndian, uint32(mapOffset))
	binary.Write(&out, binary.BigEndian, uint32(dataSection.Len()))
	binary.Write(&out, binary.BigEndian, uint32(mapSection.Len()))
	out.Write(dataSection.Bytes())
	out.Write(mapSection.Bytes())

	return out.Bytes()
}

func TestTryParseResourceForkSingleResource(t *testing.T) {
	fork := buildSingleResourceFork(t, "STR ", 128, "Hello", []byte("\x00\x05Hello"))

	set, err := TryParseResourceFork(fork)
	if err != nil {
		t.Fatalf("TryParseResourceFork: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("got %d resources, want 1", set.Len())
	}
	res, err := set.Get(rsrc.ParseType("STR "), 128, nil, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Name != "Hello" {
		t.Errorf("name = %q, want Hello", res.Name)
	}
	if string(res.Data) != "\x00\x05Hello" {
		t.Errorf("data = %q, want %q", res.Data, "\x00\x05Hello")
	}
}

func TestTryParseAppleDoubleWrapsResourceFork(t *testing.T) {
	fork := buildSingleResourceFork(t, "STR ", 128, "Hello", []byte("\x00\x05Hello"))

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(appleDoubleMagic))
	binary.Write(&out, binary.BigEndian, uint32(0x00020000))
	out.Write(make([]byte, 16))
	binary.Write(&out, binary.BigEndian, uint16(1)) // one entry

	entryOffset := 26 + 12
	binary.Write(&out, binary.BigEndian, uint32(entryIDResourceFork))
	binary.Write(&out, binary.BigEndian, uint32(entryOffset))
	binary.Write(&out, binary.BigEndian, uint32(len(fork)))
	out.Write(fork)

	if !SniffAppleDouble(out.Bytes()) {
		t.Fatalf("SniffAppleDouble returned false for a valid AppleDouble header")
	}
	set, err := TryParseAppleDouble(out.Bytes())
	if err != nil {
		t.Fatalf("TryParseAppleDouble: %v", err)
	}
	res, err := set.Get(rsrc.ParseType("STR "), 128, nil, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Name != "Hello" {
		t.Errorf("name = %q, want Hello", res.Name)
	}
}

func TestSniffMacBinaryRejectsBadZeroFlag(t *testing.T) {
	data := make([]byte, 0x80)
	data[0x52] = 1
	if SniffMacBinary(data) {
		t.Errorf("expected SniffMacBinary to reject a nonzero zero-flag byte")
	}
}
