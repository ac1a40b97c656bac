package code

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildCODE0(t *testing.T, entries []JumpTableEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0x1000)) // above A5
	binary.Write(&buf, binary.BigEndian, uint32(0x2000)) // below A5
	binary.Write(&buf, binary.BigEndian, uint32(len(entries)*jumpTableEntrySize))
	binary.Write(&buf, binary.BigEndian, uint32(0x20)) // table offset
	for _, e := range entries {
		binary.Write(&buf, binary.BigEndian, e.OffsetFromHeader)
		if e.IsZeroEntry {
			buf.Write([]byte{0, 0, 0, 0, 0, 0})
		} else {
			binary.Write(&buf, binary.BigEndian, uint16(0x3F3C))
			binary.Write(&buf, binary.BigEndian, uint16(e.CodeResourceID))
			binary.Write(&buf, binary.BigEndian, uint16(0xA9F0))
		}
	}
	return buf.Bytes()
}

func TestDecodeCODE0JumpTable(t *testing.T) {
	data := buildCODE0(t, []JumpTableEntry{
		{OffsetFromHeader: 4, CodeResourceID: 2},
		{IsZeroEntry: true},
	})
	jt, err := DecodeCODE0(data)
	if err != nil {
		t.Fatalf("DecodeCODE0: %v", err)
	}
	if jt.AboveA5Size != 0x1000 || jt.BelowA5Size != 0x2000 {
		t.Fatalf("unexpected segment sizes: %+v", jt)
	}
	if len(jt.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(jt.Entries))
	}
	if jt.Entries[0].CodeResourceID != 2 || jt.Entries[0].IsZeroEntry {
		t.Errorf("entry 0 = %+v", jt.Entries[0])
	}
	if !jt.Entries[1].IsZeroEntry {
		t.Errorf("entry 1 should be a zero entry: %+v", jt.Entries[1])
	}
}

func TestDecodeCODENNearModel(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(8)) // entry offset
	binary.Write(&buf, binary.BigEndian, uint16(0)) // unused
	buf.Write([]byte{0xAA, 0xBB, 0xCC})

	seg, err := DecodeCODEN(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeCODEN: %v", err)
	}
	if seg.Near == nil || seg.Far != nil {
		t.Fatalf("expected near-model segment, got %+v", seg)
	}
	if seg.Near.EntryOffset != 8 {
		t.Errorf("entry offset = %d, want 8", seg.Near.EntryOffset)
	}
	if !bytes.Equal(seg.Code, []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("code = %v", seg.Code)
	}
}

func TestDecodeCODENFarModel(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, int16(-1)) // negative => far model
	fields := []uint32{0x10, 2, 0x20, 3, 0x100, 0x3000, 0x200, 0x400000}
	for _, f := range fields {
		binary.Write(&buf, binary.BigEndian, f)
	}
	buf.Write([]byte{0x4E, 0x75})

	seg, err := DecodeCODEN(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeCODEN: %v", err)
	}
	if seg.Far == nil {
		t.Fatalf("expected far-model segment")
	}
	if seg.Far.NearEntryCount != 2 || seg.Far.FarEntryCount != 3 {
		t.Errorf("far header = %+v", seg.Far)
	}
	if seg.Far.LoadAddress != 0x400000 {
		t.Errorf("load address = %#x, want 0x400000", seg.Far.LoadAddress)
	}
}

func TestDecodeDRVRName(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0x4000)) // flags
	binary.Write(&buf, binary.BigEndian, uint16(0))       // event mask
	for i := 0; i < 5; i++ {
		binary.Write(&buf, binary.BigEndian, uint16(0x20+i*2))
	}
	buf.WriteByte(byte(len(".MyDriver")))
	buf.WriteString(".MyDriver")
	buf.Write([]byte{0x60, 0x00})

	d, err := DecodeDRVR(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeDRVR: %v", err)
	}
	if d.Name != ".MyDriver" {
		t.Errorf("name = %q", d.Name)
	}
	if d.OpenOffset != 0x20 || d.CloseOffset != 0x28 {
		t.Errorf("offsets = %+v", d)
	}
}

func TestDecodeDcmpHeader(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0))  // init
	binary.Write(&buf, binary.BigEndian, uint16(8))  // decompress
	binary.Write(&buf, binary.BigEndian, uint16(16)) // exit
	binary.Write(&buf, binary.BigEndian, uint16(0))  // pc reloc
	buf.Write([]byte{0x4E, 0x71})

	d, err := DecodeDcmp(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeDcmp: %v", err)
	}
	if d.DecompressOffset != 8 || d.ExitOffset != 16 {
		t.Errorf("dcmp header = %+v", d)
	}
}

func buildPEFF(t *testing.T, sections [][]byte) []byte {
	t.Helper()
	var header bytes.Buffer
	binary.Write(&header, binary.BigEndian, uint32(peffTag1))
	binary.Write(&header, binary.BigEndian, uint32(peffTag2))
	binary.Write(&header, binary.BigEndian, uint32(peffArch))
	binary.Write(&header, binary.BigEndian, uint32(1)) // format version
	binary.Write(&header, binary.BigEndian, uint32(0)) // date stamp
	binary.Write(&header, binary.BigEndian, uint32(0)) // old def version
	binary.Write(&header, binary.BigEndian, uint32(0)) // old imp version
	binary.Write(&header, binary.BigEndian, uint32(0)) // current version
	binary.Write(&header, binary.BigEndian, uint16(len(sections)))
	binary.Write(&header, binary.BigEndian, uint16(len(sections)))
	binary.Write(&header, binary.BigEndian, uint32(0)) // reserved

	sectionTableLen := len(sections) * peffSectionHeaderSize
	dataStart := header.Len() + sectionTableLen

	var sectionTable, payload bytes.Buffer
	offset := dataStart
	for _, s := range sections {
		binary.Write(&sectionTable, binary.BigEndian, int32(-1)) // name offset
		binary.Write(&sectionTable, binary.BigEndian, uint32(0)) // default address
		binary.Write(&sectionTable, binary.BigEndian, uint32(len(s)))
		binary.Write(&sectionTable, binary.BigEndian, uint32(len(s)))
		binary.Write(&sectionTable, binary.BigEndian, uint32(len(s)))
		binary.Write(&sectionTable, binary.BigEndian, uint32(offset))
		sectionTable.WriteByte(byte(PEFFSectionCode))
		sectionTable.WriteByte(0) // share kind
		sectionTable.WriteByte(0) // alignment
		sectionTable.WriteByte(0) // reserved
		payload.Write(s)
		offset += len(s)
	}

	var out bytes.Buffer
	out.Write(header.Bytes())
	out.Write(sectionTable.Bytes())
	out.Write(payload.Bytes())
	return out.Bytes()
}

func TestDecodePEFFSections(t *testing.T) {
	data := buildPEFF(t, [][]byte{{1, 2, 3, 4}, {5, 6}})
	p, err := DecodePEFF(data)
	if err != nil {
		t.Fatalf("DecodePEFF: %v", err)
	}
	if len(p.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(p.Sections))
	}
	if !bytes.Equal(p.Sections[0].Data, []byte{1, 2, 3, 4}) {
		t.Errorf("section 0 data = %v", p.Sections[0].Data)
	}
	if !bytes.Equal(p.Sections[1].Data, []byte{5, 6}) {
		t.Errorf("section 1 data = %v", p.Sections[1].Data)
	}
}
