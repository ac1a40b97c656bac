// Package code decodes executable-code resources — CODE jump tables and
// segments, DRVR device drivers, dcmp decompressor headers, and PEFF
// (PowerPC) containers — down to their header fields and code/relocation
// byte ranges (spec §4.8). Actually running the code is the job of a
// 68K/PPC CPU-emulator collaborator outside this module's scope; these
// decoders stop at handing that collaborator a well-formed entry point
// and a code slice.
package code

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// JumpTableEntry is one routine descriptor in a CODE-0 jump table.
type JumpTableEntry struct {
	CodeResourceID    rsrc.ID
	OffsetFromHeader  uint16
	IsZeroEntry       bool // a placeholder entry, never resolved to real code
}

// JumpTable is the decoded CODE-0 resource: the application-global
// segment sizing plus the jump table every other CODE segment's
// far-model calls index into (spec §4.8).
type JumpTable struct {
	AboveA5Size   uint32
	BelowA5Size   uint32
	TableSize     uint32
	TableOffset   uint32
	Entries       []JumpTableEntry
}

// jumpTableEntrySize is the wire size of one {offset, opcode, segment-id,
// opcode} jump-table slot classic Mac OS lays out (spec §4.8).
const jumpTableEntrySize = 8

// DecodeCODE0 parses a CODE-0 resource's jump-table header.
func DecodeCODE0(data []byte) (*JumpTable, error) {
	r := breader.New(data)
	aboveA5, err := r.U32()
	if err != nil {
		return nil, err
	}
	belowA5, err := r.U32()
	if err != nil {
		return nil, err
	}
	tableSize, err := r.U32()
	if err != nil {
		return nil, err
	}
	tableOffset, err := r.U32()
	if err != nil {
		return nil, err
	}

	jt := &JumpTable{
		AboveA5Size: aboveA5,
		BelowA5Size: belowA5,
		TableSize:   tableSize,
		TableOffset: tableOffset,
	}

	numEntries := int64(tableSize) / jumpTableEntrySize
	for i := int64(0); i < numEntries; i++ {
		offset, err := r.U16()
		if err != nil {
			return nil, err
		}
		opcodeLoad, err := r.U16() // always 0x3F3C ("MOVE.W #segID,-(SP)") for a real entry
		if err != nil {
			return nil, err
		}
		segID, err := r.U16()
		if err != nil {
			return nil, err
		}
		opcodeJump, err := r.U16() // always 0xA9F0 ("_LoadSeg") for a real entry
		if err != nil {
			return nil, err
		}
		entry := JumpTableEntry{
			CodeResourceID:   rsrc.ID(segID),
			OffsetFromHeader: offset,
			IsZeroEntry:      opcodeLoad == 0 && segID == 0 && opcodeJump == 0,
		}
		jt.Entries = append(jt.Entries, entry)
	}
	return jt, nil
}

// NearHeader is a CODE-N resource's near-model header: a single entry
// offset into the segment's own code, with no relocation metadata
// (spec §4.8).
type NearHeader struct {
	EntryOffset uint16
}

// FarHeader is a CODE-N resource's far-model header, used when
// entry_offset is negative in the first word (spec §4.8).
type FarHeader struct {
	NearEntryStartA5 uint32
	NearEntryCount   uint32
	FarEntryStartA5  uint32
	FarEntryCount    uint32
	A5RelocOffset    uint32
	A5               uint32
	PCRelocOffset    uint32
	LoadAddress      uint32
}

// Segment is a decoded CODE-N resource.
type Segment struct {
	Near *NearHeader // set when the segment uses the near model
	Far  *FarHeader  // set when the segment uses the far model
	Code []byte      // code (and, for the far model, trailing relocation tables) following the header
}

// DecodeCODEN parses a CODE-N resource body, choosing the near or far
// header layout by inspecting the first signed 16-bit word (spec §4.8).
func DecodeCODEN(data []byte) (*Segment, error) {
	r := breader.New(data)
	firstWord, err := r.PeekU16At(0)
	if err != nil {
		return nil, err
	}

	if int16(firstWord) >= 0 {
		if err := r.Skip(2); err != nil {
			return nil, err
		}
		if _, err := r.U16(); err != nil { // unused word
			return nil, err
		}
		rest, err := r.Read(r.Remaining())
		if err != nil {
			return nil, err
		}
		return &Segment{Near: &NearHeader{EntryOffset: firstWord}, Code: rest}, nil
	}

	if err := r.Skip(2); err != nil {
		return nil, err
	}
	far := &FarHeader{}
	fields := []*uint32{
		&far.NearEntryStartA5, &far.NearEntryCount,
		&far.FarEntryStartA5, &far.FarEntryCount,
		&far.A5RelocOffset, &far.A5,
		&far.PCRelocOffset, &far.LoadAddress,
	}
	for _, f := range fields {
		v, err := r.U32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	rest, err := r.Read(r.Remaining())
	if err != nil {
		return nil, err
	}
	return &Segment{Far: far, Code: rest}, nil
}

// Driver is a decoded DRVR device-driver resource (spec §4.8).
type Driver struct {
	Flags        uint16
	EventMask    uint16
	OpenOffset   uint16
	PrimeOffset  uint16
	ControlOffset uint16
	StatusOffset uint16
	CloseOffset  uint16
	Name         string
	Code         []byte
}

// DecodeDRVR parses a DRVR resource.
func DecodeDRVR(data []byte) (*Driver, error) {
	r := breader.New(data)
	d := &Driver{}
	var err error
	if d.Flags, err = r.U16(); err != nil {
		return nil, err
	}
	if d.EventMask, err = r.U16(); err != nil {
		return nil, err
	}
	if d.OpenOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.PrimeOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.ControlOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.StatusOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.CloseOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.Name, err = r.PString(); err != nil {
		return nil, err
	}
	d.Code, err = r.Read(r.Remaining())
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Decompressor is a decoded dcmp/ncmp resource's header: the three
// entry points and relocation offset a CPU-emulator collaborator needs
// before running its code against a compressed payload (spec §4.8,
// consumed by [rsrcdasm.dev/go/rsrc/compress].CodeResourceRunner).
type Decompressor struct {
	InitOffset       uint16
	DecompressOffset uint16
	ExitOffset       uint16
	PCRelocOffset    uint16
	Code             []byte
}

// DecodeDcmp parses a dcmp/ncmp resource.
func DecodeDcmp(data []byte) (*Decompressor, error) {
	r := breader.New(data)
	d := &Decompressor{}
	var err error
	if d.InitOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.DecompressOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.ExitOffset, err = r.U16(); err != nil {
		return nil, err
	}
	if d.PCRelocOffset, err = r.U16(); err != nil {
		return nil, err
	}
	d.Code, err = r.Read(r.Remaining())
	if err != nil {
		return nil, err
	}
	return d, nil
}
