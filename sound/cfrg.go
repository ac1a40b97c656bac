package sound

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// CodeFragmentUsage is the cfrg entry's usage enum (spec §4.10).
type CodeFragmentUsage uint8

const (
	UsageImportLibrary CodeFragmentUsage = iota
	UsageApplication
	UsageDropInAddition
	UsageStubLibrary
	UsageWeakStubLibrary
)

// CodeFragmentLocation is the cfrg entry's storage-location enum.
type CodeFragmentLocation uint8

const (
	LocationMemory CodeFragmentLocation = iota
	LocationDataFork
	LocationResource
	LocationByteStream  // reserved
	LocationNamedFragment // reserved
)

// CodeFragmentEntry is one descriptor from a cfrg resource (spec
// §4.10): where to find a code fragment's bytes and how to instantiate
// it.
type CodeFragmentEntry struct {
	Architecture    uint32
	UpdateLevel     uint8
	CurrentVersion  uint32
	OldDefVersion   uint32
	AppStackSize    uint32
	AppSubdirIDOrLibFlags uint16
	Usage           CodeFragmentUsage
	Location        CodeFragmentLocation
	Offset          uint32
	Length          uint32 // zero means "fills the entire space"
	SpaceIDOrForkKind uint32
	ForkInstance    uint16
	Name            string
}

// cfrgHeaderSize is the size of a cfrg resource's fixed header: 10
// reserved bytes followed by the 16-bit entry count.
const cfrgHeaderSize = 12

// DecodeCfrg parses a cfrg resource: a reserved header, an entry count,
// then that many variable-length entries.
func DecodeCfrg(data []byte) ([]CodeFragmentEntry, error) {
	r := breader.New(data)
	if err := r.Skip(cfrgHeaderSize - 2); err != nil { // reserved1(4)+reserved2(4)+reserved3(2)
		return nil, err
	}
	count, err := r.U16()
	if err != nil {
		return nil, err
	}

	entries := make([]CodeFragmentEntry, 0, count)
	for i := uint16(0); i < count; i++ {
		e := CodeFragmentEntry{}
		if e.Architecture, err = r.U32(); err != nil {
			return nil, err
		}
		if e.UpdateLevel, err = r.U8(); err != nil {
			return nil, err
		}
		if e.CurrentVersion, err = r.U32(); err != nil {
			return nil, err
		}
		if e.OldDefVersion, err = r.U32(); err != nil {
			return nil, err
		}
		if e.AppStackSize, err = r.U32(); err != nil {
			return nil, err
		}
		if e.AppSubdirIDOrLibFlags, err = r.U16(); err != nil {
			return nil, err
		}
		usage, err := r.U8()
		if err != nil {
			return nil, err
		}
		e.Usage = CodeFragmentUsage(usage)
		location, err := r.U8()
		if err != nil {
			return nil, err
		}
		e.Location = CodeFragmentLocation(location)
		if e.Offset, err = r.U32(); err != nil {
			return nil, err
		}
		if e.Length, err = r.U32(); err != nil {
			return nil, err
		}
		if e.SpaceIDOrForkKind, err = r.U32(); err != nil {
			return nil, err
		}
		if e.ForkInstance, err = r.U16(); err != nil {
			return nil, err
		}
		nameLen, err := r.U16()
		if err != nil {
			return nil, err
		}
		nameBytes, err := r.Read(int64(nameLen))
		if err != nil {
			return nil, err
		}
		e.Name = string(nameBytes)

		entryEnd := r.Pos()
		if pad := entryEnd % 2; pad != 0 {
			if err := r.Skip(2 - pad); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
