package code

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

const (
	peffTag1 = 0x4A6F7921 // "Joy!"
	peffTag2 = 0x70656666 // "peff"
	peffArch = 0x70777063 // "pwpc"
)

// PEFFSectionKind is the PEFF section_kind enum (spec §4.8).
type PEFFSectionKind uint8

const (
	PEFFSectionCode PEFFSectionKind = iota
	PEFFSectionUnpackedData
	PEFFSectionPackedData
	PEFFSectionConstant
	PEFFSectionLoader
	PEFFSectionDebug
	PEFFSectionExecutableData
	PEFFSectionException
	PEFFSectionTraceback
)

// PEFFSection is one parsed PEFF section header plus its raw content,
// sliced directly from the container (spec §4.8).
type PEFFSection struct {
	NameOffset      int32
	DefaultAddress  uint32
	TotalSize       uint32
	UnpackedSize    uint32
	ContainerLength uint32
	SectionKind     PEFFSectionKind
	ShareKind       uint8
	Alignment       uint8
	Data            []byte
}

// PEFF is a decoded PowerPC preferred-executable-format container
// (spec §4.8): the fixed header plus every section's header and raw
// bytes. Interpreting a code section's instructions is left to a
// PowerPC CPU-emulator collaborator outside this module's scope.
type PEFF struct {
	FormatVersion      uint32
	DateStamp          uint32
	OldDefVersion      uint32
	OldImpVersion      uint32
	CurrentVersion     uint32
	InstantiatedCount  uint32
	Sections           []PEFFSection
}

const peffHeaderSize = 40
const peffSectionHeaderSize = 28

// DecodePEFF parses a PEFF container's fixed header and section table.
func DecodePEFF(data []byte) (*PEFF, error) {
	r := breader.New(data)

	tag1, err := r.U32()
	if err != nil {
		return nil, err
	}
	if tag1 != peffTag1 {
		return nil, &rsrc.BadSignatureError{Expected: peffTag1, Found: tag1, Offset: 0}
	}
	tag2, err := r.U32()
	if err != nil {
		return nil, err
	}
	if tag2 != peffTag2 {
		return nil, &rsrc.BadSignatureError{Expected: peffTag2, Found: tag2, Offset: 4}
	}
	arch, err := r.U32()
	if err != nil {
		return nil, err
	}
	if arch != peffArch {
		return nil, &rsrc.UnsupportedVersionError{Format: "PEFF architecture", Version: int(arch)}
	}

	p := &PEFF{}
	if p.FormatVersion, err = r.U32(); err != nil {
		return nil, err
	}
	if p.DateStamp, err = r.U32(); err != nil {
		return nil, err
	}
	if p.OldDefVersion, err = r.U32(); err != nil {
		return nil, err
	}
	if p.OldImpVersion, err = r.U32(); err != nil {
		return nil, err
	}
	if p.CurrentVersion, err = r.U32(); err != nil {
		return nil, err
	}
	sectionCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	instantiatedCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	p.InstantiatedCount = uint32(instantiatedCount)
	if _, err = r.U32(); err != nil { // reserved
		return nil, err
	}
	return p, decodePEFFSections(r, p, int(sectionCount))
}

// decodePEFFSections reads each 28-byte section header, in header
// order, then slices that section's bytes out of the container once
// every header (and therefore the section table's total length) is
// known.
func decodePEFFSections(r *breader.Reader, p *PEFF, sectionCount int) error {
	type rawHeader struct {
		sec    PEFFSection
		offset uint32
		length uint32
	}
	raws := make([]rawHeader, sectionCount)
	for i := 0; i < sectionCount; i++ {
		var rh rawHeader
		var err error
		if rh.sec.NameOffset, err = r.I32(); err != nil {
			return err
		}
		if rh.sec.DefaultAddress, err = r.U32(); err != nil {
			return err
		}
		if rh.sec.TotalSize, err = r.U32(); err != nil {
			return err
		}
		if rh.sec.UnpackedSize, err = r.U32(); err != nil {
			return err
		}
		if rh.sec.ContainerLength, err = r.U32(); err != nil {
			return err
		}
		if rh.offset, err = r.U32(); err != nil {
			return err
		}
		kind, err := r.U8()
		if err != nil {
			return err
		}
		rh.sec.SectionKind = PEFFSectionKind(kind)
		if rh.sec.ShareKind, err = r.U8(); err != nil {
			return err
		}
		if rh.sec.Alignment, err = r.U8(); err != nil {
			return err
		}
		if _, err = r.U8(); err != nil { // reserved
			return err
		}
		raws[i] = rh
	}

	for _, rh := range raws {
		section := rh.sec
		data, err := readAt(r, int64(rh.offset), int64(rh.sec.ContainerLength))
		if err != nil {
			return err
		}
		section.Data = data
		p.Sections = append(p.Sections, section)
	}
	return nil
}

func readAt(r *breader.Reader, offset, length int64) ([]byte, error) {
	sub, err := r.Sub(offset, length)
	if err != nil {
		return nil, err
	}
	return sub.Read(length)
}
