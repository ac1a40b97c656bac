package container

import (
	"rsrcdasm.dev/go/rsrc"
)

const (
	appleSingleMagic = 0x00051600
	appleDoubleMagic = 0x00051607

	entryIDResourceFork = 2
)

// SniffAppleSingle and SniffAppleDouble report whether data begins with
// the corresponding magic and a recognized version (spec §4.2).
func SniffAppleSingle(data []byte) bool { return sniffAppleFormat(data, appleSingleMagic) }
func SniffAppleDouble(data []byte) bool { return sniffAppleFormat(data, appleDoubleMagic) }

func sniffAppleFormat(data []byte, magic uint32) bool {
	if len(data) < 26 {
		return false
	}
	if be32(data, 0) != magic {
		return false
	}
	version := be32(data, 4)
	return version == 0x00010000 || version == 0x00020000
}

// TryParseAppleSingle and TryParseAppleDouble parse AppleSingle/
// AppleDouble containers: a 26-byte header (magic, version, 16
// reserved bytes, entry count), followed by that many {id, offset,
// length} entry descriptors. The resource-fork entry (id 2) is parsed
// recursively as a ResourceFork; other entry types (data fork, Finder
// info, filename, comment, dates, icons, ProDOS/MS-DOS/AFP metadata)
// are not resources and carry no ResourceSet representation here
// (spec §4.2, §1 Non-goals — this module covers resource decoding, not
// filesystem-metadata reconstruction).
func TryParseAppleSingle(data []byte) (*rsrc.ResourceSet, error) {
	return parseAppleContainer(data, appleSingleMagic)
}

func TryParseAppleDouble(data []byte) (*rsrc.ResourceSet, error) {
	return parseAppleContainer(data, appleDoubleMagic)
}

func parseAppleContainer(data []byte, wantMagic uint32) (*rsrc.ResourceSet, error) {
	if len(data) < 26 {
		return nil, formatErr("AppleSingle/Double", 0, "header shorter than 26 bytes", nil)
	}
	if got := be32(data, 0); got != wantMagic {
		return nil, &rsrc.BadSignatureError{Expected: wantMagic, Found: got, Offset: 0}
	}
	version := be32(data, 4)
	if version != 0x00010000 && version != 0x00020000 {
		return nil, &rsrc.UnsupportedVersionError{Format: "AppleSingle/Double", Version: int(version)}
	}
	numEntries := be16(data, 24)

	for i := 0; i < int(numEntries); i++ {
		entryOffset := 26 + i*12
		if entryOffset+12 > len(data) {
			return nil, formatErr("AppleSingle/Double", int64(entryOffset), "entry descriptor truncated", nil)
		}
		entryID := be32(data, entryOffset)
		offset := be32(data, entryOffset+4)
		length := be32(data, entryOffset+8)

		if entryID != entryIDResourceFork {
			continue
		}
		if int(offset)+int(length) > len(data) {
			return nil, formatErr("AppleSingle/Double", int64(offset), "resource fork entry extends past end of input", nil)
		}
		return TryParseResourceFork(data[offset : offset+length])
	}

	return rsrc.NewResourceSet(), nil
}
