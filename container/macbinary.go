package container

import (
	"rsrcdasm.dev/go/rsrc"
)

// macBinaryCRC16 computes the CRC-16-CCITT (polynomial 0x1021, initial
// 0x0000, not reflected, no XOR-out) used by the MacBinary header
// checksum (spec §4.2, grounded on the reference implementation's
// bit-at-a-time macbinary_crc16).
func macBinaryCRC16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		ch := uint16(b) << 8
		for i := 0; i < 8; i++ {
			if (ch^crc)&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
			ch <<= 1
		}
	}
	return crc
}

const macBinary3Signature = 0x6D42494E // 'mBIN'

// SniffMacBinary reports whether data looks like a MacBinary header:
// the cheap, non-authoritative zero-flag check. TryParseMacBinary does
// the full version-acceptance walk.
func SniffMacBinary(data []byte) bool {
	return len(data) >= 0x80 && data[0x52] == 0
}

// TryParseMacBinary parses a MacBinary v1/v2/v3 container (spec §4.2):
// a fixed 0x80-byte header, then a data fork and a resource fork each
// aligned to the next 0x80-byte boundary. Acceptance follows the
// reference implementation's version cascade: v3 if the 'mBIN'
// signature is present and the header CRC matches; else v2 if the CRC
// matches and the legacy-version byte is zero; else v1 if a strict set
// of "must be zero" fields holds. The resource fork is parsed
// recursively via TryParseResourceFork.
func TryParseMacBinary(data []byte) (*rsrc.ResourceSet, error) {
	if len(data) < 0x80 {
		return nil, formatErr("MacBinary", 0, "header shorter than 0x80 bytes", nil)
	}
	header := data[:0x80]

	if header[0x52] != 0 {
		return nil, &rsrc.BadSignatureError{Offset: 0x52}
	}
	filenameLength := header[1]
	if filenameLength > 0x3F {
		return nil, formatErr("MacBinary", 1, "file name too long", nil)
	}
	dataForkBytes := be32(header, 0x53)
	resourceForkBytes := be32(header, 0x57)
	if dataForkBytes >= 0x00800000 || resourceForkBytes >= 0x00800000 {
		return nil, formatErr("MacBinary", 0x53, "fork length out of range", nil)
	}

	legacyVersion := header[0]
	checksum := be16(header, 0x7C)
	computedChecksum := macBinaryCRC16(header[:0x7C])
	crcMatches := checksum == computedChecksum
	isV3 := crcMatches && be32(header, 0x66) == macBinary3Signature
	isV2OrLater := isV3 || (legacyVersion == 0 && crcMatches)

	if !isV2OrLater {
		if err := assertV1UnusedFieldsValid(header); err != nil {
			return nil, err
		}
	}

	extraHeaderBytes := 0
	if isV2OrLater {
		extraHeaderBytes = int(be16(header, 0x78))
	}

	dataForkOffset := align80(0x80 + extraHeaderBytes)
	resourceForkOffset := align80(dataForkOffset + int(dataForkBytes))

	if resourceForkOffset+int(resourceForkBytes) > len(data) {
		return nil, formatErr("MacBinary", int64(resourceForkOffset), "resource fork extends past end of input", nil)
	}
	resourceForkData := data[resourceForkOffset : resourceForkOffset+int(resourceForkBytes)]
	return TryParseResourceFork(resourceForkData)
}

func assertV1UnusedFieldsValid(header []byte) error {
	if header[0x65] != 0 {
		return formatErr("MacBinary", 0x65, "v1: low Finder flags nonzero", nil)
	}
	if be32(header, 0x66) != 0 {
		return formatErr("MacBinary", 0x66, "v1: v3 signature nonzero", nil)
	}
	if header[0x6A] != 0 {
		return formatErr("MacBinary", 0x6A, "v1: filename script nonzero", nil)
	}
	if header[0x6B] != 0 {
		return formatErr("MacBinary", 0x6B, "v1: extended Finder flags nonzero", nil)
	}
	for _, b := range header[0x6C:0x74] {
		if b != 0 {
			return formatErr("MacBinary", 0x6C, "v1: unused field nonzero", nil)
		}
	}
	if be32(header, 0x74) != 0 {
		return formatErr("MacBinary", 0x74, "v1: total files length nonzero", nil)
	}
	if be16(header, 0x78) != 0 {
		return formatErr("MacBinary", 0x78, "v1: secondary header length nonzero", nil)
	}
	if header[0x7A] != 0 {
		return formatErr("MacBinary", 0x7A, "v1: upload program version nonzero", nil)
	}
	if header[0x7B] != 0 {
		return formatErr("MacBinary", 0x7B, "v1: minimum MacBinary version nonzero", nil)
	}
	if be16(header, 0x7C) != 0 {
		return formatErr("MacBinary", 0x7C, "v1: header checksum nonzero", nil)
	}
	return nil
}

func align80(n int) int {
	return (n + 0x7F) &^ 0x7F
}

func be16(b []byte, off int) uint16 {
	return uint16(b[off])<<8 | uint16(b[off+1])
}

func be32(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}
