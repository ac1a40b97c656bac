package container

import (
	"encoding/binary"

	"rsrcdasm.dev/go/rsrc"
)

// TryParseDCData parses a DC-Data container: a little-endian header of
// {reserved uint32, count uint32, reserved[2] uint32} followed by
// count entries of {offset, size, type, id} (spec §4.2). DC-Data has no
// reliable magic, so it is sniffed by the caller via explicit format
// selection rather than a Sniff function (spec §9 Open Question on
// AppleSingle/Double-style disambiguation does not apply here; there is
// simply no magic to test).
func TryParseDCData(data []byte) (*rsrc.ResourceSet, error) {
	if len(data) < 16 {
		return nil, formatErr("DC-Data", 0, "header shorter than 16 bytes", nil)
	}
	count := binary.LittleEndian.Uint32(data[4:8])
	set := rsrc.NewResourceSet()

	const headerSize = 16
	const entrySize = 16
	for i := 0; i < int(count); i++ {
		entryOffset := headerSize + i*entrySize
		if entryOffset+entrySize > len(data) {
			return nil, formatErr("DC-Data", int64(entryOffset), "entry truncated", nil)
		}
		offset := binary.LittleEndian.Uint32(data[entryOffset : entryOffset+4])
		size := binary.LittleEndian.Uint32(data[entryOffset+4 : entryOffset+8])
		rawType := binary.LittleEndian.Uint32(data[entryOffset+8 : entryOffset+12])
		id := binary.LittleEndian.Uint32(data[entryOffset+12 : entryOffset+16])

		if int(offset)+int(size) > len(data) {
			return nil, formatErr("DC-Data", int64(offset), "resource data extends past end of input", nil)
		}
		body := data[offset : offset+size]

		set.Add(rsrc.Resource{
			Type: rsrc.Type(rawType),
			ID:   rsrc.ID(int16(id)),
			Data: append([]byte(nil), body...),
		})
	}

	return set, nil
}
