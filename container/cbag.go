package container

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// TryParseCBag parses a CBag container: a big-endian count followed by
// that many fixed-layout entries of
// {type, id, reserved, offset, size, name_length_byte, name[63]}; a
// resource's body lies at offset, size bytes long (spec §4.2).
func TryParseCBag(data []byte) (*rsrc.ResourceSet, error) {
	set := rsrc.NewResourceSet()
	r := breader.New(data)

	count, err := r.U32()
	if err != nil {
		return nil, formatErr("CBag", 0, "count truncated", err)
	}

	const entrySize = 4 + 2 + 2 + 4 + 4 + 1 + 63
	for i := 0; i < int(count); i++ {
		entryOffset := int64(4) + int64(i)*entrySize
		if err := r.Seek(entryOffset); err != nil {
			return nil, formatErr("CBag", entryOffset, "entry truncated", err)
		}
		rawType, err := r.Read(4)
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry type truncated", err)
		}
		id, err := r.U16()
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry id truncated", err)
		}
		if _, err := r.U16(); err != nil { // reserved
			return nil, formatErr("CBag", r.Pos(), "entry reserved field truncated", err)
		}
		offset, err := r.U32()
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry offset truncated", err)
		}
		size, err := r.U32()
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry size truncated", err)
		}
		nameLen, err := r.U8()
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry name length truncated", err)
		}
		nameBytes, err := r.Read(63)
		if err != nil {
			return nil, formatErr("CBag", r.Pos(), "entry name field truncated", err)
		}
		name := ""
		if int(nameLen) <= len(nameBytes) {
			name = string(nameBytes[:nameLen])
		}

		body, err := r.PeekAt(int64(offset), int64(size))
		if err != nil {
			return nil, formatErr("CBag", int64(offset), "resource data truncated", err)
		}

		set.Add(rsrc.Resource{
			Type: rsrc.MakeType(rawType[0], rawType[1], rawType[2], rawType[3]),
			ID:   rsrc.ID(int16(id)),
			Name: name,
			Data: append([]byte(nil), body...),
		})
	}

	return set, nil
}
