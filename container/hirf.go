package container

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// SniffHIRF reports whether data begins with the HIRF container's
// IREZ magic and version 1 (spec §4.2).
func SniffHIRF(data []byte) bool {
	return len(data) >= 6 && string(data[0:4]) == "IREZ" && be16(data, 4) == 1
}

// TryParseHIRF parses a HIRF (IREZ) container: a flat linked list where
// each entry declares the offset of the next entry, then
// {type, id, name_length, name, size, data[size]}. The final entry's
// next-pointer offset lies at or past EOF (spec §4.2).
func TryParseHIRF(data []byte) (*rsrc.ResourceSet, error) {
	if !SniffHIRF(data) {
		return nil, &rsrc.BadSignatureError{Offset: 0}
	}
	set := rsrc.NewResourceSet()
	r := breader.New(data)
	if err := r.Skip(6); err != nil {
		return nil, formatErr("HIRF", 0, "header truncated", err)
	}

	for {
		pos := r.Pos()
		if pos >= r.Len() {
			break
		}
		nextOffset, err := r.U32()
		if err != nil {
			return nil, formatErr("HIRF", pos, "entry next-pointer truncated", err)
		}
		if int64(nextOffset) >= r.Len() && int64(nextOffset) != 0 {
			// Terminal entry: still parse the body at this position, then stop.
		}

		rawType, err := r.Read(4)
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry type truncated", err)
		}
		id, err := r.U16()
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry id truncated", err)
		}
		nameLen, err := r.U8()
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry name length truncated", err)
		}
		name, err := r.Read(int64(nameLen))
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry name truncated", err)
		}
		size, err := r.U32()
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry size truncated", err)
		}
		body, err := r.Read(int64(size))
		if err != nil {
			return nil, formatErr("HIRF", r.Pos(), "entry data truncated", err)
		}

		set.Add(rsrc.Resource{
			Type: rsrc.MakeType(rawType[0], rawType[1], rawType[2], rawType[3]),
			ID:   rsrc.ID(int16(id)),
			Name: string(name),
			Data: append([]byte(nil), body...),
		})

		if int64(nextOffset) <= pos || int64(nextOffset) >= r.Len() {
			break
		}
		if err := r.Seek(int64(nextOffset)); err != nil {
			break
		}
	}

	return set, nil
}
