package container

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// SniffMohawk reports whether data begins with the Mohawk container's
// two magic words (spec §4.2).
func SniffMohawk(data []byte) bool {
	return len(data) >= 8 && string(data[0:4]) == "MHWK" && string(data[4:8]) == "RSRC"
}

// TryParseMohawk parses a Mohawk resource container: MHWK/RSRC magics,
// a type table whose entries name a (type, reference-table-offset,
// name-table-offset) tuple, a per-type reference table of (id,
// file-index) pairs, and a file table translating file indices to
// (data-offset, data-size). Each resource body is preceded by a
// 12-byte data header and is size-4 bytes long starting 4 bytes into
// the data block (spec §4.2).
func TryParseMohawk(data []byte) (*rsrc.ResourceSet, error) {
	set := rsrc.NewResourceSet()
	r := breader.New(data)

	if !SniffMohawk(data) {
		return nil, &rsrc.BadSignatureError{Offset: 0}
	}
	if err := r.Skip(8); err != nil {
		return nil, formatErr("Mohawk", 0, "header truncated", err)
	}
	if _, err := r.U32(); err != nil { // fileSize, unused
		return nil, formatErr("Mohawk", 8, "header truncated", err)
	}
	resourceDirOffset, err := r.U32()
	if err != nil {
		return nil, formatErr("Mohawk", 12, "header truncated", err)
	}

	typeTableOffset := int64(resourceDirOffset)
	typeTableStart := typeTableOffset + 4 // skip nameTableOffset field
	numTypes, err := r.PeekU16At(typeTableStart)
	if err != nil {
		return nil, formatErr("Mohawk", typeTableStart, "type table truncated", err)
	}

	type typeEntry struct {
		resType   rsrc.Type
		resOffset uint16
	}
	entries := make([]typeEntry, numTypes)
	for i := 0; i < int(numTypes); i++ {
		entryOffset := typeTableStart + 2 + int64(i)*8
		rawType, err := r.PeekAt(entryOffset, 4)
		if err != nil {
			return nil, formatErr("Mohawk", entryOffset, "type table entry truncated", err)
		}
		resOffset, err := r.PeekU16At(entryOffset + 4)
		if err != nil {
			return nil, formatErr("Mohawk", entryOffset+4, "type table entry truncated", err)
		}
		entries[i] = typeEntry{
			resType:   rsrc.MakeType(rawType[0], rawType[1], rawType[2], rawType[3]),
			resOffset: resOffset,
		}
	}

	for _, te := range entries {
		refTableOffset := typeTableOffset + int64(te.resOffset)
		count, err := r.PeekU16At(refTableOffset)
		if err != nil {
			return nil, formatErr("Mohawk", refTableOffset, "reference table truncated", err)
		}
		for i := 0; i < int(count); i++ {
			recOffset := refTableOffset + 2 + int64(i)*4
			id, err := r.PeekU16At(recOffset)
			if err != nil {
				return nil, formatErr("Mohawk", recOffset, "reference entry truncated", err)
			}
			fileIndex, err := r.PeekU16At(recOffset + 2)
			if err != nil {
				return nil, formatErr("Mohawk", recOffset+2, "reference entry truncated", err)
			}

			fileTableOffset := typeTableOffset + int64(numTypes)*8 + 4
			fileEntryOffset := fileTableOffset + (int64(fileIndex)-1)*10
			dataOffset, err := r.PeekU32At(fileEntryOffset)
			if err != nil {
				return nil, formatErr("Mohawk", fileEntryOffset, "file table entry truncated", err)
			}

			size, err := r.PeekU32At(int64(dataOffset))
			if err != nil {
				return nil, formatErr("Mohawk", int64(dataOffset), "resource data header truncated", err)
			}
			body, err := r.PeekAt(int64(dataOffset)+4, int64(size)-4)
			if err != nil {
				return nil, formatErr("Mohawk", int64(dataOffset)+4, "resource data truncated", err)
			}

			set.Add(rsrc.Resource{
				Type: te.resType,
				ID:   rsrc.ID(int16(id)),
				Data: append([]byte(nil), body...),
			})
		}
	}

	return set, nil
}
