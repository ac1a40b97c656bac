// Package container implements ContainerParser variants: byte-stream
// parsers that enumerate typed, numbered resources into a ResourceSet
// (spec §4.2). Each parser exposes TryParse and, where the format has a
// reliable magic, Sniff.
package container

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// TryParseResourceFork parses a classic Mac OS resource fork (spec
// §4.2's "ResourceFork" variant, grounded on the reference parser's
// pointer-arithmetic layout): a 16-byte header naming the data and map
// offsets/sizes, a map header naming the type-list and name-list
// offsets (both relative to the map's own start), a type list whose
// item count is encoded as count-minus-one (so the wire value 0xFFFF
// legitimately means "no types"), and for each type a reference list of
// fixed 12-byte entries whose high attribute byte and 24-bit data
// offset are packed into one 32-bit field.
func TryParseResourceFork(data []byte) (*rsrc.ResourceSet, error) {
	set := rsrc.NewResourceSet()
	if len(data) == 0 {
		return set, nil
	}

	r := breader.New(data)
	dataOffset, err := r.PeekU32At(0)
	if err != nil {
		return nil, formatErr("resource fork", 0, "header truncated", err)
	}
	mapOffset, err := r.PeekU32At(4)
	if err != nil {
		return nil, formatErr("resource fork", 4, "header truncated", err)
	}

	const mapHeaderSize = 16 + 4 + 2 + 2 + 2 + 2 // reserved, reserved handle, ref num, attrs, typeListOff, nameListOff
	typeListOffsetField, err := r.PeekU16At(int64(mapOffset) + 24)
	if err != nil {
		return nil, formatErr("resource fork", int64(mapOffset)+24, "map header truncated", err)
	}
	_ = mapHeaderSize

	// Type list offset is relative to the start of the map header, per
	// the reference parser's "map_header.resource_type_list_offset +
	// header.resource_map_offset" arithmetic.
	typeListOffset := int64(mapOffset) + int64(typeListOffsetField)

	numTypesMinusOne, err := r.PeekU16At(typeListOffset)
	if err != nil {
		return nil, formatErr("resource fork", typeListOffset, "type list count truncated", err)
	}
	numTypes := int(numTypesMinusOne + 1) // uint16 overflow at 0xFFFF -> 0 is intentional

	type typeEntry struct {
		resType          rsrc.Type
		numItemsMinusOne uint16
		refListOffset    uint16
	}
	entries := make([]typeEntry, 0, numTypes)
	for i := 0; i < numTypes; i++ {
		entryOffset := typeListOffset + 2 + int64(i)*8
		rawType, err := r.PeekU32At(entryOffset)
		if err != nil {
			return nil, formatErr("resource fork", entryOffset, "type list entry truncated", err)
		}
		numItems, err := r.PeekU16At(entryOffset + 4)
		if err != nil {
			return nil, formatErr("resource fork", entryOffset+4, "type list entry truncated", err)
		}
		refOff, err := r.PeekU16At(entryOffset + 6)
		if err != nil {
			return nil, formatErr("resource fork", entryOffset+6, "type list entry truncated", err)
		}
		entries = append(entries, typeEntry{
			resType:          rsrc.Type(rawType),
			numItemsMinusOne: numItems,
			refListOffset:    refOff,
		})
	}

	for _, te := range entries {
		baseOffset := typeListOffset + int64(te.refListOffset)
		count := int(te.numItemsMinusOne) + 1
		for i := 0; i < count; i++ {
			entryOffset := baseOffset + int64(i)*12
			rawID, err := r.PeekU16At(entryOffset)
			if err != nil {
				return nil, formatErr("resource fork", entryOffset, "reference list entry truncated", err)
			}
			nameOffset, err := r.PeekU16At(entryOffset + 2)
			if err != nil {
				return nil, formatErr("resource fork", entryOffset+2, "reference list entry truncated", err)
			}
			attrsAndOffset, err := r.PeekU32At(entryOffset + 4)
			if err != nil {
				return nil, formatErr("resource fork", entryOffset+4, "reference list entry truncated", err)
			}

			var name string
			if nameOffset != 0xFFFF {
				nameListOffset, err := r.PeekU16At(int64(mapOffset) + 26)
				if err != nil {
					return nil, formatErr("resource fork", int64(mapOffset)+26, "map header truncated", err)
				}
				absNameOffset := int64(mapOffset) + int64(nameListOffset) + int64(nameOffset)
				name, err = r.PStringAt(absNameOffset)
				if err != nil {
					return nil, formatErr("resource fork", absNameOffset, "name truncated", err)
				}
			}

			resDataOffset := int64(dataOffset) + int64(attrsAndOffset&0x00FFFFFF)
			resDataSize, err := r.PeekU32At(resDataOffset)
			if err != nil {
				return nil, formatErr("resource fork", resDataOffset, "resource data length truncated", err)
			}
			body, err := r.PeekAt(resDataOffset+4, int64(resDataSize))
			if err != nil {
				return nil, formatErr("resource fork", resDataOffset+4, "resource data truncated", err)
			}
			attributes := rsrc.Flags(attrsAndOffset >> 24)

			set.Add(rsrc.Resource{
				Type:  te.resType,
				ID:    rsrc.ID(int16(rawID)),
				Flags: attributes,
				Name:  name,
				Data:  append([]byte(nil), body...),
			})
		}
	}

	return set, nil
}

func formatErr(kind string, offset int64, context string, err error) error {
	return &rsrc.FormatError{Kind: kind, Offset: offset, Context: context, Err: err}
}
