package image

import (
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// Pattern holds a decoded pattern resource: the full-color rendition
// (when available) and its monochrome fallback (spec §4.5).
type Pattern struct {
	Color      *Image // nil for old-style (monochrome-only) patterns
	Monochrome *Image // always 8x8, MONO
}

// DecodePpat decodes a ppat resource. The header holds byte offsets
// (relative to the start of the resource) to a PixMap header and its
// pixel data, and an 8-byte monochrome fallback pattern inline in the
// header itself.
func DecodePpat(data []byte) (*Pattern, error) {
	r := breader.New(data)

	patType, err := r.I16()
	if err != nil {
		return nil, err
	}
	patMapOffset, err := r.U32()
	if err != nil {
		return nil, err
	}
	patDataOffset, err := r.U32()
	if err != nil {
		return nil, err
	}
	if _, err := r.U32(); err != nil { // patXData offset, unused
		return nil, err
	}
	if _, err := r.U16(); err != nil { // patXValid
		return nil, err
	}
	if _, err := r.U32(); err != nil { // patXMap offset, unused
		return nil, err
	}
	mono1Data, err := r.Read(8)
	if err != nil {
		return nil, err
	}
	mono := rowsToMono(splitRows(mono1Data, 1, 8), 8, 8)

	result := &Pattern{Monochrome: mono}
	if patType == 0 {
		// Old-style pattern: monochrome only.
		return result, nil
	}

	pmReader, err := r.Sub(int64(patMapOffset), r.Len()-int64(patMapOffset))
	if err != nil {
		return nil, err
	}
	pm, err := quickdraw.ReadPixMap(pmReader)
	if err != nil {
		return nil, err
	}

	var pal quickdraw.Palette
	if pm.PmTable != 0 {
		clutReader, err := r.Sub(int64(pm.PmTable), r.Len()-int64(pm.PmTable))
		if err != nil {
			return nil, err
		}
		pal, err = quickdraw.ReadInlineClut(clutReader)
		if err != nil {
			return nil, err
		}
	}

	dataReader, err := r.Sub(int64(patDataOffset), r.Len()-int64(patDataOffset))
	if err != nil {
		return nil, err
	}
	width, height := pm.Bounds.Width(), pm.Bounds.Height()
	rows, err := quickdraw.ReadPixelRows(dataReader, pm.RowBytesValue(), height)
	if err != nil {
		return nil, err
	}
	result.Color = rowsToIndexed(rows, width, height, int(pm.PixelSize), pal)
	return result, nil
}

// splitRows splits a flat byte slice into rowBytes-wide rows.
func splitRows(data []byte, rowBytes, rowCount int) [][]byte {
	rows := make([][]byte, rowCount)
	for y := 0; y < rowCount; y++ {
		rows[y] = data[y*rowBytes : (y+1)*rowBytes]
	}
	return rows
}

// DecodePAT decodes a single monochrome 8x8 pattern (PAT resource).
func DecodePAT(data []byte) (*Image, error) {
	if len(data) < 8 {
		return nil, errShortPattern
	}
	return rowsToMono(splitRows(data[:8], 1, 8), 8, 8), nil
}

// DecodePATN decodes an array of monochrome 8x8 patterns (PAT#
// resource): a 16-bit count followed by that many 8-byte patterns.
func DecodePATN(data []byte) ([]*Image, error) {
	r := breader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	patterns := make([]*Image, count)
	for i := 0; i < int(count); i++ {
		raw, err := r.Read(8)
		if err != nil {
			return nil, err
		}
		patterns[i] = rowsToMono(splitRows(raw, 1, 8), 8, 8)
	}
	return patterns, nil
}
