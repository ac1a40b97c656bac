package image

import (
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// ColorCursor holds a decoded crsr resource: the full-color image, its
// monochrome fallback bitmap and mask, and the hotspot (spec §4.5).
type ColorCursor struct {
	Image      *Image
	Monochrome *Image
	Mask       *Image
	HotspotX   int
	HotspotY   int
}

// DecodeCrsr decodes a crsr (color cursor) resource.
func DecodeCrsr(data []byte) (*ColorCursor, error) {
	r := breader.New(data)

	if _, err := r.I16(); err != nil { // crsrType
		return nil, err
	}
	crsrMapOffset, err := r.U32()
	if err != nil {
		return nil, err
	}
	crsrDataOffset, err := r.U32()
	if err != nil {
		return nil, err
	}
	if _, err := r.U32(); err != nil { // crsrXData offset
		return nil, err
	}
	if _, err := r.U16(); err != nil { // crsrXValid
		return nil, err
	}
	if _, err := r.U32(); err != nil { // crsrXHandle
		return nil, err
	}
	mono1, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	monoMask, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	hx, err := r.I16()
	if err != nil {
		return nil, err
	}
	hy, err := r.I16()
	if err != nil {
		return nil, err
	}

	mono := rowsToMono(splitRows(mono1, 2, 16), 16, 16)
	mask := rowsToMono(splitRows(monoMask, 2, 16), 16, 16)

	pmReader, err := r.Sub(int64(crsrMapOffset), r.Len()-int64(crsrMapOffset))
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

	dataReader, err := r.Sub(int64(crsrDataOffset), r.Len()-int64(crsrDataOffset))
	if err != nil {
		return nil, err
	}
	width, height := pm.Bounds.Width(), pm.Bounds.Height()
	rows, err := quickdraw.ReadPixelRows(dataReader, pm.RowBytesValue(), height)
	if err != nil {
		return nil, err
	}
	indexed := rowsToIndexed(rows, width, height, int(pm.PixelSize), pal)
	composited := applyMask(indexed, mask)

	return &ColorCursor{
		Image:      composited,
		Monochrome: mono,
		Mask:       mask,
		HotspotX:   int(hx),
		HotspotY:   int(hy),
	}, nil
}
