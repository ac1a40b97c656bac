package quickdraw

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// Rect is a QuickDraw rectangle: top, left, bottom, right, in that wire
// order.
type Rect struct {
	Top, Left, Bottom, Right int16
}

// Width and Height return the rectangle's pixel dimensions.
func (r Rect) Width() int  { return int(r.Right) - int(r.Left) }
func (r Rect) Height() int { return int(r.Bottom) - int(r.Top) }

// FixedPoint is a QuickDraw 16.16 fixed-point number.
type FixedPoint int32

// Float64 returns the fixed-point value as a float64.
func (f FixedPoint) Float64() float64 {
	return float64(f) / 65536
}

// PixMap is the fixed-layout header that precedes every color bitmap
// payload (BitsRect/PackBitsRect/DirectBitsRect opcodes, cicn, ppat,
// color cursors — spec §4.5).
type PixMap struct {
	RowBytes    uint16 // high bit set => this is a PixMap, not a plain BitMap
	Bounds      Rect
	PmVersion   int16
	PackType    int16
	PackSize    int32
	HRes, VRes  FixedPoint
	PixelType   int16
	PixelSize   int16
	CmpCount    int16
	CmpSize     int16
	PlaneBytes  int32
	PmTable     uint32
	PmReserved  uint32
}

// IsPixMap reports whether RowBytes' high bit marks this as a color
// PixMap rather than a monochrome BitMap.
func (p PixMap) IsPixMap() bool {
	return p.RowBytes&0x8000 != 0
}

// RowBytesValue returns RowBytes with the PixMap marker bit cleared.
func (p PixMap) RowBytesValue() int {
	return int(p.RowBytes &^ 0x8000)
}

// ReadBitMap reads the 10-byte monochrome BitMap header (rowBytes,
// bounds) with no trailing PixMap fields.
func ReadBitMap(r *breader.Reader) (rowBytes uint16, bounds Rect, err error) {
	rowBytes, err = r.U16()
	if err != nil {
		return 0, Rect{}, err
	}
	bounds, err = readRect(r)
	return rowBytes, bounds, err
}

// ReadPixMap reads the full PixMap header (spec §4.5): rowBytes and
// bounds, then pmVersion, packType, packSize, resolution, pixelType,
// pixelSize, cmpCount, cmpSize, planeBytes, pmTable, and pmReserved.
func ReadPixMap(r *breader.Reader) (PixMap, error) {
	var p PixMap
	var err error
	p.RowBytes, err = r.U16()
	if err != nil {
		return p, err
	}
	p.Bounds, err = readRect(r)
	if err != nil {
		return p, err
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.PmVersion = v
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.PackType = v
	}
	if v, err := r.I32(); err != nil {
		return p, err
	} else {
		p.PackSize = v
	}
	if v, err := r.I32(); err != nil {
		return p, err
	} else {
		p.HRes = FixedPoint(v)
	}
	if v, err := r.I32(); err != nil {
		return p, err
	} else {
		p.VRes = FixedPoint(v)
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.PixelType = v
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.PixelSize = v
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.CmpCount = v
	}
	if v, err := r.I16(); err != nil {
		return p, err
	} else {
		p.CmpSize = v
	}
	if v, err := r.I32(); err != nil {
		return p, err
	} else {
		p.PlaneBytes = v
	}
	if v, err := r.U32(); err != nil {
		return p, err
	} else {
		p.PmTable = v
	}
	if v, err := r.U32(); err != nil {
		return p, err
	} else {
		p.PmReserved = v
	}
	return p, nil
}

func readRect(r *breader.Reader) (Rect, error) {
	top, err := r.I16()
	if err != nil {
		return Rect{}, err
	}
	left, err := r.I16()
	if err != nil {
		return Rect{}, err
	}
	bottom, err := r.I16()
	if err != nil {
		return Rect{}, err
	}
	right, err := r.I16()
	if err != nil {
		return Rect{}, err
	}
	return Rect{Top: top, Left: left, Bottom: bottom, Right: right}, nil
}

// ReadRect is the exported form of readRect, used by decoders outside
// this package that need to parse a bare QuickDraw rectangle.
func ReadRect(r *breader.Reader) (Rect, error) {
	return readRect(r)
}

// ReadInlineClut reads an inline color table as embedded in a PixMap
// payload: {ctSeed, ctFlags, ctSize} followed by ctSize+1 entries.
func ReadInlineClut(r *breader.Reader) (Palette, error) {
	if _, err := r.U32(); err != nil { // ctSeed
		return nil, err
	}
	if _, err := r.U16(); err != nil { // ctFlags
		return nil, err
	}
	size, err := r.U16()
	if err != nil {
		return nil, err
	}
	count := int(size) + 1
	pal := make(Palette, count)
	for i := 0; i < count; i++ {
		slot, err := r.U16()
		if err != nil {
			return nil, err
		}
		rr, err := r.U16()
		if err != nil {
			return nil, err
		}
		gg, err := r.U16()
		if err != nil {
			return nil, err
		}
		bb, err := r.U16()
		if err != nil {
			return nil, err
		}
		pal[i] = ColorTableEntry{Slot: slot, Color: Opaque(rr, gg, bb)}
	}
	return pal, nil
}
