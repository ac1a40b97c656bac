// Package font decodes classic Mac OS bitmap font strikes (FONT/NFNT
// resources) into a shared glyph bitmap plus a per-character lookup
// table, and renders text against that strike (spec §4.6).
package font

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// Glyph is a single character's slice of the shared strike bitmap plus
// its pen placement (spec §3 "Font strike").
type Glyph struct {
	BitmapOffset int    // horizontal offset into the shared bitmap
	BitmapWidth  int    // horizontal extent of the glyph's bitmap slice
	PenOffset    int8   // signed kerning offset applied before drawing
	Advance      uint8  // pen advance after drawing this glyph
}

// Font is a decoded FONT/NFNT strike.
type Font struct {
	FirstChar  int
	LastChar   int
	MaxWidth   int
	MaxKerning int
	RectWidth  int
	RectHeight int
	Ascent     int
	Descent    int
	Leading    int

	// Bitmap is the concatenated glyph strike: RectHeight tall, wide
	// enough to hold every glyph side by side. Pixels holds its rows
	// packed at BitDepth bits per pixel, MSB-left, each row
	// ceil(BitmapWidth*BitDepth/8) bytes long.
	BitmapWidth, BitmapHeight int
	BitDepth                  int // 1, 2, 4, or 8
	Pixels                    []byte
	Palette                   quickdraw.Palette

	Glyphs       []Glyph // index 0 corresponds to FirstChar
	MissingGlyph Glyph
}

// glyphBit reads one pixel of the shared bitmap at (x, y), accounting
// for BitDepth.
func (f *Font) glyphBit(x, y int) int {
	if x < 0 || y < 0 || x >= f.BitmapWidth || y >= f.BitmapHeight {
		return 0
	}
	rowBytes := (f.BitmapWidth*f.BitDepth + 7) / 8
	perByte := 8 / f.BitDepth
	byteIdx := y*rowBytes + x/perByte
	shift := uint(8 - f.BitDepth*(x%perByte+1))
	mask := byte(1<<uint(f.BitDepth) - 1)
	return int(f.Pixels[byteIdx] >> shift & mask)
}

// GlyphForChar returns the Glyph for c, or MissingGlyph if c is outside
// [FirstChar, LastChar] or its offset/width-table entry is the 0xFFFF
// missing-glyph marker (spec §4.6 "Glyph extraction").
func (f *Font) GlyphForChar(c byte) Glyph {
	idx := int(c) - f.FirstChar
	if idx < 0 || idx >= len(f.Glyphs) {
		return f.MissingGlyph
	}
	return f.Glyphs[idx]
}

// Decode parses a FONT or NFNT resource body into a Font (spec §4.6).
// The two resource types share an identical wire layout.
func Decode(data []byte) (*Font, error) {
	r := breader.New(data)

	fontType, err := r.U16()
	if err != nil {
		return nil, err
	}
	firstChar, err := r.U16()
	if err != nil {
		return nil, err
	}
	lastChar, err := r.U16()
	if err != nil {
		return nil, err
	}
	maxWidth, err := r.U16()
	if err != nil {
		return nil, err
	}
	maxKerning, err := r.I16()
	if err != nil {
		return nil, err
	}
	negDescent, err := r.I16() // "nDescent": negative of the descent reach
	if err != nil {
		return nil, err
	}
	fRectWidth, err := r.U16()
	if err != nil {
		return nil, err
	}
	fRectHeight, err := r.U16()
	if err != nil {
		return nil, err
	}
	owTableOffsetWords, err := r.U16()
	if err != nil {
		return nil, err
	}
	ascent, err := r.I16()
	if err != nil {
		return nil, err
	}
	descent, err := r.I16()
	if err != nil {
		return nil, err
	}
	leading, err := r.I16()
	if err != nil {
		return nil, err
	}
	rowWords, err := r.U16()
	if err != nil {
		return nil, err
	}

	isColor := fontType&0x0080 != 0
	bitDepth := 1
	if isColor {
		switch fontType & 0x000C >> 2 {
		case 1:
			bitDepth = 2
		case 2:
			bitDepth = 4
		case 3:
			bitDepth = 8
		default:
			bitDepth = 1
		}
	}

	bitmapWidth := int(rowWords) * 16
	bitmapRowBytes := (bitmapWidth*bitDepth + 7) / 8
	bitmapBytes, err := r.Read(int64(bitmapRowBytes) * int64(fRectHeight))
	if err != nil {
		return nil, err
	}

	numEntries := int(lastChar) - int(firstChar) + 3
	locTable := make([]uint16, numEntries)
	for i := range locTable {
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		locTable[i] = v
	}

	type ow struct {
		offset  int8
		advance uint8
		missing bool
	}
	owTable := make([]ow, numEntries)
	for i := range owTable {
		raw, err := r.U16()
		if err != nil {
			return nil, err
		}
		if raw == 0xFFFF {
			owTable[i] = ow{offset: 0, advance: 0, missing: true}
			continue
		}
		owTable[i] = ow{offset: int8(raw >> 8), advance: uint8(raw)}
	}
	_ = owTableOffsetWords // table position is implied by the fixed header layout here, not re-seeked to

	f := &Font{
		FirstChar:    int(firstChar),
		LastChar:     int(lastChar),
		MaxWidth:     int(maxWidth),
		MaxKerning:   int(maxKerning),
		RectWidth:    int(fRectWidth),
		RectHeight:   int(fRectHeight),
		Ascent:       int(ascent),
		Descent:      int(descent),
		Leading:      int(leading),
		BitmapWidth:  bitmapWidth,
		BitmapHeight: int(fRectHeight),
		BitDepth:     bitDepth,
		Pixels:       bitmapBytes,
	}
	_ = negDescent

	glyphCount := numEntries - 2 // last two loc-table entries bound the missing-glyph
	f.Glyphs = make([]Glyph, glyphCount)
	for i := 0; i < glyphCount; i++ {
		bo := int(locTable[i])
		bw := int(locTable[i+1]) - bo
		if bw < 0 {
			return nil, &rsrc.MalformedResourceError{Kind: "FONT", Context: "negative glyph bitmap width"}
		}
		f.Glyphs[i] = Glyph{
			BitmapOffset: bo,
			BitmapWidth:  bw,
			PenOffset:    owTable[i].offset,
			Advance:      owTable[i].advance,
		}
	}
	missingIdx := glyphCount
	mbo := int(locTable[missingIdx])
	mbw := int(locTable[missingIdx+1]) - mbo
	f.MissingGlyph = Glyph{
		BitmapOffset: mbo,
		BitmapWidth:  mbw,
		PenOffset:    owTable[missingIdx].offset,
		Advance:      owTable[missingIdx].advance,
	}
	for i := 0; i < glyphCount; i++ {
		if owTable[i].missing {
			f.Glyphs[i] = f.MissingGlyph
		}
	}

	return f, nil
}
