package image

import (
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// ColorIcon holds the result of decoding a cicn resource: the full-color
// image and its black-and-white fallback bitmap (spec §4.5).
type ColorIcon struct {
	Image      *Image
	Monochrome *Image
}

// DecodeCicn decodes a cicn resource: a PixMap header, a mask BitMap
// header, a black-and-white fallback BitMap header, a 4-byte icon
// handle placeholder, an inline color table, then the mask data, the
// black-and-white icon data, and finally the (possibly PackBits
// compressed) color pixel data (spec §4.5).
func DecodeCicn(data []byte) (*ColorIcon, error) {
	r := breader.New(data)

	pm, err := quickdraw.ReadPixMap(r)
	if err != nil {
		return nil, err
	}
	maskRowBytes, maskBounds, err := quickdraw.ReadBitMap(r)
	if err != nil {
		return nil, err
	}
	bwRowBytes, bwBounds, err := quickdraw.ReadBitMap(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.U32(); err != nil { // icon data handle placeholder
		return nil, err
	}

	pal, err := quickdraw.ReadInlineClut(r)
	if err != nil {
		return nil, err
	}

	maskRows, err := quickdraw.ReadPixelRows(r, int(maskRowBytes), maskBounds.Height())
	if err != nil {
		return nil, err
	}
	mask := rowsToMono(maskRows, maskBounds.Width(), maskBounds.Height())

	bwRows, err := quickdraw.ReadPixelRows(r, int(bwRowBytes), bwBounds.Height())
	if err != nil {
		return nil, err
	}
	bw := rowsToMono(bwRows, bwBounds.Width(), bwBounds.Height())

	width, height := pm.Bounds.Width(), pm.Bounds.Height()
	colorRows, err := quickdraw.ReadPixelRows(r, pm.RowBytesValue(), height)
	if err != nil {
		return nil, err
	}
	indexed := rowsToIndexed(colorRows, width, height, int(pm.PixelSize), pal)

	composited := applyMask(indexed, mask)
	return &ColorIcon{Image: composited, Monochrome: bw}, nil
}

func rowsToMono(rows [][]byte, width, height int) *Image {
	img := New(width, height, MONO)
	for y, row := range rows {
		for x := 0; x < width; x++ {
			if row[x/8]&(0x80>>uint(x%8)) != 0 {
				img.Pixels[y*width+x] = 1
			}
		}
	}
	return img
}

func rowsToIndexed(rows [][]byte, width, height, bitsPerPixel int, pal quickdraw.Palette) *Image {
	img := New(width, height, PALETTED8)
	img.Palette = pal
	if bitsPerPixel == 8 {
		for y, row := range rows {
			copy(img.Pixels[y*width:(y+1)*width], row[:width])
		}
		return img
	}
	perByte := 8 / bitsPerPixel
	mask := byte(1<<uint(bitsPerPixel) - 1)
	for y, row := range rows {
		for x := 0; x < width; x++ {
			byteIdx := x / perByte
			shift := uint(8 - bitsPerPixel*(x%perByte+1))
			img.Pixels[y*width+x] = (row[byteIdx] >> shift) & mask
		}
	}
	return img
}
