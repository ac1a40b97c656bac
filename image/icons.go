package image

import (
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// monoDimensions gives the fixed (width, height) for each 1-bit icon
// family (spec §4.5).
var monoDimensions = map[string][2]int{
	"ICON": {32, 32},
	"ICN#": {32, 32},
	"icm#": {16, 12},
	"ics#": {16, 16},
	"kcs#": {16, 16},
	"SICN": {16, 16},
	"CURS": {16, 16},
}

// readMonoRows reads height rows of ceil(width/8) bytes each, MSB-left,
// from r, producing a MONO Image of the given dimensions.
func readMonoRows(r *breader.Reader, width, height int) (*Image, error) {
	rowBytes := (width + 7) / 8
	img := New(width, height, MONO)
	for y := 0; y < height; y++ {
		row, err := r.Read(int64(rowBytes))
		if err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			bit := row[x/8] & (0x80 >> uint(x%8))
			if bit != 0 {
				img.Pixels[y*width+x] = 1
			}
		}
	}
	return img, nil
}

// DecodeMono1Bit decodes a 1-bit icon-and-mask pair (ICON, ICN#, icm#,
// ics#, kcs#): two equal-sized bitmaps, one row at a time, MSB-left
// (spec §4.5). ICON carries no mask and returns a nil mask image.
func DecodeMono1Bit(data []byte, width, height int, hasMask bool) (bitmap, mask *Image, err error) {
	r := breader.New(data)
	bitmap, err = readMonoRows(r, width, height)
	if err != nil {
		return nil, nil, err
	}
	if hasMask {
		mask, err = readMonoRows(r, width, height)
		if err != nil {
			return nil, nil, err
		}
	}
	return bitmap, mask, nil
}

// DecodeSICN decodes an array of 16x16 monochrome icons stored back to
// back in a single SICN resource.
func DecodeSICN(data []byte) ([]*Image, error) {
	r := breader.New(data)
	var icons []*Image
	for !r.EOF() {
		icon, err := readMonoRows(r, 16, 16)
		if err != nil {
			return nil, err
		}
		icons = append(icons, icon)
	}
	return icons, nil
}

// DecodeCursor decodes a CURS resource: a 16x16 bitmap, a 16x16 mask,
// and a hotspot.
func DecodeCursor(data []byte) (bitmap, mask *Image, hotspotX, hotspotY int, err error) {
	r := breader.New(data)
	bitmap, err = readMonoRows(r, 16, 16)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	mask, err = readMonoRows(r, 16, 16)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	hx, err := r.I16()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	hy, err := r.I16()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return bitmap, mask, int(hx), int(hy), nil
}

// readIndexedRows reads height rows of packed bitsPerPixel-wide pixel
// indices, rowBytes wide (padded), and resolves them through pal into a
// PALETTED8 Image.
func readIndexedRows(r *breader.Reader, width, height, bitsPerPixel int, pal quickdraw.Palette) (*Image, error) {
	rowBytes := (width*bitsPerPixel + 7) / 8
	img := New(width, height, PALETTED8)
	img.Palette = pal
	perByte := 8 / bitsPerPixel
	mask := byte(1<<uint(bitsPerPixel) - 1)
	for y := 0; y < height; y++ {
		row, err := r.Read(int64(rowBytes))
		if err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			byteIdx := x / perByte
			shift := uint(8 - bitsPerPixel*(x%perByte+1))
			idx := (row[byteIdx] >> shift) & mask
			img.Pixels[y*width+x] = idx
		}
	}
	return img, nil
}

// DecodeIndexedIcon decodes a color-indexed icon family (icl4/icl8,
// icm4/icm8, ics4/ics8, kcs4/kcs8): width x height pixels at
// bitsPerPixel indexing pal. A companion "#" mask resource, if
// supplied, is composited in as the alpha channel of the result.
func DecodeIndexedIcon(data []byte, width, height, bitsPerPixel int, pal quickdraw.Palette, maskBitmap *Image) (*Image, error) {
	r := breader.New(data)
	img, err := readIndexedRows(r, width, height, bitsPerPixel, pal)
	if err != nil {
		return nil, err
	}
	if maskBitmap == nil {
		return img, nil
	}
	return applyMask(img, maskBitmap), nil
}

// applyMask converts a PALETTED8 image to RGBA8888, using maskBitmap
// (a MONO image, possibly of different dimensions — clipped per spec
// §9 open question) as the alpha channel.
func applyMask(img *Image, maskBitmap *Image) *Image {
	out := New(img.Width, img.Height, RGBA8888)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := img.GetRGBA(x, y)
			a := uint8(0xFF)
			if maskBitmap.Check(x, y) {
				if maskBitmap.Pixels[y*maskBitmap.Width+x] == 0 {
					a = 0
				}
			} else {
				a = 0
			}
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}
