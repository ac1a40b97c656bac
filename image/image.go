// Package image decodes Classic Mac OS image resources — PICT,
// color/monochrome icon families, cursors, patterns, and their
// supporting palette resources — into an [Image] raster (spec §4.5,
// §3).
package image

import (
	stdimage "image"
	"image/color"

	ximagedraw "golang.org/x/image/draw"

	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// PixelFormat tags the storage layout of an Image's Pixels slice.
type PixelFormat int

const (
	MONO PixelFormat = iota
	MONO_A
	RGB565
	RGB888
	RGBA8888
	PALETTED8
)

// BytesPerPixel returns the storage width of one pixel in the given
// format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case MONO, MONO_A, PALETTED8:
		return 1
	case RGB565:
		return 2
	case RGB888:
		return 3
	case RGBA8888:
		return 4
	default:
		return 0
	}
}

// Image is a rectangular pixel grid with row-major storage (spec §3).
// Row stride always equals Width * Format.BytesPerPixel(); coordinates
// are non-wrapping.
type Image struct {
	Width, Height int
	Format        PixelFormat
	Pixels        []byte
	Palette       quickdraw.Palette // only meaningful when Format == PALETTED8
}

// New allocates a zeroed Image of the given dimensions and format.
func New(width, height int, format PixelFormat) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: make([]byte, width*height*format.BytesPerPixel()),
	}
}

// Check reports whether (x, y) lies within the image's bounds.
func (img *Image) Check(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// rowStride returns the byte length of one pixel row.
func (img *Image) rowStride() int {
	return img.Width * img.Format.BytesPerPixel()
}

// SetRGBA writes an RGBA8888 pixel. The image must be in RGBA8888
// format. Out-of-bounds writes are silently ignored, matching the
// PICT interpreter's clipping behavior.
func (img *Image) SetRGBA(x, y int, r, g, b, a uint8) {
	if !img.Check(x, y) || img.Format != RGBA8888 {
		return
	}
	off := y*img.rowStride() + x*4
	img.Pixels[off] = r
	img.Pixels[off+1] = g
	img.Pixels[off+2] = b
	img.Pixels[off+3] = a
}

// GetRGBA reads a pixel as RGBA8888, converting from the image's native
// format (and through its Palette, for PALETTED8) as needed.
func (img *Image) GetRGBA(x, y int) (r, g, b, a uint8) {
	if !img.Check(x, y) {
		return 0, 0, 0, 0
	}
	stride := img.rowStride()
	switch img.Format {
	case RGBA8888:
		off := y*stride + x*4
		return img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2], img.Pixels[off+3]
	case RGB888:
		off := y*stride + x*3
		return img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2], 0xFF
	case RGB565:
		off := y*stride + x*2
		v := uint16(img.Pixels[off])<<8 | uint16(img.Pixels[off+1])
		r5 := uint8(v >> 11 & 0x1F)
		g6 := uint8(v >> 5 & 0x3F)
		b5 := uint8(v & 0x1F)
		return r5 << 3, g6 << 2, b5 << 3, 0xFF
	case PALETTED8:
		off := y*stride + x
		idx := int(img.Pixels[off])
		c := img.Palette.At(idx)
		rr, gg, bb, aa := c.RGBA8()
		return rr, gg, bb, aa
	case MONO:
		off := y*stride + x
		if img.Pixels[off] != 0 {
			return 0, 0, 0, 0xFF
		}
		return 0xFF, 0xFF, 0xFF, 0xFF
	case MONO_A:
		off := y*stride + x
		if img.Pixels[off] != 0 {
			return 0, 0, 0, 0xFF
		}
		return 0, 0, 0, 0x00
	}
	return 0, 0, 0, 0
}

// ToStdImage converts an Image to a standard library image.Image,
// bridging this package's pixel-format tagged raster to the
// golang.org/x/image ecosystem (draw.Image compositing, PNG/JPEG
// encoders, etc. — all out of this module's scope per spec §1, but
// reachable once converted).
func (img *Image) ToStdImage() stdimage.Image {
	if img.Format == PALETTED8 {
		pal := make(color.Palette, len(img.Palette))
		for i, entry := range img.Palette {
			r, g, b, a := entry.Color.RGBA8()
			pal[i] = color.NRGBA{R: r, G: g, B: b, A: a}
		}
		out := stdimage.NewPaletted(stdimage.Rect(0, 0, img.Width, img.Height), pal)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				idx := img.Pixels[y*img.rowStride()+x]
				out.SetColorIndex(x, y, idx)
			}
		}
		return out
	}
	out := stdimage.NewNRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := img.GetRGBA(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return out
}

// FromStdImage converts a standard library image.Image into an
// RGBA8888 Image. The source is first composited into a origin-aligned
// NRGBA buffer via golang.org/x/image/draw, so a src with a non-zero
// Bounds().Min (sub-images, decoded JPEG/PNG tiles, ...) still lands at
// (0, 0) in the result.
func FromStdImage(src stdimage.Image) *Image {
	b := src.Bounds()
	buf := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.Dx(), b.Dy()))
	ximagedraw.Draw(buf, buf.Bounds(), src, b.Min, ximagedraw.Src)

	out := New(b.Dx(), b.Dy(), RGBA8888)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := buf.NRGBAAt(x, y)
			out.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return out
}
