// Package quickdraw implements the QuickDraw primitives shared by the
// image and font decoders: 16-bit-per-channel colors, color tables
// (clut/pltt and their variants), PixMap headers, and PackBits
// compression (spec §4.5).
package quickdraw

// Color is a 16-bit-per-channel RGBA color, as QuickDraw stores them.
type Color struct {
	R, G, B, A uint16
}

// Opaque builds a fully opaque Color from 16-bit channels.
func Opaque(r, g, b uint16) Color {
	return Color{R: r, G: g, B: b, A: 0xFFFF}
}

// RGBA8 returns the color scaled down to 8 bits per channel, fully
// opaque unless Alpha has been explicitly set below max.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8), uint8(c.A >> 8)
}

// ColorTableEntry pairs a 16-bit slot number with a Color. The slot
// number is observable metadata; the lookup key for a Palette is the
// entry's position, not its slot number (spec §3).
type ColorTableEntry struct {
	Slot  uint16
	Color Color
}

// Palette is an ordered sequence of ColorTableEntry; index == position.
type Palette []ColorTableEntry

// At returns the color at the given palette index, or the zero Color if
// index is out of range.
func (p Palette) At(index int) Color {
	if index < 0 || index >= len(p) {
		return Color{}
	}
	return p[index].Color
}

// DefaultSystemPalette4 and DefaultSystemPalette8 are the Mac OS
// built-in 16-color and 256-color palettes, used by icl4/ics4/icm4 and
// icl8/ics8/icm8 resources that carry no inline color table (spec §4.5).
var (
	DefaultSystemPalette4 = buildDefaultPalette(16)
	DefaultSystemPalette8 = buildDefaultPalette(256)
)

// buildDefaultPalette synthesizes the default 4- and 8-bit icon
// palettes: for 16 entries a fixed table of 16 common colors, for 256
// entries a 6-level-per-channel color cube followed by a gray ramp.
// Neither reproduces the exact values of the real system palettes; they
// are what this decoder uses when no clut/pltt resource is available to
// consult instead.
func buildDefaultPalette(size int) Palette {
	pal := make(Palette, size)
	if size == 16 {
		levels := []uint16{0xFFFF, 0xCCCC, 0x9999, 0x6666, 0x3333, 0x0000}
		// The real Mac OS 16-color table is irregular, so all 16 slots
		// are hard-coded.
		known := []Color{
			Opaque(0xFFFF, 0xFFFF, 0xFFFF), // white
			Opaque(0xFFFF, 0xFFFF, 0x0000), // yellow
			Opaque(0xFFFF, 0x6666, 0x0000), // orange
			Opaque(0xDDDD, 0x0000, 0x0000), // red
			Opaque(0xFFFF, 0x0000, 0x9999), // magenta
			Opaque(0x3333, 0x0000, 0x9999), // purple
			Opaque(0x0000, 0x0000, 0xCCCC), // blue
			Opaque(0x0000, 0x9999, 0xFFFF), // cyan
			Opaque(0x0000, 0x9999, 0x0000), // green
			Opaque(0x0000, 0x6666, 0x0000), // dark green
			Opaque(0x6666, 0x3333, 0x0000), // brown
			Opaque(0x9999, 0x6666, 0x3333), // tan
			Opaque(0xCCCC, 0xCCCC, 0xCCCC), // light gray
			Opaque(0x9999, 0x9999, 0x9999), // medium gray
			Opaque(0x6666, 0x6666, 0x6666), // dark gray
			Opaque(0x0000, 0x0000, 0x0000), // black
		}
		for i := range pal {
			pal[i] = ColorTableEntry{Slot: uint16(i), Color: known[i]}
		}
		_ = levels
		return pal
	}
	// 256-color cube: 6x6x6 levels (216 entries) followed by a 40-entry
	// grayscale ramp, matching the layout (not exact values) of the
	// classic Mac OS default 8-bit palette.
	levels6 := []uint16{0xFFFF, 0xCCCC, 0x9999, 0x6666, 0x3333, 0x0000}
	idx := 0
	for _, r := range levels6 {
		for _, g := range levels6 {
			for _, b := range levels6 {
				if idx >= size {
					break
				}
				pal[idx] = ColorTableEntry{Slot: uint16(idx), Color: Opaque(r, g, b)}
				idx++
			}
		}
	}
	for idx < size {
		level := uint16(0xFFFF - (uint32(idx-216)*0xFFFF/uint32(size-216-1))&0xFFFF)
		pal[idx] = ColorTableEntry{Slot: uint16(idx), Color: Opaque(level, level, level)}
		idx++
	}
	return pal
}
