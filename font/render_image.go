package font

import (
	"rsrcdasm.dev/go/rsrc/image"
)

// RenderText draws text into dst, anchored by its upper-left corner at
// (x1, y1) and clipped to [x1,x2)x[y1,y2). Pixels outside that box are
// silently skipped (spec §4.6).
func (br *BitmapFontRenderer) RenderText(dst *image.Image, text string, x1, y1, x2, y2 int, r, g, b, a uint8, align Alignment) {
	var xDelta int
	switch align {
	case AlignCenter:
		xDelta = (x1 + x2) / 2
	case AlignRight:
		xDelta = x2
	default:
		xDelta = x1
	}
	br.RenderTextCustom(text, align, func(px, py int) {
		px += xDelta
		py += y1
		if px >= x1 && py >= y1 && px < x2 && py < y2 {
			dst.SetRGBA(px, py, r, g, b, a)
		}
	})
}

// WrapAndRender wraps text to width, measures the wrapped result, and
// renders it into a freshly allocated image. height == 0 means "as tall
// as necessary" (spec §4.6).
func (br *BitmapFontRenderer) WrapAndRender(text string, width, height int, r, g, b, a uint8, align Alignment) (*image.Image, error) {
	wrapped, err := br.WrapToPixelWidth(text, width)
	if err != nil {
		return nil, err
	}
	_, h := br.Measure(wrapped)
	if height == 0 {
		height = h
	}
	out := image.New(width, height, image.RGBA8888)
	br.RenderText(out, wrapped, 0, 0, width, height, r, g, b, a, align)
	return out, nil
}
