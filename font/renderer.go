package font

import (
	"strings"
)

// Alignment selects how BitmapFontRenderer.RenderText positions each
// line horizontally (spec §4.6).
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// WidthTooSmallError is returned by WrapToPixelWidth when a single
// glyph's advance alone exceeds the requested width (spec §4.6).
type WidthTooSmallError struct {
	MaxWidth    int
	GlyphWidth  int
}

func (err *WidthTooSmallError) Error() string {
	return "maximum width is too small to contain even a single glyph"
}

// BitmapFontRenderer renders and measures text against a decoded Font.
// It is stateless; every method call is independent (spec §4.6).
type BitmapFontRenderer struct {
	Font *Font
}

// NewBitmapFontRenderer wraps a decoded Font for rendering.
func NewBitmapFontRenderer(f *Font) *BitmapFontRenderer {
	return &BitmapFontRenderer{Font: f}
}

// WrapToPixelWidth greedily wraps text so that each line's rendered
// pixel width is at most maxWidth, breaking at a space or immediately
// after a hyphen when possible and falling back to a mid-word break
// otherwise. Explicit newlines in the input are preserved as hard line
// breaks (spec §4.6, grounded line-for-line on the reference
// implementation's wrap_text_to_pixel_width).
func (br *BitmapFontRenderer) WrapToPixelWidth(text string, maxWidth int) (string, error) {
	var out strings.Builder
	lineWidthPx := 0
	lineStart := 0
	lastValidWrap := 0

	for offset := 0; offset < len(text); offset++ {
		ch := text[offset]
		if ch == ' ' || (offset > 0 && text[offset-1] == '-') {
			lastValidWrap = offset
		}

		if ch == '\n' {
			out.WriteString(text[lineStart : offset+1])
			lineWidthPx = 0
			lineStart = offset + 1
			lastValidWrap = lineStart
			continue
		}

		glyph := br.Font.GlyphForChar(ch)
		lineWidthPx += int(glyph.Advance)
		if lineWidthPx <= maxWidth {
			continue
		}

		if lineStart == offset {
			return "", &WidthTooSmallError{MaxWidth: maxWidth, GlyphWidth: int(glyph.Advance)}
		}
		if lastValidWrap > lineStart && lastValidWrap <= offset {
			out.WriteString(text[lineStart:lastValidWrap])
			out.WriteByte('\n')
			lineStart = lastValidWrap
			if text[lastValidWrap] == ' ' {
				lineStart++
			}
			lineWidthPx = 0
			offset = lineStart - 1 // re-measure the characters carried onto the new line
		} else {
			out.WriteString(text[lineStart:offset])
			out.WriteByte('\n')
			lineStart = offset
			lastValidWrap = offset
			lineWidthPx = int(glyph.Advance)
			if lineWidthPx > maxWidth {
				return "", &WidthTooSmallError{MaxWidth: maxWidth, GlyphWidth: lineWidthPx}
			}
		}
	}
	if lineStart < len(text) {
		out.WriteString(text[lineStart:])
	}
	return out.String(), nil
}

// Measure returns the pixel width and height of the smallest bounding
// box containing all of text when rendered, including leading between
// lines but not after the last line (spec §4.6, property 6).
func (br *BitmapFontRenderer) Measure(text string) (width, height int) {
	if text == "" {
		return 0, 0
	}
	maxWidth := 0
	numLines := 1
	lineWidth := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			if lineWidth > maxWidth {
				maxWidth = lineWidth
			}
			lineWidth = 0
			numLines++
			continue
		}
		lineWidth += int(br.Font.GlyphForChar(text[i]).Advance)
	}
	if lineWidth > maxWidth {
		maxWidth = lineWidth
	}
	overallHeight := numLines*(br.Font.BitmapHeight+br.Font.Leading) - br.Font.Leading
	return maxWidth, overallHeight
}

// RenderGlyphCustom invokes write(x, y) once per set pixel of ch's
// glyph rendered with its top-left bitmap corner at (x0, y0), and
// returns the glyph's pen advance.
func (br *BitmapFontRenderer) RenderGlyphCustom(ch byte, x0, y0 int, write func(x, y int)) int {
	glyph := br.Font.GlyphForChar(ch)
	for py := 0; py < br.Font.BitmapHeight; py++ {
		for px := 0; px < glyph.BitmapWidth; px++ {
			if br.Font.glyphBit(glyph.BitmapOffset+px, py) != 0 {
				write(x0+int(glyph.PenOffset)+px, y0+py)
			}
		}
	}
	return int(glyph.Advance)
}

// RenderTextCustom invokes write(x, y) once per pixel to draw for
// text, honoring align. Left alignment renders character-by-character;
// center/right alignment renders whole lines since their start x
// depends on the line's total width (spec §4.6).
func (br *BitmapFontRenderer) RenderTextCustom(text string, align Alignment, write func(x, y int)) {
	lineHeight := br.Font.BitmapHeight + br.Font.Leading

	if align == AlignLeft {
		x, y := 0, 0
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				x = 0
				y += lineHeight
				continue
			}
			x += br.RenderGlyphCustom(text[i], x, y, write)
		}
		return
	}

	lines := strings.Split(text, "\n")
	y := 0
	for _, line := range lines {
		lineW, lineH := br.Measure(line)
		if lineH == 0 {
			lineH = br.Font.BitmapHeight
		}
		lineH += br.Font.Leading
		var x int
		if align == AlignRight {
			x = -lineW
		} else {
			x = -lineW / 2
		}
		for i := 0; i < len(line); i++ {
			x += br.RenderGlyphCustom(line[i], x, y, write)
		}
		y += lineH
	}
}
