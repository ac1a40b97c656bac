package text

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// StyleFlag is a bitmask of classic QuickDraw text style bits (spec
// §4.7).
type StyleFlag uint8

const (
	StyleBold      StyleFlag = 0x01
	StyleItalic    StyleFlag = 0x02
	StyleUnderline StyleFlag = 0x04
	StyleOutline   StyleFlag = 0x08
	StyleShadow    StyleFlag = 0x10
	StyleCondensed StyleFlag = 0x20
	StyleExtended  StyleFlag = 0x40
)

// Has reports whether flag is set.
func (s StyleFlag) Has(flag StyleFlag) bool { return s&flag != 0 }

// StyleRun is one run of a styl resource's run table: a span of a
// paired TEXT resource's bytes, starting at StartOffset, all sharing
// one font/size/style/color (spec §4.7).
type StyleRun struct {
	StartOffset int
	LineHeight  int
	FontAscent  int
	FontID      int
	Style       StyleFlag
	FontSize    int
	ColorR      uint16
	ColorG      uint16
	ColorB      uint16
}

// DecodeStyl decodes a styl resource: a 16-bit run count followed by
// that many fixed-layout runs (spec §4.7).
func DecodeStyl(data []byte) ([]StyleRun, error) {
	r := breader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	runs := make([]StyleRun, count)
	for i := 0; i < int(count); i++ {
		startOffset, err := r.U32()
		if err != nil {
			return nil, err
		}
		lineHeight, err := r.U16()
		if err != nil {
			return nil, err
		}
		fontAscent, err := r.U16()
		if err != nil {
			return nil, err
		}
		fontID, err := r.U16()
		if err != nil {
			return nil, err
		}
		style, err := r.U8()
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil { // reserved alignment byte
			return nil, err
		}
		fontSize, err := r.U16()
		if err != nil {
			return nil, err
		}
		cr, err := r.U16()
		if err != nil {
			return nil, err
		}
		cg, err := r.U16()
		if err != nil {
			return nil, err
		}
		cb, err := r.U16()
		if err != nil {
			return nil, err
		}
		runs[i] = StyleRun{
			StartOffset: int(startOffset),
			LineHeight:  int(lineHeight),
			FontAscent:  int(fontAscent),
			FontID:      int(fontID),
			Style:       StyleFlag(style),
			FontSize:    int(fontSize),
			ColorR:      cr,
			ColorG:      cg,
			ColorB:      cb,
		}
	}
	return runs, nil
}

// StyledText pairs a TEXT resource's decoded string with its styl run
// table, sliced into per-run substrings (spec §4.7's "the decoder pairs
// styl with its TEXT").
type StyledText struct {
	Runs []StyledRun
}

// StyledRun is one decoded substring plus the style that applies to it.
type StyledRun struct {
	Text  string
	Style StyleRun
}

// PairTextAndStyl combines a TEXT resource's raw bytes with a styl
// resource's run table into a sequence of styled substrings.
func PairTextAndStyl(rawText []byte, runs []StyleRun) (*StyledText, error) {
	if len(runs) == 0 {
		s, err := MacRomanToUTF8(rawText)
		if err != nil {
			return nil, err
		}
		return &StyledText{Runs: []StyledRun{{Text: s}}}, nil
	}
	out := &StyledText{Runs: make([]StyledRun, len(runs))}
	for i, run := range runs {
		end := len(rawText)
		if i+1 < len(runs) {
			end = runs[i+1].StartOffset
		}
		start := run.StartOffset
		if start > len(rawText) {
			start = len(rawText)
		}
		if end > len(rawText) {
			end = len(rawText)
		}
		if end < start {
			end = start
		}
		s, err := MacRomanToUTF8(rawText[start:end])
		if err != nil {
			return nil, err
		}
		out.Runs[i] = StyledRun{Text: s, Style: run}
	}
	return out, nil
}
