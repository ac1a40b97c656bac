package image

import "rsrcdasm.dev/go/rsrc/quickdraw"

// pictState is QuickDraw state for a single PICT decode: pen position,
// colors, clip rectangle, pattern, and transfer mode. It is reset for
// every DecodePICT call; no state persists between decodes (spec §3,
// "QuickDraw state").
type pictState struct {
	penX, penY   int16
	foreColor    quickdraw.Color
	backColor    quickdraw.Color
	clip         quickdraw.Rect
	fillPattern  [8]byte
	penPattern   [8]byte
	transferMode int16
	lastRect     quickdraw.Rect
}

func newPictState() *pictState {
	return &pictState{
		foreColor: quickdraw.Color{A: 0xFFFF}, // black
		backColor: quickdraw.Color{R: 0xFFFF, G: 0xFFFF, B: 0xFFFF, A: 0xFFFF},
	}
}

// pictRunState is the per-decode state-machine phase (spec §4.11).
type pictRunState int

const (
	pictReady pictRunState = iota
	pictRunning
	pictEmbeddedImage
	pictDone
	pictFailed
)
