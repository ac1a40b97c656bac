package image

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

// PictResult is the outcome of decoding a PICT resource: either a
// rasterized Image, or — for opcodes that embed another image format
// wholesale (QuickTime compressed/uncompressed frames, ph0t/ph00 long
// comments) — the raw bytes of that embedded image on a side channel
// (spec §4.5, §6).
type PictResult struct {
	Image               *Image
	EmbeddedImageFormat string
	EmbeddedImageData   []byte
}

// pictDecoder holds the mutable state of a single PICT interpretation
// (spec §4.11).
type pictDecoder struct {
	r       *breader.Reader
	state   *pictState
	run     pictRunState
	img     *Image
	version int
	result  PictResult
}

// DecodePICT interprets a PICT resource's opcode stream and produces
// either a rasterized image or a forwarded embedded-image payload.
func DecodePICT(data []byte) (*PictResult, error) {
	r := breader.New(data)
	d := &pictDecoder{r: r, state: newPictState(), run: pictReady}

	if _, err := r.U16(); err != nil { // total size, ignored on overflow
		return nil, err
	}
	frame, err := quickdraw.ReadRect(r)
	if err != nil {
		return nil, err
	}

	if err := d.detectVersion(); err != nil {
		d.run = pictFailed
		return nil, err
	}

	width, height := frame.Width(), frame.Height()
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	d.img = New(width, height, RGBA8888)
	// Default background is white, matching QuickDraw's default port.
	for i := range d.img.Pixels {
		d.img.Pixels[i] = 0xFF
	}
	d.state.clip = frame

	d.run = pictRunning
	for d.run == pictRunning {
		if r.EOF() {
			d.run = pictDone
			break
		}
		opcode, err := d.readOpcode()
		if err != nil {
			d.run = pictFailed
			return nil, err
		}
		if err := d.dispatch(opcode); err != nil {
			d.run = pictFailed
			return nil, err
		}
	}

	if d.run == pictEmbeddedImage {
		return &d.result, nil
	}
	d.result.Image = d.img
	return &d.result, nil
}

// detectVersion consumes the version marker and, for PICT v2, the
// 26-byte extended header (spec §4.5's "PICTv2 adds a version opcode
// and 26-byte extended header").
func (d *pictDecoder) detectVersion() error {
	peek, err := d.r.PeekAt(d.r.Pos(), 2)
	if err != nil {
		d.version = 1
		return nil
	}
	if peek[0] == 0x11 && peek[1] == 0x01 {
		_ = d.r.Skip(2)
		d.version = 1
		return nil
	}
	if peek[0] == 0x00 && peek[1] == 0x11 {
		_ = d.r.Skip(2)
		if _, err := d.r.U16(); err != nil { // version data word
			return err
		}
		d.version = 2
		hdrOp, err := d.r.PeekU16At(d.r.Pos())
		if err == nil && hdrOp == 0x0C00 {
			_ = d.r.Skip(2)
			_ = d.r.Skip(24) // version, reserved, hRes, vRes, srcRect, reserved
		}
		return nil
	}
	d.version = 1
	return nil
}

// readOpcode reads an 8-bit opcode for v1 PICTs, a 16-bit one otherwise,
// aligning to a word boundary first for v2 as QuickDraw requires.
func (d *pictDecoder) readOpcode() (uint16, error) {
	if d.version == 1 {
		b, err := d.r.U8()
		return uint16(b), err
	}
	if d.r.Pos()%2 != 0 {
		if err := d.r.Skip(1); err != nil {
			return 0, err
		}
	}
	return d.r.U16()
}

func (d *pictDecoder) dispatch(opcode uint16) error {
	if h, ok := pictHandlers[opcode]; ok {
		return h(d)
	}
	if n, ok := pictFixedSkip[opcode]; ok {
		return d.r.Skip(int64(n))
	}
	if isPictVariableSkip(opcode) {
		size, err := d.r.U32()
		if err != nil {
			return err
		}
		return d.r.Skip(int64(size))
	}
	return &rsrc.UnsupportedPICTOpcodeError{Opcode: opcode, Offset: d.r.Pos()}
}

// isPictVariableSkip reports whether opcode lies in one of the
// "reserved for future expansion" ranges whose payload is a u32 length
// followed by that many bytes, per the QuickDraw published skip table
// (spec §9's open question on unknown-opcode handling).
func isPictVariableSkip(opcode uint16) bool {
	return opcode >= 0x00D0 && opcode <= 0x00FE ||
		opcode >= 0x0100 && opcode <= 0x01FF ||
		opcode >= 0x02FF && opcode <= 0x0BFF
}
