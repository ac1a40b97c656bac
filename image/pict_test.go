package image

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildRect appends a big-endian QuickDraw rect.
func buildRect(buf *bytes.Buffer, top, left, bottom, right int16) {
	binary.Write(buf, binary.BigEndian, top)
	binary.Write(buf, binary.BigEndian, left)
	binary.Write(buf, binary.BigEndian, bottom)
	binary.Write(buf, binary.BigEndian, right)
}

// buildDirectBitsRectPICT constructs a minimal PICT v2: size, frame,
// version marker + header opcode, a single DirectBitsRect opcode
// carrying an uncompressed 4x4 RGB888 pattern, then EndOfPicture.
func buildDirectBitsRectPICT(t *testing.T, rows [][3]byte, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer

	binary.Write(&buf, binary.BigEndian, uint16(0)) // size, ignored
	buildRect(&buf, 0, 0, int16(height), int16(width))

	buf.Write([]byte{0x00, 0x11})                   // version marker
	binary.Write(&buf, binary.BigEndian, uint16(0x02FF)) // version data word
	binary.Write(&buf, binary.BigEndian, uint16(0x0C00)) // header opcode
	buf.Write(make([]byte, 24))                      // extended header payload

	binary.Write(&buf, binary.BigEndian, uint16(0x009A)) // DirectBitsRect
	binary.Write(&buf, binary.BigEndian, uint32(0))      // baseAddr placeholder

	rowBytes := uint16(width*3) | 0x8000
	binary.Write(&buf, binary.BigEndian, rowBytes)
	buildRect(&buf, 0, 0, int16(height), int16(width)) // bounds
	binary.Write(&buf, binary.BigEndian, int16(0))     // pmVersion
	binary.Write(&buf, binary.BigEndian, int16(1))     // packType 1: rows stored unpacked
	binary.Write(&buf, binary.BigEndian, int32(0))     // packSize
	binary.Write(&buf, binary.BigEndian, int32(0))     // hRes
	binary.Write(&buf, binary.BigEndian, int32(0))     // vRes
	binary.Write(&buf, binary.BigEndian, int16(16))    // pixelType (RGBDirect)
	binary.Write(&buf, binary.BigEndian, int16(8))     // pixelSize
	binary.Write(&buf, binary.BigEndian, int16(3))     // cmpCount
	binary.Write(&buf, binary.BigEndian, int16(8))     // cmpSize
	binary.Write(&buf, binary.BigEndian, int32(0))     // planeBytes
	binary.Write(&buf, binary.BigEndian, uint32(0))    // pmTable
	binary.Write(&buf, binary.BigEndian, uint32(0))    // pmReserved

	buildRect(&buf, 0, 0, int16(height), int16(width)) // srcRect
	buildRect(&buf, 0, 0, int16(height), int16(width)) // destRect
	binary.Write(&buf, binary.BigEndian, uint16(0))    // transfer mode

	for _, row := range rows {
		for x := 0; x < width; x++ {
			buf.Write(row[:])
		}
	}

	binary.Write(&buf, binary.BigEndian, uint16(0x00FF)) // EndOfPicture
	buf.Write([]byte{0, 0})

	return buf.Bytes()
}

func TestDecodePICTDirectBitsRect(t *testing.T) {
	red := [3]byte{0xFF, 0x00, 0x00}
	green := [3]byte{0x00, 0xFF, 0x00}
	blue := [3]byte{0x00, 0x00, 0xFF}
	white := [3]byte{0xFF, 0xFF, 0xFF}
	pattern := [][3]byte{red, green, blue, white}

	data := buildDirectBitsRectPICT(t, pattern, 4, 4)
	result, err := DecodePICT(data)
	if err != nil {
		t.Fatalf("DecodePICT: %v", err)
	}
	if result.Image == nil {
		t.Fatalf("expected rasterized image, got embedded-image result")
	}
	if result.Image.Width != 4 || result.Image.Height != 4 {
		t.Fatalf("got %dx%d, want 4x4", result.Image.Width, result.Image.Height)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, _ := result.Image.GetRGBA(x, y)
			want := pattern[y]
			if r != want[0] || g != want[1] || b != want[2] {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", x, y, r, g, b, want[0], want[1], want[2])
			}
		}
	}
}

func TestDecodePICTUnsupportedOpcodeFails(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0))
	buildRect(&buf, 0, 0, 4, 4)
	buf.Write([]byte{0x11, 0x01}) // v1 marker
	buf.Write([]byte{0xC1})       // not in the fixed-skip, handler, or variable-skip tables

	_, err := DecodePICT(buf.Bytes())
	if err == nil {
		t.Fatalf("expected UnsupportedPICTOpcodeError, got nil")
	}
}

func TestDecodePICTFillRectPaintsForegroundColor(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0))
	buildRect(&buf, 0, 0, 2, 2)
	buf.Write([]byte{0x11, 0x01}) // v1 marker

	buf.WriteByte(0x34) // FillRect (one byte wide under the v1 opcode numbering this decoder uses)
	buildRect(&buf, 0, 0, 2, 2)

	buf.WriteByte(0xFF) // EndOfPicture
	buf.Write([]byte{0, 0})

	result, err := DecodePICT(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodePICT: %v", err)
	}
	r, g, b, a := result.Image.GetRGBA(0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0xFF {
		t.Errorf("FillRect with default foreground = (%d,%d,%d,%d), want black opaque", r, g, b, a)
	}
}
