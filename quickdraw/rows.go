package quickdraw

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// ReadPixelRows reads height rows of rowBytes bytes each from r,
// advancing the reader's cursor past exactly the bytes consumed.
// Classic QuickDraw never PackBits-compresses rows narrower than 8
// bytes (spec §4.5's "honoring the rowBytes field"); at or above that
// width, each row is prefixed by its packed length (1 byte if
// rowBytes <= 250, else 2) and PackBits-compressed.
func ReadPixelRows(r *breader.Reader, rowBytes, height int) ([][]byte, error) {
	if rowBytes < 8 {
		rows := make([][]byte, height)
		for y := 0; y < height; y++ {
			row, err := r.Read(int64(rowBytes))
			if err != nil {
				return nil, err
			}
			rows[y] = row
		}
		return rows, nil
	}

	remaining, err := r.Read(r.Remaining())
	if err != nil {
		return nil, err
	}
	rows, consumed, err := UnpackBitsRows(remaining, rowBytes, height)
	if err != nil {
		return nil, err
	}
	// Un-consume the bytes we didn't need; the caller's reader may have
	// more resource data after this pixel block (e.g. a trailing color
	// table).
	return rows, r.Seek(r.Pos() - int64(len(remaining)) + int64(consumed))
}
