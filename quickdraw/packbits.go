package quickdraw

import (
	"rsrcdasm.dev/go/rsrc"
)

// UnpackBits decodes a single PackBits-compressed run (spec §4.5,
// §8 property 4): a header byte above 0x80 means "repeat the next byte
// (257-header) times" (i.e. interpreted as the signed value
// header-256, repeated 1-header times); a header byte < 0x80 means
// "copy the next header+1 bytes literally"; a header byte of exactly
// 0x80 is a no-op. Decoding stops once exactly
// rowBytes output bytes have been produced; a run that would overshoot
// is an error, matching the canonical encoder's invariant that rows
// pack exactly.
func UnpackBits(src []byte, rowBytes int) ([]byte, error) {
	out := make([]byte, 0, rowBytes)
	i := 0
	for len(out) < rowBytes {
		if i >= len(src) {
			return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "truncated run"}
		}
		header := int8(src[i])
		i++
		if header >= 0 {
			n := int(header) + 1
			if i+n > len(src) {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "literal run truncated"}
			}
			if len(out)+n > rowBytes {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "literal run overflows rowBytes"}
			}
			out = append(out, src[i:i+n]...)
			i += n
		} else if header != -128 {
			n := 1 - int(header)
			if i >= len(src) {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "repeat run truncated"}
			}
			if len(out)+n > rowBytes {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "repeat run overflows rowBytes"}
			}
			b := src[i]
			i++
			for k := 0; k < n; k++ {
				out = append(out, b)
			}
		}
		// header == -128 (0x80) is a documented no-op.
	}
	return out, nil
}

// UnpackBitsRows decodes rowCount rows, each rowBytes long, from a
// PackBits stream prefixed per-row by a 1- or 2-byte row length
// (2-byte when rowBytes > 250, as QuickDraw's PixMap records require).
// It returns the decoded rows and the number of source bytes consumed.
func UnpackBitsRows(src []byte, rowBytes, rowCount int) (rows [][]byte, consumed int, err error) {
	rows = make([][]byte, rowCount)
	pos := 0
	wide := rowBytes > 250
	for y := 0; y < rowCount; y++ {
		var packedLen int
		if wide {
			if pos+2 > len(src) {
				return nil, 0, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "row length truncated"}
			}
			packedLen = int(src[pos])<<8 | int(src[pos+1])
			pos += 2
		} else {
			if pos+1 > len(src) {
				return nil, 0, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "row length truncated"}
			}
			packedLen = int(src[pos])
			pos++
		}
		if pos+packedLen > len(src) {
			return nil, 0, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "row data truncated"}
		}
		row, err := UnpackBits(src[pos:pos+packedLen], rowBytes)
		if err != nil {
			return nil, 0, err
		}
		rows[y] = row
		pos += packedLen
	}
	return rows, pos, nil
}

// PackBits encodes data using the canonical PackBits algorithm: runs of
// 3+ identical bytes become repeat packets, everything else becomes
// literal packets. It exists so that spec §8 property 4
// (decode(encode(x)) == x) can be tested without a reference encoder
// dependency.
func PackBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		// Look for a run of the same byte.
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == data[i] && runLen < 128 {
			runLen++
		}
		if runLen >= 3 {
			out = append(out, byte(1-runLen), data[i])
			i += runLen
			continue
		}
		// Accumulate a literal run, stopping before a run of 3+ repeats.
		litStart := i
		i++
		for i < len(data) && i-litStart < 128 {
			rep := 1
			for i+rep < len(data) && data[i+rep] == data[i] && rep < 3 {
				rep++
			}
			if rep >= 3 {
				break
			}
			i++
		}
		litLen := i - litStart
		out = append(out, byte(litLen-1))
		out = append(out, data[litStart:i]...)
	}
	return out
}
