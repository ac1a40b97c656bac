// Package text decodes classic Mac OS text resources — STR, STR#, TEXT,
// and styl — and converts Mac-Roman byte strings to Unicode (spec §4.7).
package text

import (
	"golang.org/x/text/encoding/charmap"

	"rsrcdasm.dev/go/rsrc/breader"
)

// MacRomanToUTF8 decodes Mac-Roman encoded bytes to a UTF-8 string.
// Bytes below 0x80 are ASCII and pass through unchanged; bytes at or
// above 0x80 are mapped through the 128-entry Mac-Roman table (spec
// §4.7).
func MacRomanToUTF8(data []byte) (string, error) {
	out, err := charmap.Macintosh.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeSTR decodes a STR resource: a single Pascal string, with any
// bytes after it ignored (spec §4.7).
func DecodeSTR(data []byte) (string, error) {
	r := breader.New(data)
	raw, err := r.PString()
	if err != nil {
		return "", err
	}
	return MacRomanToUTF8([]byte(raw))
}

// DecodeSTRList decodes a STR# resource: a 16-bit count followed by
// that many Pascal strings.
func DecodeSTRList(data []byte) ([]string, error) {
	r := breader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := 0; i < int(count); i++ {
		raw, err := r.PString()
		if err != nil {
			return nil, err
		}
		s, err := MacRomanToUTF8([]byte(raw))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// DecodeTEXT decodes a TEXT resource: the entire body is raw Mac-Roman
// text, with no length prefix (spec §4.7).
func DecodeTEXT(data []byte) (string, error) {
	return MacRomanToUTF8(data)
}
