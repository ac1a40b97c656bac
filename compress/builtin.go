package compress

import (
	"rsrcdasm.dev/go/rsrc"
)

// decompressStore implements system decompressor 0: the payload already
// is the decompressed bytes, truncated or zero-padded to the declared
// decompressed size (spec §4.4).
func decompressStore(header Header, payload []byte) ([]byte, error) {
	want := int(header.DecompressedSize)
	if len(payload) >= want {
		return payload[:want], nil
	}
	out := make([]byte, want)
	copy(out, payload)
	return out, nil
}

// decompressPackBits implements system decompressor 1: the payload is a
// single PackBits stream (not split into fixed-width rows, unlike the
// row-oriented PixMap encoding) that unpacks to exactly
// header.DecompressedSize bytes (spec §4.4).
func decompressPackBits(header Header, payload []byte) ([]byte, error) {
	want := int(header.DecompressedSize)
	out := make([]byte, 0, want)
	i := 0
	for len(out) < want {
		if i >= len(payload) {
			return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "compressed resource truncated"}
		}
		ctl := int8(payload[i])
		i++
		switch {
		case ctl >= 0:
			n := int(ctl) + 1
			if i+n > len(payload) {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "literal run truncated"}
			}
			out = append(out, payload[i:i+n]...)
			i += n
		case ctl != -128:
			n := 1 - int(ctl)
			if i >= len(payload) {
				return nil, &rsrc.MalformedResourceError{Kind: "PackBits", Context: "repeat run truncated"}
			}
			b := payload[i]
			i++
			for k := 0; k < n; k++ {
				out = append(out, b)
			}
		}
	}
	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}
