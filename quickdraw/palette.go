package quickdraw

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// ClutHeader is the fixed header of a clut resource (and the identical
// actb/cctb/dctb/fctb/wctb variants, which the decoder treats the same
// way — spec §4.5).
type ClutHeader struct {
	Seed  uint32
	Flags uint16
	Size  uint16 // ctSize; entry count is Size+1
}

// DecodeClut decodes a clut (or actb/cctb/dctb/fctb/wctb) resource body
// into an ordered Palette. Per spec §8 property 2, the emitted palette
// length equals ctSize+1.
func DecodeClut(data []byte) (Palette, error) {
	r := breader.New(data)
	seed, err := r.U32()
	if err != nil {
		return nil, err
	}
	flags, err := r.U16()
	if err != nil {
		return nil, err
	}
	size, err := r.U16()
	if err != nil {
		return nil, err
	}
	_ = ClutHeader{Seed: seed, Flags: flags, Size: size}

	count := int(size) + 1
	pal := make(Palette, count)
	for i := 0; i < count; i++ {
		slot, err := r.U16()
		if err != nil {
			return nil, err
		}
		rr, err := r.U16()
		if err != nil {
			return nil, err
		}
		gg, err := r.U16()
		if err != nil {
			return nil, err
		}
		bb, err := r.U16()
		if err != nil {
			return nil, err
		}
		pal[i] = ColorTableEntry{Slot: slot, Color: Opaque(rr, gg, bb)}
	}
	return pal, nil
}

// DecodePltt decodes a pltt resource: a count followed by that many
// entries of {R, G, B, flags, reserved}. The position in the returned
// Palette doubles as the slot number, since pltt entries carry no
// explicit slot field.
func DecodePltt(data []byte) (Palette, error) {
	r := breader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	pal := make(Palette, count)
	for i := 0; i < int(count); i++ {
		rr, err := r.U16()
		if err != nil {
			return nil, err
		}
		gg, err := r.U16()
		if err != nil {
			return nil, err
		}
		bb, err := r.U16()
		if err != nil {
			return nil, err
		}
		if _, err := r.U16(); err != nil { // flags
			return nil, err
		}
		if _, err := r.U16(); err != nil { // reserved
			return nil, err
		}
		pal[i] = ColorTableEntry{Slot: uint16(i), Color: Opaque(rr, gg, bb)}
	}
	return pal, nil
}
