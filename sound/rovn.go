package sound

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// ROMOverride is one {type, id} pair from a ROvN resource: a resource
// that should be loaded from the ROM resource map instead of the
// application's own, overriding the normal search order (spec §4.10).
type ROMOverride struct {
	Type rsrc.Type
	ID   rsrc.ID
}

// ROMOverrides is a decoded ROvN resource.
type ROMOverrides struct {
	ROMVersion uint16
	Overrides  []ROMOverride
}

// DecodeROvN parses a ROvN resource.
func DecodeROvN(data []byte) (*ROMOverrides, error) {
	r := breader.New(data)
	ver, err := r.U16()
	if err != nil {
		return nil, err
	}
	out := &ROMOverrides{ROMVersion: ver}
	for !r.EOF() {
		typeBytes, err := r.Read(4)
		if err != nil {
			return nil, err
		}
		id, err := r.I16()
		if err != nil {
			return nil, err
		}
		out.Overrides = append(out.Overrides, ROMOverride{
			Type: rsrc.MakeType(typeBytes[0], typeBytes[1], typeBytes[2], typeBytes[3]),
			ID:   rsrc.ID(id),
		})
	}
	return out, nil
}
