// Package sound decodes the miscellaneous application- and
// sound-metadata resource types: SIZE, vers, cfrg, ROvN, INST, SONG,
// the sampled-sound family (snd/csnd/esnd/ESnd/SMSD), and the MIDI
// stream family (cmid/emid/ecmi/Tune) (spec §4.10).
package sound

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// Size is a decoded SIZE resource: 13 one-bit application-behavior
// flags packed into the first two bytes, followed by a preferred and a
// minimum memory partition size (spec §4.10).
type Size struct {
	SaveScreen                   bool
	AcceptSuspendEvents          bool
	DisableOption                bool
	CanBackground                bool
	ActivateOnFGSwitch           bool
	OnlyBackground               bool
	GetFrontClicks               bool
	AcceptDiedEvents              bool
	CleanAddressing               bool
	HighLevelEventAware           bool
	LocalAndRemoteHighLevelEvents bool
	StationeryAware               bool
	UseTextEditServices           bool

	PreferredSize uint32
	MinSize       uint32
}

// sizeFlagBits lists the 13 documented SIZE flag bits, in the
// order classic Mac OS's Finder/Process Manager packs them into the
// resource's leading 16-bit flag word (high bit first).
var sizeFlagBits = []func(*Size) *bool{
	func(s *Size) *bool { return &s.SaveScreen },
	func(s *Size) *bool { return &s.AcceptSuspendEvents },
	func(s *Size) *bool { return &s.DisableOption },
	func(s *Size) *bool { return &s.CanBackground },
	func(s *Size) *bool { return &s.ActivateOnFGSwitch },
	func(s *Size) *bool { return &s.OnlyBackground },
	func(s *Size) *bool { return &s.GetFrontClicks },
	func(s *Size) *bool { return &s.AcceptDiedEvents },
	func(s *Size) *bool { return &s.CleanAddressing },
	func(s *Size) *bool { return &s.HighLevelEventAware },
	func(s *Size) *bool { return &s.LocalAndRemoteHighLevelEvents },
	func(s *Size) *bool { return &s.StationeryAware },
	func(s *Size) *bool { return &s.UseTextEditServices },
}

// DecodeSize parses a SIZE resource.
func DecodeSize(data []byte) (*Size, error) {
	r := breader.New(data)
	flags, err := r.U16()
	if err != nil {
		return nil, err
	}
	s := &Size{}
	for i, setter := range sizeFlagBits {
		bit := 15 - i
		*setter(s) = flags&(1<<uint(bit)) != 0
	}
	if s.PreferredSize, err = r.U32(); err != nil {
		return nil, err
	}
	if s.MinSize, err = r.U32(); err != nil {
		return nil, err
	}
	return s, nil
}
