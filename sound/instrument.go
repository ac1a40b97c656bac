package sound

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// KeyRegion is one playable key range in an INST resource, naming the
// snd/csnd resource to play and the note it was originally sampled at
// (spec §4.10).
type KeyRegion struct {
	KeyLow   uint8
	KeyHigh  uint8
	BaseNote uint8
	SoundID  rsrc.ID
	SoundType rsrc.Type // rsrc.TypeSnd or rsrc.TypeCsnd
}

// Instrument is a decoded INST resource.
type Instrument struct {
	KeyRegions    []KeyRegion
	BaseNote      uint8
	UseSampleRate bool
	ConstantPitch bool
}

// DecodeINST parses an INST resource: a key-region count, that many
// {key_low, key_high, base_note, snd_id} entries (the sound type is
// fixed at rsrc.TypeSnd; csnd playback is chosen by the caller when the
// plain snd id is absent), followed by the instrument-level base note
// and two one-byte option flags.
func DecodeINST(data []byte) (*Instrument, error) {
	r := breader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	inst := &Instrument{}
	for i := uint16(0); i < count; i++ {
		var kr KeyRegion
		if kr.KeyLow, err = r.U8(); err != nil {
			return nil, err
		}
		if kr.KeyHigh, err = r.U8(); err != nil {
			return nil, err
		}
		if kr.BaseNote, err = r.U8(); err != nil {
			return nil, err
		}
		id, err := r.I16()
		if err != nil {
			return nil, err
		}
		kr.SoundID = rsrc.ID(id)
		kr.SoundType = rsrc.TypeSnd
		inst.KeyRegions = append(inst.KeyRegions, kr)
	}
	if inst.BaseNote, err = r.U8(); err != nil {
		return nil, err
	}
	useSampleRate, err := r.U8()
	if err != nil {
		return nil, err
	}
	inst.UseSampleRate = useSampleRate != 0
	constantPitch, err := r.U8()
	if err != nil {
		return nil, err
	}
	inst.ConstantPitch = constantPitch != 0
	return inst, nil
}

// Song is a decoded SONG resource (spec §4.10).
type Song struct {
	MIDIID                rsrc.ID
	TempoBias             uint16
	SemitoneShift         int8
	PercussionInstrument  uint8
	AllowProgramChange    bool
	InstrumentOverrides   map[uint16]uint16
}

// DecodeSONG parses a SONG resource: its fixed header fields followed
// by a count-prefixed table of {instrument, override-instrument} word
// pairs.
func DecodeSONG(data []byte) (*Song, error) {
	r := breader.New(data)
	s := &Song{InstrumentOverrides: make(map[uint16]uint16)}

	midiID, err := r.I16()
	if err != nil {
		return nil, err
	}
	s.MIDIID = rsrc.ID(midiID)
	if s.TempoBias, err = r.U16(); err != nil {
		return nil, err
	}
	if s.SemitoneShift, err = r.I8(); err != nil {
		return nil, err
	}
	if s.PercussionInstrument, err = r.U8(); err != nil {
		return nil, err
	}
	allowProgramChange, err := r.U8()
	if err != nil {
		return nil, err
	}
	s.AllowProgramChange = allowProgramChange != 0
	if _, err := r.U8(); err != nil { // reserved/padding
		return nil, err
	}

	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < count; i++ {
		instrument, err := r.U16()
		if err != nil {
			return nil, err
		}
		override, err := r.U16()
		if err != nil {
			return nil, err
		}
		s.InstrumentOverrides[instrument] = override
	}
	return s, nil
}
