package sound

import (
	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/breader"
)

// soundHeaderEncoding names which of the three documented Sound
// Manager header shapes follows the command list (spec §4.10).
type soundHeaderEncoding uint8

const (
	encodingStandard   soundHeaderEncoding = 0x00
	encodingCompressed soundHeaderEncoding = 0xFE
	encodingExtended   soundHeaderEncoding = 0xFF
)

// SoundHeaderKind distinguishes the standard, extended, and compressed
// Sound Manager header shapes (spec §4.10).
type SoundHeaderKind int

const (
	SoundHeaderStandard SoundHeaderKind = iota
	SoundHeaderExtended
	SoundHeaderCompressed
)

// CompressionFormat names the compression codec a compressed sound
// header declares, identified by its 4-byte format tag.
type CompressionFormat uint32

const (
	CompressionNone  CompressionFormat = 0
	CompressionIMA4  CompressionFormat = 0x696D6134 // "ima4"
	CompressionMACE3 CompressionFormat = 0x4D414333 // "MAC3"
	CompressionMACE6 CompressionFormat = 0x4D414336 // "MAC6"
)

// Sound is a decoded sampled-sound resource (snd /csnd/esnd/ESnd/SMSD):
// the command-list header plus whichever Sound Manager header its
// sampled-sound command points to (spec §4.10).
type Sound struct {
	Format         uint16 // 1 or 2, per the snd resource's own format field
	Kind           SoundHeaderKind
	SampleRate     float64 // decoded from the 32-bit fixed-point wire field
	Channels       uint32  // 1 for standard headers, which carry no channel count
	Encode         uint8
	BaseFrequency  uint8
	Compression    CompressionFormat
	Data           []byte
}

// DecodeSnd parses a format-1 or format-2 snd/csnd/esnd/ESnd/SMSD
// resource: a data-format or reference-count list (ignored beyond its
// length, since this decoder only cares about the first sampled-sound
// command), a command list, and the Sound Manager header the first
// bufferCmd/soundCmd command's offset points to.
func DecodeSnd(data []byte) (*Sound, error) {
	r := breader.New(data)
	format, err := r.U16()
	if err != nil {
		return nil, err
	}

	switch format {
	case 1:
		numDataFormats, err := r.U16()
		if err != nil {
			return nil, err
		}
		for i := uint16(0); i < numDataFormats; i++ {
			if err := r.Skip(2); err != nil { // dataFormatID
				return nil, err
			}
			if err := r.Skip(4); err != nil { // 32-bit init option bits
				return nil, err
			}
		}
	case 2:
		if err := r.Skip(2); err != nil { // reference count
			return nil, err
		}
	default:
		return nil, &rsrc.UnsupportedVersionError{Format: "snd resource", Version: int(format)}
	}

	numCommands, err := r.U16()
	if err != nil {
		return nil, err
	}
	var headerOffset int64 = -1
	for i := uint16(0); i < numCommands; i++ {
		cmd, err := r.U16()
		if err != nil {
			return nil, err
		}
		if _, err := r.I16(); err != nil { // param1
			return nil, err
		}
		param2, err := r.U32()
		if err != nil {
			return nil, err
		}
		if headerOffset < 0 && (cmd&0x7FFF == 0x50 || cmd&0x7FFF == 0x51) { // soundCmd or bufferCmd
			headerOffset = int64(param2)
		}
	}
	if headerOffset < 0 || headerOffset >= int64(len(data)) {
		return nil, &rsrc.MalformedResourceError{Kind: "snd", Context: "no sampled-sound command found"}
	}

	return decodeSoundHeader(data[headerOffset:])
}

func decodeSoundHeader(data []byte) (*Sound, error) {
	r := breader.New(data)
	if err := r.Skip(4); err != nil { // samplePtr, always 0 for resource-resident data
		return nil, err
	}
	length, err := r.U32()
	if err != nil {
		return nil, err
	}
	sampleRateFixed, err := r.U32()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(8); err != nil { // loopStart, loopEnd
		return nil, err
	}
	encode, err := r.U8()
	if err != nil {
		return nil, err
	}
	baseFrequency, err := r.U8()
	if err != nil {
		return nil, err
	}

	s := &Sound{
		SampleRate:    float64(sampleRateFixed) / 65536.0,
		Encode:        encode,
		BaseFrequency: baseFrequency,
		Channels:      1,
	}

	switch soundHeaderEncoding(encode) {
	case encodingStandard:
		s.Kind = SoundHeaderStandard
		s.Data, err = r.Read(int64(length))
		if err != nil {
			return nil, err
		}

	case encodingExtended:
		s.Kind = SoundHeaderExtended
		channels, err := r.U32()
		if err != nil {
			return nil, err
		}
		s.Channels = channels
		numFrames, err := r.U32()
		if err != nil {
			return nil, err
		}
		if err := r.Skip(10); err != nil { // AIFF-compatible 80-bit extended sample rate
			return nil, err
		}
		if err := r.Skip(4 + 4 + 4); err != nil { // markerChunk, instrumentChunks, AESRecording
			return nil, err
		}
		sampleSize, err := r.U16()
		if err != nil {
			return nil, err
		}
		if err := r.Skip(2 * 4); err != nil { // futureUse1..4
			return nil, err
		}
		byteWidth := (int(sampleSize) + 7) / 8
		s.Data, err = r.Read(int64(numFrames) * int64(channels) * int64(byteWidth))
		if err != nil {
			return nil, err
		}

	case encodingCompressed:
		s.Kind = SoundHeaderCompressed
		channels, err := r.U32()
		if err != nil {
			return nil, err
		}
		s.Channels = channels
		if _, err := r.U32(); err != nil { // numFrames
			return nil, err
		}
		if err := r.Skip(10); err != nil { // AIFF-compatible extended sample rate
			return nil, err
		}
		if err := r.Skip(4); err != nil { // markerChunk
			return nil, err
		}
		formatTag, err := r.U32()
		if err != nil {
			return nil, err
		}
		s.Compression = CompressionFormat(formatTag)
		if err := r.Skip(4 + 4 + 4); err != nil { // futureUse2, stateVars handle, leftOverSamples
			return nil, err
		}
		if _, err := r.I16(); err != nil { // compressionID
			return nil, err
		}
		if _, err := r.U16(); err != nil { // packetSize
			return nil, err
		}
		if _, err := r.U16(); err != nil { // snthID
			return nil, err
		}
		if _, err := r.U16(); err != nil { // sampleSize
			return nil, err
		}
		s.Data, err = r.Read(r.Remaining())
		if err != nil {
			return nil, err
		}

	default:
		return nil, &rsrc.MalformedResourceError{Kind: "sound header", Context: "unrecognized encode byte"}
	}

	return s, nil
}
