package sound

import (
	"bytes"
	"encoding/binary"
	"testing"

	"rsrcdasm.dev/go/rsrc"
)

func TestDecodeSizeFlagsAndSizes(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0b1010_0000_0000_0000)) // SaveScreen + DisableOption
	binary.Write(&buf, binary.BigEndian, uint32(0x00020000))
	binary.Write(&buf, binary.BigEndian, uint32(0x00010000))

	s, err := DecodeSize(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSize: %v", err)
	}
	if !s.SaveScreen {
		t.Errorf("expected SaveScreen set")
	}
	if s.AcceptSuspendEvents {
		t.Errorf("expected AcceptSuspendEvents unset")
	}
	if !s.DisableOption {
		t.Errorf("expected DisableOption set")
	}
	if s.PreferredSize != 0x00020000 || s.MinSize != 0x00010000 {
		t.Errorf("sizes = %+v", s)
	}
}

func TestDecodeVers(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x01, 0x20, 0x80, 0x00})
	binary.Write(&buf, binary.BigEndian, uint16(0))
	buf.WriteByte(4)
	buf.WriteString("1.2a")
	buf.WriteByte(0)

	v, err := DecodeVers(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeVers: %v", err)
	}
	if v.MajorVersion != 0x01 || v.MinorVersion != 0x20 {
		t.Errorf("version = %+v", v)
	}
	if v.VersionNumber != "1.2a" {
		t.Errorf("version number = %q", v.VersionNumber)
	}
	if v.VersionMessage != "" {
		t.Errorf("version message = %q, want empty", v.VersionMessage)
	}
}

func TestDecodeROvN(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(0x0700))
	buf.WriteString("snd ")
	binary.Write(&buf, binary.BigEndian, int16(128))

	out, err := DecodeROvN(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeROvN: %v", err)
	}
	if out.ROMVersion != 0x0700 {
		t.Errorf("rom version = %#x", out.ROMVersion)
	}
	if len(out.Overrides) != 1 || out.Overrides[0].Type != rsrc.TypeSnd || out.Overrides[0].ID != 128 {
		t.Errorf("overrides = %+v", out.Overrides)
	}
}

func TestDecodeINSTKeyRegions(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(1))
	buf.WriteByte(0)
	buf.WriteByte(127)
	buf.WriteByte(60)
	binary.Write(&buf, binary.BigEndian, int16(128))
	buf.WriteByte(60) // base note
	buf.WriteByte(1)  // use sample rate
	buf.WriteByte(0)  // constant pitch

	inst, err := DecodeINST(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeINST: %v", err)
	}
	if len(inst.KeyRegions) != 1 || inst.KeyRegions[0].SoundID != 128 {
		t.Fatalf("key regions = %+v", inst.KeyRegions)
	}
	if !inst.UseSampleRate || inst.ConstantPitch {
		t.Errorf("flags = %+v", inst)
	}
}

func TestDecodeSongInstrumentOverrides(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, int16(256)) // midi id
	binary.Write(&buf, binary.BigEndian, uint16(16384))
	buf.WriteByte(0)    // semitone shift
	buf.WriteByte(0)    // percussion instrument
	buf.WriteByte(1)    // allow program change
	buf.WriteByte(0)    // padding
	binary.Write(&buf, binary.BigEndian, uint16(1))
	binary.Write(&buf, binary.BigEndian, uint16(5))
	binary.Write(&buf, binary.BigEndian, uint16(9))

	song, err := DecodeSONG(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSONG: %v", err)
	}
	if song.MIDIID != 256 || !song.AllowProgramChange {
		t.Errorf("song = %+v", song)
	}
	if song.InstrumentOverrides[5] != 9 {
		t.Errorf("overrides = %+v", song.InstrumentOverrides)
	}
}

func buildFormat1Snd(t *testing.T, header []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(1)) // format
	binary.Write(&buf, binary.BigEndian, uint16(0)) // numDataFormats
	binary.Write(&buf, binary.BigEndian, uint16(1)) // numCommands
	binary.Write(&buf, binary.BigEndian, uint16(0x8051))
	binary.Write(&buf, binary.BigEndian, int16(0))
	headerOffset := uint32(buf.Len() + 4)
	binary.Write(&buf, binary.BigEndian, headerOffset)
	buf.Write(header)
	return buf.Bytes()
}

func TestDecodeSndStandardHeader(t *testing.T) {
	var header bytes.Buffer
	binary.Write(&header, binary.BigEndian, uint32(0))     // samplePtr
	binary.Write(&header, binary.BigEndian, uint32(4))     // length
	binary.Write(&header, binary.BigEndian, uint32(22050<<16)) // sample rate fixed point
	binary.Write(&header, binary.BigEndian, uint32(0))     // loopStart
	binary.Write(&header, binary.BigEndian, uint32(0))     // loopEnd
	header.WriteByte(0x00)                                 // encode: standard
	header.WriteByte(60)                                   // base frequency
	header.Write([]byte{1, 2, 3, 4})

	data := buildFormat1Snd(t, header.Bytes())
	snd, err := DecodeSnd(data)
	if err != nil {
		t.Fatalf("DecodeSnd: %v", err)
	}
	if snd.Kind != SoundHeaderStandard {
		t.Fatalf("kind = %v, want standard", snd.Kind)
	}
	if snd.SampleRate != 22050 {
		t.Errorf("sample rate = %v, want 22050", snd.SampleRate)
	}
	if !bytes.Equal(snd.Data, []byte{1, 2, 3, 4}) {
		t.Errorf("data = %v", snd.Data)
	}
}

func TestDecodeMIDIStreamXORRoundTrip(t *testing.T) {
	plain := []byte("MThd\x00\x00\x00\x06")
	enc := DecodeMIDIStream(plain, true)
	dec := DecodeMIDIStream(enc.Data, true)
	if !bytes.Equal(dec.Data, plain) {
		t.Errorf("round trip = %v, want %v", dec.Data, plain)
	}

	unenc := DecodeMIDIStream(plain, false)
	if !bytes.Equal(unenc.Data, plain) {
		t.Errorf("unencrypted pass-through changed data")
	}
}
