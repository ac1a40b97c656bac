package text

import (
	"encoding/binary"
	"bytes"
	"testing"
)

func TestDecodeSTR(t *testing.T) {
	data := append([]byte{5}, []byte("Hello")...)
	s, err := DecodeSTR(data)
	if err != nil {
		t.Fatalf("DecodeSTR: %v", err)
	}
	if s != "Hello" {
		t.Errorf("got %q, want Hello", s)
	}
}

func TestDecodeSTRListCount(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(2))
	buf.WriteByte(3)
	buf.WriteString("abc")
	buf.WriteByte(2)
	buf.WriteString("de")

	list, err := DecodeSTRList(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSTRList: %v", err)
	}
	if len(list) != 2 || list[0] != "abc" || list[1] != "de" {
		t.Fatalf("got %v", list)
	}
}

func TestMacRomanHighByteConversion(t *testing.T) {
	// 0x8E is Mac-Roman for 'é'.
	s, err := MacRomanToUTF8([]byte{0x41, 0x8E})
	if err != nil {
		t.Fatalf("MacRomanToUTF8: %v", err)
	}
	if s != "Aé" {
		t.Errorf("got %q, want Aé", s)
	}
}

func TestPairTextAndStylSlicesRuns(t *testing.T) {
	runs := []StyleRun{
		{StartOffset: 0, Style: StyleBold},
		{StartOffset: 3, Style: StyleItalic},
	}
	st, err := PairTextAndStyl([]byte("fooBAR"), runs)
	if err != nil {
		t.Fatalf("PairTextAndStyl: %v", err)
	}
	if len(st.Runs) != 2 || st.Runs[0].Text != "foo" || st.Runs[1].Text != "BAR" {
		t.Fatalf("got %+v", st.Runs)
	}
	if !st.Runs[0].Style.Has(StyleBold) || !st.Runs[1].Style.Has(StyleItalic) {
		t.Fatalf("style flags not preserved")
	}
}
