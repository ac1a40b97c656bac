package quickdraw

import "testing"

func TestUnpackBitsLiteralAndRepeat(t *testing.T) {
	// header 0xFE (-2) -> repeat next byte 3 times: "AAA"
	// header 0x03       -> literal next 4 bytes: "AAAA"
	// header 0x80       -> no-op
	// header 0xFE (-2)  -> repeat next byte 3 times: "BBB"
	src := []byte{0xFE, 'A', 0x03, 'A', 'A', 'A', 'A', 0x80, 0xFE, 'B'}
	got, err := UnpackBits(src, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := "AAAAAAABBB"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPackBitsRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{1, 2, 3, 4, 5},
		{9, 9, 9, 9, 9, 9, 9, 9},
		{1, 1, 1, 2, 3, 4, 4, 4, 4, 5, 6, 7},
	}
	for _, c := range cases {
		packed := PackBits(c)
		got, err := UnpackBits(packed, len(c))
		if err != nil {
			t.Fatalf("UnpackBits(PackBits(%v)) error: %v", c, err)
		}
		if string(got) != string(c) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, c)
		}
	}
}

func TestUnpackBitsTruncatedRunErrors(t *testing.T) {
	_, err := UnpackBits([]byte{0x03, 'A'}, 4)
	if err == nil {
		t.Fatal("expected error for truncated literal run")
	}
}
