package template

import (
	"bytes"
	"testing"
)

func buildTMPLEntry(buf *bytes.Buffer, label, tag string) {
	buf.WriteByte(byte(len(label)))
	buf.WriteString(label)
	buf.WriteString(tag)
	if (1+len(label))%2 != 0 {
		buf.WriteByte(0)
	}
}

func TestDecodeSimpleTemplate(t *testing.T) {
	var buf bytes.Buffer
	buildTMPLEntry(&buf, "Version", "BWRD")
	buildTMPLEntry(&buf, "Name", "PSTR")

	fields, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Kind != KindInteger || fields[0].Width != 2 {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[1].Kind != KindPString {
		t.Errorf("field 1 = %+v", fields[1])
	}
}

func TestInterpretIntegerAndPString(t *testing.T) {
	var tmpl bytes.Buffer
	buildTMPLEntry(&tmpl, "Version", "BWRD")
	buildTMPLEntry(&tmpl, "Name", "PSTR")
	fields, err := Decode(tmpl.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	data := []byte{0x00, 0x2A, 0x03, 'C', 'a', 't'}
	nodes, err := Interpret(fields, data)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if nodes[0].Value.(int64) != 42 {
		t.Errorf("version = %v, want 42", nodes[0].Value)
	}
	if nodes[1].Value.(string) != "Cat" {
		t.Errorf("name = %v, want Cat", nodes[1].Value)
	}
}

func TestInterpretListOneCount(t *testing.T) {
	var tmpl bytes.Buffer
	buildTMPLEntry(&tmpl, "Count", "OCNT")
	buildTMPLEntry(&tmpl, "Items", "LSTC")
	buildTMPLEntry(&tmpl, "Value", "BWRD")
	buildTMPLEntry(&tmpl, "end", "LSTE")
	fields, err := Decode(tmpl.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(fields) != 2 || fields[1].Kind != KindListOneCount {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	// OCNT count is zero-based: a stored 1 means two items follow.
	data := []byte{0x00, 0x01, 0x00, 0x0A, 0x00, 0x14}
	nodes, err := Interpret(fields, data)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(nodes[1].Children) != 2 {
		t.Fatalf("got %d items, want 2", len(nodes[1].Children))
	}
	if nodes[1].Children[0].Children[0].Value.(int64) != 10 {
		t.Errorf("item 0 value = %v", nodes[1].Children[0].Children[0].Value)
	}
}

func TestInterpretBitfield(t *testing.T) {
	var tmpl bytes.Buffer
	buildTMPLEntry(&tmpl, "Flags", "BBIT")
	for i := 0; i < 8; i++ {
		buildTMPLEntry(&tmpl, "bit", "BBIT")
	}
	fields, err := Decode(tmpl.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	nodes, err := Interpret(fields, []byte{0b10000001})
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if nodes[0].Children[0].Value.(bool) != true {
		t.Errorf("bit 0 = %v, want true", nodes[0].Children[0].Value)
	}
	if nodes[0].Children[7].Value.(bool) != true {
		t.Errorf("bit 7 = %v, want true", nodes[0].Children[7].Value)
	}
	if nodes[0].Children[1].Value.(bool) != false {
		t.Errorf("bit 1 = %v, want false", nodes[0].Children[1].Value)
	}
}
