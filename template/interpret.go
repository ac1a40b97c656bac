package template

import (
	"fmt"

	"rsrcdasm.dev/go/rsrc/breader"
)

// Node is one decoded value in a template dump: a leaf (Value set,
// Children nil) or a group (Children set, Value nil) — a struct-like
// sequence of sibling fields or a repeated list.
type Node struct {
	Label    string
	Value    any
	Children []Node
}

// Interpret runs fields against data, producing one Node per top-level
// field in order (spec §4.9: "runs the template against a binary
// resource and emits a nested human-readable structure").
func Interpret(fields []Field, data []byte) ([]Node, error) {
	r := breader.New(data)
	return interpretSeq(r, fields)
}

func interpretSeq(r *breader.Reader, fields []Field) ([]Node, error) {
	var nodes []Node
	var lastInt int64
	for _, f := range fields {
		node, n, err := interpretOne(r, f, lastInt)
		if err != nil {
			return nil, err
		}
		if f.Kind == KindInteger {
			lastInt = n
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func interpretOne(r *breader.Reader, f Field, precedingCount int64) (Node, int64, error) {
	switch f.Kind {
	case KindVoid:
		return Node{Label: f.Label}, 0, nil

	case KindInteger:
		v, err := readInt(r, f.Width, f.Signed)
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: v}, v, nil

	case KindAlignment:
		pos := r.Pos()
		pad := int64(f.Width) - pos%int64(f.Width)
		if pad == int64(f.Width) {
			pad = 0
		}
		if err := r.Skip(pad); err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label}, 0, nil

	case KindZeroFill:
		if err := r.Skip(int64(f.Width)); err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: int64(0)}, 0, nil

	case KindEOFString:
		b, err := r.Read(r.Remaining())
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: fmt.Sprintf("%x", b)}, 0, nil

	case KindFixedPoint:
		raw, err := readInt(r, f.Width, true)
		if err != nil {
			return Node{}, 0, err
		}
		half := f.Width * 8 / 2
		value := float64(raw) / float64(int64(1)<<uint(half))
		return Node{Label: f.Label, Value: value}, 0, nil

	case KindPoint2D:
		y, err := readInt(r, f.Width, true)
		if err != nil {
			return Node{}, 0, err
		}
		x, err := readInt(r, f.Width, true)
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: [2]int64{x, y}}, 0, nil

	case KindString:
		b, err := r.Read(int64(f.Width))
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: string(b)}, 0, nil

	case KindPString:
		n, err := readInt(r, f.Width, false)
		if err != nil {
			return Node{}, 0, err
		}
		b, err := r.Read(n)
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: string(b)}, 0, nil

	case KindFixedPString:
		b, err := r.Read(int64(f.Width))
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: string(b)}, 0, nil

	case KindCString:
		var out []byte
		for {
			b, err := r.U8()
			if err != nil {
				return Node{}, 0, err
			}
			if b == 0 {
				break
			}
			out = append(out, b)
		}
		return Node{Label: f.Label, Value: string(out)}, 0, nil

	case KindBool:
		v, err := readInt(r, f.Width, false)
		if err != nil {
			return Node{}, 0, err
		}
		return Node{Label: f.Label, Value: v != 0}, 0, nil

	case KindBitfield:
		b, err := r.U8()
		if err != nil {
			return Node{}, 0, err
		}
		children := make([]Node, len(f.Children))
		for i, c := range f.Children {
			children[i] = Node{Label: c.Label, Value: b&(1<<uint(7-i)) != 0}
		}
		return Node{Label: f.Label, Children: children}, 0, nil

	case KindRect:
		labels := [4]string{"top", "left", "bottom", "right"}
		children := make([]Node, 4)
		for i, lbl := range labels {
			v, err := readInt(r, f.Width, true)
			if err != nil {
				return Node{}, 0, err
			}
			children[i] = Node{Label: lbl, Value: v}
		}
		return Node{Label: f.Label, Children: children}, 0, nil

	case KindColor:
		labels := [3]string{"red", "green", "blue"}
		children := make([]Node, 3)
		for i, lbl := range labels {
			v, err := readInt(r, f.Width, false)
			if err != nil {
				return Node{}, 0, err
			}
			children[i] = Node{Label: lbl, Value: v}
		}
		return Node{Label: f.Label, Children: children}, 0, nil

	case KindListZeroByte:
		return interpretListUntilZero(r, f)

	case KindListZeroCount:
		return interpretListFixedCount(r, f, precedingCount)

	case KindListOneCount:
		return interpretListFixedCount(r, f, precedingCount+1)

	case KindListEOF:
		return interpretListUntilEOF(r, f)

	default:
		return Node{}, 0, fmt.Errorf("template: unhandled field kind %d", f.Kind)
	}
}

func interpretListFixedCount(r *breader.Reader, f Field, count int64) (Node, int64, error) {
	var items []Node
	for i := int64(0); i < count; i++ {
		itemFields, err := interpretSeq(r, f.Children)
		if err != nil {
			return Node{}, 0, err
		}
		items = append(items, Node{Label: fmt.Sprintf("[%d]", i), Children: itemFields})
	}
	return Node{Label: f.Label, Children: items}, 0, nil
}

func interpretListUntilEOF(r *breader.Reader, f Field) (Node, int64, error) {
	var items []Node
	for i := 0; !r.EOF(); i++ {
		itemFields, err := interpretSeq(r, f.Children)
		if err != nil {
			return Node{}, 0, err
		}
		items = append(items, Node{Label: fmt.Sprintf("[%d]", i), Children: itemFields})
	}
	return Node{Label: f.Label, Children: items}, 0, nil
}

// interpretListUntilZero reads item groups until one is entirely made
// of zero-valued leaf fields, matching classic ResEdit's LSTZ sentinel
// convention, or until EOF.
func interpretListUntilZero(r *breader.Reader, f Field) (Node, int64, error) {
	var items []Node
	for i := 0; !r.EOF(); i++ {
		itemFields, err := interpretSeq(r, f.Children)
		if err != nil {
			return Node{}, 0, err
		}
		if allZero(itemFields) {
			break
		}
		items = append(items, Node{Label: fmt.Sprintf("[%d]", i), Children: itemFields})
	}
	return Node{Label: f.Label, Children: items}, 0, nil
}

func allZero(nodes []Node) bool {
	for _, n := range nodes {
		switch v := n.Value.(type) {
		case int64:
			if v != 0 {
				return false
			}
		case bool:
			if v {
				return false
			}
		case string:
			if v != "" {
				return false
			}
		case nil:
			if len(n.Children) > 0 && !allZero(n.Children) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func readInt(r *breader.Reader, width int, signed bool) (int64, error) {
	switch width {
	case 1:
		if signed {
			v, err := r.I8()
			return int64(v), err
		}
		v, err := r.U8()
		return int64(v), err
	case 2:
		if signed {
			v, err := r.I16()
			return int64(v), err
		}
		v, err := r.U16()
		return int64(v), err
	case 4:
		if signed {
			v, err := r.I32()
			return int64(v), err
		}
		v, err := r.U32()
		return int64(v), err
	default:
		v, err := r.U8()
		return int64(v), err
	}
}
