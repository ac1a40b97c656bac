package rsrc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResourceSetAddOverwritesDuplicateKey(t *testing.T) {
	s := NewResourceSet()
	s.Add(Resource{Type: TypeSTR, ID: 128, Data: []byte("first")})
	s.Add(Resource{Type: TypeSTR, ID: 128, Data: []byte("second")})

	res, err := s.Get(TypeSTR, 128, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Data) != "second" {
		t.Fatalf("got %q, want %q", res.Data, "second")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestResourceSetAllIsSortedByTypeThenID(t *testing.T) {
	s := NewResourceSet()
	s.Add(Resource{Type: TypeSTR, ID: 5})
	s.Add(Resource{Type: TypeSTR, ID: 1})
	s.Add(Resource{Type: TypePICT, ID: 128})

	got := s.All()
	want := []TypeID{
		{TypePICT, 128},
		{TypeSTR, 1},
		{TypeSTR, 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceSetGetMissingIsMissingDependency(t *testing.T) {
	s := NewResourceSet()
	_, err := s.Get(TypePICT, 1, nil, 0)
	var target *MissingDependencyError
	if !errors.As(err, &target) {
		t.Fatalf("got %T, want *MissingDependencyError", err)
	}
}

func TestResourceSetNameLookupReturnsFirstInsertion(t *testing.T) {
	s := NewResourceSet()
	s.Add(Resource{Type: TypeSTR, ID: 1, Name: "Hello", Data: []byte("a")})
	s.Add(Resource{Type: TypeSTR, ID: 2, Name: "Hello", Data: []byte("b")})

	res, err := s.GetName(TypeSTR, "Hello", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Data) != "a" {
		t.Fatalf("got %q, want %q", res.Data, "a")
	}
}
