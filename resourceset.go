package rsrc

import (
	"golang.org/x/exp/slices"
)

// ResourceSet is an in-memory indexed collection of raw resources:
// (type, id) -> Resource, with a secondary name index and deferred
// per-resource decompression (spec §3, §4.3).
//
// A ResourceSet is not safe for concurrent use; concurrent Get calls
// that may trigger decompression must be serialized externally
// (spec §5).
type ResourceSet struct {
	byKey map[key]*Resource
	order []key // insertion order, for stable iteration before sorting

	// byName maps a resource name to every (type, id) registered under
	// that name, in insertion order. Lookup by name returns the first
	// match, matching spec §3's "first match in insertion order".
	byName map[string][]key
}

// NewResourceSet returns an empty ResourceSet.
func NewResourceSet() *ResourceSet {
	return &ResourceSet{
		byKey:  make(map[key]*Resource),
		byName: make(map[string][]key),
	}
}

// Add inserts a resource. A duplicate (type, id) key overwrites the
// previous entry; the name index is kept consistent.
func (s *ResourceSet) Add(res Resource) {
	k := key{res.Type, res.ID}
	if old, exists := s.byKey[k]; !exists {
		s.order = append(s.order, k)
	} else if old.Name != "" {
		names := s.byName[old.Name]
		for i, nk := range names {
			if nk == k {
				s.byName[old.Name] = append(names[:i:i], names[i+1:]...)
				break
			}
		}
	}
	cp := res
	s.byKey[k] = &cp
	if cp.Name != "" {
		s.byName[cp.Name] = append(s.byName[cp.Name], k)
	}
}

// Exists reports whether a resource with the given type and id is
// present.
func (s *ResourceSet) Exists(typ Type, id ID) bool {
	_, ok := s.byKey[key{typ, id}]
	return ok
}

// ExistsName reports whether a resource with the given type and name is
// present.
func (s *ResourceSet) ExistsName(typ Type, name string) bool {
	_, ok := s.findByName(typ, name)
	return ok
}

func (s *ResourceSet) findByName(typ Type, name string) (key, bool) {
	for _, k := range s.byName[name] {
		if k.Type == typ {
			return k, true
		}
	}
	return key{}, false
}

// Get returns the resource for (type, id). If it carries FlagCompressed
// and has not yet been decompressed, dec.Decompress is invoked and the
// resource is mutated in place exactly once: on success its Data is
// replaced and FlagDecompressed is set; on failure FlagDecompressionFailed
// is set and subsequent calls skip decompression (spec §4.3, §4.4).
//
// dec may be nil, in which case compressed resources are returned
// as-is with their compressed bytes in Data.
func (s *ResourceSet) Get(typ Type, id ID, dec Decompressor, flags DecompressionFlags) (*Resource, error) {
	res, ok := s.byKey[key{typ, id}]
	if !ok {
		return nil, &MissingDependencyError{Type: typ, ID: id}
	}
	return s.materialize(res, dec, flags)
}

// GetName returns the resource for (type, name), resolved through the
// name index.
func (s *ResourceSet) GetName(typ Type, name string, dec Decompressor, flags DecompressionFlags) (*Resource, error) {
	k, ok := s.findByName(typ, name)
	if !ok {
		return nil, &MissingDependencyError{Type: typ}
	}
	return s.materialize(s.byKey[k], dec, flags)
}

func (s *ResourceSet) materialize(res *Resource, dec Decompressor, flags DecompressionFlags) (*Resource, error) {
	if dec == nil || !res.Flags.Has(FlagCompressed) {
		return res, nil
	}
	if res.Flags.Has(FlagDecompressed) || res.Flags.Has(FlagDecompressionFailed) {
		return res, nil
	}
	data, err := dec.Decompress(s, res, flags)
	if err != nil {
		res.Flags |= FlagDecompressionFailed
		return res, err
	}
	res.Data = data
	res.Flags |= FlagDecompressed
	return res, nil
}

// AllOfType returns the ascending-sorted ids of every resource of the
// given type.
func (s *ResourceSet) AllOfType(typ Type) []ID {
	var ids []ID
	for k := range s.byKey {
		if k.Type == typ {
			ids = append(ids, k.ID)
		}
	}
	slices.SortFunc(ids, func(a, b ID) int { return int(a) - int(b) })
	return ids
}

// TypeID is a (type, id) pair, as returned by All.
type TypeID struct {
	Type Type
	ID   ID
}

// All returns every (type, id) pair in the set, ordered lexicographically
// by (type, id) (spec §5).
func (s *ResourceSet) All() []TypeID {
	pairs := make([]TypeID, 0, len(s.byKey))
	for k := range s.byKey {
		pairs = append(pairs, TypeID{k.Type, k.ID})
	}
	slices.SortFunc(pairs, func(a, b TypeID) int {
		if a.Type != b.Type {
			if a.Type < b.Type {
				return -1
			}
			return 1
		}
		return int(a.ID) - int(b.ID)
	})
	return pairs
}

// FindByID returns the first type (in the given priority order) under
// which a resource with the given id is registered.
func (s *ResourceSet) FindByID(id ID, typesInPriorityOrder []Type) (Type, bool) {
	for _, typ := range typesInPriorityOrder {
		if s.Exists(typ, id) {
			return typ, true
		}
	}
	return 0, false
}

// Len returns the number of resources in the set.
func (s *ResourceSet) Len() int {
	return len(s.byKey)
}
