package rsrc

// Resource is a single typed, numbered resource as stored in a
// container. Its identity is the pair (Type, ID); Data is opaque bytes,
// already decompressed if FlagCompressed was set and decompression has
// run (spec §3).
type Resource struct {
	Type  Type
	ID    ID
	Flags Flags
	Name  string
	Data  []byte
}

// key is the unique identity of a Resource within a ResourceSet.
type key struct {
	Type Type
	ID   ID
}

// Decompressor materializes the decompressed bytes of a resource whose
// FlagCompressed bit is set. ResourceSet.Get calls it lazily, at most
// once per resource, and caches the result. It is implemented by
// [rsrcdasm.dev/go/rsrc/compress].Dispatcher; the interface lives here,
// rather than a direct dependency in the other direction, so that
// ResourceSet stays free of a dependency on the decompression pipeline
// (spec §4.4's "C4 ... consults C5").
type Decompressor interface {
	Decompress(set *ResourceSet, res *Resource, flags DecompressionFlags) ([]byte, error)
}
