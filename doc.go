// Package rsrc decodes Classic Mac OS resource-bearing containers into
// their constituent typed resources.
//
// A container (resource fork, Mohawk archive, HIRF stream, MacBinary
// file, ...) is parsed by one of the container parsers in
// [rsrcdasm.dev/go/rsrc/container] into a [ResourceSet]: an indexed
// collection of [Resource] values keyed by (type, id). Per-resource-type
// decoders in the sibling packages ([rsrcdasm.dev/go/rsrc/image],
// [rsrcdasm.dev/go/rsrc/font], [rsrcdasm.dev/go/rsrc/text],
// [rsrcdasm.dev/go/rsrc/code], [rsrcdasm.dev/go/rsrc/template] and
// [rsrcdasm.dev/go/rsrc/sound]) turn a resource's raw bytes into a
// portable, modern representation.
//
// The package is read-only: it reconstructs historical artifacts, it
// does not produce them. There is no resource-fork serializer; the
// container tests assemble their resource-fork bytes by hand.
package rsrc
