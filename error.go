package rsrc

import (
	"fmt"
)

// OutOfRangeError indicates that a reader tried to read past the end of
// its range (spec §7).
type OutOfRangeError struct {
	Offset  int64
	Len     int64
	Bound   int64
	Context string
}

func (err *OutOfRangeError) Error() string {
	msg := fmt.Sprintf("out of range: offset %d, len %d exceeds bound %d", err.Offset, err.Len, err.Bound)
	if err.Context != "" {
		msg += " (" + err.Context + ")"
	}
	return msg
}

// BadSignatureError indicates that a magic-byte check failed.
type BadSignatureError struct {
	Expected uint32
	Found    uint32
	Offset   int64
}

func (err *BadSignatureError) Error() string {
	return fmt.Sprintf("bad signature at offset %d: expected %#08x, found %#08x", err.Offset, err.Expected, err.Found)
}

// UnsupportedVersionError indicates a container or sub-format version
// that is not recognized.
type UnsupportedVersionError struct {
	Format  string
	Version int
}

func (err *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported %s version %d", err.Format, err.Version)
}

// UnsupportedPICTOpcodeError indicates a PICT opcode that lies outside
// both the implemented set and the QuickDraw skip table.
type UnsupportedPICTOpcodeError struct {
	Opcode uint16
	Offset int64
}

func (err *UnsupportedPICTOpcodeError) Error() string {
	return fmt.Sprintf("unsupported PICT opcode %#04x at offset %d", err.Opcode, err.Offset)
}

// DecompressionFailedError is surfaced by the compressed-resource
// pipeline when none of the configured strategies can produce the
// resource's decompressed bytes.
type DecompressionFailedError struct {
	Reason string
}

func (err *DecompressionFailedError) Error() string {
	return "decompression failed: " + err.Reason
}

// MissingDependencyError indicates that a resource referenced another
// resource (e.g. a color icon's clut id) that is absent from the set.
type MissingDependencyError struct {
	Type         Type
	ID           ID
	ConsumerType Type
	ConsumerID   ID
}

func (err *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s %d (referenced by %s %d) not found in resource set",
		err.Type, err.ID, err.ConsumerType, err.ConsumerID)
}

// AddressInUseError indicates a MemoryArena operation that would
// overlap an already-allocated guest region: a fixed-address allocation
// landing on live memory, or a free of an address with no matching
// allocation.
type AddressInUseError struct {
	Addr    uint32
	Size    uint32
	Context string
}

func (err *AddressInUseError) Error() string {
	return fmt.Sprintf("arena address %#08x (size %d) %s", err.Addr, err.Size, err.Context)
}

// MalformedResourceError indicates an internal inconsistency in a
// resource body: a negative length, an impossible pixel format, or
// similar.
type MalformedResourceError struct {
	Kind    string
	Context string
}

func (err *MalformedResourceError) Error() string {
	msg := "malformed resource: " + err.Kind
	if err.Context != "" {
		msg += " (" + err.Context + ")"
	}
	return msg
}

// FormatError is returned by a ContainerParser when the byte stream does
// not match its expected layout. Offset and Context locate the first
// non-trivial mismatch; parsers never silently skip bytes.
type FormatError struct {
	Kind    string
	Offset  int64
	Context string
	Err     error
}

func (err *FormatError) Error() string {
	msg := fmt.Sprintf("%s at offset %d", err.Kind, err.Offset)
	if err.Context != "" {
		msg += ": " + err.Context
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// DecodeError names the type, id and decode step that failed to produce
// a per-resource failure, so that a corrupted resource never aborts a
// whole-container extraction (spec §7).
type DecodeError struct {
	Type Type
	ID   ID
	Step string
	Err  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %d failed at %s: %v", err.Type, err.ID, err.Step, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}
