// Package compress implements the compressed-resource decompression
// dispatch: detecting the compressed-resource header, selecting a
// built-in system decompressor, or handing off to a decompressor
// embedded as another dcmp/ncmp resource (spec §4.4).
package compress

import (
	"encoding/binary"

	"rsrcdasm.dev/go/rsrc"
)

// compressedMagic is the little-endian constant every compressed
// resource body begins with (spec §4.4).
const compressedMagic = 0xA89F6572

// Header is the parsed compressed-resource header that precedes the
// actual compressed payload.
type Header struct {
	DecompressedSize uint32
	WorkingBufferLen uint16
	DcmpID           int16 // 0-3 select a system decompressor; any other value is a custom dcmp/ncmp resource id
	Extra            uint16
	PayloadOffset    int // byte offset of the compressed payload within the resource
}

// IsCompressed reports whether res carries the compressed attribute
// flag (spec §4.4's is_compressed).
func IsCompressed(res *rsrc.Resource) bool {
	return res.Flags.Has(rsrc.FlagCompressed)
}

// ParseHeader parses the fixed fields common to every compressed
// resource (spec §4.4): a 4-byte magic, the decompressed size, a
// working-buffer-length field, the dcmp selector, and an extra word.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 14 {
		return Header{}, &rsrc.FormatError{Kind: "compressed resource", Offset: 0, Context: "header shorter than 14 bytes"}
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != compressedMagic {
		return Header{}, &rsrc.BadSignatureError{Expected: compressedMagic, Found: magic, Offset: 0}
	}
	return Header{
		DecompressedSize: binary.BigEndian.Uint32(data[4:8]),
		WorkingBufferLen: binary.BigEndian.Uint16(data[8:10]),
		DcmpID:           int16(binary.BigEndian.Uint16(data[10:12])),
		Extra:            binary.BigEndian.Uint16(data[12:14]),
		PayloadOffset:    14,
	}, nil
}

// SystemDecompressor is a built-in decompression algorithm, indexed
// 0-3, mirroring classic Mac OS's system dcmp/ncmp resources (spec
// §4.4).
type SystemDecompressor func(header Header, payload []byte) ([]byte, error)

// CodeResourceRunner executes a dcmp/ncmp resource's code against a
// compressed payload, standing in for the 68K/PPC CPU-emulator
// collaborator this module's decompression pipeline depends on for
// custom decompressors (spec §1 Non-goals: "CPU emulators ... specified
// here only as 'external collaborator'"). A Dispatcher built without
// one can still run the built-in system decompressors 0 and 1.
type CodeResourceRunner interface {
	RunDecompressor(code *rsrc.Resource, header Header, payload []byte) ([]byte, error)
}

// Dispatcher implements rsrc.Decompressor: it parses the compressed
// header, then either runs a registered SystemDecompressor or loads a
// custom dcmp/ncmp resource and hands it to a CodeResourceRunner (spec
// §4.4).
type Dispatcher struct {
	System map[int16]SystemDecompressor
	Runner CodeResourceRunner
}

// NewDispatcher returns a Dispatcher with the two documented
// non-emulated system decompressors registered (0: store, 1: PackBits
// over the whole payload) and no CodeResourceRunner. Any custom
// dcmp/ncmp id requires a Runner. System indices 2 and 3 have no
// built-in implementation and are not handed to the Runner either:
// Decompress returns a DecompressionFailedError for them.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		System: map[int16]SystemDecompressor{
			0: decompressStore,
			1: decompressPackBits,
		},
	}
}

// Decompress implements rsrc.Decompressor.
func (d *Dispatcher) Decompress(set *rsrc.ResourceSet, res *rsrc.Resource, flags rsrc.DecompressionFlags) ([]byte, error) {
	if flags.Has(rsrc.DecompressionDisabled) {
		return nil, &rsrc.DecompressionFailedError{Reason: "decompression disabled by caller flags"}
	}

	header, err := ParseHeader(res.Data)
	if err != nil {
		return nil, err
	}
	payload := res.Data[header.PayloadOffset:]

	if header.DcmpID >= 0 && header.DcmpID <= 3 {
		if !flags.Has(rsrc.DecompressionSkipSystemDcmp) {
			if fn, ok := d.System[header.DcmpID]; ok {
				out, err := fn(header, payload)
				if err != nil {
					return nil, &rsrc.DecompressionFailedError{Reason: err.Error()}
				}
				return out, nil
			}
		}
		if d.Runner == nil || flags.Has(rsrc.DecompressionSkipInternal) {
			return nil, &rsrc.DecompressionFailedError{Reason: "no system decompressor registered and no CPU-emulator collaborator available"}
		}
		return nil, &rsrc.DecompressionFailedError{Reason: "system decompressor is not built in and is not run through the CPU-emulator collaborator"}
	}

	// Negative or out-of-range DcmpID selects a custom dcmp/ncmp resource
	// by id, loaded from the same ResourceSet (spec §4.4).
	if flags.Has(rsrc.DecompressionSkipFileDcmp) && flags.Has(rsrc.DecompressionSkipFileNcmp) {
		return nil, &rsrc.DecompressionFailedError{Reason: "custom dcmp/ncmp lookup disabled by caller flags"}
	}
	if d.Runner == nil {
		return nil, &rsrc.DecompressionFailedError{Reason: "custom decompressor requires a CPU-emulator collaborator, none configured"}
	}

	dcmpID := rsrc.ID(header.DcmpID)
	var code *rsrc.Resource
	if !flags.Has(rsrc.DecompressionSkipFileDcmp) {
		code, err = set.Get(rsrc.TypeDcmp, dcmpID, nil, flags)
	}
	if code == nil && !flags.Has(rsrc.DecompressionSkipFileNcmp) {
		code, err = set.Get(rsrc.TypeNcmp, dcmpID, nil, flags)
	}
	if code == nil {
		return nil, &rsrc.MissingDependencyError{Type: rsrc.TypeDcmp, ID: dcmpID, ConsumerType: res.Type, ConsumerID: res.ID}
	}

	out, runErr := d.Runner.RunDecompressor(code, header, payload)
	if runErr != nil {
		return nil, &rsrc.DecompressionFailedError{Reason: runErr.Error()}
	}
	return out, nil
}
