package container

import (
	"rsrcdasm.dev/go/rsrc"
)

// ParseAny tries every ContainerParser with a reliable magic, in the
// order a typical archaeological tool would: formats with strong magics
// first, MacBinary (whose zero-flag check is weaker) before falling
// back to a bare resource fork, which has no magic at all and so is
// always the last resort (spec §4.2).
func ParseAny(data []byte) (*rsrc.ResourceSet, error) {
	switch {
	case SniffMohawk(data):
		return TryParseMohawk(data)
	case SniffHIRF(data):
		return TryParseHIRF(data)
	case SniffAppleSingle(data):
		return TryParseAppleSingle(data)
	case SniffAppleDouble(data):
		return TryParseAppleDouble(data)
	case SniffMacBinary(data):
		if set, err := TryParseMacBinary(data); err == nil {
			return set, nil
		}
	}
	return TryParseResourceFork(data)
}
