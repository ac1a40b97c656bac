package sound

import (
	"rsrcdasm.dev/go/rsrc/breader"
)

// Version is a decoded vers resource (spec §4.10).
type Version struct {
	MajorVersion          uint8 // packed BCD, e.g. 0x01 for "1"
	MinorVersion          uint8 // packed BCD, high nibble major-minor, low nibble bugfix
	DevelopmentStage      uint8
	PrereleaseVersionLevel uint8
	RegionCode            uint16
	VersionNumber         string
	VersionMessage        string
}

// DecodeVers parses a vers resource.
func DecodeVers(data []byte) (*Version, error) {
	r := breader.New(data)
	v := &Version{}
	var err error
	if v.MajorVersion, err = r.U8(); err != nil {
		return nil, err
	}
	if v.MinorVersion, err = r.U8(); err != nil {
		return nil, err
	}
	if v.DevelopmentStage, err = r.U8(); err != nil {
		return nil, err
	}
	if v.PrereleaseVersionLevel, err = r.U8(); err != nil {
		return nil, err
	}
	if v.RegionCode, err = r.U16(); err != nil {
		return nil, err
	}
	if v.VersionNumber, err = r.PString(); err != nil {
		return nil, err
	}
	if v.VersionMessage, err = r.PString(); err != nil {
		return nil, err
	}
	return v, nil
}
