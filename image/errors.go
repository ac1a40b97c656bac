package image

import "errors"

var errShortPattern = errors.New("quickdraw: pattern data shorter than 8 bytes")
