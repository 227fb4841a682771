//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard image operations are not supported on this platform")

// Available always reports errUnsupported.
func Available() error { return errUnsupported }

// WriteImage always reports errUnsupported.
func WriteImage(image.Image) error { return errUnsupported }
