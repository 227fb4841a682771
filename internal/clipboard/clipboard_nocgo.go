//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"image"
)

var errCGODisabled = errors.New("clipboard operations require cgo support")

func ensureInit() error {
	initOnce.Do(func() {
		initErr = errNoDisplay
		if haveDisplay() {
			initErr = errCGODisabled
		}
	})
	return initErr
}

// WriteImage always fails: the clipboard backend needs cgo.
func WriteImage(image.Image) error {
	return ensureInit()
}
