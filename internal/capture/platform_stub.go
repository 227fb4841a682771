//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) ListWindows() ([]WindowInfo, error) {
	return nil, fmt.Errorf("window listing is not supported on this platform")
}

func (unsupportedBackend) CaptureArea(uint32, image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}
