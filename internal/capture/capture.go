// Package capture reads back the pixels of an on-screen window region.
package capture

import (
	"fmt"
	"image"
)

// CaptureWindowArea grabs the part of the window titled title that lies in
// area, given in window-relative coordinates. The area is clipped to the
// window; a fully clipped area is an error.
func CaptureWindowArea(title string, area image.Rectangle) (*image.RGBA, error) {
	windows, err := ListWindows()
	if err != nil {
		return nil, fmt.Errorf("capture window %q: %w", title, err)
	}
	info, err := FindWindow(windows, title)
	if err != nil {
		return nil, err
	}
	if info.Rect.Empty() {
		return nil, errEmptyGeometry
	}
	local, err := clipArea(area, info.Rect.Size())
	if err != nil {
		return nil, err
	}
	img, err := backend.CaptureArea(info.ID, local)
	if err != nil {
		return nil, fmt.Errorf("capture window %q: %w", info.Title, err)
	}
	return img, nil
}

func clipArea(area image.Rectangle, size image.Point) (image.Rectangle, error) {
	r := area.Intersect(image.Rectangle{Max: size})
	if r.Empty() {
		return image.Rectangle{}, errRegionOutOfView
	}
	return r, nil
}
