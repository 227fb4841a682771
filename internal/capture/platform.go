package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

type platformBackend interface {
	ListWindows() ([]WindowInfo, error)
	CaptureArea(id uint32, area image.Rectangle) (*image.RGBA, error)
}

var backend = newBackend()

var (
	errNoWindows       = errors.New("no windows available")
	errWindowNotFound  = errors.New("window not found")
	errEmptyGeometry   = errors.New("window has empty geometry")
	errRegionOutOfView = errors.New("requested region outside window")
)

// WindowInfo describes a top-level window known to the window manager.
type WindowInfo struct {
	ID    uint32
	Title string
	// Rect is the window's client area in root coordinates.
	Rect image.Rectangle
}

// ListWindows retrieves the managed top-level windows, topmost first.
func ListWindows() ([]WindowInfo, error) {
	return backend.ListWindows()
}

// FindWindow picks the window whose title equals title, ignoring case. When
// no title matches exactly the first title containing it is used.
func FindWindow(windows []WindowInfo, title string) (WindowInfo, error) {
	if len(windows) == 0 {
		return WindowInfo{}, errNoWindows
	}
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return WindowInfo{}, fmt.Errorf("window title cannot be empty")
	}
	for _, win := range windows {
		if strings.ToLower(strings.TrimSpace(win.Title)) == needle {
			return win, nil
		}
	}
	for _, win := range windows {
		if strings.Contains(strings.ToLower(win.Title), needle) {
			return win, nil
		}
	}
	return WindowInfo{}, fmt.Errorf("%w: %q", errWindowNotFound, title)
}
