//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func connect() (*xgb.Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		if runningOnWayland() {
			return nil, fmt.Errorf("connect X server (wayland session, set save_source = surface): %w", err)
		}
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	return conn, nil
}

func (x11Backend) ListWindows() ([]WindowInfo, error) {
	conn, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}

	windows, err := fetchWindows(conn, screen.Root)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, errNoWindows
	}
	return windows, nil
}

func (x11Backend) CaptureArea(id uint32, area image.Rectangle) (*image.RGBA, error) {
	conn, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	if area.Empty() {
		return nil, errEmptyGeometry
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(id),
		int16(area.Min.X), int16(area.Min.Y), uint16(area.Dx()), uint16(area.Dy()), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("window pixels: %w", err)
	}
	return xImageToRGBA(setup.PixmapFormats, reply, area.Dx(), area.Dy())
}

// fetchWindows lists _NET_CLIENT_LIST_STACKING (or _NET_CLIENT_LIST when the
// window manager lacks stacking order), topmost window first.
func fetchWindows(conn *xgb.Conn, root xproto.Window) ([]WindowInfo, error) {
	ids, err := readWindowList(conn, root, "_NET_CLIENT_LIST_STACKING")
	if err != nil || len(ids) == 0 {
		ids, err = readWindowList(conn, root, "_NET_CLIENT_LIST")
		if err != nil {
			return nil, err
		}
	}

	windows := make([]WindowInfo, 0, len(ids))
	for idx := len(ids) - 1; idx >= 0; idx-- {
		info, err := describeWindow(conn, root, ids[idx])
		if err != nil {
			continue
		}
		windows = append(windows, info)
	}
	return windows, nil
}

func readWindowList(conn *xgb.Conn, root xproto.Window, name string) ([]xproto.Window, error) {
	atom, err := internAtom(conn, name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if reply.Format != 32 {
		return nil, nil
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for idx := 0; idx < int(reply.ValueLen); idx++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[idx*4:])))
	}
	return ids, nil
}

func describeWindow(conn *xgb.Conn, root xproto.Window, win xproto.Window) (WindowInfo, error) {
	title := readUTF8Property(conn, win, "_NET_WM_NAME")
	if title == "" {
		title = readStringProperty(conn, win, "WM_NAME")
	}
	rect, err := windowRect(conn, root, win)
	if err != nil {
		return WindowInfo{}, err
	}
	return WindowInfo{ID: uint32(win), Title: title, Rect: rect}, nil
}

func windowRect(conn *xgb.Conn, root xproto.Window, win xproto.Window) (image.Rectangle, error) {
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(trans.DstX), int(trans.DstY)
	return image.Rect(x, y, x+int(geo.Width), y+int(geo.Height)), nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func readUTF8Property(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	utf8StringAtom, err := internAtom(conn, "UTF8_STRING")
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, utf8StringAtom, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

func readStringProperty(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}
