package notify

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/drawall/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func captureNotifications(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	original := platformNotify
	platformNotify = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { platformNotify = original })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Save("out.jpg")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("out.jpg")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %+v", *got)
	}
}

func TestSaveNotification(t *testing.T) {
	got := captureNotifications(t)
	path := filepath.Join(t.TempDir(), "canvas_image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 300, 300))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != "DraWall" || s.body != "Saved "+path {
		t.Fatalf("unexpected notification %+v", s)
	}
	if s.opts.IconPath == "" || s.opts.IconPath == path || !s.iconExisted {
		t.Fatalf("expected a thumbnail icon, got %+v", s)
	}
}

func TestSaveNotificationWithoutThumbnail(t *testing.T) {
	got := captureNotifications(t)
	path := filepath.Join(t.TempDir(), "drawing.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.3"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 || (*got)[0].opts.IconPath != "" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestCopyNotificationThumbnail(t *testing.T) {
	got := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 400, 200)))
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied drawing to clipboard" {
		t.Fatalf("body = %q", s.body)
	}
	if !s.iconExisted {
		t.Fatalf("thumbnail was not written before dispatch")
	}
	if _, err := os.Stat(s.opts.IconPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("thumbnail not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("DRAWALL_NOTIFY_TITLE", "Canvas")
	t.Setenv("DRAWALL_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Canvas" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if !strings.HasPrefix(prefs.Events[EventSave].Template, "Wrote") {
		t.Fatalf("save template = %q", prefs.Events[EventSave].Template)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Fatalf("copy template changed")
	}
}

func TestFailureIsCritical(t *testing.T) {
	got := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Failure("save", errors.New("disk full"))
	if len(*got) != 0 {
		t.Fatalf("disabled error event dispatched")
	}
	n.Enable(EventError, true)
	n.Failure("save", nil)
	n.Failure("save", errors.New("disk full"))
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "save failed: disk full" || s.opts.Urgency != platform.UrgencyCritical {
		t.Fatalf("unexpected notification %+v", s)
	}
}
