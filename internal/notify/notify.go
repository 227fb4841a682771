package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/drawall/internal/platform"
)

// thumbnailSize bounds the preview icon attached to notifications.
const thumbnailSize = 128

var platformNotify = platform.Notify

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when an image is persisted to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when data is copied to the clipboard.
	EventCopy Event = "copy"
	// EventError emits a notification when a save or copy fails.
	EventError Event = "error"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "DraWall",
		Events: map[Event]EventPreference{
			EventSave:  {Template: "Saved %s"},
			EventCopy:  {Template: "Copied %s to clipboard"},
			EventError: {Template: "%s"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("DRAWALL_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("DRAWALL_NOTIFY_SAVE_TEXT", EventSave)
	apply("DRAWALL_NOTIFY_COPY_TEXT", EventCopy)
	apply("DRAWALL_NOTIFY_ERROR_TEXT", EventError)
	return prefs
}

// Notifier sends desktop notifications for the enabled events. A nil
// Notifier is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Save announces a written file with a thumbnail of it. PDFs and files that
// cannot be decoded are announced without one.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
	}
	var img image.Image
	if !strings.EqualFold(filepath.Ext(detail), ".pdf") {
		if decoded, err := imaging.Open(detail); err == nil {
			img = decoded
		}
	}
	n.send(EventSave, detail, img, platform.Options{})
}

// Copy announces a clipboard copy with a thumbnail of img when given.
func (n *Notifier) Copy(detail string, img image.Image) {
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.send(EventCopy, detail, img, platform.Options{})
}

// Failure reports a failed action as a critical notification.
func (n *Notifier) Failure(action string, err error) {
	if err == nil {
		return
	}
	n.send(EventError, fmt.Sprintf("%s failed: %v", action, err), nil, platform.Options{Urgency: platform.UrgencyCritical})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

// send formats and dispatches event. The thumbnail of img only lives for
// the duration of the call.
func (n *Notifier) send(event Event, detail string, img image.Image, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Events[event].Template)
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	if err := platformNotify(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "drawall-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	if err := png.Encode(f, thumb); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
