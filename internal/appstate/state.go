package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawall/internal/canvas"
	"github.com/example/drawall/internal/capture"
	"github.com/example/drawall/internal/clipboard"
	"github.com/example/drawall/internal/config"
	"github.com/example/drawall/internal/drawing"
	"github.com/example/drawall/internal/notify"
	"github.com/example/drawall/internal/theme"
)

// DefaultTitle is the window title. Screen captures look the window up by it.
const DefaultTitle = "DraWall"

const messageDuration = 3 * time.Second

var (
	clipboardWrite = clipboard.WriteImage
	screenCapture  = capture.CaptureWindowArea
)

// AppState holds application configuration for the UI.
type AppState struct {
	Title      string
	Output     string
	Width      int
	Height     int
	SaveSource string
	Theme      *theme.Theme

	notifier *notify.Notifier
	ctlOpts  []drawing.Option
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOutput sets the file written by Save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSize sets the initial canvas size; the window adds the toolbar row.
func WithSize(w, h int) Option { return func(a *AppState) { a.Width, a.Height = w, h } }

// WithSaveSource selects whether Save reads the drawing surface or the
// on-screen pixels.
func WithSaveSource(src string) Option { return func(a *AppState) { a.SaveSource = src } }

// WithTheme sets the window chrome colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the desktop notifier for save and copy results.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithControllerOptions passes initial tool settings to the controller.
func WithControllerOptions(opts ...drawing.Option) Option {
	return func(a *AppState) { a.ctlOpts = append(a.ctlOpts, opts...) }
}

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:      DefaultTitle,
		Output:     config.DefaultOutput,
		Width:      800,
		Height:     600,
		SaveSource: config.SourceSurface,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	u := newUI(a)
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  a.Width,
		Height: a.Height + toolbarHeight,
		Title:  a.Title,
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	u.repaint = func() { w.Send(paint.Event{}) }

	p := newPainter(func(ctx context.Context, st paintState) {
		drawFrame(ctx, s, w, st)
	})
	defer p.stop()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			u.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			p.offer(u.snapshot())
		case mouse.Event:
			if u.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if u.handleKey(e) {
				w.Send(paint.Event{})
			}
			if u.quit {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// Toolbar button order.
const (
	btnColor = iota
	btnBrush
	btnEraser
	btnClear
	btnBackground
	btnSave
	btnCopy
)

// ui is the window session: the controller plus pointer and popup state.
// All methods run on the event goroutine.
type ui struct {
	a        *AppState
	th       *theme.Theme
	raster   *canvas.Raster
	ctl      *drawing.Controller
	notifier *notify.Notifier

	width, height int
	buttons       []*CacheButton
	slider        Slider
	sizeDot       image.Point
	hover         int
	pressed       int
	popup         popup
	stroking      bool
	sliding       bool
	quit          bool

	message      string
	messageUntil time.Time
	repaint      func()

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
}

func newUI(a *AppState) *ui {
	u := &ui{
		a:        a,
		th:       a.Theme,
		raster:   canvas.NewRaster(),
		notifier: a.notifier,
		hover:    -1,
		pressed:  -1,
		popup:    popup{hover: -1},
	}
	opts := append([]drawing.Option{}, a.ctlOpts...)
	if a.SaveSource == config.SourceScreen {
		opts = append(opts, drawing.WithCapture(u.captureScreen))
	}
	u.ctl = drawing.New(u.raster, opts...)
	u.buildToolbar()
	u.registerActions()
	return u
}

func (u *ui) buildToolbar() {
	brushWidth := 0
	for _, b := range drawing.Brushes {
		if w := textWidth("Brush: "+b.String()) + 16; w > brushWidth {
			brushWidth = w
		}
	}
	u.buttons = []*CacheButton{
		{Button: &LabelButton{label: "Color", th: u.th,
			swatch:     func() color.RGBA { return u.ctl.Tools().Stroke },
			active:     func() bool { return u.popup.kind == popupStroke },
			onActivate: func() { u.togglePopup(popupStroke) }}},
		{Button: &LabelButton{th: u.th, minWidth: brushWidth,
			labelFn:    func() string { return "Brush: " + u.ctl.Tools().Brush.String() },
			active:     func() bool { return u.popup.kind == popupBrush },
			onActivate: func() { u.togglePopup(popupBrush) }}},
		{Button: &LabelButton{label: "Eraser", th: u.th,
			checked:    func() bool { return u.ctl.Tools().Eraser },
			onActivate: func() { u.ctl.ToggleEraser() }}},
		{Button: &LabelButton{label: "Clear", th: u.th, onActivate: u.ctl.Clear}},
		{Button: &LabelButton{label: "BG Color", th: u.th,
			swatch:     func() color.RGBA { return u.ctl.Tools().Background },
			active:     func() bool { return u.popup.kind == popupBackground },
			onActivate: func() { u.togglePopup(popupBackground) }}},
		{Button: &LabelButton{label: "Save", th: u.th, onActivate: u.save}},
		{Button: &LabelButton{label: "Copy", th: u.th, onActivate: u.copy}},
	}
	widths := make([]int, len(u.buttons))
	for i, b := range u.buttons {
		widths[i] = b.Button.(*LabelButton).Width()
	}
	l := layoutToolbar(widths)
	for i, b := range u.buttons {
		b.SetRect(l.buttons[i])
	}
	u.slider = Slider{Min: drawing.MinPenWidth, Max: drawing.MaxPenWidth, rect: l.slider}
	u.sizeDot = l.sizeLabel
}

func (u *ui) registerActions() {
	u.actions = map[string]func(){}
	u.keyboardAction = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		u.actions[name] = fn
		for _, sc := range keys.KeyboardShortcuts() {
			u.keyboardAction[sc] = name
		}
	}

	register("color", shortcutList{{Rune: 'c'}}, func() { u.togglePopup(popupStroke) })
	register("background", shortcutList{{Rune: 'g'}}, func() { u.togglePopup(popupBackground) })
	register("eraser", shortcutList{{Rune: 'e'}}, func() { u.ctl.ToggleEraser() })
	for i, b := range drawing.Brushes {
		b := b
		register(fmt.Sprintf("brush%d", i+1), shortcutList{{Rune: rune('1' + i)}}, func() {
			u.ctl.SetBrush(b)
			u.closePopup()
		})
	}
	register("bigger", shortcutList{{Rune: '+'}, {Rune: '='}}, func() { u.ctl.SetPenWidth(u.ctl.Tools().PenWidth + 1) })
	register("smaller", shortcutList{{Rune: '-'}}, func() { u.ctl.SetPenWidth(u.ctl.Tools().PenWidth - 1) })
	register("clear", shortcutList{{Code: key.CodeDeleteForward}}, u.ctl.Clear)
	register("save", shortcutList{
		{Rune: 's', Modifiers: key.ModControl},
		{Code: key.CodeS, Modifiers: key.ModControl},
	}, u.save)
	register("copy", shortcutList{
		{Rune: 'c', Modifiers: key.ModControl},
		{Code: key.CodeC, Modifiers: key.ModControl},
	}, u.copy)
	register("quit", shortcutList{{Rune: 'q'}}, func() { u.quit = true })
	register("close", shortcutList{{Code: key.CodeEscape}}, u.closePopup)
}

func (u *ui) resize(w, h int) {
	u.width, u.height = w, h
	sz := canvasSize(w, h)
	u.ctl.Resize(sz.X, sz.Y)
}

func (u *ui) captureScreen() (*image.RGBA, error) {
	return screenCapture(u.a.Title, canvasRect(u.width, u.height))
}

func (u *ui) togglePopup(kind popupKind) {
	if u.popup.kind == kind {
		u.closePopup()
		return
	}
	switch kind {
	case popupBrush:
		u.popup = newBrushMenu(u.buttons[btnBrush].Rect())
	case popupStroke:
		u.popup = newPalettePopup(kind, u.buttons[btnColor].Rect())
	case popupBackground:
		u.popup = newPalettePopup(kind, u.buttons[btnBackground].Rect())
	}
}

func (u *ui) closePopup() { u.popup = popup{hover: -1} }

// choose applies popup item idx.
func (u *ui) choose(idx int) {
	switch u.popup.kind {
	case popupBrush:
		u.ctl.SetBrush(drawing.Brushes[idx])
	case popupStroke:
		u.ctl.SetStrokeColor(drawing.Palette()[idx].Color)
	case popupBackground:
		u.ctl.SetBackgroundColor(drawing.Palette()[idx].Color)
	}
	u.closePopup()
}

// selected is the popup entry matching the current tool state, or -1.
func (u *ui) selected() int {
	tools := u.ctl.Tools()
	switch u.popup.kind {
	case popupBrush:
		for i, b := range drawing.Brushes {
			if b == tools.Brush {
				return i
			}
		}
	case popupStroke, popupBackground:
		want := tools.Stroke
		if u.popup.kind == popupBackground {
			want = tools.Background
		}
		for i, p := range drawing.Palette() {
			if p.Color == want {
				return i
			}
		}
	}
	return -1
}

func (u *ui) buttonAt(p image.Point) int {
	for i, b := range u.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// handleMouse routes a pointer event and reports whether a repaint is due.
func (u *ui) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease {
		return u.release()
	}
	if u.stroking {
		if e.Direction == mouse.DirNone {
			u.ctl.Motion(toCanvas(p))
			return true
		}
		return false
	}
	if u.sliding {
		if e.Direction == mouse.DirNone {
			return u.setPenWidth(u.slider.ValueAt(p.X))
		}
		return false
	}
	if u.popup.open() {
		return u.popupMouse(e, p)
	}
	if e.Direction == mouse.DirNone {
		if i := u.buttonAt(p); i != u.hover {
			u.hover = i
			return true
		}
		return false
	}
	if e.Direction != mouse.DirPress || e.Button != mouse.ButtonLeft {
		return false
	}
	if p.Y >= toolbarHeight {
		u.stroking = true
		return false
	}
	if i := u.buttonAt(p); i >= 0 {
		u.pressed = i
		u.buttons[i].Activate()
		return true
	}
	if p.In(u.slider.rect) {
		u.sliding = true
		u.setPenWidth(u.slider.ValueAt(p.X))
		return true
	}
	return false
}

func (u *ui) release() bool {
	switch {
	case u.stroking:
		u.stroking = false
		u.ctl.Release()
		return true
	case u.sliding:
		u.sliding = false
	case u.pressed >= 0:
		u.pressed = -1
		return true
	}
	return false
}

func (u *ui) popupMouse(e mouse.Event, p image.Point) bool {
	idx := u.popup.hit(p)
	switch {
	case e.Direction == mouse.DirNone:
		if idx != u.popup.hover {
			u.popup.hover = idx
			return true
		}
		return false
	case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
		if idx >= 0 {
			u.choose(idx)
			return true
		}
		if !p.In(u.popup.rect) {
			// A click anywhere else dismisses the popup without drawing.
			u.closePopup()
			return true
		}
	}
	return false
}

func (u *ui) setPenWidth(v int) bool {
	if v == u.ctl.Tools().PenWidth {
		return false
	}
	u.ctl.SetPenWidth(v)
	return true
}

// handleKey runs the action bound to a key press and reports whether a
// repaint is due.
func (u *ui) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	mods := e.Modifiers & key.ModControl
	for _, ks := range []KeyShortcut{
		{Rune: unicode.ToLower(e.Rune), Modifiers: mods},
		{Code: e.Code, Modifiers: mods},
	} {
		if name, ok := u.keyboardAction[ks]; ok {
			u.actions[name]()
			return true
		}
	}
	return false
}

func (u *ui) save() {
	out := u.a.Output
	if err := u.ctl.Save(out); err != nil {
		log.Printf("save: %v", err)
		u.notifier.Failure("save", err)
		u.setMessage(fmt.Sprintf("save failed: %v", err))
		return
	}
	log.Printf("saved %s", out)
	u.notifier.Save(out)
	u.setMessage(fmt.Sprintf("saved %s", out))
}

func (u *ui) copy() {
	img, err := u.ctl.Snapshot()
	if err == nil {
		err = clipboardWrite(img)
	}
	if err != nil {
		log.Printf("copy: %v", err)
		u.notifier.Failure("copy", err)
		u.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	log.Print("drawing copied to clipboard")
	u.notifier.Copy("drawing", img)
	u.setMessage("copied to clipboard")
}

func (u *ui) setMessage(msg string) {
	u.message = msg
	u.messageUntil = time.Now().Add(messageDuration)
	if u.repaint != nil {
		time.AfterFunc(messageDuration, u.repaint)
	}
}

// snapshot renders the chrome and copies the canvas for the paint goroutine.
func (u *ui) snapshot() paintState {
	st := paintState{
		width:        u.width,
		height:       u.height,
		theme:        u.th,
		message:      u.message,
		messageUntil: u.messageUntil,
	}
	if img, err := u.raster.Capture(); err == nil {
		st.canvas = img
	}
	st.chrome = u.renderToolbar()
	if u.popup.open() {
		r := u.popup.rect.Inset(-16).Intersect(image.Rect(0, 0, u.width, u.height))
		if !r.Empty() {
			img := image.NewRGBA(r)
			u.popup.Draw(img, u.th, u.selected())
			st.popup = img
		}
	}
	return st
}

func (u *ui) renderToolbar() *image.RGBA {
	if u.width <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, u.width, toolbarHeight))
	fillRect(img, img.Bounds(), u.th.ToolbarBackground)
	fillRect(img, image.Rect(0, toolbarHeight-1, u.width, toolbarHeight), u.th.ToolbarBorder)
	for i, b := range u.buttons {
		state := StateDefault
		switch {
		case i == u.pressed:
			state = StatePressed
		case i == u.hover:
			state = StateHover
		}
		b.Draw(img, state)
	}
	pen := u.ctl.Tools().PenWidth
	u.slider.Draw(img, pen, u.th)
	drawText(img, sizeLabel(pen), u.sizeDot, u.th.Foreground)
	return img
}
