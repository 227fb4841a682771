package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/drawall/internal/drawing"
	"github.com/example/drawall/internal/render"
	"github.com/example/drawall/internal/theme"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// cacheKeyer is implemented by buttons whose look depends on tool state.
type cacheKeyer interface {
	CacheKey() string
}

// CacheButton wraps another Button and caches its rendered states. The
// cache is dropped when the rect or the wrapped button's CacheKey changes.
type CacheButton struct {
	Button
	key   string
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if k, ok := cb.Button.(cacheKeyer); ok {
		if ck := k.CacheKey(); ck != cb.key {
			cb.key = ck
			cb.cache = [3]*image.RGBA{}
		}
	}
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// LabelButton is a toolbar button with a text label and an optional color
// chip or check box.
type LabelButton struct {
	label      string
	rect       image.Rectangle
	th         *theme.Theme
	minWidth   int
	labelFn    func() string
	swatch     func() color.RGBA
	checked    func() bool
	active     func() bool
	onActivate func()
}

func (b *LabelButton) text() string {
	if b.labelFn != nil {
		return b.labelFn()
	}
	return b.label
}

// Width is the preferred width of the button.
func (b *LabelButton) Width() int {
	w := textWidth(b.text()) + 16
	if b.swatch != nil {
		w += swatchSize + 6
	}
	if b.checked != nil {
		w += checkSize + 6
	}
	if w < b.minWidth {
		return b.minWidth
	}
	return w
}

func (b *LabelButton) CacheKey() string {
	k := b.text()
	if b.swatch != nil {
		k += drawing.Hex(b.swatch())
	}
	if b.checked != nil && b.checked() {
		k += "+checked"
	}
	if b.active != nil && b.active() {
		k += "+active"
	}
	return k
}

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.th.ButtonBackground
	switch {
	case state == StatePressed:
		bg = b.th.ButtonBackgroundPress
	case b.active != nil && b.active():
		bg = b.th.ButtonActive
	case state == StateHover:
		bg = b.th.ButtonBackgroundHover
	}
	fillRect(dst, b.rect, bg)
	strokeRect(dst, b.rect, b.th.ButtonBorder)

	x := b.rect.Min.X + 8
	midY := (b.rect.Min.Y + b.rect.Max.Y) / 2
	if b.checked != nil {
		box := image.Rect(x, midY-checkSize/2, x+checkSize, midY-checkSize/2+checkSize)
		fillRect(dst, box, b.th.MenuBackground)
		strokeRect(dst, box, b.th.ButtonBorder)
		if b.checked() {
			fillRect(dst, box.Inset(3), b.th.ButtonText)
		}
		x += checkSize + 6
	}
	drawText(dst, b.text(), image.Pt(x, midY+4), b.th.ButtonText)
	x += textWidth(b.text()) + 6
	if b.swatch != nil {
		chip := image.Rect(x, midY-swatchSize/2, x+swatchSize, midY-swatchSize/2+swatchSize)
		fillRect(dst, chip, b.swatch())
		strokeRect(dst, chip, b.th.ButtonBorder)
	}
}

func (b *LabelButton) Rect() image.Rectangle { return b.rect }

func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// Slider picks an integer in [Min, Max] along a horizontal track.
type Slider struct {
	Min, Max int
	rect     image.Rectangle
}

// ValueAt maps a window x coordinate onto the slider range.
func (s Slider) ValueAt(x int) int {
	span := s.rect.Dx() - sliderKnob
	if span <= 0 || s.Max <= s.Min {
		return s.Min
	}
	pos := x - s.rect.Min.X - sliderKnob/2
	if pos <= 0 {
		return s.Min
	}
	if pos >= span {
		return s.Max
	}
	rng := s.Max - s.Min
	return s.Min + (pos*rng+span/2)/span
}

// Knob returns the knob rectangle for value v.
func (s Slider) Knob(v int) image.Rectangle {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	x := s.rect.Min.X
	if s.Max > s.Min {
		x += (v - s.Min) * (s.rect.Dx() - sliderKnob) / (s.Max - s.Min)
	}
	return image.Rect(x, s.rect.Min.Y, x+sliderKnob, s.rect.Max.Y)
}

func (s Slider) Draw(dst *image.RGBA, v int, th *theme.Theme) {
	mid := (s.rect.Min.Y + s.rect.Max.Y) / 2
	fillRect(dst, image.Rect(s.rect.Min.X, mid-2, s.rect.Max.X, mid+2), th.SliderTrack)
	fillRect(dst, s.Knob(v), th.SliderKnob)
}

type popupKind int

const (
	popupNone popupKind = iota
	popupBrush
	popupStroke
	popupBackground
)

const (
	menuItemHeight = 20
	swatchCell     = 24
	paletteCols    = 5
)

// popup is the open brush menu or color picker. Items hold brush or
// palette indexes in order.
type popup struct {
	kind  popupKind
	rect  image.Rectangle
	items []image.Rectangle
	hover int
}

func (p popup) open() bool { return p.kind != popupNone }

// hit returns the item under pt, or -1.
func (p popup) hit(pt image.Point) int { return hitIndex(p.items, pt) }

func newBrushMenu(anchor image.Rectangle) popup {
	w := anchor.Dx()
	for _, b := range drawing.Brushes {
		if tw := textWidth(b.String()) + 24; tw > w {
			w = tw
		}
	}
	p := popup{kind: popupBrush, hover: -1}
	y := anchor.Max.Y + 2
	p.rect = image.Rect(anchor.Min.X, y, anchor.Min.X+w, y+len(drawing.Brushes)*menuItemHeight+4)
	for i := range drawing.Brushes {
		top := p.rect.Min.Y + 2 + i*menuItemHeight
		p.items = append(p.items, image.Rect(p.rect.Min.X+2, top, p.rect.Max.X-2, top+menuItemHeight))
	}
	return p
}

func newPalettePopup(kind popupKind, anchor image.Rectangle) popup {
	n := len(drawing.Palette())
	rows := (n + paletteCols - 1) / paletteCols
	p := popup{kind: kind, hover: -1}
	titleH := menuItemHeight
	p.rect = image.Rect(anchor.Min.X, anchor.Max.Y+2,
		anchor.Min.X+paletteCols*swatchCell+2*padding,
		anchor.Max.Y+2+titleH+rows*swatchCell+2*padding)
	for i := 0; i < n; i++ {
		x := p.rect.Min.X + padding + (i%paletteCols)*swatchCell
		y := p.rect.Min.Y + padding + titleH + (i/paletteCols)*swatchCell
		p.items = append(p.items, image.Rect(x+2, y+2, x+swatchCell-2, y+swatchCell-2))
	}
	return p
}

func (p popup) title() string {
	switch p.kind {
	case popupStroke:
		return "Stroke color"
	case popupBackground:
		return "Background color"
	}
	return ""
}

// Draw paints the popup with its shadow. selected marks the current brush
// or palette entry, or -1.
func (p popup) Draw(dst *image.RGBA, th *theme.Theme, selected int) {
	if !p.open() {
		return
	}
	render.PopupShadow().Cast(dst, p.rect)
	fillRect(dst, p.rect, th.MenuBackground)
	strokeRect(dst, p.rect, th.ButtonBorder)
	if p.kind == popupBrush {
		for i, r := range p.items {
			switch {
			case i == p.hover:
				fillRect(dst, r, th.MenuHover)
			case i == selected:
				fillRect(dst, r, th.ButtonActive)
			}
			drawText(dst, drawing.Brushes[i].String(), image.Pt(r.Min.X+8, r.Min.Y+14), th.MenuText)
		}
		return
	}
	drawText(dst, p.title(), image.Pt(p.rect.Min.X+padding+2, p.rect.Min.Y+padding+13), th.MenuText)
	pal := drawing.Palette()
	for i, r := range p.items {
		if i == p.hover || i == selected {
			strokeRect(dst, r.Inset(-2), th.ButtonText)
		}
		fillRect(dst, r, pal[i].Color)
		strokeRect(dst, r, th.ButtonBorder)
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawText(dst *image.RGBA, s string, dot image.Point, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: labelFace, Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(s)
}

func sizeLabel(n int) string { return fmt.Sprintf("Size: %d", n) }
