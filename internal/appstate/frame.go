package appstate

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawall/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState is an immutable snapshot handed to the paint goroutine.
type paintState struct {
	width, height int
	theme         *theme.Theme
	// canvas is a copy of the drawing; nil while the canvas has no area.
	canvas *image.RGBA
	// chrome holds the toolbar row, rendered on the event goroutine.
	chrome       *image.RGBA
	popup        *image.RGBA
	message      string
	messageUntil time.Time
}

// painter draws frames on its own goroutine. Offers coalesce: a frame that
// has not started yet is replaced by the next one.
type painter struct {
	ch   chan paintState
	done chan struct{}
	draw func(context.Context, paintState)

	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
}

func newPainter(draw func(context.Context, paintState)) *painter {
	p := &painter{
		ch:   make(chan paintState, 1),
		done: make(chan struct{}),
		draw: draw,
	}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for st := range p.ch {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(ctx, st)
		p.mu.Lock()
		p.cancel = nil
		if ctx.Err() == nil {
			p.drops = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// offer queues st, cancelling the frame in progress unless too many frames
// in a row have already been dropped. Only one goroutine may call offer.
func (p *painter) offer(st paintState) {
	p.mu.Lock()
	if p.cancel != nil && p.drops < frameDropThreshold {
		p.cancel()
		p.drops++
	}
	p.mu.Unlock()
	select {
	case p.ch <- st:
	default:
		// the loop may take the queued frame before we do
		select {
		case <-p.ch:
		default:
		}
		p.ch <- st
	}
}

// stop cancels the frame in progress, lets the loop finish and waits for it.
// Nothing is drawn once stop returns.
func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	close(p.ch)
	<-p.done
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !composeFrame(ctx, b.RGBA(), st, time.Now()) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// composeFrame paints st into dst: the toolbar along the top, the canvas
// below it, any popup, then the message if it is still live at now. It
// reports false when ctx was cancelled part way.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState, now time.Time) bool {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.theme.Background}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return false
	}

	if st.canvas != nil {
		area := canvasRect(st.width, st.height)
		draw.Draw(dst, area, st.canvas, image.Point{}, draw.Src)
	}
	if ctx.Err() != nil {
		return false
	}

	if st.chrome != nil {
		draw.Draw(dst, st.chrome.Bounds(), st.chrome, st.chrome.Bounds().Min, draw.Src)
	}
	if st.popup != nil {
		draw.Draw(dst, st.popup.Bounds(), st.popup, st.popup.Bounds().Min, draw.Over)
	}
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && now.Before(st.messageUntil) {
		drawMessage(dst, st.message, st.theme)
	}
	return ctx.Err() == nil
}

// drawMessage centres msg over the canvas area.
func drawMessage(dst *image.RGBA, msg string, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.MessageText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	bounds := dst.Bounds()
	px := (bounds.Dx() - wmsg) / 2
	py := toolbarHeight + (bounds.Dy()-toolbarHeight-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	fillRect(dst, rect, th.MessageBackground)
	strokeRect(dst, rect, th.ButtonBorder)
	strokeRect(dst, rect.Inset(1), th.ButtonBorder)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
