package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/example/drawall/internal/canvas"
	"github.com/example/drawall/internal/clipboard"
	"github.com/example/drawall/internal/drawing"
	"github.com/example/drawall/internal/render"
)

var (
	writeClipboardFn = clipboard.WriteImage
	stdin            io.Reader = os.Stdin
)

// drawCmd replays a script of toolbar and drag commands against an
// off-screen canvas and writes the result.
type drawCmd struct {
	output      string
	script      string
	width       int
	height      int
	bgSpec      string
	colorSpec   string
	pen         int
	brushName   string
	shapeMode   string
	scale       float64
	shadow      bool
	shadowBG    string
	quality     int
	toClipboard bool
	commands    []scriptCmd
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

// scriptCmd is one script step. line is 1-based for file scripts and the
// step number for scripts given as arguments.
type scriptCmd struct {
	line int
	name string
	args []string
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.output, "output", "", "output file (.png, .jpg, .gif, .bmp, .tif or .pdf)")
	fs.StringVar(&d.output, "o", "", "output file (alias)")
	fs.StringVar(&d.script, "f", "", "read the script from a file, - for stdin")
	fs.IntVar(&d.width, "width", 800, "canvas width in pixels")
	fs.IntVar(&d.height, "height", 600, "canvas height in pixels")
	fs.StringVar(&d.bgSpec, "bg", "black", "background color name or hex value")
	fs.StringVar(&d.colorSpec, "color", "white", "stroke color name or hex value")
	fs.IntVar(&d.pen, "pen", drawing.DefaultPenWidth, fmt.Sprintf("pen width (%d-%d)", drawing.MinPenWidth, drawing.MaxPenWidth))
	fs.StringVar(&d.brushName, "brush", "pencil", "initial brush (pencil, line, rectangle, oval, arc)")
	fs.StringVar(&d.shapeMode, "shape-mode", "trail", "shape brush drag behavior: trail or preview")
	fs.Float64Var(&d.scale, "scale", 1, "resize the rendered image by this factor")
	fs.BoolVar(&d.shadow, "shadow", false, "frame the image with a drop shadow")
	fs.StringVar(&d.shadowBG, "shadow-bg", "white", "backdrop color behind the drop shadow")
	fs.IntVar(&d.quality, "quality", canvas.DefaultJPEGQuality, "JPEG quality (1-100)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if d.output == "" {
		return nil, fmt.Errorf("output file is required")
	}
	if d.width <= 0 || d.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", d.width, d.height)
	}
	if d.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive")
	}
	if d.quality < 1 || d.quality > 100 {
		return nil, fmt.Errorf("quality must be between 1 and 100")
	}
	if canvas.IsPDF(d.output) && (d.scale != 1 || d.shadow || d.toClipboard) {
		return nil, fmt.Errorf("-scale, -shadow and -to-clipboard need a raster output, not %s", filepath.Base(d.output))
	}
	switch {
	case d.script != "" && len(positionals) > 0:
		return nil, fmt.Errorf("script given both as arguments and with -f")
	case d.script != "":
		d.commands, err = d.readScript()
	case len(positionals) > 0:
		d.commands, err = scriptFromArgs(positionals)
	default:
		return nil, &UsageError{of: d}
	}
	if err != nil {
		return nil, err
	}
	for _, c := range d.commands {
		if err := c.check(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *drawCmd) readScript() ([]scriptCmd, error) {
	if d.script == "-" {
		return parseScript(stdin)
	}
	f, err := os.Open(d.script)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", f.Name(), err)
		}
	}(f)
	return parseScript(f)
}

// parseScript reads one command per line. Blank lines and lines starting
// with # are skipped.
func parseScript(r io.Reader) ([]scriptCmd, error) {
	var cmds []scriptCmd
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		cmds = append(cmds, scriptCmd{line: line, name: strings.ToLower(fields[0]), args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// scriptFromArgs splits positional arguments into commands on ";" tokens
// or a trailing ";" on a word.
func scriptFromArgs(args []string) ([]scriptCmd, error) {
	var cmds []scriptCmd
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		cmds = append(cmds, scriptCmd{line: len(cmds) + 1, name: strings.ToLower(cur[0]), args: cur[1:]})
		cur = nil
	}
	for _, arg := range args {
		end := strings.HasSuffix(arg, ";")
		if word := strings.TrimSuffix(arg, ";"); word != "" {
			cur = append(cur, word)
		}
		if end {
			flush()
		}
	}
	flush()
	if len(cmds) == 0 {
		return nil, fmt.Errorf("script is empty")
	}
	return cmds, nil
}

func (c scriptCmd) errorf(format string, args ...any) error {
	return fmt.Errorf("step %d: %s: %s", c.line, c.name, fmt.Sprintf(format, args...))
}

// check validates arguments so a bad script fails before anything is drawn.
func (c scriptCmd) check() error {
	switch c.name {
	case "brush":
		if len(c.args) != 1 {
			return c.errorf("expects a brush name")
		}
		if _, err := drawing.ParseBrush(c.args[0]); err != nil {
			return c.errorf("%v", err)
		}
	case "color", "bg":
		if len(c.args) != 1 {
			return c.errorf("expects a color")
		}
		if _, err := drawing.ParseColor(c.args[0]); err != nil {
			return c.errorf("%v", err)
		}
	case "pen":
		if _, err := expectInts(c.args, 1, c.name); err != nil {
			return c.errorf("%v", err)
		}
	case "eraser":
		if len(c.args) != 1 {
			return c.errorf("expects on or off")
		}
		if _, err := parseSwitch(c.args[0]); err != nil {
			return c.errorf("%v", err)
		}
	case "drag":
		if len(c.args) < 2 {
			return c.errorf("needs at least two points")
		}
		if _, err := parsePoints(c.args); err != nil {
			return c.errorf("%v", err)
		}
	case "clear":
		if len(c.args) != 0 {
			return c.errorf("takes no arguments")
		}
	case "resize":
		vals, err := expectInts(c.args, 2, c.name)
		if err != nil {
			return c.errorf("%v", err)
		}
		if vals[0] <= 0 || vals[1] <= 0 {
			return c.errorf("size must be positive")
		}
	default:
		return fmt.Errorf("step %d: unknown command %q", c.line, c.name)
	}
	return nil
}

// apply runs a checked command against ctl.
func (c scriptCmd) apply(ctl *drawing.Controller) {
	switch c.name {
	case "brush":
		b, _ := drawing.ParseBrush(c.args[0])
		ctl.SetBrush(b)
	case "color":
		col, _ := drawing.ParseColor(c.args[0])
		ctl.SetStrokeColor(col)
	case "bg":
		col, _ := drawing.ParseColor(c.args[0])
		ctl.SetBackgroundColor(col)
	case "pen":
		n, _ := strconv.Atoi(c.args[0])
		ctl.SetPenWidth(n)
	case "eraser":
		on, _ := parseSwitch(c.args[0])
		ctl.SetEraser(on)
	case "drag":
		pts, _ := parsePoints(c.args)
		for _, p := range pts {
			ctl.Motion(p)
		}
		ctl.Release()
	case "clear":
		ctl.Clear()
	case "resize":
		vals, _ := expectInts(c.args, 2, c.name)
		ctl.Resize(vals[0], vals[1])
	}
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func parsePoints(args []string) ([]image.Point, error) {
	pts := make([]image.Point, 0, len(args))
	for _, raw := range args {
		xs, ys, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, want x,y", raw)
		}
		vals, err := expectInts([]string{xs, ys}, 2, "point")
		if err != nil {
			return nil, err
		}
		pts = append(pts, image.Pt(vals[0], vals[1]))
	}
	return pts, nil
}

func expectInts(args []string, n int, name string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", name, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) controller() (*drawing.Controller, error) {
	stroke, err := drawing.ParseColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	bg, err := drawing.ParseColor(d.bgSpec)
	if err != nil {
		return nil, err
	}
	brush, err := drawing.ParseBrush(d.brushName)
	if err != nil {
		return nil, err
	}
	mode, err := drawing.ParseShapeMode(d.shapeMode)
	if err != nil {
		return nil, err
	}
	ctl := drawing.New(canvas.NewRaster(),
		drawing.WithStrokeColor(stroke),
		drawing.WithBackgroundColor(bg),
		drawing.WithPenWidth(d.pen),
		drawing.WithBrush(brush),
		drawing.WithShapeMode(mode),
		drawing.WithJPEGQuality(d.quality),
	)
	ctl.Resize(d.width, d.height)
	return ctl, nil
}

func (d *drawCmd) Run() error {
	ctl, err := d.controller()
	if err != nil {
		return err
	}
	for _, c := range d.commands {
		c.apply(ctl)
	}

	var img *image.RGBA
	if canvas.IsPDF(d.output) {
		err = ctl.Save(d.output)
	} else {
		img, err = d.finish(ctl)
		if err == nil {
			err = canvas.WriteImage(img, d.output, d.quality)
		}
	}
	if err != nil {
		d.root.notifyFailure("save", err)
		return fmt.Errorf("save drawing: %w", err)
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifySave(saved)

	if d.toClipboard {
		if err := writeClipboardFn(img); err != nil {
			d.root.notifyFailure("copy", err)
			return fmt.Errorf("copy image to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail, img)
	}
	return nil
}

// finish captures the canvas and applies -scale and -shadow.
func (d *drawCmd) finish(ctl *drawing.Controller) (*image.RGBA, error) {
	img, err := ctl.Snapshot()
	if err != nil {
		return nil, err
	}
	if d.scale != 1 {
		w := int(float64(img.Bounds().Dx())*d.scale + 0.5)
		if w < 1 {
			return nil, errors.New("scaled image would be empty")
		}
		img = toRGBA(imaging.Resize(img, w, 0, imaging.Lanczos))
	}
	if d.shadow {
		var bg color.Color = color.Transparent
		if d.shadowBG != "" && !strings.EqualFold(d.shadowBG, "none") {
			c, err := drawing.ParseColor(d.shadowBG)
			if err != nil {
				return nil, err
			}
			bg = c
		}
		img, _ = render.ExportShadow().Frame(img, bg)
	}
	return img, nil
}

func toRGBA(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

var drawFlagNames = map[string]struct{}{
	"output":       {},
	"o":            {},
	"f":            {},
	"width":        {},
	"height":       {},
	"bg":           {},
	"color":        {},
	"pen":          {},
	"brush":        {},
	"shape-mode":   {},
	"scale":        {},
	"shadow":       {},
	"shadow-bg":    {},
	"quality":      {},
	"to-clipboard": {},
	"to-clip":      {},
}

var drawBoolFlags = map[string]struct{}{
	"shadow":       {},
	"to-clipboard": {},
	"to-clip":      {},
}

// splitDrawArgs separates known flags from script words so flags may appear
// anywhere on the command line. Script words such as "bg" or "color" are
// only taken as flags when written with a leading dash.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
