package main

import (
	"flag"
	"fmt"

	"github.com/example/drawall/internal/appstate"
	"github.com/example/drawall/internal/config"
	"github.com/example/drawall/internal/drawing"
)

// canvasCmd opens the interactive drawing window.
type canvasCmd struct {
	*root
	fs *flag.FlagSet

	title      string
	output     string
	width      int
	height     int
	saveSource string
	shapeMode  string
	brush      string
	stroke     string
	background string
	pen        int
	quality    int

	// run is swapped out by tests so no window is opened.
	run func(*appstate.AppState)
}

func (c *canvasCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCanvasCmd(args []string, r *root) (*canvasCmd, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
		r.config = cfg
	}
	fs := flag.NewFlagSet("canvas", flag.ExitOnError)
	c := &canvasCmd{root: r, fs: fs, run: (*appstate.AppState).Run}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.title, "title", appstate.DefaultTitle, "window title")
	fs.StringVar(&c.output, "output", cfg.Output, "file written by the Save button (.jpg, .png, .gif, .bmp, .tif or .pdf)")
	fs.StringVar(&c.output, "o", cfg.Output, "file written by the Save button (alias)")
	fs.IntVar(&c.width, "width", cfg.Width, "initial canvas width in pixels")
	fs.IntVar(&c.height, "height", cfg.Height, "initial canvas height in pixels")
	fs.StringVar(&c.saveSource, "save-source", cfg.SaveSource, "pixels saved by the Save button: surface or screen")
	fs.StringVar(&c.shapeMode, "shape-mode", cfg.ShapeMode.String(), "shape brush drag behavior: trail or preview")
	fs.StringVar(&c.brush, "brush", "", "initial brush (pencil, line, rectangle, oval, arc)")
	fs.StringVar(&c.stroke, "color", "", "initial stroke color name or hex value")
	fs.StringVar(&c.background, "bg", "", "initial background color name or hex value")
	fs.IntVar(&c.pen, "pen", cfg.PenWidth, fmt.Sprintf("initial pen width (%d-%d)", drawing.MinPenWidth, drawing.MaxPenWidth))
	fs.IntVar(&c.quality, "quality", cfg.JPEGQuality, "JPEG quality (1-100)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", c.width, c.height)
	}
	if c.quality < 1 || c.quality > 100 {
		return nil, fmt.Errorf("quality must be between 1 and 100")
	}
	switch c.saveSource {
	case config.SourceSurface, config.SourceScreen:
	default:
		return nil, fmt.Errorf("unknown save source %q", c.saveSource)
	}
	return c, nil
}

// controllerOptions layers the command line over the config file settings.
func (c *canvasCmd) controllerOptions() ([]drawing.Option, error) {
	opts := c.root.config.ControllerOptions()
	mode, err := drawing.ParseShapeMode(c.shapeMode)
	if err != nil {
		return nil, err
	}
	opts = append(opts, drawing.WithShapeMode(mode), drawing.WithPenWidth(c.pen), drawing.WithJPEGQuality(c.quality))
	if c.brush != "" {
		b, err := drawing.ParseBrush(c.brush)
		if err != nil {
			return nil, err
		}
		opts = append(opts, drawing.WithBrush(b))
	}
	if c.stroke != "" {
		col, err := drawing.ParseColor(c.stroke)
		if err != nil {
			return nil, err
		}
		opts = append(opts, drawing.WithStrokeColor(col))
	}
	if c.background != "" {
		col, err := drawing.ParseColor(c.background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, drawing.WithBackgroundColor(col))
	}
	return opts, nil
}

func (c *canvasCmd) Run() error {
	opts, err := c.controllerOptions()
	if err != nil {
		return err
	}
	th := c.root.activeTheme
	if th == nil {
		th = c.root.resolveTheme()
	}
	app := appstate.New(
		appstate.WithTitle(c.title),
		appstate.WithOutput(c.output),
		appstate.WithSize(c.width, c.height),
		appstate.WithSaveSource(c.saveSource),
		appstate.WithTheme(th),
		appstate.WithNotifier(c.root.notifier),
		appstate.WithControllerOptions(opts...),
	)
	c.run(app)
	return nil
}
