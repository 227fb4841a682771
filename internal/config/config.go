package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/drawall/internal/drawing"
	"github.com/example/drawall/internal/theme"
)

// Save sources.
const (
	SourceSurface = "surface"
	SourceScreen  = "screen"
)

// DefaultOutput is the file the Save button writes to.
const DefaultOutput = "canvas_image.jpg"

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Errors bool
}

// Config holds the application configuration.
type Config struct {
	Theme           string
	Output          string
	StrokeColor     color.RGBA
	BackgroundColor color.RGBA
	PenWidth        int
	Brush           drawing.Brush
	ShapeMode       drawing.ShapeMode
	SaveSource      string
	JPEGQuality     int
	Width           int
	Height          int
	Notify          Notify
	Themes          map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:           "", // Default to empty to allow fallback to Env/Default
		Output:          DefaultOutput,
		StrokeColor:     drawing.DefaultStrokeColor,
		BackgroundColor: drawing.DefaultBackgroundColor,
		PenWidth:        drawing.DefaultPenWidth,
		Brush:           drawing.BrushFreehand,
		ShapeMode:       drawing.ShapeTrail,
		SaveSource:      SourceSurface,
		JPEGQuality:     95,
		Width:           800,
		Height:          600,
		Notify: Notify{
			Save:   false,
			Copy:   false,
			Errors: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ControllerOptions converts the drawing settings into controller options.
func (c *Config) ControllerOptions() []drawing.Option {
	return []drawing.Option{
		drawing.WithStrokeColor(c.StrokeColor),
		drawing.WithBackgroundColor(c.BackgroundColor),
		drawing.WithPenWidth(c.PenWidth),
		drawing.WithBrush(c.Brush),
		drawing.WithShapeMode(c.ShapeMode),
		drawing.WithJPEGQuality(c.JPEGQuality),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "output = %s\n", c.Output)
	fmt.Fprintf(&sb, "stroke_color = %s\n", drawing.ColorName(c.StrokeColor))
	fmt.Fprintf(&sb, "background_color = %s\n", drawing.ColorName(c.BackgroundColor))
	fmt.Fprintf(&sb, "pen_width = %d\n", c.PenWidth)
	fmt.Fprintf(&sb, "brush = %s\n", strings.ToLower(c.Brush.String()))
	fmt.Fprintf(&sb, "shape_mode = %s\n", c.ShapeMode)
	fmt.Fprintf(&sb, "save_source = %s\n", c.SaveSource)
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.JPEGQuality)
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "errors = %v\n", c.Notify.Errors)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, field := range theme.Fields() {
			col, _ := t.Color(field)
			fmt.Fprintf(&sb, "%s: %s\n", field, drawing.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
