package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/drawall/internal/drawing"
	"golang.org/x/term"
)

var (
	stdout io.Writer = os.Stdout
	// colorTerminal reports whether swatches can be drawn with ANSI escapes.
	colorTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := drawing.Palette()
	if len(palette) == 0 {
		fmt.Fprintln(stdout, "no colors available")
		return nil
	}
	stroke, bg := drawing.DefaultStrokeColor, drawing.DefaultBackgroundColor
	if c.root != nil && c.root.config != nil {
		stroke, bg = c.root.config.StrokeColor, c.root.config.BackgroundColor
	}
	swatches := colorTerminal()
	fmt.Fprintln(stdout, "palette colors (* marks the stroke color, + the background):")
	for idx, entry := range palette {
		marker := " "
		switch entry.Color {
		case stroke:
			marker = "*"
		case bg:
			marker = "+"
		}
		hex := drawing.Hex(entry.Color)
		if !swatches {
			fmt.Fprintf(stdout, "%s %2d: %-8s %s\n", marker, idx, entry.Name, hex)
			continue
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(stdout, "%s %2d: %-8s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	fmt.Fprintln(stdout, "any CSS color name or #rrggbb value is accepted as well")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type brushesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseBrushesCmd(args []string, r *root) (*brushesCmd, error) {
	fs := flag.NewFlagSet("brushes", flag.ExitOnError)
	cmd := &brushesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *brushesCmd) Run() error {
	current := drawing.BrushFreehand
	if c.root != nil && c.root.config != nil {
		current = c.root.config.Brush
	}
	fmt.Fprintln(stdout, "brushes (* marks the default brush):")
	for idx, b := range drawing.Brushes {
		marker := " "
		if b == current {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %d: %s\n", marker, idx+1, b)
	}
	fmt.Fprintf(stdout, "pen widths: %d-%d (default %d)\n", drawing.MinPenWidth, drawing.MaxPenWidth, drawing.DefaultPenWidth)
	return nil
}

func (c *brushesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
