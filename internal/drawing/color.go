package drawing

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// PaletteColor is a named swatch offered by the color picker.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
	{"Orange", color.RGBA{255, 165, 0, 255}},
	{"Brown", color.RGBA{165, 42, 42, 255}},
	{"Pink", color.RGBA{255, 192, 203, 255}},
	{"Gold", color.RGBA{255, 215, 0, 255}},
}

// Palette returns a copy of the swatches offered by the color picker.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// ParseColor accepts a palette name, any SVG color name, or #RRGGBB /
// #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range palette {
		if strings.EqualFold(entry.Name, spec) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		val, err := strconv.ParseUint(spec[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		if len(spec) == 7 {
			return color.RGBA{uint8(val >> 16), uint8(val >> 8), uint8(val), 255}, nil
		}
		return color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// ColorName returns the palette or SVG name of c, falling back to hex.
func ColorName(c color.RGBA) string {
	for _, entry := range palette {
		if entry.Color == c {
			return strings.ToLower(entry.Name)
		}
	}
	// colornames.Map has aliases (grey/gray, aqua/cyan); pick the first
	// alphabetically so the result is stable.
	var names []string
	for name, nc := range colornames.Map {
		if nc == c {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return names[0]
	}
	return Hex(c)
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
