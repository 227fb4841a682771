package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
# comment
Name: Mine
toolbarbackground: #102030
MessageBackground: #00000080
Unknown: #FFFFFF
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("name = %q", th.Name)
	}
	if th.ToolbarBackground != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("ToolbarBackground = %v", th.ToolbarBackground)
	}
	if th.MessageBackground.A != 0x80 {
		t.Errorf("MessageBackground alpha = %d", th.MessageBackground.A)
	}
	if th.ButtonText != Default().ButtonText {
		t.Errorf("unset field lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("SliderKnob: red")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoaderEmbeddedAndFiles(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{ConfigDir: dir, SystemDir: filepath.Join(dir, "system")}

	for _, name := range Builtin() {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th == nil {
			t.Fatalf("Load(%q) returned nil", name)
		}
	}
	if th, _ := l.Load("dark"); th.Name != "Dark" {
		t.Errorf("dark theme name = %q", th.Name)
	}

	if err := os.WriteFile(filepath.Join(dir, "paper.theme"), []byte("Name: Paper\nBackground: #FFFFF0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := l.Load("paper")
	if err != nil {
		t.Fatalf("Load(paper): %v", err)
	}
	if th.Background != (color.RGBA{0xFF, 0xFF, 0xF0, 0xFF}) {
		t.Errorf("paper background = %v", th.Background)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Errorf("expected error for missing theme")
	}
	if _, err := l.Load("../paper"); err == nil {
		t.Errorf("expected error for a name outside the theme dirs")
	}

	names := strings.Join(l.Names(), ",")
	if names != "dark,default,high_contrast,paper" {
		t.Errorf("Names() = %s", names)
	}
	if got := strings.Join(Builtin(), ","); got != "dark,default,high_contrast" {
		t.Errorf("Builtin() = %s", got)
	}
}

func TestColorAccessor(t *testing.T) {
	th := Default()
	for _, name := range Fields() {
		if _, ok := th.Color(name); !ok {
			t.Errorf("Color(%q) not found", name)
		}
	}
	if _, ok := th.Color("Name"); ok {
		t.Errorf("Name is not a color")
	}
}
