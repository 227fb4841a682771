package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".theme"

// Loader resolves theme names to files. A name is tried as a path first,
// then among the embedded themes, then in ConfigDir and SystemDir.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader reading $XDG_CONFIG_HOME/drawall/themes (or
// ~/.config/drawall/themes) and /usr/share/drawall/themes.
func NewLoader() *Loader {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return &Loader{
		ConfigDir: filepath.Join(base, "drawall", "themes"),
		SystemDir: "/usr/share/drawall/themes",
	}
}

type source struct {
	fsys fs.FS
	// lower folds the file name, embedded themes are stored lower case
	lower bool
}

func (l *Loader) sources() []source {
	var srcs []source
	if sub, err := fs.Sub(EmbeddedThemes, "defaults"); err == nil {
		srcs = append(srcs, source{fsys: sub, lower: true})
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			srcs = append(srcs, source{fsys: os.DirFS(dir)})
		}
	}
	return srcs
}

// Load returns the theme called name. "" and "default" select Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || strings.EqualFold(name, "default") {
		return Default(), nil
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	file := name
	if !strings.HasSuffix(file, ext) {
		file += ext
	}
	if strings.ContainsRune(file, '/') || !fs.ValidPath(file) {
		return nil, fmt.Errorf("theme '%s' not found", name)
	}
	for _, src := range l.sources() {
		lookup := file
		if src.lower {
			lookup = strings.ToLower(file)
		}
		th, err := parseFS(src.fsys, lookup)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("theme '%s': %w", name, err)
		}
		return th, nil
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

func parseFS(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Names lists "default", the embedded themes and any .theme files in the
// theme directories, sorted and without duplicates.
func (l *Loader) Names() []string {
	seen := map[string]bool{"default": true}
	for _, src := range l.sources() {
		entries, err := fs.ReadDir(src.fsys, ".")
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin lists "default" and the names of the embedded themes.
func Builtin() []string {
	return (&Loader{}).Names()
}
