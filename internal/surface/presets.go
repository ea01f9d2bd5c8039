package surface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"posterpad/internal/geometry"
)

// ErrUnknownPreset is returned for page size names missing from the table.
var ErrUnknownPreset = errors.New("unknown page preset")

const DefaultPreset = "A4"

// Preset is a named page size in pixels at 96 dpi.
type Preset struct {
	Name   string  `yaml:"name" toml:"name"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

func (p Preset) Page() geometry.Page {
	return geometry.Page{Width: p.Width, Height: p.Height}
}

// Presets is an ordered preset table.
type Presets []Preset

// DefaultPresets returns the built-in page sizes.
func DefaultPresets() Presets {
	return Presets{
		{Name: "A3", Width: 1123, Height: 1587},
		{Name: "A4", Width: 794, Height: 1123},
		{Name: "A5", Width: 559, Height: 794},
		{Name: "Carta", Width: 816, Height: 1056},
		{Name: "Legal", Width: 816, Height: 1344},
		{Name: "Tabloide", Width: 1056, Height: 1632},
		{Name: "Poster 60x90", Width: 2268, Height: 3402},
		{Name: "Poster 90x120", Width: 3402, Height: 4535},
	}
}

// Lookup finds a preset by name, ignoring case.
func (ps Presets) Lookup(name string) (Preset, error) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Names returns preset names in table order.
func (ps Presets) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// Next returns the preset after name, wrapping around.
func (ps Presets) Next(name string) Preset {
	i := slices.IndexFunc(ps, func(p Preset) bool { return strings.EqualFold(p.Name, name) })
	return ps[(i+1)%len(ps)]
}

// Merge returns a copy of ps where entries of extra replace same-named
// presets and new names are appended.
func (ps Presets) Merge(extra Presets) Presets {
	out := slices.Clone(ps)
	for _, e := range extra {
		i := slices.IndexFunc(out, func(p Preset) bool { return strings.EqualFold(p.Name, e.Name) })
		if i >= 0 {
			out[i] = e
		} else {
			out = append(out, e)
		}
	}
	return out
}

type presetFile struct {
	Presets []Preset `yaml:"presets" toml:"presets"`
}

// LoadPresets reads extra presets from a .yaml/.yml or .toml file and merges
// them over the built-in table.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var file presetFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported presets file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, p := range file.Presets {
		if p.Name == "" || p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("invalid preset %+v in %s", p, path)
		}
	}
	return DefaultPresets().Merge(file.Presets), nil
}
