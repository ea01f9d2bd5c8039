package export

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"posterpad/internal/toolbar"
)

const lineSpacing = 1.2

// Font sizes outside this range are clamped before a face is built.
const (
	minFontSize = 1.0
	maxFontSize = 1000.0
)

// boxStyle is a Style resolved into numbers renderers can use.
type boxStyle struct {
	fontSize    float64
	padding     float64
	borderWidth float64
	borderStyle string
	mono        bool
	serif       bool
	bold        bool
	italic      bool
	underline   bool
	align       string
	color       colorful.Color
	background  *colorful.Color
}

func resolve(s Style) boxStyle {
	bs := boxStyle{
		fontSize:    min(max(pixels(s.FontSize, 16), minFontSize), maxFontSize),
		padding:     pixels(s.Padding, 8),
		borderWidth: pixels(s.BorderWidth, 1),
		borderStyle: strings.ToLower(s.BorderStyle),
		bold:        isBold(s.FontWeight),
		italic:      s.FontStyle == "italic" || s.FontStyle == "oblique",
		underline:   strings.Contains(s.TextDecoration, "underline"),
		align:       strings.ToLower(s.TextAlign),
		color:       parseColor(s.Color, colorful.Color{}),
	}
	family := strings.ToLower(s.FontFamily)
	bs.mono = strings.Contains(family, "courier") || strings.Contains(family, "mono")
	bs.serif = strings.Contains(family, "times") || strings.Contains(family, "georgia") ||
		(strings.Contains(family, "serif") && !strings.Contains(family, "sans"))
	if bg := strings.ToLower(strings.TrimSpace(s.BackgroundColor)); bg != "" && bg != "transparent" && bg != "none" {
		c := parseColor(bg, colorful.Color{R: 1, G: 1, B: 1})
		bs.background = &c
	}
	if bs.borderStyle == "none" || bs.borderStyle == "hidden" {
		bs.borderWidth = 0
	}
	return bs
}

func isBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(weight))
	return err == nil && n >= 600
}

func (bs boxStyle) lineHeight() float64 { return bs.fontSize * lineSpacing }

func pixels(s string, fallback float64) float64 {
	n, err := toolbar.ParsePixels(s)
	if err != nil {
		return fallback
	}
	return float64(n)
}

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"gray":  "#808080",
	"grey":  "#808080",
}

func parseColor(s string, fallback colorful.Color) colorful.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

var (
	fontsMu sync.Mutex
	fonts   = map[string]*truetype.Font{}
)

func fontData(bs boxStyle) (string, []byte) {
	switch {
	case bs.mono && bs.bold && bs.italic:
		return "gomonobolditalic", gomonobolditalic.TTF
	case bs.mono && bs.bold:
		return "gomonobold", gomonobold.TTF
	case bs.mono && bs.italic:
		return "gomonoitalic", gomonoitalic.TTF
	case bs.mono:
		return "gomono", gomono.TTF
	case bs.bold && bs.italic:
		return "gobolditalic", gobolditalic.TTF
	case bs.bold:
		return "gobold", gobold.TTF
	case bs.italic:
		return "goitalic", goitalic.TTF
	}
	return "goregular", goregular.TTF
}

// face returns a font face for the style at 72 dpi, so one point is one page
// pixel.
func face(bs boxStyle) (font.Face, error) {
	name, data := fontData(bs)

	fontsMu.Lock()
	f, ok := fonts[name]
	if !ok {
		var err error
		f, err = truetype.Parse(data)
		if err != nil {
			fontsMu.Unlock()
			return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
		}
		fonts[name] = f
	}
	fontsMu.Unlock()

	return truetype.NewFace(f, &truetype.Options{
		Size:    bs.fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func measure(f font.Face, s string) float64 {
	return float64(font.MeasureString(f, s)) / 64
}

// wrap breaks text into lines no wider than width, keeping explicit newlines.
// A single word wider than width gets a line of its own.
func wrap(f font.Face, text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if measure(f, line+" "+w) <= width {
				line += " " + w
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// visibleLines is how many lines of text fit inside a box.
func visibleLines(tb TextBox, bs boxStyle, total int) int {
	fit := int((tb.Height - 2*bs.padding) / bs.lineHeight())
	return max(0, min(fit, total))
}

func dashPattern(style string, width float64) []float64 {
	w := max(width, 1)
	switch style {
	case "dashed":
		return []float64{6 * w, 4 * w}
	case "dotted":
		return []float64{w, 2 * w}
	}
	return nil
}
