// Package export projects the editor state into the document consumed by
// renderers, and renders that document to PNG, SVG or PDF.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"posterpad/internal/geometry"
	"posterpad/internal/textbox"
)

var (
	// ErrUnknownFormat is returned for output formats no renderer handles.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrPageTooLarge is returned for pages with a side over MaxPageSide.
	ErrPageTooLarge = errors.New("page too large")
)

// MaxPageSide is the longest page side the renderers accept, twice the long
// side of the largest built-in poster preset.
const MaxPageSide = 2 * 4535.0

// Defaults for style fields a text box does not carry itself.
const (
	DefaultColor           = "#000000"
	DefaultBackgroundColor = "transparent"
	DefaultPadding         = "8px"
	DefaultMargin          = "0px"
)

// Document is the editor state handed to renderers. Geometry is in page
// space, unaffected by zoom.
type Document struct {
	PageSize  string    `json:"pageSize"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	TextBoxes []TextBox `json:"textBoxes"`
}

type TextBox struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  Style   `json:"style"`
}

type Style struct {
	FontFamily      string `json:"fontFamily"`
	FontSize        string `json:"fontSize"`
	FontWeight      string `json:"fontWeight"`
	FontStyle       string `json:"fontStyle"`
	TextDecoration  string `json:"textDecoration"`
	TextAlign       string `json:"textAlign"`
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	Padding         string `json:"padding"`
	Margin          string `json:"margin"`
	// Border fields are not part of the render contract but are kept so local
	// renderers can draw the box outline.
	BorderWidth string `json:"borderWidth,omitempty"`
	BorderStyle string `json:"borderStyle,omitempty"`
}

// Build projects boxes on a page into a Document. Unset style fields are
// filled from the defaults.
func Build(pageSize string, page geometry.Page, boxes []textbox.TextBox) Document {
	doc := Document{
		PageSize:  pageSize,
		Width:     page.Width,
		Height:    page.Height,
		TextBoxes: make([]TextBox, 0, len(boxes)),
	}
	for _, b := range boxes {
		doc.TextBoxes = append(doc.TextBoxes, TextBox{
			ID:     b.ID,
			Text:   b.Content,
			X:      b.Position.X,
			Y:      b.Position.Y,
			Width:  b.Size.Width,
			Height: b.Size.Height,
			Style:  exportStyle(b.Style),
		})
	}
	return doc
}

func exportStyle(s textbox.Style) Style {
	def := textbox.DefaultStyle()
	return Style{
		FontFamily:      or(s.FontFamily, def.FontFamily),
		FontSize:        or(s.FontSize, def.FontSize),
		FontWeight:      or(s.FontWeight, def.FontWeight),
		FontStyle:       or(s.FontStyle, def.FontStyle),
		TextDecoration:  or(s.TextDecoration, def.TextDecoration),
		TextAlign:       or(s.TextAlign, def.TextAlign),
		Color:           DefaultColor,
		BackgroundColor: DefaultBackgroundColor,
		Padding:         DefaultPadding,
		Margin:          DefaultMargin,
		BorderWidth:     or(s.BorderWidth, def.BorderWidth),
		BorderStyle:     or(s.BorderStyle, def.BorderStyle),
	}
}

// Normalize fills empty style fields of a decoded document.
func (d *Document) Normalize() {
	def := exportStyle(textbox.Style{})
	for i := range d.TextBoxes {
		s := &d.TextBoxes[i].Style
		s.FontFamily = or(s.FontFamily, def.FontFamily)
		s.FontSize = or(s.FontSize, def.FontSize)
		s.FontWeight = or(s.FontWeight, def.FontWeight)
		s.FontStyle = or(s.FontStyle, def.FontStyle)
		s.TextDecoration = or(s.TextDecoration, def.TextDecoration)
		s.TextAlign = or(s.TextAlign, def.TextAlign)
		s.Color = or(s.Color, def.Color)
		s.BackgroundColor = or(s.BackgroundColor, def.BackgroundColor)
		s.Padding = or(s.Padding, def.Padding)
		s.Margin = or(s.Margin, def.Margin)
		s.BorderWidth = or(s.BorderWidth, def.BorderWidth)
		s.BorderStyle = or(s.BorderStyle, def.BorderStyle)
	}
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// Decode reads a document and fills any missing style fields.
func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := checkPage(d.Width, d.Height); err != nil {
		return Document{}, err
	}
	d.Normalize()
	return d, nil
}

// Format is an output file type.
type Format string

const (
	JSON Format = "json"
	PNG  Format = "png"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch f := Format(ext); f {
	case JSON, PNG, SVG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Write outputs the document in format f.
func Write(d Document, f Format, w io.Writer) error {
	switch f {
	case JSON:
		return d.Encode(w)
	case PNG, SVG, PDF:
		if err := checkPage(d.Width, d.Height); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}

	switch f {
	case PNG:
		return RenderPNG(d, w)
	case SVG:
		return RenderSVG(d, w)
	}
	return RenderPDF(d, w)
}

func checkPage(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("document page %vx%v is empty", width, height)
	}
	if width > MaxPageSide || height > MaxPageSide {
		return fmt.Errorf("%w: %vx%v, limit %v", ErrPageTooLarge, width, height, MaxPageSide)
	}
	return nil
}
