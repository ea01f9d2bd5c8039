// Package toolbar exposes the selected text box's style to editing controls.
package toolbar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"posterpad/internal/textbox"
)

var (
	FontFamilies = []string{"Arial", "Helvetica", "Times New Roman", "Courier New", "Georgia", "Verdana"}
	Alignments   = []string{"left", "center", "right", "justify"}
	BorderStyles = []string{"dashed", "solid", "dotted", "double", "none"}
)

const (
	minFontSize    = 6
	maxFontSize    = 144
	maxBorderWidth = 20
)

// Bindings reads and writes the selected box's style. It keeps no state of
// its own.
type Bindings struct {
	store *textbox.Store
}

func New(store *textbox.Store) *Bindings {
	return &Bindings{store: store}
}

// GetSelectedStyle returns the selected box's value for field, or "" when
// nothing is selected.
func (b *Bindings) GetSelectedStyle(field textbox.StyleField) string {
	box, ok := b.store.SelectedBox()
	if !ok {
		return ""
	}
	return box.Style.Get(field)
}

// SetSelectedStyle does nothing when nothing is selected.
func (b *Bindings) SetSelectedStyle(field textbox.StyleField, value string) {
	id, ok := b.store.Selected()
	if !ok {
		return
	}
	b.store.UpdateStyle(id, field, value)
}

// SetSelectedStyleByName validates a property name before writing it.
func (b *Bindings) SetSelectedStyleByName(name, value string) error {
	field, err := textbox.ParseStyleField(name)
	if err != nil {
		return err
	}
	b.SetSelectedStyle(field, value)
	return nil
}

func (b *Bindings) toggle(field textbox.StyleField, on, off string) {
	if b.GetSelectedStyle(field) == on {
		b.SetSelectedStyle(field, off)
	} else {
		b.SetSelectedStyle(field, on)
	}
}

func (b *Bindings) ToggleBold()      { b.toggle(textbox.FontWeight, "bold", "normal") }
func (b *Bindings) ToggleItalic()    { b.toggle(textbox.FontStyle, "italic", "normal") }
func (b *Bindings) ToggleUnderline() { b.toggle(textbox.TextDecoration, "underline", "none") }

func (b *Bindings) cycle(field textbox.StyleField, values []string) {
	if _, ok := b.store.Selected(); !ok {
		return
	}
	i := slices.Index(values, b.GetSelectedStyle(field))
	b.SetSelectedStyle(field, values[(i+1)%len(values)])
}

func (b *Bindings) CycleAlign()       { b.cycle(textbox.TextAlign, Alignments) }
func (b *Bindings) CycleFontFamily()  { b.cycle(textbox.FontFamily, FontFamilies) }
func (b *Bindings) CycleBorderStyle() { b.cycle(textbox.BorderStyle, BorderStyles) }

// StepFontSize changes the font size by n pixels, within 6-144px.
func (b *Bindings) StepFontSize(n int) {
	b.step(textbox.FontSize, n, minFontSize, maxFontSize, 16)
}

// StepBorderWidth changes the border width by n pixels, within 0-20px.
func (b *Bindings) StepBorderWidth(n int) {
	b.step(textbox.BorderWidth, n, 0, maxBorderWidth, 1)
}

func (b *Bindings) step(field textbox.StyleField, n, lo, hi, fallback int) {
	if _, ok := b.store.Selected(); !ok {
		return
	}
	v, err := ParsePixels(b.GetSelectedStyle(field))
	if err != nil {
		v = fallback
	}
	b.SetSelectedStyle(field, Pixels(max(lo, min(v+n, hi))))
}

// ParsePixels reads "12px" or "12" as 12.
func ParsePixels(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pixel value %q: %w", s, err)
	}
	return int(f), nil
}

func Pixels(n int) string {
	return strconv.Itoa(n) + "px"
}
