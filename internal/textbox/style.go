package textbox

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyleField is returned when a style property name is not one of
// the fields a text box carries.
var ErrUnknownStyleField = errors.New("unknown style field")

// Style is the whole-box presentation of a text box. Values are CSS-like strings.
type Style struct {
	FontSize       string `json:"fontSize"`
	FontFamily     string `json:"fontFamily"`
	FontWeight     string `json:"fontWeight"`
	FontStyle      string `json:"fontStyle"`
	TextDecoration string `json:"textDecoration"`
	TextAlign      string `json:"textAlign"`
	BorderWidth    string `json:"borderWidth"`
	BorderStyle    string `json:"borderStyle"`
}

// DefaultStyle is applied to every new box.
func DefaultStyle() Style {
	return Style{
		FontSize:       "16px",
		FontFamily:     "Arial",
		FontWeight:     "normal",
		FontStyle:      "normal",
		TextDecoration: "none",
		TextAlign:      "left",
		BorderWidth:    "1px",
		BorderStyle:    "dashed",
	}
}

// StyleField names one field of Style.
type StyleField int

const (
	FontSize StyleField = iota
	FontFamily
	FontWeight
	FontStyle
	TextDecoration
	TextAlign
	BorderWidth
	BorderStyle
)

// StyleFields lists every field in declaration order.
var StyleFields = []StyleField{FontSize, FontFamily, FontWeight, FontStyle, TextDecoration, TextAlign, BorderWidth, BorderStyle}

var styleFieldNames = [...]string{
	FontSize:       "fontSize",
	FontFamily:     "fontFamily",
	FontWeight:     "fontWeight",
	FontStyle:      "fontStyle",
	TextDecoration: "textDecoration",
	TextAlign:      "textAlign",
	BorderWidth:    "borderWidth",
	BorderStyle:    "borderStyle",
}

func (f StyleField) String() string {
	if f < 0 || int(f) >= len(styleFieldNames) {
		return fmt.Sprintf("StyleField(%d)", int(f))
	}
	return styleFieldNames[f]
}

func (f StyleField) Valid() bool {
	return f >= 0 && int(f) < len(styleFieldNames)
}

// ParseStyleField maps a property name ("fontWeight", "font-weight", ...) to
// its field.
func ParseStyleField(name string) (StyleField, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for i, n := range styleFieldNames {
		if strings.ToLower(n) == key {
			return StyleField(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStyleField, name)
}

// Get returns the value of f.
func (s Style) Get(f StyleField) string {
	switch f {
	case FontSize:
		return s.FontSize
	case FontFamily:
		return s.FontFamily
	case FontWeight:
		return s.FontWeight
	case FontStyle:
		return s.FontStyle
	case TextDecoration:
		return s.TextDecoration
	case TextAlign:
		return s.TextAlign
	case BorderWidth:
		return s.BorderWidth
	case BorderStyle:
		return s.BorderStyle
	}
	return ""
}

// With returns a copy of s with f set to v.
func (s Style) With(f StyleField, v string) Style {
	switch f {
	case FontSize:
		s.FontSize = v
	case FontFamily:
		s.FontFamily = v
	case FontWeight:
		s.FontWeight = v
	case FontStyle:
		s.FontStyle = v
	case TextDecoration:
		s.TextDecoration = v
	case TextAlign:
		s.TextAlign = v
	case BorderWidth:
		s.BorderWidth = v
	case BorderStyle:
		s.BorderStyle = v
	}
	return s
}
