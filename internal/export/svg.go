package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// RenderSVG writes the page as an SVG document in page units.
func RenderSVG(d Document, w io.Writer) error {
	canvas := svg.New(w)
	width, height := round(d.Width), round(d.Height)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	for _, tb := range d.TextBoxes {
		if err := drawBoxSVG(canvas, tb); err != nil {
			return err
		}
	}

	canvas.End()
	return nil
}

func drawBoxSVG(canvas *svg.SVG, tb TextBox) error {
	bs := resolve(tb.Style)
	x, y, w, h := round(tb.X), round(tb.Y), round(tb.Width), round(tb.Height)

	canvas.Gid(tb.ID)
	if bs.background != nil {
		canvas.Rect(x, y, w, h, "fill:"+bs.background.Hex())
	}
	if bs.borderWidth > 0 {
		style := fmt.Sprintf("fill:none;stroke:#000000;stroke-width:%g", bs.borderWidth)
		if dash := dashPattern(bs.borderStyle, bs.borderWidth); dash != nil {
			style += fmt.Sprintf(";stroke-dasharray:%g,%g", dash[0], dash[1])
		}
		canvas.Rect(x, y, w, h, style)
	}

	f, err := face(bs)
	if err != nil {
		return err
	}
	lines := wrap(f, tb.Text, tb.Width-2*bs.padding)
	n := visibleLines(tb, bs, len(lines))

	tx, anchor := tb.X+bs.padding, "start"
	switch bs.align {
	case "center":
		tx, anchor = tb.X+tb.Width/2, "middle"
	case "right":
		tx, anchor = tb.X+tb.Width-bs.padding, "end"
	}

	style := []string{
		"font-family:" + cssFontFamily(tb.Style.FontFamily),
		fmt.Sprintf("font-size:%gpx", bs.fontSize),
		"fill:" + bs.color.Hex(),
		"text-anchor:" + anchor,
	}
	if bs.bold {
		style = append(style, "font-weight:bold")
	}
	if bs.italic {
		style = append(style, "font-style:italic")
	}
	if bs.underline {
		style = append(style, "text-decoration:underline")
	}
	joined := strings.Join(style, ";")

	for i, line := range lines[:n] {
		baseline := tb.Y + bs.padding + float64(i)*bs.lineHeight() + bs.fontSize
		canvas.Text(round(tx), round(baseline), line, joined)
	}
	canvas.Gend()
	return nil
}

// cssFontFamily makes a family name safe inside a quoted style attribute.
// svgo writes style strings unescaped and treats any string holding "=" as raw
// attributes.
func cssFontFamily(family string) string {
	family = strings.ReplaceAll(family, `"`, "'")
	return strings.Map(func(r rune) rune {
		switch {
		case r < ' ', r == '<', r == '>', r == '&', r == ';', r == '=':
			return -1
		}
		return r
	}, family)
}

func round(v float64) int {
	return int(math.Round(v))
}
