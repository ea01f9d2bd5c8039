package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// RenderPNG draws the page at one image pixel per page unit.
func RenderPNG(d Document, w io.Writer) error {
	dc := gg.NewContext(int(math.Ceil(d.Width)), int(math.Ceil(d.Height)))
	dc.SetColor(color.White)
	dc.Clear()

	for _, tb := range d.TextBoxes {
		if err := drawBoxPNG(dc, tb); err != nil {
			return err
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func drawBoxPNG(dc *gg.Context, tb TextBox) error {
	bs := resolve(tb.Style)

	if bs.background != nil {
		dc.SetColor(*bs.background)
		dc.DrawRectangle(tb.X, tb.Y, tb.Width, tb.Height)
		dc.Fill()
	}

	if bs.borderWidth > 0 {
		dc.SetColor(color.Black)
		dc.SetLineWidth(bs.borderWidth)
		dc.SetDash(dashPattern(bs.borderStyle, bs.borderWidth)...)
		dc.DrawRectangle(tb.X, tb.Y, tb.Width, tb.Height)
		dc.Stroke()
		dc.SetDash()
	}

	f, err := face(bs)
	if err != nil {
		return err
	}
	dc.SetFontFace(f)
	dc.SetColor(bs.color)

	inner := tb.Width - 2*bs.padding
	lines := wrap(f, tb.Text, inner)
	n := visibleLines(tb, bs, len(lines))

	x, ax := tb.X+bs.padding, 0.0
	switch bs.align {
	case "center":
		x, ax = tb.X+tb.Width/2, 0.5
	case "right":
		x, ax = tb.X+tb.Width-bs.padding, 1
	}

	for i, line := range lines[:n] {
		top := tb.Y + bs.padding + float64(i)*bs.lineHeight()
		dc.DrawStringAnchored(line, x, top, ax, 1)
		if bs.underline {
			lw, _ := dc.MeasureString(line)
			left := x - ax*lw
			base := top + bs.fontSize + 2
			dc.SetLineWidth(max(1, bs.fontSize/16))
			dc.DrawLine(left, base, left+lw, base)
			dc.Stroke()
		}
	}
	return nil
}
