package export

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
)

// pxToPt converts 96 dpi page pixels to PDF points.
const pxToPt = 0.75

// RenderPDF writes a single-page PDF the size of the document's page.
func RenderPDF(d Document, w io.Writer) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: d.Width * pxToPt, Ht: d.Height * pxToPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(d.PageSize, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, tb := range d.TextBoxes {
		drawBoxPDF(pdf, tr, tb)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func drawBoxPDF(pdf *fpdf.Fpdf, tr func(string) string, tb TextBox) {
	bs := resolve(tb.Style)
	x, y := tb.X*pxToPt, tb.Y*pxToPt
	w, h := tb.Width*pxToPt, tb.Height*pxToPt

	if bs.background != nil {
		r, g, b := bs.background.RGB255()
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.Rect(x, y, w, h, "F")
	}

	if bs.borderWidth > 0 {
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(bs.borderWidth * pxToPt)
		if dash := dashPattern(bs.borderStyle, bs.borderWidth); dash != nil {
			pdf.SetDashPattern([]float64{dash[0] * pxToPt, dash[1] * pxToPt}, 0)
		}
		pdf.Rect(x, y, w, h, "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	family := "Helvetica"
	switch {
	case bs.mono:
		family = "Courier"
	case bs.serif:
		family = "Times"
	}
	style := ""
	if bs.bold {
		style += "B"
	}
	if bs.italic {
		style += "I"
	}
	if bs.underline {
		style += "U"
	}
	pdf.SetFont(family, style, bs.fontSize*pxToPt)

	r, g, b := bs.color.RGB255()
	pdf.SetTextColor(int(r), int(g), int(b))

	align := "L"
	switch bs.align {
	case "center":
		align = "C"
	case "right":
		align = "R"
	case "justify":
		align = "J"
	}

	pad := bs.padding * pxToPt
	pdf.ClipRect(x, y, w, h, false)
	pdf.SetXY(x+pad, y+pad)
	pdf.MultiCell(w-2*pad, bs.lineHeight()*pxToPt, tr(tb.Text), "", align, false)
	pdf.ClipEnd()
}
