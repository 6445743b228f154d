package raster

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

// WritePDF replays a draw-command buffer into a single-page PDF sized to the
// surface, in points.
func WritePDF(w io.Writer, commands []engine.DrawCommand, width, height int) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()

	for _, cmd := range commands {
		pdfCommand(pdf, cmd, width, height)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfCommand(pdf *gofpdf.Fpdf, cmd engine.DrawCommand, width, height int) {
	switch cmd.Op {
	case "clear":
		r, g, b := hexRGB(cmd.Fill)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(0, 0, float64(width), float64(height), "F")

	case "save":
		pdf.TransformBegin()

	case "restore":
		pdf.TransformEnd()

	case "rotate":
		// gofpdf rotates counter-clockwise; canvas rotation is clockwise
		// with y pointing down.
		pdf.TransformRotate(-cmd.Angle, cmd.CX, cmd.CY)

	case "path":
		pdfPath(pdf, cmd)

	case "circle":
		applyPaint(pdf, cmd)
		pdf.Circle(cmd.CX, cmd.CY, cmd.R, paintStyle(cmd))

	case "line":
		applyPaint(pdf, cmd)
		pdf.Line(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)

	case "text":
		r, g, b := hexRGB(cmd.Fill)
		pdf.SetTextColor(r, g, b)
		size := cmd.TextSize
		if size <= 0 {
			size = 12
		}
		pdf.SetFontSize(size)
		pdf.Text(cmd.X, cmd.Y, cmd.Text)
	}
}

func pdfPath(pdf *gofpdf.Fpdf, cmd engine.DrawCommand) {
	applyPaint(pdf, cmd)

	started := false
	for _, seg := range cmd.Path {
		if len(seg) == 0 {
			continue
		}
		op, ok := seg[0].(string)
		if !ok {
			continue
		}
		switch op {
		case "M":
			if len(seg) >= 3 {
				pdf.MoveTo(toFloat(seg[1]), toFloat(seg[2]))
				started = true
			}
		case "L":
			if len(seg) >= 3 && started {
				pdf.LineTo(toFloat(seg[1]), toFloat(seg[2]))
			}
		case "C":
			if len(seg) >= 7 && started {
				pdf.CurveBezierCubicTo(
					toFloat(seg[1]), toFloat(seg[2]),
					toFloat(seg[3]), toFloat(seg[4]),
					toFloat(seg[5]), toFloat(seg[6]),
				)
			}
		case "Z":
			if started {
				pdf.ClosePath()
			}
		}
	}

	if started {
		pdf.DrawPath(paintStyle(cmd))
	}
}

func applyPaint(pdf *gofpdf.Fpdf, cmd engine.DrawCommand) {
	if cmd.Fill != "" {
		r, g, b := hexRGB(cmd.Fill)
		pdf.SetFillColor(r, g, b)
	}
	if cmd.Stroke != "" {
		r, g, b := hexRGB(cmd.Stroke)
		pdf.SetDrawColor(r, g, b)
		width := cmd.StrokeWidth
		if width <= 0 {
			width = 1
		}
		pdf.SetLineWidth(width)
	}
	if len(cmd.Dash) > 0 {
		pdf.SetDashPattern(cmd.Dash, 0)
	} else {
		pdf.SetDashPattern([]float64{}, 0)
	}
}

// paintStyle maps the command's fill/stroke presence to a gofpdf path style.
func paintStyle(cmd engine.DrawCommand) string {
	switch {
	case cmd.Fill != "" && cmd.Stroke != "":
		return "FD"
	case cmd.Fill != "":
		return "F"
	default:
		return "D"
	}
}

// hexRGB parses a #rgb or #rrggbb color into 8-bit components. Unparseable
// colors come back black.
func hexRGB(hex string) (int, int, int) {
	if len(hex) == 0 || hex[0] != '#' {
		return 0, 0, 0
	}
	hex = hex[1:]

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16), int((v >> 8) & 0xff), int(v & 0xff)
}
