// Package raster replays engine draw commands onto concrete backends: a gg
// software canvas for bitmap export and a gofpdf document for PDF export.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

// Replay executes a draw-command buffer onto a fresh gg context and returns
// the rendered image. fonts supplies faces for "text" commands; with a nil
// source text is skipped.
func Replay(commands []engine.DrawCommand, width, height int, fonts *text.FontSource) (image.Image, error) {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	for _, cmd := range commands {
		if err := replayCommand(dc, cmd, width, height, fonts); err != nil {
			return nil, fmt.Errorf("replay %s: %w", cmd.Op, err)
		}
	}

	return dc.Image(), nil
}

// EncodePNG renders a draw-command buffer and writes it as PNG.
func EncodePNG(w io.Writer, commands []engine.DrawCommand, width, height int, fonts *text.FontSource) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	for _, cmd := range commands {
		if err := replayCommand(dc, cmd, width, height, fonts); err != nil {
			return fmt.Errorf("replay %s: %w", cmd.Op, err)
		}
	}

	return dc.EncodePNG(w)
}

func replayCommand(dc *gg.Context, cmd engine.DrawCommand, width, height int, fonts *text.FontSource) error {
	switch cmd.Op {
	case "clear":
		dc.SetHexColor(cmd.Fill)
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		return dc.Fill()

	case "save":
		dc.Push()

	case "restore":
		dc.Pop()

	case "rotate":
		dc.RotateAbout(cmd.Angle*math.Pi/180, cmd.CX, cmd.CY)

	case "path":
		buildPath(dc, cmd.Path)
		return paint(dc, cmd)

	case "circle":
		dc.DrawCircle(cmd.CX, cmd.CY, cmd.R)
		return paint(dc, cmd)

	case "line":
		dc.DrawLine(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)
		return paint(dc, cmd)

	case "text":
		if fonts == nil || cmd.Text == "" {
			return nil
		}
		size := cmd.TextSize
		if size <= 0 {
			size = 16
		}
		dc.SetFont(fonts.Face(size))
		dc.SetHexColor(cmd.Fill)
		dc.DrawString(cmd.Text, cmd.X, cmd.Y)
	}

	return nil
}

func buildPath(dc *gg.Context, path []engine.PathCommand) {
	dc.ClearPath()
	for _, seg := range path {
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
				dc.MoveTo(toFloat(seg[1]), toFloat(seg[2]))
			}
		case "L":
			if len(seg) >= 3 {
				dc.LineTo(toFloat(seg[1]), toFloat(seg[2]))
			}
		case "C":
			if len(seg) >= 7 {
				dc.CubicTo(
					toFloat(seg[1]), toFloat(seg[2]),
					toFloat(seg[3]), toFloat(seg[4]),
					toFloat(seg[5]), toFloat(seg[6]),
				)
			}
		case "Z":
			dc.ClosePath()
		}
	}
}

// paint fills then strokes the current path per the command's style. Fill is
// painted before stroke, matching closed-shape rendering order.
func paint(dc *gg.Context, cmd engine.DrawCommand) error {
	if cmd.Fill != "" {
		dc.SetHexColor(cmd.Fill)
		if cmd.Stroke == "" {
			return dc.Fill()
		}
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}

	if cmd.Stroke == "" {
		dc.ClearPath()
		return nil
	}

	dc.SetHexColor(cmd.Stroke)
	width := cmd.StrokeWidth
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width)
	dc.SetLineCap(lineCap(cmd.LineCap))
	dc.SetLineJoin(lineJoin(cmd.LineJoin))
	if len(cmd.Dash) > 0 {
		dc.SetDash(cmd.Dash...)
	} else {
		dc.ClearDash()
	}
	return dc.Stroke()
}

func lineCap(name string) gg.LineCap {
	switch name {
	case "round":
		return gg.LineCapRound
	case "square":
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func lineJoin(name string) gg.LineJoin {
	switch name {
	case "round":
		return gg.LineJoinRound
	case "bevel":
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
