// Package render rasterizes the whiteboard scene: committed shapes, the live
// gesture preview and the selection overlay.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/viewport"
)

// Scene is everything painted in one frame.
type Scene struct {
	Shapes []shape.Shape
	// Preview is the shape being drawn or dragged, if any.
	Preview *shape.Shape
	// Box is the drag-select rectangle in world coordinates.
	Box       geom.Rect
	Transform viewport.Transform
	Theme     *theme.Theme
}

const (
	highlightPad  = 4
	highlightDash = 4
)

// Draw paints sc onto dst. It stops early and returns the context error when
// ctx is cancelled.
func Draw(ctx context.Context, dst *image.RGBA, sc Scene) error {
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}
	if sc.Transform.Scale <= 0 {
		sc.Transform = viewport.Identity()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	for _, s := range sc.Shapes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := drawShape(dst, s, sc.Transform, th); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if p := sc.Preview; p != nil {
		if err := drawShape(dst, *p, sc.Transform, th); err != nil {
			return err
		}
		if !p.Selected {
			dashedRect(dst, screenRect(p.Bounds(), sc.Transform), highlightDash, 1, th.PreviewStroke, th.Background)
		}
	}

	if !sc.Box.Normalize().Empty() {
		r := screenRect(sc.Box, sc.Transform)
		draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(nrgba(th.SelectionFill)), image.Point{}, draw.Over)
		outlineRect(dst, r, nrgba(th.SelectionStroke), 1)
	}
	return ctx.Err()
}

// Image renders sc into a new w by h image.
func Image(ctx context.Context, w, h int, sc Scene) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := Draw(ctx, img, sc); err != nil {
		return nil, err
	}
	return img, nil
}

func drawShape(dst *image.RGBA, s shape.Shape, t viewport.Transform, th *theme.Theme) error {
	r := worldToScreen(s.Bounds(), t)
	sw := s.Style.StrokeWidth * t.Scale
	fillCol, fillOK := styleColor(s.Style.Fill)
	strokeCol, strokeOK := styleColor(s.Style.Stroke)

	switch s.Kind {
	case shape.Rectangle:
		radius := s.Style.CornerRadius * t.Scale
		outline := func(r geom.Rect) polygon { return roundedRect(r, radius) }
		if fillOK {
			fill(dst, fillCol, outline(r))
		}
		if strokeOK && sw > 0 {
			outer := func(q geom.Rect) polygon {
				// the corner radius follows the stroke offset
				d := (q.Width - r.Width) / 2
				return roundedRect(q, math.Max(0, radius+d))
			}
			fill(dst, strokeCol, ring(r, sw, outer)...)
		}
	case shape.Ellipse:
		if fillOK {
			fill(dst, fillCol, ellipse(r))
		}
		if strokeOK && sw > 0 {
			fill(dst, strokeCol, ring(r, sw, ellipse)...)
		}
	case shape.Text:
		if fillOK {
			fill(dst, fillCol, roundedRect(r, 0))
		}
		col := color.Color(th.Foreground)
		if strokeOK {
			col = strokeCol
		}
		box := pixelRect(r)
		if s.Style.Text == "" && !s.Selected {
			dashedRect(dst, box, highlightDash, 1, th.PreviewStroke, th.Background)
		}
		if err := drawText(dst, box, s.Style.Text, col, s.Style.FontSize*t.Scale); err != nil {
			return err
		}
	}

	if s.Selected {
		dashedRect(dst, pixelRect(r).Inset(-highlightPad), highlightDash, 2, th.Highlight, th.HighlightAlt)
	}
	return nil
}

// HitTest returns the id of the topmost shape under the screen point, or ""
// for bare canvas. Strokes count as part of the shape.
func HitTest(shapes []shape.Shape, t viewport.Transform, p geom.Point) string {
	if t.Scale <= 0 {
		t = viewport.Identity()
	}
	w := t.ScreenToWorld(p)
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		b := s.Bounds()
		pad := s.Style.StrokeWidth / 2
		if s.Kind == shape.Ellipse {
			rx, ry := b.Width/2+pad, b.Height/2+pad
			if rx <= 0 || ry <= 0 {
				continue
			}
			dx := (w.X - (b.X + b.Width/2)) / rx
			dy := (w.Y - (b.Y + b.Height/2)) / ry
			if dx*dx+dy*dy <= 1 {
				return s.ID
			}
			continue
		}
		if inset(b, -pad).Contains(w) {
			return s.ID
		}
	}
	return ""
}

func worldToScreen(r geom.Rect, t viewport.Transform) geom.Rect {
	r = r.Normalize()
	tl := t.WorldToScreen(r.Min())
	return geom.Rect{X: tl.X, Y: tl.Y, Width: r.Width * t.Scale, Height: r.Height * t.Scale}
}

func screenRect(r geom.Rect, t viewport.Transform) image.Rectangle {
	return pixelRect(worldToScreen(r, t))
}

func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

// styleColor resolves a style colour, reporting false for invisible ones.
func styleColor(s string) (color.Color, bool) {
	c, err := shape.ParseColor(s)
	if err != nil || c.A == 0 {
		return nil, false
	}
	return nrgba(c), true
}

// nrgba reinterprets a parsed colour as straight alpha; hex and theme values
// are written unpremultiplied.
func nrgba(c color.RGBA) color.NRGBA { return color.NRGBA(c) }
