package render

import (
	"image"
	"image/color"
	"image/draw"
)

// dashedLine draws an axis-aligned line alternating c1 and c2 every dash
// pixels.
func dashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	if dash <= 0 {
		dash = 1
	}
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length = -length
		step = -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			if horiz {
				img.Set(x0+step*i, y0+t, col)
			} else {
				img.Set(x0+t, y0+step*i, col)
			}
		}
	}
}

func dashedRect(img *image.RGBA, r image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	dashedLine(img, r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, dash, thickness, c1, c2)
	dashedLine(img, r.Max.X, r.Min.Y, r.Max.X, r.Max.Y, dash, thickness, c1, c2)
	dashedLine(img, r.Max.X, r.Max.Y, r.Min.X, r.Max.Y, dash, thickness, c1, c2)
	dashedLine(img, r.Min.X, r.Max.Y, r.Min.X, r.Min.Y, dash, thickness, c1, c2)
}

func outlineRect(img *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	src := image.NewUniform(col)
	if r.Dx() <= 2*thick || r.Dy() <= 2*thick {
		draw.Draw(img, r.Intersect(img.Bounds()), src, image.Point{}, draw.Over)
		return
	}
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick),
		image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick),
	} {
		draw.Draw(img, edge.Intersect(img.Bounds()), src, image.Point{}, draw.Over)
	}
}
