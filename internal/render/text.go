package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce  sync.Once
	fontErr   error
	regular   *opentype.Font
	faceCache sync.Map // map[float64]font.Face
)

// faceForSize returns a Go Regular face at the given pixel size. Sizes are
// rounded to half pixels so zooming does not grow the cache without bound.
func faceForSize(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	size = math.Round(size*2) / 2
	if size < 1 {
		size = 1
	}
	if face, ok := faceCache.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := faceCache.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// wrap breaks text into lines no wider than width, keeping explicit newlines.
// A word longer than the width gets a line of its own.
func wrap(face font.Face, text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate).Ceil() > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// drawText lays text out inside box, clipped to it.
func drawText(dst *image.RGBA, box image.Rectangle, text string, col color.Color, size float64) error {
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() || text == "" {
		return nil
	}
	face, err := faceForSize(size)
	if err != nil {
		return err
	}
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = (m.Ascent + m.Descent).Ceil()
	}
	d := &font.Drawer{
		Dst:  dst.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: face,
	}
	y := box.Min.Y + m.Ascent.Ceil()
	for _, line := range wrap(face, text, box.Dx()) {
		if y-m.Ascent.Ceil() > clip.Max.Y {
			break
		}
		d.Dot = fixed.P(box.Min.X, y)
		d.DrawString(line)
		y += lineHeight
	}
	return nil
}
