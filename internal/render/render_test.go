package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/viewport"
)

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2 && d(a.A, b.A) <= 2
}

func rect(id string, x, y, w, h float64, st shape.Style) shape.Shape {
	return shape.Shape{ID: id, Kind: shape.Rectangle, X: x, Y: y, Width: w, Height: h, Style: st}
}

func TestDrawFillsAndStrokes(t *testing.T) {
	st := shape.Style{Fill: "red", Stroke: "#0000FF", StrokeWidth: 4}
	sc := Scene{
		Shapes:    []shape.Shape{rect("a", 50, 50, 100, 80, st)},
		Transform: viewport.Identity(),
	}
	img, err := Image(context.Background(), 200, 200, sc)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	bg := theme.Default().Background
	if got := img.RGBAAt(10, 10); !near(got, bg) {
		t.Fatalf("background = %v want %v", got, bg)
	}
	if got := img.RGBAAt(100, 90); !near(got, color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("interior = %v", got)
	}
	if got := img.RGBAAt(50, 90); !near(got, color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("stroke = %v", got)
	}
}

func TestDrawAppliesTransform(t *testing.T) {
	st := shape.Style{Fill: "lime", Stroke: "transparent"}
	sc := Scene{
		Shapes:    []shape.Shape{rect("a", 10, 10, 20, 20, st)},
		Transform: viewport.Transform{Scale: 2, Position: geom.Pt(5, 5)},
	}
	img, err := Image(context.Background(), 100, 100, sc)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	// world (10,10)-(30,30) lands on screen (25,25)-(65,65)
	if got := img.RGBAAt(60, 60); !near(got, color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("transformed interior = %v", got)
	}
	if got := img.RGBAAt(20, 20); near(got, color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("pixel outside the shape was filled")
	}
}

func TestSelectionOverlay(t *testing.T) {
	th := theme.Default()
	sel := rect("a", 40, 40, 40, 40, shape.Style{Stroke: "transparent"})
	sel.Selected = true
	sc := Scene{
		Shapes:    []shape.Shape{sel},
		Box:       geom.Rect{X: 100, Y: 100, Width: 50, Height: 50},
		Transform: viewport.Identity(),
		Theme:     th,
	}
	img, err := Image(context.Background(), 200, 200, sc)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.RGBAAt(40-highlightPad, 40-highlightPad); !near(got, th.Highlight) {
		t.Fatalf("highlight corner = %v want %v", got, th.Highlight)
	}
	if got := img.RGBAAt(100, 120); !near(got, th.SelectionStroke) {
		t.Fatalf("box edge = %v want %v", got, th.SelectionStroke)
	}
	if got := img.RGBAAt(125, 125); near(got, th.Background) {
		t.Fatalf("box interior was not tinted")
	}
}

func TestDrawText(t *testing.T) {
	st := shape.Style{Fill: "transparent", Stroke: "white", FontSize: 20, Text: "Hello"}
	s := shape.Shape{ID: "t", Kind: shape.Text, X: 10, Y: 10, Width: 150, Height: 40, Style: st}
	img, err := Image(context.Background(), 200, 100, Scene{Shapes: []shape.Shape{s}})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	lit := 0
	for y := 10; y < 50; y++ {
		for x := 10; x < 160; x++ {
			if img.RGBAAt(x, y).R > 200 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("no text pixels drawn")
	}
	if got := img.RGBAAt(190, 90); !near(got, theme.Default().Background) {
		t.Fatalf("text leaked outside its box: %v", got)
	}
}

func TestDrawHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := Draw(ctx, img, Scene{Shapes: []shape.Shape{rect("a", 0, 0, 5, 5, shape.DefaultStyle())}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestHitTestPicksTopmost(t *testing.T) {
	st := shape.Style{StrokeWidth: 2}
	shapes := []shape.Shape{
		rect("under", 0, 0, 100, 100, st),
		rect("over", 50, 50, 100, 100, st),
		{ID: "round", Kind: shape.Ellipse, X: 200, Y: 0, Width: 100, Height: 100, Style: st},
	}
	id := viewport.Identity()
	cases := []struct {
		p    geom.Point
		want string
	}{
		{geom.Pt(75, 75), "over"},
		{geom.Pt(10, 10), "under"},
		{geom.Pt(250, 50), "round"},
		{geom.Pt(202, 2), ""},
		{geom.Pt(400, 400), ""},
	}
	for _, c := range cases {
		if got := HitTest(shapes, id, c.p); got != c.want {
			t.Fatalf("HitTest(%v) = %q want %q", c.p, got, c.want)
		}
	}
	zoomed := viewport.Transform{Scale: 2}
	if got := HitTest(shapes, zoomed, geom.Pt(20, 20)); got != "under" {
		t.Fatalf("zoomed hit = %q", got)
	}
}
