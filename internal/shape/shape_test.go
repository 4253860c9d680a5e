package shape

import (
	"image/color"
	"testing"
)

func TestBoundsNormalizesEllipse(t *testing.T) {
	s := Shape{Kind: Ellipse, X: 100, Y: 100, Width: -40, Height: -20}
	b := s.Bounds()
	if b.X != 60 || b.Y != 80 || b.Width != 40 || b.Height != 20 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

func TestStyleApplyOnlyTouchesSetFields(t *testing.T) {
	red := "red"
	got := DefaultStyle().Apply(StylePatch{Fill: &red})
	want := DefaultStyle()
	want.Fill = "red"
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestStylePatchSetField(t *testing.T) {
	var p StylePatch
	if err := p.SetField("stroke_width", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StrokeWidth == nil || *p.StrokeWidth != 7 {
		t.Fatalf("stroke width not set: %+v", p)
	}
	if err := p.SetField("fill", "not-a-colour"); err == nil {
		t.Fatalf("expected colour error")
	}
	if err := p.SetField("bogus", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"transparent": {},
		"white":       {255, 255, 255, 255},
		"#FF0000":     {255, 0, 0, 255},
		"#00ff0080":   {0, 255, 0, 128},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %v want %v", in, got, want)
		}
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatalf("expected distinct ids")
	}
}
