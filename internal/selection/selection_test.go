package selection

import (
	"testing"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/shape"
)

func TestContainsFullVersusPartial(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, Width: 200, Height: 200}
	a := shape.Shape{ID: "a", Kind: shape.Rectangle, X: 10, Y: 10, Width: 50, Height: 50}
	b := shape.Shape{ID: "b", Kind: shape.Ellipse, X: 150, Y: 150, Width: 100, Height: 100}
	if !Contains(a, box) {
		t.Fatalf("expected a to be contained")
	}
	if Contains(b, box) {
		t.Fatalf("partially overlapping b must not be selected")
	}
	if !Intersects(b, box) {
		t.Fatalf("expected b to intersect")
	}
}

func TestContainsNegativeBoxAndShape(t *testing.T) {
	box := geom.Rect{X: 200, Y: 200, Width: -200, Height: -200}
	s := shape.Shape{Kind: shape.Text, X: 120, Y: 120, Width: -100, Height: -100}
	if !Contains(s, box) {
		t.Fatalf("expected containment after normalization")
	}
}

func TestDegenerateBoxSelectsNothing(t *testing.T) {
	s := shape.Shape{Kind: shape.Rectangle, X: 0, Y: 0, Width: 0, Height: 0}
	if Contains(s, geom.Rect{X: 0, Y: 0, Width: 0, Height: 10}) {
		t.Fatalf("zero-area box must select nothing")
	}
}

func TestSetIsImmutable(t *testing.T) {
	base := NewSet("a", "b")
	toggled := base.Toggle("a")
	if !base.Has("a") {
		t.Fatalf("toggle mutated the original set")
	}
	if toggled.Has("a") || !toggled.Has("b") {
		t.Fatalf("unexpected toggled set %v", toggled.IDs())
	}
	if !toggled.Toggle("a").Equal(base) {
		t.Fatalf("double toggle should restore membership")
	}
	var empty Set
	if empty.Has("x") || empty.Len() != 0 {
		t.Fatalf("zero set should be empty")
	}
	kept := base.Retain(func(id string) bool { return id == "b" })
	if got := kept.IDs(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("retain = %v", got)
	}
}
