package store

import (
	"testing"

	"github.com/example/whiteboard/internal/shape"
)

func rect(id string, x, y, w, h float64) shape.Shape {
	return shape.Shape{ID: id, Kind: shape.Rectangle, X: x, Y: y, Width: w, Height: h, Style: shape.DefaultStyle()}
}

func selectedIDs(s *Store) map[string]bool {
	out := map[string]bool{}
	for _, sh := range s.Shapes() {
		if sh.Selected {
			out[sh.ID] = true
		}
	}
	return out
}

func TestAppendSelectsOnlyNewShape(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(rect("a", 0, 0, 10, 10))
	b := rect("b", 20, 20, 10, 10)
	b.Style.StrokeWidth = 42
	got := s.Append(b)
	if !got.Selected {
		t.Fatalf("appended shape should be selected")
	}
	if got.Style.StrokeWidth != shape.DefaultStyle().StrokeWidth {
		t.Fatalf("stroke width %v should come from the default style", got.Style.StrokeWidth)
	}
	sel := selectedIDs(s)
	if len(sel) != 1 || !sel["b"] {
		t.Fatalf("unexpected selection %v", sel)
	}
}

func TestAppendGeneratesID(t *testing.T) {
	s := New(shape.DefaultStyle())
	got := s.Append(shape.Shape{Kind: shape.Ellipse, Width: 10, Height: 10})
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, ok := s.Get(got.ID); !ok {
		t.Fatalf("generated id not stored")
	}
}

func TestMoveMissingIsNoop(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(rect("a", 0, 0, 10, 10))
	before := s.Shapes()
	if s.Move("missing", 5, 5) {
		t.Fatalf("move of a missing id should report false")
	}
	after := s.Shapes()
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("collection changed: %v -> %v", before, after)
	}
	if !s.Move("a", 7, 8) {
		t.Fatalf("expected move to succeed")
	}
	if sh, _ := s.Get("a"); sh.X != 7 || sh.Y != 8 {
		t.Fatalf("unexpected position %+v", sh)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(rect("a", 0, 0, 10, 10))
	snap := s.Shapes()
	s.Move("a", 100, 100)
	if snap[0].X != 0 {
		t.Fatalf("snapshot observed a later mutation")
	}
}

func TestDeleteSelectedKeepsOrder(t *testing.T) {
	s := New(shape.DefaultStyle())
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Append(rect(id, 0, 0, 10, 10))
	}
	s.Select("b", "d")
	if n := s.DeleteSelected(); n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	got := s.Shapes()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected remaining shapes %v", got)
	}
	if len(s.Selected()) != 0 {
		t.Fatalf("selection should be empty after delete")
	}
}

func TestApplyStyleSelectedAndDefault(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(rect("a", 0, 0, 10, 10))
	s.Append(rect("b", 0, 0, 10, 10))
	s.SelectOnly("a")
	red := "red"
	if n := s.ApplyStyle(shape.StylePatch{Fill: &red}); n != 1 {
		t.Fatalf("styled %d shapes, want 1", n)
	}
	a, _ := s.Get("a")
	b, _ := s.Get("b")
	if a.Style.Fill != "red" {
		t.Fatalf("selected shape fill = %q", a.Style.Fill)
	}
	if b.Style.Fill != shape.DefaultStyle().Fill {
		t.Fatalf("unselected shape fill changed to %q", b.Style.Fill)
	}
	if s.DefaultStyle().Fill != "red" {
		t.Fatalf("default fill = %q", s.DefaultStyle().Fill)
	}
}

func TestSelectionOperationsOverwrite(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(rect("a", 0, 0, 10, 10))
	s.Append(rect("b", 50, 0, 10, 10))
	s.Append(rect("c", 100, 0, 10, 10))
	s.Select("a", "b")
	pred := func(sh shape.Shape) bool { return sh.X >= 50 }
	s.SelectByPredicate(pred)
	first := selectedIDs(s)
	s.SelectByPredicate(pred)
	second := selectedIDs(s)
	if len(first) != 2 || !first["b"] || !first["c"] {
		t.Fatalf("unexpected selection %v", first)
	}
	if len(second) != len(first) {
		t.Fatalf("selection not idempotent: %v vs %v", first, second)
	}
	s.SelectOnly("a")
	if sel := selectedIDs(s); len(sel) != 1 || !sel["a"] {
		t.Fatalf("select only = %v", sel)
	}
	s.Toggle("c")
	if sel := selectedIDs(s); len(sel) != 2 || !sel["c"] {
		t.Fatalf("toggle = %v", sel)
	}
	s.Select("a", "missing")
	if got := s.Selected(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("select with unknown id = %v", got)
	}
	s.ClearSelection()
	if len(selectedIDs(s)) != 0 {
		t.Fatalf("clear left a selection")
	}
}

func TestSetText(t *testing.T) {
	s := New(shape.DefaultStyle())
	s.Append(shape.Shape{ID: "t", Kind: shape.Text, Width: 50, Height: 20})
	if !s.SetText("t", "hello") {
		t.Fatalf("expected SetText to succeed")
	}
	if sh, _ := s.Get("t"); sh.Style.Text != "hello" {
		t.Fatalf("text = %q", sh.Style.Text)
	}
	if s.SetText("nope", "x") {
		t.Fatalf("SetText on missing id should be a no-op")
	}
}
