// Package store holds the authoritative, ordered shape collection and the
// current selection. Every mutation builds a new collection and swaps it in
// whole, so a reader never sees a half-applied change.
package store

import (
	"github.com/example/whiteboard/internal/selection"
	"github.com/example/whiteboard/internal/shape"
)

// Store is the shape collection of one editing session. It is not safe for
// concurrent use; all access happens on the event loop.
type Store struct {
	shapes       []shape.Shape
	selected     selection.Set
	defaultStyle shape.Style
}

// New returns an empty store using style as the session default.
func New(style shape.Style) *Store {
	return &Store{defaultStyle: style}
}

// Len returns the number of committed shapes.
func (s *Store) Len() int { return len(s.shapes) }

// Shapes returns a snapshot of the collection in paint order. Each copy has
// Selected set from the current selection.
func (s *Store) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		sh.Selected = s.selected.Has(sh.ID)
		out[i] = sh
	}
	return out
}

// Get returns the shape with id.
func (s *Store) Get(id string) (shape.Shape, bool) {
	for _, sh := range s.shapes {
		if sh.ID == id {
			sh.Selected = s.selected.Has(id)
			return sh, true
		}
	}
	return shape.Shape{}, false
}

// Selected returns the ids of the selected shapes, sorted.
func (s *Store) Selected() []string { return s.selected.IDs() }

// Selection returns the current selection set.
func (s *Store) Selection() selection.Set { return s.selected }

// SelectedShapes returns the selected shapes in paint order.
func (s *Store) SelectedShapes() []shape.Shape {
	var out []shape.Shape
	for _, sh := range s.Shapes() {
		if sh.Selected {
			out = append(out, sh)
		}
	}
	return out
}

// DefaultStyle returns the style used for newly drawn shapes.
func (s *Store) DefaultStyle() shape.Style { return s.defaultStyle }

// SetDefaultStyle replaces the session default style.
func (s *Store) SetDefaultStyle(style shape.Style) { s.defaultStyle = style }

// Append adds sh at the top of the paint order and makes it the only selected
// shape. The stroke width always comes from the session default. A missing
// id is generated.
func (s *Store) Append(sh shape.Shape) shape.Shape {
	if sh.ID == "" {
		sh.ID = shape.NewID()
	}
	sh.Style.StrokeWidth = s.defaultStyle.StrokeWidth
	sh.Selected = false
	next := make([]shape.Shape, len(s.shapes), len(s.shapes)+1)
	copy(next, s.shapes)
	next = append(next, sh)
	s.shapes = next
	s.selected = selection.NewSet(sh.ID)
	sh.Selected = true
	return sh
}

// Move repositions the shape with id. It reports false, changing nothing,
// when no such shape exists.
func (s *Store) Move(id string, x, y float64) bool {
	return s.update(id, func(sh *shape.Shape) {
		sh.X, sh.Y = x, y
	})
}

// SetText replaces the text content of the shape with id.
func (s *Store) SetText(id, text string) bool {
	return s.update(id, func(sh *shape.Shape) {
		sh.Style.Text = text
	})
}

func (s *Store) update(id string, fn func(*shape.Shape)) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	next := make([]shape.Shape, len(s.shapes))
	copy(next, s.shapes)
	fn(&next[idx])
	s.shapes = next
	return true
}

// ApplyStyle merges patch into every selected shape and into the session
// default style. It returns the number of shapes changed.
func (s *Store) ApplyStyle(patch shape.StylePatch) int {
	s.defaultStyle = s.defaultStyle.Apply(patch)
	next := make([]shape.Shape, len(s.shapes))
	n := 0
	for i, sh := range s.shapes {
		if s.selected.Has(sh.ID) {
			sh.Style = sh.Style.Apply(patch)
			n++
		}
		next[i] = sh
	}
	s.shapes = next
	return n
}

// DeleteSelected removes every selected shape, keeping the order of the
// rest, and returns how many were removed.
func (s *Store) DeleteSelected() int {
	next := make([]shape.Shape, 0, len(s.shapes))
	for _, sh := range s.shapes {
		if !s.selected.Has(sh.ID) {
			next = append(next, sh)
		}
	}
	removed := len(s.shapes) - len(next)
	s.shapes = next
	s.selected = selection.Set{}
	return removed
}

// SelectOnly makes id the whole selection. An unknown id clears it.
func (s *Store) SelectOnly(id string) {
	if s.index(id) < 0 {
		s.selected = selection.Set{}
		return
	}
	s.selected = selection.NewSet(id)
}

// Select replaces the selection with the given ids; unknown ids are dropped.
func (s *Store) Select(ids ...string) {
	s.selected = selection.NewSet(ids...).Retain(func(id string) bool { return s.index(id) >= 0 })
}

// Toggle flips the selection state of id if it exists.
func (s *Store) Toggle(id string) {
	if s.index(id) < 0 {
		return
	}
	s.selected = s.selected.Toggle(id)
}

// SelectByPredicate overwrites the selection with exactly the shapes for
// which pred reports true.
func (s *Store) SelectByPredicate(pred func(shape.Shape) bool) {
	var ids []string
	for _, sh := range s.shapes {
		if pred(sh) {
			ids = append(ids, sh.ID)
		}
	}
	s.selected = selection.NewSet(ids...)
}

// ClearSelection deselects every shape.
func (s *Store) ClearSelection() {
	s.selected = selection.Set{}
}

func (s *Store) index(id string) int {
	for i, sh := range s.shapes {
		if sh.ID == id {
			return i
		}
	}
	return -1
}
