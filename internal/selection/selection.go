// Package selection provides the area-selection geometry and the immutable
// id set that tracks which shapes are selected.
package selection

import (
	"sort"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/shape"
)

// Contains reports whether the whole bounding box of s lies inside box.
// Partial overlap does not count and a zero-area box selects nothing.
func Contains(s shape.Shape, box geom.Rect) bool {
	box = box.Normalize()
	if box.Empty() {
		return false
	}
	return box.ContainsRect(s.Bounds())
}

// Intersects reports whether s and box overlap at all.
func Intersects(s shape.Shape, box geom.Rect) bool {
	box = box.Normalize()
	if box.Empty() {
		return false
	}
	return box.Overlaps(s.Bounds())
}

// Set is an immutable set of shape ids. The zero value is empty and every
// method that changes membership returns a new Set.
type Set struct {
	ids map[string]struct{}
}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	if len(ids) == 0 {
		return Set{}
	}
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle returns a copy with id added if absent or removed if present.
func (s Set) Toggle(id string) Set {
	m := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		m[k] = struct{}{}
	}
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Retain returns the members for which keep reports true.
func (s Set) Retain(keep func(id string) bool) Set {
	m := make(map[string]struct{}, len(s.ids))
	for k := range s.ids {
		if keep(k) {
			m[k] = struct{}{}
		}
	}
	return Set{ids: m}
}

// Equal reports whether both sets hold the same ids.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s.ids {
		if !o.Has(k) {
			return false
		}
	}
	return true
}
