// Package shape defines the drawable entities of the whiteboard.
package shape

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/whiteboard/internal/geom"
)

// Kind discriminates the drawable shape types.
type Kind int

const (
	Rectangle Kind = iota
	Ellipse
	Text
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return Rectangle, nil
	case "ellipse", "circle":
		return Ellipse, nil
	case "text":
		return Text, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// Shape is a single drawable entity in world coordinates. X and Y are the
// anchor corner; Width and Height are only negative during live preview.
type Shape struct {
	ID       string
	Kind     Kind
	X, Y     float64
	Width    float64
	Height   float64
	Style    Style
	Selected bool
}

// NewID returns a fresh shape identifier.
func NewID() string {
	return uuid.NewString()
}

// Rect returns the raw anchored rectangle of the shape.
func (s Shape) Rect() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Bounds returns the normalized axis-aligned bounding box. For ellipses this
// is the enclosing box, which is the same rectangle the ellipse is drawn in.
func (s Shape) Bounds() geom.Rect {
	return s.Rect().Normalize()
}

// Normalize folds negative spans by moving the anchor.
func (s Shape) Normalize() Shape {
	b := s.Bounds()
	s.X, s.Y, s.Width, s.Height = b.X, b.Y, b.Width, b.Height
	return s
}

func (s Shape) String() string {
	sel := ""
	if s.Selected {
		sel = " selected"
	}
	return fmt.Sprintf("%s %s x=%g y=%g w=%g h=%g fill=%s stroke=%s/%g%s",
		s.ID, s.Kind, s.X, s.Y, s.Width, s.Height, s.Style.Fill, s.Style.Stroke, s.Style.StrokeWidth, sel)
}
