package interact

import (
	"math"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/selection"
	"github.com/example/whiteboard/internal/shape"
)

// drawHandler creates a shape spanning the pointer-down anchor to the
// pointer-up position.
type drawHandler struct {
	kind   shape.Kind
	anchor geom.Point
}

func (h *drawHandler) candidate(c *Controller, p geom.Point) shape.Shape {
	r := geom.RectFromPoints(h.anchor, p)
	return shape.Shape{
		Kind:   h.kind,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Style:  c.store.DefaultStyle(),
	}
}

func (h *drawHandler) down(c *Controller, p point) {
	h.anchor = p.world
	s := h.candidate(c, p.world)
	c.preview = Preview{Shape: &s, Active: true}
}

func (h *drawHandler) move(c *Controller, p point) {
	s := h.candidate(c, p.world)
	c.preview = Preview{Shape: &s, Active: true}
}

func (h *drawHandler) up(c *Controller, p point) Result {
	s := h.candidate(c, p.world)
	limit := c.opts.MinShapeSize
	if math.Abs(s.Width) <= limit || math.Abs(s.Height) <= limit {
		return Result{}
	}
	committed := c.store.Append(s.Normalize())
	return Result{Action: ActionCreated, Shape: &committed}
}

func (h *drawHandler) cancel(c *Controller) {}

// selectHandler covers the SELECT tool: picking and dragging a hit shape,
// area selection on bare canvas, and deselect on a plain click.
type selectHandler struct {
	startScreen geom.Point
	startWorld  geom.Point
	dragging    bool

	// picked is set when the gesture started on a shape.
	picked *shape.Shape
}

func (h *selectHandler) down(c *Controller, p point) {
	h.startScreen = p.screen
	h.startWorld = p.world
	if p.target != "" {
		if s, ok := c.store.Get(p.target); ok {
			c.store.SelectOnly(s.ID)
			h.picked = &s
			return
		}
	}
	c.preview = Preview{Box: geom.Rect{X: p.world.X, Y: p.world.Y}, Active: true}
}

func (h *selectHandler) passedThreshold(c *Controller, p point) bool {
	return geom.Distance(h.startScreen, p.screen) > c.opts.DragThreshold
}

func (h *selectHandler) move(c *Controller, p point) {
	if !h.dragging && !h.passedThreshold(c, p) {
		return
	}
	h.dragging = true
	if h.picked != nil {
		d := p.world.Sub(h.startWorld)
		s := *h.picked
		s.X += d.X
		s.Y += d.Y
		s.Selected = true
		c.preview = Preview{Shape: &s, Active: true}
		return
	}
	c.preview = Preview{Box: geom.RectFromPoints(h.startWorld, p.world), Active: true}
}

func (h *selectHandler) up(c *Controller, p point) Result {
	if !h.dragging && h.passedThreshold(c, p) {
		h.dragging = true
	}
	if h.picked != nil {
		if !h.dragging {
			s := *h.picked
			return Result{Action: ActionPicked, Shape: &s}
		}
		d := p.world.Sub(h.startWorld)
		x, y := h.picked.X+d.X, h.picked.Y+d.Y
		if !c.store.Move(h.picked.ID, x, y) {
			return Result{}
		}
		s, _ := c.store.Get(h.picked.ID)
		return Result{Action: ActionMoved, Shape: &s}
	}
	if !h.dragging {
		c.store.ClearSelection()
		return Result{Action: ActionCleared}
	}
	box := geom.RectFromPoints(h.startWorld, p.world)
	if box.Normalize().Empty() {
		return Result{}
	}
	c.store.SelectByPredicate(func(s shape.Shape) bool {
		return selection.Contains(s, box)
	})
	return Result{Action: ActionAreaSelected, Selected: len(c.store.Selected())}
}

func (h *selectHandler) cancel(c *Controller) {}

// panHandler translates the viewport while the pointer drags.
type panHandler struct {
	last  geom.Point
	moved bool
}

func (h *panHandler) down(c *Controller, p point) {
	h.last = p.screen
}

func (h *panHandler) step(c *Controller, p point) {
	d := p.screen.Sub(h.last)
	if d.X == 0 && d.Y == 0 {
		return
	}
	c.view.Pan(d.X, d.Y)
	h.last = p.screen
	h.moved = true
}

func (h *panHandler) move(c *Controller, p point) { h.step(c, p) }

func (h *panHandler) up(c *Controller, p point) Result {
	h.step(c, p)
	if !h.moved {
		return Result{}
	}
	return Result{Action: ActionPanned}
}

func (h *panHandler) cancel(c *Controller) {}
