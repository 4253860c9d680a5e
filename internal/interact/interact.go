// Package interact turns pointer gestures into shape store mutations. A
// gesture runs from pointer-down to pointer-up and is interpreted by the
// handler of the tool that was active when it started.
package interact

import (
	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/tool"
	"github.com/example/whiteboard/internal/viewport"
)

// PointerEvent is a raw pointer sample in screen coordinates. Target is the
// id of the shape under the pointer as reported by the renderer's hit test,
// or empty for bare canvas.
type PointerEvent struct {
	Pos    geom.Point
	Target string
}

// Preview is the uncommitted state of a gesture in progress. It is never
// part of the store.
type Preview struct {
	// Shape is the shape being drawn or dragged, in world coordinates.
	Shape *shape.Shape
	// Box is the selection rectangle in world coordinates.
	Box    geom.Rect
	Active bool
}

// Action describes what a finished gesture did.
type Action int

const (
	ActionNone Action = iota
	ActionCreated
	ActionAreaSelected
	ActionPicked
	ActionMoved
	ActionCleared
	ActionPanned
	ActionCancelled
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionAreaSelected:
		return "area-selected"
	case ActionPicked:
		return "picked"
	case ActionMoved:
		return "moved"
	case ActionCleared:
		return "cleared"
	case ActionPanned:
		return "panned"
	case ActionCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Result reports the effect of a gesture.
type Result struct {
	Action Action
	// Shape is the created or moved shape.
	Shape *shape.Shape
	// Selected counts the shapes selected by an area select.
	Selected int
}

// Options tunes gesture recognition.
type Options struct {
	// MinShapeSize is the world-space span a drawn shape must exceed on
	// both axes to be committed.
	MinShapeSize float64
	// DragThreshold is the screen distance the pointer must travel before a
	// select gesture counts as a drag.
	DragThreshold float64
}

// DefaultOptions returns the gesture thresholds used when nothing is
// configured.
func DefaultOptions() Options {
	return Options{MinShapeSize: 5, DragThreshold: 4}
}

// handler interprets one gesture under one tool.
type handler interface {
	down(c *Controller, p point)
	move(c *Controller, p point)
	up(c *Controller, p point) Result
	cancel(c *Controller)
}

// point is a resolved pointer sample.
type point struct {
	screen geom.Point
	world  geom.Point
	target string
}

// Controller dispatches pointer events to the handler of the active tool.
type Controller struct {
	store *store.Store
	tools *tool.Machine
	view  *viewport.Controller
	opts  Options

	canvas    geom.Rect
	hasCanvas bool
	last      geom.Point

	active      handler
	gestureTool tool.Tool
	preview     Preview
}

// New wires a controller to its collaborators. Every tool transition aborts
// the gesture in progress and clears the selection.
func New(st *store.Store, tools *tool.Machine, view *viewport.Controller, opts Options) *Controller {
	d := DefaultOptions()
	if opts.MinShapeSize < 0 {
		opts.MinShapeSize = d.MinShapeSize
	}
	if opts.DragThreshold < 0 {
		opts.DragThreshold = d.DragThreshold
	}
	c := &Controller{store: st, tools: tools, view: view, opts: opts}
	tools.OnChange(func(from, to tool.Tool) {
		c.Cancel()
		c.store.ClearSelection()
	})
	return c
}

// SetCanvasSize records the visible canvas extent in screen pixels. Pointer
// samples outside it resolve to the last position seen inside.
func (c *Controller) SetCanvasSize(w, h float64) {
	if w <= 0 || h <= 0 {
		c.hasCanvas = false
		return
	}
	c.canvas = geom.Rect{Width: w, Height: h}
	c.hasCanvas = true
}

// Preview returns a copy of the live preview.
func (c *Controller) Preview() Preview {
	p := c.preview
	if p.Shape != nil {
		s := *p.Shape
		p.Shape = &s
	}
	return p
}

// InGesture reports whether a pointer-down is awaiting its pointer-up.
func (c *Controller) InGesture() bool { return c.active != nil }

// PointerDown starts a gesture under the current tool. A gesture that never
// saw its pointer-up is abandoned first. Presses outside the canvas start
// nothing.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.hasCanvas && !c.canvas.Contains(ev.Pos) {
		return
	}
	if c.active != nil {
		c.Cancel()
	}
	p := c.resolve(ev)
	c.gestureTool = c.tools.Current()
	c.active = handlerFor(c.gestureTool)
	c.active.down(c, p)
}

// PointerMove feeds a drag sample to the gesture in progress. Moves with no
// gesture are hover and do nothing.
func (c *Controller) PointerMove(ev PointerEvent) {
	if c.active == nil {
		return
	}
	if c.tools.Current() != c.gestureTool {
		c.Cancel()
		return
	}
	c.active.move(c, c.resolve(ev))
}

// PointerUp finishes the gesture and commits its effect.
func (c *Controller) PointerUp(ev PointerEvent) Result {
	if c.active == nil {
		return Result{}
	}
	if c.tools.Current() != c.gestureTool {
		c.Cancel()
		return Result{Action: ActionCancelled}
	}
	h := c.active
	p := c.resolve(ev)
	c.active = nil
	res := h.up(c, p)
	c.preview = Preview{}
	return res
}

// Cancel aborts the gesture in progress without committing anything. It
// reports whether there was a gesture to abort.
func (c *Controller) Cancel() bool {
	if c.active == nil {
		return false
	}
	c.active.cancel(c)
	c.active = nil
	c.preview = Preview{}
	return true
}

// Wheel zooms one step in (direction > 0) or out around the screen point.
func (c *Controller) Wheel(pos geom.Point, direction int) {
	c.view.ZoomStep(pos, direction)
}

func (c *Controller) resolve(ev PointerEvent) point {
	pos := ev.Pos
	if c.hasCanvas && !c.canvas.Contains(pos) {
		pos = c.last
	} else {
		c.last = pos
	}
	return point{screen: pos, world: c.view.ScreenToWorld(pos), target: ev.Target}
}

func handlerFor(t tool.Tool) handler {
	switch t {
	case tool.Grab:
		return &panHandler{}
	case tool.Rectangle, tool.Ellipse, tool.Text:
		kind, _ := t.Kind()
		return &drawHandler{kind: kind}
	default:
		return &selectHandler{}
	}
}
