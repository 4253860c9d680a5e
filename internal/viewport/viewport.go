// Package viewport owns the pan/zoom state of the canvas and the mapping
// between screen and world coordinates.
package viewport

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/example/whiteboard/internal/geom"
)

// Transform is the stage placement: world = (screen - Position) / Scale.
type Transform struct {
	Scale    float64
	Position geom.Point
}

// Identity is the untransformed stage.
func Identity() Transform { return Transform{Scale: 1} }

// ScreenToWorld maps a screen point into world space.
func (t Transform) ScreenToWorld(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - t.Position.X) / t.Scale, Y: (p.Y - t.Position.Y) / t.Scale}
}

// WorldToScreen maps a world point onto the screen.
func (t Transform) WorldToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X*t.Scale + t.Position.X, Y: p.Y*t.Scale + t.Position.Y}
}

// Matrix returns the world-to-screen affine matrix.
func (t Transform) Matrix() f64.Aff3 {
	return f64.Aff3{
		t.Scale, 0, t.Position.X,
		0, t.Scale, t.Position.Y,
	}
}

// Config bounds the zoom range.
type Config struct {
	MinScale float64
	MaxScale float64
	// ZoomStep is the factor applied per wheel notch.
	ZoomStep float64
}

// DefaultConfig returns the zoom limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{MinScale: 0.1, MaxScale: 10, ZoomStep: 1.1}
}

func (c Config) sanitize() Config {
	d := DefaultConfig()
	if c.MinScale <= 0 {
		c.MinScale = d.MinScale
	}
	if c.MaxScale <= 0 {
		c.MaxScale = d.MaxScale
	}
	if c.MaxScale < c.MinScale {
		c.MinScale, c.MaxScale = c.MaxScale, c.MinScale
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = d.ZoomStep
	}
	return c
}

// Controller is the single owner of the viewport transform. Only Pan, Zoom
// and Reset change it.
type Controller struct {
	cfg Config
	t   Transform
}

// New returns a controller at identity scale clamped into cfg.
func New(cfg Config) *Controller {
	c := &Controller{cfg: cfg.sanitize(), t: Identity()}
	c.t.Scale = c.clamp(1)
	return c
}

// Config returns the effective zoom limits.
func (c *Controller) Config() Config { return c.cfg }

// Transform returns the current transform by value.
func (c *Controller) Transform() Transform { return c.t }

// Matrix returns the current world-to-screen matrix.
func (c *Controller) Matrix() f64.Aff3 { return c.t.Matrix() }

// ScreenToWorld maps a screen point through the current transform.
func (c *Controller) ScreenToWorld(p geom.Point) geom.Point { return c.t.ScreenToWorld(p) }

// WorldToScreen maps a world point through the current transform.
func (c *Controller) WorldToScreen(p geom.Point) geom.Point { return c.t.WorldToScreen(p) }

// Pan translates the stage by a screen-space delta.
func (c *Controller) Pan(dx, dy float64) {
	c.t = Transform{Scale: c.t.Scale, Position: geom.Point{X: c.t.Position.X + dx, Y: c.t.Position.Y + dy}}
}

// Zoom multiplies the scale by factor, keeping the world point under focal
// (a screen point) fixed. The resulting scale is clamped silently.
func (c *Controller) Zoom(focal geom.Point, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	scale := c.clamp(c.t.Scale * factor)
	if scale == c.t.Scale {
		return
	}
	anchor := c.t.ScreenToWorld(focal)
	c.t = Transform{
		Scale: scale,
		Position: geom.Point{
			X: focal.X - anchor.X*scale,
			Y: focal.Y - anchor.Y*scale,
		},
	}
}

// ZoomStep zooms in for a positive direction and out for a negative one by
// the configured step.
func (c *Controller) ZoomStep(focal geom.Point, direction int) {
	switch {
	case direction > 0:
		c.Zoom(focal, c.cfg.ZoomStep)
	case direction < 0:
		c.Zoom(focal, 1/c.cfg.ZoomStep)
	}
}

// Reset returns to identity scale and origin.
func (c *Controller) Reset() {
	c.t = Transform{Scale: c.clamp(1)}
}

func (c *Controller) clamp(s float64) float64 {
	if s < c.cfg.MinScale {
		return c.cfg.MinScale
	}
	if s > c.cfg.MaxScale {
		return c.cfg.MaxScale
	}
	return s
}
