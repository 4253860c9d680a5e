// Package tool holds the active-tool state machine.
package tool

import (
	"fmt"
	"strings"

	"github.com/example/whiteboard/internal/shape"
)

// Tool is the interaction mode pointer gestures are interpreted under.
type Tool int

const (
	Select Tool = iota
	Rectangle
	Ellipse
	Text
	Grab
)

// All lists the tools in toolbar order.
var All = []Tool{Select, Rectangle, Ellipse, Text, Grab}

// String returns the tool name for display.
func (t Tool) String() string {
	switch t {
	case Select:
		return "select"
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Text:
		return "text"
	case Grab:
		return "grab"
	default:
		return "unknown"
	}
}

// Parse converts a tool name into a Tool.
func Parse(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "pointer":
		return Select, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "ellipse", "circle":
		return Ellipse, nil
	case "text":
		return Text, nil
	case "grab", "pan", "hand":
		return Grab, nil
	}
	return Select, fmt.Errorf("unknown tool %q", s)
}

// Draws reports whether the tool creates shapes.
func (t Tool) Draws() bool {
	return t == Rectangle || t == Ellipse || t == Text
}

// Kind returns the shape kind a drawing tool creates.
func (t Tool) Kind() (shape.Kind, bool) {
	switch t {
	case Rectangle:
		return shape.Rectangle, true
	case Ellipse:
		return shape.Ellipse, true
	case Text:
		return shape.Text, true
	}
	return 0, false
}

// Machine tracks the active tool. Every Set is a transition, including one
// to the tool that is already active, and runs the registered hooks.
type Machine struct {
	current Tool
	hooks   []func(from, to Tool)
}

// NewMachine returns a machine starting at Select.
func NewMachine() *Machine {
	return &Machine{current: Select}
}

// Current returns the active tool.
func (m *Machine) Current() Tool { return m.current }

// OnChange registers fn to run after every transition.
func (m *Machine) OnChange(fn func(from, to Tool)) {
	m.hooks = append(m.hooks, fn)
}

// Set activates t.
func (m *Machine) Set(t Tool) {
	from := m.current
	m.current = t
	for _, fn := range m.hooks {
		fn(from, t)
	}
}
