package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

const (
	bottomHeight = 24
	buttonHeight = 24
	title        = "Whiteboard"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// ToolButton is a toolbar entry that activates a tool.
type ToolButton struct {
	Label string
	Tool  tool.Tool
	rect  image.Rectangle
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	c := th.ToolbarBackground
	switch state {
	case StateHover:
		c = th.ToolHover
	case StatePressed:
		c = th.ToolActive
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ToolbarText), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.Label)
}

func newToolButtons() []*ToolButton {
	return []*ToolButton{
		{Label: "V:Select", Tool: tool.Select},
		{Label: "R:Rect", Tool: tool.Rectangle},
		{Label: "O:Ellipse", Tool: tool.Ellipse},
		{Label: "T:Text", Tool: tool.Text},
		{Label: "H:Grab", Tool: tool.Grab},
	}
}

// toolbarWidthFor fits the program title and every button label.
func toolbarWidthFor(buttons []*ToolButton) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(title).Ceil() + 8
	for _, b := range buttons {
		if bw := d.MeasureString(b.Label).Ceil() + 8; bw > w {
			w = bw
		}
	}
	return w
}

// layoutToolbar places the buttons below the title row.
func layoutToolbar(buttons []*ToolButton, width int) {
	y := buttonHeight
	for _, b := range buttons {
		b.rect = image.Rect(0, y, width, y+buttonHeight)
		y += buttonHeight
	}
}

// buttonAt returns the index of the button under p, or -1.
func buttonAt(buttons []*ToolButton, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

func drawToolbar(dst *image.RGBA, th *theme.Theme, buttons []*ToolButton, width, height int, current tool.Tool, hover int) {
	draw.Draw(dst, image.Rect(0, 0, width, height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ToolbarText), Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	d.DrawString(title)
	for i, b := range buttons {
		state := StateDefault
		if b.Tool == current {
			state = StatePressed
		} else if i == hover {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}
}

type status struct {
	tool     tool.Tool
	shapes   int
	selected int
	zoom     float64
	editing  bool
	message  string
}

func (s status) String() string {
	if s.message != "" {
		return s.message
	}
	if s.editing {
		return "typing: Enter/Esc:done  Shift+Enter:newline"
	}
	return fmt.Sprintf("%s | %d shapes, %d selected | %.0f%% | Del:delete  +/-:zoom  0:reset  ^S:export  Q:quit",
		s.tool, s.shapes, s.selected, s.zoom*100)
}

func drawStatus(dst *image.RGBA, th *theme.Theme, x, width, height int, st status) {
	rect := image.Rect(x, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x, rect.Min.Y, width, rect.Min.Y+1), &image.Uniform{color.RGBA{0, 0, 0, 64}}, image.Point{}, draw.Over)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ToolbarText), Face: basicfont.Face7x13,
		Dot: fixed.P(x+4, height-bottomHeight+16)}
	d.DrawString(st.String())
}
