package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Style is the visual bundle carried by every shape and by the session default.
type Style struct {
	Fill         string
	Stroke       string
	StrokeWidth  float64
	CornerRadius float64
	FontSize     float64
	Text         string
}

// DefaultStyle returns the style new sessions start with.
func DefaultStyle() Style {
	return Style{
		Fill:         "transparent",
		Stroke:       "white",
		StrokeWidth:  3,
		CornerRadius: 10,
		FontSize:     20,
	}
}

// StylePatch is a partial style. Nil fields are left untouched by Apply.
type StylePatch struct {
	Fill         *string
	Stroke       *string
	StrokeWidth  *float64
	CornerRadius *float64
	FontSize     *float64
	Text         *string
}

// Empty reports whether the patch changes nothing.
func (p StylePatch) Empty() bool {
	return p.Fill == nil && p.Stroke == nil && p.StrokeWidth == nil &&
		p.CornerRadius == nil && p.FontSize == nil && p.Text == nil
}

// Apply returns s with every non-nil field of p copied over.
func (s Style) Apply(p StylePatch) Style {
	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.CornerRadius != nil {
		s.CornerRadius = *p.CornerRadius
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Text != nil {
		s.Text = *p.Text
	}
	return s
}

// SetField parses a key=value style assignment into the patch. Colour values
// are validated with ParseColor.
func (p *StylePatch) SetField(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "fill":
		if _, err := ParseColor(value); err != nil {
			return err
		}
		p.Fill = &value
	case "stroke":
		if _, err := ParseColor(value); err != nil {
			return err
		}
		p.Stroke = &value
	case "stroke_width", "strokewidth", "width":
		f, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		p.StrokeWidth = &f
	case "corner_radius", "cornerradius", "radius":
		f, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		p.CornerRadius = &f
	case "font_size", "fontsize":
		f, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		p.FontSize = &f
	case "text":
		p.Text = &value
	default:
		return fmt.Errorf("unknown style key %q", key)
	}
	return nil
}

func parsePositive(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return f, nil
}

// ParseColor resolves a style colour: "transparent", an SVG colour name or a
// #RRGGBB / #RRGGBBAA hex value.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if name == "transparent" || name == "none" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		val, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		if len(name) == 7 {
			return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}
