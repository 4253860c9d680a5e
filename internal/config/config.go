// Package config reads and writes the whiteboard RC file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/whiteboard/internal/interact"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/viewport"
)

// ThemeEnv overrides the configured theme name.
const ThemeEnv = "WHITEBOARD_THEME"

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	Viewport  viewport.Config
	Gesture   interact.Options
	Style     shape.Style
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:    "", // empty falls back to the environment, then the built-in theme
		Viewport: viewport.DefaultConfig(),
		Gesture:  interact.DefaultOptions(),
		Style:    shape.DefaultStyle(),
		Themes:   make(map[string]*theme.Theme),
	}
}

// ThemeName picks the theme to use: the flag value, then $WHITEBOARD_THEME,
// then the config file.
func (c *Config) ThemeName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(ThemeEnv); env != "" {
		return env
	}
	return c.Theme
}

// LoadTheme resolves name against the themes defined in the config before
// asking the loader.
func (c *Config) LoadTheme(name string, l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[viewport]\n")
	fmt.Fprintf(&sb, "min_scale = %g\n", c.Viewport.MinScale)
	fmt.Fprintf(&sb, "max_scale = %g\n", c.Viewport.MaxScale)
	fmt.Fprintf(&sb, "zoom_step = %g\n", c.Viewport.ZoomStep)
	sb.WriteString("\n")

	sb.WriteString("[gesture]\n")
	fmt.Fprintf(&sb, "min_shape_size = %g\n", c.Gesture.MinShapeSize)
	fmt.Fprintf(&sb, "drag_threshold = %g\n", c.Gesture.DragThreshold)
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	fmt.Fprintf(&sb, "fill = %s\n", c.Style.Fill)
	fmt.Fprintf(&sb, "stroke = %s\n", c.Style.Stroke)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Style.StrokeWidth)
	fmt.Fprintf(&sb, "corner_radius = %g\n", c.Style.CornerRadius)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Style.FontSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
