package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/theme"
)

// Parse reads configuration from an io.Reader. Unknown sections and keys are
// ignored; malformed values are errors naming their section.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSpace(line[1 : len(line)-1])
			currentTheme = nil

			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = setThemeField(currentTheme, key, value)
		case currentSection == "":
			setRootField(cfg, key, value)
		case currentSection == "viewport":
			err = setViewportField(cfg, key, value)
		case currentSection == "gesture":
			err = setGestureField(cfg, key, value)
		case currentSection == "style":
			err = setStyleField(cfg, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "export_dir":
		cfg.ExportDir = value
	}
}

func parseNumber(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("key %s must not be negative", key)
	}
	return f, nil
}

func setViewportField(cfg *Config, key, value string) error {
	var dst *float64
	switch strings.ToLower(key) {
	case "min_scale":
		dst = &cfg.Viewport.MinScale
	case "max_scale":
		dst = &cfg.Viewport.MaxScale
	case "zoom_step":
		dst = &cfg.Viewport.ZoomStep
	default:
		return nil
	}
	f, err := parseNumber(key, value)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func setGestureField(cfg *Config, key, value string) error {
	var dst *float64
	switch strings.ToLower(key) {
	case "min_shape_size":
		dst = &cfg.Gesture.MinShapeSize
	case "drag_threshold":
		dst = &cfg.Gesture.DragThreshold
	default:
		return nil
	}
	f, err := parseNumber(key, value)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func setStyleField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "text":
		return nil // per shape only
	case "fill", "stroke", "stroke_width", "corner_radius", "font_size":
	default:
		return nil
	}
	var p shape.StylePatch
	if err := p.SetField(key, value); err != nil {
		return err
	}
	cfg.Style = cfg.Style.Apply(p)
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	var field *bool
	switch strings.ToLower(key) {
	case "export":
		field = &n.Export
	case "copy":
		field = &n.Copy
	default:
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*field = b
	return nil
}

func setThemeField(t *theme.Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}

	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil // Ignore unknown fields
}
