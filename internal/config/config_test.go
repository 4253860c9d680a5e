package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/whiteboard/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/boards

[viewport]
min_scale = 0.25
max_scale = 4
zoom_step = 1.2

[gesture]
min_shape_size = 8
drag_threshold: 2

[style]
fill = "#FF000080"
stroke = black
stroke_width = 1.5

[notify]
export = true
copy = 1

[theme.my_custom_theme]
Background = #111111
Highlight = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ExportDir != "/tmp/boards" {
		t.Errorf("Expected export_dir '/tmp/boards', got '%s'", cfg.ExportDir)
	}
	if cfg.Viewport.MinScale != 0.25 || cfg.Viewport.MaxScale != 4 || cfg.Viewport.ZoomStep != 1.2 {
		t.Errorf("Unexpected viewport: %+v", cfg.Viewport)
	}
	if cfg.Gesture.MinShapeSize != 8 || cfg.Gesture.DragThreshold != 2 {
		t.Errorf("Unexpected gesture: %+v", cfg.Gesture)
	}
	if cfg.Style.Fill != "#FF000080" || cfg.Style.Stroke != "black" || cfg.Style.StrokeWidth != 1.5 {
		t.Errorf("Unexpected style: %+v", cfg.Style)
	}
	if cfg.Style.CornerRadius != 10 {
		t.Errorf("Unset style key lost its default: %+v", cfg.Style)
	}
	if !cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("Expected both notify keys set: %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseErrorsNameTheSection(t *testing.T) {
	cases := map[string]string{
		"[viewport]\nmin_scale = small\n": "[viewport]",
		"[gesture]\ndrag_threshold = -1\n": "[gesture]",
		"[style]\nstroke = notacolour\n":   "[style]",
		"[notify]\nexport = maybe\n":       "[notify]",
		"[theme.x]\nBackground = #12\n":    "[theme.x]",
	}
	for input, want := range cases {
		_, err := Parse(strings.NewReader(input))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("Parse(%q) err = %v, want mention of %s", input, err, want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/boards

[viewport]
max_scale = 6

[style]
stroke = red

[notify]
export = true

[theme.custom]
Name = custom
Background = #000000
SelectionFill = #FFFFFF40
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("Root mismatch: %q/%q vs %q/%q", cfg.Theme, cfg.ExportDir, cfg2.Theme, cfg2.ExportDir)
	}
	if cfg.Viewport != cfg2.Viewport || cfg.Gesture != cfg2.Gesture || cfg.Style != cfg2.Style {
		t.Errorf("Section mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestThemeResolution(t *testing.T) {
	cfg := New()
	cfg.Theme = "light"
	cfg.Themes["mine"] = &theme.Theme{Name: "mine"}

	t.Setenv(ThemeEnv, "")
	if got := cfg.ThemeName(""); got != "light" {
		t.Fatalf("config theme = %q", got)
	}
	t.Setenv(ThemeEnv, "high_contrast")
	if got := cfg.ThemeName(""); got != "high_contrast" {
		t.Fatalf("env theme = %q", got)
	}
	if got := cfg.ThemeName("mine"); got != "mine" {
		t.Fatalf("flag theme = %q", got)
	}

	l := &theme.Loader{}
	if th, err := cfg.LoadTheme("mine", l); err != nil || th.Name != "mine" {
		t.Fatalf("config-defined theme: %v %v", th, err)
	}
	if th, err := cfg.LoadTheme("light", l); err != nil || th.Name != "light" {
		t.Fatalf("embedded theme: %v %v", th, err)
	}
}

func TestLoaderSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sub", "config.rc")
	l := NewLoader("v1", path)

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	cfg.ExportDir = "/srv/out"
	got, err := l.Save(cfg)
	if err != nil || got != path {
		t.Fatalf("Save = %q, %v", got, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	again, err := l.Load()
	if err != nil || again.ExportDir != "/srv/out" {
		t.Fatalf("reload: %+v %v", again, err)
	}
}
