package theme

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesAndKeepsDefaults(t *testing.T) {
	src := `
# comment
Name: mine
Background: #102030
Highlight: red
SelectionFill: #11223344
Unknown: #000000
`
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Fatalf("background = %v", th.Background)
	}
	if th.Highlight != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("highlight = %v", th.Highlight)
	}
	if th.SelectionFill != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("selection fill = %v", th.SelectionFill)
	}
	if th.ToolbarText != Default().ToolbarText {
		t.Fatalf("unset field lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	_, err := Parse(strings.NewReader("Background: #12345\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("err = %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := Default()
	in.SelectionFill = color.RGBA{1, 2, 3, 4}
	if err := Format(&buf, in); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", out, in)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.theme"), []byte("Name: custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}

	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("empty name: %v %v", th, err)
	}
	if th, err := l.Load("light"); err != nil || th.Name != "light" {
		t.Fatalf("embedded: %v %v", th, err)
	}
	if th, err := l.Load("custom"); err != nil || th.Name != "custom" {
		t.Fatalf("config dir: %v %v", th, err)
	}
	if th, err := l.Load(filepath.Join(dir, "custom.theme")); err != nil || th.Name != "custom" {
		t.Fatalf("path: %v %v", th, err)
	}
	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}

	names := strings.Join(l.Names(), ",")
	for _, want := range []string{"custom", "default", "high_contrast", "light"} {
		if !strings.Contains(names, want) {
			t.Fatalf("names %q missing %q", names, want)
		}
	}
}
