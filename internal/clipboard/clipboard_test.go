package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
)

type memoryBackend struct {
	text  []byte
	image []byte
}

func (m *memoryBackend) writeText(data []byte) error {
	m.text, m.image = data, nil
	return nil
}

func (m *memoryBackend) writeImage(data []byte) error {
	m.image, m.text = data, nil
	return nil
}

func (m *memoryBackend) readText() ([]byte, error) { return m.text, nil }

func useBackend(t *testing.T, b backend) {
	t.Helper()
	initOnce = sync.Once{}
	initOnce.Do(func() {})
	active, initErr = b, nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		active, initErr = nil, nil
	})
}

func TestWriteImageEncodesPNG(t *testing.T) {
	mem := &memoryBackend{}
	useBackend(t, mem)

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	if err := WriteImage(src); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := png.Decode(bytes.NewReader(mem.image))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if r, _, _, _ := got.At(1, 1).RGBA(); r>>8 != 255 {
		t.Fatalf("pixel not preserved: %v", got.At(1, 1))
	}
}

func TestTextRoundTripTrimsTerminator(t *testing.T) {
	mem := &memoryBackend{}
	useBackend(t, mem)

	if err := WriteText("hello\x00"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := ReadText()
	if err != nil || got != "hello" {
		t.Fatalf("ReadText = %q, %v", got, err)
	}
	mem.text = nil
	if _, err := ReadText(); !errors.Is(err, errEmpty) {
		t.Fatalf("expected errEmpty, got %v", err)
	}
}
