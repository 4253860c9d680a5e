// Package clipboard publishes board snapshots and text to the system
// clipboard and reads text back for pasting into text boxes.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"
)

// backend is a platform clipboard. Payloads are raw bytes: UTF-8 for text,
// PNG for images.
type backend interface {
	writeText(data []byte) error
	writeImage(data []byte) error
	readText() ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend

	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errEmpty     = errors.New("clipboard does not contain text data")
)

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = openBackend()
	})
	return initErr
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return active.writeImage(buf.Bytes())
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writeText([]byte(text))
}

// ReadText returns the clipboard's text contents.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.readText()
	if err != nil {
		return "", err
	}
	// Some owners include the C terminator in STRING replies.
	text := strings.TrimRight(string(data), "\x00")
	if text == "" {
		return "", errEmpty
	}
	return text, nil
}
