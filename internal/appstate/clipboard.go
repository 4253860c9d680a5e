package appstate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/example/whiteboard/internal/clipboard"
	"github.com/example/whiteboard/internal/shape"
)

var (
	writeClipboardImage = clipboard.WriteImage
	writeClipboardText  = clipboard.WriteText
	readClipboardText   = clipboard.ReadText
)

// errNothingToPaste is returned when no text box can take pasted text.
var errNothingToPaste = errors.New("no text box to paste into")

// Copy puts the selected text on the clipboard when any selected text box
// has content, otherwise the rendered board as a PNG. It returns a short
// description of what was copied.
func (a *AppState) Copy(ctx context.Context) (string, error) {
	if text := a.selectedText(); text != "" {
		if err := writeClipboardText(text); err != nil {
			return "", fmt.Errorf("copy text: %w", err)
		}
		return a.copied("text")
	}
	img, err := a.Frame(ctx)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	if err := writeClipboardImage(img); err != nil {
		return "", fmt.Errorf("copy image: %w", err)
	}
	return a.copied("board image")
}

func (a *AppState) copied(detail string) (string, error) {
	log.Printf("copied %s to clipboard", detail)
	a.notifier.Copy(detail)
	return detail, nil
}

// selectedText joins the contents of the selected text boxes in paint order.
func (a *AppState) selectedText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var parts []string
	for _, s := range a.store.SelectedShapes() {
		if s.Kind == shape.Text && s.Style.Text != "" {
			parts = append(parts, s.Style.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Paste appends clipboard text to the text box being edited, or to the one
// selected text box when nothing is being edited.
func (a *AppState) Paste() error {
	text, err := readClipboardText()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.editing
	if id == "" {
		sel := a.store.SelectedShapes()
		if len(sel) == 1 && sel[0].Kind == shape.Text {
			id = sel[0].ID
		}
	}
	s, ok := a.store.Get(id)
	if !ok || s.Kind != shape.Text {
		return errNothingToPaste
	}
	a.store.SetText(id, s.Style.Text+text)
	return nil
}
