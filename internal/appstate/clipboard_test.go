package appstate

import (
	"context"
	"errors"
	"image"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/platform"
	"github.com/example/whiteboard/internal/tool"
)

type fakeClipboard struct {
	image image.Image
	text  string
}

func useFakeClipboard(t *testing.T) *fakeClipboard {
	t.Helper()
	fc := &fakeClipboard{}
	oldImage, oldWrite, oldRead := writeClipboardImage, writeClipboardText, readClipboardText
	writeClipboardImage = func(img image.Image) error { fc.image = img; return nil }
	writeClipboardText = func(s string) error { fc.text = s; return nil }
	readClipboardText = func() (string, error) {
		if fc.text == "" {
			return "", errors.New("empty")
		}
		return fc.text, nil
	}
	t.Cleanup(func() {
		writeClipboardImage, writeClipboardText, readClipboardText = oldImage, oldWrite, oldRead
	})
	return fc
}

func TestCopyBoardImage(t *testing.T) {
	fc := useFakeClipboard(t)
	var bodies []string
	n := notify.NewWithSender(notify.DefaultPreferences(), func(title, body string, opts platform.Options) error {
		bodies = append(bodies, body)
		return nil
	})
	n.Enable(notify.EventCopy, true)

	a := New(WithCanvasSize(80, 60), WithNotifier(n))
	drawShape(t, a, tool.Rectangle, 5, 5, 40, 40)
	detail, err := a.Copy(context.Background())
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if detail != "board image" || fc.image == nil {
		t.Fatalf("copied %q image=%v", detail, fc.image)
	}
	if fc.image.Bounds() != image.Rect(0, 0, 80, 60) {
		t.Fatalf("bounds = %v", fc.image.Bounds())
	}
	if len(bodies) != 1 || bodies[0] != "Copied board image to clipboard" {
		t.Fatalf("notifications = %v", bodies)
	}
}

func TestCopyAndPasteText(t *testing.T) {
	fc := useFakeClipboard(t)
	a := New()
	s := drawShape(t, a, tool.Text, 10, 10, 200, 60)
	a.SetText(s.ID, "hello")
	a.Select(s.ID)

	if action, ok := a.HandleKey(key.Event{Rune: 'c', Modifiers: key.ModControl, Direction: key.DirPress}); !ok || action != ActionCopy {
		t.Fatalf("ctrl+c -> %q %v", action, ok)
	}
	if fc.text != "hello" || fc.image != nil {
		t.Fatalf("clipboard = %+v", fc)
	}

	fc.text = " world"
	if a.Editing() != s.ID {
		t.Fatalf("new text box should still be in edit mode")
	}
	a.HandleKey(key.Event{Rune: 'v', Modifiers: key.ModControl, Direction: key.DirPress})
	if got := a.Snapshot()[0].Style.Text; got != "hello world" {
		t.Fatalf("text after paste = %q", got)
	}
	if a.Tool() != tool.Text {
		t.Fatalf("paste switched tool to %v", a.Tool())
	}
}

func TestPasteNeedsTextBox(t *testing.T) {
	fc := useFakeClipboard(t)
	fc.text = "stray"
	a := New()
	drawShape(t, a, tool.Rectangle, 5, 5, 40, 40)
	if err := a.Paste(); !errors.Is(err, errNothingToPaste) {
		t.Fatalf("Paste = %v", err)
	}
}
