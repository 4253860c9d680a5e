// Package notify announces finished exports and clipboard copies on the
// desktop.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/whiteboard/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when a board has been rendered to a PNG file.
	EventExport Event = "export"
	// EventCopy fires when the board or its text went to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:     "Whiteboard",
		Templates: map[Event]string{EventExport: "Exported %s", EventCopy: "Copied %s to clipboard"},
		Timeout:   5 * time.Second,
	}
}

// LoadPreferences overlays environment variables on the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("WHITEBOARD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	if v := strings.TrimSpace(os.Getenv("WHITEBOARD_NOTIFY_EXPORT_TEXT")); v != "" {
		prefs.Templates[EventExport] = v
	}
	if v := strings.TrimSpace(os.Getenv("WHITEBOARD_NOTIFY_COPY_TEXT")); v != "" {
		prefs.Templates[EventCopy] = v
	}
	return prefs
}

// Sender delivers a formatted notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a Notifier delivering through the host platform.
func New(prefs Preferences) *Notifier {
	return NewWithSender(prefs, platform.Notify)
}

// NewWithSender creates a Notifier delivering through send.
func NewWithSender(prefs Preferences, send Sender) *Notifier {
	cloned := prefs
	cloned.Templates = make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: send}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Export announces a written PNG, using the image itself as the icon.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: n.prefs.Title, Timeout: n.prefs.Timeout}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard copy. detail names what was copied.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	n.dispatch(EventCopy, detail, platform.Options{AppName: n.prefs.Title, Timeout: n.prefs.Timeout})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" || n.send == nil {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, detail))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
