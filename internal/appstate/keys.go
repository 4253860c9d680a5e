package appstate

import (
	"context"
	"log"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"

	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/tool"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Action names understood by Trigger.
const (
	ActionSelect    = "select"
	ActionRectangle = "rectangle"
	ActionEllipse   = "ellipse"
	ActionText      = "text"
	ActionGrab      = "grab"
	ActionDelete    = "delete"
	ActionZoomIn    = "zoomin"
	ActionZoomOut   = "zoomout"
	ActionResetView = "resetview"
	ActionEscape    = "escape"
	ActionEdit      = "edit"
	ActionExport    = "export"
	ActionCopy      = "copy"
	ActionPaste     = "paste"
	ActionQuit      = "quit"
)

var keyboardAction = map[KeyShortcut]string{
	{Rune: 'v'}:                            ActionSelect,
	{Rune: 'r'}:                            ActionRectangle,
	{Rune: 'o'}:                            ActionEllipse,
	{Rune: 't'}:                            ActionText,
	{Rune: 'h'}:                            ActionGrab,
	{Code: key.CodeDeleteForward}:          ActionDelete,
	{Code: key.CodeDeleteBackspace}:        ActionDelete,
	{Rune: '+'}:                            ActionZoomIn,
	{Rune: '='}:                            ActionZoomIn,
	{Rune: '-'}:                            ActionZoomOut,
	{Rune: '0'}:                            ActionResetView,
	{Code: key.CodeEscape}:                 ActionEscape,
	{Code: key.CodeReturnEnter}:            ActionEdit,
	{Rune: 's', Modifiers: key.ModControl}: ActionExport,
	{Rune: 'c', Modifiers: key.ModControl}: ActionCopy,
	{Rune: 'v', Modifiers: key.ModControl}: ActionPaste,
	{Rune: 'q'}:                            ActionQuit,
}

var toolActions = map[string]tool.Tool{
	ActionSelect:    tool.Select,
	ActionRectangle: tool.Rectangle,
	ActionEllipse:   tool.Ellipse,
	ActionText:      tool.Text,
	ActionGrab:      tool.Grab,
}

// shortcutFor maps a key event onto an action name.
func shortcutFor(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModShift
	r := unicode.ToLower(e.Rune)
	if r > 0 {
		if a, ok := keyboardAction[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return a, true
		}
	}
	a, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return a, ok
}

// Trigger runs a named action. Export and quit are window concerns and are
// reported back as handled=false.
func (a *AppState) Trigger(action string) bool {
	if t, ok := toolActions[action]; ok {
		a.SetTool(t)
		return true
	}
	switch action {
	case ActionDelete:
		a.DeleteSelection()
	case ActionZoomIn:
		a.ZoomCentre(1)
	case ActionZoomOut:
		a.ZoomCentre(-1)
	case ActionResetView:
		a.ResetView()
	case ActionEscape:
		if !a.Cancel() {
			a.ClearSelection()
		}
	case ActionEdit:
		a.beginEditing()
	case ActionCopy:
		if _, err := a.Copy(context.Background()); err != nil {
			log.Printf("copy: %v", err)
		}
	case ActionPaste:
		if err := a.Paste(); err != nil {
			log.Printf("%v", err)
		}
	default:
		return false
	}
	return true
}

// beginEditing starts typing into the single selected text shape.
func (a *AppState) beginEditing() {
	a.mu.Lock()
	defer a.mu.Unlock()
	sel := a.store.SelectedShapes()
	if len(sel) == 1 && sel[0].Kind == shape.Text {
		a.editing = sel[0].ID
	}
}

// HandleKey processes a key press. It returns the action name when the key
// mapped to one, so the window can handle export and quit itself.
func (a *AppState) HandleKey(e key.Event) (string, bool) {
	if e.Direction == key.DirRelease {
		return "", false
	}
	if a.typeInto(e) {
		return "", true
	}
	action, ok := shortcutFor(e)
	if !ok {
		return "", false
	}
	return action, a.Trigger(action) || action == ActionExport || action == ActionQuit
}

// typeInto edits the text shape being typed into. Enter and Escape finish
// editing.
func (a *AppState) typeInto(e key.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.editing == "" {
		return false
	}
	s, ok := a.store.Get(a.editing)
	if !ok {
		a.editing = ""
		return false
	}
	text := s.Style.Text
	switch {
	case e.Code == key.CodeEscape || e.Code == key.CodeReturnEnter:
		if e.Code == key.CodeReturnEnter && e.Modifiers&key.ModShift != 0 {
			text += "\n"
			break
		}
		a.editing = ""
		return true
	case e.Code == key.CodeDeleteBackspace:
		if text == "" {
			return true
		}
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	case e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0:
		return false
	case e.Rune > 0 && unicode.IsPrint(e.Rune):
		text += string(e.Rune)
	default:
		return false
	}
	a.store.SetText(s.ID, text)
	return true
}
