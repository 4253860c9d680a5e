// Package appstate ties the shape store, tool machine, viewport and pointer
// controller into one editing session and hosts it in a shiny window.
package appstate

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/whiteboard/internal/config"
	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/interact"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
	"github.com/example/whiteboard/internal/viewport"
)

const (
	defaultCanvasWidth  = 1024
	defaultCanvasHeight = 720
)

// AppState is one editing session.
type AppState struct {
	mu sync.Mutex

	cfg      *config.Config
	theme    *theme.Theme
	notifier *notify.Notifier
	output   string

	store *store.Store
	tools *tool.Machine
	view  *viewport.Controller
	ctl   *interact.Controller

	canvasW, canvasH int

	// editing is the id of the text shape receiving typed runes.
	editing string

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithConfig supplies zoom limits, gesture thresholds and the default style.
func WithConfig(cfg *config.Config) Option { return func(a *AppState) { a.cfg = cfg } }

// WithTheme sets the colours used to paint the canvas.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithCanvasSize sets the initial canvas extent in pixels.
func WithCanvasSize(w, h int) Option {
	return func(a *AppState) { a.canvasW, a.canvasH = w, h }
}

// WithNotifier announces exports through n.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOutput sets the PNG path used by Export when no path is given.
func WithOutput(path string) Option { return func(a *AppState) { a.output = path } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		canvasW:  defaultCanvasWidth,
		canvasH:  defaultCanvasHeight,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.cfg == nil {
		a.cfg = config.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	a.store = store.New(a.cfg.Style)
	a.tools = tool.NewMachine()
	a.view = viewport.New(a.cfg.Viewport)
	a.ctl = interact.New(a.store, a.tools, a.view, a.cfg.Gesture)
	a.tools.OnChange(func(from, to tool.Tool) {
		a.editing = ""
		log.Printf("tool %s -> %s", from, to)
	})
	a.ctl.SetCanvasSize(float64(a.canvasW), float64(a.canvasH))
	return a
}

// NotifyChanged requests a repaint of the window, if one is open.
func (a *AppState) NotifyChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Tool returns the active tool.
func (a *AppState) Tool() tool.Tool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tools.Current()
}

// SetTool activates t. Any gesture in progress is abandoned and the
// selection is cleared, even when t is already active.
func (a *AppState) SetTool(t tool.Tool) {
	a.mu.Lock()
	a.tools.Set(t)
	a.mu.Unlock()
	a.NotifyChanged()
}

// ApplyStyle patches the selected shapes and the default style. It returns
// the number of shapes changed.
func (a *AppState) ApplyStyle(p shape.StylePatch) int {
	a.mu.Lock()
	n := a.store.ApplyStyle(p)
	a.mu.Unlock()
	a.NotifyChanged()
	return n
}

// DeleteSelection removes every selected shape.
func (a *AppState) DeleteSelection() int {
	a.mu.Lock()
	n := a.store.DeleteSelected()
	a.editing = ""
	a.mu.Unlock()
	if n > 0 {
		log.Printf("deleted %d shape(s)", n)
	}
	a.NotifyChanged()
	return n
}

// SetText replaces the content of a text shape.
func (a *AppState) SetText(id, text string) bool {
	a.mu.Lock()
	ok := a.setTextLocked(id, text)
	a.mu.Unlock()
	a.NotifyChanged()
	return ok
}

func (a *AppState) setTextLocked(id, text string) bool {
	s, ok := a.store.Get(id)
	if !ok || s.Kind != shape.Text {
		return false
	}
	return a.store.SetText(id, text)
}

// Select replaces the selection with the given ids. Unknown ids are ignored.
func (a *AppState) Select(ids ...string) {
	a.mu.Lock()
	a.store.ClearSelection()
	a.store.Select(ids...)
	a.mu.Unlock()
	a.NotifyChanged()
}

// ClearSelection deselects everything.
func (a *AppState) ClearSelection() {
	a.mu.Lock()
	a.store.ClearSelection()
	a.mu.Unlock()
	a.NotifyChanged()
}

// Target hit-tests a canvas point against the committed shapes.
func (a *AppState) Target(pos geom.Point) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return render.HitTest(a.store.Shapes(), a.view.Transform(), pos)
}

// PointerDown starts a gesture at a canvas point. An empty target is
// resolved by hit-testing.
func (a *AppState) PointerDown(ev interact.PointerEvent) {
	a.mu.Lock()
	if ev.Target == "" {
		ev.Target = render.HitTest(a.store.Shapes(), a.view.Transform(), ev.Pos)
	}
	a.ctl.PointerDown(ev)
	a.mu.Unlock()
	a.NotifyChanged()
}

// PointerMove feeds a drag sample.
func (a *AppState) PointerMove(ev interact.PointerEvent) {
	a.mu.Lock()
	a.ctl.PointerMove(ev)
	a.mu.Unlock()
	a.NotifyChanged()
}

// PointerUp finishes the gesture. A freshly drawn text box starts receiving
// typed text.
func (a *AppState) PointerUp(ev interact.PointerEvent) interact.Result {
	a.mu.Lock()
	res := a.ctl.PointerUp(ev)
	if res.Action == interact.ActionCreated && res.Shape != nil {
		log.Printf("created %s", res.Shape)
		if res.Shape.Kind == shape.Text {
			a.editing = res.Shape.ID
		}
	}
	a.mu.Unlock()
	a.NotifyChanged()
	return res
}

// Cancel aborts the gesture in progress.
func (a *AppState) Cancel() bool {
	a.mu.Lock()
	ok := a.ctl.Cancel()
	a.mu.Unlock()
	a.NotifyChanged()
	return ok
}

// Blur is called when the window loses focus; the pointer-up will never come.
func (a *AppState) Blur() {
	if a.Cancel() {
		log.Print("gesture abandoned on focus loss")
	}
}

// Wheel zooms one notch around a canvas point.
func (a *AppState) Wheel(pos geom.Point, direction int) {
	a.mu.Lock()
	a.ctl.Wheel(pos, direction)
	a.mu.Unlock()
	a.NotifyChanged()
}

// ZoomCentre zooms one notch around the middle of the canvas.
func (a *AppState) ZoomCentre(direction int) {
	a.mu.Lock()
	c := geom.Pt(float64(a.canvasW)/2, float64(a.canvasH)/2)
	a.ctl.Wheel(c, direction)
	a.mu.Unlock()
	a.NotifyChanged()
}

// Pan shifts the stage by a screen delta.
func (a *AppState) Pan(dx, dy float64) {
	a.mu.Lock()
	a.view.Pan(dx, dy)
	a.mu.Unlock()
	a.NotifyChanged()
}

// ResetView restores the untransformed stage.
func (a *AppState) ResetView() {
	a.mu.Lock()
	a.view.Reset()
	a.mu.Unlock()
	a.NotifyChanged()
}

// SetCanvasSize records the canvas extent after a window resize.
func (a *AppState) SetCanvasSize(w, h int) {
	a.mu.Lock()
	a.canvasW, a.canvasH = w, h
	a.ctl.SetCanvasSize(float64(w), float64(h))
	a.mu.Unlock()
}

// CanvasSize returns the canvas extent in pixels.
func (a *AppState) CanvasSize() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canvasW, a.canvasH
}

// Transform returns the current stage placement.
func (a *AppState) Transform() viewport.Transform {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view.Transform()
}

// Snapshot returns the committed shapes with their selection flags.
func (a *AppState) Snapshot() []shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Shapes()
}

// Selected returns the selected ids in sorted order.
func (a *AppState) Selected() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Selected()
}

// DefaultStyle returns the style the next shape will be drawn with.
func (a *AppState) DefaultStyle() shape.Style {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.DefaultStyle()
}

// Preview returns the live gesture preview.
func (a *AppState) Preview() interact.Preview {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctl.Preview()
}

// Editing returns the id of the text shape receiving keystrokes, if any.
func (a *AppState) Editing() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editing
}

// Scene captures everything needed to paint the current state.
func (a *AppState) Scene() render.Scene {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sceneLocked()
}

func (a *AppState) sceneLocked() render.Scene {
	p := a.ctl.Preview()
	return render.Scene{
		Shapes:    a.store.Shapes(),
		Preview:   p.Shape,
		Box:       p.Box,
		Transform: a.view.Transform(),
		Theme:     a.theme,
	}
}

// Frame renders the current canvas.
func (a *AppState) Frame(ctx context.Context) (*image.RGBA, error) {
	sc := a.Scene()
	w, h := a.CanvasSize()
	return render.Image(ctx, w, h, sc)
}

// Export writes the canvas to a PNG file. An empty path falls back to the
// configured output, then to a timestamped file in the export directory.
func (a *AppState) Export(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = a.output
	}
	if path == "" {
		path = filepath.Join(a.cfg.ExportDir, fmt.Sprintf("whiteboard-%s.png", time.Now().Format("20060102-150405")))
	}
	img, err := a.Frame(ctx)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: closing file: %w", err)
	}
	log.Printf("exported %s", path)
	a.notifier.Export(path)
	return path, nil
}
