package appstate

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/interact"
	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

type paintState struct {
	width, height int
	toolbarWidth  int
	scene         render.Scene
	theme         *theme.Theme
	buttons       []*ToolButton
	tool          tool.Tool
	hover         int
	status        status
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main hosts the session in a window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	buttons := newToolButtons()
	tw := toolbarWidthFor(buttons)
	layoutToolbar(buttons, tw)

	cw, ch := a.CanvasSize()
	width, height := cw+tw, ch+bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		var canvas *image.RGBA
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			canvas = drawFrame(ctx, s, w, st, canvas)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	var pressed bool
	hover := -1
	var message string
	var messageUntil time.Time

	toCanvas := func(e mouse.Event) geom.Point {
		return geom.Pt(float64(e.X)-float64(tw), float64(e.Y))
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				pressed = false
				a.Blur()
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			a.SetCanvasSize(max(width-tw, 0), max(height-bottomHeight, 0))
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			if message != "" && time.Now().After(messageUntil) {
				message = ""
			}
			sc := a.Scene()
			selected := 0
			for _, sh := range sc.Shapes {
				if sh.Selected {
					selected++
				}
			}
			st := paintState{
				width:        width,
				height:       height,
				toolbarWidth: tw,
				scene:        sc,
				theme:        sc.Theme,
				buttons:      buttons,
				tool:         a.Tool(),
				hover:        hover,
				status: status{
					tool:     a.Tool(),
					shapes:   len(sc.Shapes),
					selected: selected,
					zoom:     sc.Transform.Scale,
					editing:  a.Editing() != "",
					message:  message,
				},
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case key.Event:
			action, handled := a.HandleKey(e)
			switch action {
			case ActionQuit:
				return
			case ActionExport:
				path, err := a.Export(context.Background(), "")
				if err != nil {
					log.Printf("export: %v", err)
					message = "export failed: " + err.Error()
				} else {
					message = "exported " + path
				}
				messageUntil = time.Now().Add(2 * time.Second)
			}
			if handled {
				w.Send(paint.Event{})
			}
		case mouse.Event:
			p := toCanvas(e)
			switch e.Button {
			case mouse.ButtonWheelUp:
				a.Wheel(p, 1)
				continue
			case mouse.ButtonWheelDown:
				a.Wheel(p, -1)
				continue
			}
			if !pressed && int(e.X) < tw {
				idx := buttonAt(buttons, image.Pt(int(e.X), int(e.Y)))
				if idx != hover {
					hover = idx
					w.Send(paint.Event{})
				}
				if idx >= 0 && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					a.SetTool(buttons[idx].Tool)
				}
				continue
			}
			if hover != -1 {
				hover = -1
				w.Send(paint.Event{})
			}
			if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonNone {
				continue
			}
			ev := interact.PointerEvent{Pos: p}
			switch e.Direction {
			case mouse.DirPress:
				pressed = true
				a.PointerDown(ev)
			case mouse.DirNone:
				if pressed {
					a.PointerMove(ev)
				}
			case mouse.DirRelease:
				if pressed {
					pressed = false
					res := a.PointerUp(ev)
					if res.Action != interact.ActionNone {
						log.Printf("gesture: %s", res.Action)
					}
				}
			}
		case error:
			log.Print(e)
		}
	}
}

// drawFrame paints one frame, reusing canvas when its size still fits.
func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, canvas *image.RGBA) *image.RGBA {
	if st.width <= 0 || st.height <= 0 {
		return canvas
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return canvas
	}
	defer b.Release()

	cw, ch := max(st.width-st.toolbarWidth, 0), max(st.height-bottomHeight, 0)
	if canvas == nil || canvas.Bounds().Dx() != cw || canvas.Bounds().Dy() != ch {
		canvas = image.NewRGBA(image.Rect(0, 0, cw, ch))
	}
	if err := render.Draw(ctx, canvas, st.scene); err != nil {
		return canvas
	}
	draw.Draw(b.RGBA(), canvas.Bounds().Add(image.Pt(st.toolbarWidth, 0)), canvas, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return canvas
	}

	drawToolbar(b.RGBA(), st.theme, st.buttons, st.toolbarWidth, st.height, st.tool, st.hover)
	drawStatus(b.RGBA(), st.theme, st.toolbarWidth, st.width, st.height, st.status)

	if ctx.Err() != nil {
		return canvas
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return canvas
}
