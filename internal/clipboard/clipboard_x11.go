//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const propertyName = "WHITEBOARD_CLIPBOARD"

// x11Backend owns the CLIPBOARD selection through a hidden window and
// answers conversion requests from other clients.
type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu      sync.RWMutex
	payload []byte
	// kind is the target type of payload, or AtomNone when nothing is held.
	kind xproto.Atom
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func openBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, mask).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create clipboard window: %w", err)
	}
	at, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	b := &x11Backend{conn: conn, window: window, atoms: at, kind: xproto.AtomNone}
	go b.serve()
	return b, nil
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", propertyName}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern atom %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

func (b *x11Backend) writeText(data []byte) error {
	return b.own(data, b.atoms.utf8)
}

func (b *x11Backend) writeImage(data []byte) error {
	return b.own(data, b.atoms.png)
}

func (b *x11Backend) own(data []byte, kind xproto.Atom) error {
	b.mu.Lock()
	b.payload = append([]byte(nil), data...)
	b.kind = kind
	b.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.payload, b.kind = nil, xproto.AtomNone
			b.mu.Unlock()
		}
	}
}

// targetsFor lists the conversions offered for a payload kind.
func (b *x11Backend) targetsFor(kind xproto.Atom) []xproto.Atom {
	switch kind {
	case b.atoms.utf8:
		return []xproto.Atom{b.atoms.targets, b.atoms.utf8, xproto.AtomString, b.atoms.textPlain}
	case b.atoms.png:
		return []xproto.Atom{b.atoms.targets, b.atoms.png}
	}
	return []xproto.Atom{b.atoms.targets}
}

func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	b.mu.RLock()
	payload, kind := b.payload, b.kind
	b.mu.RUnlock()

	offered := b.targetsFor(kind)
	switch {
	case e.Target == b.atoms.targets:
		data := make([]byte, len(offered)*4)
		for i, a := range offered {
			xgb.Put32(data[i*4:], uint32(a))
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property,
			xproto.AtomAtom, 32, uint32(len(offered)), data)
	case contains(offered, e.Target):
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property,
			kind, 8, uint32(len(payload)), payload)
	default:
		property = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(b.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

func contains(list []xproto.Atom, a xproto.Atom) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}

// readText asks the current owner for UTF8_STRING and falls back to STRING.
func (b *x11Backend) readText() ([]byte, error) {
	b.mu.RLock()
	if b.kind == b.atoms.utf8 {
		data := append([]byte(nil), b.payload...)
		b.mu.RUnlock()
		return data, nil
	}
	b.mu.RUnlock()

	data, err := b.convert(b.atoms.utf8)
	if err != nil {
		return b.convert(xproto.AtomString)
	}
	return data, nil
}

// convert requests the selection in the given target on a private
// connection so the serving loop keeps owning its own events.
func (b *x11Backend) convert(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	err = xproto.ConvertSelectionChecked(conn, window, b.atoms.clipboard, target,
		b.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}
	for {
		ev, xerr := conn.WaitForEvent()
		if xerr != nil {
			return nil, xerr
		}
		if ev == nil {
			return nil, fmt.Errorf("X connection closed")
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		reply, err := xproto.GetProperty(conn, true, window, e.Property,
			xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
