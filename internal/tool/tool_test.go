package tool

import (
	"testing"

	"github.com/example/whiteboard/internal/shape"
)

func TestMachineStartsAtSelect(t *testing.T) {
	if got := NewMachine().Current(); got != Select {
		t.Fatalf("initial tool = %v", got)
	}
}

func TestEveryTransitionRunsHooks(t *testing.T) {
	m := NewMachine()
	var calls [][2]Tool
	m.OnChange(func(from, to Tool) { calls = append(calls, [2]Tool{from, to}) })
	for _, from := range All {
		for _, to := range All {
			m.Set(from)
			calls = calls[:0]
			m.Set(to)
			if len(calls) != 1 || calls[0] != [2]Tool{from, to} {
				t.Fatalf("%v -> %v: hooks saw %v", from, to, calls)
			}
			if m.Current() != to {
				t.Fatalf("current = %v want %v", m.Current(), to)
			}
		}
	}
}

func TestParseAndKind(t *testing.T) {
	for _, tl := range All {
		got, err := Parse(tl.String())
		if err != nil || got != tl {
			t.Fatalf("Parse(%q) = %v, %v", tl.String(), got, err)
		}
	}
	if _, err := Parse("lasso"); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
	if k, ok := Ellipse.Kind(); !ok || k != shape.Ellipse {
		t.Fatalf("ellipse kind = %v %v", k, ok)
	}
	if _, ok := Grab.Kind(); ok {
		t.Fatalf("grab should not draw")
	}
	if Select.Draws() || !Text.Draws() {
		t.Fatalf("unexpected Draws results")
	}
}
