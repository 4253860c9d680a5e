package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/whiteboard/internal/appstate"
	"github.com/example/whiteboard/internal/geom"
	"github.com/example/whiteboard/internal/interact"
	"github.com/example/whiteboard/internal/shape"
	"github.com/example/whiteboard/internal/tool"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// replayCmd drives a session from a script without opening a window.
type replayCmd struct {
	*root
	fs     *flag.FlagSet
	script string
	execs  commandList
	output string
	width  int
	height int
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Program() string {
	return c.root.subcommand("replay")
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.script, "script", "-", "script file to replay, - for stdin")
	fs.Var(&c.execs, "e", "execute a script line (may be specified multiple times; replaces -script)")
	fs.StringVar(&c.output, "output", "", "render the final board to this PNG file")
	fs.IntVar(&c.width, "width", 1024, "canvas width in pixels")
	fs.IntVar(&c.height, "height", 720, "canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() == 1 && c.script == "-" {
		c.script = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	opts := append(c.sessionOptions(), appstate.WithCanvasSize(c.width, c.height))
	s := newSession(appstate.New(opts...), c.stdout)
	if len(c.execs) > 0 {
		for i, line := range c.execs {
			done, err := s.executeLine(line)
			if err != nil {
				return fmt.Errorf("-e #%d: %w", i+1, err)
			}
			if done {
				break
			}
		}
	} else if err := s.runFile(c.script, c.stdin); err != nil {
		return err
	}
	if c.output != "" {
		if _, err := s.export(c.output); err != nil {
			return err
		}
	}
	return nil
}

// session interprets script lines against one board.
type session struct {
	st  *appstate.AppState
	out io.Writer
}

func newSession(st *appstate.AppState, out io.Writer) *session {
	return &session{st: st, out: out}
}

// runFile executes every line of the named script; "-" reads stdin.
func (s *session) runFile(path string, stdin io.Reader) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	return s.run(r)
}

func (s *session) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// executeLine runs one script command. It reports done for exit/quit.
func (s *session) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	verb, args := strings.ToLower(args[0]), args[1:]

	switch verb {
	case "exit", "quit":
		return true, nil
	case "tool":
		if len(args) != 1 {
			return false, errors.New("usage: tool NAME")
		}
		t, err := tool.Parse(args[0])
		if err != nil {
			return false, err
		}
		s.st.SetTool(t)
	case "down", "move", "up":
		return false, s.pointer(verb, args)
	case "cancel":
		s.st.Cancel()
	case "wheel":
		if len(args) != 3 {
			return false, errors.New("usage: wheel X Y DIR")
		}
		p, err := parsePoint(args[0], args[1])
		if err != nil {
			return false, err
		}
		dir, err := strconv.Atoi(args[2])
		if err != nil {
			return false, fmt.Errorf("invalid direction %q", args[2])
		}
		s.st.Wheel(p, dir)
	case "pan":
		if len(args) != 2 {
			return false, errors.New("usage: pan DX DY")
		}
		d, err := parsePoint(args[0], args[1])
		if err != nil {
			return false, err
		}
		s.st.Pan(d.X, d.Y)
	case "reset":
		s.st.ResetView()
	case "style":
		if len(args) == 0 {
			return false, errors.New("usage: style key=value...")
		}
		var p shape.StylePatch
		for _, kv := range args {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return false, fmt.Errorf("expected key=value, got %q", kv)
			}
			if err := p.SetField(k, v); err != nil {
				return false, err
			}
		}
		n := s.st.ApplyStyle(p)
		fmt.Fprintf(s.out, "styled %d\n", n)
	case "delete":
		fmt.Fprintf(s.out, "deleted %d\n", s.st.DeleteSelection())
	case "text":
		if len(args) < 1 {
			return false, errors.New("usage: text ID CONTENT...")
		}
		id, err := s.resolveID(args[0])
		if err != nil {
			return false, err
		}
		content := strings.Join(args[1:], " ")
		content = strings.ReplaceAll(content, `\n`, "\n")
		if !s.st.SetText(id, content) {
			return false, fmt.Errorf("%s is not a text shape", args[0])
		}
	case "select":
		ids := make([]string, 0, len(args))
		for _, a := range args {
			id, err := s.resolveID(a)
			if err != nil {
				return false, err
			}
			ids = append(ids, id)
		}
		s.st.Select(ids...)
	case "clear":
		s.st.ClearSelection()
	case "list":
		s.list()
	case "view":
		t := s.st.Transform()
		fmt.Fprintf(s.out, "scale=%g x=%g y=%g tool=%s\n", t.Scale, t.Position.X, t.Position.Y, s.st.Tool())
	case "export":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := s.export(path); err != nil {
			return false, err
		}
	case "copy":
		detail, err := s.st.Copy(context.Background())
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "copied %s\n", detail)
	default:
		return false, fmt.Errorf("unknown command %q", verb)
	}
	return false, nil
}

func (s *session) pointer(verb string, args []string) error {
	if len(args) < 2 || len(args) > 3 || (verb != "down" && len(args) != 2) {
		if verb == "down" {
			return errors.New("usage: down X Y [ID]")
		}
		return fmt.Errorf("usage: %s X Y", verb)
	}
	p, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	ev := interact.PointerEvent{Pos: p}
	switch verb {
	case "down":
		if len(args) == 3 {
			if ev.Target, err = s.resolveID(args[2]); err != nil {
				return err
			}
		}
		s.st.PointerDown(ev)
	case "move":
		s.st.PointerMove(ev)
	case "up":
		res := s.st.PointerUp(ev)
		switch {
		case res.Shape != nil:
			fmt.Fprintf(s.out, "%s %s\n", res.Action, res.Shape.ID)
		case res.Action == interact.ActionAreaSelected:
			fmt.Fprintf(s.out, "%s %d\n", res.Action, res.Selected)
		default:
			fmt.Fprintln(s.out, res.Action)
		}
	}
	return nil
}

// resolveID accepts a shape id, "@N" for the Nth shape in paint order, or
// "last".
func (s *session) resolveID(tok string) (string, error) {
	shapes := s.st.Snapshot()
	if tok == "last" {
		if len(shapes) == 0 {
			return "", errors.New("board is empty")
		}
		return shapes[len(shapes)-1].ID, nil
	}
	if idx, ok := strings.CutPrefix(tok, "@"); ok {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 1 || n > len(shapes) {
			return "", fmt.Errorf("no shape %s", tok)
		}
		return shapes[n-1].ID, nil
	}
	return tok, nil
}

func (s *session) list() {
	for i, sh := range s.st.Snapshot() {
		mark := " "
		if sh.Selected {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s @%d %s %s %g,%g %gx%g", mark, i+1, sh.ID, sh.Kind, sh.X, sh.Y, sh.Width, sh.Height)
		if sh.Kind == shape.Text {
			fmt.Fprintf(s.out, " %q", sh.Style.Text)
		}
		fmt.Fprintln(s.out)
	}
}

func (s *session) export(path string) (string, error) {
	written, err := s.st.Export(context.Background(), path)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "exported %s\n", written)
	return written, nil
}

func parsePoint(xs, ys string) (geom.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid number %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid number %q", ys)
	}
	return geom.Pt(x, y), nil
}
