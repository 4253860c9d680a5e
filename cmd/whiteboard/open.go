package main

import (
	"errors"
	"flag"

	"github.com/example/whiteboard/internal/appstate"
)

// openCmd shows the board in a window.
type openCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	output string
	script string
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func (o *openCmd) Program() string {
	return o.root.subcommand("open")
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	o := &openCmd{root: r, fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(o)
	fs.IntVar(&o.width, "width", 1024, "canvas width in pixels")
	fs.IntVar(&o.height, "height", 720, "canvas height in pixels")
	fs.StringVar(&o.output, "output", "", "PNG written by Ctrl+S (default: timestamped file in export_dir)")
	fs.StringVar(&o.script, "script", "", "replay script to run before the window opens")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: o}
		}
		return nil, err
	}
	if o.width <= 0 || o.height <= 0 || fs.NArg() > 0 {
		return nil, &UsageError{of: o}
	}
	return o, nil
}

func (o *openCmd) Run() error {
	opts := append(o.sessionOptions(),
		appstate.WithCanvasSize(o.width, o.height),
		appstate.WithOutput(o.output),
	)
	st := appstate.New(opts...)
	if o.script != "" {
		s := newSession(st, o.stdout)
		if err := s.runFile(o.script, o.stdin); err != nil {
			return err
		}
	}
	st.Run()
	return nil
}
