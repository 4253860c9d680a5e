package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/whiteboard/internal/appstate"
	"github.com/example/whiteboard/internal/config"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("whiteboard", flag.ContinueOnError),
		program:  "whiteboard",
		notifier: notify.New(notify.LoadPreferences()),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.SetOutput(io.Discard)
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting a PNG (default from [notify] export)")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard (default from [notify] copy)")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, light, high_contrast or a file path)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the RC file. A broken file is reported and replaced by
// defaults so the board still opens.
func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
}

func (r *root) loadTheme() {
	name := r.config.ThemeName(r.themeName)
	t, err := r.config.LoadTheme(name, theme.NewLoader())
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.config == nil {
		r.loadConfig()
	}
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-export"] {
		r.exportAlerts = r.config.Notify.Export
	}
	if !set["notify-copy"] {
		r.copyAlerts = r.config.Notify.Copy
	}
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "themes":
		cmd, err = parsePlainCmd("themes", subArgs, r, (&themesCmd{root: r}).Run)
	case "version":
		cmd, err = parsePlainCmd("version", subArgs, r, (&versionCmd{root: r}).Run)
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// sessionOptions are the appstate options every subcommand shares.
func (r *root) sessionOptions() []appstate.Option {
	return []appstate.Option{
		appstate.WithConfig(r.config),
		appstate.WithTheme(r.activeTheme),
		appstate.WithNotifier(r.notifier),
	}
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
