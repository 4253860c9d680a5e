package main

import (
	"bytes"
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

// HelpData is what a help template is rendered against.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError carries the help text of the command that was misused.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(h HelpData) func() {
	return func() {
		if fs := h.FlagSet(); fs != nil {
			fmt.Fprint(fs.Output(), (&UsageError{of: h}).Error())
		}
	}
}

// plainCmd is a subcommand without flags or arguments of its own.
type plainCmd struct {
	*root
	name string
	fs   *flag.FlagSet
	run  func() error
}

func parsePlainCmd(name string, args []string, r *root, run func() error) (*plainCmd, error) {
	c := &plainCmd{root: r, name: name, fs: flag.NewFlagSet(name, flag.ContinueOnError), run: run}
	c.fs.SetOutput(r.stderr)
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *plainCmd) Run() error             { return c.run() }
func (c *plainCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *plainCmd) Program() string        { return c.root.subcommand(c.name) }
func (c *plainCmd) Template() string       { return c.name + ".txt" }

func (r *root) Template() string      { return "root.txt" }
func (o *openCmd) Template() string   { return "open.txt" }
func (c *replayCmd) Template() string { return "replay.txt" }
func (c *configCmd) Template() string { return "config.txt" }
