package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/whiteboard/internal/theme"
)

// themesCmd lists the themes -theme accepts by name.
type themesCmd struct{ *root }

func (t *themesCmd) Run() error {
	names := theme.NewLoader().Names()
	var custom []string
	for name := range t.config.Themes {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	for _, n := range append(names, custom...) {
		marker := " "
		if strings.EqualFold(n, t.activeTheme.Name) {
			marker = "*"
		}
		fmt.Fprintf(t.stdout, "%s %s\n", marker, n)
	}
	return nil
}
