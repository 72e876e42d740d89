package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Lotka ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _           _   _         ", "#34d399"},
		{" | |    ___  | |_| | ____ _ ", "#2dd4bf"},
		{" | |   / _ \\ | __| |/ / _` |", "#22d3ee"},
		{" | |__| (_) || |_|   < (_| |", "#38bdf8"},
		{" |_____\\___/  \\__|_|\\_\\__,_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
