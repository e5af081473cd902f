package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"propertyfinder/internal/format"
	"propertyfinder/internal/presentation"
	"propertyfinder/internal/render"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	priceColor = color.New(color.FgGreen, color.Bold)
	badgeColor = color.New(color.FgMagenta)
	errorColor = color.New(color.FgRed, color.Bold)
	mutedColor = color.New(color.Faint)
)

var timeNow = time.Now

// linePrinter is the presentation surface for line mode. Nothing is printed
// before the first search starts, so the welcome panel stays silent.
type linePrinter struct {
	w       io.Writer
	started bool
}

func newLinePrinter(w io.Writer) *linePrinter {
	return &linePrinter{w: w}
}

func (p *linePrinter) Hide(presentation.Region) {}

func (p *linePrinter) Show(r presentation.Region, panel presentation.Panel) {
	switch r {
	case presentation.LoadingIndicator:
		p.started = true
		mutedColor.Fprintln(p.w, panel.Title)
	case presentation.ResultsGrid:
		titleColor.Fprintln(p.w, panel.Title)
	case presentation.EmptyPanel:
		if !p.started {
			return
		}
		if panel.Action != "" {
			errorColor.Fprintln(p.w, panel.Title)
		} else {
			titleColor.Fprintln(p.w, panel.Title)
		}
		fmt.Fprintln(p.w, panel.Message)
	}
}

// separatorWidth follows the terminal width when stdout is a terminal.
func separatorWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return min(w, 100)
	}
	return 80
}

// printCards prints every card in a pleasant, readable layout.
func printCards(w io.Writer, cards []render.Card, width int) {
	for _, c := range cards {
		fmt.Fprintln(w, strings.Repeat("-", width))
		titleColor.Fprintf(w, "%2d. %s", c.Index+1, c.Title)
		if c.HasBadge() {
			fmt.Fprint(w, "  ")
			badgeColor.Fprint(w, c.Badge)
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, "    ")
		priceColor.Fprintln(w, c.Price)

		features := make([]string, len(c.Features))
		for i, f := range c.Features {
			features[i] = f.String()
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(features, "  "))
		if c.Description != "" {
			fmt.Fprintf(w, "    %s\n", c.Description)
		}
	}
	if len(cards) > 0 {
		fmt.Fprintln(w, strings.Repeat("-", width))
	}
}

// cardLine is the one-line summary used by the picker.
func cardLine(c render.Card) string {
	return fmt.Sprintf("%-32s | %-14s | %s", format.Truncate(c.Title, 30), c.Price, format.Location(c.Record))
}

// printDetails prints a detail listing with aligned keys.
func printDetails(w io.Writer, c render.Card, lines []render.Line) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
	titleColor.Fprintln(w, c.Title)
	priceColor.Fprintln(w, c.Price)
	for _, l := range lines {
		fmt.Fprintf(w, "%-18s: %s\n", l.Key, l.Value)
	}
}
