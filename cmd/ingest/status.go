package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/toolbridge"
	"github.com/mattn/go-runewidth"
)

// maxLocatorWidth is the display width locators are truncated to.
const maxLocatorWidth = 72

// palette maps status roles to ANSI color indices (0-15) so output follows
// the terminal's color scheme. A negative index disables color.
type palette struct {
	Success int
	Error   int
	Muted   int
	Accent  int
}

func defaultPalette() palette {
	return palette{Success: 2, Error: 1, Muted: 8, Accent: 5}
}

type styles struct {
	success lipgloss.Style
	error   lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		success: lipgloss.NewStyle().Foreground(ansiColor(p.Success)),
		error:   lipgloss.NewStyle().Foreground(ansiColor(p.Error)),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(p.Muted)).Faint(true),
		accent:  lipgloss.NewStyle().Foreground(ansiColor(p.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// writeStatus prints one line per source and a summary line. Sources are
// marked failed when they were skipped, or all of them when the run failed.
func writeStatus(w io.Writer, s styles, sources []toolbridge.DocumentSource, res toolbridge.IngestionResult) {
	for _, src := range sources {
		locator := runewidth.Truncate(src.Locator, maxLocatorWidth, "…")
		kind := s.muted.Render(string(src.Kind))
		switch {
		case slices.Contains(res.Skipped, src.Locator):
			fmt.Fprintf(w, "%s %s %s %s\n", s.error.Render("✗"), locator, kind, s.muted.Render("(skipped)"))
		case !res.OK():
			fmt.Fprintf(w, "%s %s %s\n", s.muted.Render("·"), locator, kind)
		default:
			fmt.Fprintf(w, "%s %s %s\n", s.success.Render("✓"), locator, kind)
		}
	}

	if !res.OK() {
		fmt.Fprintf(w, "%s\n", s.error.Render("ingestion failed"))
		return
	}
	used := len(sources) - len(res.Skipped)
	fmt.Fprintf(w, "%s\n", s.accent.Render(fmt.Sprintf("%d of %d sources used", used, len(sources))))
}
