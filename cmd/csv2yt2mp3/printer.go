package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/download"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// newPrinter returns a sink writing one styled line per event. Verbose
// events are dropped unless verbose is set.
func newPrinter(w io.Writer, verbose bool) event.Sink {
	var mu sync.Mutex
	return func(e event.Event) {
		if e.Level == event.LevelVerbose && !verbose {
			return
		}

		var style lipgloss.Style
		prefix := "  "
		switch e.Level {
		case event.LevelError:
			style, prefix = errorStyle, "✗ "
		case event.LevelWarning:
			style, prefix = warningStyle, "! "
		case event.LevelSuccess:
			style, prefix = successStyle, "✓ "
		case event.LevelInfo:
			style, prefix = infoStyle, "› "
		default:
			style = dimStyle
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, style.Render(prefix+e.Message))
	}
}

func summaryLine(s download.Summary) string {
	line := fmt.Sprintf("Placed %d, skipped %d, failed %d of %d song(s)", s.Placed, s.Skipped, s.Failed, s.Total)
	switch {
	case s.Failed > 0:
		return warningStyle.Render(line)
	case s.Placed > 0:
		return successStyle.Render(line)
	default:
		return infoStyle.Render(line)
	}
}
