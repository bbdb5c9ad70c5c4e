package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how a command presents a table.
type OutputMode int

// Output modes, richest first.
const (
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive OutputMode = iota
	// OutputModeStyled prints one Lip Gloss page.
	OutputModeStyled
	// OutputModePlain prints the tabwriter table.
	OutputModePlain
)

// Terminal size fallbacks.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	case OutputModePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the output mode for stdout. plain and noColor force
// plain text, as do the NO_COLOR variable and TERM=dumb. forceColor allows
// styling when stdout is not a terminal. CI environments never get the
// interactive program.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	//nolint:gosec // File descriptors fit in int on supported platforms.
	return detectOutputMode(term.IsTerminal(int(os.Stdout.Fd())), forceColor, noColor, plain, os.Getenv)
}

func detectOutputMode(isTTY, forceColor, noColor, plain bool, getenv func(string) string) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !isTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or a default when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // See DetectOutputMode.
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
