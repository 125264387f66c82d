// Package display renders command output of the traceid CLI.
// It handles colorized and plain output, structured formats for generated
// identifiers, and error formatting.
package display

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Display handles all terminal presentation for the CLI.
// Colors are used only in interactive mode and when NO_COLOR is not set.
type Display struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool
	noColor     bool
}

// New creates a new Display writing regular output to out and errors to errOut.
func New(out, errOut io.Writer, interactive bool) *Display {
	return &Display{
		out:         out,
		errOut:      errOut,
		interactive: interactive,
		noColor:     os.Getenv("NO_COLOR") != "" || !interactive,
	}
}

// IsInteractive returns true if the display is in interactive mode.
func (d *Display) IsInteractive() bool {
	return d.interactive
}

// color creates a color that respects the display's color settings.
func (d *Display) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if d.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}

	return c
}
