package display

import (
	"fmt"

	"github.com/fatih/color"
)

// ShowError displays a formatted error message with an optional hint.
func (d *Display) ShowError(title string, err error, hint string) {
	errLabelColor := d.color(color.FgRed, color.Bold)
	errMsgColor := d.color(color.FgRed)
	hintLabelColor := d.color(color.FgYellow, color.Bold)

	_, _ = errLabelColor.Fprint(d.errOut, "[ERR] ")
	_, _ = errLabelColor.Fprintln(d.errOut, title)

	if err != nil {
		_, _ = fmt.Fprint(d.errOut, "  ")
		_, _ = errMsgColor.Fprintln(d.errOut, err.Error())
	}

	if hint != "" {
		_, _ = hintLabelColor.Fprint(d.errOut, "  Hint: ")
		_, _ = fmt.Fprintln(d.errOut, hint)
	}
}
