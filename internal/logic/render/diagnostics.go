package render

import (
	"fmt"
	"io"
)

// Diagnostics writes one plain-text line per iteration. Output is best
// effort: write errors are dropped.
type Diagnostics struct {
	w io.Writer
}

// NewDiagnostics wraps w.
func NewDiagnostics(w io.Writer) *Diagnostics {
	return &Diagnostics{w: w}
}

// Report writes the raw samples, both duties and the cursor position.
func (d *Diagnostics) Report(s Snapshot) {
	_, _ = fmt.Fprintln(d.w, Line(s))
}

// Line formats a snapshot the way the firmware prints it on its serial port.
func Line(s Snapshot) string {
	return fmt.Sprintf("VRX: %d, VRY: %d, Red PWM: %d, Blue PWM: %d, X: %d, Y: %d",
		s.Horizontal, s.Vertical, s.Duty.Red, s.Duty.Blue, s.Cursor.X, s.Cursor.Y)
}
