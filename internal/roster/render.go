package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/microsoft/rollcall/internal/models"
)

const (
	colIndex = 15
	colName  = 30
)

// Render writes the roster table.
//
//nolint:errcheck // display-only writes; errors are not actionable
func Render(w io.Writer, students []models.Student) {
	fmt.Fprintln(w, "\n--- Registered Students ---")
	fmt.Fprintf(w, "%s%s\n", PadRight("INDEX NUMBER", colIndex), PadRight("STUDENT NAME", colName))
	fmt.Fprintln(w, strings.Repeat("-", colIndex+colName+1))
	if len(students) == 0 {
		fmt.Fprintln(w, "No students registered yet.")
		return
	}
	for _, s := range students {
		fmt.Fprintf(w, "%s%s\n", PadRight(s.Index, colIndex), PadRight(s.Name, colName))
	}
}

// PadRight pads s with spaces so its terminal display width reaches width.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
