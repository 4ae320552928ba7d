// Package output renders CLI results for terminals, markdown consumers and
// machine readers.
package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects how a Renderer formats output.
type Mode string

// OutputMode is kept as an alias of Mode for call sites that spell it out.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Modes lists the accepted --output values.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// ParseMode converts a flag value into a Mode. Unknown and empty values
// fall back to ModeAuto; "md" is accepted for markdown.
func ParseMode(s string) Mode {
	switch s {
	case "text", "json", "markdown":
		return Mode(s)
	case "md":
		return ModeMarkdown
	}
	return ModeAuto
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
