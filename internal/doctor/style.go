// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// palette holds the escape sequences used by Print. The zero value prints plain text.
type palette struct {
	red, yellow, cyan, white, gray, reset, bold string
}

var ansi = palette{
	red:    "\033[31m",
	yellow: "\033[33m",
	cyan:   "\033[36m",
	white:  "\033[37m",
	gray:   "\033[90m",
	reset:  "\033[0m",
	bold:   "\033[1m",
}

// paletteFor colors output only when w is a terminal, so redirected diagnoses stay readable.
func paletteFor(w io.Writer) palette {
	f, ok := w.(*os.File)
	if !ok {
		return palette{}
	}

	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return ansi
	}

	return palette{}
}
