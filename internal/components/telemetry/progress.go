package telemetry

import (
	"fmt"
	"io"
	"strings"
)

const progressIndentWidth = 4

// Progress prints the human facing progress lines of a run, each line is
// prefixed with 4 dots per nesting level.
//
// Progress is a value, Nest returns a deeper copy so the nesting of the caller
// is untouched once the callee returns. The zero value prints nothing.
type Progress struct {
	out     io.Writer
	verbose bool
	depth   int
}

func NewProgress(out io.Writer, verbose bool) Progress {
	return Progress{out: out, verbose: verbose}
}

// Nest returns a Progress one level deeper than p.
func (p Progress) Nest() Progress {
	p.depth++
	return p
}

func (p Progress) Depth() int {
	return p.depth
}

func (p Progress) Enabled() bool {
	return p.verbose && p.out != nil
}

func (p Progress) Print(msg string) {
	if !p.Enabled() {
		return
	}
	fmt.Fprintf(p.out, "%s%s\n", strings.Repeat(".", p.depth*progressIndentWidth), msg)
}

func (p Progress) Printf(format string, args ...any) {
	if !p.Enabled() {
		return
	}
	p.Print(fmt.Sprintf(format, args...))
}
