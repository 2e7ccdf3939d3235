// Package render turns a catalog into the CSV sheet and the forum post.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"achrip/internal/components/telemetry"
)

var tracer = telemetry.Tracer("achrip.render")

// WriteFile creates (or truncates) path and passes a buffered writer of it to
// render.
func WriteFile(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	err = render(w)
	if err == nil {
		err = w.Flush()
	}
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", path, closeErr)
	}
	return nil
}
