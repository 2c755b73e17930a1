package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter writes plain text output, one item per line-separated block.
type TextWriter struct {
	w     *bufio.Writer
	count int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write outputs a single item. String items are written verbatim; string
// slices one element per line; other values via fmt.
func (w *TextWriter) Write(data any) error {
	if w.count > 0 {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	w.count++

	switch v := data.(type) {
	case string:
		if _, err := w.w.WriteString(v); err != nil {
			return err
		}
	case []string:
		for i, item := range v {
			if i > 0 {
				if _, err := w.w.WriteString("\n"); err != nil {
					return err
				}
			}
			if _, err := w.w.WriteString(item); err != nil {
				return err
			}
		}
	default:
		if _, err := fmt.Fprint(w.w, v); err != nil {
			return err
		}
	}

	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}
