package net

import (
	"fmt"
	"io"
)

// Wire framing is newline-delimited UTF-8 JSON: one envelope per line.

// WriteLine writes one message followed by a single '\n'.
func WriteLine(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("write delimiter: %w", err)
	}
	return nil
}
