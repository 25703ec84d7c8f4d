// Package output writes the remote response body to the process output.
package output

import (
	"fmt"
	"io"
)

// Write copies body to w unchanged and terminates it with a newline.
func Write(w io.Writer, body []byte) error {
	buf := make([]byte, 0, len(body)+1)
	buf = append(buf, body...)
	buf = append(buf, '\n')

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
