package utils

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nijaru/yt-transcript/models"
	"github.com/pkg/errors"
)

// WriteJSON writes v as a single line of JSON. Caption text is emitted
// verbatim, so HTML escaping is off.
func WriteJSON(w io.Writer, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write JSON")
	}
	return nil
}

func WriteError(w io.Writer, message string) error {
	return WriteJSON(w, models.ErrorResult{Error: message})
}
