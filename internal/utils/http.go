package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ContentTypeJSON is the media type of every JSON body the API writes.
const ContentTypeJSON = "application/json"

// WriteJSON encodes data and writes it with statusCode.
//
// The body is encoded before any header is sent, so an unencodable value
// turns into a plain 500 instead of a truncated response. It returns the
// number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	// Encode appends a newline; keep bodies byte-identical to json.Marshal.
	return w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
