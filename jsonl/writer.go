// Package jsonl reads and writes JSON Lines streams of diff results and
// changed-file summaries.
package jsonl

import (
	"encoding/json"
	"io"
	"sync"
)

// Writer encodes one JSON document per line. It is safe for concurrent use;
// each document is written atomically.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes v followed by a newline.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(v)
}
