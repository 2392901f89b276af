package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revi-dev/revi"
)

// Loader loads FileDiffResult records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (16MB).
// A whole-file synthetic diff with highlights is one line.
const maxLineSize = 16 * 1024 * 1024

// Load reads a JSONL file and returns all FileDiffResult records.
func (l *Loader) Load(path string) ([]revi.FileDiffResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Read(f)
}

// Read decodes FileDiffResult records from r. Blank lines are skipped.
func (l *Loader) Read(r io.Reader) ([]revi.FileDiffResult, error) {
	var results []revi.FileDiffResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var result revi.FileDiffResult
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		results = append(results, result)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
