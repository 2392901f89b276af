package jsonl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid JSONL file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "diffs.jsonl")
		content := `{"path":"a.go","hunks":[{"header":"@@ -1 +1 @@","oldStart":1,"oldLines":1,"newStart":1,"newLines":1,"lines":[{"type":"deleted","content":"x","oldLineNum":1,"highlights":[]},{"type":"added","content":"y","newLineNum":1,"highlights":[{"start":0,"end":1,"category":"word-added"}]}]}],"stats":{"additions":1,"deletions":1},"contentHash":"abc"}
{"path":"b.go","hunks":[],"stats":{"additions":0,"deletions":0},"contentHash":"def"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		loader := jsonl.NewLoader()
		results, err := loader.Load(path)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a.go", results[0].Path)
		assert.Equal(t, "abc", results[0].Fingerprint)
		require.Len(t, results[0].Hunks, 1)
		lines := results[0].Hunks[0].Lines
		require.Len(t, lines, 2)
		assert.Equal(t, revi.LineDeleted, lines[0].Kind)
		assert.Equal(t, 1, lines[0].OldLineNo)
		assert.Equal(t, revi.LineAdded, lines[1].Kind)
		assert.Equal(t, []revi.Span{{Start: 0, End: 1, Category: revi.CategoryWordAdded}}, lines[1].Spans)
		assert.Equal(t, "b.go", results[1].Path)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		loader := jsonl.NewLoader()
		_, err := loader.Load("/nonexistent/path.jsonl")

		assert.Error(t, err)
	})

	t.Run("returns error for malformed JSON line", func(t *testing.T) {
		t.Parallel()

		content := `{"path":"a.go"}
not valid json
{"path":"b.go"}`

		loader := jsonl.NewLoader()
		_, err := loader.Read(strings.NewReader(content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("rejects unknown line kinds", func(t *testing.T) {
		t.Parallel()

		content := `{"path":"a.go","hunks":[{"lines":[{"type":"modified","content":"x"}]}]}`

		loader := jsonl.NewLoader()
		_, err := loader.Read(strings.NewReader(content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		loader := jsonl.NewLoader()
		results, err := loader.Read(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("skips empty lines", func(t *testing.T) {
		t.Parallel()

		content := "{\"path\":\"a.go\"}\n\n   \n{\"path\":\"b.go\"}\n"

		loader := jsonl.NewLoader()
		results, err := loader.Read(strings.NewReader(content))

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}
