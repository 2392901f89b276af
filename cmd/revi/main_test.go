package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/revi-dev/revi"
	main "github.com/revi-dev/revi/cmd/revi"
	"github.com/revi-dev/revi/jsonl"
	"github.com/revi-dev/revi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoDiffer returns a one-line added result per path.
func echoDiffer(requests *[]revi.FileDiffRequest) *mock.FileDiffer {
	var mu sync.Mutex
	return &mock.FileDiffer{
		FileDiffFn: func(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
			mu.Lock()
			*requests = append(*requests, req)
			mu.Unlock()
			return &revi.FileDiffResult{
				Path: req.Path,
				Hunks: []revi.Hunk{{
					Header: "@@ -0,0 +1,1 @@", NewStart: 1, NewCount: 1,
					Lines: []revi.DiffLine{{Kind: revi.LineAdded, Text: req.Path, NewLineNo: 1}},
				}},
				Stats:       revi.DiffStats{Additions: 1},
				Fingerprint: revi.Fingerprint(req.Path),
			}, nil
		},
	}
}

func noFiles() *mock.ChangedFileLister {
	return &mock.ChangedFileLister{
		ChangedFilesFn: func(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
			return nil, nil
		},
	}
}

func diffOptions(paths ...string) main.DiffOptions {
	return main.DiffOptions{
		RepoRoot: "/repo",
		Base:     "main",
		Head:     "feature",
		Paths:    paths,
		Format:   main.FormatJSON,
	}
}

func TestApp_Diff(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSON line per path in order", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		var requests []revi.FileDiffRequest
		app := &main.App{Out: &out, Differ: echoDiffer(&requests), Files: noFiles(), Workers: 3}

		err := app.Diff(context.Background(), diffOptions("c.go", "a.go", "b.go", "d.go"))

		require.NoError(t, err)
		results, err := jsonl.NewLoader().Read(&out)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "c.go", results[0].Path)
		assert.Equal(t, "a.go", results[1].Path)
		assert.Equal(t, "b.go", results[2].Path)
		assert.Equal(t, "d.go", results[3].Path)
		assert.Len(t, requests, 4)
		for _, req := range requests {
			assert.Equal(t, "/repo", req.RepoRoot)
			assert.Equal(t, "main", req.Base)
			assert.Equal(t, "feature", req.Head)
		}
	})

	t.Run("writes unified text in patch format", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		var requests []revi.FileDiffRequest
		app := &main.App{Out: &out, Differ: echoDiffer(&requests), Files: noFiles(), Workers: 1}
		opts := diffOptions("x.txt")
		opts.Format = main.FormatPatch

		err := app.Diff(context.Background(), opts)

		require.NoError(t, err)
		assert.Equal(t, "--- /dev/null\n+++ b/x.txt\n@@ -0,0 +1,1 @@\n+x.txt\n", out.String())
	})

	t.Run("diffs every changed text file without paths", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		var requests []revi.FileDiffRequest
		files := &mock.ChangedFileLister{
			ChangedFilesFn: func(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
				assert.Equal(t, "/repo", repoRoot)
				return []revi.ChangedFile{
					{Path: "a.go"},
					{Path: "logo.png", IsBinary: true},
					{Path: "b.go", OldPath: "old.go", Operation: revi.FileRenamed},
				}, nil
			},
		}
		app := &main.App{Out: &out, Differ: echoDiffer(&requests), Files: files, Workers: 2}

		err := app.Diff(context.Background(), diffOptions())

		require.NoError(t, err)
		results, err := jsonl.NewLoader().Read(&out)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a.go", results[0].Path)
		assert.Equal(t, "b.go", results[1].Path)
	})

	t.Run("reports no changes", func(t *testing.T) {
		t.Parallel()

		var requests []revi.FileDiffRequest
		app := &main.App{Out: &bytes.Buffer{}, Differ: echoDiffer(&requests), Files: noFiles(), Workers: 1}

		err := app.Diff(context.Background(), diffOptions())

		require.ErrorIs(t, err, main.ErrNoChanges)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		app := &main.App{Out: &bytes.Buffer{}}
		opts := diffOptions("a.go")
		opts.Format = "xml"

		err := app.Diff(context.Background(), opts)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})

	t.Run("returns the first differ error and writes nothing", func(t *testing.T) {
		t.Parallel()

		diffErr := errors.New("git diff failed: fatal: bad revision")
		var out bytes.Buffer
		app := &main.App{
			Out: &out,
			Differ: &mock.FileDiffer{
				FileDiffFn: func(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
					if req.Path == "bad.go" {
						return nil, diffErr
					}
					return &revi.FileDiffResult{Path: req.Path}, nil
				},
			},
			Files:   noFiles(),
			Workers: 2,
		}

		err := app.Diff(context.Background(), diffOptions("good.go", "bad.go"))

		require.ErrorIs(t, err, diffErr)
		assert.Empty(t, out.String())
	})

	t.Run("bounds concurrency by workers", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		release := make(chan struct{})
		app := &main.App{
			Out: &bytes.Buffer{},
			Differ: &mock.FileDiffer{
				FileDiffFn: func(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
					n := running.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					<-release
					running.Add(-1)
					return &revi.FileDiffResult{Path: req.Path}, nil
				},
			},
			Files:   noFiles(),
			Workers: 2,
		}

		done := make(chan error, 1)
		go func() {
			done <- app.Diff(context.Background(), diffOptions("a", "b", "c", "d", "e"))
		}()
		for range 5 {
			release <- struct{}{}
		}

		require.NoError(t, <-done)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("fails when listing changed files fails", func(t *testing.T) {
		t.Parallel()

		listErr := errors.New("git diff failed: not a git repository")
		app := &main.App{
			Out: &bytes.Buffer{},
			Files: &mock.ChangedFileLister{
				ChangedFilesFn: func(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
					return nil, listErr
				},
			},
		}

		err := app.Diff(context.Background(), diffOptions())

		require.ErrorIs(t, err, listErr)
	})
}

func TestApp_ListFiles(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Out: &out,
		Files: &mock.ChangedFileLister{
			ChangedFilesFn: func(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
				assert.Equal(t, revi.WorkingTree, head)
				return []revi.ChangedFile{
					{Path: "a.go", Operation: revi.FileModified, Additions: 1, Deletions: 2},
					{Path: "new.go", Operation: revi.FileAdded, Additions: 5},
				}, nil
			},
		},
	}

	err := app.ListFiles(context.Background(), "/repo", "HEAD", revi.WorkingTree)

	require.NoError(t, err)
	want := `{"path":"a.go","status":"modified","additions":1,"deletions":2}` + "\n" +
		`{"path":"new.go","status":"added","additions":5,"deletions":0}` + "\n"
	assert.Equal(t, want, out.String())
}

func TestApp_Fingerprint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{Out: &out}

	err := app.Fingerprint(strings.NewReader("hello"))

	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824\n", out.String())
}

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts consistent results", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		input := `{"path":"a.go","hunks":[{"header":"@@ -0,0 +1,1 @@","oldStart":0,"oldLines":0,"newStart":1,"newLines":1,"lines":[{"type":"added","content":"x","newLineNum":1,"highlights":[]}]}],"stats":{"additions":1,"deletions":0},"contentHash":"h"}`
		app := &main.App{Out: &out}

		err := app.Validate(strings.NewReader(input))

		require.NoError(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("reports inconsistencies", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		input := `{"path":"a.go","hunks":[],"stats":{"additions":3,"deletions":0},"contentHash":"h"}`
		app := &main.App{Out: &out}

		err := app.Validate(strings.NewReader(input))

		require.ErrorIs(t, err, main.ErrInvalidResults)
		assert.Contains(t, out.String(), "a.go: stats_mismatch")
	})

	t.Run("reads results from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.jsonl")
		content := `{"path":"b.go","hunks":[],"stats":{"additions":0,"deletions":1},"contentHash":"h"}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		var out bytes.Buffer
		app := &main.App{Out: &out}

		err := app.ValidateFile(path)

		require.ErrorIs(t, err, main.ErrInvalidResults)
		assert.Contains(t, out.String(), "b.go: stats_mismatch")
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		t.Parallel()

		app := &main.App{Out: &bytes.Buffer{}}

		err := app.ValidateFile(filepath.Join(t.TempDir(), "missing.jsonl"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, main.ErrInvalidResults)
	})
}
