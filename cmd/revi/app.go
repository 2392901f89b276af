package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/jsonl"
	"golang.org/x/sync/errgroup"
)

// ErrNoChanges is returned when there are no changed files to diff.
var ErrNoChanges = errors.New("no changes to display")

// ErrInvalidResults is returned when validation finds inconsistent results.
var ErrInvalidResults = errors.New("invalid diff results")

// Output formats of the diff command.
const (
	FormatJSON  = "json"
	FormatPatch = "patch"
)

// DiffOptions selects the files and revisions of a diff run.
type DiffOptions struct {
	RepoRoot         string
	Base             string
	Head             string // Revision or revi.WorkingTree
	Paths            []string
	IgnoreWhitespace bool
	Format           string
}

// App encapsulates the application logic for testing.
type App struct {
	Out     io.Writer
	Differ  revi.FileDiffer
	Files   revi.ChangedFileLister
	Workers int
	Logger  *slog.Logger
}

// Diff computes the annotated diff of every requested path, or of every
// changed file when no paths are given, and writes the results in path
// order.
func (a *App) Diff(ctx context.Context, opts DiffOptions) error {
	if opts.Format != FormatJSON && opts.Format != FormatPatch {
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	paths := opts.Paths
	if len(paths) == 0 {
		changed, err := a.Files.ChangedFiles(ctx, opts.RepoRoot, opts.Base, opts.Head)
		if err != nil {
			return err
		}
		for _, f := range changed {
			if f.IsBinary {
				a.logger().Debug("skipping binary file", "path", f.Path)
				continue
			}
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		return ErrNoChanges
	}

	results := make([]*revi.FileDiffResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			result, err := a.Differ.FileDiff(ctx, revi.FileDiffRequest{
				RepoRoot:         opts.RepoRoot,
				Base:             opts.Base,
				Head:             opts.Head,
				Path:             path,
				IgnoreWhitespace: opts.IgnoreWhitespace,
			})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := jsonl.NewWriter(a.Out)
	for _, result := range results {
		var err error
		if opts.Format == FormatPatch {
			err = revi.WriteUnified(a.Out, result)
		} else {
			err = w.Write(result)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListFiles writes the files changed between base and head as JSON Lines.
func (a *App) ListFiles(ctx context.Context, repoRoot, base, head string) error {
	files, err := a.Files.ChangedFiles(ctx, repoRoot, base, head)
	if err != nil {
		return err
	}

	w := jsonl.NewWriter(a.Out)
	for _, f := range files {
		if err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint writes the fingerprint of everything read from r.
func (a *App) Fingerprint(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.Out, revi.Fingerprint(string(data)))
	return err
}

// Validate checks JSON Lines results read from r and reports every
// inconsistency. Returns ErrInvalidResults if any was found.
func (a *App) Validate(r io.Reader) error {
	results, err := jsonl.NewLoader().Read(r)
	if err != nil {
		return err
	}
	return a.validate(results)
}

// ValidateFile is Validate for results stored in the file at path.
func (a *App) ValidateFile(path string) error {
	results, err := jsonl.NewLoader().Load(path)
	if err != nil {
		return err
	}
	return a.validate(results)
}

func (a *App) validate(results []revi.FileDiffResult) error {
	invalid := 0
	for _, result := range results {
		for _, verr := range revi.Validate(&result) {
			invalid++
			if _, err := fmt.Fprintf(a.Out, "%s: %s\n", result.Path, verr.Error()); err != nil {
				return err
			}
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d problems", ErrInvalidResults, invalid)
	}
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}
