// Package git provides access to git operations via shell commands.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/fs"
	"github.com/revi-dev/revi/gitdiff"
)

// Compile-time interface verification.
var (
	_ revi.RevisionProvider  = (*Runner)(nil)
	_ revi.ChangedFileLister = (*Runner)(nil)
)

// Runner executes git commands via shell.
type Runner struct {
	binary string
	parser *gitdiff.Parser
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinary sets the git executable to invoke.
func WithBinary(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.binary = path
		}
	}
}

// NewRunner creates a new git runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		binary: "git",
		parser: gitdiff.NewParser(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileAt returns the content of path at rev. When rev is revi.WorkingTree the
// file is read from disk. Any failure of `git show` is reported as
// revi.ErrNotFound, since git does not distinguish a missing path from other
// lookup failures in its exit code.
func (r *Runner) FileAt(ctx context.Context, repoRoot, rev, path string) (string, error) {
	if rev == revi.WorkingTree {
		return fs.ReadWorkingFile(repoRoot, path)
	}

	output, err := r.run(ctx, repoRoot, "show", rev+":"+path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s at %s: %w", path, rev, revi.ErrNotFound)
		}
		return "", fmt.Errorf("git show failed: %w", err)
	}
	return output, nil
}

// Diff returns the unified diff of path. Commit-to-commit diffs compare head
// against the merge base of base and head; working-tree diffs compare the
// file on disk against base.
func (r *Runner) Diff(ctx context.Context, repoRoot, base, head, path string, ignoreWhitespace bool) (string, error) {
	args := []string{"diff"}
	if ignoreWhitespace {
		args = append(args, "-w")
	}
	args = append(args, revisionRange(base, head), "--", path)

	output, err := r.run(ctx, repoRoot, args...)
	if err != nil {
		return "", commandError("git diff", err)
	}
	return output, nil
}

// ChangedFiles lists every file that differs between base and head, with
// rename detection enabled.
func (r *Runner) ChangedFiles(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
	output, err := r.run(ctx, repoRoot, "diff", "--find-renames", revisionRange(base, head))
	if err != nil {
		return nil, commandError("git diff", err)
	}

	files, err := r.parser.Parse(bytes.NewBufferString(output))
	if err != nil {
		return nil, fmt.Errorf("failed to parse changed files: %w", err)
	}
	return files, nil
}

func (r *Runner) run(ctx context.Context, repoRoot string, args ...string) (string, error) {
	args = append([]string{"-C", repoRoot}, args...)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

func revisionRange(base, head string) string {
	if head == revi.WorkingTree || head == "" {
		return base
	}
	return base + "..." + head
}

func commandError(name string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s failed: %s", name, string(exitErr.Stderr))
	}
	return fmt.Errorf("%s failed: %w", name, err)
}
