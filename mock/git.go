package mock

import (
	"context"

	"github.com/revi-dev/revi"
)

// Compile-time interface verification.
var (
	_ revi.RevisionProvider  = (*RevisionProvider)(nil)
	_ revi.ChangedFileLister = (*ChangedFileLister)(nil)
)

// RevisionProvider is a mock implementation of revi.RevisionProvider.
type RevisionProvider struct {
	FileAtFn func(ctx context.Context, repoRoot, rev, path string) (string, error)
	DiffFn   func(ctx context.Context, repoRoot, base, head, path string, ignoreWhitespace bool) (string, error)
}

func (p *RevisionProvider) FileAt(ctx context.Context, repoRoot, rev, path string) (string, error) {
	return p.FileAtFn(ctx, repoRoot, rev, path)
}

func (p *RevisionProvider) Diff(ctx context.Context, repoRoot, base, head, path string, ignoreWhitespace bool) (string, error) {
	return p.DiffFn(ctx, repoRoot, base, head, path, ignoreWhitespace)
}

// ChangedFileLister is a mock implementation of revi.ChangedFileLister.
type ChangedFileLister struct {
	ChangedFilesFn func(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error)
}

func (l *ChangedFileLister) ChangedFiles(ctx context.Context, repoRoot, base, head string) ([]revi.ChangedFile, error) {
	return l.ChangedFilesFn(ctx, repoRoot, base, head)
}
