package mock

import (
	"context"

	"github.com/revi-dev/revi"
)

// Compile-time interface verification.
var _ revi.FileDiffer = (*FileDiffer)(nil)

// FileDiffer is a mock implementation of revi.FileDiffer.
type FileDiffer struct {
	FileDiffFn func(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error)
}

func (d *FileDiffer) FileDiff(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
	return d.FileDiffFn(ctx, req)
}
