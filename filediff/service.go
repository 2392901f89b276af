// Package filediff assembles annotated file diffs from a revision provider,
// a syntax highlighter and a word differ.
package filediff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/unidiff"
)

// Compile-time interface verification.
var _ revi.FileDiffer = (*Service)(nil)

// Service computes the annotated diff of one file per request. It holds no
// state between requests and is safe for concurrent use when its
// collaborators are.
type Service struct {
	Revisions   revi.RevisionProvider
	Highlighter revi.Highlighter
	Languages   revi.LanguageDetector
	Words       revi.WordDiffer // Optional; nil disables word-change markers
	Logger      *slog.Logger    // Optional; nil discards
}

// FileDiff implements revi.FileDiffer.
func (s *Service) FileDiff(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
	logger := s.logger().With("path", req.Path, "base", req.Base, "head", req.Head)

	diff, err := s.Revisions.Diff(ctx, req.RepoRoot, req.Base, req.Head, req.Path, req.IgnoreWhitespace)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", req.Path, err)
	}

	language := s.Languages.DetectFromPath(req.Path)

	head, hasHead, err := s.fileAt(ctx, req.RepoRoot, req.Head, req.Path)
	if err != nil {
		return nil, err
	}
	base, hasBase, err := s.fileAt(ctx, req.RepoRoot, req.Base, req.Path)
	if err != nil {
		return nil, err
	}

	result := &revi.FileDiffResult{Path: req.Path}
	emptyDiff := strings.TrimSpace(diff) == ""

	switch {
	case emptyDiff && hasHead && !hasBase:
		logger.Debug("synthesizing new file diff", "language", language)
		result.Hunks, result.Stats = unidiff.NewFile(head, s.lineSpans(language, head))
		result.Fingerprint = revi.Fingerprint(head)
	case emptyDiff && hasBase && !hasHead:
		logger.Debug("synthesizing deleted file diff", "language", language)
		result.Hunks, result.Stats = unidiff.DeletedFile(base, s.lineSpans(language, base))
		result.Fingerprint = revi.Fingerprint(base)
	default:
		src := unidiff.Sources{
			Fallback: func(line string) []revi.Span {
				return revi.HighlightLine(s.Highlighter, language, line)
			},
		}
		if hasHead {
			src.New = s.lineSpans(language, head)
		}
		if hasBase {
			src.Old = s.lineSpans(language, base)
		}
		result.Hunks, result.Stats = unidiff.Parse(diff, src)
		result.Fingerprint = revi.Fingerprint(diff)
		if s.Words != nil {
			revi.MarkWordChanges(result.Hunks, s.Words)
		}
		logger.Debug("parsed diff", "language", language, "hunks", len(result.Hunks))
	}

	return result, nil
}

// fileAt fetches a file, reporting absence through the second result.
func (s *Service) fileAt(ctx context.Context, repoRoot, rev, path string) (string, bool, error) {
	content, err := s.Revisions.FileAt(ctx, repoRoot, rev, path)
	if errors.Is(err, revi.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s at %s: %w", path, rev, err)
	}
	return content, true, nil
}

func (s *Service) lineSpans(language, content string) revi.LineSpans {
	return revi.NewLineSpans(content, s.Highlighter.Highlight(language, content))
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
