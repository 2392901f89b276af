// Package gitdiff summarizes multi-file git diffs using bluekeyes/go-gitdiff.
package gitdiff

import (
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/revi-dev/revi"
)

// Parser turns the output of `git diff` into a list of changed files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns one entry per file in the order they
// appear.
func (p *Parser) Parse(r io.Reader) ([]revi.ChangedFile, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, err
	}

	result := make([]revi.ChangedFile, 0, len(files))
	for _, f := range files {
		result = append(result, convertFile(f))
	}
	return result, nil
}

func convertFile(f *gitdiff.File) revi.ChangedFile {
	cf := revi.ChangedFile{
		Path:     f.NewName,
		IsBinary: f.IsBinary,
	}

	// Determine file operation
	switch {
	case f.IsNew:
		cf.Operation = revi.FileAdded
	case f.IsDelete:
		cf.Operation = revi.FileDeleted
		cf.Path = f.OldName
	case f.IsRename:
		cf.Operation = revi.FileRenamed
		cf.OldPath = f.OldName
	case f.IsCopy:
		cf.Operation = revi.FileCopied
		cf.OldPath = f.OldName
	default:
		cf.Operation = revi.FileModified
	}
	if cf.Path == "" {
		cf.Path = f.OldName
	}

	for _, frag := range f.TextFragments {
		cf.Additions += int(frag.LinesAdded)
		cf.Deletions += int(frag.LinesDeleted)
	}

	return cf
}
