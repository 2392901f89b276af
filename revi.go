// Package revi provides domain types for computing annotated file diffs
// between two revisions of a repository.
package revi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// WorkingTree is the head revision that denotes the live, uncommitted
// working copy of a repository.
const WorkingTree = "WORKING_TREE"

// ErrNotFound is returned by a RevisionProvider when a file does not exist
// at the requested revision.
var ErrNotFound = errors.New("file not found at revision")

// FileDiffResult is the annotated diff of a single file.
type FileDiffResult struct {
	Path        string    `json:"path"`
	Hunks       []Hunk    `json:"hunks"`
	Stats       DiffStats `json:"stats"`
	Fingerprint string    `json:"contentHash"` // SHA-256 of the raw diff text, or of the whole file for synthetic diffs
}

// MarshalJSON implements json.Marshaler. A nil Hunks encodes as [].
func (r FileDiffResult) MarshalJSON() ([]byte, error) {
	type result FileDiffResult
	if r.Hunks == nil {
		r.Hunks = []Hunk{}
	}
	return marshalJSON(result(r))
}

// DiffStats counts added and deleted lines across all hunks of a file.
type DiffStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Hunk represents a contiguous block of changes within a file.
type Hunk struct {
	Header   string     `json:"header"`   // Raw "@@ -a,b +c,d @@" line
	OldStart int        `json:"oldStart"` // From @@ -X,...
	OldCount int        `json:"oldLines"` // From @@ -X,Y ...
	NewStart int        `json:"newStart"` // From @@ ...,+X
	NewCount int        `json:"newLines"` // From @@ ...,+X,Y
	Lines    []DiffLine `json:"lines"`
}

// MarshalJSON implements json.Marshaler. A nil Lines encodes as [].
func (h Hunk) MarshalJSON() ([]byte, error) {
	type hunk Hunk
	if h.Lines == nil {
		h.Lines = []DiffLine{}
	}
	return marshalJSON(hunk(h))
}

// DiffLine represents a single line within a hunk.
type DiffLine struct {
	Kind      LineKind `json:"type"`
	Text      string   `json:"content"`              // Line content without the diff marker
	OldLineNo int      `json:"oldLineNum,omitempty"` // 0 if line is added
	NewLineNo int      `json:"newLineNum,omitempty"` // 0 if line is deleted
	Spans     []Span   `json:"highlights"`
}

// MarshalJSON implements json.Marshaler. A nil Spans encodes as [].
func (l DiffLine) MarshalJSON() ([]byte, error) {
	type line DiffLine
	if l.Spans == nil {
		l.Spans = []Span{}
	}
	return marshalJSON(line(l))
}

// marshalJSON encodes v without HTML escaping. Encoders that do escape
// reapply it to Marshaler output.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// LineKind represents the classification of a diff line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineDeleted
)

// String returns the wire name of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "added"
	case LineDeleted:
		return "deleted"
	default:
		return "context"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LineKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "context":
		*k = LineContext
	case "added":
		*k = LineAdded
	case "deleted":
		*k = LineDeleted
	default:
		return fmt.Errorf("unknown line kind %q", text)
	}
	return nil
}

// FileDiffRequest identifies one file comparison.
type FileDiffRequest struct {
	RepoRoot         string
	Base             string // Base revision
	Head             string // Head revision or WorkingTree
	Path             string // Repository-relative file path
	IgnoreWhitespace bool
}

// IsWorkingTree reports whether the request compares against the working copy.
func (r FileDiffRequest) IsWorkingTree() bool {
	return r.Head == WorkingTree
}

// Cacheable reports whether the result of the request may be memoized.
// Working-tree comparisons change too often to be cached.
func (r FileDiffRequest) Cacheable() bool {
	return !r.IsWorkingTree()
}

// CacheKey returns the key under which the result of the request is cached.
func (r FileDiffRequest) CacheKey() CacheKey {
	return CacheKey{
		RepoRoot:         r.RepoRoot,
		Base:             r.Base,
		Head:             r.Head,
		Path:             r.Path,
		IgnoreWhitespace: r.IgnoreWhitespace,
	}
}

// CacheKey identifies a memoized FileDiffResult.
type CacheKey struct {
	RepoRoot         string
	Base             string
	Head             string
	Path             string
	IgnoreWhitespace bool
}

// String renders the key in "root:base:head:path:ignoreWhitespace" form.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%t", k.RepoRoot, k.Base, k.Head, k.Path, k.IgnoreWhitespace)
}

// FileDiffer computes annotated file diffs.
type FileDiffer interface {
	FileDiff(ctx context.Context, req FileDiffRequest) (*FileDiffResult, error)
}

// CacheInvalidator drops memoized diffs when repository history changes.
type CacheInvalidator interface {
	// InvalidateRepository removes every entry belonging to repoRoot.
	InvalidateRepository(repoRoot string)
	// Clear removes every entry.
	Clear()
}

// RevisionProvider gives access to file contents and raw diffs of a repository.
type RevisionProvider interface {
	// FileAt returns the content of path at rev. rev may be WorkingTree.
	// Returns ErrNotFound if the file does not exist at rev.
	FileAt(ctx context.Context, repoRoot, rev, path string) (string, error)
	// Diff returns the raw unified diff of path between base and head.
	// An empty string is a valid result.
	Diff(ctx context.Context, repoRoot, base, head, path string, ignoreWhitespace bool) (string, error)
}

// ChangedFile summarizes one file touched between two revisions.
type ChangedFile struct {
	Path      string `json:"path"`
	OldPath   string `json:"oldPath,omitempty"` // Set for renames and copies
	Operation FileOp `json:"status"`
	IsBinary  bool   `json:"binary,omitempty"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ChangedFileLister lists the files changed between two revisions.
type ChangedFileLister interface {
	ChangedFiles(ctx context.Context, repoRoot, base, head string) ([]ChangedFile, error)
}

// FileOp represents the type of operation performed on a file.
type FileOp int

// File operation types.
const (
	FileModified FileOp = iota
	FileAdded
	FileDeleted
	FileRenamed
	FileCopied
)

// String returns the lowercase name of the operation.
func (op FileOp) String() string {
	switch op {
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	case FileCopied:
		return "copied"
	default:
		return "modified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (op FileOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}
