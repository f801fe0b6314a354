package model

import (
	"fmt"
	"strings"
)

// LineQuery asks who approved the change behind one line of one file.
type LineQuery struct {
	WorkspaceRoot string // Repository root; git runs here and .git/config is read from here.
	FilePath      string
	Line          int // 1-based, as git blame expects.
}

// NewLineQuery builds a query from an editor position, which is 0-based.
func NewLineQuery(workspaceRoot, filePath string, zeroBasedLine int) (LineQuery, error) {
	if zeroBasedLine < 0 {
		return LineQuery{}, fmt.Errorf("line %d: must not be negative", zeroBasedLine)
	}
	return newLineQuery(workspaceRoot, filePath, zeroBasedLine+1)
}

// NewLineQueryOneBased builds a query from a human-supplied, 1-based line number.
func NewLineQueryOneBased(workspaceRoot, filePath string, line int) (LineQuery, error) {
	if line < 1 {
		return LineQuery{}, fmt.Errorf("line %d: must be at least 1", line)
	}
	return newLineQuery(workspaceRoot, filePath, line)
}

func newLineQuery(workspaceRoot, filePath string, line int) (LineQuery, error) {
	if strings.TrimSpace(filePath) == "" {
		return LineQuery{}, fmt.Errorf("file path is required")
	}
	return LineQuery{WorkspaceRoot: workspaceRoot, FilePath: filePath, Line: line}, nil
}

// CommitHash is the commit a blame attributed a line to.
type CommitHash string

// uncommittedHash is what git blame prints for lines that are not committed yet.
const uncommittedHash = "0000000000000000000000000000000000000000"

// ParseBlameCommit extracts the commit from git blame output: the first
// whitespace-delimited token, without a leading boundary marker.
func ParseBlameCommit(output string) (CommitHash, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", ErrNoCommit
	}
	hash := strings.TrimPrefix(fields[0], "^")
	if hash == "" {
		return "", ErrNoCommit
	}
	if strings.HasPrefix(uncommittedHash, hash) {
		return "", ErrUncommitted
	}
	return CommitHash(hash), nil
}

// String returns the hash text.
func (c CommitHash) String() string { return string(c) }
