package git

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/ericfisherdev/approverhover/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Blamer = (*Blamer)(nil)

// Blamer implements driven.Blamer with `git blame`.
type Blamer struct {
	gitPath string
	exec    Executor
}

// NewBlamer creates a Blamer that runs the git binary at gitPath ("git" resolves via PATH).
func NewBlamer(gitPath string, exec Executor) *Blamer {
	if gitPath == "" {
		gitPath = "git"
	}
	return &Blamer{gitPath: gitPath, exec: exec}
}

// BlameLine runs a single-line blame in the workspace root and returns the
// commit that last touched the line. Uncommitted lines yield model.ErrUncommitted.
func (b *Blamer) BlameLine(ctx context.Context, q model.LineQuery) (model.CommitHash, error) {
	line := strconv.Itoa(q.Line)

	out, err := b.exec.RunDir(ctx, q.WorkspaceRoot, b.gitPath, "blame", "-L", line+","+line, "--", q.FilePath)
	if err != nil {
		return "", fmt.Errorf("git blame %s:%d: %w", q.FilePath, q.Line, err)
	}

	commit, err := model.ParseBlameCommit(string(out))
	if err != nil {
		return "", fmt.Errorf("git blame %s:%d: %w", q.FilePath, q.Line, err)
	}
	return commit, nil
}
