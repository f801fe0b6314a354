// Package git implements the local version-control ports: line blame through
// the git command-line tool and repository identity from .git/config.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// Executor runs external commands.
type Executor interface {
	// RunDir executes cmd in dir and returns its stdout.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
}

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

// RunDir executes a command in a specific directory. Only stdout is returned;
// on failure the first bytes of stderr become the error message and the
// *exec.ExitError stays reachable through errors.As.
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &limitedWriter{buf: &stderr, max: maxStderrLen}

	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("exec %s in %s: %s: %w", cmd, dir, msg, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s in %s: %w", cmd, dir, err)
	}
	return stdout.Bytes(), nil
}
