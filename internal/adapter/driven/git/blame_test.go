package git_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	gitadapter "github.com/ericfisherdev/approverhover/internal/adapter/driven/git"
	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// recordingExecutor captures commands and returns canned output.
type recordingExecutor struct {
	mu       sync.Mutex
	commands []recordedCommand
	out      []byte
	err      error
}

func (e *recordingExecutor) RunDir(_ context.Context, dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, recordedCommand{Dir: dir, Cmd: cmd, Args: args})
	return e.out, e.err
}

func TestBlamer_BlameLine_CommandShape(t *testing.T) {
	executor := &recordingExecutor{out: []byte("1a2b3c4d (Alice 2026-01-02 10:00:00 +0000 12) func main() {\n")}
	blamer := gitadapter.NewBlamer("", executor)

	commit, err := blamer.BlameLine(context.Background(), model.LineQuery{
		WorkspaceRoot: "/work/widgets",
		FilePath:      "/work/widgets/cmd/main.go",
		Line:          12,
	})

	require.NoError(t, err)
	assert.Equal(t, model.CommitHash("1a2b3c4d"), commit)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, recordedCommand{
		Dir:  "/work/widgets",
		Cmd:  "git",
		Args: []string{"blame", "-L", "12,12", "--", "/work/widgets/cmd/main.go"},
	}, executor.commands[0])
}

func TestBlamer_BlameLine_UncommittedIsNotFound(t *testing.T) {
	executor := &recordingExecutor{out: []byte("00000000 (Not Committed Yet 2026-10-15 09:00:00 +0000 3) x := 1\n")}
	blamer := gitadapter.NewBlamer("git", executor)

	_, err := blamer.BlameLine(context.Background(), model.LineQuery{WorkspaceRoot: "/w", FilePath: "/w/a.go", Line: 3})

	require.ErrorIs(t, err, model.ErrUncommitted)
	assert.True(t, model.IsNotFound(err))
}

func TestBlamer_BlameLine_ExecFailure(t *testing.T) {
	executor := &recordingExecutor{err: errors.New("fatal: no such path 'a.go' in HEAD")}
	blamer := gitadapter.NewBlamer("git", executor)

	_, err := blamer.BlameLine(context.Background(), model.LineQuery{WorkspaceRoot: "/w", FilePath: "/w/a.go", Line: 1})

	require.Error(t, err)
	assert.False(t, model.IsNotFound(err))
	assert.Len(t, executor.commands, 1, "blame is not retried")
}

// initRepo creates a repository with one committed file and returns its root.
func initRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-q")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test")
	run("config", "commit.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	run("add", ".")
	run("commit", "-q", "-m", "initial")

	return dir
}

func TestBlamer_Integration(t *testing.T) {
	root := initRepo(t)
	blamer := gitadapter.NewBlamer("git", &gitadapter.RealExecutor{})
	file := filepath.Join(root, "main.go")

	head, err := exec.Command("git", "-C", root, "rev-parse", "HEAD").Output()
	require.NoError(t, err)

	commit, err := blamer.BlameLine(context.Background(), model.LineQuery{WorkspaceRoot: root, FilePath: file, Line: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, commit)
	assert.Contains(t, string(head), commit.String())

	require.NoError(t, os.WriteFile(file, []byte("package main\n\nfunc main() { println() }\n"), 0o644))
	_, err = blamer.BlameLine(context.Background(), model.LineQuery{WorkspaceRoot: root, FilePath: file, Line: 3})
	assert.ErrorIs(t, err, model.ErrUncommitted)

	_, err = blamer.BlameLine(context.Background(), model.LineQuery{WorkspaceRoot: root, FilePath: filepath.Join(root, "missing.go"), Line: 1})
	require.Error(t, err)
	assert.False(t, model.IsNotFound(err))
}
