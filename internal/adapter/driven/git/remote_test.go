package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gitadapter "github.com/ericfisherdev/approverhover/internal/adapter/driven/git"
	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGitConfig creates <dir>/.git/config with the given contents.
func writeGitConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(contents), 0o644))
	return dir
}

func gitConfigWithOrigin(url string) string {
	return `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
	logallrefupdates = true
[remote "upstream"]
	url = git@github.com:other/fork.git
	fetch = +refs/heads/*:refs/remotes/upstream/*
[remote "origin"]
	url = ` + url + `
	fetch = +refs/heads/*:refs/remotes/origin/*
	fetch = +refs/pull/*/head:refs/remotes/origin/pr/*
[branch "main"]
	remote = origin
	merge = refs/heads/main
`
}

func TestRemoteResolver_ResolveIdentity(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want model.RepositoryIdentity
	}{
		{"ssh", "git@github.com:acme/widgets.git", model.RepositoryIdentity{Owner: "acme", Name: "widgets"}},
		{"https", "https://github.com/acme/widgets.git", model.RepositoryIdentity{Owner: "acme", Name: "widgets"}},
		{"dotted name", "git@github.com:acme/widgets.go.git", model.RepositoryIdentity{Owner: "acme", Name: "widgets.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeGitConfig(t, gitConfigWithOrigin(tt.url))

			got, err := gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), root)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteResolver_UnrecognisedURLs(t *testing.T) {
	urls := []string{
		"git@github.com:acme/widgets",
		"https://github.com/acme/widgets",
		"git@gitlab.com:acme/widgets.git",
		"https://bitbucket.org/acme/widgets.git",
		"ssh://git@github.com/acme/widgets.git",
		"git@github.com:/widgets.git",
		"https://github.com/acme/.git",
	}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			root := writeGitConfig(t, gitConfigWithOrigin(url))

			_, err := gitadapter.NewRemoteResolver("").ResolveIdentity(context.Background(), root)

			require.ErrorIs(t, err, model.ErrNoIdentity)
		})
	}
}

func TestRemoteResolver_MissingConfig(t *testing.T) {
	_, err := gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), t.TempDir())

	require.ErrorIs(t, err, model.ErrNoIdentity)
}

func TestRemoteResolver_NoOrigin(t *testing.T) {
	root := writeGitConfig(t, "[core]\n\tbare = false\n[remote \"upstream\"]\n\turl = git@github.com:acme/widgets.git\n")

	_, err := gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), root)

	require.ErrorIs(t, err, model.ErrNoIdentity)
}

func TestRemoteResolver_EnterpriseHost(t *testing.T) {
	root := writeGitConfig(t, gitConfigWithOrigin("https://git.example.com/platform/api.git"))

	got, err := gitadapter.NewRemoteResolver("git.example.com").ResolveIdentity(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, model.RepositoryIdentity{Owner: "platform", Name: "api"}, got)

	_, err = gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), root)
	assert.ErrorIs(t, err, model.ErrNoIdentity)
}

func TestRemoteResolver_ParseRemoteURL_SSHCheckedFirst(t *testing.T) {
	r := gitadapter.NewRemoteResolver("github.com")

	owner, name := r.ParseRemoteURL("git@github.com:acme/widgets.git")
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", name)

	owner, name = r.ParseRemoteURL("not a url")
	assert.Empty(t, owner)
	assert.Empty(t, name)
}

func TestRemoteResolver_MalformedConfig(t *testing.T) {
	root := writeGitConfig(t, "[remote \"origin\"\n\turl = git@github.com:acme/widgets.git\n")

	id, err := gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), root)

	require.Error(t, err)
	assert.True(t, id.IsZero())
	assert.Contains(t, err.Error(), "parsing")
}

func TestRemoteResolver_UnreadableConfig(t *testing.T) {
	// A directory in place of the file fails to read regardless of the test user's privileges.
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "config"), 0o755))

	id, err := gitadapter.NewRemoteResolver("github.com").ResolveIdentity(context.Background(), root)

	require.Error(t, err)
	assert.True(t, id.IsZero())
}
