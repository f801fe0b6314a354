package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/ini.v1"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/ericfisherdev/approverhover/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.IdentityResolver = (*RemoteResolver)(nil)

const originSection = `remote "origin"`

// RemoteResolver implements driven.IdentityResolver by reading the origin
// remote URL from <workspace>/.git/config.
type RemoteResolver struct {
	ssh   *regexp.Regexp
	https *regexp.Regexp
}

// NewRemoteResolver creates a resolver that recognises remotes hosted on host,
// e.g. "github.com" or a GitHub Enterprise hostname.
func NewRemoteResolver(host string) *RemoteResolver {
	if host == "" {
		host = "github.com"
	}
	h := regexp.QuoteMeta(host)
	return &RemoteResolver{
		ssh:   regexp.MustCompile(`^git@` + h + `:([^/]+)/([^/]+)\.git$`),
		https: regexp.MustCompile(`^https://` + h + `/([^/]+)/([^/]+)\.git$`),
	}
}

// ResolveIdentity returns the owner/name of the origin remote. A missing
// config file, missing origin, or unrecognised URL wraps model.ErrNoIdentity.
func (r *RemoteResolver) ResolveIdentity(_ context.Context, workspaceRoot string) (model.RepositoryIdentity, error) {
	path := filepath.Join(workspaceRoot, ".git", "config")

	url, err := originURL(path)
	if err != nil {
		return model.RepositoryIdentity{}, err
	}

	owner, name := r.ParseRemoteURL(url)
	id, ok := model.NewRepositoryIdentity(owner, name)
	if !ok {
		return model.RepositoryIdentity{}, fmt.Errorf("origin url %q: %w", url, model.ErrNoIdentity)
	}
	return id, nil
}

// ParseRemoteURL extracts owner and name from an SSH or HTTPS remote URL.
// The SSH form is tried first. Both are empty when neither form matches.
func (r *RemoteResolver) ParseRemoteURL(url string) (owner, name string) {
	for _, re := range []*regexp.Regexp{r.ssh, r.https} {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}

func originURL(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, model.ErrNoIdentity)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
		AllowShadows:        true,
	}, path)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	section, err := cfg.GetSection(originSection)
	if err != nil {
		return "", fmt.Errorf("%s has no origin remote: %w", path, model.ErrNoIdentity)
	}

	url := section.Key("url").String()
	if url == "" {
		return "", fmt.Errorf("%s: origin has no url: %w", path, model.ErrNoIdentity)
	}
	return url, nil
}
