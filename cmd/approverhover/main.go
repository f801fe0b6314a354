package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/approverhover/internal/adapter/driven/github"
	gitadapter "github.com/ericfisherdev/approverhover/internal/adapter/driven/git"
	"github.com/ericfisherdev/approverhover/internal/application"
	"github.com/ericfisherdev/approverhover/internal/config"
)

// missingTokenHint is what the user sees when no credential is configured.
const missingTokenHint = "GitHub token is not set. Please enter it in the settings (github_token) or set GITHUB_TOKEN."

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", userMessage(err))
		os.Exit(1)
	}
}

// userMessage turns a startup error into the text reported to the user.
func userMessage(err error) string {
	if errors.Is(err, config.ErrMissingToken) {
		return missingTokenHint
	}
	return err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "approverhover",
		Short: "Show who approved the change behind a line of code",
		Long: `approverhover answers "who is accountable for this line?" by chaining
git blame, the GitHub commit -> pull request lookup and the pull request's
reviews. Editors call the local daemon started by "serve"; "who" runs a
single lookup from the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newWhoCmd())
	return root
}

// loadConfig loads and validates configuration and installs the default logger.
// A missing token stops activation before anything is wired.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger.Info("config loaded",
		"settings", cfg.SettingsPath,
		"api_base_url", cfg.APIBaseURL,
		"github_host", cfg.GitHubHost,
		"workspace", cfg.Workspace,
	)
	return cfg, logger, nil
}

// newResolveService wires the driven adapters into the resolution pipeline.
// The token travels from cfg into the GitHub client and nowhere else.
// The GitHub client is returned too so the caller can share it.
func newResolveService(cfg *config.Config, logger *slog.Logger) (*application.ResolveService, *githubadapter.Client, error) {
	ghClient, err := githubadapter.NewClient(cfg.GitHubToken, cfg.APIBaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating github client: %w", err)
	}

	return application.NewResolveService(
		gitadapter.NewRemoteResolver(cfg.GitHubHost),
		gitadapter.NewBlamer("git", &gitadapter.RealExecutor{}),
		ghClient,
		logger,
	), ghClient, nil
}
