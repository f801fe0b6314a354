// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/ericfisherdev/approverhover/internal/domain/port/driven"
)

// ResolveService answers "who approved the change behind this line?" by
// chaining repository identity, blame, commit -> pull request and review
// lookups. Each call is independent; the service holds no per-query state and
// is safe for concurrent use.
type ResolveService struct {
	identities driven.IdentityResolver
	blamer     driven.Blamer
	ghClient   driven.GitHubClient
	logger     *slog.Logger
}

// NewResolveService creates a new ResolveService with all required dependencies.
func NewResolveService(
	identities driven.IdentityResolver,
	blamer driven.Blamer,
	ghClient driven.GitHubClient,
	logger *slog.Logger,
) *ResolveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveService{
		identities: identities,
		blamer:     blamer,
		ghClient:   ghClient,
		logger:     logger,
	}
}

// Resolve runs the pipeline for one line and always returns a renderable
// result. Lookup failures degrade to the matching "not found" result; a panic
// anywhere in the chain becomes model.Failed().
func (s *ResolveService) Resolve(ctx context.Context, q model.LineQuery) (result model.HoverResult) {
	log := s.logger.With("file", q.FilePath, "line", q.Line)

	defer func() {
		if v := recover(); v != nil {
			log.Error("error while fetching PR approval info",
				"panic", fmt.Sprint(v),
				"stack", string(debug.Stack()),
			)
			result = model.Failed()
		}
	}()

	repo, err := s.identities.ResolveIdentity(ctx, q.WorkspaceRoot)
	if err != nil {
		log.Info("could not determine repository", "root", q.WorkspaceRoot, "reason", model.FailureReason(err), "error", err)
		return model.IdentityMissing()
	}
	log = log.With("repo", repo.FullName())

	commit, err := s.blamer.BlameLine(ctx, q)
	if err != nil {
		log.Info("no commit found for line", "reason", model.FailureReason(err), "error", err)
		return model.CommitMissing()
	}
	log = log.With("commit", commit.String())

	prNumber, err := s.ghClient.FindPullRequestForCommit(ctx, repo, commit)
	if err != nil {
		log.Info("no PR found for commit", "reason", model.FailureReason(err), "error", err)
		return model.PRMissing(commit)
	}
	log = log.With("pr", prNumber)

	approvals := s.approvals(ctx, log, model.PullRequestRef{Repo: repo, Number: prNumber})
	if len(approvals) == 0 {
		log.Info("no approvals found for PR")
		return model.ApprovalsMissing(commit, prNumber)
	}

	result = model.ApprovedBy(commit, prNumber, approvals)
	log.Info("approved by", "approvers", result.Approvers)
	return result
}

// approvals fetches the reviews of a pull request and keeps the APPROVED ones.
// A failed request yields no approvals; the failure is only logged.
func (s *ResolveService) approvals(ctx context.Context, log *slog.Logger, pr model.PullRequestRef) []model.Review {
	reviews, err := s.ghClient.FetchReviews(ctx, pr)
	if err != nil {
		log.Warn("fetching PR reviews failed", "reason", model.FailureReason(err), "error", err)
		return nil
	}
	return model.Approvals(reviews)
}
