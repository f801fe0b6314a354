package driven

import (
	"context"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

// GitHubClient defines the driven port for the two GitHub API lookups the
// resolution pipeline makes. Errors wrapping model.ErrNotFound mean the lookup
// succeeded and found nothing; any other error means the request failed.
type GitHubClient interface {
	// FindPullRequestForCommit returns the first pull request GitHub associates
	// with the commit, in API response order.
	FindPullRequestForCommit(ctx context.Context, repo model.RepositoryIdentity, commit model.CommitHash) (int, error)
	// FetchReviews returns the review records of a pull request in API order.
	FetchReviews(ctx context.Context, pr model.PullRequestRef) ([]model.Review, error)
}
