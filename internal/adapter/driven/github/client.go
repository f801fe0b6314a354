// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit/github_secondary_ratelimit"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
	"github.com/ericfisherdev/approverhover/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// commitPullsAccept is the media type the commit -> pulls endpoint was
// introduced under; GitHub still honours it.
const commitPullsAccept = "application/vnd.github.groot-preview+json"

// reviewsPerPage bounds the single reviews request.
const reviewsPerPage = 100

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag store, in memory for the process lifetime)
//  2. alwaysRevalidate (every request is a conditional request to GitHub)
//  3. singleAttempt (a request reaches the network at most once)
//  4. go-github-ratelimit (rate limit detection; never sleeps, never re-sends)
//  5. go-github (GitHub REST API client with bearer token auth)
//
// A rate-limited request fails like any other; the limit is only logged.
// baseURL may be empty for api.github.com; set it for GitHub Enterprise.
func NewClient(token, baseURL string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(
		&singleAttempt{next: &alwaysRevalidate{next: cacheTransport}},
		// WithNoSleep in v2.0.2 drops its option, so the zero limit is set directly.
		github_secondary_ratelimit.WithSingleSleepLimit(0, func(cbCtx *github_secondary_ratelimit.CallbackContext) {
			logSecondaryLimit(logger, cbCtx)
		}),
	)

	return newClient(rateLimitClient, baseURL, token, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	return newClient(httpClient, baseURL, token, slog.Default())
}

func newClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) (*Client, error) {
	client := gh.NewClient(httpClient).WithAuthToken(token)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		client.BaseURL = u
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{gh: client, logger: logger}, nil
}

// pullRef is the part of a pull request object the locator reads.
type pullRef struct {
	Number int `json:"number"`
}

// FindPullRequestForCommit lists the pull requests associated with a commit
// and returns the first one's number. It issues exactly one request.
func (c *Client) FindPullRequestForCommit(ctx context.Context, repo model.RepositoryIdentity, commit model.CommitHash) (int, error) {
	u := fmt.Sprintf("repos/%s/%s/commits/%s/pulls",
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), url.PathEscape(commit.String()))

	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("building pulls request for %s@%s: %w", repo.FullName(), commit, err)
	}
	req.Header.Set("Accept", commitPullsAccept)

	var pulls []pullRef
	resp, err := c.gh.Do(withSingleAttempt(ctx), req, &pulls)
	if err != nil {
		return 0, fmt.Errorf("listing pull requests for %s@%s: %w", repo.FullName(), commit, describe(err))
	}

	c.logRateLimit(resp, repo.FullName()+"/commit-pulls", len(pulls))

	if len(pulls) == 0 {
		return 0, fmt.Errorf("%s@%s: %w", repo.FullName(), commit, model.ErrNoPullRequest)
	}

	return pulls[0].Number, nil
}

// FetchReviews retrieves the reviews of a pull request in a single request
// and maps them to domain reviews.
func (c *Client) FetchReviews(ctx context.Context, pr model.PullRequestRef) ([]model.Review, error) {
	opts := &gh.ListOptions{PerPage: reviewsPerPage}

	reviews, resp, err := c.gh.PullRequests.ListReviews(withSingleAttempt(ctx), pr.Repo.Owner, pr.Repo.Name, pr.Number, opts)
	if err != nil {
		return nil, fmt.Errorf("listing reviews for %s#%d: %w", pr.Repo.FullName(), pr.Number, describe(err))
	}

	c.logRateLimit(resp, pr.Repo.FullName()+"/reviews", len(reviews))

	if resp != nil && resp.NextPage != 0 {
		c.logger.Debug("review list truncated to first page",
			"repo", pr.Repo.FullName(),
			"pr", pr.Number,
			"per_page", reviewsPerPage,
		)
	}

	result := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, mapReview(r))
	}

	return result, nil
}

// mapReview converts a go-github PullRequestReview to a domain model Review.
// The state is kept verbatim so approval matching stays case-sensitive.
func mapReview(r *gh.PullRequestReview) model.Review {
	return model.Review{
		ReviewerLogin: r.GetUser().GetLogin(),
		State:         model.ReviewState(r.GetState()),
	}
}

// describe annotates GitHub error responses with their HTTP status so the
// log line says why a lookup degraded.
func describe(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return fmt.Errorf("http %d: %w", ghErr.Response.StatusCode, err)
	}
	return err
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
