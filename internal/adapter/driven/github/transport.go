package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit/github_secondary_ratelimit"
)

// ErrAlreadySent is returned when a transport above singleAttempt tries to
// send a request a second time.
var ErrAlreadySent = errors.New("github request already sent once; not retrying")

type sentKey struct{}

// sentRequests records the requests sent under one lookup.
type sentRequests struct {
	mu   sync.Mutex
	seen map[*http.Request]struct{}
}

// markSent reports false if req was already sent.
func (s *sentRequests) markSent(req *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[req]; ok {
		return false
	}
	s.seen[req] = struct{}{}
	return true
}

// withSingleAttempt marks ctx so that each request made with it is sent at most once.
func withSingleAttempt(ctx context.Context) context.Context {
	return context.WithValue(ctx, sentKey{}, &sentRequests{seen: make(map[*http.Request]struct{})})
}

// singleAttempt refuses to send the same request twice. The rate limiter
// re-sends a request whose limit window has already passed; this keeps every
// lookup to one network attempt. Redirects are new requests and pass.
type singleAttempt struct {
	next http.RoundTripper
}

func (t *singleAttempt) RoundTrip(req *http.Request) (*http.Response, error) {
	if sent, ok := req.Context().Value(sentKey{}).(*sentRequests); ok && !sent.markSent(req) {
		return nil, ErrAlreadySent
	}
	return t.next.RoundTrip(req)
}

// alwaysRevalidate makes the cache below it check every request with the
// server. A cached body is only reused after a 304 Not Modified, so lookups
// never answer from a response GitHub has not just confirmed.
type alwaysRevalidate struct {
	next http.RoundTripper
}

func (t *alwaysRevalidate) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Cache-Control", "max-age=0")
	return t.next.RoundTrip(req)
}

// logSecondaryLimit reports a secondary rate limit the limiter declined to wait out.
func logSecondaryLimit(logger *slog.Logger, cbCtx *github_secondary_ratelimit.CallbackContext) {
	attrs := []any{}
	if cbCtx.Request != nil {
		attrs = append(attrs, "path", cbCtx.Request.URL.Path)
	}
	if cbCtx.ResetTime != nil {
		attrs = append(attrs, "reset_in", time.Until(*cbCtx.ResetTime).Round(time.Second))
	}
	logger.Warn("github secondary rate limit hit, request not retried", attrs...)
}
