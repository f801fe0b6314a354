package model

import "errors"

// ErrNotFound marks a lookup that completed but found nothing. Errors that do
// not wrap ErrNotFound mean the lookup itself failed.
var ErrNotFound = errors.New("not found")

var (
	ErrNoIdentity    = notFound("repository identity")
	ErrNoCommit      = notFound("commit")
	ErrUncommitted   = notFound("committed change (line not committed yet)")
	ErrNoPullRequest = notFound("pull request")
)

type notFoundError struct{ what string }

func notFound(what string) error { return &notFoundError{what: what} }

func (e *notFoundError) Error() string { return e.what + " not found" }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err means "truly absent" rather than "request failed".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FailureReason returns the log attribute value describing err.
func FailureReason(err error) string {
	if IsNotFound(err) {
		return "not_found"
	}
	return "failed"
}
