package model

// PullRequestRef identifies a pull request within a repository.
type PullRequestRef struct {
	Repo   RepositoryIdentity
	Number int
}
