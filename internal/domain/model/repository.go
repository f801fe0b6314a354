package model

// RepositoryIdentity names a GitHub repository as owner/name.
// A zero value means the identity could not be determined; partial identities are never built.
type RepositoryIdentity struct {
	Owner string
	Name  string
}

// NewRepositoryIdentity returns the identity for owner/name, or false if either part is empty.
func NewRepositoryIdentity(owner, name string) (RepositoryIdentity, bool) {
	if owner == "" || name == "" {
		return RepositoryIdentity{}, false
	}
	return RepositoryIdentity{Owner: owner, Name: name}, true
}

// FullName returns the "owner/name" form used in logs and API paths.
func (r RepositoryIdentity) FullName() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the identity is absent.
func (r RepositoryIdentity) IsZero() bool {
	return r.Owner == "" || r.Name == ""
}
