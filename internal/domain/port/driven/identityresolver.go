package driven

import (
	"context"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

// IdentityResolver derives the GitHub repository of a local working copy.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, workspaceRoot string) (model.RepositoryIdentity, error)
}
