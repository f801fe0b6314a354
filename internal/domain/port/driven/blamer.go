package driven

import (
	"context"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

// Blamer attributes a single line of a file to the commit that last changed it.
type Blamer interface {
	BlameLine(ctx context.Context, q model.LineQuery) (model.CommitHash, error)
}
