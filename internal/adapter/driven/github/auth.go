package github

import (
	"context"
	"fmt"
)

// AuthenticatedUser returns the login the configured token authenticates as.
// The daemon calls it once at startup to report a bad token early; lookups
// do not depend on it.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(withSingleAttempt(ctx), "")
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", describe(err))
	}

	c.logRateLimit(resp, "user", 1)
	return user.GetLogin(), nil
}
