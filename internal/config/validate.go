package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks cross-field constraints that tag-level validation
// cannot express. Collects all problems into a single error.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.RateLimitSweep <= 0 {
		problems = append(problems, "server.rate_limit_sweep must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		problems = append(problems, "database.min_conns exceeds max_conns")
	}
	if len(c.Auth.JWTSecret) < 32 {
		problems = append(problems, "auth.jwt_secret must be at least 32 characters")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		problems = append(problems, "auth.access_token_ttl must be positive")
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		problems = append(problems, "auth.refresh_token_ttl must exceed access_token_ttl")
	}
	if c.Feed.HottestWindow < 1 {
		problems = append(problems, "feed.hottest_window must be at least 1")
	}
	if c.Feed.HottestLimit < 1 || c.Feed.HottestLimit > c.Feed.HottestWindow {
		problems = append(problems, "feed.hottest_limit must be between 1 and feed.hottest_window")
	}
	if c.Feed.PageSize < 1 || c.Feed.PageSize > 100 {
		problems = append(problems, "feed.page_size must be between 1 and 100")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or text", c.Log.Format))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
