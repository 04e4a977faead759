package brainz

import (
	"github.com/ellipsora/brainz/internal/ratelimit"
	"github.com/ellipsora/brainz/internal/schema"
	"github.com/ellipsora/brainz/internal/ws"
)

// Error surface of the client. Each kind is distinguishable so callers
// can attach retry/backoff policy where it makes sense; the client itself
// never retries.
var (
	// ErrInvalidMBID: the identifier failed the 36-character UUID check.
	// Raised before any network activity.
	ErrInvalidMBID = ws.ErrInvalidMBID
	// ErrQueueFull: rate limit admission control rejected the caller
	// before any waiting. Retry after backoff.
	ErrQueueFull = ratelimit.ErrQueueFull
	// ErrUnknownKind: the entity kind names no known schema.
	ErrUnknownKind = schema.ErrUnknownKind
)

// APIError is a server-reported failure, carrying the HTTP status and the
// server's message. Match with errors.As.
type APIError = ws.APIError
