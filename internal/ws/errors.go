package ws

import (
	"errors"
	"fmt"
)

// ErrInvalidMBID signals an identifier that is not a 36-character
// hyphenated UUID. Raised before any network activity.
var ErrInvalidMBID = errors.New("invalid mbid")

// APIError is a server-reported failure: the response body matched the
// error shape ({"error": ..., "help": ...}).
type APIError struct {
	StatusCode int
	Message    string
	Help       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}
