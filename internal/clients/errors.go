package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/giuliopime/crossfade/internal/shared"
)

// APIError reports a non-2xx response from a platform API.
type APIError struct {
	Platform   string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: status %d", e.Platform, e.StatusCode)
}

// statusError maps an HTTP status code to the client error taxonomy.
func statusError(platformName string, statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d", shared.ErrUnauthenticated, platformName, statusCode)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s returned status %d", shared.ErrTrackNotFound, platformName, statusCode)
	default:
		return &APIError{Platform: platformName, StatusCode: statusCode}
	}
}

// requestError wraps a transport level failure, distinguishing timeouts.
func requestError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
}
