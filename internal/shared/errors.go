package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Catalog client errors, surfaced to the analysis layer
	ErrInvalidURL      = fmt.Errorf("could not find a track matching the provided URL")
	ErrTrackNotFound   = fmt.Errorf("track not found")
	ErrUnauthenticated = fmt.Errorf("not authenticated")
	ErrNetwork         = fmt.Errorf("network error")
	ErrTimeout         = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")
	ErrUnknownBehaviour    = fmt.Errorf("unknown behaviour")
	ErrInvalidArgument     = fmt.Errorf("invalid argument")
	ErrMissingArgument     = fmt.Errorf("missing required argument")
)
