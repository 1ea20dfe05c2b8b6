package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInvalidDateRange      = errors.New("endDate must be after startDate")
	ErrUnknownSource         = errors.New("unknown data source")
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrListingNotCached      = errors.New("vehicle listing not cached")
	ErrListingUnavailable    = errors.New("vehicle listing unavailable")
	ErrUpstreamAuth          = errors.New("upstream authentication failed")
	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
	ErrUpstreamRejected      = errors.New("upstream rejected request")
	ErrUpstreamNotConfigured = errors.New("upstream not configured")
)

// UpstreamError keeps the code and text reported by the upstream API.
type UpstreamError struct {
	Code string
	Text string
}

func (e *UpstreamError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", ErrUpstreamRejected, e.Text)
	}
	return fmt.Sprintf("%s: [%s] %s", ErrUpstreamRejected, e.Code, e.Text)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamRejected
}
