package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrStoreUnavailable means the document store could not serve the read.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrStoreTimeout means the document store did not answer in time.
	ErrStoreTimeout = errors.New("document store timed out")
	// ErrEmptyEventID is returned when an event is requested without an ID.
	ErrEmptyEventID = errors.New("event id must not be empty")
)

// storeError wraps a raw store failure in ErrStoreTimeout or ErrStoreUnavailable,
// keeping the original error in the chain.
func storeError(op string, err error) error {
	kind := ErrStoreUnavailable
	if errors.Is(err, context.DeadlineExceeded) || status.Code(err) == codes.DeadlineExceeded {
		kind = ErrStoreTimeout
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
