package services

import (
	"context"
	"errors"
	"time"
)

// Error kinds surfaced by the stores. Callers match with errors.Is; every
// failure is terminal, there are no automatic retries anywhere in this
// layer.
var (
	// ErrNotFound means no student, report or ticket matches the given key
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means the underlying persistence call failed
	// (network, permission, malformed document)
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrValidation means a write was rejected because required fields
	// were absent or enum values were unrecognized
	ErrValidation = errors.New("validation failed")
)

// storeTimeout bounds every single Firestore call so no read or write
// hangs past the caller's patience
const storeTimeout = 10 * time.Second

func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
