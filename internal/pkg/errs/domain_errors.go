package errs

// Cross-cutting sentinel errors shared by the usecase layers.
// Package-specific errors live next to their domain types.
var (
	ErrNotFound   = New("not found")
	ErrForbidden  = New("forbidden")
	ErrValidation = New("validation failed")

	// Returned when an optimistic write lost against a concurrent writer.
	// Callers reload and retry.
	ErrConcurrentModification = New("concurrent modification")

	// Idempotency errors
	ErrIdempotencyKeyRequired = New("idempotency key required")
	ErrIdempotencyInProgress  = New("idempotency in progress")
	ErrIdempotencyKeyReused   = New("idempotency key reused with different request")

	ErrDatabaseOperationFailed = New("database operation failed")
)
