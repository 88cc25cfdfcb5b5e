package api

import (
	"booking-marketplace/internal/pkg/errs"
)

// retryOnStale runs op again once when it lost an optimistic write. A second loss is returned to the client.
func retryOnStale[T any](op func() (T, error)) (T, error) {
	v, err := op()
	if err == nil || !errs.Is(err, errs.ErrConcurrentModification) {
		return v, err
	}
	return op()
}
