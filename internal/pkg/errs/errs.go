// Package errs wraps cockroachdb/errors so every layer marks and wraps the same way.
// Sentinels are compared with Is, never with ==, because wrapping and marking keep the chain.
package errs

import (
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Wrap returns nil for a nil err so call sites can wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, mark) holds while keeping the original chain.
// The standard library errors.Is sees the mark too. A nil err yields mark itself.
func Mark(err, mark error) error {
	if err == nil {
		return mark
	}
	return &marked{error: cr.Mark(err, mark), mark: mark}
}

type marked struct {
	error
	mark error
}

func (m *marked) Unwrap() error { return m.error }

func (m *marked) Is(target error) bool { return target == m.mark }

func Is(err, target error) bool {
	return cr.Is(err, target)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// Summary flattens err to one line of at most maxLen bytes, for persisting next to a failed job.
func Summary(err error, maxLen int) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if maxLen > 0 && len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
