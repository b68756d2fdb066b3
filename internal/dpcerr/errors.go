// Package dpcerr defines the error taxonomy shared by every DPC subsystem.
//
// Every error the core surfaces carries a Category, a human-readable
// Message, and (where the category is actionable) a Remediation naming the
// concrete step a user can take. Remediation strings are part of the public
// contract: callers render them verbatim in the error envelope, so wording
// changes are breaking changes.
package dpcerr

import (
	"errors"
	"fmt"
)

// Category classifies the origin of a failure.
type Category string

const (
	Config  Category = "config"
	Network Category = "network"
	Figma   Category = "figma"
	Image   Category = "image"
	Metric  Category = "metric"
	Unknown Category = "unknown"
)

// Error is the typed error returned by ingestion, filtering, and the metric
// engine. It deliberately does not wrap arbitrary errors transparently:
// every Error is constructed at a boundary with an explicit category so the
// caller can map it to an exit code or HTTP status without inspecting
// strings.
type Error struct {
	Category    Category
	Message     string
	Remediation string
	Cause       error
}

func (e *Error) Error() string {
	if e.Remediation != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Category, e.Message, e.Remediation)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no remediation hint.
func New(cat Category, message string) *Error {
	return &Error{Category: cat, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(cat Category, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an underlying cause.
func Wrap(cat Category, message string, cause error) *Error {
	return &Error{Category: cat, Message: message, Cause: cause}
}

// WithRemediation attaches a remediation hint and returns the same Error for chaining.
func (e *Error) WithRemediation(remediation string) *Error {
	e.Remediation = remediation
	return e
}

// Cancelled is a sentinel Network-category error surfaced by RenderBackend
// implementations when the caller's cancellation signal fires mid-render.
var Cancelled = &Error{Category: Network, Message: "operation cancelled"}

// IsCancelled reports whether err is (or wraps) the Cancelled sentinel.
func IsCancelled(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Message == Cancelled.Message && e.Category == Network {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
