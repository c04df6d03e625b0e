// Package tileerr defines the error taxonomy of the scene engine: every
// operation that can fail returns an error wrapping one of the sentinels
// below, so callers discriminate kinds with errors.Is instead of string
// matching.
package tileerr

import "errors"

var (
	// MalformedInput marks a non-fatal parse/decode failure (project
	// decode, SVG path parse, transform-string parse). The operation that
	// produced it is aborted and the store is left unchanged.
	MalformedInput = errors.New("malformed input")

	// InvariantViolation marks an operation that was refused because it
	// would break a documented invariant (e.g. grouping entities across
	// layers).
	InvariantViolation = errors.New("invariant violation")

	// ResourceExhaustion marks a soft cap being hit (autosave payload over
	// the size cap). The caller degrades gracefully rather than failing
	// the user's action. hittest has no allocation-failure path and never
	// returns it.
	ResourceExhaustion = errors.New("resource exhaustion")

	// NotFound marks a lookup miss. Most lookups prefer a (value, bool)
	// or (value, nil) return instead of this error; it exists for APIs
	// that must return a single error value.
	NotFound = errors.New("not found")

	// Fatal marks a caller-contract violation with no safe recovery
	// (deleting the last layer). hittest.Tester returns no errors and does
	// not check for a nil store.
	Fatal = errors.New("fatal")
)

// ReentrancyIgnoredNote documents the silent, by-design reentrancy case:
// it is not an error type. CommandStack.Execute simply returns false with
// no error when called while already executing, and callers that want to
// observe it call CommandStack.InTransaction first. It is documented here
// because it completes the taxonomy even though it never surfaces as an
// `error` value.
const ReentrancyIgnoredNote = "execute() calls made while inTransaction is true are silently ignored by design"
