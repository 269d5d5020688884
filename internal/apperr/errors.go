package apperr

import "errors"

// ErrValidation is returned when a stage transition is attempted with
// missing or malformed required fields. Blocks the transition, never fatal.
var ErrValidation = errors.New("validation failed")

// ErrInvalidRiderCount is returned by the route segmenter when the
// requested rider count exceeds the handover-point capacity.
var ErrInvalidRiderCount = errors.New("invalid rider count")

// ErrStaleTimer marks a timer callback that fired after its owning order
// generation was reset or cancelled. Callers must treat it as a no-op.
var ErrStaleTimer = errors.New("stale timer")

// ErrConflict indicates an operation that is not legal in the current stage (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")
