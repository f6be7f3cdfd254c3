// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and the HTTP handlers to distinguish between failure
// scenarios. For example, ErrMovieInUse indicates that a movie cannot be
// deleted because schedules still reference it, while ErrInvalidQuantity
// signals that a ticket insert was attempted with a non-positive quantity.
package repository

import "errors"

// ErrValidation wraps rejections of malformed input such as an empty title
// or a non-positive duration. Concrete failures wrap this sentinel with a
// field-specific message so errors.Is still matches.
var ErrValidation = errors.New("validation failed")

// ErrInvalidQuantity is returned when a ticket is created with quantity < 1.
// The repository contract has no upper bound; the booking service imposes
// its own range on top of this check.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrMovieInUse is returned when deleting a movie that still has referencing
// schedules. Handlers should translate this into an HTTP 409 response.
var ErrMovieInUse = errors.New("movie has schedules")

// ErrScheduleInUse is returned when deleting a schedule that still has
// referencing tickets.
var ErrScheduleInUse = errors.New("schedule has tickets")

// ErrNoChange indicates an UPDATE attempted to set fields equal to the
// current values.
var ErrNoChange = errors.New("no change")
