// Package seating models an auditorium as a fixed grid of seats and
// implements the two ways seats are taken: by explicit coordinate tokens
// and by a best-fit search for a run of consecutive free seats.
package seating

import "errors"

// ErrInvalidDimension is returned by New when rows or columns is not
// strictly positive.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrMalformedToken is returned when a reservation token does not carry
// exactly two numeric components.
var ErrMalformedToken = errors.New("malformed seat token")

// ErrOutOfRange is returned when a token addresses a seat outside the grid.
var ErrOutOfRange = errors.New("seat out of range")

// ErrUnavailable signals that no block of the requested size is free.
// The grid itself reports this as a false return; hosts that prefer an
// error value use this sentinel.
var ErrUnavailable = errors.New("not available")
