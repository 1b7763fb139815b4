package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error messages are part of the HTTP contract: clients receive them
// verbatim in the response body. Do not reword them.

// Sentinel errors for simple conditions without extra context.
var (
	ErrWebinarNotFound = errors.New("Webinar not found")
)

// NotOrganizerError is returned when a caller tries to mutate a webinar
// they do not own.
type NotOrganizerError struct {
	UserID    string
	WebinarID string
}

func (e *NotOrganizerError) Error() string {
	return "User is not allowed to update this webinar"
}

// DatesTooSoonError is returned when a webinar is organized with a start
// date inside the minimum-notice window.
type DatesTooSoonError struct {
	StartDate time.Time
	Earliest  time.Time
}

func (e *DatesTooSoonError) Error() string {
	return "Webinar must be scheduled at least 3 days in advance"
}

// NotEnoughSeatsError is returned when the requested capacity is below MinSeats.
type NotEnoughSeatsError struct {
	Seats int
}

func (e *NotEnoughSeatsError) Error() string {
	return "Webinar must have at least 1 seat"
}

// TooManySeatsError is returned when the requested capacity exceeds MaxSeats.
type TooManySeatsError struct {
	Seats int
}

func (e *TooManySeatsError) Error() string {
	return "Webinar must have at most 1000 seats"
}

// ReduceSeatsError is returned when an update would shrink the capacity.
type ReduceSeatsError struct {
	Current   int
	Requested int
}

func (e *ReduceSeatsError) Error() string {
	return "You cannot reduce the number of seats"
}

// DuplicateWebinarError is returned by the repository when creating a
// webinar whose id already exists.
type DuplicateWebinarError struct {
	ID string
}

func (e *DuplicateWebinarError) Error() string {
	return fmt.Sprintf("webinar %q already exists", e.ID)
}

// ConflictError is returned by the repository when an update lost a race
// against a concurrent write (version mismatch).
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("webinar %q was modified concurrently", e.ID)
}
