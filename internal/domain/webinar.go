package domain

import "time"

// Seat capacity bounds for any webinar.
const (
	MinSeats = 1
	MaxSeats = 1000
)

// MinimumNotice is the shortest allowed interval between organizing a
// webinar and its scheduled start.
const MinimumNotice = 3 * 24 * time.Hour

// Event represents a domain event emitted after a successful operation.
type Event string

const (
	EventWebinarOrganized Event = "webinar_organized"
	EventSeatsChanged     Event = "webinar_seats_changed"
)

// Webinar is the core domain entity: a scheduled event with a bounded
// seat capacity owned by its organizer.
type Webinar struct {
	ID          string
	OrganizerID string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Seats       int

	// Version supports optimistic concurrency in the repository. It is
	// incremented on every successful update.
	Version int
}

// NewWebinar builds a webinar from its full property bundle. All fields are
// required; callers run ValidateSeats and ValidateSchedule before persisting.
func NewWebinar(id, organizerID, title string, startDate, endDate time.Time, seats int) Webinar {
	return Webinar{
		ID:          id,
		OrganizerID: organizerID,
		Title:       title,
		StartDate:   startDate,
		EndDate:     endDate,
		Seats:       seats,
		Version:     1,
	}
}

// ValidateSeats checks the seat capacity bounds. Shared by the creation
// and update paths so the bounds cannot diverge.
func ValidateSeats(seats int) error {
	if seats < MinSeats {
		return &NotEnoughSeatsError{Seats: seats}
	}
	if seats > MaxSeats {
		return &TooManySeatsError{Seats: seats}
	}
	return nil
}

// ValidateSchedule checks the minimum-notice rule against the given "now".
// Evaluated once, at organization time.
func ValidateSchedule(now, startDate time.Time) error {
	earliest := now.Add(MinimumNotice)
	if startDate.Before(earliest) {
		return &DatesTooSoonError{StartDate: startDate, Earliest: earliest}
	}
	return nil
}

// UpdateSeats changes the seat capacity. The new value must stay within
// bounds and may never be lower than the current value: registrants who
// already hold a seat must not be invalidated.
func (w *Webinar) UpdateSeats(seats int) error {
	if err := ValidateSeats(seats); err != nil {
		return err
	}
	if seats < w.Seats {
		return &ReduceSeatsError{Current: w.Seats, Requested: seats}
	}
	w.Seats = seats
	return nil
}

// IsOrganizer reports whether the given user owns this webinar.
func (w *Webinar) IsOrganizer(userID string) bool {
	return w.OrganizerID == userID
}
