package domain_test

import (
	"testing"

	"github.com/webinardesk/webinardesk/internal/domain"
)

// The messages below travel to clients verbatim; these tests freeze them.

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", domain.ErrWebinarNotFound, "Webinar not found"},
		{"not organizer", &domain.NotOrganizerError{UserID: "u", WebinarID: "w"}, "User is not allowed to update this webinar"},
		{"too soon", &domain.DatesTooSoonError{}, "Webinar must be scheduled at least 3 days in advance"},
		{"not enough seats", &domain.NotEnoughSeatsError{Seats: 0}, "Webinar must have at least 1 seat"},
		{"too many seats", &domain.TooManySeatsError{Seats: 1001}, "Webinar must have at most 1000 seats"},
		{"reduce seats", &domain.ReduceSeatsError{Current: 100, Requested: 50}, "You cannot reduce the number of seats"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDuplicateWebinarError_Error(t *testing.T) {
	err := &domain.DuplicateWebinarError{ID: "id-1"}
	want := `webinar "id-1" already exists`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConflictError_Error(t *testing.T) {
	err := &domain.ConflictError{ID: "id-1"}
	want := `webinar "id-1" was modified concurrently`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
