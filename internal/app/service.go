package app

import (
	"context"
	"fmt"
	"time"

	"github.com/webinardesk/webinardesk/internal/domain"
)

// WebinarService orchestrates the webinar use cases: organizing a new
// webinar and adjusting the seat capacity of an existing one.
type WebinarService struct {
	repo      domain.WebinarRepository
	ids       domain.IDGenerator
	clock     domain.Clock
	publisher domain.EventPublisher
}

// NewWebinarService creates a service with the given adapters.
func NewWebinarService(repo domain.WebinarRepository, ids domain.IDGenerator, clock domain.Clock, publisher domain.EventPublisher) *WebinarService {
	return &WebinarService{
		repo:      repo,
		ids:       ids,
		clock:     clock,
		publisher: publisher,
	}
}

// OrganizeCommand carries the input for organizing a webinar.
type OrganizeCommand struct {
	UserID    string
	Title     string
	Seats     int
	StartDate time.Time
	EndDate   time.Time
}

// Organize validates and creates a new webinar owned by the requesting user.
//
// The check order matters: the schedule rule is evaluated before the seat
// bounds, so a request violating both reports the date error. Nothing is
// persisted when any check fails.
func (s *WebinarService) Organize(ctx context.Context, cmd OrganizeCommand) (domain.Webinar, error) {
	now := s.clock.Now()

	if err := domain.ValidateSchedule(now, cmd.StartDate); err != nil {
		return domain.Webinar{}, err
	}
	if err := domain.ValidateSeats(cmd.Seats); err != nil {
		return domain.Webinar{}, err
	}

	webinar := domain.NewWebinar(s.ids.NewID(), cmd.UserID, cmd.Title, cmd.StartDate, cmd.EndDate, cmd.Seats)

	if err := s.repo.Create(ctx, webinar); err != nil {
		return domain.Webinar{}, fmt.Errorf("creating webinar: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventWebinarOrganized, webinar); err != nil {
		return domain.Webinar{}, fmt.Errorf("publishing organized event: %w", err)
	}

	return webinar, nil
}

// ChangeSeats updates the seat capacity of an existing webinar.
//
// The authorization check runs before the seat validity checks: a caller
// who does not own the webinar gets the not-organizer error even when the
// requested value is itself invalid.
func (s *WebinarService) ChangeSeats(ctx context.Context, userID, webinarID string, seats int) error {
	webinar, err := s.repo.FindByID(ctx, webinarID)
	if err != nil {
		return err
	}

	if !webinar.IsOrganizer(userID) {
		return &domain.NotOrganizerError{UserID: userID, WebinarID: webinarID}
	}

	if err := webinar.UpdateSeats(seats); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, webinar); err != nil {
		return fmt.Errorf("updating webinar: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventSeatsChanged, webinar); err != nil {
		return fmt.Errorf("publishing seats event: %w", err)
	}

	return nil
}

// FindByID returns a webinar by its unique identifier.
func (s *WebinarService) FindByID(ctx context.Context, id string) (domain.Webinar, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns webinars matching the given filter.
func (s *WebinarService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Webinar, error) {
	return s.repo.List(ctx, filter)
}
