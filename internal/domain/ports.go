package domain

import (
	"context"
	"time"
)

// WebinarRepository defines the persistence contract for webinars.
// Create fails with a DuplicateWebinarError when the id already exists.
// Update overwrites the stored record and fails with ErrWebinarNotFound
// when the id is unknown, or a ConflictError when the stored version no
// longer matches the entity's.
type WebinarRepository interface {
	Create(ctx context.Context, webinar Webinar) error
	FindByID(ctx context.Context, id string) (Webinar, error)
	Update(ctx context.Context, webinar Webinar) error
	List(ctx context.Context, filter ListFilter) ([]Webinar, error)
}

// ListFilter holds optional criteria for listing webinars.
type ListFilter struct {
	OrganizerID string
	Limit       int
	Offset      int
}

// IDGenerator produces identifiers unique across the lifetime of the system.
type IDGenerator interface {
	NewID() string
}

// Clock abstracts wall-clock time so use cases stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, webinar Webinar) error
}
