package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes webinar event jobs from the River queue.
// For now it logs the event; future versions will dispatch attendee
// notifications or calendar updates.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing webinar event",
		"event", job.Args.Event,
		"webinar_id", job.Args.WebinarID,
		"organizer_id", job.Args.OrganizerID,
		"seats", job.Args.Seats,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
