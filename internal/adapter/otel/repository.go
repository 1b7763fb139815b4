package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/webinardesk/webinardesk/internal/domain"
)

const tracerName = "github.com/webinardesk/webinardesk/internal/adapter/otel"

// TracingRepository wraps a domain.WebinarRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors.
type TracingRepository struct {
	next   domain.WebinarRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.WebinarRepository.
var _ domain.WebinarRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.WebinarRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, webinar domain.Webinar) error {
	ctx, span := r.tracer.Start(ctx, "WebinarRepository.Create",
		trace.WithAttributes(
			attribute.String("webinar.id", webinar.ID),
			attribute.String("webinar.organizer_id", webinar.OrganizerID),
			attribute.Int("webinar.seats", webinar.Seats),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, webinar)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) FindByID(ctx context.Context, id string) (domain.Webinar, error) {
	ctx, span := r.tracer.Start(ctx, "WebinarRepository.FindByID",
		trace.WithAttributes(attribute.String("webinar.id", id)),
	)
	defer span.End()

	webinar, err := r.next.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return webinar, err
}

func (r *TracingRepository) Update(ctx context.Context, webinar domain.Webinar) error {
	ctx, span := r.tracer.Start(ctx, "WebinarRepository.Update",
		trace.WithAttributes(
			attribute.String("webinar.id", webinar.ID),
			attribute.Int("webinar.seats", webinar.Seats),
			attribute.Int("webinar.version", webinar.Version),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, webinar)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Webinar, error) {
	ctx, span := r.tracer.Start(ctx, "WebinarRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.OrganizerID != "" {
		span.SetAttributes(attribute.String("filter.organizer_id", filter.OrganizerID))
	}

	webinars, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(webinars)))
	}
	return webinars, err
}
