package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/webinardesk/webinardesk/internal/app"
	"github.com/webinardesk/webinardesk/internal/domain"
)

// ErrorModel is the error body shape clients depend on: {"error": "<message>"}.
type ErrorModel struct {
	status  int
	Message string `json:"error" doc:"Human-readable error message"`
}

func (e *ErrorModel) Error() string {
	return e.Message
}

func (e *ErrorModel) GetStatus() int {
	return e.status
}

func init() {
	// Replace huma's RFC 7807 error body with the flat {"error": ...} shape.
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		if message == "" && len(errs) > 0 {
			message = errs[0].Error()
		}
		return &ErrorModel{status: status, Message: message}
	}
}

// SeatCount accepts both a JSON number and a numeric string, since
// clients send either form for seat updates.
type SeatCount int

func (s *SeatCount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*s = SeatCount(n)
	return nil
}

// Schema implements huma.SchemaProvider so validation allows both forms.
func (s SeatCount) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeInteger},
			{Type: huma.TypeString, Pattern: "^-?[0-9]+$"},
		},
	}
}

// WebinarResponse is the API representation of a webinar.
type WebinarResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	OrganizerID string `json:"organizerId" doc:"Identifier of the owning user"`
	Title       string `json:"title" doc:"Webinar title"`
	StartDate   string `json:"startDate" doc:"Start of the event window (ISO 8601)"`
	EndDate     string `json:"endDate" doc:"End of the event window (ISO 8601)"`
	Seats       int    `json:"seats" doc:"Seat capacity"`
}

func toWebinarResponse(w domain.Webinar) WebinarResponse {
	return WebinarResponse{
		ID:          w.ID,
		OrganizerID: w.OrganizerID,
		Title:       w.Title,
		StartDate:   w.StartDate.UTC().Format(time.RFC3339),
		EndDate:     w.EndDate.UTC().Format(time.RFC3339),
		Seats:       w.Seats,
	}
}

// --- Organize Webinar ---

type OrganizeWebinarInput struct {
	// Caller identity is resolved upstream in a real deployment; the
	// default stands in for the fixed test identity.
	UserID string `header:"X-User-Id" required:"false" default:"test-user" doc:"Caller identity"`
	Body   struct {
		Title     string    `json:"title" minLength:"1" maxLength:"255" doc:"Webinar title"`
		Seats     int       `json:"seats" doc:"Seat capacity"`
		StartDate time.Time `json:"startDate" doc:"Start of the event window (ISO 8601)"`
		EndDate   time.Time `json:"endDate" doc:"End of the event window (ISO 8601)"`
	}
}

type OrganizeWebinarOutput struct {
	Body struct {
		ID string `json:"id" doc:"Identifier of the created webinar"`
	}
}

// --- Change Seats ---

type ChangeSeatsInput struct {
	UserID string `header:"X-User-Id" required:"false" default:"test-user" doc:"Caller identity"`
	ID     string `path:"id" doc:"Webinar ID"`
	Body   struct {
		Seats SeatCount `json:"seats" doc:"New seat capacity (number or numeric string)"`
	}
}

type ChangeSeatsOutput struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// --- Get Webinar ---

type GetWebinarInput struct {
	ID string `path:"id" doc:"Webinar ID"`
}

type GetWebinarOutput struct {
	Body WebinarResponse
}

// --- List Webinars ---

type ListWebinarsInput struct {
	OrganizerID string `query:"organizerId" required:"false" doc:"Filter by organizer"`
	Limit       int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset      int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListWebinarsOutput struct {
	Body []WebinarResponse
}

// Register adds all webinar API routes to the Huma API.
func Register(api huma.API, svc *app.WebinarService) {
	huma.Register(api, huma.Operation{
		OperationID:   "organize-webinar",
		Method:        http.MethodPost,
		Path:          "/webinars",
		Summary:       "Organize a new webinar",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Webinars"},
	}, func(ctx context.Context, input *OrganizeWebinarInput) (*OrganizeWebinarOutput, error) {
		webinar, err := svc.Organize(ctx, app.OrganizeCommand{
			UserID:    input.UserID,
			Title:     input.Body.Title,
			Seats:     input.Body.Seats,
			StartDate: input.Body.StartDate,
			EndDate:   input.Body.EndDate,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &OrganizeWebinarOutput{}
		out.Body.ID = webinar.ID
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-webinar-seats",
		Method:      http.MethodPost,
		Path:        "/webinars/{id}/seats",
		Summary:     "Change the seat capacity of a webinar",
		Tags:        []string{"Webinars"},
	}, func(ctx context.Context, input *ChangeSeatsInput) (*ChangeSeatsOutput, error) {
		if err := svc.ChangeSeats(ctx, input.UserID, input.ID, int(input.Body.Seats)); err != nil {
			return nil, toHumaError(err)
		}
		out := &ChangeSeatsOutput{}
		out.Body.Message = "Seats updated"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-webinar",
		Method:      http.MethodGet,
		Path:        "/webinars/{id}",
		Summary:     "Get a webinar by ID",
		Tags:        []string{"Webinars"},
	}, func(ctx context.Context, input *GetWebinarInput) (*GetWebinarOutput, error) {
		webinar, err := svc.FindByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetWebinarOutput{Body: toWebinarResponse(webinar)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-webinars",
		Method:      http.MethodGet,
		Path:        "/webinars",
		Summary:     "List webinars",
		Tags:        []string{"Webinars"},
	}, func(ctx context.Context, input *ListWebinarsInput) (*ListWebinarsOutput, error) {
		webinars, err := svc.List(ctx, domain.ListFilter{
			OrganizerID: input.OrganizerID,
			Limit:       input.Limit,
			Offset:      input.Offset,
		})
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]WebinarResponse, len(webinars))
		for i, w := range webinars {
			resp[i] = toWebinarResponse(w)
		}
		return &ListWebinarsOutput{Body: resp}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors. Anything not
// explicitly recognized becomes a generic internal failure.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrWebinarNotFound) {
		return huma.Error404NotFound(domain.ErrWebinarNotFound.Error())
	}

	var notOrgErr *domain.NotOrganizerError
	if errors.As(err, &notOrgErr) {
		return huma.Error401Unauthorized(notOrgErr.Error())
	}

	var tooSoonErr *domain.DatesTooSoonError
	if errors.As(err, &tooSoonErr) {
		return huma.Error400BadRequest(tooSoonErr.Error())
	}

	var notEnoughErr *domain.NotEnoughSeatsError
	if errors.As(err, &notEnoughErr) {
		return huma.Error400BadRequest(notEnoughErr.Error())
	}

	var tooManyErr *domain.TooManySeatsError
	if errors.As(err, &tooManyErr) {
		return huma.Error400BadRequest(tooManyErr.Error())
	}

	var reduceErr *domain.ReduceSeatsError
	if errors.As(err, &reduceErr) {
		return huma.Error400BadRequest(reduceErr.Error())
	}

	return huma.Error500InternalServerError("An error occurred")
}
