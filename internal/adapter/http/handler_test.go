package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	adapter "github.com/webinardesk/webinardesk/internal/adapter/http"
	"github.com/webinardesk/webinardesk/internal/adapter/sqlite"
	"github.com/webinardesk/webinardesk/internal/app"
	"github.com/webinardesk/webinardesk/internal/domain"
)

// noopPublisher is a no-op EventPublisher for tests.
type noopPublisher struct{}

func (p *noopPublisher) Publish(_ context.Context, _ domain.Event, _ domain.Webinar) error {
	return nil
}

// Organization is pinned to 2024-01-01; a start on 2024-01-10 is valid,
// a start on 2024-01-02 is inside the minimum-notice window.
var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	srv  *httptest.Server
	repo *sqlite.WebinarRepository
}

// newTestEnv creates a full-stack httptest.Server with SQLite in-memory,
// a fixed clock, and deterministic ids.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := app.NewWebinarService(repo, app.NewSequenceIDs(), app.NewFixedClock(fixedNow), &noopPublisher{})

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("webinardesk", "0.1.0"))
	adapter.Register(api, svc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return testEnv{srv: srv, repo: repo}
}

// doRequest performs an HTTP request with context (avoids noctx linter).
func doRequest(t *testing.T, method, url, body string, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

const organizePayload = `{
	"title": "Webinar title",
	"seats": 100,
	"startDate": "2024-01-10T10:00:00Z",
	"endDate": "2024-01-10T11:00:00Z"
}`

// --- POST /webinars ---

func TestOrganize(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars", organizePayload, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	body := decodeBody(t, resp)
	if body["id"] != "id-1" {
		t.Errorf("id = %v, want %q", body["id"], "id-1")
	}

	// The persisted record matches the submitted fields plus the
	// generated id and the caller identity.
	stored, err := env.repo.FindByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("webinar not persisted: %v", err)
	}
	if stored.OrganizerID != "test-user" {
		t.Errorf("OrganizerID = %q, want %q", stored.OrganizerID, "test-user")
	}
	if stored.Title != "Webinar title" {
		t.Errorf("Title = %q, want %q", stored.Title, "Webinar title")
	}
	if stored.Seats != 100 {
		t.Errorf("Seats = %d, want 100", stored.Seats)
	}
}

func TestOrganize_TooSoon(t *testing.T) {
	env := newTestEnv(t)

	payload := `{
		"title": "Webinar title",
		"seats": 100,
		"startDate": "2024-01-02T10:00:00Z",
		"endDate": "2024-01-02T11:00:00Z"
	}`
	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars", payload, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Webinar must be scheduled at least 3 days in advance" {
		t.Errorf("error = %v, want the advance-notice message", body["error"])
	}

	// Nothing persisted.
	webinars, _ := env.repo.List(context.Background(), domain.ListFilter{})
	if len(webinars) != 0 {
		t.Errorf("persisted %d webinars after failed organize, want 0", len(webinars))
	}
}

func TestOrganize_SeatBounds(t *testing.T) {
	cases := []struct {
		name      string
		seats     int
		wantError string
	}{
		{"zero seats", 0, "Webinar must have at least 1 seat"},
		{"too many seats", 1001, "Webinar must have at most 1000 seats"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			payload := fmt.Sprintf(`{
				"title": "Webinar title",
				"seats": %d,
				"startDate": "2024-01-10T10:00:00Z",
				"endDate": "2024-01-10T11:00:00Z"
			}`, tc.seats)
			resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars", payload, nil)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}

			body := decodeBody(t, resp)
			if body["error"] != tc.wantError {
				t.Errorf("error = %v, want %q", body["error"], tc.wantError)
			}

			webinars, _ := env.repo.List(context.Background(), domain.ListFilter{})
			if len(webinars) != 0 {
				t.Errorf("persisted %d webinars after failed organize, want 0", len(webinars))
			}
		})
	}
}

// --- POST /webinars/{id}/seats ---

func seedWebinar(t *testing.T, env testEnv, organizerID string, seats int) {
	t.Helper()

	w := domain.NewWebinar("test-webinar", organizerID, "Webinar Test",
		fixedNow.Add(10*24*time.Hour), fixedNow.Add(10*24*time.Hour+time.Hour), seats)
	if err := env.repo.Create(context.Background(), w); err != nil {
		t.Fatalf("seeding webinar: %v", err)
	}
}

func TestChangeSeats(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "test-user", 10)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/test-webinar/seats", `{"seats": 30}`, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body := decodeBody(t, resp)
	if body["message"] != "Seats updated" {
		t.Errorf("message = %v, want %q", body["message"], "Seats updated")
	}

	stored, _ := env.repo.FindByID(context.Background(), "test-webinar")
	if stored.Seats != 30 {
		t.Errorf("stored Seats = %d, want 30", stored.Seats)
	}
}

func TestChangeSeats_StringValue(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "test-user", 10)

	// Clients may send the seat count as a numeric string.
	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/test-webinar/seats", `{"seats": "30"}`, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	stored, _ := env.repo.FindByID(context.Background(), "test-webinar")
	if stored.Seats != 30 {
		t.Errorf("stored Seats = %d, want 30", stored.Seats)
	}
}

func TestChangeSeats_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/non-existent-id/seats", `{"seats": 30}`, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Webinar not found" {
		t.Errorf("error = %v, want %q", body["error"], "Webinar not found")
	}
}

func TestChangeSeats_NotOrganizer(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "different-user", 10)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/test-webinar/seats", `{"seats": 30}`, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	body := decodeBody(t, resp)
	if body["error"] != "User is not allowed to update this webinar" {
		t.Errorf("error = %v, want the not-organizer message", body["error"])
	}

	stored, _ := env.repo.FindByID(context.Background(), "test-webinar")
	if stored.Seats != 10 {
		t.Errorf("stored Seats = %d after unauthorized attempt, want 10", stored.Seats)
	}
}

func TestChangeSeats_Reduce(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "test-user", 100)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/test-webinar/seats", `{"seats": 50}`, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	body := decodeBody(t, resp)
	if body["error"] != "You cannot reduce the number of seats" {
		t.Errorf("error = %v, want the reduce-seats message", body["error"])
	}

	stored, _ := env.repo.FindByID(context.Background(), "test-webinar")
	if stored.Seats != 100 {
		t.Errorf("stored Seats = %d after failed reduce, want 100", stored.Seats)
	}
}

func TestChangeSeats_CallerHeader(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "user-alice-id", 10)

	headers := map[string]string{"X-User-Id": "user-alice-id"}
	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars/test-webinar/seats", `{"seats": 30}`, headers)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

// --- GET /webinars/{id} ---

func TestGet(t *testing.T) {
	env := newTestEnv(t)
	seedWebinar(t, env, "test-user", 10)

	resp := doRequest(t, http.MethodGet, env.srv.URL+"/webinars/test-webinar", "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var webinar adapter.WebinarResponse
	if err := json.NewDecoder(resp.Body).Decode(&webinar); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if webinar.ID != "test-webinar" {
		t.Errorf("ID = %q, want %q", webinar.ID, "test-webinar")
	}
	if webinar.OrganizerID != "test-user" {
		t.Errorf("OrganizerID = %q, want %q", webinar.OrganizerID, "test-user")
	}
	if webinar.Seats != 10 {
		t.Errorf("Seats = %d, want 10", webinar.Seats)
	}
	if webinar.StartDate == "" {
		t.Error("StartDate should not be empty")
	}
}

func TestGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, http.MethodGet, env.srv.URL+"/webinars/non-existent-id", "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

// --- GET /webinars ---

func TestList(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars", organizePayload, nil)
	resp.Body.Close()

	headers := map[string]string{"X-User-Id": "user-bob-id"}
	resp = doRequest(t, http.MethodPost, env.srv.URL+"/webinars", organizePayload, headers)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, env.srv.URL+"/webinars", "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var webinars []adapter.WebinarResponse
	if err := json.NewDecoder(resp.Body).Decode(&webinars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(webinars) != 2 {
		t.Errorf("got %d webinars, want 2", len(webinars))
	}
}

func TestList_FilterByOrganizer(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/webinars", organizePayload, nil)
	resp.Body.Close()

	headers := map[string]string{"X-User-Id": "user-bob-id"}
	resp = doRequest(t, http.MethodPost, env.srv.URL+"/webinars", organizePayload, headers)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, env.srv.URL+"/webinars?organizerId=user-bob-id", "", nil)
	defer resp.Body.Close()

	var webinars []adapter.WebinarResponse
	if err := json.NewDecoder(resp.Body).Decode(&webinars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(webinars) != 1 {
		t.Fatalf("got %d webinars, want 1", len(webinars))
	}
	if webinars[0].OrganizerID != "user-bob-id" {
		t.Errorf("OrganizerID = %q, want %q", webinars[0].OrganizerID, "user-bob-id")
	}
}
