package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-plan-it/internal/advisor"
	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/mock"
	"github.com/MKhiriev/go-plan-it/internal/notify"
	"github.com/MKhiriev/go-plan-it/internal/service"
	"github.com/MKhiriev/go-plan-it/internal/store"
	"github.com/MKhiriev/go-plan-it/models"
)

// newTestAPI wires a full stack over the in-memory blob store: real auth,
// real sessions, real scheduler, no-op advisor, mocked sink.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.Nop()
	ctrl := gomock.NewController(t)

	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().
		ScheduleAt(gomock.Any(), gomock.Any()).
		AnyTimes().
		Return("n-1", nil)

	fileStore, err := store.NewFileStore(":memory:", log)
	require.NoError(t, err)

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "integration-test-key",
			TokenIssuer:   "go-plan-it",
			TokenDuration: time.Hour,
			Version:       "0.0.1-test",
		},
	}

	services := service.NewServices(
		&store.Storages{EventStore: fileStore, UserStore: fileStore},
		cfg,
		notify.NewScheduler(sink, log),
		advisor.Nop(),
		log,
	)

	ts := httptest.NewServer(NewHandler(services, cfg.App, log).Init())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, target, token string, payload any) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, target, &body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_FullEventLifecycle(t *testing.T) {
	ts := newTestAPI(t)
	client := ts.Client()

	// register
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/register", "",
		models.User{Email: "ann@example.com", Name: "Ann", Password: "s3cret"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	registered := decodeBody[models.User](t, resp)
	assert.NotEmpty(t, registered.ID)
	assert.Empty(t, registered.PasswordHash)

	// duplicate email is rejected
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/register", "",
		models.User{Email: "ann@example.com", Password: "other"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// login
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/login", "",
		models.User{Email: "ann@example.com", Password: "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	authHeader := resp.Header.Get("Authorization")
	require.NotEmpty(t, authHeader)
	var token string
	_, err := fmt.Sscanf(authHeader, "Bearer %s", &token)
	require.NoError(t, err)
	resp.Body.Close()

	// no token, no events
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/events/", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// create an event for tomorrow
	start := time.Now().Add(24 * time.Hour)
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/events/", token, models.Event{
		Title:     "Dentist",
		StartDate: start,
		EndDate:   start,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Notes:     "bring insurance card",
		Color:     "#00AAFF",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.Event](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, registered.ID, created.UserID)

	// list the range covering it
	listURL := fmt.Sprintf("%s/api/events/?from=%s&to=%s",
		ts.URL,
		start.Add(-time.Hour).Format(time.RFC3339),
		start.Add(time.Hour).Format(time.RFC3339))
	resp = doJSON(t, client, http.MethodGet, listURL, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listed := decodeBody[[]models.Event](t, resp)
	require.Len(t, listed, 1)
	assert.Equal(t, "Dentist", listed[0].Title)

	// toggle completion
	eventPath := url.PathEscape(created.ID)
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/events/"+eventPath+"/complete", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	toggled := decodeBody[models.Event](t, resp)
	assert.True(t, toggled.Completed)
	assert.Equal(t, "Dentist", toggled.Title)

	// update the title
	created.Title = "Dentist (rescheduled)"
	resp = doJSON(t, client, http.MethodPut, ts.URL+"/api/events/"+eventPath, token, created)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeBody[models.Event](t, resp)
	assert.Equal(t, "Dentist (rescheduled)", updated.Title)

	// delete
	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/events/"+eventPath, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodGet, listURL, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]models.Event](t, resp))

	// logout tears the session down
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_OwnerIsolation(t *testing.T) {
	ts := newTestAPI(t)
	client := ts.Client()

	register := func(email string) string {
		resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/register", "",
			models.User{Email: email, Password: "pw123"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		var token string
		_, err := fmt.Sscanf(resp.Header.Get("Authorization"), "Bearer %s", &token)
		require.NoError(t, err)
		return token
	}

	annToken := register("ann@example.com")
	bobToken := register("bob@example.com")

	start := time.Now().Add(24 * time.Hour)
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/events/", annToken, models.Event{
		Title:     "Private plans",
		StartDate: start,
		EndDate:   start,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Event](t, resp)

	// Bob sees nothing and cannot delete Ann's event
	listURL := fmt.Sprintf("%s/api/events/?from=%s&to=%s",
		ts.URL,
		start.Add(-time.Hour).Format(time.RFC3339),
		start.Add(time.Hour).Format(time.RFC3339))

	resp = doJSON(t, client, http.MethodGet, listURL, bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]models.Event](t, resp))

	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/events/"+url.PathEscape(created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Ann still sees her event
	resp = doJSON(t, client, http.MethodGet, listURL, annToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Event](t, resp), 1)
}
