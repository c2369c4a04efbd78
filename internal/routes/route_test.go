package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/recyclewise/internal/config"
	"github.com/joshua-takyi/recyclewise/internal/container"
	"github.com/joshua-takyi/recyclewise/internal/models"
	"github.com/joshua-takyi/recyclewise/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testToken = "secret-token"

// memRepo is an in-memory stand-in for the Mongo gateway with the same
// validation and timestamp behavior.
type memRepo struct {
	mu     sync.Mutex
	events []*models.Event
}

func (m *memRepo) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	ev, err := models.NewEvent(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *ev
	m.events = append(m.events, &stored)
	return ev, nil
}

func (m *memRepo) ListEvents(ctx context.Context) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Event, 0, len(m.events))
	for _, ev := range m.events {
		copied := *ev
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ID == id {
			copied := *ev
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, in models.EventUpdate) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ID == id {
			if err := ev.ApplyUpdate(in); err != nil {
				return nil, err
			}
			ev.UpdatedAt = time.Now().UTC()
			copied := *ev
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ev := range m.events {
		if ev.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *memRepo) SetEventImage(ctx context.Context, id primitive.ObjectID, imageURL string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ID == id {
			ev.EventImage = imageURL
			ev.UpdatedAt = time.Now().UTC()
			copied := *ev
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

type staticVerifier struct {
	token string
}

func (v staticVerifier) Verify(ctx context.Context, token string) error {
	if token == v.token {
		return nil
	}
	return errors.New("unknown token")
}

func setupServer(t *testing.T) (*memRepo, http.Handler) {
	t.Helper()
	repo := &memRepo{}
	c := &container.Container{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:       &config.Config{ClientOrigin: "http://localhost:3000"},
		EventService: services.NewEventService(repo),
		Verifier:     staticVerifier{token: testToken},
	}
	return repo, SetupRoutes(c)
}

func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func beachCleanup() models.EventInput {
	return models.EventInput{
		EventName:        "Beach Cleanup",
		EventDate:        "2024-06-01",
		EventLocation:    "Bay Ave",
		EventDescription: "Community cleanup along the shoreline",
		EventOrganizer:   "Green Club",
		EventType:        "cleanup",
	}
}

func TestLiveness(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running", w.Body.String())
}

func TestUnmatchedRouteIs404(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodGet, "/api/leaderboard", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Page does not exist", w.Body.String())
}

func TestCreateEventWithToken(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodPost, "/api/events", testToken, beachCleanup())

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusUpcoming, created.EventStatus)
	assert.Equal(t, models.DefaultEventImage, created.EventImage)
	assert.False(t, created.ID.IsZero())

	// The record shows up on the public list.
	w = doJSON(r, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)
}

func TestCreateEventWithoutTokenPersistsNothing(t *testing.T) {
	repo, r := setupServer(t)
	w := doJSON(r, http.MethodPost, "/api/events", "", beachCleanup())

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	listed, err := repo.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateEventStatus(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodPost, "/api/events", testToken, beachCleanup())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	status := "ongoing"
	w = doJSON(r, http.MethodPut, "/api/events/"+created.ID.Hex(), testToken, models.EventUpdate{EventStatus: &status})

	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusOngoing, updated.EventStatus)
	assert.Equal(t, created.EventName, updated.EventName)
	assert.Equal(t, created.EventLocation, updated.EventLocation)
	assert.Equal(t, created.EventImage, updated.EventImage)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateInvalidStatusLeavesRecordUnchanged(t *testing.T) {
	repo, r := setupServer(t)
	w := doJSON(r, http.MethodPost, "/api/events", testToken, beachCleanup())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	status := "postponed"
	w = doJSON(r, http.MethodPut, "/api/events/"+created.ID.Hex(), testToken, models.EventUpdate{EventStatus: &status})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := repo.GetEventByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, stored.EventStatus)
}

func TestDeleteUnknownEventIs404(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodDelete, "/api/events/"+primitive.NewObjectID().Hex(), testToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIsIdempotentlySafe(t *testing.T) {
	_, r := setupServer(t)
	w := doJSON(r, http.MethodPost, "/api/events", testToken, beachCleanup())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := "/api/events/" + created.ID.Hex()
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, path, testToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, path, testToken, nil).Code)
}

func TestMutationsRejectInvalidToken(t *testing.T) {
	_, r := setupServer(t)
	id := primitive.NewObjectID().Hex()

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/api/events", "bad", beachCleanup()).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPut, "/api/events/"+id, "bad", models.EventUpdate{}).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodDelete, "/api/events/"+id, "bad", nil).Code)
}
