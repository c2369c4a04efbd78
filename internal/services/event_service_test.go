package services

import (
	"context"
	"testing"

	"github.com/joshua-takyi/recyclewise/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubRepo records which gateway calls were made.
type stubRepo struct {
	gotID  primitive.ObjectID
	event  *models.Event
	err    error
	called bool
}

func (s *stubRepo) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	s.called = true
	return s.event, s.err
}

func (s *stubRepo) ListEvents(ctx context.Context) ([]*models.Event, error) {
	s.called = true
	return []*models.Event{s.event}, s.err
}

func (s *stubRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.called = true
	s.gotID = id
	return s.event, s.err
}

func (s *stubRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, in models.EventUpdate) (*models.Event, error) {
	s.called = true
	s.gotID = id
	return s.event, s.err
}

func (s *stubRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	s.called = true
	s.gotID = id
	return s.err
}

func (s *stubRepo) SetEventImage(ctx context.Context, id primitive.ObjectID, imageURL string) (*models.Event, error) {
	s.called = true
	s.gotID = id
	return s.event, s.err
}

func TestEventService_MalformedIDIsNotFound(t *testing.T) {
	repo := &stubRepo{}
	es := NewEventService(repo)
	ctx := context.Background()

	_, err := es.GetEventByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = es.UpdateEvent(ctx, "123", models.EventUpdate{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = es.DeleteEvent(ctx, "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The gateway must never see a malformed id.
	assert.False(t, repo.called)
}

func TestEventService_DelegatesWithParsedID(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &stubRepo{event: &models.Event{ID: id}}
	es := NewEventService(repo)

	ev, err := es.GetEventByID(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, ev.ID)
	assert.Equal(t, id, repo.gotID)
}

func TestEventService_DeleteDelegates(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &stubRepo{err: models.ErrNotFound}
	es := NewEventService(repo)

	err := es.DeleteEvent(context.Background(), id.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.True(t, repo.called)
	assert.Equal(t, id, repo.gotID)
}
