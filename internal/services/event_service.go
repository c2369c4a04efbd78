package services

import (
	"context"

	"github.com/joshua-takyi/recyclewise/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	eventsRepo models.EventRepo
}

func NewEventService(eventsRepo models.EventRepo) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
	}
}

// parseEventID maps a path segment to an ObjectID. Ids are opaque to
// clients, so a malformed id is treated the same as one that does not exist.
func parseEventID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}

func (es *EventService) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	return es.eventsRepo.CreateEvent(ctx, in)
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return es.eventsRepo.ListEvents(ctx)
}

func (es *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.GetEventByID(ctx, oid)
}

func (es *EventService) UpdateEvent(ctx context.Context, id string, in models.EventUpdate) (*models.Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.UpdateEvent(ctx, oid, in)
}

func (es *EventService) DeleteEvent(ctx context.Context, id string) error {
	oid, err := parseEventID(id)
	if err != nil {
		return err
	}
	return es.eventsRepo.DeleteEvent(ctx, oid)
}

func (es *EventService) SetEventImage(ctx context.Context, id string, imageURL string) (*models.Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.SetEventImage(ctx, oid, imageURL)
}
