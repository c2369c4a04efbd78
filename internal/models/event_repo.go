package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EventColName = "events"

type EventRepo interface {
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, in EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	SetEventImage(ctx context.Context, id primitive.ObjectID, imageURL string) (*Event, error)
}

// CreateEvent validates the candidate fields, assigns the id and timestamps
// and stores the document. Nothing is persisted when validation fails.
func (mdb *MongodbRepo) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	ev, err := NewEvent(in)
	if err != nil {
		return nil, err
	}

	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, &StorageError{Op: "create event", Err: err}
	}

	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	if _, err := col.InsertOne(ctx, ev); err != nil {
		return nil, &StorageError{Op: "insert event", Err: err}
	}
	return ev, nil
}

// ListEvents returns every stored event in insertion order.
func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, &StorageError{Op: "list events", Err: err}
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, &StorageError{Op: "find events", Err: err}
	}
	defer cursor.Close(ctx)

	events := make([]*Event, 0)
	for cursor.Next(ctx) {
		var ev Event
		if err := cursor.Decode(&ev); err != nil {
			return nil, &StorageError{Op: "decode event", Err: err}
		}
		events = append(events, &ev)
	}
	if err := cursor.Err(); err != nil {
		return nil, &StorageError{Op: "iterate events", Err: err}
	}
	return events, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, &StorageError{Op: "get event", Err: err}
	}

	var ev Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "find event", Err: err}
	}
	return &ev, nil
}

// UpdateEvent merges the partial payload into the stored record,
// re-validates the result and persists it with a fresh updatedAt.
func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, in EventUpdate) (*Event, error) {
	ev, err := mdb.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ev.ApplyUpdate(in); err != nil {
		return nil, err
	}
	ev.UpdatedAt = time.Now().UTC()

	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, &StorageError{Op: "update event", Err: err}
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated Event
	if err := col.FindOneAndReplace(ctx, bson.M{"_id": id}, ev, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the read and the write.
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "replace event", Err: err}
	}
	return &updated, nil
}

// DeleteEvent removes the record permanently. There is no tombstone.
func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return &StorageError{Op: "delete event", Err: err}
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &StorageError{Op: "delete event", Err: err}
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) SetEventImage(ctx context.Context, id primitive.ObjectID, imageURL string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, &StorageError{Op: "set event image", Err: err}
	}

	update := bson.M{
		"$set": bson.M{
			"eventImage": imageURL,
			"updatedAt":  time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "set event image", Err: err}
	}
	return &updated, nil
}
