package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
)

// DefaultEventImage is stored whenever the admin does not supply an image URL.
const DefaultEventImage = "https://res.cloudinary.com/dknaiynrj/image/upload/v1600671364/sample.jpg"

type Event struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventName        string             `bson:"eventName" json:"eventName" validate:"required"`
	EventDate        time.Time          `bson:"eventDate" json:"eventDate" validate:"required"`
	EventLocation    string             `bson:"eventLocation" json:"eventLocation" validate:"required"`
	EventDescription string             `bson:"eventDescription" json:"eventDescription" validate:"required"`
	EventImage       string             `bson:"eventImage" json:"eventImage" validate:"required"`
	EventOrganizer   string             `bson:"eventOrganizer" json:"eventOrganizer" validate:"required"`
	EventType        string             `bson:"eventType" json:"eventType" validate:"required"`
	EventStatus      EventStatus        `bson:"eventStatus" json:"eventStatus" validate:"required,oneof=upcoming ongoing completed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EventInput is the client payload for creating an event. The date comes in
// as a string because the admin form posts either a bare date or RFC 3339.
type EventInput struct {
	EventName        string `json:"eventName"`
	EventDate        string `json:"eventDate"`
	EventLocation    string `json:"eventLocation"`
	EventDescription string `json:"eventDescription"`
	EventImage       string `json:"eventImage"`
	EventOrganizer   string `json:"eventOrganizer"`
	EventType        string `json:"eventType"`
	EventStatus      string `json:"eventStatus"`
}

// EventUpdate carries a partial payload; nil fields are left untouched.
type EventUpdate struct {
	EventName        *string `json:"eventName"`
	EventDate        *string `json:"eventDate"`
	EventLocation    *string `json:"eventLocation"`
	EventDescription *string `json:"eventDescription"`
	EventImage       *string `json:"eventImage"`
	EventOrganizer   *string `json:"eventOrganizer"`
	EventType        *string `json:"eventType"`
	EventStatus      *string `json:"eventStatus"`
}

var eventDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// NewEvent normalizes a candidate field set into an Event: strings are
// trimmed, eventImage and eventStatus fall back to their defaults, and the
// result is validated. Assigning the id and timestamps is the repo's job.
func NewEvent(in EventInput) (*Event, error) {
	ev := &Event{
		EventName:        strings.TrimSpace(in.EventName),
		EventLocation:    strings.TrimSpace(in.EventLocation),
		EventDescription: strings.TrimSpace(in.EventDescription),
		EventImage:       strings.TrimSpace(in.EventImage),
		EventOrganizer:   strings.TrimSpace(in.EventOrganizer),
		EventType:        strings.TrimSpace(in.EventType),
		EventStatus:      EventStatus(strings.TrimSpace(in.EventStatus)),
	}
	if ev.EventImage == "" {
		ev.EventImage = DefaultEventImage
	}
	if ev.EventStatus == "" {
		ev.EventStatus = StatusUpcoming
	}
	if date := strings.TrimSpace(in.EventDate); date != "" {
		parsed, err := ParseEventDate(date)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"eventDate": "must be a valid date"}}
		}
		ev.EventDate = parsed
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// ApplyUpdate merges a partial payload into the event and re-validates the
// result. The receiver is only modified when the merged event is valid.
func (e *Event) ApplyUpdate(in EventUpdate) error {
	merged := *e
	if in.EventName != nil {
		merged.EventName = strings.TrimSpace(*in.EventName)
	}
	if in.EventDate != nil {
		parsed, err := ParseEventDate(*in.EventDate)
		if err != nil {
			return &ValidationError{Fields: map[string]string{"eventDate": "must be a valid date"}}
		}
		merged.EventDate = parsed
	}
	if in.EventLocation != nil {
		merged.EventLocation = strings.TrimSpace(*in.EventLocation)
	}
	if in.EventDescription != nil {
		merged.EventDescription = strings.TrimSpace(*in.EventDescription)
	}
	if in.EventImage != nil {
		merged.EventImage = strings.TrimSpace(*in.EventImage)
		if merged.EventImage == "" {
			merged.EventImage = DefaultEventImage
		}
	}
	if in.EventOrganizer != nil {
		merged.EventOrganizer = strings.TrimSpace(*in.EventOrganizer)
	}
	if in.EventType != nil {
		merged.EventType = strings.TrimSpace(*in.EventType)
	}
	if in.EventStatus != nil {
		merged.EventStatus = EventStatus(strings.TrimSpace(*in.EventStatus))
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	*e = merged
	return nil
}

func (e *Event) Validate() error {
	if err := Validate.Struct(e); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}
