package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/recyclewise/internal/models"
)

// EventService is what the handlers need from the service layer.
type EventService interface {
	CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, in models.EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	SetEventImage(ctx context.Context, id string, imageURL string) (*models.Event, error)
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, unresolved ids 404, anything else is a storage-level 500.
func respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(vErr.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
	}
}

// ListEvents is public; the admin table and the public site both read it.
// The body is a bare array because the clients consume it directly.
func ListEvents(es EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

func CreateEvent(es EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.EventInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateEvent(es EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var in models.EventUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		updated, err := es.UpdateEvent(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteEvent(es EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := es.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "event deleted successfully"))
	}
}
