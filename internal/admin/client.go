// Package admin keeps a local mirror of the server's event list for the
// admin dashboard, together with the single create/edit form that drives
// mutations. The server stays authoritative: the mirror only changes after
// a confirmed response, never optimistically.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/joshua-takyi/recyclewise/internal/models"
)

// APIError is a non-2xx response from the event API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// formTarget distinguishes the create form from an edit of an existing
// record. The two intents share one form but are mutually exclusive.
type formTarget struct {
	editing bool
	id      string
}

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger

	mu      sync.Mutex
	events  []models.Event
	loading bool
	form    models.EventInput
	target  formTarget
}

// NewClient builds an admin client for the API at baseURL. The token is the
// opaque bearer credential sent with every mutating call; httpc may be nil.
func NewClient(baseURL, token string, logger *slog.Logger, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   httpc,
		logger:  logger,
		loading: true,
		form:    emptyForm(),
	}
}

func emptyForm() models.EventInput {
	return models.EventInput{EventStatus: string(models.StatusUpcoming)}
}

// Load fetches the full event list once. On failure the error is logged and
// the list stays empty; the loading flag is only cleared by a success, so a
// failed load leaves the table in its loading state.
func (c *Client) Load(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/events", nil, false)
	if err != nil {
		c.logger.Error("Error fetching events", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := c.apiError(resp)
		c.logger.Error("Error fetching events", "error", err)
		return err
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		c.logger.Error("Error fetching events", "error", err)
		return err
	}

	c.mu.Lock()
	c.events = events
	c.loading = false
	c.mu.Unlock()
	return nil
}

// Loading reports whether the initial list fetch is still outstanding.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Events returns a copy of the mirrored list, in server insertion order.
func (c *Client) Events() []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// SetForm replaces the in-progress form fields.
func (c *Client) SetForm(in models.EventInput) {
	c.mu.Lock()
	c.form = in
	c.mu.Unlock()
}

// Form returns the in-progress form fields.
func (c *Client) Form() models.EventInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Editing reports whether the form targets an existing record and which one.
func (c *Client) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target.id, c.target.editing
}

// Edit loads a mirrored record's fields into the form and switches the form
// to edit mode, so the next Submit updates that record instead of creating.
func (c *Client) Edit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ev := range c.events {
		if ev.ID.Hex() == id {
			c.form = models.EventInput{
				EventName:        ev.EventName,
				EventDate:        ev.EventDate.Format(time.RFC3339),
				EventLocation:    ev.EventLocation,
				EventDescription: ev.EventDescription,
				EventImage:       ev.EventImage,
				EventOrganizer:   ev.EventOrganizer,
				EventType:        ev.EventType,
				EventStatus:      string(ev.EventStatus),
			}
			c.target = formTarget{editing: true, id: id}
			return nil
		}
	}
	return fmt.Errorf("event %s is not in the local list", id)
}

// ResetForm clears the form back to create mode.
func (c *Client) ResetForm() {
	c.mu.Lock()
	c.form = emptyForm()
	c.target = formTarget{}
	c.mu.Unlock()
}

// Submit sends the form: a create when no record is targeted, otherwise an
// update of the targeted record. On success the returned record is merged
// into the mirror (appended or replaced by id) and the form resets. On any
// failure the mirror and form are left untouched.
func (c *Client) Submit(ctx context.Context) (*models.Event, error) {
	c.mu.Lock()
	form := c.form
	target := c.target
	c.mu.Unlock()

	method := http.MethodPost
	path := "/api/events"
	if target.editing {
		method = http.MethodPut
		path = "/api/events/" + target.id
	}

	resp, err := c.do(ctx, method, path, form, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp)
	}

	var saved models.Event
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if target.editing {
		for i := range c.events {
			if c.events[i].ID.Hex() == target.id {
				c.events[i] = saved
				break
			}
		}
	} else {
		c.events = append(c.events, saved)
	}
	c.form = emptyForm()
	c.target = formTarget{}
	c.mu.Unlock()
	return &saved, nil
}

// Delete removes a record server-side, then drops it from the mirror. A
// failed call leaves the mirror unchanged.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/events/"+id, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	c.mu.Lock()
	kept := c.events[:0]
	for _, ev := range c.events {
		if ev.ID.Hex() != id {
			kept = append(kept, ev)
		}
	}
	c.events = kept
	c.mu.Unlock()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.httpc.Do(req)
}

func (c *Client) apiError(resp *http.Response) error {
	var body models.ApiResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
