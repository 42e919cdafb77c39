package crm

import (
	"context"
	"net/http"

	"github.com/mmcdole/kindred/internal/domain"
)

func (c *Client) ListEvents(ctx context.Context, q domain.ListQuery) ([]domain.Event, domain.Pagination, error) {
	return getList[domain.Event](ctx, c, "/api/events", q.Values(), "events")
}

func (c *Client) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if err := requireID("event", id); err != nil {
		return domain.Event{}, err
	}
	return call[domain.Event](ctx, c, http.MethodGet, escape("/api/events/%s", id), nil)
}

func (c *Client) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	return call[domain.Event](ctx, c, http.MethodPost, "/api/events", e)
}

func (c *Client) UpdateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	if err := requireID("event", e.EventID); err != nil {
		return domain.Event{}, err
	}
	return call[domain.Event](ctx, c, http.MethodPut, escape("/api/events/%s", e.EventID), e)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if err := requireID("event", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/events/%s", id), nil)
}

// ListRegistrations returns every registration for an event
func (c *Client) ListRegistrations(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if err := requireID("event", eventID); err != nil {
		return nil, err
	}
	return getAll[domain.Registration](ctx, c, escape("/api/events/%s/registrations", eventID), "registrations")
}

// RegisterContact signs a contact up for an event
func (c *Client) RegisterContact(ctx context.Context, eventID, contactID string) (domain.Registration, error) {
	if err := requireID("event", eventID); err != nil {
		return domain.Registration{}, err
	}
	body := map[string]string{"contact_id": contactID}
	return call[domain.Registration](ctx, c, http.MethodPost, escape("/api/events/%s/registrations", eventID), body)
}

// CancelRegistration cancels a registration and returns it in its new state
func (c *Client) CancelRegistration(ctx context.Context, registrationID string) (domain.Registration, error) {
	if err := requireID("registration", registrationID); err != nil {
		return domain.Registration{}, err
	}
	return call[domain.Registration](ctx, c, http.MethodPost, escape("/api/events/registrations/%s/cancel", registrationID), nil)
}

// CheckIn marks a registration as attended
func (c *Client) CheckIn(ctx context.Context, registrationID string) (domain.Registration, error) {
	if err := requireID("registration", registrationID); err != nil {
		return domain.Registration{}, err
	}
	return call[domain.Registration](ctx, c, http.MethodPost, escape("/api/events/registrations/%s/check-in", registrationID), nil)
}
