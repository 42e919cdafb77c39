// Package events holds event state and the registrations of the selected
// event. Registration changes keep the event's registered_count and
// attended_count in step without refetching the event.
package events

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates event client calls and event state.
type Service struct {
	client        domain.EventClient
	events        *slice.Slice[domain.Event, string]
	registrations *slice.Slice[domain.Registration, string]
	logger        *slog.Logger
}

// NewService creates a new events service.
func NewService(client domain.EventClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:        client,
		events:        slice.New[domain.Event, string]("events", eventKey, logger),
		registrations: slice.New[domain.Registration, string]("event_registrations", registrationKey, logger, slice.AppendNew[domain.Registration, string]()),
		logger:        logger,
	}
}

func eventKey(e domain.Event) string { return e.EventID }

func registrationKey(r domain.Registration) string { return r.RegistrationID }

// Events returns the event list state
func (s *Service) Events() *slice.Slice[domain.Event, string] { return s.events }

// Registrations returns the selected event's registration state
func (s *Service) Registrations() *slice.Slice[domain.Registration, string] {
	return s.registrations
}

func (s *Service) FetchEvents(ctx context.Context, q domain.ListQuery) error {
	return s.events.Fetch(ctx, "Failed to fetch events", func(ctx context.Context) ([]domain.Event, domain.Pagination, error) {
		return s.client.ListEvents(ctx, q)
	})
}

func (s *Service) LoadEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.events.Load(ctx, id, "Failed to fetch event", func(ctx context.Context) (domain.Event, error) {
		return s.client.GetEvent(ctx, id)
	})
}

func (s *Service) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	return s.events.Create(ctx, "Failed to create event", func(ctx context.Context) (domain.Event, error) {
		return s.client.CreateEvent(ctx, e)
	})
}

func (s *Service) UpdateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	return s.events.Update(ctx, e.EventID, "Failed to update event", func(ctx context.Context) (domain.Event, error) {
		return s.client.UpdateEvent(ctx, e)
	})
}

// DeleteEvent removes the event; its registrations go with it when it was
// the selected event
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	selected, _ := s.events.SelectedKey()
	if err := s.events.Delete(ctx, id, "Failed to delete event", func(ctx context.Context) error {
		return s.client.DeleteEvent(ctx, id)
	}); err != nil {
		return err
	}
	if selected == id {
		s.registrations.Reset()
	}
	return nil
}

// FetchRegistrations loads the registrations of one event
func (s *Service) FetchRegistrations(ctx context.Context, eventID string) error {
	return s.registrations.Fetch(ctx, "Failed to fetch registrations", slice.Unpaged(func(ctx context.Context) ([]domain.Registration, error) {
		return s.client.ListRegistrations(ctx, eventID)
	}))
}

// RegisterContact signs a contact up and counts the registration on the
// selected event
func (s *Service) RegisterContact(ctx context.Context, eventID, contactID string) (domain.Registration, error) {
	reg, err := s.registrations.Create(ctx, "Failed to register contact", func(ctx context.Context) (domain.Registration, error) {
		return s.client.RegisterContact(ctx, eventID, contactID)
	})
	if err != nil {
		return reg, err
	}
	s.adjustSelected(reg.EventID, func(e domain.Event) domain.Event {
		e.RegisteredCount = collection.Increment(e.RegisteredCount)
		return e
	})
	return reg, nil
}

// CancelRegistration cancels a registration and uncounts it, never taking
// registered_count below zero
func (s *Service) CancelRegistration(ctx context.Context, registrationID string) (domain.Registration, error) {
	reg, err := s.registrations.Update(ctx, registrationID, "Failed to cancel registration", func(ctx context.Context) (domain.Registration, error) {
		return s.client.CancelRegistration(ctx, registrationID)
	})
	if err != nil {
		return reg, err
	}
	s.adjustSelected(reg.EventID, func(e domain.Event) domain.Event {
		e.RegisteredCount = collection.Decrement(e.RegisteredCount)
		return e
	})
	return reg, nil
}

// CheckIn marks a registration attended and counts it on the selected event
func (s *Service) CheckIn(ctx context.Context, registrationID string) (domain.Registration, error) {
	reg, err := s.registrations.Update(ctx, registrationID, "Failed to check in", func(ctx context.Context) (domain.Registration, error) {
		return s.client.CheckIn(ctx, registrationID)
	})
	if err != nil {
		return reg, err
	}
	s.adjustSelected(reg.EventID, func(e domain.Event) domain.Event {
		e.AttendedCount = collection.Increment(e.AttendedCount)
		return e
	})
	return reg, nil
}

// adjustSelected patches the selected event (and its list entry) when it is
// eventID
func (s *Service) adjustSelected(eventID string, fn func(domain.Event) domain.Event) {
	if current, ok := s.events.SelectedKey(); !ok || current != eventID {
		s.logger.Debug("registration for unselected event", "eventID", eventID)
		return
	}
	s.events.Patch(eventID, fn)
}
