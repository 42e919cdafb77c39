package volunteers

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates volunteer client calls and volunteer state.
type Service struct {
	client     domain.VolunteerClient
	volunteers *slice.Slice[domain.Volunteer, string]
	logger     *slog.Logger
}

// NewService creates a new volunteers service.
func NewService(client domain.VolunteerClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:     client,
		volunteers: slice.New[domain.Volunteer, string]("volunteers", volunteerKey, logger),
		logger:     logger,
	}
}

func volunteerKey(v domain.Volunteer) string { return v.VolunteerID }

// Volunteers returns the volunteer list state
func (s *Service) Volunteers() *slice.Slice[domain.Volunteer, string] { return s.volunteers }

func (s *Service) FetchVolunteers(ctx context.Context, q domain.ListQuery) error {
	return s.volunteers.Fetch(ctx, "Failed to fetch volunteers", func(ctx context.Context) ([]domain.Volunteer, domain.Pagination, error) {
		return s.client.ListVolunteers(ctx, q)
	})
}

func (s *Service) LoadVolunteer(ctx context.Context, id string) (domain.Volunteer, error) {
	return s.volunteers.Load(ctx, id, "Failed to fetch volunteer", func(ctx context.Context) (domain.Volunteer, error) {
		return s.client.GetVolunteer(ctx, id)
	})
}

func (s *Service) CreateVolunteer(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	return s.volunteers.Create(ctx, "Failed to create volunteer", func(ctx context.Context) (domain.Volunteer, error) {
		return s.client.CreateVolunteer(ctx, v)
	})
}

func (s *Service) UpdateVolunteer(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	return s.volunteers.Update(ctx, v.VolunteerID, "Failed to update volunteer", func(ctx context.Context) (domain.Volunteer, error) {
		return s.client.UpdateVolunteer(ctx, v)
	})
}

func (s *Service) DeleteVolunteer(ctx context.Context, id string) error {
	return s.volunteers.Delete(ctx, id, "Failed to delete volunteer", func(ctx context.Context) error {
		return s.client.DeleteVolunteer(ctx, id)
	})
}

// LogHours records hours worked. The server returns the volunteer with its
// new hours_total, which replaces the local copy.
func (s *Service) LogHours(ctx context.Context, id string, hours float64) (domain.Volunteer, error) {
	return s.volunteers.Update(ctx, id, "Failed to log hours", func(ctx context.Context) (domain.Volunteer, error) {
		return s.client.LogVolunteerHours(ctx, id, hours)
	})
}
