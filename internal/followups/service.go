package followups

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates follow-up client calls and follow-up state.
type Service struct {
	client    domain.FollowUpClient
	followUps *slice.Slice[domain.FollowUp, string]
	logger    *slog.Logger
}

// NewService creates a new follow-ups service.
func NewService(client domain.FollowUpClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:    client,
		followUps: slice.New[domain.FollowUp, string]("follow_ups", followUpKey, logger),
		logger:    logger,
	}
}

func followUpKey(f domain.FollowUp) string { return f.ID }

// FollowUps returns the follow-up list state
func (s *Service) FollowUps() *slice.Slice[domain.FollowUp, string] { return s.followUps }

func (s *Service) FetchFollowUps(ctx context.Context, q domain.ListQuery) error {
	return s.followUps.Fetch(ctx, "Failed to fetch follow-ups", func(ctx context.Context) ([]domain.FollowUp, domain.Pagination, error) {
		return s.client.ListFollowUps(ctx, q)
	})
}

func (s *Service) CreateFollowUp(ctx context.Context, f domain.FollowUp) (domain.FollowUp, error) {
	return s.followUps.Create(ctx, "Failed to create follow-up", func(ctx context.Context) (domain.FollowUp, error) {
		return s.client.CreateFollowUp(ctx, f)
	})
}

func (s *Service) UpdateFollowUp(ctx context.Context, f domain.FollowUp) (domain.FollowUp, error) {
	return s.followUps.Update(ctx, f.ID, "Failed to update follow-up", func(ctx context.Context) (domain.FollowUp, error) {
		return s.client.UpdateFollowUp(ctx, f)
	})
}

// Complete marks a follow-up done; the record stays in the list with its
// new status
func (s *Service) Complete(ctx context.Context, id string) (domain.FollowUp, error) {
	return s.followUps.Update(ctx, id, "Failed to complete follow-up", func(ctx context.Context) (domain.FollowUp, error) {
		return s.client.CompleteFollowUp(ctx, id)
	})
}

func (s *Service) DeleteFollowUp(ctx context.Context, id string) error {
	return s.followUps.Delete(ctx, id, "Failed to delete follow-up", func(ctx context.Context) error {
		return s.client.DeleteFollowUp(ctx, id)
	})
}

// Pending returns the loaded follow-ups not yet completed
func (s *Service) Pending() []domain.FollowUp {
	var out []domain.FollowUp
	for _, f := range s.followUps.Items() {
		if f.Status != domain.FollowUpCompleted {
			out = append(out, f)
		}
	}
	return out
}
