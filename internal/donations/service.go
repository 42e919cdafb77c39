package donations

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates donation client calls and donation state. New
// donations go to the top of the list.
type Service struct {
	client    domain.DonationClient
	donations *slice.Slice[domain.Donation, string]
	logger    *slog.Logger
}

// NewService creates a new donations service.
func NewService(client domain.DonationClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:    client,
		donations: slice.New[domain.Donation, string]("donations", donationKey, logger),
		logger:    logger,
	}
}

func donationKey(d domain.Donation) string { return d.DonationID }

// Donations returns the donation list state
func (s *Service) Donations() *slice.Slice[domain.Donation, string] { return s.donations }

func (s *Service) FetchDonations(ctx context.Context, q domain.ListQuery) error {
	return s.donations.Fetch(ctx, "Failed to fetch donations", func(ctx context.Context) ([]domain.Donation, domain.Pagination, error) {
		return s.client.ListDonations(ctx, q)
	})
}

func (s *Service) LoadDonation(ctx context.Context, id string) (domain.Donation, error) {
	return s.donations.Load(ctx, id, "Failed to fetch donation", func(ctx context.Context) (domain.Donation, error) {
		return s.client.GetDonation(ctx, id)
	})
}

func (s *Service) CreateDonation(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	return s.donations.Create(ctx, "Failed to record donation", func(ctx context.Context) (domain.Donation, error) {
		return s.client.CreateDonation(ctx, d)
	})
}

func (s *Service) UpdateDonation(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	return s.donations.Update(ctx, d.DonationID, "Failed to update donation", func(ctx context.Context) (domain.Donation, error) {
		return s.client.UpdateDonation(ctx, d)
	})
}

func (s *Service) DeleteDonation(ctx context.Context, id string) error {
	return s.donations.Delete(ctx, id, "Failed to delete donation", func(ctx context.Context) error {
		return s.client.DeleteDonation(ctx, id)
	})
}

// Total sums the loaded donations per currency
func (s *Service) Total() map[string]float64 {
	totals := map[string]float64{}
	for _, d := range s.donations.Items() {
		totals[d.Currency] += d.Amount
	}
	return totals
}
