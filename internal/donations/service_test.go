package donations

import (
	"context"
	"testing"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type fakeClient struct {
	domain.DonationClient
}

func (fakeClient) ListDonations(context.Context, domain.ListQuery) ([]domain.Donation, domain.Pagination, error) {
	return []domain.Donation{
		{DonationID: "d1", Amount: 50, Currency: "USD"},
		{DonationID: "d2", Amount: 20, Currency: "EUR"},
		{DonationID: "d3", Amount: 25.5, Currency: "USD"},
	}, domain.Pagination{Total: 3, Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (fakeClient) CreateDonation(_ context.Context, d domain.Donation) (domain.Donation, error) {
	d.DonationID = "d4"
	return d, nil
}

func (fakeClient) DeleteDonation(context.Context, string) error { return nil }

func TestTotalPerCurrency(t *testing.T) {
	ctx := context.Background()
	svc := NewService(fakeClient{}, nil)
	be.Err(t, svc.FetchDonations(ctx, domain.ListQuery{}), nil)
	be.Equal(t, svc.Total(), map[string]float64{"USD": 75.5, "EUR": 20})

	_, err := svc.CreateDonation(ctx, domain.Donation{Amount: 100, Currency: "EUR"})
	be.Err(t, err, nil)
	be.Equal(t, svc.Donations().Items()[0].DonationID, "d4")
	be.Equal(t, svc.Total()["EUR"], 120.0)

	be.Err(t, svc.DeleteDonation(ctx, "d1"), nil)
	be.Equal(t, svc.Total()["USD"], 25.5)
}
