package crm

import (
	"context"
	"net/http"

	"github.com/mmcdole/kindred/internal/domain"
)

// Accounts

func (c *Client) ListAccounts(ctx context.Context, q domain.ListQuery) ([]domain.Account, domain.Pagination, error) {
	return getList[domain.Account](ctx, c, "/api/accounts", q.Values(), "accounts")
}

func (c *Client) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	if err := requireID("account", id); err != nil {
		return domain.Account{}, err
	}
	return call[domain.Account](ctx, c, http.MethodGet, escape("/api/accounts/%s", id), nil)
}

func (c *Client) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	return call[domain.Account](ctx, c, http.MethodPost, "/api/accounts", a)
}

func (c *Client) UpdateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	if err := requireID("account", a.AccountID); err != nil {
		return domain.Account{}, err
	}
	return call[domain.Account](ctx, c, http.MethodPut, escape("/api/accounts/%s", a.AccountID), a)
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	if err := requireID("account", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/accounts/%s", id), nil)
}

// Volunteers

func (c *Client) ListVolunteers(ctx context.Context, q domain.ListQuery) ([]domain.Volunteer, domain.Pagination, error) {
	return getList[domain.Volunteer](ctx, c, "/api/volunteers", q.Values(), "volunteers")
}

func (c *Client) GetVolunteer(ctx context.Context, id string) (domain.Volunteer, error) {
	if err := requireID("volunteer", id); err != nil {
		return domain.Volunteer{}, err
	}
	return call[domain.Volunteer](ctx, c, http.MethodGet, escape("/api/volunteers/%s", id), nil)
}

func (c *Client) CreateVolunteer(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	return call[domain.Volunteer](ctx, c, http.MethodPost, "/api/volunteers", v)
}

func (c *Client) UpdateVolunteer(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	if err := requireID("volunteer", v.VolunteerID); err != nil {
		return domain.Volunteer{}, err
	}
	return call[domain.Volunteer](ctx, c, http.MethodPut, escape("/api/volunteers/%s", v.VolunteerID), v)
}

func (c *Client) DeleteVolunteer(ctx context.Context, id string) error {
	if err := requireID("volunteer", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/volunteers/%s", id), nil)
}

// LogVolunteerHours records hours and returns the volunteer with the new total
func (c *Client) LogVolunteerHours(ctx context.Context, id string, hours float64) (domain.Volunteer, error) {
	if err := requireID("volunteer", id); err != nil {
		return domain.Volunteer{}, err
	}
	body := map[string]float64{"hours": hours}
	return call[domain.Volunteer](ctx, c, http.MethodPost, escape("/api/volunteers/%s/hours", id), body)
}

// Donations

func (c *Client) ListDonations(ctx context.Context, q domain.ListQuery) ([]domain.Donation, domain.Pagination, error) {
	return getList[domain.Donation](ctx, c, "/api/donations", q.Values(), "donations")
}

func (c *Client) GetDonation(ctx context.Context, id string) (domain.Donation, error) {
	if err := requireID("donation", id); err != nil {
		return domain.Donation{}, err
	}
	return call[domain.Donation](ctx, c, http.MethodGet, escape("/api/donations/%s", id), nil)
}

func (c *Client) CreateDonation(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	return call[domain.Donation](ctx, c, http.MethodPost, "/api/donations", d)
}

func (c *Client) UpdateDonation(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	if err := requireID("donation", d.DonationID); err != nil {
		return domain.Donation{}, err
	}
	return call[domain.Donation](ctx, c, http.MethodPut, escape("/api/donations/%s", d.DonationID), d)
}

func (c *Client) DeleteDonation(ctx context.Context, id string) error {
	if err := requireID("donation", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/donations/%s", id), nil)
}

// Follow-ups

func (c *Client) ListFollowUps(ctx context.Context, q domain.ListQuery) ([]domain.FollowUp, domain.Pagination, error) {
	return getList[domain.FollowUp](ctx, c, "/api/follow-ups", q.Values(), "follow_ups")
}

func (c *Client) CreateFollowUp(ctx context.Context, f domain.FollowUp) (domain.FollowUp, error) {
	return call[domain.FollowUp](ctx, c, http.MethodPost, "/api/follow-ups", f)
}

func (c *Client) UpdateFollowUp(ctx context.Context, f domain.FollowUp) (domain.FollowUp, error) {
	if err := requireID("follow-up", f.ID); err != nil {
		return domain.FollowUp{}, err
	}
	return call[domain.FollowUp](ctx, c, http.MethodPut, escape("/api/follow-ups/%s", f.ID), f)
}

// CompleteFollowUp marks a follow-up done and returns it
func (c *Client) CompleteFollowUp(ctx context.Context, id string) (domain.FollowUp, error) {
	if err := requireID("follow-up", id); err != nil {
		return domain.FollowUp{}, err
	}
	return call[domain.FollowUp](ctx, c, http.MethodPost, escape("/api/follow-ups/%s/complete", id), nil)
}

func (c *Client) DeleteFollowUp(ctx context.Context, id string) error {
	if err := requireID("follow-up", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/follow-ups/%s", id), nil)
}
