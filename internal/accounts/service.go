package accounts

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates account client calls and account state.
type Service struct {
	client   domain.AccountClient
	accounts *slice.Slice[domain.Account, string]
	logger   *slog.Logger
}

// NewService creates a new accounts service.
func NewService(client domain.AccountClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		accounts: slice.New[domain.Account, string]("accounts", accountKey, logger),
		logger:   logger,
	}
}

func accountKey(a domain.Account) string { return a.AccountID }

// Accounts returns the account list state
func (s *Service) Accounts() *slice.Slice[domain.Account, string] { return s.accounts }

func (s *Service) FetchAccounts(ctx context.Context, q domain.ListQuery) error {
	return s.accounts.Fetch(ctx, "Failed to fetch accounts", func(ctx context.Context) ([]domain.Account, domain.Pagination, error) {
		return s.client.ListAccounts(ctx, q)
	})
}

func (s *Service) LoadAccount(ctx context.Context, id string) (domain.Account, error) {
	return s.accounts.Load(ctx, id, "Failed to fetch account", func(ctx context.Context) (domain.Account, error) {
		return s.client.GetAccount(ctx, id)
	})
}

func (s *Service) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	return s.accounts.Create(ctx, "Failed to create account", func(ctx context.Context) (domain.Account, error) {
		return s.client.CreateAccount(ctx, a)
	})
}

func (s *Service) UpdateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	return s.accounts.Update(ctx, a.AccountID, "Failed to update account", func(ctx context.Context) (domain.Account, error) {
		return s.client.UpdateAccount(ctx, a)
	})
}

func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	return s.accounts.Delete(ctx, id, "Failed to delete account", func(ctx context.Context) error {
		return s.client.DeleteAccount(ctx, id)
	})
}
