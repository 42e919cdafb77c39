package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/kindred/internal/adapter"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/store"
	"github.com/nalgeon/be"
)

type fakeCRM struct {
	domain.CRMClient
	offline bool
}

func page(n int) domain.Pagination {
	return domain.Pagination{Total: n, Page: 1, Limit: 20, TotalPages: 1}
}

func (f *fakeCRM) ListContacts(context.Context, domain.ListQuery) ([]domain.Contact, domain.Pagination, error) {
	if f.offline {
		return nil, domain.Pagination{}, &domain.Error{Kind: domain.KindNetwork, Err: domain.ErrOffline}
	}
	return []domain.Contact{{ContactID: "c1", FirstName: "Ada"}, {ContactID: "c2", FirstName: "Luis"}}, page(2), nil
}

func (f *fakeCRM) ListAccounts(context.Context, domain.ListQuery) ([]domain.Account, domain.Pagination, error) {
	return []domain.Account{{AccountID: "a1"}}, page(1), nil
}

func (f *fakeCRM) ListVolunteers(context.Context, domain.ListQuery) ([]domain.Volunteer, domain.Pagination, error) {
	return nil, page(0), nil
}

func (f *fakeCRM) ListEvents(context.Context, domain.ListQuery) ([]domain.Event, domain.Pagination, error) {
	return []domain.Event{{EventID: "e1"}}, page(1), nil
}

func (f *fakeCRM) ListCases(context.Context, domain.ListQuery) ([]domain.Case, domain.Pagination, error) {
	return []domain.Case{{ID: "k1"}}, page(1), nil
}

func (f *fakeCRM) ListDonations(context.Context, domain.ListQuery) ([]domain.Donation, domain.Pagination, error) {
	return nil, domain.Pagination{}, &domain.Error{Kind: domain.KindUnauthorized, Message: "Insufficient permissions"}
}

func (f *fakeCRM) ListOutcomes(context.Context) ([]domain.OutcomeDefinition, error) {
	return []domain.OutcomeDefinition{{ID: "o1", Name: "Housed"}}, nil
}

func (f *fakeCRM) ListFollowUps(context.Context, domain.ListQuery) ([]domain.FollowUp, domain.Pagination, error) {
	return nil, page(0), nil
}

func (f *fakeCRM) ListWebhooks(context.Context) ([]domain.Webhook, error) {
	return nil, nil
}

func (f *fakeCRM) ListAPIKeys(context.Context) ([]domain.APIKey, error) {
	return []domain.APIKey{{ID: "k1"}}, nil
}

func newTestApp(t *testing.T, client domain.CRMClient, cache domain.Cache) *App {
	t.Helper()
	if cache == nil {
		c, err := store.Open("", "https://crm.example.org")
		be.Err(t, err, nil)
		cache = c
	}
	a := New(client, cache, Options{PageSize: 20, ListTTL: time.Hour, SettingsTTL: time.Hour}, adapter.NullLogger())
	t.Cleanup(func() { a.Close() })
	return a
}

func TestRefreshLoadsEveryList(t *testing.T) {
	a := newTestApp(t, &fakeCRM{}, nil)

	var (
		mu    sync.Mutex
		done  []int
		total int
	)
	results, err := a.Refresh(context.Background(), func(slice string, d, n int, err error) {
		mu.Lock()
		defer mu.Unlock()
		done = append(done, d)
		total = n
	})

	be.Err(t, err, domain.ErrUnauthorized)
	be.Equal(t, len(results), len(a.Slices()))
	be.Equal(t, total, len(a.Slices()))
	be.Equal(t, done, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	byName := map[string]domain.RefreshResult{}
	for i, r := range results {
		be.Equal(t, r.Slice, a.Slices()[i])
		byName[r.Slice] = r
	}
	be.Equal(t, byName["contacts"].Count, 2)
	be.Err(t, byName["contacts"].Err, nil)
	be.True(t, byName["donations"].Err != nil)
	be.Equal(t, byName["api_keys"].Count, 1)

	be.Equal(t, len(a.Contacts.Contacts().Items()), 2)
	be.Equal(t, a.Donations.Donations().Snapshot().Error, "Insufficient permissions")
}

func TestRestoreAfterOffline(t *testing.T) {
	cache, err := store.Open(t.TempDir(), "https://crm.example.org")
	be.Err(t, err, nil)

	online := New(&fakeCRM{}, cache, Options{PageSize: 20, ListTTL: time.Hour}, adapter.NullLogger())
	_, _ = online.Refresh(context.Background(), nil)

	offline := New(&fakeCRM{offline: true}, cache, Options{PageSize: 20, ListTTL: time.Hour}, adapter.NullLogger())
	t.Cleanup(func() { offline.Close() })
	err = offline.Contacts.FetchContacts(context.Background(), domain.ListQuery{})
	be.Err(t, err, domain.ErrOffline)
	be.Equal(t, len(offline.Contacts.Contacts().Items()), 0)

	restored := offline.Restore()
	be.True(t, len(restored) > 0)
	be.Equal(t, len(offline.Contacts.Contacts().Items()), 2)
	be.Equal(t, offline.Contacts.Contacts().Snapshot().Pagination.Total, 2)

	// donations failed and were never cached
	for _, name := range restored {
		be.True(t, name != "donations")
	}
}

func TestOpenFallsBackToMemoryCache(t *testing.T) {
	// a regular file where the cache directory should be
	blocked := filepath.Join(t.TempDir(), "cache")
	be.Err(t, os.WriteFile(blocked, nil, 0o600), nil)

	cfg := adapter.DefaultConfig()
	cfg.Server.URL = "https://crm.example.org"
	cfg.Server.APIKey = "key_123"
	cfg.Cache.Dir = blocked

	a, err := Open(cfg, nil)
	be.Err(t, err, nil)
	defer a.Close()
	be.Equal(t, len(a.Slices()), 10)
}

func TestOpenRequiresConfig(t *testing.T) {
	_, err := Open(adapter.DefaultConfig(), nil)
	be.Err(t, err, "kindred setup")
}
