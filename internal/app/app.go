// Package app wires the feature services into one explicit application
// state. Callers build an App and pass it around; nothing is global.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/kindred/internal/accounts"
	"github.com/mmcdole/kindred/internal/adapter"
	"github.com/mmcdole/kindred/internal/adapter/crm"
	"github.com/mmcdole/kindred/internal/cases"
	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/contacts"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/donations"
	"github.com/mmcdole/kindred/internal/events"
	"github.com/mmcdole/kindred/internal/followups"
	"github.com/mmcdole/kindred/internal/outcomes"
	"github.com/mmcdole/kindred/internal/settings"
	"github.com/mmcdole/kindred/internal/slice"
	"github.com/mmcdole/kindred/internal/store"
	"github.com/mmcdole/kindred/internal/volunteers"
	"github.com/mmcdole/kindred/internal/webhooks"
)

// refreshConcurrency caps parallel list requests during Refresh
const refreshConcurrency = 4

// Options tune an App
type Options struct {
	PageSize    int           // list page size used by Refresh
	ListTTL     time.Duration // how long refreshed lists stay in the cache
	SettingsTTL time.Duration // how long settings panels stay in the cache
}

// App holds every feature service plus the shared client and cache.
type App struct {
	Contacts   *contacts.Service
	Accounts   *accounts.Service
	Volunteers *volunteers.Service
	Events     *events.Service
	Cases      *cases.Service
	Donations  *donations.Service
	Outcomes   *outcomes.Service
	FollowUps  *followups.Service
	Webhooks   *webhooks.Service
	Settings   *settings.Service

	cache  domain.Cache
	opts   Options
	logger *slog.Logger
	jobs   []refreshJob
}

// New builds an App around an existing client and cache.
func New(client domain.CRMClient, cache domain.Cache, opts Options, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Contacts:   contacts.NewService(client, logger.With("slice", "contacts")),
		Accounts:   accounts.NewService(client, logger.With("slice", "accounts")),
		Volunteers: volunteers.NewService(client, logger.With("slice", "volunteers")),
		Events:     events.NewService(client, logger.With("slice", "events")),
		Cases:      cases.NewService(client, logger.With("slice", "cases")),
		Donations:  donations.NewService(client, logger.With("slice", "donations")),
		Outcomes:   outcomes.NewService(client, logger.With("slice", "outcomes")),
		FollowUps:  followups.NewService(client, logger.With("slice", "follow_ups")),
		Webhooks:   webhooks.NewService(client, logger.With("slice", "webhooks")),
		Settings:   settings.NewService(client, cache, opts.SettingsTTL, logger.With("slice", "settings")),
		cache:      cache,
		opts:       opts,
		logger:     logger,
	}
	a.jobs = a.refreshJobs()
	return a
}

// Open builds the REST client and cache from cfg and returns the App. The
// caller must Close it.
func Open(cfg *adapter.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.IsConfigured() {
		return nil, errors.New("kindred is not configured; run `kindred setup`")
	}
	client := crm.NewClient(cfg.Server.URL, cfg.Server.APIKey, logger,
		crm.WithTimeout(cfg.Server.Timeout),
		crm.WithMaxRetries(cfg.Server.MaxRetries),
	)

	cacheDir, err := adapter.ExpandHome(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	cache, err := store.Open(cacheDir, client.BaseURL())
	if err != nil {
		// a locked or unreadable cache should not block the CLI
		logger.Warn("failed to open cache, using memory only", "error", err)
		cache, _ = store.Open("", client.BaseURL())
	}

	return New(client, cache, Options{
		PageSize:    cfg.UI.PageSize,
		ListTTL:     cfg.Cache.ListTTL,
		SettingsTTL: cfg.Cache.SettingsTTL,
	}, logger), nil
}

// Close releases the cache
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// Slices returns the names of the lists Refresh loads, in report order
func (a *App) Slices() []string {
	names := make([]string, len(a.jobs))
	for i, j := range a.jobs {
		names[i] = j.name
	}
	return names
}

// Refresh loads every top-level list concurrently. progress is called once
// per list as it finishes. Results come back in Slices order; the error is
// the first failure, if any. A failed list keeps its previous data.
func (a *App) Refresh(ctx context.Context, progress domain.ProgressFunc) ([]domain.RefreshResult, error) {
	results := make([]domain.RefreshResult, len(a.jobs))
	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(refreshConcurrency)
	for i, job := range a.jobs {
		g.Go(func() error {
			count, err := job.run(ctx)
			results[i] = domain.RefreshResult{Slice: job.name, Count: count, Err: err}

			mu.Lock()
			done++
			if progress != nil {
				progress(job.name, done, len(a.jobs), err)
			}
			mu.Unlock()

			if err != nil {
				return fmt.Errorf("failed to refresh %s: %w", job.name, err)
			}
			return nil
		})
	}
	err := g.Wait()
	a.logger.Info("refresh finished", "slices", len(a.jobs), "error", err)
	return results, err
}

// Restore fills lists from the cache left by earlier refreshes and returns
// the names that were restored. Used when the server cannot be reached.
func (a *App) Restore() []string {
	var restored []string
	for _, j := range a.jobs {
		if j.restore() {
			restored = append(restored, j.name)
		}
	}
	return restored
}

type refreshJob struct {
	name    string
	run     func(ctx context.Context) (int, error)
	restore func() bool
}

func (a *App) refreshJobs() []refreshJob {
	q := domain.ListQuery{Page: 1, Limit: a.opts.PageSize}
	return []refreshJob{
		listJob(a, a.Contacts.Contacts(), func(ctx context.Context) error { return a.Contacts.FetchContacts(ctx, q) }),
		listJob(a, a.Accounts.Accounts(), func(ctx context.Context) error { return a.Accounts.FetchAccounts(ctx, q) }),
		listJob(a, a.Volunteers.Volunteers(), func(ctx context.Context) error { return a.Volunteers.FetchVolunteers(ctx, q) }),
		listJob(a, a.Events.Events(), func(ctx context.Context) error { return a.Events.FetchEvents(ctx, q) }),
		listJob(a, a.Cases.Cases(), func(ctx context.Context) error { return a.Cases.FetchCases(ctx, q) }),
		listJob(a, a.Donations.Donations(), func(ctx context.Context) error { return a.Donations.FetchDonations(ctx, q) }),
		listJob(a, a.Outcomes.Outcomes(), a.Outcomes.FetchOutcomes),
		listJob(a, a.FollowUps.FollowUps(), func(ctx context.Context) error { return a.FollowUps.FetchFollowUps(ctx, q) }),
		listJob(a, a.Webhooks.Webhooks(), a.Webhooks.FetchWebhooks),
		listJob(a, a.Webhooks.APIKeys(), a.Webhooks.FetchAPIKeys),
	}
}

// cachedList is the lists bucket payload
type cachedList[T any] struct {
	Items      []T               `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

func listJob[T any, K comparable](a *App, s *slice.Slice[T, K], fetch func(context.Context) error) refreshJob {
	return refreshJob{
		name: s.Name(),
		run: func(ctx context.Context) (int, error) {
			if err := fetch(ctx); err != nil {
				return len(s.Items()), err
			}
			snap := s.Snapshot()
			if a.cache != nil {
				entry := cachedList[T]{Items: snap.Items, Pagination: snap.Pagination}
				if err := a.cache.Set(store.BucketLists, s.Name(), entry, a.opts.ListTTL); err != nil {
					a.logger.Warn("failed to cache list", "slice", s.Name(), "error", err)
				}
			}
			return len(snap.Items), nil
		},
		restore: func() bool {
			if a.cache == nil {
				return false
			}
			var entry cachedList[T]
			if !a.cache.Get(store.BucketLists, s.Name(), &entry) {
				return false
			}
			s.Mutate(func(c *collection.Collection[T, K]) { c.Replace(entry.Items, entry.Pagination) })
			return true
		},
	}
}
