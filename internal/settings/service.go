// Package settings holds the admin settings panels.
//
// Each panel is a single record kept as the selection of its own slice.
// Reads go through the short-TTL settings cache; updates write through to
// the server and then refresh the cached copy.
package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
	"github.com/mmcdole/kindred/internal/store"
)

// Cache keys, also used as the record key inside each panel's slice
const (
	KeyOrganization = "organization"
	KeyBranding     = "branding"
	KeyEmail        = "email"
	KeySMS          = "sms"
)

// Service orchestrates settings client calls, panel state and caching.
type Service struct {
	client domain.SettingsClient
	cache  domain.Cache
	ttl    time.Duration
	logger *slog.Logger

	organization *slice.Slice[domain.OrganizationProfile, string]
	branding     *slice.Slice[domain.Branding, string]
	email        *slice.Slice[domain.EmailSettings, string]
	sms          *slice.Slice[domain.SMSSettings, string]
}

// NewService creates a settings service. A nil cache disables caching.
func NewService(client domain.SettingsClient, cache domain.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:       client,
		cache:        cache,
		ttl:          ttl,
		logger:       logger,
		organization: slice.New[domain.OrganizationProfile, string]("organization", constKey[domain.OrganizationProfile](KeyOrganization), logger),
		branding:     slice.New[domain.Branding, string]("branding", constKey[domain.Branding](KeyBranding), logger),
		email:        slice.New[domain.EmailSettings, string]("email_settings", constKey[domain.EmailSettings](KeyEmail), logger),
		sms:          slice.New[domain.SMSSettings, string]("sms_settings", constKey[domain.SMSSettings](KeySMS), logger),
	}
}

func constKey[T any](key string) func(T) string {
	return func(T) string { return key }
}

func (s *Service) Organization() *slice.Slice[domain.OrganizationProfile, string] {
	return s.organization
}

func (s *Service) Branding() *slice.Slice[domain.Branding, string] { return s.branding }

func (s *Service) Email() *slice.Slice[domain.EmailSettings, string] { return s.email }

func (s *Service) SMS() *slice.Slice[domain.SMSSettings, string] { return s.sms }

// LoadOrganization returns the organization profile, from cache when fresh
func (s *Service) LoadOrganization(ctx context.Context) (domain.OrganizationProfile, error) {
	return readThrough(ctx, s, s.organization, KeyOrganization, "Failed to load organization profile", s.client.GetOrganization)
}

func (s *Service) UpdateOrganization(ctx context.Context, p domain.OrganizationProfile) (domain.OrganizationProfile, error) {
	return writeThrough(ctx, s, s.organization, KeyOrganization, "Failed to update organization profile", func(ctx context.Context) (domain.OrganizationProfile, error) {
		return s.client.UpdateOrganization(ctx, p)
	})
}

func (s *Service) LoadBranding(ctx context.Context) (domain.Branding, error) {
	return readThrough(ctx, s, s.branding, KeyBranding, "Failed to load branding", s.client.GetBranding)
}

func (s *Service) UpdateBranding(ctx context.Context, b domain.Branding) (domain.Branding, error) {
	return writeThrough(ctx, s, s.branding, KeyBranding, "Failed to update branding", func(ctx context.Context) (domain.Branding, error) {
		return s.client.UpdateBranding(ctx, b)
	})
}

func (s *Service) LoadEmailSettings(ctx context.Context) (domain.EmailSettings, error) {
	return readThrough(ctx, s, s.email, KeyEmail, "Failed to load email settings", s.client.GetEmailSettings)
}

func (s *Service) UpdateEmailSettings(ctx context.Context, e domain.EmailSettings) (domain.EmailSettings, error) {
	return writeThrough(ctx, s, s.email, KeyEmail, "Failed to update email settings", func(ctx context.Context) (domain.EmailSettings, error) {
		return s.client.UpdateEmailSettings(ctx, e)
	})
}

func (s *Service) LoadSMSSettings(ctx context.Context) (domain.SMSSettings, error) {
	return readThrough(ctx, s, s.sms, KeySMS, "Failed to load SMS settings", s.client.GetSMSSettings)
}

func (s *Service) UpdateSMSSettings(ctx context.Context, m domain.SMSSettings) (domain.SMSSettings, error) {
	return writeThrough(ctx, s, s.sms, KeySMS, "Failed to update SMS settings", func(ctx context.Context) (domain.SMSSettings, error) {
		return s.client.UpdateSMSSettings(ctx, m)
	})
}

// Invalidate drops every cached panel so the next load hits the server
func (s *Service) Invalidate() {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePrefix(store.BucketSettings, "")
}

// LoadAll loads every panel, stopping at the first failure
func (s *Service) LoadAll(ctx context.Context) error {
	if _, err := s.LoadOrganization(ctx); err != nil {
		return err
	}
	if _, err := s.LoadBranding(ctx); err != nil {
		return err
	}
	if _, err := s.LoadEmailSettings(ctx); err != nil {
		return err
	}
	_, err := s.LoadSMSSettings(ctx)
	return err
}

func readThrough[T any](ctx context.Context, s *Service, sl *slice.Slice[T, string], key, fallback string, call func(context.Context) (T, error)) (T, error) {
	if s.cache != nil {
		var cached T
		if s.cache.Get(store.BucketSettings, key, &cached) {
			s.logger.Debug("settings cache hit", "key", key)
			sl.Mutate(func(c *collection.Collection[T, string]) { c.SetSelected(cached) })
			return cached, nil
		}
	}
	item, err := sl.Load(ctx, key, fallback, call)
	if err != nil {
		return item, err
	}
	s.remember(key, item)
	return item, nil
}

func writeThrough[T any](ctx context.Context, s *Service, sl *slice.Slice[T, string], key, fallback string, call func(context.Context) (T, error)) (T, error) {
	// the panel may not have been loaded yet; Update only refreshes a
	// selection that already exists
	item, err := sl.Update(ctx, key, fallback, call)
	if err != nil {
		return item, err
	}
	if _, ok := sl.Selected(); !ok {
		sl.Mutate(func(c *collection.Collection[T, string]) { c.SetSelected(item) })
	}
	s.remember(key, item)
	return item, nil
}

func (s *Service) remember(key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(store.BucketSettings, key, value, s.ttl); err != nil {
		s.logger.Warn("failed to cache settings", "key", key, "error", err)
	}
}
