package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/store"
	"github.com/nalgeon/be"
)

type fakeClient struct {
	domain.SettingsClient
	org      domain.OrganizationProfile
	orgCalls int
	smsErr   error
}

func (f *fakeClient) GetOrganization(context.Context) (domain.OrganizationProfile, error) {
	f.orgCalls++
	return f.org, nil
}

func (f *fakeClient) UpdateOrganization(_ context.Context, p domain.OrganizationProfile) (domain.OrganizationProfile, error) {
	f.org = p
	return p, nil
}

func (f *fakeClient) GetSMSSettings(context.Context) (domain.SMSSettings, error) {
	return domain.SMSSettings{}, f.smsErr
}

func newTestService(t *testing.T, client *fakeClient) *Service {
	t.Helper()
	cache, err := store.Open("", "https://crm.example.org")
	be.Err(t, err, nil)
	t.Cleanup(func() { cache.Close() })
	return NewService(client, cache, time.Hour, nil)
}

func TestLoadIsCached(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{org: domain.OrganizationProfile{Name: "Harbor Food Bank"}}
	svc := newTestService(t, client)

	got, err := svc.LoadOrganization(ctx)
	be.Err(t, err, nil)
	be.Equal(t, got.Name, "Harbor Food Bank")

	got, err = svc.LoadOrganization(ctx)
	be.Err(t, err, nil)
	be.Equal(t, got.Name, "Harbor Food Bank")
	be.Equal(t, client.orgCalls, 1)

	sel, ok := svc.Organization().Selected()
	be.True(t, ok)
	be.Equal(t, sel.Name, "Harbor Food Bank")
}

func TestUpdateWritesThrough(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{org: domain.OrganizationProfile{Name: "Harbor Food Bank"}}
	svc := newTestService(t, client)

	_, err := svc.UpdateOrganization(ctx, domain.OrganizationProfile{Name: "Harbor Pantry", Timezone: "UTC"})
	be.Err(t, err, nil)
	sel, ok := svc.Organization().Selected()
	be.True(t, ok)
	be.Equal(t, sel.Name, "Harbor Pantry")

	got, err := svc.LoadOrganization(ctx)
	be.Err(t, err, nil)
	be.Equal(t, got.Timezone, "UTC")
	be.Equal(t, client.orgCalls, 0)
}

func TestInvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{org: domain.OrganizationProfile{Name: "Harbor Food Bank"}}
	svc := newTestService(t, client)

	_, _ = svc.LoadOrganization(ctx)
	svc.Invalidate()
	_, _ = svc.LoadOrganization(ctx)
	be.Equal(t, client.orgCalls, 2)
}

func TestLoadFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{smsErr: errors.New("boom")}
	svc := newTestService(t, client)

	_, err := svc.LoadSMSSettings(ctx)
	be.True(t, err != nil)
	be.Equal(t, svc.SMS().Snapshot().Error, "Failed to load SMS settings")

	client.smsErr = nil
	_, err = svc.LoadSMSSettings(ctx)
	be.Err(t, err, nil)
	be.True(t, !svc.SMS().Snapshot().HasError())
}

func TestWithoutCacheAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	svc := NewService(client, nil, time.Hour, nil)

	_, _ = svc.LoadOrganization(ctx)
	_, _ = svc.LoadOrganization(ctx)
	be.Equal(t, client.orgCalls, 2)
}
