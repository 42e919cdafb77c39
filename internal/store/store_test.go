package store

import (
	"testing"
	"time"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func openTestCache(t *testing.T, dir string) (*Cache, *fakeClock) {
	t.Helper()
	c, err := Open(dir, "https://crm.example.org")
	be.Err(t, err, nil)
	t.Cleanup(func() { c.Close() })
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	c.now = clock.now
	return c, clock
}

func TestSetGetRespectsTTL(t *testing.T) {
	for _, dir := range []string{"", t.TempDir()} {
		c, clock := openTestCache(t, dir)

		org := domain.OrganizationProfile{Name: "Harbor Food Bank", Timezone: "America/Chicago"}
		be.Err(t, c.Set(BucketSettings, "organization", org, time.Minute), nil)

		var got domain.OrganizationProfile
		be.True(t, c.Get(BucketSettings, "organization", &got))
		be.Equal(t, got, org)

		clock.advance(59 * time.Second)
		be.True(t, c.Get(BucketSettings, "organization", &got))

		clock.advance(time.Second)
		be.True(t, !c.Get(BucketSettings, "organization", &got))
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c, clock := openTestCache(t, "")
	be.Err(t, c.Set(BucketLists, "outcomes", []string{"a"}, 0), nil)
	clock.advance(24 * time.Hour)
	var got []string
	be.True(t, c.Get(BucketLists, "outcomes", &got))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir, "https://crm.example.org/")
	be.Err(t, err, nil)
	be.Err(t, c.Set(BucketSettings, "branding", domain.Branding{AppName: "Harbor"}, time.Hour), nil)
	be.Err(t, c.Close(), nil)

	reopened, err := Open(dir, "https://CRM.example.org")
	be.Err(t, err, nil)
	defer reopened.Close()
	var got domain.Branding
	be.True(t, reopened.Get(BucketSettings, "branding", &got))
	be.Equal(t, got.AppName, "Harbor")

	other, err := Open(dir, "https://other.example.org")
	be.Err(t, err, nil)
	defer other.Close()
	be.True(t, !other.Get(BucketSettings, "branding", &got))
}

func TestInvalidation(t *testing.T) {
	c, _ := openTestCache(t, t.TempDir())
	for _, key := range []string{"contacts:p1", "contacts:p2", "events:p1"} {
		be.Err(t, c.Set(BucketLists, key, key, time.Hour), nil)
	}
	be.Err(t, c.Set(BucketSettings, "sms", domain.SMSSettings{Provider: "twilio"}, time.Hour), nil)

	var s string
	c.InvalidatePrefix(BucketLists, "contacts:")
	be.True(t, !c.Get(BucketLists, "contacts:p1", &s))
	be.True(t, !c.Get(BucketLists, "contacts:p2", &s))
	be.True(t, c.Get(BucketLists, "events:p1", &s))

	c.Invalidate(BucketLists, "events:p1")
	be.True(t, !c.Get(BucketLists, "events:p1", &s))

	var sms domain.SMSSettings
	be.True(t, c.Get(BucketSettings, "sms", &sms))
	c.InvalidateAll()
	be.True(t, !c.Get(BucketSettings, "sms", &sms))
}

func TestUnknownBucket(t *testing.T) {
	c, _ := openTestCache(t, "")
	be.Err(t, c.Set("nope", "k", 1, time.Minute))
}
