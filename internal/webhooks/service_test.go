package webhooks

import (
	"context"
	"testing"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type fakeClient struct {
	domain.WebhookClient
}

func (fakeClient) ListWebhooks(context.Context) ([]domain.Webhook, error) {
	return []domain.Webhook{{ID: "w1", URL: "https://hooks.example.org/a", IsActive: true}}, nil
}

func (fakeClient) CreateWebhook(_ context.Context, w domain.Webhook) (domain.Webhook, error) {
	w.ID = "w2"
	return w, nil
}

func (fakeClient) TestWebhook(_ context.Context, id string) (domain.WebhookDelivery, error) {
	return domain.WebhookDelivery{ID: "d9", WebhookID: id, Event: "webhook.test", Status: "delivered", Attempts: 1}, nil
}

func (fakeClient) ListWebhookDeliveries(_ context.Context, id string) ([]domain.WebhookDelivery, error) {
	return []domain.WebhookDelivery{{ID: "d1", WebhookID: id, Status: "failed"}}, nil
}

func (fakeClient) ListAPIKeys(context.Context) ([]domain.APIKey, error) {
	return []domain.APIKey{{ID: "k1", Name: "old", Prefix: "kd_aa"}}, nil
}

func (fakeClient) CreateAPIKey(_ context.Context, name string, scopes []string) (domain.CreatedAPIKey, error) {
	return domain.CreatedAPIKey{APIKey: domain.APIKey{ID: "k2", Name: name, Prefix: "kd_bb", Scopes: scopes}, Key: "kd_bbsecret"}, nil
}

func (fakeClient) RevokeAPIKey(context.Context, string) error { return nil }

func TestWebhookLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(fakeClient{}, nil)
	be.Err(t, svc.FetchWebhooks(ctx), nil)

	created, err := svc.CreateWebhook(ctx, domain.Webhook{URL: "https://hooks.example.org/b"})
	be.Err(t, err, nil)
	items := svc.Webhooks().Items()
	be.Equal(t, len(items), 2)
	be.Equal(t, items[1].ID, created.ID)

	be.Err(t, svc.FetchDeliveries(ctx, "w1"), nil)
	delivery, err := svc.Test(ctx, "w1")
	be.Err(t, err, nil)
	be.Equal(t, svc.Deliveries().Items()[0].ID, delivery.ID)
	w, _ := svc.Webhooks().Get("w1")
	be.Equal(t, w.LastDeliveryStatus, "delivered")
}

func TestAPIKeyPlaintextIsNotStored(t *testing.T) {
	ctx := context.Background()
	svc := NewService(fakeClient{}, nil)
	be.Err(t, svc.FetchAPIKeys(ctx), nil)

	created, err := svc.CreateAPIKey(ctx, "zapier", []string{"contacts:read"})
	be.Err(t, err, nil)
	be.Equal(t, created.Key, "kd_bbsecret")

	keys := svc.APIKeys().Items()
	be.Equal(t, len(keys), 2)
	be.Equal(t, keys[0].ID, created.ID)
	be.Equal(t, keys[0].Prefix, "kd_bb")

	be.Err(t, svc.RevokeAPIKey(ctx, "k1"), nil)
	be.Equal(t, len(svc.APIKeys().Items()), 1)
}
