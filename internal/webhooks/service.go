package webhooks

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates webhook and API key client calls and their state.
type Service struct {
	client     domain.WebhookClient
	webhooks   *slice.Slice[domain.Webhook, string]
	deliveries *slice.Slice[domain.WebhookDelivery, string]
	apiKeys    *slice.Slice[domain.APIKey, string]
	logger     *slog.Logger
}

// NewService creates a new webhooks service.
func NewService(client domain.WebhookClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:     client,
		webhooks:   slice.New[domain.Webhook, string]("webhooks", webhookKey, logger, slice.AppendNew[domain.Webhook, string]()),
		deliveries: slice.New[domain.WebhookDelivery, string]("webhook_deliveries", deliveryKey, logger),
		apiKeys:    slice.New[domain.APIKey, string]("api_keys", apiKeyKey, logger),
		logger:     logger,
	}
}

func webhookKey(w domain.Webhook) string { return w.ID }

func deliveryKey(d domain.WebhookDelivery) string { return d.ID }

func apiKeyKey(k domain.APIKey) string { return k.ID }

// Webhooks returns the webhook list state
func (s *Service) Webhooks() *slice.Slice[domain.Webhook, string] { return s.webhooks }

// Deliveries returns the delivery log state of the selected webhook
func (s *Service) Deliveries() *slice.Slice[domain.WebhookDelivery, string] { return s.deliveries }

// APIKeys returns the API key list state
func (s *Service) APIKeys() *slice.Slice[domain.APIKey, string] { return s.apiKeys }

func (s *Service) FetchWebhooks(ctx context.Context) error {
	return s.webhooks.Fetch(ctx, "Failed to fetch webhooks", slice.Unpaged(s.client.ListWebhooks))
}

func (s *Service) CreateWebhook(ctx context.Context, w domain.Webhook) (domain.Webhook, error) {
	return s.webhooks.Create(ctx, "Failed to create webhook", func(ctx context.Context) (domain.Webhook, error) {
		return s.client.CreateWebhook(ctx, w)
	})
}

func (s *Service) UpdateWebhook(ctx context.Context, w domain.Webhook) (domain.Webhook, error) {
	return s.webhooks.Update(ctx, w.ID, "Failed to update webhook", func(ctx context.Context) (domain.Webhook, error) {
		return s.client.UpdateWebhook(ctx, w)
	})
}

func (s *Service) DeleteWebhook(ctx context.Context, id string) error {
	return s.webhooks.Delete(ctx, id, "Failed to delete webhook", func(ctx context.Context) error {
		return s.client.DeleteWebhook(ctx, id)
	})
}

// Test sends a test event. The resulting delivery is put at the top of the
// delivery log and its status is copied onto the webhook.
func (s *Service) Test(ctx context.Context, id string) (domain.WebhookDelivery, error) {
	delivery, err := s.deliveries.Create(ctx, "Failed to send test event", func(ctx context.Context) (domain.WebhookDelivery, error) {
		return s.client.TestWebhook(ctx, id)
	})
	if err != nil {
		return delivery, err
	}
	s.webhooks.Patch(id, func(w domain.Webhook) domain.Webhook {
		w.LastDeliveryStatus = delivery.Status
		return w
	})
	return delivery, nil
}

func (s *Service) FetchDeliveries(ctx context.Context, webhookID string) error {
	return s.deliveries.Fetch(ctx, "Failed to fetch deliveries", slice.Unpaged(func(ctx context.Context) ([]domain.WebhookDelivery, error) {
		return s.client.ListWebhookDeliveries(ctx, webhookID)
	}))
}

// API keys

func (s *Service) FetchAPIKeys(ctx context.Context) error {
	return s.apiKeys.Fetch(ctx, "Failed to fetch API keys", slice.Unpaged(s.client.ListAPIKeys))
}

// CreateAPIKey issues a key. The plaintext is returned to the caller only;
// the stored list holds the key's metadata.
func (s *Service) CreateAPIKey(ctx context.Context, name string, scopes []string) (domain.CreatedAPIKey, error) {
	var created domain.CreatedAPIKey
	_, err := s.apiKeys.Create(ctx, "Failed to create API key", func(ctx context.Context) (domain.APIKey, error) {
		var err error
		created, err = s.client.CreateAPIKey(ctx, name, scopes)
		return created.APIKey, err
	})
	return created, err
}

func (s *Service) RevokeAPIKey(ctx context.Context, id string) error {
	return s.apiKeys.Delete(ctx, id, "Failed to revoke API key", func(ctx context.Context) error {
		return s.client.RevokeAPIKey(ctx, id)
	})
}
