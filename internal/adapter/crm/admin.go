package crm

import (
	"context"
	"net/http"

	"github.com/mmcdole/kindred/internal/domain"
)

// Webhooks

func (c *Client) ListWebhooks(ctx context.Context) ([]domain.Webhook, error) {
	return getAll[domain.Webhook](ctx, c, "/api/webhooks", "webhooks")
}

func (c *Client) CreateWebhook(ctx context.Context, w domain.Webhook) (domain.Webhook, error) {
	return call[domain.Webhook](ctx, c, http.MethodPost, "/api/webhooks", w)
}

func (c *Client) UpdateWebhook(ctx context.Context, w domain.Webhook) (domain.Webhook, error) {
	if err := requireID("webhook", w.ID); err != nil {
		return domain.Webhook{}, err
	}
	return call[domain.Webhook](ctx, c, http.MethodPut, escape("/api/webhooks/%s", w.ID), w)
}

func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	if err := requireID("webhook", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/webhooks/%s", id), nil)
}

// TestWebhook asks the server to send a test event and returns the delivery
func (c *Client) TestWebhook(ctx context.Context, id string) (domain.WebhookDelivery, error) {
	if err := requireID("webhook", id); err != nil {
		return domain.WebhookDelivery{}, err
	}
	return call[domain.WebhookDelivery](ctx, c, http.MethodPost, escape("/api/webhooks/%s/test", id), nil)
}

func (c *Client) ListWebhookDeliveries(ctx context.Context, webhookID string) ([]domain.WebhookDelivery, error) {
	if err := requireID("webhook", webhookID); err != nil {
		return nil, err
	}
	return getAll[domain.WebhookDelivery](ctx, c, escape("/api/webhooks/%s/deliveries", webhookID), "deliveries")
}

// API keys

func (c *Client) ListAPIKeys(ctx context.Context) ([]domain.APIKey, error) {
	return getAll[domain.APIKey](ctx, c, "/api/webhooks/api-keys", "api_keys")
}

// CreateAPIKey issues a key. The plaintext is only present in this response.
func (c *Client) CreateAPIKey(ctx context.Context, name string, scopes []string) (domain.CreatedAPIKey, error) {
	body := struct {
		Name   string   `json:"name"`
		Scopes []string `json:"scopes,omitempty"`
	}{name, scopes}
	return call[domain.CreatedAPIKey](ctx, c, http.MethodPost, "/api/webhooks/api-keys", body)
}

func (c *Client) RevokeAPIKey(ctx context.Context, id string) error {
	if err := requireID("api key", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/webhooks/api-keys/%s", id), nil)
}

// Settings panels

func (c *Client) GetOrganization(ctx context.Context) (domain.OrganizationProfile, error) {
	return call[domain.OrganizationProfile](ctx, c, http.MethodGet, "/api/admin/organization", nil)
}

func (c *Client) UpdateOrganization(ctx context.Context, p domain.OrganizationProfile) (domain.OrganizationProfile, error) {
	return call[domain.OrganizationProfile](ctx, c, http.MethodPut, "/api/admin/organization", p)
}

func (c *Client) GetBranding(ctx context.Context) (domain.Branding, error) {
	return call[domain.Branding](ctx, c, http.MethodGet, "/api/admin/branding", nil)
}

func (c *Client) UpdateBranding(ctx context.Context, b domain.Branding) (domain.Branding, error) {
	return call[domain.Branding](ctx, c, http.MethodPut, "/api/admin/branding", b)
}

func (c *Client) GetEmailSettings(ctx context.Context) (domain.EmailSettings, error) {
	return call[domain.EmailSettings](ctx, c, http.MethodGet, "/api/admin/email-settings", nil)
}

func (c *Client) UpdateEmailSettings(ctx context.Context, s domain.EmailSettings) (domain.EmailSettings, error) {
	return call[domain.EmailSettings](ctx, c, http.MethodPut, "/api/admin/email-settings", s)
}

func (c *Client) GetSMSSettings(ctx context.Context) (domain.SMSSettings, error) {
	return call[domain.SMSSettings](ctx, c, http.MethodGet, "/api/admin/sms-settings", nil)
}

func (c *Client) UpdateSMSSettings(ctx context.Context, s domain.SMSSettings) (domain.SMSSettings, error) {
	return call[domain.SMSSettings](ctx, c, http.MethodPut, "/api/admin/sms-settings", s)
}
