package crm

import (
	"context"
	"net/http"

	"github.com/mmcdole/kindred/internal/domain"
)

// ListContacts returns one page of contacts
func (c *Client) ListContacts(ctx context.Context, q domain.ListQuery) ([]domain.Contact, domain.Pagination, error) {
	return getList[domain.Contact](ctx, c, "/api/contacts", q.Values(), "contacts")
}

// GetContact returns a single contact
func (c *Client) GetContact(ctx context.Context, id string) (domain.Contact, error) {
	if err := requireID("contact", id); err != nil {
		return domain.Contact{}, err
	}
	return call[domain.Contact](ctx, c, http.MethodGet, escape("/api/contacts/%s", id), nil)
}

func (c *Client) CreateContact(ctx context.Context, ct domain.Contact) (domain.Contact, error) {
	return call[domain.Contact](ctx, c, http.MethodPost, "/api/contacts", ct)
}

func (c *Client) UpdateContact(ctx context.Context, ct domain.Contact) (domain.Contact, error) {
	if err := requireID("contact", ct.ContactID); err != nil {
		return domain.Contact{}, err
	}
	return call[domain.Contact](ctx, c, http.MethodPut, escape("/api/contacts/%s", ct.ContactID), ct)
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	if err := requireID("contact", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/contacts/%s", id), nil)
}

// ListPhones returns a contact's phone numbers
func (c *Client) ListPhones(ctx context.Context, contactID string) ([]domain.Phone, error) {
	return getAll[domain.Phone](ctx, c, escape("/api/contacts/%s/phones", contactID), "phones")
}

func (c *Client) CreatePhone(ctx context.Context, p domain.Phone) (domain.Phone, error) {
	if err := requireID("contact", p.ContactID); err != nil {
		return domain.Phone{}, err
	}
	return call[domain.Phone](ctx, c, http.MethodPost, escape("/api/contacts/%s/phones", p.ContactID), p)
}

func (c *Client) UpdatePhone(ctx context.Context, p domain.Phone) (domain.Phone, error) {
	if err := requireID("phone", p.ID); err != nil {
		return domain.Phone{}, err
	}
	return call[domain.Phone](ctx, c, http.MethodPut, escape("/api/contacts/%s/phones/%s", p.ContactID, p.ID), p)
}

func (c *Client) DeletePhone(ctx context.Context, contactID, phoneID string) error {
	if err := requireID("phone", phoneID); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/contacts/%s/phones/%s", contactID, phoneID), nil)
}

// ListEmails returns a contact's email addresses
func (c *Client) ListEmails(ctx context.Context, contactID string) ([]domain.Email, error) {
	return getAll[domain.Email](ctx, c, escape("/api/contacts/%s/emails", contactID), "emails")
}

func (c *Client) CreateEmail(ctx context.Context, e domain.Email) (domain.Email, error) {
	if err := requireID("contact", e.ContactID); err != nil {
		return domain.Email{}, err
	}
	return call[domain.Email](ctx, c, http.MethodPost, escape("/api/contacts/%s/emails", e.ContactID), e)
}

func (c *Client) UpdateEmail(ctx context.Context, e domain.Email) (domain.Email, error) {
	if err := requireID("email", e.ID); err != nil {
		return domain.Email{}, err
	}
	return call[domain.Email](ctx, c, http.MethodPut, escape("/api/contacts/%s/emails/%s", e.ContactID, e.ID), e)
}

func (c *Client) DeleteEmail(ctx context.Context, contactID, emailID string) error {
	if err := requireID("email", emailID); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/contacts/%s/emails/%s", contactID, emailID), nil)
}

// ListContactNotes returns a contact's notes, newest first
func (c *Client) ListContactNotes(ctx context.Context, contactID string) ([]domain.ContactNote, error) {
	return getAll[domain.ContactNote](ctx, c, escape("/api/contacts/%s/notes", contactID), "notes")
}

func (c *Client) CreateContactNote(ctx context.Context, n domain.ContactNote) (domain.ContactNote, error) {
	if err := requireID("contact", n.ContactID); err != nil {
		return domain.ContactNote{}, err
	}
	return call[domain.ContactNote](ctx, c, http.MethodPost, escape("/api/contacts/%s/notes", n.ContactID), n)
}

func (c *Client) DeleteContactNote(ctx context.Context, contactID, noteID string) error {
	if err := requireID("note", noteID); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/contacts/%s/notes/%s", contactID, noteID), nil)
}
