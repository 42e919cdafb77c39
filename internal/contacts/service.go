// Package contacts holds contact state: the contact list with its selected
// contact, and the phones, emails and notes of the selected contact.
package contacts

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates contact client calls and contact state.
type Service struct {
	client   domain.ContactClient
	contacts *slice.Slice[domain.Contact, string]
	phones   *slice.Slice[domain.Phone, string]
	emails   *slice.Slice[domain.Email, string]
	notes    *slice.Slice[domain.ContactNote, string]
	logger   *slog.Logger
}

// NewService creates a new contacts service.
func NewService(client domain.ContactClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		contacts: slice.New[domain.Contact, string]("contacts", contactKey, logger),
		phones:   slice.New[domain.Phone, string]("contact_phones", phoneKey, logger, slice.AppendNew[domain.Phone, string]()),
		emails:   slice.New[domain.Email, string]("contact_emails", emailKey, logger, slice.AppendNew[domain.Email, string]()),
		notes:    slice.New[domain.ContactNote, string]("contact_notes", noteKey, logger),
		logger:   logger,
	}
}

func contactKey(c domain.Contact) string { return c.ContactID }
func phoneKey(p domain.Phone) string { return p.ID }
func emailKey(e domain.Email) string { return e.ID }
func noteKey(n domain.ContactNote) string { return n.ID }

// Contacts returns the contact list state
func (s *Service) Contacts() *slice.Slice[domain.Contact, string] { return s.contacts }

// Phones returns the selected contact's phone state
func (s *Service) Phones() *slice.Slice[domain.Phone, string] { return s.phones }

// Emails returns the selected contact's email state
func (s *Service) Emails() *slice.Slice[domain.Email, string] { return s.emails }

// Notes returns the selected contact's note state
func (s *Service) Notes() *slice.Slice[domain.ContactNote, string] { return s.notes }

func (s *Service) FetchContacts(ctx context.Context, q domain.ListQuery) error {
	return s.contacts.Fetch(ctx, "Failed to fetch contacts", func(ctx context.Context) ([]domain.Contact, domain.Pagination, error) {
		return s.client.ListContacts(ctx, q)
	})
}

// LoadContact fetches one contact and makes it the current contact
func (s *Service) LoadContact(ctx context.Context, id string) (domain.Contact, error) {
	return s.contacts.Load(ctx, id, "Failed to fetch contact", func(ctx context.Context) (domain.Contact, error) {
		return s.client.GetContact(ctx, id)
	})
}

// CreateContact creates a contact and puts it at the top of the list
func (s *Service) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	return s.contacts.Create(ctx, "Failed to create contact", func(ctx context.Context) (domain.Contact, error) {
		return s.client.CreateContact(ctx, c)
	})
}

func (s *Service) UpdateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	return s.contacts.Update(ctx, c.ContactID, "Failed to update contact", func(ctx context.Context) (domain.Contact, error) {
		return s.client.UpdateContact(ctx, c)
	})
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id, "Failed to delete contact", func(ctx context.Context) error {
		return s.client.DeleteContact(ctx, id)
	})
}

// ClearCurrent drops the current contact and its child lists
func (s *Service) ClearCurrent() {
	s.contacts.ClearSelection()
	s.phones.Reset()
	s.emails.Reset()
	s.notes.Reset()
}

// Phones

func (s *Service) FetchPhones(ctx context.Context, contactID string) error {
	return s.phones.Fetch(ctx, "Failed to fetch phone numbers", slice.Unpaged(func(ctx context.Context) ([]domain.Phone, error) {
		return s.client.ListPhones(ctx, contactID)
	}))
}

func (s *Service) AddPhone(ctx context.Context, p domain.Phone) (domain.Phone, error) {
	return s.phones.Create(ctx, "Failed to add phone number", func(ctx context.Context) (domain.Phone, error) {
		return s.client.CreatePhone(ctx, p)
	})
}

func (s *Service) UpdatePhone(ctx context.Context, p domain.Phone) (domain.Phone, error) {
	return s.phones.Update(ctx, p.ID, "Failed to update phone number", func(ctx context.Context) (domain.Phone, error) {
		return s.client.UpdatePhone(ctx, p)
	})
}

func (s *Service) DeletePhone(ctx context.Context, contactID, phoneID string) error {
	return s.phones.Delete(ctx, phoneID, "Failed to delete phone number", func(ctx context.Context) error {
		return s.client.DeletePhone(ctx, contactID, phoneID)
	})
}

// Emails

func (s *Service) FetchEmails(ctx context.Context, contactID string) error {
	return s.emails.Fetch(ctx, "Failed to fetch email addresses", slice.Unpaged(func(ctx context.Context) ([]domain.Email, error) {
		return s.client.ListEmails(ctx, contactID)
	}))
}

func (s *Service) AddEmail(ctx context.Context, e domain.Email) (domain.Email, error) {
	return s.emails.Create(ctx, "Failed to add email address", func(ctx context.Context) (domain.Email, error) {
		return s.client.CreateEmail(ctx, e)
	})
}

func (s *Service) UpdateEmail(ctx context.Context, e domain.Email) (domain.Email, error) {
	return s.emails.Update(ctx, e.ID, "Failed to update email address", func(ctx context.Context) (domain.Email, error) {
		return s.client.UpdateEmail(ctx, e)
	})
}

func (s *Service) DeleteEmail(ctx context.Context, contactID, emailID string) error {
	return s.emails.Delete(ctx, emailID, "Failed to delete email address", func(ctx context.Context) error {
		return s.client.DeleteEmail(ctx, contactID, emailID)
	})
}

// Notes

func (s *Service) FetchNotes(ctx context.Context, contactID string) error {
	return s.notes.Fetch(ctx, "Failed to fetch notes", slice.Unpaged(func(ctx context.Context) ([]domain.ContactNote, error) {
		return s.client.ListContactNotes(ctx, contactID)
	}))
}

// AddNote creates a note and bumps notes_count on the current contact when
// the note belongs to it
func (s *Service) AddNote(ctx context.Context, n domain.ContactNote) (domain.ContactNote, error) {
	note, err := s.notes.Create(ctx, "Failed to add note", func(ctx context.Context) (domain.ContactNote, error) {
		return s.client.CreateContactNote(ctx, n)
	})
	if err != nil {
		return note, err
	}
	s.adjustNotesCount(note.ContactID, collection.Increment)
	return note, nil
}

// DeleteNote removes a note and lowers notes_count on the current contact,
// never below zero
func (s *Service) DeleteNote(ctx context.Context, contactID, noteID string) error {
	err := s.notes.Delete(ctx, noteID, "Failed to delete note", func(ctx context.Context) error {
		return s.client.DeleteContactNote(ctx, contactID, noteID)
	})
	if err != nil {
		return err
	}
	s.adjustNotesCount(contactID, collection.Decrement)
	return nil
}

func (s *Service) adjustNotesCount(contactID string, step func(int) int) {
	if current, ok := s.contacts.SelectedKey(); !ok || current != contactID {
		return
	}
	s.contacts.Patch(contactID, func(c domain.Contact) domain.Contact {
		c.NotesCount = step(c.NotesCount)
		return c
	})
}
