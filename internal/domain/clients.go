package domain

import "context"

// Clients are network operations, implemented by the REST adapter.
// Each method issues exactly one request.

// ContactClient covers contacts and their child lists
type ContactClient interface {
	ListContacts(ctx context.Context, q ListQuery) ([]Contact, Pagination, error)
	GetContact(ctx context.Context, id string) (Contact, error)
	CreateContact(ctx context.Context, c Contact) (Contact, error)
	UpdateContact(ctx context.Context, c Contact) (Contact, error)
	DeleteContact(ctx context.Context, id string) error

	ListPhones(ctx context.Context, contactID string) ([]Phone, error)
	CreatePhone(ctx context.Context, p Phone) (Phone, error)
	UpdatePhone(ctx context.Context, p Phone) (Phone, error)
	DeletePhone(ctx context.Context, contactID, phoneID string) error

	ListEmails(ctx context.Context, contactID string) ([]Email, error)
	CreateEmail(ctx context.Context, e Email) (Email, error)
	UpdateEmail(ctx context.Context, e Email) (Email, error)
	DeleteEmail(ctx context.Context, contactID, emailID string) error

	ListContactNotes(ctx context.Context, contactID string) ([]ContactNote, error)
	CreateContactNote(ctx context.Context, n ContactNote) (ContactNote, error)
	DeleteContactNote(ctx context.Context, contactID, noteID string) error
}

// AccountClient covers accounts
type AccountClient interface {
	ListAccounts(ctx context.Context, q ListQuery) ([]Account, Pagination, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	CreateAccount(ctx context.Context, a Account) (Account, error)
	UpdateAccount(ctx context.Context, a Account) (Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// VolunteerClient covers volunteers
type VolunteerClient interface {
	ListVolunteers(ctx context.Context, q ListQuery) ([]Volunteer, Pagination, error)
	GetVolunteer(ctx context.Context, id string) (Volunteer, error)
	CreateVolunteer(ctx context.Context, v Volunteer) (Volunteer, error)
	UpdateVolunteer(ctx context.Context, v Volunteer) (Volunteer, error)
	DeleteVolunteer(ctx context.Context, id string) error
	LogVolunteerHours(ctx context.Context, id string, hours float64) (Volunteer, error)
}

// EventClient covers events and registrations
type EventClient interface {
	ListEvents(ctx context.Context, q ListQuery) ([]Event, Pagination, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, e Event) (Event, error)
	UpdateEvent(ctx context.Context, e Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListRegistrations(ctx context.Context, eventID string) ([]Registration, error)
	RegisterContact(ctx context.Context, eventID, contactID string) (Registration, error)
	CancelRegistration(ctx context.Context, registrationID string) (Registration, error)
	CheckIn(ctx context.Context, registrationID string) (Registration, error)
}

// CaseClient covers cases and case notes
type CaseClient interface {
	ListCases(ctx context.Context, q ListQuery) ([]Case, Pagination, error)
	GetCase(ctx context.Context, id string) (Case, error)
	CreateCase(ctx context.Context, c Case) (Case, error)
	UpdateCase(ctx context.Context, c Case) (Case, error)
	UpdateCaseStatus(ctx context.Context, id, status string) (Case, error)
	DeleteCase(ctx context.Context, id string) error

	ListCaseNotes(ctx context.Context, caseID string) ([]CaseNote, error)
	CreateCaseNote(ctx context.Context, n CaseNote) (CaseNote, error)
	DeleteCaseNote(ctx context.Context, caseID, noteID string) error
}

// DonationClient covers donations
type DonationClient interface {
	ListDonations(ctx context.Context, q ListQuery) ([]Donation, Pagination, error)
	GetDonation(ctx context.Context, id string) (Donation, error)
	CreateDonation(ctx context.Context, d Donation) (Donation, error)
	UpdateDonation(ctx context.Context, d Donation) (Donation, error)
	DeleteDonation(ctx context.Context, id string) error
}

// OutcomeClient covers outcome definitions
type OutcomeClient interface {
	ListOutcomes(ctx context.Context) ([]OutcomeDefinition, error)
	CreateOutcome(ctx context.Context, o OutcomeDefinition) (OutcomeDefinition, error)
	UpdateOutcome(ctx context.Context, o OutcomeDefinition) (OutcomeDefinition, error)
	DeleteOutcome(ctx context.Context, id string) error
	ReorderOutcomes(ctx context.Context, orderedIDs []string) ([]OutcomeDefinition, error)
}

// FollowUpClient covers follow-ups
type FollowUpClient interface {
	ListFollowUps(ctx context.Context, q ListQuery) ([]FollowUp, Pagination, error)
	CreateFollowUp(ctx context.Context, f FollowUp) (FollowUp, error)
	UpdateFollowUp(ctx context.Context, f FollowUp) (FollowUp, error)
	CompleteFollowUp(ctx context.Context, id string) (FollowUp, error)
	DeleteFollowUp(ctx context.Context, id string) error
}

// WebhookClient covers webhooks and API keys
type WebhookClient interface {
	ListWebhooks(ctx context.Context) ([]Webhook, error)
	CreateWebhook(ctx context.Context, w Webhook) (Webhook, error)
	UpdateWebhook(ctx context.Context, w Webhook) (Webhook, error)
	DeleteWebhook(ctx context.Context, id string) error
	TestWebhook(ctx context.Context, id string) (WebhookDelivery, error)
	ListWebhookDeliveries(ctx context.Context, webhookID string) ([]WebhookDelivery, error)

	ListAPIKeys(ctx context.Context) ([]APIKey, error)
	CreateAPIKey(ctx context.Context, name string, scopes []string) (CreatedAPIKey, error)
	RevokeAPIKey(ctx context.Context, id string) error
}

// SettingsClient covers admin settings panels
type SettingsClient interface {
	GetOrganization(ctx context.Context) (OrganizationProfile, error)
	UpdateOrganization(ctx context.Context, p OrganizationProfile) (OrganizationProfile, error)
	GetBranding(ctx context.Context) (Branding, error)
	UpdateBranding(ctx context.Context, b Branding) (Branding, error)
	GetEmailSettings(ctx context.Context) (EmailSettings, error)
	UpdateEmailSettings(ctx context.Context, s EmailSettings) (EmailSettings, error)
	GetSMSSettings(ctx context.Context) (SMSSettings, error)
	UpdateSMSSettings(ctx context.Context, s SMSSettings) (SMSSettings, error)
}

// CRMClient is everything the REST adapter implements
type CRMClient interface {
	ContactClient
	AccountClient
	VolunteerClient
	EventClient
	CaseClient
	DonationClient
	OutcomeClient
	FollowUpClient
	WebhookClient
	SettingsClient
}
