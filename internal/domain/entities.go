package domain

import (
	"strings"
	"time"
)

// Contact is a person tracked by the organization
type Contact struct {
	ContactID  string    `json:"contact_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	AccountID  string    `json:"account_id,omitempty"`
	NotesCount int       `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

// FullName joins first and last name, skipping blanks
func (c Contact) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Phone is one of a contact's phone numbers
type Phone struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Number    string `json:"number"`
	Label     string `json:"label,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Email is one of a contact's email addresses
type Email struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Address   string `json:"address"`
	Label     string `json:"label,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ContactNote is a free-text note attached to a contact
type ContactNote struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Account is an organization or household contacts can belong to
type Account struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"` // "organization", "household", ...
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Volunteer links a contact to volunteering details
type Volunteer struct {
	VolunteerID string   `json:"volunteer_id"`
	ContactID   string   `json:"contact_id"`
	Name        string   `json:"name"`
	Skills      []string `json:"skills,omitempty"`
	Status      string   `json:"status"`
	HoursTotal  float64  `json:"hours_total"`
}

// Event is a scheduled gathering contacts can register for
type Event struct {
	EventID         string    `json:"event_id"`
	Name            string    `json:"name"`
	StartsAt        time.Time `json:"starts_at,omitzero"`
	EndsAt          time.Time `json:"ends_at,omitzero"`
	Location        string    `json:"location,omitempty"`
	Capacity        int       `json:"capacity,omitempty"`
	RegisteredCount int       `json:"registered_count"`
	AttendedCount   int       `json:"attended_count"`
}

// IsFull reports whether the event has reached capacity (0 = unlimited)
func (e Event) IsFull() bool {
	return e.Capacity > 0 && e.RegisteredCount >= e.Capacity
}

// Registration statuses
const (
	RegistrationRegistered = "registered"
	RegistrationCancelled  = "cancelled"
	RegistrationAttended   = "attended"
)

// Registration is a contact's sign-up for an event
type Registration struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	ContactID      string `json:"contact_id"`
	Status         string `json:"status"`
	CheckedIn      bool   `json:"checked_in"`
}

// Case is a unit of client service work
type Case struct {
	ID         string    `json:"id"`
	CaseNumber string    `json:"case_number"`
	Title      string    `json:"title"`
	ContactID  string    `json:"contact_id,omitempty"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority,omitempty"`
	NotesCount int       `json:"notes_count"`
	OutcomeID  string    `json:"outcome_id,omitempty"`
	OpenedAt   time.Time `json:"opened_at,omitzero"`
}

// CaseNote is a note recorded against a case
type CaseNote struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Donation is a single gift
type Donation struct {
	DonationID string    `json:"donation_id"`
	ContactID  string    `json:"contact_id,omitempty"`
	AccountID  string    `json:"account_id,omitempty"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	DonatedAt  time.Time `json:"donated_at,omitzero"`
	Method     string    `json:"method,omitempty"`
	Campaign   string    `json:"campaign,omitempty"`
}

// OutcomeDefinition is an admin-defined case outcome, shown in SortOrder
type OutcomeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

// Follow-up statuses
const (
	FollowUpPending   = "pending"
	FollowUpCompleted = "completed"
)

// FollowUp is a reminder attached to any entity
type FollowUp struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"` // "contact", "case", ...
	EntityID   string    `json:"entity_id"`
	Title      string    `json:"title"`
	DueAt      time.Time `json:"due_at,omitzero"`
	Status     string    `json:"status"`
}

// Webhook is an outbound event subscription managed server-side
type Webhook struct {
	ID                 string   `json:"id"`
	URL                string   `json:"url"`
	Events             []string `json:"events"`
	IsActive           bool     `json:"is_active"`
	SecretLast4        string   `json:"secret_last4,omitempty"`
	LastDeliveryStatus string   `json:"last_delivery_status,omitempty"`
}

// WebhookDelivery is one delivery attempt record
type WebhookDelivery struct {
	ID          string    `json:"id"`
	WebhookID   string    `json:"webhook_id"`
	Event       string    `json:"event"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	DeliveredAt time.Time `json:"delivered_at,omitzero"`
}

// APIKey describes an issued key; the secret itself is never listed
type APIKey struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Prefix     string    `json:"prefix"`
	Scopes     []string  `json:"scopes,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}

// CreatedAPIKey carries the plaintext key, returned exactly once on creation
type CreatedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// OrganizationProfile holds the organization's public details
type OrganizationProfile struct {
	Name      string `json:"name"`
	LegalName string `json:"legal_name,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// Branding holds theme settings
type Branding struct {
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	AppName        string `json:"app_name,omitempty"`
}

// EmailSettings configures the outbound email provider
type EmailSettings struct {
	Provider     string `json:"provider"`
	FromAddress  string `json:"from_address"`
	FromName     string `json:"from_name,omitempty"`
	SMTPHost     string `json:"smtp_host,omitempty"`
	SMTPPort     int    `json:"smtp_port,omitempty"`
	IsConfigured bool   `json:"is_configured"`
}

// SMSSettings configures the SMS provider
type SMSSettings struct {
	Provider     string `json:"provider"`
	AccountSID   string `json:"account_sid,omitempty"`
	FromNumber   string `json:"from_number,omitempty"`
	IsConfigured bool   `json:"is_configured"`
}
