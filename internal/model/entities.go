// Package model defines the persistent entities of the lead-generation
// pipeline and the merge policies applied when a stage re-discovers an
// entity that already exists in the store.
package model

import "time"

// Event is a trade show or similar industry event discovered during lead
// generation. Name is the upsert key.
type Event struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	EventType      string     `json:"event_type,omitempty"`
	Description    string     `json:"description,omitempty"`
	Website        string     `json:"website,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Location       string     `json:"location,omitempty"`
	RelevanceScore *float64   `json:"relevance_score,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	LastUpdated    time.Time  `json:"last_updated"`
}

// Association is an industry trade association. Name is the upsert key.
type Association struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Industry       string    `json:"industry,omitempty"`
	Description    string    `json:"description,omitempty"`
	Website        string    `json:"website,omitempty"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Company is a candidate customer. Name is the upsert key. EstimatedRevenue
// and CompanySize are free-form strings as extracted from external sources
// ("$1,500,000", "38,000"); prioritization coerces them to numbers.
type Company struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Industry         string    `json:"industry,omitempty"`
	Description      string    `json:"description,omitempty"`
	Website          string    `json:"website,omitempty"`
	EstimatedRevenue string    `json:"estimated_revenue,omitempty"`
	CompanySize      string    `json:"company_size,omitempty"`
	RelevanceScore   *float64  `json:"relevance_score,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
}

// Person is an executive contact at a company. A person is identified by
// (Name, CompanyID); the same name at two companies is two people.
type Person struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Name           string    `json:"name"`
	Title          string    `json:"title,omitempty"`
	Division       string    `json:"division,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	LinkedIn       string    `json:"linkedin,omitempty"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Message statuses. Only draft is produced today; sent/responded exist for
// the eventual delivery integration.
const (
	MessageStatusDraft     = "draft"
	MessageStatusSent      = "sent"
	MessageStatusResponded = "responded"
)

// MessageTypeLinkedInConnect tags LinkedIn connection-request drafts. The
// drafting stage generates at most one message of this type per person.
const MessageTypeLinkedInConnect = "linkedin_connect"

// Message is a generated outreach draft belonging to one person.
type Message struct {
	ID          string     `json:"id"`
	PersonID    string     `json:"person_id"`
	MessageType string     `json:"message_type"`
	Subject     string     `json:"subject,omitempty"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// SearchQuery is a write-only audit record of a generated search phrase.
type SearchQuery struct {
	ID           string    `json:"id"`
	QueryText    string    `json:"query_text"`
	QuerySource  string    `json:"query_source,omitempty"`
	ResultsCount int       `json:"results_count"`
	CreatedAt    time.Time `json:"created_at"`
	Notes        string    `json:"notes,omitempty"`
}

// PersonWithCompany joins a person to their company for the outreach and
// export stages.
type PersonWithCompany struct {
	Person
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description,omitempty"`
}

// MessageRow joins a message to its person and company for export.
type MessageRow struct {
	Message
	PersonName     string   `json:"person_name"`
	PersonTitle    string   `json:"person_title,omitempty"`
	Division       string   `json:"division,omitempty"`
	Email          string   `json:"email,omitempty"`
	LinkedIn       string   `json:"linkedin,omitempty"`
	CompanyName    string   `json:"company_name"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Score returns the dereferenced relevance score or 0 when unset.
func Score(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}

// ScoreRef returns a pointer to v, for literals in call sites and tests.
func ScoreRef(v float64) *float64 { return &v }
