// Package store persists pipeline entities to a relational database. Two
// backends implement the same interface: SQLite (default, local runs) and
// Postgres (shared deployments). Writes commit per record, so a crashed
// stage leaves a resumable prefix; all upserts are keyed by natural name so
// re-running a stage merges instead of duplicating.
package store

import (
	"context"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Store defines the persistence interface for the lead-generation pipeline.
// Merge policies live in internal/model and are applied by callers; the
// store exposes plain lookup, create, and update primitives plus idempotent
// link insertion. Lookups return (nil, nil) when no row matches.
type Store interface {
	// Events
	GetEventByName(ctx context.Context, name string) (*model.Event, error)
	CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	TopEvents(ctx context.Context, limit int) ([]model.Event, error)

	// Associations
	GetAssociationByName(ctx context.Context, name string) (*model.Association, error)
	CreateAssociation(ctx context.Context, a *model.Association) (*model.Association, error)
	UpdateAssociation(ctx context.Context, a *model.Association) error
	TopAssociations(ctx context.Context, limit int) ([]model.Association, error)

	// Companies
	GetCompanyByName(ctx context.Context, name string) (*model.Company, error)
	CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error)
	UpdateCompany(ctx context.Context, c *model.Company) error
	ListCompanies(ctx context.Context) ([]model.Company, error)
	TopCompanies(ctx context.Context, limit int) ([]model.Company, error)

	// People
	GetPersonByNameAndCompany(ctx context.Context, name, companyID string) (*model.Person, error)
	CreatePerson(ctx context.Context, p *model.Person) (*model.Person, error)
	UpdatePerson(ctx context.Context, p *model.Person) error
	ListPeopleWithCompany(ctx context.Context, minScore float64) ([]model.PersonWithCompany, error)
	ListPeopleByCompany(ctx context.Context, companyID string) ([]model.Person, error)

	// Messages
	GetMessageByPersonAndType(ctx context.Context, personID, messageType string) (*model.Message, error)
	CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error)
	ListMessagesByType(ctx context.Context, messageType string) ([]model.MessageRow, error)

	// Search query audit (write-only; nothing reads these back in-pipeline)
	CreateSearchQuery(ctx context.Context, q *model.SearchQuery) (*model.SearchQuery, error)
	SetSearchQueryResults(ctx context.Context, id string, count int) error

	// Link rows, all existence-checked before insert
	LinkCompanyEvent(ctx context.Context, companyID, eventID string) error
	LinkCompanyAssociation(ctx context.Context, companyID, associationID string) error
	LinkAssociationEvent(ctx context.Context, associationID, eventID string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
