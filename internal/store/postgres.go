package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/db"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for the
// hottest store operations. Company upserts dominate a pipeline run.
var preparedStatements = map[string]string{
	"get_company_by_name": `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`,
	"get_person":          `SELECT ` + personColumns + ` FROM people WHERE name = $1 AND company_id = $2`,
	"get_event_by_name":   `SELECT ` + eventColumns + ` FROM events WHERE name = $1`,
	"link_company_event":  `SELECT COUNT(1) FROM company_events WHERE company_id = $1 AND event_id = $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	event_type      TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	start_date      TIMESTAMPTZ,
	end_date        TIMESTAMPTZ,
	location        TEXT NOT NULL DEFAULT '',
	relevance_score DOUBLE PRECISION,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS associations (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	industry        TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	relevance_score DOUBLE PRECISION,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS companies (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL UNIQUE,
	industry          TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	website           TEXT NOT NULL DEFAULT '',
	estimated_revenue TEXT NOT NULL DEFAULT '',
	company_size      TEXT NOT NULL DEFAULT '',
	relevance_score   DOUBLE PRECISION,
	notes             TEXT NOT NULL DEFAULT '',
	last_updated      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS people (
	id              TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL REFERENCES companies(id),
	name            TEXT NOT NULL,
	title           TEXT NOT NULL DEFAULT '',
	division        TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	linkedin        TEXT NOT NULL DEFAULT '',
	relevance_score DOUBLE PRECISION,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, company_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	person_id    TEXT NOT NULL REFERENCES people(id),
	message_type TEXT NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'draft',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	sent_at      TIMESTAMPTZ,
	notes        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS search_queries (
	id            TEXT PRIMARY KEY,
	query_text    TEXT NOT NULL,
	query_source  TEXT NOT NULL DEFAULT '',
	results_count INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	notes         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS company_events (
	company_id TEXT NOT NULL REFERENCES companies(id),
	event_id   TEXT NOT NULL REFERENCES events(id),
	PRIMARY KEY (company_id, event_id)
);

CREATE TABLE IF NOT EXISTS company_associations (
	company_id     TEXT NOT NULL REFERENCES companies(id),
	association_id TEXT NOT NULL REFERENCES associations(id),
	PRIMARY KEY (company_id, association_id)
);

CREATE TABLE IF NOT EXISTS association_events (
	association_id TEXT NOT NULL REFERENCES associations(id),
	event_id       TEXT NOT NULL REFERENCES events(id),
	PRIMARY KEY (association_id, event_id)
);

CREATE INDEX IF NOT EXISTS idx_events_score ON events(relevance_score);
CREATE INDEX IF NOT EXISTS idx_associations_score ON associations(relevance_score);
CREATE INDEX IF NOT EXISTS idx_companies_score ON companies(relevance_score);
CREATE INDEX IF NOT EXISTS idx_people_company_id ON people(company_id);
CREATE INDEX IF NOT EXISTS idx_people_score ON people(relevance_score);
CREATE INDEX IF NOT EXISTS idx_messages_person_type ON messages(person_id, message_type);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// --- Events ---

func (s *PostgresStore) GetEventByName(ctx context.Context, name string) (*model.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE name = $1`, name)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, eris.Wrap(err, "postgres: get event by name")
}

func (s *PostgresStore) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	e.LastUpdated = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.Name, e.EventType, e.Description, e.Website,
		e.StartDate, e.EndDate, e.Location, e.RelevanceScore, e.Notes, e.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert event %s", e.Name)
	}
	return e, nil
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, e *model.Event) error {
	e.LastUpdated = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE events SET event_type = $1, description = $2, website = $3, start_date = $4,
		 end_date = $5, location = $6, relevance_score = $7, notes = $8, last_updated = $9
		 WHERE id = $10`,
		e.EventType, e.Description, e.Website, e.StartDate, e.EndDate,
		e.Location, e.RelevanceScore, e.Notes, e.LastUpdated, e.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update event %s", e.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("event not found: %s", e.ID)
	}
	return nil
}

func (s *PostgresStore) TopEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT $1`, positiveLimit(limit))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: top events")
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan event")
		}
		events = append(events, *e)
	}
	return events, eris.Wrap(rows.Err(), "postgres: top events iterate")
}

// --- Associations ---

func (s *PostgresStore) GetAssociationByName(ctx context.Context, name string) (*model.Association, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+associationColumns+` FROM associations WHERE name = $1`, name)
	a, err := scanAssociation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, eris.Wrap(err, "postgres: get association by name")
}

func (s *PostgresStore) CreateAssociation(ctx context.Context, a *model.Association) (*model.Association, error) {
	a.ID = uuid.New().String()
	a.LastUpdated = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO associations (`+associationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Name, a.Industry, a.Description, a.Website,
		a.RelevanceScore, a.Notes, a.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert association %s", a.Name)
	}
	return a, nil
}

func (s *PostgresStore) UpdateAssociation(ctx context.Context, a *model.Association) error {
	a.LastUpdated = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE associations SET industry = $1, description = $2, website = $3,
		 relevance_score = $4, notes = $5, last_updated = $6 WHERE id = $7`,
		a.Industry, a.Description, a.Website, a.RelevanceScore,
		a.Notes, a.LastUpdated, a.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update association %s", a.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("association not found: %s", a.ID)
	}
	return nil
}

func (s *PostgresStore) TopAssociations(ctx context.Context, limit int) ([]model.Association, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+associationColumns+` FROM associations
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT $1`, positiveLimit(limit))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: top associations")
	}
	defer rows.Close()

	var assocs []model.Association
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan association")
		}
		assocs = append(assocs, *a)
	}
	return assocs, eris.Wrap(rows.Err(), "postgres: top associations iterate")
}

// --- Companies ---

func (s *PostgresStore) GetCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, eris.Wrap(err, "postgres: get company by name")
}

func (s *PostgresStore) CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error) {
	c.ID = uuid.New().String()
	c.LastUpdated = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Industry, c.Description, c.Website,
		c.EstimatedRevenue, c.CompanySize, c.RelevanceScore, c.Notes, c.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert company %s", c.Name)
	}
	return c, nil
}

func (s *PostgresStore) UpdateCompany(ctx context.Context, c *model.Company) error {
	c.LastUpdated = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE companies SET industry = $1, description = $2, website = $3,
		 estimated_revenue = $4, company_size = $5, relevance_score = $6, notes = $7,
		 last_updated = $8 WHERE id = $9`,
		c.Industry, c.Description, c.Website, c.EstimatedRevenue, c.CompanySize,
		c.RelevanceScore, c.Notes, c.LastUpdated, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update company %s", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("company not found: %s", c.ID)
	}
	return nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
}

func (s *PostgresStore) TopCompanies(ctx context.Context, limit int) ([]model.Company, error) {
	return s.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT $1`, positiveLimit(limit))
}

func (s *PostgresStore) queryCompanies(ctx context.Context, query string, args ...any) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, *c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: query companies iterate")
}

// --- People ---

func (s *PostgresStore) GetPersonByNameAndCompany(ctx context.Context, name, companyID string) (*model.Person, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+personColumns+` FROM people WHERE name = $1 AND company_id = $2`,
		name, companyID)
	p, err := scanPerson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, eris.Wrap(err, "postgres: get person by name and company")
}

func (s *PostgresStore) CreatePerson(ctx context.Context, p *model.Person) (*model.Person, error) {
	p.ID = uuid.New().String()
	p.LastUpdated = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO people (`+personColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.CompanyID, p.Name, p.Title, p.Division, p.Email, p.Phone,
		p.LinkedIn, p.RelevanceScore, p.Notes, p.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert person %s", p.Name)
	}
	return p, nil
}

func (s *PostgresStore) UpdatePerson(ctx context.Context, p *model.Person) error {
	p.LastUpdated = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE people SET title = $1, division = $2, email = $3, phone = $4,
		 linkedin = $5, relevance_score = $6, notes = $7, last_updated = $8 WHERE id = $9`,
		p.Title, p.Division, p.Email, p.Phone, p.LinkedIn,
		p.RelevanceScore, p.Notes, p.LastUpdated, p.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update person %s", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("person not found: %s", p.ID)
	}
	return nil
}

func (s *PostgresStore) ListPeopleWithCompany(ctx context.Context, minScore float64) ([]model.PersonWithCompany, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.company_id, p.name, p.title, p.division, p.email, p.phone,
		        p.linkedin, p.relevance_score, p.notes, p.last_updated,
		        c.name, c.description
		 FROM people p JOIN companies c ON c.id = p.company_id
		 WHERE p.relevance_score >= $1
		 ORDER BY p.relevance_score DESC, p.name ASC`,
		minScore)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list people with company")
	}
	defer rows.Close()

	var people []model.PersonWithCompany
	for rows.Next() {
		var pc model.PersonWithCompany
		if err := rows.Scan(
			&pc.ID, &pc.CompanyID, &pc.Name, &pc.Title, &pc.Division, &pc.Email,
			&pc.Phone, &pc.LinkedIn, &pc.RelevanceScore, &pc.Notes, &pc.LastUpdated,
			&pc.CompanyName, &pc.CompanyDescription,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan person with company")
		}
		people = append(people, pc)
	}
	return people, eris.Wrap(rows.Err(), "postgres: list people iterate")
}

func (s *PostgresStore) ListPeopleByCompany(ctx context.Context, companyID string) ([]model.Person, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+personColumns+` FROM people WHERE company_id = $1
		 ORDER BY relevance_score DESC NULLS LAST, name ASC`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list people by company")
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan person")
		}
		people = append(people, *p)
	}
	return people, eris.Wrap(rows.Err(), "postgres: list people by company iterate")
}

// --- Messages ---

func (s *PostgresStore) GetMessageByPersonAndType(ctx context.Context, personID, messageType string) (*model.Message, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE person_id = $1 AND message_type = $2
		 ORDER BY created_at DESC LIMIT 1`,
		personID, messageType)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, eris.Wrap(err, "postgres: get message by person and type")
}

func (s *PostgresStore) CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = model.MessageStatusDraft
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.PersonID, m.MessageType, m.Subject, m.Content, m.Status,
		m.CreatedAt, m.SentAt, m.Notes,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert message for person %s", m.PersonID)
	}
	return m, nil
}

func (s *PostgresStore) ListMessagesByType(ctx context.Context, messageType string) ([]model.MessageRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.person_id, m.message_type, m.subject, m.content, m.status,
		        m.created_at, m.sent_at, m.notes,
		        p.name, p.title, p.division, p.email, p.linkedin, p.relevance_score,
		        c.name
		 FROM messages m
		 JOIN people p ON p.id = m.person_id
		 JOIN companies c ON c.id = p.company_id
		 WHERE m.message_type = $1
		 ORDER BY p.relevance_score DESC, m.created_at ASC`,
		messageType)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list messages by type")
	}
	defer rows.Close()

	var msgs []model.MessageRow
	for rows.Next() {
		var mr model.MessageRow
		if err := rows.Scan(
			&mr.ID, &mr.PersonID, &mr.MessageType, &mr.Subject, &mr.Content,
			&mr.Status, &mr.CreatedAt, &mr.SentAt, &mr.Notes,
			&mr.PersonName, &mr.PersonTitle, &mr.Division, &mr.Email,
			&mr.LinkedIn, &mr.RelevanceScore, &mr.CompanyName,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan message row")
		}
		msgs = append(msgs, mr)
	}
	return msgs, eris.Wrap(rows.Err(), "postgres: list messages iterate")
}

// --- Search queries ---

func (s *PostgresStore) CreateSearchQuery(ctx context.Context, q *model.SearchQuery) (*model.SearchQuery, error) {
	q.ID = uuid.New().String()
	q.CreatedAt = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO search_queries (id, query_text, query_source, results_count, created_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.QueryText, q.QuerySource, q.ResultsCount, q.CreatedAt, q.Notes,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert search query")
	}
	return q, nil
}

func (s *PostgresStore) SetSearchQueryResults(ctx context.Context, id string, count int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE search_queries SET results_count = $1 WHERE id = $2`, count, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: set search query results %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("search query not found: %s", id)
	}
	return nil
}

// --- Links ---

func (s *PostgresStore) LinkCompanyEvent(ctx context.Context, companyID, eventID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO company_events (company_id, event_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		companyID, eventID)
	return eris.Wrap(err, "postgres: link company event")
}

func (s *PostgresStore) LinkCompanyAssociation(ctx context.Context, companyID, associationID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO company_associations (company_id, association_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		companyID, associationID)
	return eris.Wrap(err, "postgres: link company association")
}

func (s *PostgresStore) LinkAssociationEvent(ctx context.Context, associationID, eventID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO association_events (association_id, event_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		associationID, eventID)
	return eris.Wrap(err, "postgres: link association event")
}
