package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode. The dashboard reads the same file while the pipeline writes; WAL
// plus a busy timeout keeps both sides out of each other's way.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	event_type      TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	start_date      DATETIME,
	end_date        DATETIME,
	location        TEXT NOT NULL DEFAULT '',
	relevance_score REAL,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS associations (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	industry        TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	relevance_score REAL,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS companies (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL UNIQUE,
	industry          TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	website           TEXT NOT NULL DEFAULT '',
	estimated_revenue TEXT NOT NULL DEFAULT '',
	company_size      TEXT NOT NULL DEFAULT '',
	relevance_score   REAL,
	notes             TEXT NOT NULL DEFAULT '',
	last_updated      DATETIME NOT NULL DEFAULT (datetime('now'))
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
	relevance_score REAL,
	notes           TEXT NOT NULL DEFAULT '',
	last_updated    DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (name, company_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	person_id    TEXT NOT NULL REFERENCES people(id),
	message_type TEXT NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'draft',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	sent_at      DATETIME,
	notes        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS search_queries (
	id            TEXT PRIMARY KEY,
	query_text    TEXT NOT NULL,
	query_source  TEXT NOT NULL DEFAULT '',
	results_count INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
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

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Events ---

const eventColumns = `id, name, event_type, description, website, start_date, end_date, location, relevance_score, notes, last_updated`

func (s *SQLiteStore) GetEventByName(ctx context.Context, name string) (*model.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE name = ?`, name)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, eris.Wrap(err, "sqlite: get event by name")
}

func (s *SQLiteStore) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	e.LastUpdated = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.EventType, e.Description, e.Website,
		nullTime(e.StartDate), nullTime(e.EndDate), e.Location,
		nullFloat(e.RelevanceScore), e.Notes, e.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert event %s", e.Name)
	}
	return e, nil
}

func (s *SQLiteStore) UpdateEvent(ctx context.Context, e *model.Event) error {
	e.LastUpdated = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET event_type = ?, description = ?, website = ?, start_date = ?,
		 end_date = ?, location = ?, relevance_score = ?, notes = ?, last_updated = ?
		 WHERE id = ?`,
		e.EventType, e.Description, e.Website, nullTime(e.StartDate),
		nullTime(e.EndDate), e.Location, nullFloat(e.RelevanceScore), e.Notes,
		e.LastUpdated, e.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update event %s", e.ID)
	}
	return checkRowsAffected(res, "event", e.ID)
}

func (s *SQLiteStore) TopEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT ?`, positiveLimit(limit))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: top events")
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event")
		}
		events = append(events, *e)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: top events iterate")
}

// --- Associations ---

const associationColumns = `id, name, industry, description, website, relevance_score, notes, last_updated`

func (s *SQLiteStore) GetAssociationByName(ctx context.Context, name string) (*model.Association, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+associationColumns+` FROM associations WHERE name = ?`, name)
	a, err := scanAssociation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, eris.Wrap(err, "sqlite: get association by name")
}

func (s *SQLiteStore) CreateAssociation(ctx context.Context, a *model.Association) (*model.Association, error) {
	a.ID = uuid.New().String()
	a.LastUpdated = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO associations (`+associationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Industry, a.Description, a.Website,
		nullFloat(a.RelevanceScore), a.Notes, a.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert association %s", a.Name)
	}
	return a, nil
}

func (s *SQLiteStore) UpdateAssociation(ctx context.Context, a *model.Association) error {
	a.LastUpdated = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE associations SET industry = ?, description = ?, website = ?,
		 relevance_score = ?, notes = ?, last_updated = ? WHERE id = ?`,
		a.Industry, a.Description, a.Website, nullFloat(a.RelevanceScore),
		a.Notes, a.LastUpdated, a.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update association %s", a.ID)
	}
	return checkRowsAffected(res, "association", a.ID)
}

func (s *SQLiteStore) TopAssociations(ctx context.Context, limit int) ([]model.Association, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+associationColumns+` FROM associations
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT ?`, positiveLimit(limit))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: top associations")
	}
	defer rows.Close()

	var assocs []model.Association
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan association")
		}
		assocs = append(assocs, *a)
	}
	return assocs, eris.Wrap(rows.Err(), "sqlite: top associations iterate")
}

// --- Companies ---

const companyColumns = `id, name, industry, description, website, estimated_revenue, company_size, relevance_score, notes, last_updated`

func (s *SQLiteStore) GetCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name = ?`, name)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, eris.Wrap(err, "sqlite: get company by name")
}

func (s *SQLiteStore) CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error) {
	c.ID = uuid.New().String()
	c.LastUpdated = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Industry, c.Description, c.Website,
		c.EstimatedRevenue, c.CompanySize, nullFloat(c.RelevanceScore),
		c.Notes, c.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert company %s", c.Name)
	}
	return c, nil
}

func (s *SQLiteStore) UpdateCompany(ctx context.Context, c *model.Company) error {
	c.LastUpdated = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET industry = ?, description = ?, website = ?,
		 estimated_revenue = ?, company_size = ?, relevance_score = ?, notes = ?,
		 last_updated = ? WHERE id = ?`,
		c.Industry, c.Description, c.Website, c.EstimatedRevenue, c.CompanySize,
		nullFloat(c.RelevanceScore), c.Notes, c.LastUpdated, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update company %s", c.ID)
	}
	return checkRowsAffected(res, "company", c.ID)
}

func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
}

func (s *SQLiteStore) TopCompanies(ctx context.Context, limit int) ([]model.Company, error) {
	return s.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies
		 ORDER BY relevance_score DESC NULLS LAST, name ASC LIMIT ?`, positiveLimit(limit))
}

func (s *SQLiteStore) queryCompanies(ctx context.Context, query string, args ...any) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		companies = append(companies, *c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: query companies iterate")
}

// --- People ---

const personColumns = `id, company_id, name, title, division, email, phone, linkedin, relevance_score, notes, last_updated`

func (s *SQLiteStore) GetPersonByNameAndCompany(ctx context.Context, name, companyID string) (*model.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE name = ? AND company_id = ?`,
		name, companyID)
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, eris.Wrap(err, "sqlite: get person by name and company")
}

func (s *SQLiteStore) CreatePerson(ctx context.Context, p *model.Person) (*model.Person, error) {
	p.ID = uuid.New().String()
	p.LastUpdated = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyID, p.Name, p.Title, p.Division, p.Email, p.Phone,
		p.LinkedIn, nullFloat(p.RelevanceScore), p.Notes, p.LastUpdated,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert person %s", p.Name)
	}
	return p, nil
}

func (s *SQLiteStore) UpdatePerson(ctx context.Context, p *model.Person) error {
	p.LastUpdated = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET title = ?, division = ?, email = ?, phone = ?,
		 linkedin = ?, relevance_score = ?, notes = ?, last_updated = ? WHERE id = ?`,
		p.Title, p.Division, p.Email, p.Phone, p.LinkedIn,
		nullFloat(p.RelevanceScore), p.Notes, p.LastUpdated, p.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update person %s", p.ID)
	}
	return checkRowsAffected(res, "person", p.ID)
}

func (s *SQLiteStore) ListPeopleWithCompany(ctx context.Context, minScore float64) ([]model.PersonWithCompany, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.company_id, p.name, p.title, p.division, p.email, p.phone,
		        p.linkedin, p.relevance_score, p.notes, p.last_updated,
		        c.name, c.description
		 FROM people p JOIN companies c ON c.id = p.company_id
		 WHERE p.relevance_score >= ?
		 ORDER BY p.relevance_score DESC, p.name ASC`,
		minScore)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list people with company")
	}
	defer rows.Close()

	var people []model.PersonWithCompany
	for rows.Next() {
		var pc model.PersonWithCompany
		var score sql.NullFloat64
		if err := rows.Scan(
			&pc.ID, &pc.CompanyID, &pc.Name, &pc.Title, &pc.Division, &pc.Email,
			&pc.Phone, &pc.LinkedIn, &score, &pc.Notes, &pc.LastUpdated,
			&pc.CompanyName, &pc.CompanyDescription,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan person with company")
		}
		pc.RelevanceScore = floatPtr(score)
		people = append(people, pc)
	}
	return people, eris.Wrap(rows.Err(), "sqlite: list people iterate")
}

func (s *SQLiteStore) ListPeopleByCompany(ctx context.Context, companyID string) ([]model.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE company_id = ?
		 ORDER BY relevance_score DESC NULLS LAST, name ASC`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list people by company")
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan person")
		}
		people = append(people, *p)
	}
	return people, eris.Wrap(rows.Err(), "sqlite: list people by company iterate")
}

// --- Messages ---

const messageColumns = `id, person_id, message_type, subject, content, status, created_at, sent_at, notes`

func (s *SQLiteStore) GetMessageByPersonAndType(ctx context.Context, personID, messageType string) (*model.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE person_id = ? AND message_type = ?
		 ORDER BY created_at DESC LIMIT 1`,
		personID, messageType)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, eris.Wrap(err, "sqlite: get message by person and type")
}

func (s *SQLiteStore) CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = model.MessageStatusDraft
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PersonID, m.MessageType, m.Subject, m.Content, m.Status,
		m.CreatedAt, nullTime(m.SentAt), m.Notes,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert message for person %s", m.PersonID)
	}
	return m, nil
}

func (s *SQLiteStore) ListMessagesByType(ctx context.Context, messageType string) ([]model.MessageRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.person_id, m.message_type, m.subject, m.content, m.status,
		        m.created_at, m.sent_at, m.notes,
		        p.name, p.title, p.division, p.email, p.linkedin, p.relevance_score,
		        c.name
		 FROM messages m
		 JOIN people p ON p.id = m.person_id
		 JOIN companies c ON c.id = p.company_id
		 WHERE m.message_type = ?
		 ORDER BY p.relevance_score DESC, m.created_at ASC`,
		messageType)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list messages by type")
	}
	defer rows.Close()

	var msgs []model.MessageRow
	for rows.Next() {
		var mr model.MessageRow
		var sentAt sql.NullTime
		var score sql.NullFloat64
		if err := rows.Scan(
			&mr.ID, &mr.PersonID, &mr.MessageType, &mr.Subject, &mr.Content,
			&mr.Status, &mr.CreatedAt, &sentAt, &mr.Notes,
			&mr.PersonName, &mr.PersonTitle, &mr.Division, &mr.Email,
			&mr.LinkedIn, &score, &mr.CompanyName,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan message row")
		}
		mr.SentAt = timePtr(sentAt)
		mr.RelevanceScore = floatPtr(score)
		msgs = append(msgs, mr)
	}
	return msgs, eris.Wrap(rows.Err(), "sqlite: list messages iterate")
}

// --- Search queries ---

func (s *SQLiteStore) CreateSearchQuery(ctx context.Context, q *model.SearchQuery) (*model.SearchQuery, error) {
	q.ID = uuid.New().String()
	q.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_queries (id, query_text, query_source, results_count, created_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID, q.QueryText, q.QuerySource, q.ResultsCount, q.CreatedAt, q.Notes,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert search query")
	}
	return q, nil
}

func (s *SQLiteStore) SetSearchQueryResults(ctx context.Context, id string, count int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE search_queries SET results_count = ? WHERE id = ?`, count, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set search query results %s", id)
	}
	return checkRowsAffected(res, "search query", id)
}

// --- Links ---

func (s *SQLiteStore) LinkCompanyEvent(ctx context.Context, companyID, eventID string) error {
	return s.insertLink(ctx, "company_events", "company_id", "event_id", companyID, eventID)
}

func (s *SQLiteStore) LinkCompanyAssociation(ctx context.Context, companyID, associationID string) error {
	return s.insertLink(ctx, "company_associations", "company_id", "association_id", companyID, associationID)
}

func (s *SQLiteStore) LinkAssociationEvent(ctx context.Context, associationID, eventID string) error {
	return s.insertLink(ctx, "association_events", "association_id", "event_id", associationID, eventID)
}

// insertLink performs the check-then-insert contract for a link table.
func (s *SQLiteStore) insertLink(ctx context.Context, table, colA, colB, a, b string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM `+table+` WHERE `+colA+` = ? AND `+colB+` = ?`,
		a, b).Scan(&exists)
	if err != nil {
		return eris.Wrapf(err, "sqlite: check %s link", table)
	}
	if exists > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (`+colA+`, `+colB+`) VALUES (?, ?)`, a, b)
	return eris.Wrapf(err, "sqlite: insert %s link", table)
}

// --- scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var start, end sql.NullTime
	var score sql.NullFloat64
	err := row.Scan(&e.ID, &e.Name, &e.EventType, &e.Description, &e.Website,
		&start, &end, &e.Location, &score, &e.Notes, &e.LastUpdated)
	if err != nil {
		return nil, err
	}
	e.StartDate = timePtr(start)
	e.EndDate = timePtr(end)
	e.RelevanceScore = floatPtr(score)
	return &e, nil
}

func scanAssociation(row scannable) (*model.Association, error) {
	var a model.Association
	var score sql.NullFloat64
	err := row.Scan(&a.ID, &a.Name, &a.Industry, &a.Description, &a.Website,
		&score, &a.Notes, &a.LastUpdated)
	if err != nil {
		return nil, err
	}
	a.RelevanceScore = floatPtr(score)
	return &a, nil
}

func scanCompany(row scannable) (*model.Company, error) {
	var c model.Company
	var score sql.NullFloat64
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Description, &c.Website,
		&c.EstimatedRevenue, &c.CompanySize, &score, &c.Notes, &c.LastUpdated)
	if err != nil {
		return nil, err
	}
	c.RelevanceScore = floatPtr(score)
	return &c, nil
}

func scanPerson(row scannable) (*model.Person, error) {
	var p model.Person
	var score sql.NullFloat64
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Title, &p.Division,
		&p.Email, &p.Phone, &p.LinkedIn, &score, &p.Notes, &p.LastUpdated)
	if err != nil {
		return nil, err
	}
	p.RelevanceScore = floatPtr(score)
	return &p, nil
}

func scanMessage(row scannable) (*model.Message, error) {
	var m model.Message
	var sentAt sql.NullTime
	err := row.Scan(&m.ID, &m.PersonID, &m.MessageType, &m.Subject, &m.Content,
		&m.Status, &m.CreatedAt, &sentAt, &m.Notes)
	if err != nil {
		return nil, err
	}
	m.SentAt = timePtr(sentAt)
	return &m, nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

func positiveLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
