package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func newTestSQLite(t *testing.T) Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore(t *testing.T) {
	storeTestSuite(t, newTestSQLite)
}

func storeTestSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateAndGetEvent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateEvent(ctx, &model.Event{
			Name:           "ISA Sign Expo 2025",
			EventType:      "trade show",
			Location:       "Las Vegas",
			RelevanceScore: model.ScoreRef(0.9),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.LastUpdated.IsZero())

		got, err := s.GetEventByName(ctx, "ISA Sign Expo 2025")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "trade show", got.EventType)
		assert.Equal(t, 0.9, model.Score(got.RelevanceScore))
		assert.Nil(t, got.StartDate)
	})

	t.Run("GetEventByNameMissing", func(t *testing.T) {
		s := newStore(t)

		got, err := s.GetEventByName(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("UpdateEvent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		e, err := s.CreateEvent(ctx, &model.Event{Name: "PRINTING United"})
		require.NoError(t, err)

		e.Location = "Orlando"
		e.RelevanceScore = model.ScoreRef(0.7)
		require.NoError(t, s.UpdateEvent(ctx, e))

		got, err := s.GetEventByName(ctx, "PRINTING United")
		require.NoError(t, err)
		assert.Equal(t, "Orlando", got.Location)
		assert.Equal(t, 0.7, model.Score(got.RelevanceScore))
	})

	t.Run("UpdateEventMissing", func(t *testing.T) {
		s := newStore(t)

		err := s.UpdateEvent(context.Background(), &model.Event{ID: "no-such-id"})
		assert.Error(t, err)
	})

	t.Run("TopEventsOrdersByScore", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.CreateEvent(ctx, &model.Event{Name: "Low", RelevanceScore: model.ScoreRef(0.2)})
		require.NoError(t, err)
		_, err = s.CreateEvent(ctx, &model.Event{Name: "High", RelevanceScore: model.ScoreRef(0.9)})
		require.NoError(t, err)
		_, err = s.CreateEvent(ctx, &model.Event{Name: "Unscored"})
		require.NoError(t, err)

		events, err := s.TopEvents(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "High", events[0].Name)
		assert.Equal(t, "Low", events[1].Name)
	})

	t.Run("CreateAndGetAssociation", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.CreateAssociation(ctx, &model.Association{
			Name:     "International Sign Association",
			Industry: "Signage",
		})
		require.NoError(t, err)

		got, err := s.GetAssociationByName(ctx, "International Sign Association")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Signage", got.Industry)

		got.RelevanceScore = model.ScoreRef(0.8)
		require.NoError(t, s.UpdateAssociation(ctx, got))

		assocs, err := s.TopAssociations(ctx, 10)
		require.NoError(t, err)
		require.Len(t, assocs, 1)
		assert.Equal(t, 0.8, model.Score(assocs[0].RelevanceScore))
	})

	t.Run("CreateAndUpdateCompany", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		c, err := s.CreateCompany(ctx, &model.Company{
			Name:             "3M",
			EstimatedRevenue: "32681000000",
			CompanySize:      "92000",
			RelevanceScore:   model.ScoreRef(0.8),
		})
		require.NoError(t, err)

		c.Industry = "Conglomerate"
		require.NoError(t, s.UpdateCompany(ctx, c))

		got, err := s.GetCompanyByName(ctx, "3M")
		require.NoError(t, err)
		assert.Equal(t, "Conglomerate", got.Industry)
		assert.Equal(t, "32681000000", got.EstimatedRevenue)
	})

	t.Run("ListAndTopCompanies", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.CreateCompany(ctx, &model.Company{Name: "Avery Dennison", RelevanceScore: model.ScoreRef(0.6)})
		require.NoError(t, err)
		_, err = s.CreateCompany(ctx, &model.Company{Name: "3M", RelevanceScore: model.ScoreRef(0.8)})
		require.NoError(t, err)

		all, err := s.ListCompanies(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "3M", all[0].Name) // alphabetical

		top, err := s.TopCompanies(ctx, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, "3M", top[0].Name) // by score
	})

	t.Run("PersonKeyedByNameAndCompany", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		c1, err := s.CreateCompany(ctx, &model.Company{Name: "3M"})
		require.NoError(t, err)
		c2, err := s.CreateCompany(ctx, &model.Company{Name: "Avery Dennison"})
		require.NoError(t, err)

		_, err = s.CreatePerson(ctx, &model.Person{Name: "Jane Smith", Title: "VP", CompanyID: c1.ID})
		require.NoError(t, err)
		_, err = s.CreatePerson(ctx, &model.Person{Name: "Jane Smith", Title: "Director", CompanyID: c2.ID})
		require.NoError(t, err)

		got, err := s.GetPersonByNameAndCompany(ctx, "Jane Smith", c1.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "VP", got.Title)

		missing, err := s.GetPersonByNameAndCompany(ctx, "Nobody", c1.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ListPeopleWithCompanyFiltersByScore", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		c, err := s.CreateCompany(ctx, &model.Company{Name: "3M", Description: "Materials science"})
		require.NoError(t, err)

		_, err = s.CreatePerson(ctx, &model.Person{
			Name: "High Scorer", Title: "CEO", CompanyID: c.ID,
			RelevanceScore: model.ScoreRef(0.9),
		})
		require.NoError(t, err)
		_, err = s.CreatePerson(ctx, &model.Person{
			Name: "Low Scorer", Title: "Intern", CompanyID: c.ID,
			RelevanceScore: model.ScoreRef(0.2),
		})
		require.NoError(t, err)

		people, err := s.ListPeopleWithCompany(ctx, 0.5)
		require.NoError(t, err)
		require.Len(t, people, 1)
		assert.Equal(t, "High Scorer", people[0].Name)
		assert.Equal(t, "3M", people[0].CompanyName)
		assert.Equal(t, "Materials science", people[0].CompanyDescription)
	})

	t.Run("ListPeopleByCompany", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		c, err := s.CreateCompany(ctx, &model.Company{Name: "3M"})
		require.NoError(t, err)
		_, err = s.CreatePerson(ctx, &model.Person{Name: "A", Title: "VP", CompanyID: c.ID, RelevanceScore: model.ScoreRef(0.5)})
		require.NoError(t, err)
		_, err = s.CreatePerson(ctx, &model.Person{Name: "B", Title: "CEO", CompanyID: c.ID, RelevanceScore: model.ScoreRef(0.9)})
		require.NoError(t, err)

		people, err := s.ListPeopleByCompany(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, people, 2)
		assert.Equal(t, "B", people[0].Name)
	})

	t.Run("Messages", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		c, err := s.CreateCompany(ctx, &model.Company{Name: "3M"})
		require.NoError(t, err)
		p, err := s.CreatePerson(ctx, &model.Person{
			Name: "Jane Smith", Title: "VP", CompanyID: c.ID,
			RelevanceScore: model.ScoreRef(0.9),
		})
		require.NoError(t, err)

		got, err := s.GetMessageByPersonAndType(ctx, p.ID, model.MessageTypeLinkedInConnect)
		require.NoError(t, err)
		assert.Nil(t, got)

		m, err := s.CreateMessage(ctx, &model.Message{
			PersonID:    p.ID,
			MessageType: model.MessageTypeLinkedInConnect,
			Content:     "Tedlar protects outdoor graphics.",
		})
		require.NoError(t, err)
		assert.Equal(t, model.MessageStatusDraft, m.Status)
		assert.Nil(t, m.SentAt)

		got, err = s.GetMessageByPersonAndType(ctx, p.ID, model.MessageTypeLinkedInConnect)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, m.ID, got.ID)

		rows, err := s.ListMessagesByType(ctx, model.MessageTypeLinkedInConnect)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Jane Smith", rows[0].PersonName)
		assert.Equal(t, "3M", rows[0].CompanyName)
	})

	t.Run("SearchQueries", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		q, err := s.CreateSearchQuery(ctx, &model.SearchQuery{
			QueryText:   "signage trade shows 2025",
			QuerySource: "AI",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, q.ID)

		require.NoError(t, s.SetSearchQueryResults(ctx, q.ID, 7))
		assert.Error(t, s.SetSearchQueryResults(ctx, "no-such-id", 7))
	})

	t.Run("LinkInsertionIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		e, err := s.CreateEvent(ctx, &model.Event{Name: "ISA Sign Expo 2025"})
		require.NoError(t, err)
		a, err := s.CreateAssociation(ctx, &model.Association{Name: "ISA"})
		require.NoError(t, err)
		c, err := s.CreateCompany(ctx, &model.Company{Name: "3M"})
		require.NoError(t, err)

		require.NoError(t, s.LinkCompanyEvent(ctx, c.ID, e.ID))
		require.NoError(t, s.LinkCompanyEvent(ctx, c.ID, e.ID))

		require.NoError(t, s.LinkCompanyAssociation(ctx, c.ID, a.ID))
		require.NoError(t, s.LinkCompanyAssociation(ctx, c.ID, a.ID))

		require.NoError(t, s.LinkAssociationEvent(ctx, a.ID, e.ID))
		require.NoError(t, s.LinkAssociationEvent(ctx, a.ID, e.ID))
	})
}
