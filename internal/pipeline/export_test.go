package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestCoerceRevenue(t *testing.T) {
	assert.Equal(t, 32681000000.0, coerceRevenue("$32,681,000,000"))
	assert.Equal(t, 1500.5, coerceRevenue("1500.5"))
	assert.Equal(t, 0.0, coerceRevenue("approximately large"))
	assert.Equal(t, 0.0, coerceRevenue(""))
}

func TestCoerceEmployees(t *testing.T) {
	assert.Equal(t, int64(92000), coerceEmployees("92,000"))
	assert.Equal(t, int64(0), coerceEmployees("many"))
}

func TestPrioritize_SortsByScoreThenRevenue(t *testing.T) {
	companies := []model.Company{
		{Name: "MidScore", RelevanceScore: model.ScoreRef(0.6)},
		{Name: "TopPoor", RelevanceScore: model.ScoreRef(0.8), EstimatedRevenue: "1000"},
		{Name: "TopRich", RelevanceScore: model.ScoreRef(0.8), EstimatedRevenue: "9000"},
		{Name: "Unscored"},
	}

	out := Prioritize(companies)
	require.Len(t, out, 4)
	assert.Equal(t, "TopRich", out[0].Name)
	assert.Equal(t, "TopPoor", out[1].Name)
	assert.Equal(t, "MidScore", out[2].Name)
	assert.Equal(t, "Unscored", out[3].Name)
}

func TestPrioritize_Displays(t *testing.T) {
	out := Prioritize([]model.Company{
		{Name: "3M", EstimatedRevenue: "32681000000", CompanySize: "92000"},
		{Name: "Mystery Co"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "$32,681,000,000", out[0].RevenueDisplay)
	assert.Equal(t, "92,000", out[0].EmployeesDisplay)
	assert.Equal(t, "Unknown", out[1].RevenueDisplay)
	assert.Equal(t, "Unknown", out[1].EmployeesDisplay)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "", formatScore(nil))
	assert.Equal(t, "0.85", formatScore(model.ScoreRef(0.85)))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := [][]string{
		{"name", "score"},
		{"3M", "0.80"},
	}
	require.NoError(t, writeCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestExportAll_CSV(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()
	dir := t.TempDir()

	_, err := deps.store.CreateEvent(ctx, &model.Event{
		Name: "ISA Sign Expo 2025", RelevanceScore: model.ScoreRef(0.9),
	})
	require.NoError(t, err)
	c, err := deps.store.CreateCompany(ctx, &model.Company{
		Name: "3M", RelevanceScore: model.ScoreRef(0.8),
	})
	require.NoError(t, err)
	person, err := deps.store.CreatePerson(ctx, &model.Person{
		Name: "Jane Smith", Title: "VP", CompanyID: c.ID,
		RelevanceScore: model.ScoreRef(0.9),
	})
	require.NoError(t, err)
	_, err = deps.store.CreateMessage(ctx, &model.Message{
		PersonID:    person.ID,
		MessageType: model.MessageTypeLinkedInConnect,
		Content:     "Hello",
	})
	require.NoError(t, err)

	require.NoError(t, p.ExportAll(ctx, dir, FormatCSV))

	for _, name := range []string{"leads.csv", "companies.csv", "executives.csv", "messages.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestExportAll_XLSXWorkbook(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()
	dir := t.TempDir()

	_, err := deps.store.CreateCompany(ctx, &model.Company{Name: "3M"})
	require.NoError(t, err)

	require.NoError(t, p.ExportAll(ctx, dir, FormatXLSX))

	_, err = os.Stat(filepath.Join(dir, "leadgen.xlsx"))
	require.NoError(t, err)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Companies", sheetTitle("companies"))
	assert.Equal(t, "", sheetTitle(""))
}
