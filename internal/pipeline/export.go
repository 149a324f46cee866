package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// FormatCSV and FormatXLSX are the accepted export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// PrioritizedCompany is a company with its free-form revenue and size
// strings coerced to numbers for sorting and display.
type PrioritizedCompany struct {
	model.Company
	RevenueValue     float64
	EmployeeCount    int64
	RevenueDisplay   string
	EmployeesDisplay string
}

// Prioritize coerces each company's numeric-ish strings and sorts by
// relevance score descending, then revenue descending. Unparsable values
// coerce to zero, never error.
func Prioritize(companies []model.Company) []PrioritizedCompany {
	out := make([]PrioritizedCompany, 0, len(companies))
	for _, c := range companies {
		pc := PrioritizedCompany{
			Company:       c,
			RevenueValue:  coerceRevenue(c.EstimatedRevenue),
			EmployeeCount: coerceEmployees(c.CompanySize),
		}
		pc.RevenueDisplay = displayMoney(pc.RevenueValue)
		pc.EmployeesDisplay = displayCount(pc.EmployeeCount)
		out = append(out, pc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := model.Score(out[i].RelevanceScore), model.Score(out[j].RelevanceScore)
		if si != sj {
			return si > sj
		}
		return out[i].RevenueValue > out[j].RevenueValue
	})
	return out
}

func coerceRevenue(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func coerceEmployees(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v)
}

func displayMoney(v float64) string {
	if v <= 0 {
		return "Unknown"
	}
	return displayPrinter.Sprintf("$%d", int64(v))
}

func displayCount(v int64) string {
	if v <= 0 {
		return "Unknown"
	}
	return displayPrinter.Sprintf("%d", v)
}

// --- export surfaces ---

// ExportAll writes the four exports (leads, companies, executives,
// messages) from current store contents. CSV files are written concurrently;
// the XLSX format produces a single workbook with one sheet per export.
func (p *Pipeline) ExportAll(ctx context.Context, dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}

	leads, err := p.leadRows(ctx)
	if err != nil {
		return err
	}
	companies, err := p.companyRows(ctx)
	if err != nil {
		return err
	}
	executives, err := p.executiveRows(ctx)
	if err != nil {
		return err
	}
	messages, err := p.messageRows(ctx)
	if err != nil {
		return err
	}

	if format == FormatXLSX {
		return writeWorkbook(outputPath(dir, "leadgen.xlsx"), map[string][][]string{
			"Leads":      leads,
			"Companies":  companies,
			"Executives": executives,
			"Messages":   messages,
		})
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return writeCSV(outputPath(dir, "leads.csv"), leads) })
	g.Go(func() error { return writeCSV(outputPath(dir, "companies.csv"), companies) })
	g.Go(func() error { return writeCSV(outputPath(dir, "executives.csv"), executives) })
	g.Go(func() error { return writeCSV(outputPath(dir, "messages.csv"), messages) })
	return g.Wait()
}

func (p *Pipeline) exportLeads(ctx context.Context, dir, format string) error {
	rows, err := p.leadRows(ctx)
	if err != nil {
		return err
	}
	return p.writeExport(dir, "leads", format, rows)
}

func (p *Pipeline) exportCompanies(ctx context.Context, dir, format string) error {
	rows, err := p.companyRows(ctx)
	if err != nil {
		return err
	}
	return p.writeExport(dir, "companies", format, rows)
}

func (p *Pipeline) exportExecutives(ctx context.Context, dir, format string) error {
	rows, err := p.executiveRows(ctx)
	if err != nil {
		return err
	}
	return p.writeExport(dir, "executives", format, rows)
}

func (p *Pipeline) exportMessages(ctx context.Context, dir, format string) error {
	rows, err := p.messageRows(ctx)
	if err != nil {
		return err
	}
	return p.writeExport(dir, "messages", format, rows)
}

func (p *Pipeline) writeExport(dir, name, format string, rows [][]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}
	if format == FormatXLSX {
		return writeWorkbook(outputPath(dir, name+".xlsx"), map[string][][]string{
			sheetTitle(name): rows,
		})
	}
	return writeCSV(outputPath(dir, name+".csv"), rows)
}

// --- row builders ---

func (p *Pipeline) leadRows(ctx context.Context) ([][]string, error) {
	events, err := p.store.TopEvents(ctx, p.cfg.SeedResultLimit)
	if err != nil {
		return nil, err
	}
	assocs, err := p.store.TopAssociations(ctx, p.cfg.SeedResultLimit)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"type", "name", "website", "score"}}
	for _, e := range events {
		rows = append(rows, []string{"event", e.Name, e.Website, formatScore(e.RelevanceScore)})
	}
	for _, a := range assocs {
		rows = append(rows, []string{"association", a.Name, a.Website, formatScore(a.RelevanceScore)})
	}
	return rows, nil
}

func (p *Pipeline) companyRows(ctx context.Context) ([][]string, error) {
	companies, err := p.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	prioritized := Prioritize(companies)

	rows := [][]string{{
		"name", "industry", "revenue", "employees", "description",
		"relevance_score", "company_id", "revenue_display", "employees_display",
	}}
	for _, c := range prioritized {
		rows = append(rows, []string{
			c.Name, c.Industry, c.EstimatedRevenue, c.CompanySize, c.Description,
			formatScore(c.RelevanceScore), c.ID, c.RevenueDisplay, c.EmployeesDisplay,
		})
	}
	return rows, nil
}

func (p *Pipeline) executiveRows(ctx context.Context) ([][]string, error) {
	people, err := p.store.ListPeopleWithCompany(ctx, 0)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"company", "name", "title", "division", "email", "linkedin", "relevance_score"}}
	for _, person := range people {
		rows = append(rows, []string{
			person.CompanyName, person.Name, person.Title, person.Division,
			person.Email, person.LinkedIn, formatScore(person.RelevanceScore),
		})
	}
	return rows, nil
}

func (p *Pipeline) messageRows(ctx context.Context) ([][]string, error) {
	msgs, err := p.store.ListMessagesByType(ctx, model.MessageTypeLinkedInConnect)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"company", "person_name", "person_title", "division", "email",
		"linkedin", "message", "status", "created_date", "relevance_score",
	}}
	for _, m := range msgs {
		rows = append(rows, []string{
			m.CompanyName, m.PersonName, m.PersonTitle, m.Division, m.Email,
			m.LinkedIn, m.Content, m.Status, m.CreatedAt.Format("2006-01-02"),
			formatScore(m.RelevanceScore),
		})
	}
	return rows, nil
}

func formatScore(s *float64) string {
	if s == nil {
		return ""
	}
	return strconv.FormatFloat(*s, 'f', 2, 64)
}

// --- writers ---

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return eris.Wrapf(err, "export: write %s", path)
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

func sheetTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func writeWorkbook(path string, sheets map[string][][]string) error {
	file := xlsx.NewFile()
	// Fixed sheet order for a stable workbook layout.
	for _, name := range []string{"Leads", "Companies", "Executives", "Messages"} {
		rows, ok := sheets[name]
		if !ok {
			continue
		}
		if err := addSheet(file, name, rows); err != nil {
			return err
		}
	}
	// Sheets outside the fixed set (single-export workbooks).
	for name, rows := range sheets {
		switch name {
		case "Leads", "Companies", "Executives", "Messages":
			continue
		}
		if err := addSheet(file, name, rows); err != nil {
			return err
		}
	}
	return eris.Wrapf(file.Save(path), "export: save %s", path)
}

func addSheet(file *xlsx.File, name string, rows [][]string) error {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}
	return nil
}
