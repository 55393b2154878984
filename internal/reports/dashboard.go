// Package reports renders admin data as downloadable workbooks.
package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetStats     = "Stats"
	SheetLanguages = "Languages"
	SheetPopular   = "PopularQuestions"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type LanguageRow struct {
	Language   string
	Percentage int
}

type PopularRow struct {
	Question string
	Count    int64
}

type Dashboard struct {
	TotalPolicies   int64
	ActiveCustomers int64
	MonthlyRevenue  string
	AcceptanceRate  int
	Languages       []LanguageRow
	Popular         []PopularRow
}

// DashboardWorkbook writes one sheet per dashboard panel, each with a header row.
func DashboardWorkbook(d Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStats); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	statRows := [][]any{
		{"Metric", "Value"},
		{"totalPolicies", d.TotalPolicies},
		{"activeCustomers", d.ActiveCustomers},
		{"monthlyRevenue", d.MonthlyRevenue},
		{"acceptanceRate", d.AcceptanceRate},
	}
	if err := writeRows(f, SheetStats, statRows); err != nil {
		return nil, err
	}

	langRows := [][]any{{"Language", "Percentage"}}
	for _, l := range d.Languages {
		langRows = append(langRows, []any{l.Language, l.Percentage})
	}
	if _, err := f.NewSheet(SheetLanguages); err != nil {
		return nil, fmt.Errorf("add sheet %s: %w", SheetLanguages, err)
	}
	if err := writeRows(f, SheetLanguages, langRows); err != nil {
		return nil, err
	}

	popRows := [][]any{{"Question", "Count"}}
	for _, p := range d.Popular {
		popRows = append(popRows, []any{p.Question, p.Count})
	}
	if _, err := f.NewSheet(SheetPopular); err != nil {
		return nil, fmt.Errorf("add sheet %s: %w", SheetPopular, err)
	}
	if err := writeRows(f, SheetPopular, popRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
