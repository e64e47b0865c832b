package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/sangkips/aluworks-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const budgetSheet = "Budget"

// ExportRow is one budget line in the spreadsheet
type ExportRow struct {
	Index       int
	Category    string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// ExportData holds everything written to a budget workbook
type ExportData struct {
	Title         string
	ProjectNumber string
	Customer      string
	Currency      string
	Rows          []ExportRow
	Breakdown     cost.Breakdown
}

// ExportService writes project budgets to XLSX workbooks
type ExportService struct {
	budgets  *BudgetService
	settings *SettingsService
}

// NewExportService creates a new export service
func NewExportService(budgets *BudgetService, settings *SettingsService) *ExportService {
	return &ExportService{budgets: budgets, settings: settings}
}

// BudgetExport loads a project's budget and returns the collected export data
func (s *ExportService) BudgetExport(ctx context.Context, projectID uuid.UUID) (*ExportData, error) {
	project, budget, err := s.budgets.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	profile, err := s.settings.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	bd, err := cost.Aggregate(entity.LineItems(budget.Items), project.Markup())
	if err != nil {
		return nil, fieldError(err)
	}

	data := &ExportData{
		Title:         budget.Name,
		ProjectNumber: project.ProjectNumber,
		Currency:      profile.Currency,
		Rows:          make([]ExportRow, 0, len(budget.Items)),
		Breakdown:     bd,
	}
	if customer, err := s.budgets.customerName(ctx, project); err == nil {
		data.Customer = customer
	}
	for i, item := range budget.Items {
		data.Rows = append(data.Rows, ExportRow{
			Index:       i + 1,
			Category:    item.Category.String(),
			Description: item.Description,
			Unit:        utils.StringValue(item.Unit),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.LineItem().LineTotal(),
		})
	}
	return data, nil
}

// ExportBudget renders the budget workbook of a project and suggests a file name
func (s *ExportService) ExportBudget(ctx context.Context, projectID uuid.UUID) ([]byte, string, error) {
	data, err := s.BudgetExport(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	content, err := WriteBudgetWorkbook(data)
	if err != nil {
		return nil, "", err
	}
	return content, BudgetFileName(data), nil
}

// BudgetFileName is "<project-number>-<budget-name>.xlsx" in slug form
func BudgetFileName(data *ExportData) string {
	return utils.Slugify(data.ProjectNumber+" "+data.Title) + ".xlsx"
}

// WriteBudgetWorkbook lays out the items table followed by the breakdown
func WriteBudgetWorkbook(data *ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", budgetSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: budgetSheet}
	w.row(1, data.Title)
	w.style(1, 1, 1, bold)
	w.row(2, "Project", data.ProjectNumber)
	if data.Customer != "" {
		w.row(3, "Customer", data.Customer)
	}
	w.row(4, "Currency", data.Currency)

	header := 6
	w.row(header, "#", "Category", "Description", "Unit", "Quantity", "Unit price", "Total")
	w.style(header, 1, 7, bold)

	r := header + 1
	for _, row := range data.Rows {
		w.row(r, row.Index, row.Category, row.Description, row.Unit,
			row.Quantity.InexactFloat64(), row.UnitPrice.InexactFloat64(), row.Total.InexactFloat64())
		w.style(r, 6, 7, amount)
		r++
	}

	r++
	bd := data.Breakdown
	summary := []struct {
		label string
		value decimal.Decimal
	}{
		{"Materials", bd.Materials},
		{"Labor", bd.Labor},
		{"Equipment", bd.Equipment},
		{"Other", bd.Other},
		{"Workmanship fee", bd.WorkmanshipFee},
		{"Subtotal", bd.Subtotal},
		{fmt.Sprintf("Overhead (%s%%)", bd.OverheadPercentage.String()), bd.Overhead},
		{fmt.Sprintf("Profit (%s%%)", bd.ProfitMarginPercentage.String()), bd.Profit},
	}
	for _, line := range summary {
		w.cell(6, r, line.label)
		w.cell(7, r, line.value.InexactFloat64())
		w.style(r, 7, 7, amount)
		r++
	}
	w.cell(6, r, "TOTAL")
	w.cell(7, r, money.Round(bd.Total).InexactFloat64())
	w.style(r, 6, 6, bold)
	w.style(r, 7, 7, totalStyle)

	if w.err != nil {
		return nil, w.err
	}
	for col, width := range map[string]float64{"A": 5, "B": 14, "C": 40, "D": 8, "E": 10, "F": 18, "G": 14} {
		if err := f.SetColWidth(budgetSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the layout code stays linear
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) cell(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, name, value)
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	for i, v := range values {
		w.cell(i+1, row, v)
	}
}

func (w *sheetWriter) style(row, fromCol, toCol, style int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, style)
}
