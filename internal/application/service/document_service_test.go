package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/pkg/email"
	"github.com/sangkips/aluworks-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type recordingSender struct {
	sent []email.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.jobs = append(p.jobs, data)
	return p.err
}
func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }
func (p *recordingPrinter) Kind() string      { return "network" }

func TestContactSubmitSendsBothMessages(t *testing.T) {
	f := newFixture(t)
	sender := &recordingSender{}
	contact := NewContactService(sender, "ops@aluworks.sl", f.settings)

	msg, err := contact.Submit(context.Background(), &ContactInput{
		Name:    " Aminata ",
		Email:   "aminata@example.com",
		Subject: "Sliding doors",
		Message: "Please quote three sliding doors.",
	})
	require.NoError(t, err)
	assert.Equal(t, ContactReceived, msg)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ops@aluworks.sl", sender.sent[0].To)
	assert.Equal(t, "aminata@example.com", sender.sent[0].ReplyTo)
	assert.Equal(t, "New enquiry from Aminata: Sliding doors", sender.sent[0].Subject)
	assert.Equal(t, "aminata@example.com", sender.sent[1].To)
	assert.Contains(t, sender.sent[1].Subject, testWorkshop.Name)
}

func TestContactSubmitUsesBareAddress(t *testing.T) {
	f := newFixture(t)
	sender := &recordingSender{}
	contact := NewContactService(sender, "ops@aluworks.sl", f.settings)

	_, err := contact.Submit(context.Background(), &ContactInput{
		Name:    "Bob",
		Email:   "Bob Smith <bob@example.com>",
		Message: "Need a window frame.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "bob@example.com", sender.sent[0].ReplyTo)
	assert.Equal(t, "bob@example.com", sender.sent[1].To)
}

func TestContactSubmitMasksDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	sender := &recordingSender{err: errors.New("smtp: connection refused")}
	contact := NewContactService(sender, "ops@aluworks.sl", f.settings)

	msg, err := contact.Submit(context.Background(), &ContactInput{Name: "A", Email: "a@example.com", Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, ContactReceived, msg)
	assert.Len(t, sender.sent, 2)
}

func TestContactSubmitRequiresFields(t *testing.T) {
	f := newFixture(t)
	sender := &recordingSender{}
	contact := NewContactService(sender, "ops@aluworks.sl", f.settings)

	tests := []struct {
		name  string
		input ContactInput
		want  error
	}{
		{"missing email", ContactInput{Name: "A", Message: "Hi"}, ErrContactIncomplete},
		{"blank name", ContactInput{Name: "  ", Email: "a@example.com", Message: "Hi"}, ErrContactIncomplete},
		{"missing message", ContactInput{Name: "A", Email: "a@example.com"}, ErrContactIncomplete},
		{"bad email", ContactInput{Name: "A", Email: "not-an-address", Message: "Hi"}, ErrContactEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contact.Submit(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, sender.sent)
}

func TestInvoiceUsesProjectRecordModel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.printer.now = func() time.Time { return time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC) }
	p := f.project(t, f.customer(t, "Aminata Kamara").ID, &CreateProjectInput{
		Name:               "Shopfront glazing",
		LaborCost:          dec("40"),
		OverheadPercentage: dec("10"),
		SiteAddress:        str("22 Pademba Road"),
		Items:              scenarioItems(),
	})

	r, err := f.printer.Invoice(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE", r.Title)
	assert.Equal(t, p.ProjectNumber, r.DocumentNo)
	assert.Equal(t, "18 Oct 2026", r.Date)
	assert.Equal(t, testWorkshop.Name, r.Header.Name)
	assert.Equal(t, "Aminata Kamara", r.BillTo.Name)
	assert.Equal(t, "22 Pademba Road", r.BillTo.SiteAddress)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, "100.00", r.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "200.00", r.ItemsTotal.StringFixed(2))
	require.Len(t, r.Adjustments, 1)
	assert.Equal(t, "Labor cost", r.Adjustments[0].Label)
	assert.Equal(t, "240.00", r.Total.StringFixed(2))

	text := f.printer.RenderText(r)
	assert.Contains(t, text, "INVOICE")
	assert.Contains(t, text, "Aluminium profile 6m")
	assert.Contains(t, text, "  2 x 50.00")
	assert.Contains(t, text, "SLE 240.00")
	assert.NotContains(t, text, "Manual cost")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestQuoteUsesMarkupModel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.printer.now = func() time.Time { return time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC) }
	_, err := f.settings.UpdateProfile(ctx, &UpdateProfileInput{Timezone: str("Africa/Lagos"), ReceiptFooter: str("Valid for 30 days")})
	require.NoError(t, err)
	p := f.project(t, f.customer(t, "A").ID, &CreateProjectInput{
		Name:                   "Shopfront glazing",
		LaborCost:              dec("40"),
		OverheadPercentage:     dec("10"),
		ProfitMarginPercentage: dec("15"),
		Items:                  scenarioItems(),
	})

	r, err := f.printer.Quote(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "QUOTATION", r.Title)
	assert.Equal(t, "19 Oct 2026", r.Date)
	assert.Equal(t, "Valid for 30 days", r.Footer)
	require.Len(t, r.Adjustments, 2)
	assert.Equal(t, "Overhead (10%)", r.Adjustments[0].Label)
	assert.Equal(t, "Profit (15%)", r.Adjustments[1].Label)
	assert.Equal(t, "253.00", r.Total.StringFixed(2))
}

func TestPrintProjectInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "A").ID, nil)

	dev := &recordingPrinter{}
	f.printer.printer = dev
	r, err := f.printer.PrintProjectInvoice(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, dev.jobs, 1)
	assert.True(t, bytes.HasPrefix(dev.jobs[0], []byte{printer.ESC, '@'}))
	assert.Contains(t, string(dev.jobs[0]), r.DocumentNo)

	dev.err = errors.New("connection refused")
	r, err = f.printer.PrintProjectInvoice(ctx, p.ID)
	require.Error(t, err)
	assert.NotNil(t, r)

	_, err = f.printer.PrintProjectInvoice(ctx, uuid.New())
	requireAppError(t, err, http.StatusNotFound)

	status := f.printer.GetStatus()
	assert.True(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, "network", status.Type)
}

func TestPrinterTestPrint(t *testing.T) {
	f := newFixture(t)
	dev := &recordingPrinter{}
	f.printer.printer = dev

	r, err := f.printer.TestPrint(context.Background())
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, "20.00", r.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "25.00", r.Total.StringFixed(2))
	require.Len(t, dev.jobs, 1)
	assert.Contains(t, string(dev.jobs[0]), "TEST-001")

	dev.err = errors.New("paper out")
	r, err = f.printer.TestPrint(context.Background())
	require.Error(t, err)
	assert.NotNil(t, r)
}

func TestBuildProjectReceiptDoesNotRecompute(t *testing.T) {
	profile := &entity.WorkshopProfile{Name: "Aluworks"}
	project := &entity.Project{ProjectNumber: "PRJ-1", Name: "Doors"}
	items := []entity.BudgetItem{{Description: "Door", Quantity: dec("1"), UnitPrice: dec("10"), TotalPrice: dec("12.34")}}

	r := BuildProjectReceipt(profile, project, items, dec("10"), nil, dec("999.99"))
	assert.Equal(t, "999.99", r.Total.StringFixed(2))
	require.Len(t, r.Lines, 1)
	assert.Equal(t, "12.34", r.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, defaultFooter, r.Footer)
	assert.Empty(t, r.BillTo.SiteAddress)
}

func TestExportBudgetWorkbook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "Aminata Kamara").ID, &CreateProjectInput{
		Name:               "Shopfront glazing",
		OverheadPercentage: dec("10"),
		Items:              scenarioItems(),
	})

	content, name, err := f.exports.ExportBudget(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(p.ProjectNumber)+"-shopfront-glazing-budget.xlsx", name)

	wb, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer wb.Close()

	title, err := wb.GetCellValue(budgetSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Shopfront glazing budget", title)

	customer, err := wb.GetCellValue(budgetSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Aminata Kamara", customer)

	desc, err := wb.GetCellValue(budgetSheet, "C7")
	require.NoError(t, err)
	assert.Equal(t, "Aluminium profile 6m", desc)

	rows, err := wb.GetRows(budgetSheet)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	require.Len(t, last, 7)
	assert.Equal(t, "TOTAL", last[5])
	assert.Equal(t, "220.00", last[6])

	_, _, err = f.exports.ExportBudget(ctx, uuid.New())
	requireAppError(t, err, http.StatusNotFound)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "A")
	f.project(t, c.ID, &CreateProjectInput{Name: "One", Status: "In Progress", LaborCost: dec("50"), Items: scenarioItems()})
	f.project(t, c.ID, &CreateProjectInput{Name: "Two", Status: "Completed", Items: scenarioItems()})
	_, err := f.employees.CreateEmployee(ctx, &CreateEmployeeInput{FullName: "E"})
	require.NoError(t, err)

	stats, err := f.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.TotalEmployees)
	assert.Equal(t, int64(2), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.ActiveProjects)
	assert.Equal(t, "250.00", stats.PipelineValue.StringFixed(2))
	assert.Equal(t, "400.00", stats.BudgetedValue.StringFixed(2))
	require.Len(t, stats.ProjectsByStatus, 5)
	assert.Equal(t, StatusPoint{Status: "Planning", Count: 0}, stats.ProjectsByStatus[0])
	require.Len(t, stats.BudgetByCategory, 2)
	assert.Equal(t, "Material", stats.BudgetByCategory[0].Category)
	assert.Equal(t, "200.00", stats.BudgetByCategory[0].Amount.StringFixed(2))
	assert.Len(t, stats.RecentProjects, 2)
}

func TestSettingsProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.settings.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, testWorkshop.Name, profile.Name)

	again, err := f.settings.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	_, err = f.settings.UpdateProfile(ctx, &UpdateProfileInput{Timezone: str("Mars/Olympus")})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	updated, err := f.settings.UpdateProfile(ctx, &UpdateProfileInput{Currency: str(" usd "), Phone: str(" +232 99 ")})
	require.NoError(t, err)
	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, "+232 99", updated.Phone)
}
