package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/sangkips/aluworks-api/pkg/printer"
	"github.com/sangkips/aluworks-api/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	invoiceTitle  = "INVOICE"
	quoteTitle    = "QUOTATION"
	receiptDate   = "02 Jan 2006"
	defaultFooter = "Thank you for your business!"
)

// PrinterService builds project invoices and quotes and sends them to the
// receipt printer.
type PrinterService struct {
	printer     printer.Printer
	width       int
	projectRepo repository.ProjectRepository
	settings    *SettingsService
	now         func() time.Time
}

// NewPrinterService creates a new printer service. width is the paper width
// in characters.
func NewPrinterService(
	p printer.Printer,
	width int,
	projectRepo repository.ProjectRepository,
	settings *SettingsService,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		width:       width,
		projectRepo: projectRepo,
		settings:    settings,
		now:         time.Now,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(),
		Type:       kind,
		Width:      s.width,
	}
}

// TestPrint sends a sample quote to the printer and returns it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	profile, err := s.settings.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	items := []entity.BudgetItem{
		{Category: enum.ItemCategoryMaterial, Description: "Test profile 6m", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		{Category: enum.ItemCategoryOther, Description: "Test fitting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
	}
	for i := range items {
		items[i].TotalPrice = items[i].LineItem().LineTotal()
	}
	project := &entity.Project{ProjectNumber: "TEST-001", Name: "Printer test"}
	receipt, err := s.quote(profile, project, items)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// Invoice composes the invoice of a project from the project record model.
func (s *PrinterService) Invoice(ctx context.Context, projectID uuid.UUID) (*entity.Receipt, error) {
	profile, project, items, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	pc, err := cost.ProjectTotals(entity.LineItems(items), project.LaborCost, project.ManualCost)
	if err != nil {
		return nil, fieldError(err)
	}

	var adjustments []entity.ReceiptAdjustment
	adjustments = appendNonZero(adjustments, "Labor cost", pc.LaborCost)
	adjustments = appendNonZero(adjustments, "Manual cost", pc.ManualCost)

	r := BuildProjectReceipt(profile, project, items, pc.ItemsTotal, adjustments, pc.Total)
	r.Title = invoiceTitle
	r.Date = s.date(profile)
	return r, nil
}

// Quote composes the budget quote of a project from the markup model.
func (s *PrinterService) Quote(ctx context.Context, projectID uuid.UUID) (*entity.Receipt, error) {
	profile, project, items, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.quote(profile, project, items)
}

func (s *PrinterService) quote(profile *entity.WorkshopProfile, project *entity.Project, items []entity.BudgetItem) (*entity.Receipt, error) {
	bd, err := cost.Aggregate(entity.LineItems(items), project.Markup())
	if err != nil {
		return nil, fieldError(err)
	}

	r := BuildProjectReceipt(profile, project, items, bd.ItemsTotal, QuoteAdjustments(bd), bd.Total)
	r.Title = quoteTitle
	r.Date = s.date(profile)
	return r, nil
}

// QuoteAdjustments lists the markup rows of a breakdown that are not zero.
func QuoteAdjustments(bd cost.Breakdown) []entity.ReceiptAdjustment {
	var adjustments []entity.ReceiptAdjustment
	adjustments = appendNonZero(adjustments, "Workmanship fee", bd.WorkmanshipFee)
	adjustments = appendNonZero(adjustments, fmt.Sprintf("Overhead (%s%%)", bd.OverheadPercentage.String()), bd.Overhead)
	adjustments = appendNonZero(adjustments, fmt.Sprintf("Profit (%s%%)", bd.ProfitMarginPercentage.String()), bd.Profit)
	return adjustments
}

func appendNonZero(rows []entity.ReceiptAdjustment, label string, amount decimal.Decimal) []entity.ReceiptAdjustment {
	if amount.IsZero() {
		return rows
	}
	return append(rows, entity.ReceiptAdjustment{Label: label, Amount: amount})
}

// PrintProjectInvoice prints the invoice of a project. The receipt is
// returned even when the printer fails.
func (s *PrinterService) PrintProjectInvoice(ctx context.Context, projectID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.Invoice(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		log.Printf("Printer error (project %s): %v", projectID, err)
		return receipt, fmt.Errorf("failed to print invoice: %w", err)
	}
	return receipt, nil
}

// RenderText renders a receipt as plain text at the printer width.
func (s *PrinterService) RenderText(r *entity.Receipt) string {
	return RenderReceiptText(r, s.width)
}

func (s *PrinterService) load(ctx context.Context, projectID uuid.UUID) (*entity.WorkshopProfile, *entity.Project, []entity.BudgetItem, error) {
	project, err := s.projectRepo.GetWithDetails(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	if project == nil {
		return nil, nil, nil, apperror.NewNotFoundError("Project")
	}
	profile, err := s.settings.GetProfile(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	var items []entity.BudgetItem
	if project.Budget != nil {
		items = project.Budget.Items
	}
	return profile, project, items, nil
}

// date formats today in the workshop's time zone, falling back to UTC
func (s *PrinterService) date(profile *entity.WorkshopProfile) string {
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil || profile.Timezone == "" {
		loc = time.UTC
	}
	return s.now().In(loc).Format(receiptDate)
}

// BuildProjectReceipt lays out a project's items with totals that were
// already computed by one of the cost models. Nothing is recomputed here:
// line amounts are the items' stored TotalPrice.
func BuildProjectReceipt(
	profile *entity.WorkshopProfile,
	project *entity.Project,
	items []entity.BudgetItem,
	itemsTotal decimal.Decimal,
	adjustments []entity.ReceiptAdjustment,
	total decimal.Decimal,
) *entity.Receipt {
	r := &entity.Receipt{
		Header:      profile.ReceiptHeader(),
		DocumentNo:  project.ProjectNumber,
		Project:     project.Name,
		ItemsTotal:  itemsTotal,
		Adjustments: adjustments,
		Total:       total,
		Footer:      profile.ReceiptFooter,
		Lines:       make([]entity.ReceiptLine, 0, len(items)),
	}
	if r.Footer == "" {
		r.Footer = defaultFooter
	}

	if c := project.Customer; c != nil {
		r.BillTo = entity.ReceiptParty{
			Name:    c.FullName,
			Phone:   utils.StringValue(c.Phone),
			Email:   utils.StringValue(c.Email),
			Company: utils.StringValue(c.Company),
		}
	}
	switch {
	case project.SiteAddress != nil:
		r.BillTo.SiteAddress = *project.SiteAddress
	case project.Site != nil:
		r.BillTo.SiteAddress = project.Site.FullAddress()
	}

	for _, item := range items {
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Quantity:    item.Quantity,
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			Amount:      item.TotalPrice,
		})
	}
	return r
}

// RenderReceiptText renders the receipt layout as plain text.
func RenderReceiptText(r *entity.Receipt, width int) string {
	doc := printer.NewTextDocument(width)
	layoutReceipt(doc, r)
	return doc.String()
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	layoutReceipt(doc, r)
	doc.FeedLines(3).
		PartialCut()
	return doc.Bytes()
}

func layoutReceipt(doc *printer.Document, r *entity.Receipt) {
	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	for _, line := range []string{r.Header.Address, r.Header.Phone, r.Header.Email} {
		if line != "" {
			doc.Text(line)
		}
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('=')

	doc.SetBold(true).
		Text(r.Title).
		SetBold(false).
		KeyValue("No:", r.DocumentNo).
		KeyValue("Date:", r.Date)
	if r.Project != "" {
		doc.KeyValue("Project:", r.Project)
	}

	// Bill to
	doc.Separator('-').
		Text("Bill to:")
	for _, line := range []string{r.BillTo.Name, r.BillTo.Company, r.BillTo.Phone, r.BillTo.Email, r.BillTo.SiteAddress} {
		if line != "" {
			doc.Text(line)
		}
	}

	doc.Separator('-')

	// Items
	if len(r.Lines) == 0 {
		doc.Text("No items")
	}
	for _, line := range r.Lines {
		doc.ItemLine(line.Quantity.String(), line.Description, money.FormatPlain(line.UnitPrice), money.FormatPlain(line.Amount))
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Items total:", money.Format(r.ItemsTotal, 2))
	for _, adj := range r.Adjustments {
		doc.KeyValue(adj.Label+":", money.Format(adj.Amount, 2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money.Format(r.Total, 2)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}
}
