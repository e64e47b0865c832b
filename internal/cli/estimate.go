package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/sangkips/aluworks-api/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// EstimateCmd prices a budget described in a JSON file, using the same body
// as POST /api/v1/budgets/estimate. Nothing is stored.
func EstimateCmd(load func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate [file.json]",
		Short: "Price a budget file and print the breakdown and quotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEstimate(args[0])
			if err != nil {
				return err
			}
			width, _ := cmd.Flags().GetInt("width")
			title, _ := cmd.Flags().GetString("title")
			return runEstimate(cmd.OutOrStdout(), load().Workshop, req, title, width)
		},
	}
	cmd.Flags().Int("width", 48, "receipt width in characters")
	cmd.Flags().String("title", "Estimate", "project name printed on the quotation")
	return cmd
}

func readEstimate(path string) (*request.EstimateRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var req request.EstimateRequest
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func runEstimate(w io.Writer, workshop config.WorkshopConfig, req *request.EstimateRequest, title string, width int) error {
	items := make([]service.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.ItemInput{
			Category:    it.Category,
			Description: it.Description,
			Unit:        it.Unit,
			Quantity:    it.Quantity.Decimal(),
			UnitPrice:   it.UnitPrice.Decimal(),
		})
	}

	// Estimate needs no repositories
	est, err := service.NewBudgetService(nil, nil, nil).Estimate(&service.EstimateInput{
		Items:                  items,
		WorkmanshipFee:         req.WorkmanshipFee.Decimal(),
		OverheadPercentage:     req.OverheadPercentage.Decimal(),
		ProfitMarginPercentage: req.ProfitMarginPercentage.Decimal(),
	})
	if err != nil {
		return err
	}

	printBreakdown(w, workshop.Currency, est.Breakdown)

	profile := &entity.WorkshopProfile{
		Name:     workshop.Name,
		Address:  workshop.Address,
		Phone:    workshop.Phone,
		Email:    workshop.Email,
		Currency: workshop.Currency,
		Timezone: workshop.Timezone,
	}
	lines := make([]entity.BudgetItem, 0, len(est.Lines))
	for _, l := range est.Lines {
		lines = append(lines, entity.BudgetItem{
			Category:    l.Category,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.Total,
		})
	}
	bd := est.Breakdown
	receipt := service.BuildProjectReceipt(profile, &entity.Project{Name: title}, lines,
		bd.ItemsTotal, service.QuoteAdjustments(bd), bd.Total)
	receipt.Title = "QUOTATION"
	receipt.Date = time.Now().Format("02 Jan 2006")

	fmt.Fprintln(w)
	fmt.Fprint(w, service.RenderReceiptText(receipt, width))
	return nil
}

func printBreakdown(w io.Writer, currency string, bd cost.Breakdown) {
	row := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(w, "%-26s %s %14s\n", label, currency, money.FormatNumber(amount, 2))
	}
	row("Materials", bd.Materials)
	row("Labor", bd.Labor)
	row("Equipment", bd.Equipment)
	row("Other", bd.Other)
	row("Items total", bd.ItemsTotal)
	row("Workmanship fee", bd.WorkmanshipFee)
	row("Subtotal", bd.Subtotal)
	row(fmt.Sprintf("Overhead (%s%%)", bd.OverheadPercentage.String()), bd.Overhead)
	row(fmt.Sprintf("Profit (%s%%)", bd.ProfitMarginPercentage.String()), bd.Profit)
	row("TOTAL", bd.Total)
}
