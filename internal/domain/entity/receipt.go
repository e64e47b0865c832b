package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the workshop identity printed at the top of a document.
type ReceiptHeader struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ReceiptParty is the bill-to block.
type ReceiptParty struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Company     string `json:"company,omitempty"`
	SiteAddress string `json:"site_address,omitempty"`
}

// ReceiptLine represents a single line item on a receipt.
type ReceiptLine struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptAdjustment is a row below the item table (labor cost, overhead, ...).
type ReceiptAdjustment struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Receipt is a value object representing a printable invoice or quote.
// It is not persisted; it is composed from a project and its cost totals.
type Receipt struct {
	Header      ReceiptHeader       `json:"header"`
	Title       string              `json:"title"`
	DocumentNo  string              `json:"document_no"`
	Date        string              `json:"date"`
	Project     string              `json:"project"`
	BillTo      ReceiptParty        `json:"bill_to"`
	Lines       []ReceiptLine       `json:"lines"`
	ItemsTotal  decimal.Decimal     `json:"items_total"`
	Adjustments []ReceiptAdjustment `json:"adjustments,omitempty"`
	Total       decimal.Decimal     `json:"total"`
	Footer      string              `json:"footer,omitempty"`
}
