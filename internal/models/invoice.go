package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"

	DefaultHSNCode = "9985"
)

// ClientSnapshot copies the client's fields at invoice creation time so old
// invoices keep printing what was billed even if the client later changes.
type ClientSnapshot struct {
	CompanyName   string  `json:"companyName"`
	ContactPerson string  `json:"contactPerson"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       Address `json:"address"`
	GSTIN         string  `json:"gstin"`
}

// SnapshotOf builds the denormalized copy stored on invoices
func SnapshotOf(c *Client) ClientSnapshot {
	return ClientSnapshot{
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		GSTIN:         c.GSTIN,
	}
}

// LineItem is one billed row of an invoice
type LineItem struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsnCode"`
	Rate        decimal.Decimal `json:"rate"`
	WorkingDays decimal.Decimal `json:"workingDays"`
	Persons     int             `json:"persons"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Charge is a percentage together with the amount it produced
type Charge struct {
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

type BillingPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type Invoice struct {
	ID                int64           `json:"id"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	ClientID          int64           `json:"client"`
	ClientDetails     ClientSnapshot  `json:"clientDetails"`
	WorkOrder         string          `json:"workOrder"`
	BillingPeriod     *BillingPeriod  `json:"billingPeriod,omitempty"`
	Items             []LineItem      `json:"items"`
	MaterialCharges   decimal.Decimal `json:"materialCharges"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ManagementCharges Charge          `json:"managementCharges"`
	CGST              Charge          `json:"cgst"`
	SGST              Charge          `json:"sgst"`
	Total             decimal.Decimal `json:"total"`
	AmountInWords     string          `json:"amountInWords"`
	Status            string          `json:"status"`
	InvoiceDate       time.Time       `json:"invoiceDate"`
	DueDate           time.Time       `json:"dueDate"`
	Notes             string          `json:"notes"`
	CreatedBy         int64           `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// LineItemInput is a line as submitted. Amount is always recomputed.
type LineItemInput struct {
	Description string           `json:"description" validate:"required"`
	HSNCode     string           `json:"hsnCode"`
	Rate        decimal.Decimal  `json:"rate"`
	WorkingDays decimal.Decimal  `json:"workingDays"`
	Persons     *int             `json:"persons"`
	Quantity    *decimal.Decimal `json:"quantity"`
}

type PercentageInput struct {
	Percentage *decimal.Decimal `json:"percentage"`
}

type BillingPeriodInput struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// InvoiceRequest creates or replaces an invoice. Totals, words and the
// invoice number are derived server-side; any such fields in the body are ignored.
type InvoiceRequest struct {
	ClientID          int64               `json:"client" validate:"required"`
	WorkOrder         string              `json:"workOrder"`
	BillingPeriod     *BillingPeriodInput `json:"billingPeriod"`
	Items             []LineItemInput     `json:"items" validate:"required,min=1,dive"`
	MaterialCharges   decimal.Decimal     `json:"materialCharges"`
	ManagementCharges *PercentageInput    `json:"managementCharges"`
	CGST              *PercentageInput    `json:"cgst"`
	SGST              *PercentageInput    `json:"sgst"`
	Status            string              `json:"status" validate:"omitempty,oneof=draft unpaid paid overdue"`
	InvoiceDate       string              `json:"invoiceDate"`
	DueDate           string              `json:"dueDate"`
	Notes             string              `json:"notes"`
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	Status string
	Search string
}

// InvoiceStats summarizes receivables for the invoices dashboard
type InvoiceStats struct {
	Overdue          decimal.Decimal `json:"overdue"`
	DueWithin30Days  decimal.Decimal `json:"dueWithin30Days"`
	UpcomingPayout   decimal.Decimal `json:"upcomingPayout"`
	AvgTimeToGetPaid int             `json:"avgTimeToGetPaid"`
}

// InvoicePreview is the compute-only result for the create form
type InvoicePreview struct {
	Items             []LineItem      `json:"items"`
	MaterialCharges   decimal.Decimal `json:"materialCharges"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ManagementCharges Charge          `json:"managementCharges"`
	TaxBase           decimal.Decimal `json:"taxBase"`
	CGST              Charge          `json:"cgst"`
	SGST              Charge          `json:"sgst"`
	Total             decimal.Decimal `json:"total"`
	AmountInWords     string          `json:"amountInWords"`
}

// InvoiceSummary is the slice of an invoice the receivables stats need
type InvoiceSummary struct {
	Status  string
	DueDate time.Time
	Total   decimal.Decimal
}
