// Package pdf renders tax invoices on the company letterhead.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"asf-backend/internal/billing"
	"asf-backend/internal/metrics"
	"asf-backend/internal/models"
	"asf-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "02-Jan-2006"

var one = decimal.NewFromInt(1)

// RenderInvoice lays out inv with company as the header and bank footer.
func RenderInvoice(inv *models.Invoice, company *models.Company) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	letterhead(pdf, tr, company)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 9, "TAX INVOICE", "1", 1, "C", true, 0, "")

	// Bill-to on the left, invoice references on the right
	c := inv.ClientDetails
	pdf.SetFont("Arial", "", 10)
	left := []string{
		"Bill To: " + c.CompanyName,
		c.ContactPerson,
		joinNonEmpty(", ", c.Address.Street, c.Address.Area),
		joinNonEmpty(", ", c.Address.City, c.Address.State, c.Address.Pincode),
		labelled("GSTIN: ", c.GSTIN),
	}
	right := []string{
		"Invoice No: " + inv.InvoiceNumber,
		"Invoice Date: " + timeutil.FormatIST(inv.InvoiceDate, dateLayout),
		"Due Date: " + timeutil.FormatIST(inv.DueDate, dateLayout),
		labelled("Work Order: ", inv.WorkOrder),
		"",
	}
	if bp := inv.BillingPeriod; bp != nil {
		right[4] = fmt.Sprintf("Period: %s to %s", timeutil.FormatIST(bp.From, dateLayout), timeutil.FormatIST(bp.To, dateLayout))
	}
	for i := range left {
		pdf.CellFormat(110, 6, tr(left[i]), "L", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, tr(right[i]), "R", 1, "L", false, 0, "")
	}
	pdf.CellFormat(190, 0, "", "T", 1, "", false, 0, "")
	pdf.Ln(3)

	itemsTable(pdf, tr, inv.Items)
	totalsBlock(pdf, inv)

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.MultiCell(190, 6, tr("Amount in words: Rupees "+inv.AmountInWords), "1", "L", false)

	footer(pdf, tr, company)

	if inv.Notes != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(190, 5, tr("Notes: "+inv.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	metrics.PDFsRendered.Inc()
	return buf.Bytes(), nil
}

func letterhead(pdf *gofpdf.Fpdf, tr func(string) string, company *models.Company) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 9, tr(company.CompanyName), "", 1, "C", false, 0, "")

	a := company.Address
	pdf.SetFont("Arial", "", 9)
	if addr := joinNonEmpty(", ", a.ShopNo, a.Floor, a.Building, a.Area, a.City, a.State, a.Pincode); addr != "" {
		pdf.CellFormat(190, 5, tr(addr), "", 1, "C", false, 0, "")
	}
	contact := joinNonEmpty(" | ", company.Contact.Phone, company.Contact.Email, company.Contact.Website)
	if contact != "" {
		pdf.CellFormat(190, 5, tr(contact), "", 1, "C", false, 0, "")
	}
	if ids := joinNonEmpty("   ", labelled("GSTIN: ", company.GSTIN), labelled("CIN: ", company.CINNo)); ids != "" {
		pdf.CellFormat(190, 5, tr(ids), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
}

func itemsTable(pdf *gofpdf.Fpdf, tr func(string) string, items []models.LineItem) {
	widths := []float64{10, 64, 18, 24, 18, 16, 40}
	headers := []string{"#", "Description", "HSN", "Rate", "Days", "Persons", "Amount"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, it := range items {
		days := ""
		if it.WorkingDays.IsPositive() {
			days = it.WorkingDays.String()
		} else if !it.Quantity.Equal(one) {
			days = "x" + it.Quantity.String()
		}
		desc := it.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(desc), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, it.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, billing.Display(it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, days, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%d", it.Persons), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, billing.Display(it.Amount), "1", 1, "R", false, 0, "")
	}
}

func totalsBlock(pdf *gofpdf.Fpdf, inv *models.Invoice) {
	rows := [][2]string{
		{"Subtotal", billing.Display(inv.Subtotal)},
		{fmt.Sprintf("Management Charges @ %s%%", inv.ManagementCharges.Percentage), billing.Display(inv.ManagementCharges.Amount)},
	}
	if inv.MaterialCharges.IsPositive() {
		rows = append(rows, [2]string{"Material Charges", billing.Display(inv.MaterialCharges)})
	}
	rows = append(rows,
		[2]string{fmt.Sprintf("CGST @ %s%%", inv.CGST.Percentage), billing.Display(inv.CGST.Amount)},
		[2]string{fmt.Sprintf("SGST @ %s%%", inv.SGST.Percentage), billing.Display(inv.SGST.Amount)},
	)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(150, 6, r[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, r[1], "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(150, 8, "Grand Total (Rs.)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, billing.Display(inv.Total), "1", 1, "R", true, 0, "")
}

func footer(pdf *gofpdf.Fpdf, tr func(string) string, company *models.Company) {
	b := company.BankDetails
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 6, "Bank Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range []string{
		labelled("Account Name: ", b.AccountHolderName),
		labelled("Bank: ", joinNonEmpty(", ", b.BankName, b.Branch)),
		labelled("Account No: ", b.AccountNumber),
		labelled("IFSC: ", b.IFSCCode),
	} {
		if line != "" {
			pdf.CellFormat(190, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}

	if company.PaymentTerms != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(190, 5, tr(company.PaymentTerms), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 6, tr("For "+company.CompanyName), "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 6, "Authorised Signatory", "", 1, "R", false, 0, "")
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + value
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
