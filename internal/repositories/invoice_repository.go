package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asf-backend/internal/models"
	"asf-backend/internal/numbering"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `id, invoice_number, client_id, client_details, work_order, billing_from, billing_to,
	items, material_charges, subtotal, management_pct, management_amount, cgst_pct, cgst_amount,
	sgst_pct, sgst_amount, total, amount_in_words, status, invoice_date, due_date, notes,
	COALESCE(created_by, 0), created_at, updated_at`

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	var from, to *time.Time
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.ClientDetails, &inv.WorkOrder,
		&from, &to, &inv.Items, &inv.MaterialCharges, &inv.Subtotal,
		&inv.ManagementCharges.Percentage, &inv.ManagementCharges.Amount,
		&inv.CGST.Percentage, &inv.CGST.Amount, &inv.SGST.Percentage, &inv.SGST.Amount,
		&inv.Total, &inv.AmountInWords, &inv.Status, &inv.InvoiceDate, &inv.DueDate, &inv.Notes,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if from != nil && to != nil {
		inv.BillingPeriod = &models.BillingPeriod{From: *from, To: *to}
	}
	return &inv, nil
}

func billingArgs(inv *models.Invoice) (from, to interface{}) {
	if inv.BillingPeriod == nil {
		return nil, nil
	}
	return inv.BillingPeriod.From, inv.BillingPeriod.To
}

// RecentExternalIDs lists invoice numbers, newest record first.
func (r *InvoiceRepository) RecentExternalIDs(ctx context.Context, offset, limit int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT invoice_number FROM invoices
         WHERE invoice_number <> ''
         ORDER BY created_at DESC, id DESC
         OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts inv. A taken invoice number surfaces as *numbering.ConflictError.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	from, to := billingArgs(inv)
	var createdBy interface{}
	if inv.CreatedBy != 0 {
		createdBy = inv.CreatedBy
	}

	err := r.DB.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, client_id, client_details, work_order, billing_from, billing_to,
             items, material_charges, subtotal, management_pct, management_amount, cgst_pct, cgst_amount,
             sgst_pct, sgst_amount, total, amount_in_words, status, invoice_date, due_date, notes, created_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
         RETURNING id, created_at, updated_at`,
		inv.InvoiceNumber, inv.ClientID, inv.ClientDetails, inv.WorkOrder, from, to,
		inv.Items, inv.MaterialCharges, inv.Subtotal,
		inv.ManagementCharges.Percentage, inv.ManagementCharges.Amount,
		inv.CGST.Percentage, inv.CGST.Amount, inv.SGST.Percentage, inv.SGST.Amount,
		inv.Total, inv.AmountInWords, inv.Status, inv.InvoiceDate, inv.DueDate, inv.Notes, createdBy,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)

	if uniqueViolation(err, "invoices_invoice_number_key") {
		return &numbering.ConflictError{Collection: "invoices", Value: inv.InvoiceNumber}
	}
	if foreignKeyViolationOn(err, "invoices_client_id_fkey") {
		return ErrMissingClient
	}
	return err
}

// Update rewrites everything except the invoice number and creator
func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	from, to := billingArgs(inv)

	err := r.DB.QueryRow(ctx,
		`UPDATE invoices SET client_id=$1, client_details=$2, work_order=$3, billing_from=$4, billing_to=$5,
             items=$6, material_charges=$7, subtotal=$8, management_pct=$9, management_amount=$10,
             cgst_pct=$11, cgst_amount=$12, sgst_pct=$13, sgst_amount=$14, total=$15, amount_in_words=$16,
             status=$17, invoice_date=$18, due_date=$19, notes=$20, updated_at=CURRENT_TIMESTAMP
         WHERE id=$21
         RETURNING invoice_number, created_at, updated_at`,
		inv.ClientID, inv.ClientDetails, inv.WorkOrder, from, to,
		inv.Items, inv.MaterialCharges, inv.Subtotal,
		inv.ManagementCharges.Percentage, inv.ManagementCharges.Amount,
		inv.CGST.Percentage, inv.CGST.Amount, inv.SGST.Percentage, inv.SGST.Amount,
		inv.Total, inv.AmountInWords, inv.Status, inv.InvoiceDate, inv.DueDate, inv.Notes, inv.ID,
	).Scan(&inv.InvoiceNumber, &inv.CreatedAt, &inv.UpdatedAt)
	if foreignKeyViolationOn(err, "invoices_client_id_fkey") {
		return ErrMissingClient
	}
	return notFound(err)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	return scanInvoice(r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id))
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return scanInvoice(r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number=$1`, number))
}

// List returns matching invoices, latest invoice date first
func (r *InvoiceRepository) List(ctx context.Context, f models.InvoiceFilter) ([]*models.Invoice, error) {
	var conds []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(invoice_number ILIKE $%d OR client_details->>'companyName' ILIKE $%d OR client_details->>'email' ILIKE $%d)",
			n, n, n))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY invoice_date DESC, id DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Summaries returns status, due date and total of every invoice
func (r *InvoiceRepository) Summaries(ctx context.Context) ([]models.InvoiceSummary, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, due_date, total FROM invoices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InvoiceSummary
	for rows.Next() {
		var s models.InvoiceSummary
		if err := rows.Scan(&s.Status, &s.DueDate, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
