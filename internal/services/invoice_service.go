package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"asf-backend/internal/billing"
	"asf-backend/internal/logger"
	"asf-backend/internal/metrics"
	"asf-backend/internal/models"
	"asf-backend/internal/numbering"
	"asf-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// avgTimeToGetPaid is reported as a fixed figure until payments are tracked
const avgTimeToGetPaid = 24

var (
	defaultManagementPct = decimal.NewFromInt(10)
	defaultCGSTPct       = decimal.NewFromInt(9)
	defaultSGSTPct       = decimal.NewFromInt(9)
)

type InvoiceStore interface {
	numbering.RecentIDReader
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	List(ctx context.Context, f models.InvoiceFilter) ([]*models.Invoice, error)
	Summaries(ctx context.Context) ([]models.InvoiceSummary, error)
	Delete(ctx context.Context, id int64) error
}

// ClientReader resolves the client an invoice bills
type ClientReader interface {
	Get(ctx context.Context, id int64) (*models.Client, error)
}

// StatsCache holds the serialized receivables stats between writes
type StatsCache interface {
	GetInvoiceStats(ctx context.Context) ([]byte, bool)
	SetInvoiceStats(ctx context.Context, data []byte)
	InvalidateInvoiceStats(ctx context.Context)
}

type noopCache struct{}

func (noopCache) GetInvoiceStats(context.Context) ([]byte, bool) { return nil, false }
func (noopCache) SetInvoiceStats(context.Context, []byte)        {}
func (noopCache) InvalidateInvoiceStats(context.Context)         {}

// InvoiceSettings carries the numbering series and invoice defaults
type InvoiceSettings struct {
	Pattern            numbering.Pattern
	AllocationAttempts int
	DefaultDueDays     int
}

type InvoiceService struct {
	Repo     InvoiceStore
	Clients  ClientReader
	Cache    StatsCache
	Settings InvoiceSettings

	now func() time.Time
}

func NewInvoiceService(repo InvoiceStore, clients ClientReader, cache StatsCache, settings InvoiceSettings) *InvoiceService {
	if settings.AllocationAttempts < 1 {
		settings.AllocationAttempts = 1
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &InvoiceService{
		Repo:     repo,
		Clients:  clients,
		Cache:    cache,
		Settings: settings,
		now:      timeutil.Now,
	}
}

// draft is an invoice body with every derived figure filled in
type draft struct {
	items    []models.LineItem
	material decimal.Decimal
	totals   billing.Totals
	mgmtPct  decimal.Decimal
	cgstPct  decimal.Decimal
	sgstPct  decimal.Decimal
	words    string
}

func pctOr(in *models.PercentageInput, def decimal.Decimal) decimal.Decimal {
	if in == nil || in.Percentage == nil {
		return def
	}
	return *in.Percentage
}

// compute applies line defaults and runs the calculator. Any totals the
// caller sent are never read.
func compute(req *models.InvoiceRequest) (*draft, error) {
	if len(req.Items) == 0 {
		return nil, billing.NewValidationError("items", len(req.Items), "at least one item is required")
	}

	d := &draft{
		items:    make([]models.LineItem, len(req.Items)),
		material: req.MaterialCharges,
		mgmtPct:  pctOr(req.ManagementCharges, defaultManagementPct),
		cgstPct:  pctOr(req.CGST, defaultCGSTPct),
		sgstPct:  pctOr(req.SGST, defaultSGSTPct),
	}

	calcItems := make([]billing.Item, len(req.Items))
	for i, in := range req.Items {
		line := models.LineItem{
			Description: strings.TrimSpace(in.Description),
			HSNCode:     in.HSNCode,
			Rate:        in.Rate,
			WorkingDays: in.WorkingDays,
			Persons:     1,
			Quantity:    decimal.NewFromInt(1),
		}
		if line.HSNCode == "" {
			line.HSNCode = models.DefaultHSNCode
		}
		if in.Persons != nil {
			line.Persons = *in.Persons
		}
		if in.Quantity != nil {
			line.Quantity = *in.Quantity
		}
		d.items[i] = line
		calcItems[i] = billing.Item{
			Rate:        line.Rate,
			WorkingDays: line.WorkingDays,
			Persons:     line.Persons,
			Quantity:    line.Quantity,
		}
	}

	totals, err := billing.Compute(calcItems, d.material, billing.Rates{
		ManagementPct: d.mgmtPct,
		CGSTPct:       d.cgstPct,
		SGSTPct:       d.sgstPct,
	})
	if err != nil {
		return nil, err
	}
	for i := range d.items {
		d.items[i].Amount = totals.Amounts[i]
	}
	d.totals = totals
	d.words = billing.AmountInWords(totals.Total.Round(2))
	return d, nil
}

// apply copies the derived figures onto inv at full precision so the stored
// parts always add up to the stored total. Rounding to paise is left to
// whatever prints the invoice.
func (d *draft) apply(inv *models.Invoice) {
	inv.Items = make([]models.LineItem, len(d.items))
	copy(inv.Items, d.items)
	inv.MaterialCharges = d.material
	inv.Subtotal = d.totals.Subtotal
	inv.ManagementCharges = models.Charge{Percentage: d.mgmtPct, Amount: d.totals.ManagementAmount}
	inv.CGST = models.Charge{Percentage: d.cgstPct, Amount: d.totals.CGSTAmount}
	inv.SGST = models.Charge{Percentage: d.sgstPct, Amount: d.totals.SGSTAmount}
	inv.Total = d.totals.Total
	inv.AmountInWords = d.words
}

// Preview computes totals for an unsaved invoice
func (s *InvoiceService) Preview(req *models.InvoiceRequest) (*models.InvoicePreview, error) {
	d, err := compute(req)
	if err != nil {
		return nil, err
	}
	var inv models.Invoice
	d.apply(&inv)
	return &models.InvoicePreview{
		Items:             inv.Items,
		MaterialCharges:   inv.MaterialCharges,
		Subtotal:          inv.Subtotal,
		ManagementCharges: inv.ManagementCharges,
		TaxBase:           d.totals.TaxBase,
		CGST:              inv.CGST,
		SGST:              inv.SGST,
		Total:             inv.Total,
		AmountInWords:     inv.AmountInWords,
	}, nil
}

// applyDates fills invoice and due dates, defaulting to today and today
// plus the configured number of days.
func (s *InvoiceService) applyDates(inv *models.Invoice, req *models.InvoiceRequest) error {
	inv.InvoiceDate = timeutil.StartOfDay(s.now())
	if req.InvoiceDate != "" {
		t, err := timeutil.ParseDate(req.InvoiceDate)
		if err != nil {
			return invalid("invoiceDate: %v", err)
		}
		inv.InvoiceDate = t
	}

	inv.DueDate = inv.InvoiceDate.AddDate(0, 0, s.Settings.DefaultDueDays)
	if req.DueDate != "" {
		t, err := timeutil.ParseDate(req.DueDate)
		if err != nil {
			return invalid("dueDate: %v", err)
		}
		inv.DueDate = t
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return invalid("dueDate must not be before invoiceDate")
	}

	inv.BillingPeriod = nil
	if bp := req.BillingPeriod; bp != nil && bp.From != "" && bp.To != "" {
		from, err := timeutil.ParseDate(bp.From)
		if err != nil {
			return invalid("billingPeriod.from: %v", err)
		}
		to, err := timeutil.ParseDate(bp.To)
		if err != nil {
			return invalid("billingPeriod.to: %v", err)
		}
		if to.Before(from) {
			return invalid("billingPeriod.to must not be before billingPeriod.from")
		}
		inv.BillingPeriod = &models.BillingPeriod{From: from, To: to}
	}
	return nil
}

func (s *InvoiceService) loadClient(ctx context.Context, id int64) (*models.Client, error) {
	c, err := s.Clients.Get(ctx, id)
	if err != nil {
		return nil, missing("Client", err)
	}
	return c, nil
}

// CreateInvoice snapshots the client, computes every derived field and
// stores the invoice under the next free number. A number taken by a
// concurrent writer is re-allocated up to AllocationAttempts times.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.InvoiceRequest, createdBy int64) (*models.Invoice, error) {
	client, err := s.loadClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	d, err := compute(req)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ClientID:      client.ID,
		ClientDetails: models.SnapshotOf(client),
		WorkOrder:     strings.TrimSpace(req.WorkOrder),
		Status:        req.Status,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if err := s.applyDates(inv, req); err != nil {
		return nil, err
	}
	d.apply(inv)

	if err := s.persistNew(ctx, inv); err != nil {
		return nil, err
	}

	s.Cache.InvalidateInvoiceStats(ctx)
	metrics.DocumentsCreated.WithLabelValues(s.Settings.Pattern.Collection).Inc()
	logger.WithContext(ctx).Info().
		Str("invoice_number", inv.InvoiceNumber).
		Int64("client_id", inv.ClientID).
		Str("total", billing.Display(inv.Total)).
		Msg("invoice created")
	return inv, nil
}

func (s *InvoiceService) persistNew(ctx context.Context, inv *models.Invoice) error {
	var err error
	for attempt := 1; attempt <= s.Settings.AllocationAttempts; attempt++ {
		inv.InvoiceNumber, err = numbering.Allocate(ctx, s.Repo, s.Settings.Pattern)
		if err != nil {
			return err
		}

		err = s.Repo.Create(ctx, inv)
		if !errors.Is(err, numbering.ErrUniquenessConflict) {
			return clientGone("Client", err)
		}

		metrics.AllocationConflicts.WithLabelValues(s.Settings.Pattern.Collection).Inc()
		logger.WithContext(ctx).Warn().
			Str("invoice_number", inv.InvoiceNumber).
			Int("attempt", attempt).
			Msg("invoice number taken, allocating again")
	}
	return err
}

// UpdateInvoice recomputes every derived field. The invoice number never
// changes; the client snapshot is refreshed only when the client changes.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id int64, req *models.InvoiceRequest) (*models.Invoice, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, missing("Invoice", err)
	}

	if req.ClientID != 0 && req.ClientID != inv.ClientID {
		client, err := s.loadClient(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		inv.ClientID = client.ID
		inv.ClientDetails = models.SnapshotOf(client)
	}

	d, err := compute(req)
	if err != nil {
		return nil, err
	}

	inv.WorkOrder = strings.TrimSpace(req.WorkOrder)
	inv.Notes = req.Notes
	if req.Status != "" {
		inv.Status = req.Status
	}
	if req.InvoiceDate == "" {
		req.InvoiceDate = inv.InvoiceDate.Format(time.RFC3339)
	}
	if req.DueDate == "" {
		req.DueDate = inv.DueDate.Format(time.RFC3339)
	}
	if err := s.applyDates(inv, req); err != nil {
		return nil, err
	}
	d.apply(inv)

	if err := s.Repo.Update(ctx, inv); err != nil {
		return nil, missing("Invoice", clientGone("Client", err))
	}
	s.Cache.InvalidateInvoiceStats(ctx)
	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := s.Repo.Get(ctx, id)
	return inv, missing("Invoice", err)
}

func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	inv, err := s.Repo.GetByNumber(ctx, number)
	return inv, missing("Invoice", err)
}

// ListInvoices returns filtered invoices. "all" means no status filter.
func (s *InvoiceService) ListInvoices(ctx context.Context, f models.InvoiceFilter) ([]*models.Invoice, error) {
	if f.Status == "all" {
		f.Status = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.Repo.List(ctx, f)
}

// Stats summarizes receivables across all invoices, served from cache when warm
func (s *InvoiceService) Stats(ctx context.Context) (models.InvoiceStats, error) {
	var stats models.InvoiceStats
	if data, ok := s.Cache.GetInvoiceStats(ctx); ok {
		if err := json.Unmarshal(data, &stats); err == nil {
			return stats, nil
		}
	}

	summaries, err := s.Repo.Summaries(ctx)
	if err != nil {
		return stats, err
	}
	stats = ComputeInvoiceStats(summaries, s.now())

	if data, err := json.Marshal(stats); err == nil {
		s.Cache.SetInvoiceStats(ctx, data)
	}
	return stats, nil
}

// ComputeInvoiceStats buckets invoice totals: unpaid and past due is
// overdue, unpaid and due within 30 days is dueWithin30Days, and paid
// invoices count towards upcomingPayout.
func ComputeInvoiceStats(summaries []models.InvoiceSummary, now time.Time) models.InvoiceStats {
	stats := models.InvoiceStats{
		Overdue:          decimal.Zero,
		DueWithin30Days:  decimal.Zero,
		UpcomingPayout:   decimal.Zero,
		AvgTimeToGetPaid: avgTimeToGetPaid,
	}
	horizon := now.AddDate(0, 0, 30)

	for _, inv := range summaries {
		switch inv.Status {
		case models.InvoiceStatusUnpaid:
			if inv.DueDate.Before(now) {
				stats.Overdue = stats.Overdue.Add(inv.Total)
			} else if !inv.DueDate.After(horizon) {
				stats.DueWithin30Days = stats.DueWithin30Days.Add(inv.Total)
			}
		case models.InvoiceStatusPaid:
			stats.UpcomingPayout = stats.UpcomingPayout.Add(inv.Total)
		}
	}
	return stats
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return missing("Invoice", err)
	}
	s.Cache.InvalidateInvoiceStats(ctx)
	return nil
}
