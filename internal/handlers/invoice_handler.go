package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"asf-backend/internal/logger"
	"asf-backend/internal/middleware"
	"asf-backend/internal/models"
	"asf-backend/internal/pdf"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"
)

// CompanyProvider supplies the PDF letterhead
type CompanyProvider interface {
	GetSettings(ctx context.Context) (*models.Company, error)
}

// PDFArchive keeps a copy of every rendered invoice. Implementations must
// accept calls when archiving is switched off.
type PDFArchive interface {
	PutInvoicePDF(ctx context.Context, invoiceNumber string, data []byte) (string, error)
}

type InvoiceHandler struct {
	Service *services.InvoiceService
	Company CompanyProvider
	Archive PDFArchive
}

func NewInvoiceHandler(s *services.InvoiceService, company CompanyProvider, archive PDFArchive) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Company: company, Archive: archive}
}

// ListInvoices supports ?status= (draft|unpaid|paid|overdue|all) and ?search=
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoices, err := h.Service.ListInvoices(r.Context(), models.InvoiceFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err, "Error fetching invoices")
		return
	}
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching invoices")
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Invoices retrieved successfully",
		"count":    len(invoices),
		"stats":    stats,
		"invoices": invoices,
	})
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching invoice")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Invoice retrieved successfully",
		"invoice": invoice,
	})
}

// GetInvoiceByNumber takes ?number= since invoice numbers contain slashes
func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	if number == "" {
		utils.Message(w, http.StatusBadRequest, "number is required")
		return
	}
	invoice, err := h.Service.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching invoice")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Invoice retrieved successfully",
		"invoice": invoice,
	})
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	invoice, err := h.Service.CreateInvoice(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, r, err, "Error creating invoice")
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	var req models.InvoiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	invoice, err := h.Service.UpdateInvoice(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Error updating invoice")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Invoice updated successfully",
		"invoice": invoice,
	})
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	if err := h.Service.DeleteInvoice(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting invoice")
		return
	}
	utils.Message(w, http.StatusOK, "Invoice deleted successfully")
}

// Preview prices a draft without saving it or allocating a number. Only
// the pricing inputs are checked; the client and descriptions may be blank.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	preview, err := h.Service.Preview(&req)
	if err != nil {
		writeServiceError(w, r, err, "Error computing invoice")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"preview": preview})
}

// PDF renders the invoice on the company letterhead and archives a copy
// when object storage is configured. Archive failures do not fail the
// download.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching invoice")
		return
	}
	company, err := h.Company.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch company settings")
		return
	}

	data, err := pdf.RenderInvoice(invoice, company)
	if err != nil {
		writeServiceError(w, r, err, "Error rendering invoice")
		return
	}

	if h.Archive != nil {
		if key, err := h.Archive.PutInvoicePDF(r.Context(), invoice.InvoiceNumber, data); err != nil {
			logger.WithContext(r.Context()).Warn().Err(err).Str("invoice_number", invoice.InvoiceNumber).Msg("invoice pdf not archived")
		} else if key != "" {
			logger.WithContext(r.Context()).Debug().Str("key", key).Msg("invoice pdf archived")
		}
	}

	filename := strings.ReplaceAll(invoice.InvoiceNumber, "/", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
