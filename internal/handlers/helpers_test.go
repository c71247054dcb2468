package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asf-backend/internal/billing"
	"asf-backend/internal/models"
	"asf-backend/internal/numbering"
	"asf-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"calculator validation", billing.NewValidationError("items[0].rate", 0, "rate must be positive"), http.StatusBadRequest, "Validation failed"},
		{"named not found", &services.NotFoundError{Resource: "Client"}, http.StatusNotFound, "Client not found"},
		{"bare not found", services.ErrNotFound, http.StatusNotFound, "Not found"},
		{"invalid input", fmt.Errorf("%w: dueDate must not be before invoiceDate", services.ErrInvalidInput), http.StatusBadRequest, "dueDate must not be before invoiceDate"},
		{"email taken", services.ErrEmailTaken, http.StatusBadRequest, "User with this email already exists"},
		{"bad password", services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid password"},
		{"number conflict", &numbering.ConflictError{Collection: "invoices", Value: "ASF/P/25-26/013"}, http.StatusConflict, "Identifier already issued, please retry"},
		{"referenced", services.ErrInUse, http.StatusConflict, "Record is still referenced by other records"},
		{"allocation", &numbering.AllocationError{Collection: "invoices", Err: errors.New("conn reset")}, http.StatusServiceUnavailable, "Could not allocate identifier"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Error creating invoice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodPost, "/", nil), tt.err, "Error creating invoice")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeBody(t, rec)["message"])
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantField string
	}{
		{"valid", `{"firstName":"Ravi","lastName":"Patil","phone":"9","designation":"Security Guard","salary":"18000"}`, true, ""},
		{"salary must be positive", `{"firstName":"Ravi","lastName":"Patil","phone":"9","designation":"Driver","salary":0}`, false, "salary"},
		{"unknown designation", `{"firstName":"Ravi","lastName":"Patil","phone":"9","designation":"Pilot","salary":1}`, false, "designation"},
		{"bad email", `{"firstName":"Ravi","lastName":"Patil","phone":"9","designation":"Cook","salary":1,"email":"nope"}`, false, "email"},
		{"malformed", `{"firstName":`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst models.ManpowerRequest
			ok := decodeAndValidate(rec, req, &dst)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			if tt.wantField != "" {
				fields, _ := decodeBody(t, rec)["fields"].(map[string]interface{})
				assert.Contains(t, fields, tt.wantField)
			}
		})
	}
}

func TestDecodeAndValidateInvoiceItems(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"client":1,"items":[{"rate":100}]}`))

	var dst models.InvoiceRequest
	assert.False(t, decodeAndValidate(rec, req, &dst))

	fields, _ := decodeBody(t, rec)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "items[0].description")
}
