package handlers

import (
	"net/http"

	"asf-backend/internal/models"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: s}
}

func (h *CompanyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	company, err := h.Service.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch company settings")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": company})
}

func (h *CompanyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.CompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	company, err := h.Service.UpdateSettings(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update company settings")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Company settings updated successfully",
		"data":    company,
	})
}
