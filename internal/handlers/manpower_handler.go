package handlers

import (
	"net/http"
	"strconv"

	"asf-backend/internal/middleware"
	"asf-backend/internal/models"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"
)

type ManpowerHandler struct {
	Service *services.ManpowerService
}

func NewManpowerHandler(s *services.ManpowerService) *ManpowerHandler {
	return &ManpowerHandler{Service: s}
}

// ListManpower supports ?status= ?designation= ?client= ?search=; the stats
// always cover every employee.
func (h *ManpowerHandler) ListManpower(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ManpowerFilter{
		Status:      q.Get("status"),
		Designation: q.Get("designation"),
		Search:      q.Get("search"),
	}
	if v := q.Get("client"); v != "" {
		clientID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			utils.Message(w, http.StatusBadRequest, "Invalid client ID")
			return
		}
		filter.ClientID = &clientID
	}

	employees, stats, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching manpower")
		return
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Manpower retrieved successfully",
		"count":   len(employees),
		"stats":   stats,
		"data":    employees,
	})
}

func (h *ManpowerHandler) GetManpower(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}
	e, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching employee")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Employee retrieved successfully",
		"data":    e,
	})
}

func (h *ManpowerHandler) CreateManpower(w http.ResponseWriter, r *http.Request) {
	var req models.ManpowerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	e, err := h.Service.CreateEmployee(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, r, err, "Error creating employee")
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Employee created successfully",
		"data":    e,
	})
}

func (h *ManpowerHandler) UpdateManpower(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}
	var req models.ManpowerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.Service.UpdateEmployee(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Error updating employee")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Employee updated successfully",
		"data":    e,
	})
}

func (h *ManpowerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}
	var req models.StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.Service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, err, "Error updating employee status")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Employee status updated successfully",
		"data":    e,
	})
}

func (h *ManpowerHandler) DeleteManpower(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting employee")
		return
	}
	utils.Message(w, http.StatusOK, "Employee deleted successfully")
}
