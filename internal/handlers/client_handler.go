package handlers

import (
	"net/http"
	"strconv"

	"asf-backend/internal/models"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

// ListClients supports ?search= and ?isActive=true|false
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ClientFilter{Search: q.Get("search")}
	if v := q.Get("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			utils.Message(w, http.StatusBadRequest, "isActive must be true or false")
			return
		}
		filter.IsActive = &active
	}

	clients, err := h.Service.ListClients(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch clients")
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(clients),
		"data":    clients,
	})
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	client, err := h.Service.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch client")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": client})
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.ClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	client, err := h.Service.CreateClient(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create client")
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Client created successfully",
		"data":    client,
	})
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	var req models.ClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	client, err := h.Service.UpdateClient(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update client")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Client updated successfully",
		"data":    client,
	})
}

// DeleteClient refuses with 409 while invoices still reference the client
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	if err := h.Service.DeleteClient(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete client")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Client deleted successfully",
	})
}
