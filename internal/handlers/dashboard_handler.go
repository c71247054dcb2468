package handlers

import (
	"net/http"

	"asf-backend/internal/middleware"
	"asf-backend/pkg/utils"
)

// Dashboard greets a role after the router has checked it.
func Dashboard(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := middleware.GetUserIDFromContext(r.Context())
		role, _ := middleware.GetRoleFromContext(r.Context())
		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "Welcome to the " + title + " dashboard!",
			"user":    map[string]interface{}{"id": id, "role": role},
		})
	}
}
