package handlers

import (
	"net/http"

	"asf-backend/internal/logger"
	"asf-backend/internal/middleware"
	"asf-backend/internal/models"
	"asf-backend/internal/services"
	"asf-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
	// SecureCookie marks the session cookie Secure; on in production
	SecureCookie bool
}

func NewAuthHandler(s *services.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		Service:      s,
		SecureCookie: secureCookie,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Internal server error")
		return
	}

	logger.WithContext(r.Context()).Info().Str("email", user.Email).Str("role", user.Role).Msg("user created")
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login sets the session cookie and also returns the token for API clients
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	utils.JSON(w, http.StatusOK, models.AuthResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.User,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	utils.Message(w, http.StatusOK, "Logout successful")
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching user")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching users")
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Users retrieved successfully",
		"count":   len(users),
		"users":   users,
	})
}

func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.UpdateRole(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Error updating role")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Role updated successfully",
		"user":    user,
	})
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if self, _ := middleware.GetUserIDFromContext(r.Context()); self == id {
		utils.Message(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting user")
		return
	}
	utils.Message(w, http.StatusOK, "User deleted successfully")
}
