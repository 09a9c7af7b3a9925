package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/auth"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	accounts services.AccountService
	sessions *auth.SessionStore
}

func NewAuthHandler(accounts services.AccountService, sessions *auth.SessionStore, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		accounts:    accounts,
		sessions:    sessions,
	}
}

// Login authenticates a user for the requested role and opens a session
// @Summary Log in
// @Description Authenticate with username (or email) and password for a specific role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.respondError(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user)
	if err != nil {
		h.LogError(c, err, "Failed to create session", "user_id", user.ID)
		h.respondError(c, http.StatusInternalServerError, "internal_error", "failed to create session", nil)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		User:      user,
		ExpiresAt: time.Now().Add(h.sessions.IdleTTL()),
	})
}

// Logout ends the current session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("session_token")
	if token != "" {
		if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to delete session")
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "logged out",
		Timestamp: time.Now().UTC(),
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		h.respondError(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	c.JSON(http.StatusOK, user)
}
