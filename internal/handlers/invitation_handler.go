package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

// InvitationHandler serves the public invitation endpoints reached from the
// emailed link; no authentication, the token is the credential.
type InvitationHandler struct {
	BaseHandler
	invitations services.InvitationService
}

func NewInvitationHandler(invitations services.InvitationService, logger utils.Logger) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler: NewBaseHandler(logger),
		invitations: invitations,
	}
}

// GetInvitation returns what the invitee needs to see before accepting:
// email, role, class and whether the invitation is still valid.
// @Summary Inspect invitation
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} models.InvitationInfo
// @Failure 404 {object} models.ErrorResponse "Unknown token"
// @Router /invitations/{token} [get]
func (h *InvitationHandler) GetInvitation(c *gin.Context) {
	token := c.Param("token")

	info, err := h.invitations.GetInfo(c.Request.Context(), token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// AcceptInvitation creates the account for a pending invitation
// @Summary Accept invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Param token path string true "Invitation token"
// @Param request body models.AcceptInvitationRequest true "Account data"
// @Success 201 {object} models.User
// @Failure 409 {object} models.ErrorResponse "Username taken or account exists"
// @Failure 422 {object} models.ErrorResponse "Invitation expired or already used"
// @Router /invitations/{token}/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	token := c.Param("token")

	var req models.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, err := h.invitations.Accept(c.Request.Context(), token, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
