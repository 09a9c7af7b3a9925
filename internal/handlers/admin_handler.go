package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

// AdminHandler serves the administration surface: accounts, classes,
// invitations and the portal-wide dashboard.
type AdminHandler struct {
	BaseHandler
	accounts    services.AccountService
	classes     services.ClassService
	invitations services.InvitationService
	dashboard   services.DashboardService
	export      services.ExportService
}

func NewAdminHandler(
	accounts services.AccountService,
	classes services.ClassService,
	invitations services.InvitationService,
	dashboard services.DashboardService,
	export services.ExportService,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		accounts:    accounts,
		classes:     classes,
		invitations: invitations,
		dashboard:   dashboard,
		export:      export,
	}
}

// ===== USER ENDPOINTS =====

// CreateUser creates an account directly, bypassing the invitation flow
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 409 {object} models.ErrorResponse "Username or email taken"
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, err := h.accounts.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers returns a paginated, filterable user list
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, size := h.ParsePageParams(c)

	params := models.ListUsersParams{
		Page:   page,
		Size:   size,
		Search: c.Query("search"),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role, ok := models.ParseUserRole(roleStr)
		if !ok {
			h.respondError(c, http.StatusBadRequest, "invalid_parameter", "unknown role", roleStr)
			return
		}
		params.Role = role
	}
	if classStr := c.Query("class_id"); classStr != "" {
		classID, ok := h.parseQueryID(c, "class_id", classStr)
		if !ok {
			return
		}
		params.ClassID = &classID
	}

	result, err := h.accounts.List(c.Request.Context(), params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, err := h.accounts.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "user deleted",
		Timestamp: time.Now().UTC(),
	})
}

// ===== CLASS ENDPOINTS =====

func (h *AdminHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	class, err := h.classes.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *AdminHandler) ListClasses(c *gin.Context) {
	page, size := h.ParsePageParams(c)

	result, err := h.classes.List(c.Request.Context(), page, size)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetClass returns the class with its teachers and students
func (h *AdminHandler) GetClass(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.classes.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *AdminHandler) UpdateClass(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	class, err := h.classes.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *AdminHandler) DeleteClass(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.classes.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "class deleted",
		Timestamp: time.Now().UTC(),
	})
}

// AssignTeacher puts a teacher in charge of a class. Assigning a teacher who
// already has the class reports success with a note instead of failing.
func (h *AdminHandler) AssignTeacher(c *gin.Context) {
	classID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	alreadyAssigned, err := h.classes.AssignTeacher(c.Request.Context(), classID, req.TeacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "teacher assigned"
	if alreadyAssigned {
		message = "teacher was already assigned"
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (h *AdminHandler) RemoveTeacher(c *gin.Context) {
	classID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	teacherID, ok := h.ParseIDParam(c, "teacher_id")
	if !ok {
		return
	}

	if err := h.classes.RemoveTeacher(c.Request.Context(), classID, teacherID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "teacher removed",
		Timestamp: time.Now().UTC(),
	})
}

// ExportClassRoster streams the class student list as an xlsx file
func (h *AdminHandler) ExportClassRoster(c *gin.Context) {
	classID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.export.ClassRoster(c.Request.Context(), classID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("class-%d-roster.xlsx", classID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== INVITATION ENDPOINTS =====

// CreateInvitation issues an email invitation for a teacher or student account
// @Summary Create invitation
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateInvitationRequest true "Invitation data"
// @Success 201 {object} models.Invitation
// @Failure 409 {object} models.ErrorResponse "Pending invitation or account exists"
// @Router /admin/invitations [post]
func (h *AdminHandler) CreateInvitation(c *gin.Context) {
	var req models.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	invitation, err := h.invitations.Create(c.Request.Context(), &req, h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

func (h *AdminHandler) ListInvitations(c *gin.Context) {
	page, size := h.ParsePageParams(c)

	params := models.ListInvitationsParams{
		Page: page,
		Size: size,
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role, ok := models.ParseUserRole(roleStr)
		if !ok {
			h.respondError(c, http.StatusBadRequest, "invalid_parameter", "unknown role", roleStr)
			return
		}
		params.Role = role
	}
	if status := c.Query("status"); status != "" {
		params.Status = models.InvitationStatus(status)
	}

	result, err := h.invitations.List(c.Request.Context(), params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===== DASHBOARD =====

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting admin dashboard")

	dash, err := h.dashboard.AdminDashboard(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

func (h *AdminHandler) parseQueryID(c *gin.Context, name, raw string) (uint, bool) {
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "invalid_parameter", "invalid "+name+" parameter", raw)
		return 0, false
	}
	return id, true
}
