package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

// BaseHandler carries the shared handler plumbing: logging, parameter parsing
// and the service-error to HTTP-status mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// CurrentUserID returns the authenticated user's ID from the request context
func (h *BaseHandler) CurrentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// ParseIDParam parses a numeric path parameter; a second return of false
// means the response has already been written.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "invalid_parameter", "invalid "+name+" parameter", raw)
		return 0, false
	}
	return uint(id), true
}

// ParsePageParams reads page/size query parameters with defaults
func (h *BaseHandler) ParsePageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}
	return page, size
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

// HandleServiceError maps service-layer errors to HTTP status codes
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		h.respondError(c, http.StatusBadRequest, "validation_failed", "Validation failed", ve.Errors)
	case services.IsPermissionError(err):
		h.respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case services.IsNotFound(err):
		h.respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case services.IsConflictError(err):
		h.respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case services.IsBusinessError(err):
		h.respondError(c, http.StatusUnprocessableEntity, "business_rule", err.Error(), nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}
