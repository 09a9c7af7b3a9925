package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

// StudentHandler serves the student surface: enrolled courses, assignment
// status, submissions and own grades.
type StudentHandler struct {
	BaseHandler
	courses     services.CourseService
	assignments services.AssignmentService
	grading     services.GradingService
	dashboard   services.DashboardService
}

func NewStudentHandler(
	courses services.CourseService,
	assignments services.AssignmentService,
	grading services.GradingService,
	dashboard services.DashboardService,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		courses:     courses,
		assignments: assignments,
		grading:     grading,
		dashboard:   dashboard,
	}
}

// ListCourses returns the student's enrolled courses
func (h *StudentHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListForStudent(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ListAssignments returns every assignment of the student's courses with
// submission status and deadline state.
func (h *StudentHandler) ListAssignments(c *gin.Context) {
	statuses, err := h.assignments.ListForStudent(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// SubmitAssignment hands in work for an assignment
// @Summary Submit assignment
// @Tags student
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param request body models.SubmitAssignmentRequest true "Submission data"
// @Success 201 {object} models.Submission
// @Failure 409 {object} models.ErrorResponse "Already submitted"
// @Failure 422 {object} models.ErrorResponse "Deadline passed"
// @Router /student/assignments/{id}/submit [post]
func (h *StudentHandler) SubmitAssignment(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	submission, err := h.assignments.Submit(c.Request.Context(), h.CurrentUserID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions returns the student's own submissions
func (h *StudentHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.assignments.ListStudentSubmissions(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// ListGrades returns the student's grades with the overall average
func (h *StudentHandler) ListGrades(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := h.CurrentUserID(c)

	grades, err := h.grading.ListForStudent(ctx, studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	average, err := h.grading.StudentAverage(ctx, studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"grades":  grades,
		"average": average,
	})
}

func (h *StudentHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting student dashboard")

	dash, err := h.dashboard.StudentDashboard(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
