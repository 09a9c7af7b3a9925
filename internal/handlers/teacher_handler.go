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

// TeacherHandler serves the teacher surface: own courses, assignments,
// submissions, grading and exports. Every operation is scoped to the
// authenticated teacher; ownership checks live in the services.
type TeacherHandler struct {
	BaseHandler
	classes     services.ClassService
	courses     services.CourseService
	assignments services.AssignmentService
	enrollments services.EnrollmentService
	grading     services.GradingService
	dashboard   services.DashboardService
	export      services.ExportService
}

func NewTeacherHandler(
	classes services.ClassService,
	courses services.CourseService,
	assignments services.AssignmentService,
	enrollments services.EnrollmentService,
	grading services.GradingService,
	dashboard services.DashboardService,
	export services.ExportService,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		classes:     classes,
		courses:     courses,
		assignments: assignments,
		enrollments: enrollments,
		grading:     grading,
		dashboard:   dashboard,
		export:      export,
	}
}

// ===== CLASS ENDPOINTS =====

// ListClasses returns the classes the teacher is assigned to
func (h *TeacherHandler) ListClasses(c *gin.Context) {
	classes, err := h.classes.ListForTeacher(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *TeacherHandler) GetClass(c *gin.Context) {
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

// ===== COURSE ENDPOINTS =====

// CreateCourse creates a course owned by the authenticated teacher
// @Summary Create course
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course
// @Failure 403 {object} models.ErrorResponse "Teacher not assigned to class"
// @Router /teacher/courses [post]
func (h *TeacherHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	course, err := h.courses.Create(c.Request.Context(), h.CurrentUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *TeacherHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListForTeacher(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *TeacherHandler) GetCourse(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courses.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// UpdateCourse applies partial changes; moving the course to another class
// reassigns its enrollments.
func (h *TeacherHandler) UpdateCourse(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	course, err := h.courses.Update(c.Request.Context(), h.CurrentUserID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *TeacherHandler) DeleteCourse(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courses.Delete(c.Request.Context(), h.CurrentUserID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "course deleted",
		Timestamp: time.Now().UTC(),
	})
}

func (h *TeacherHandler) ListCourseEnrollments(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	enrollments, err := h.enrollments.ListForCourse(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// ===== ASSIGNMENT ENDPOINTS =====

func (h *TeacherHandler) CreateAssignment(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	assignment, err := h.assignments.Create(c.Request.Context(), h.CurrentUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *TeacherHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignments.ListForTeacher(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *TeacherHandler) ListCourseAssignments(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignments.ListForCourse(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *TeacherHandler) UpdateAssignment(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	assignment, err := h.assignments.Update(c.Request.Context(), h.CurrentUserID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *TeacherHandler) DeleteAssignment(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignments.Delete(c.Request.Context(), h.CurrentUserID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "assignment deleted",
		Timestamp: time.Now().UTC(),
	})
}

// ListSubmissions returns the submissions of an assignment with their
// timeliness relative to the deadline.
func (h *TeacherHandler) ListSubmissions(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	submissions, err := h.assignments.ListSubmissions(c.Request.Context(), h.CurrentUserID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ===== GRADING ENDPOINTS =====

// RecordGrade records a 0-20 grade for a student on an assignment
// @Summary Record grade
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body models.RecordGradeRequest true "Grade data"
// @Success 201 {object} models.Grade
// @Failure 400 {object} models.ErrorResponse "Value outside 0-20"
// @Failure 403 {object} models.ErrorResponse "Not the course's teacher"
// @Router /teacher/grades [post]
func (h *TeacherHandler) RecordGrade(c *gin.Context) {
	var req models.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	grade, err := h.grading.RecordGrade(c.Request.Context(), h.CurrentUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grade)
}

func (h *TeacherHandler) UpdateGrade(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	grade, err := h.grading.UpdateGrade(c.Request.Context(), h.CurrentUserID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

func (h *TeacherHandler) DeleteGrade(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.grading.DeleteGrade(c.Request.Context(), h.CurrentUserID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "grade deleted",
		Timestamp: time.Now().UTC(),
	})
}

func (h *TeacherHandler) GetClassGrades(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	summaries, err := h.grading.ClassGradeSummaries(c.Request.Context(), h.CurrentUserID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// ExportClassGrades streams the class grade sheet as an xlsx file
func (h *TeacherHandler) ExportClassGrades(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.export.ClassGradeSheet(c.Request.Context(), h.CurrentUserID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("class-%d-grades.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== DASHBOARD =====

func (h *TeacherHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting teacher dashboard")

	dash, err := h.dashboard.TeacherDashboard(c.Request.Context(), h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
