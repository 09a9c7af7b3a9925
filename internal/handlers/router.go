package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/auth"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/services"
	"github.com/akalan-edu/portal-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	adminHandler      *AdminHandler
	teacherHandler    *TeacherHandler
	studentHandler    *StudentHandler
	invitationHandler *InvitationHandler
	authMiddleware    *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *auth.SessionStore,
	userRepo repositories.UserRepository,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(sessions, userRepo)

	return &HandlerManager{
		authHandler: NewAuthHandler(serviceManager.Account(), sessions, logger),
		adminHandler: NewAdminHandler(
			serviceManager.Account(),
			serviceManager.Class(),
			serviceManager.Invitation(),
			serviceManager.Dashboard(),
			serviceManager.Export(),
			logger,
		),
		teacherHandler: NewTeacherHandler(
			serviceManager.Class(),
			serviceManager.Course(),
			serviceManager.Assignment(),
			serviceManager.Enrollment(),
			serviceManager.Grading(),
			serviceManager.Dashboard(),
			serviceManager.Export(),
			logger,
		),
		studentHandler: NewStudentHandler(
			serviceManager.Course(),
			serviceManager.Assignment(),
			serviceManager.Grading(),
			serviceManager.Dashboard(),
			logger,
		),
		invitationHandler: NewInvitationHandler(serviceManager.Invitation(), logger),
		authMiddleware:    authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public routes: login and the invitation link flow
		v1.POST("/auth/login", hm.authHandler.Login)
		v1.GET("/invitations/:token", hm.invitationHandler.GetInvitation)
		v1.POST("/invitations/:token/accept", hm.invitationHandler.AcceptInvitation)

		authed := v1.Group("")
		authed.Use(hm.authMiddleware.AuthMiddleware())
		{
			authed.POST("/auth/logout", hm.authHandler.Logout)
			authed.GET("/auth/me", hm.authHandler.Me)

			// Admin routes
			admin := authed.Group("/admin")
			admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
			{
				admin.POST("/users", hm.adminHandler.CreateUser)
				admin.GET("/users", hm.adminHandler.ListUsers)
				admin.GET("/users/:id", hm.adminHandler.GetUser)
				admin.PUT("/users/:id", hm.adminHandler.UpdateUser)
				admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)

				admin.POST("/classes", hm.adminHandler.CreateClass)
				admin.GET("/classes", hm.adminHandler.ListClasses)
				admin.GET("/classes/:id", hm.adminHandler.GetClass)
				admin.PUT("/classes/:id", hm.adminHandler.UpdateClass)
				admin.DELETE("/classes/:id", hm.adminHandler.DeleteClass)
				admin.POST("/classes/:id/teachers", hm.adminHandler.AssignTeacher)
				admin.DELETE("/classes/:id/teachers/:teacher_id", hm.adminHandler.RemoveTeacher)
				admin.GET("/classes/:id/roster", hm.adminHandler.ExportClassRoster)

				admin.POST("/invitations", hm.adminHandler.CreateInvitation)
				admin.GET("/invitations", hm.adminHandler.ListInvitations)

				admin.GET("/dashboard", hm.adminHandler.GetDashboard)
			}

			// Teacher routes
			teacher := authed.Group("/teacher")
			teacher.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin))
			{
				teacher.GET("/classes", hm.teacherHandler.ListClasses)
				teacher.GET("/classes/:id", hm.teacherHandler.GetClass)
				teacher.GET("/classes/:id/grades", hm.teacherHandler.GetClassGrades)
				teacher.GET("/classes/:id/grades/export", hm.teacherHandler.ExportClassGrades)

				teacher.POST("/courses", hm.teacherHandler.CreateCourse)
				teacher.GET("/courses", hm.teacherHandler.ListCourses)
				teacher.GET("/courses/:id", hm.teacherHandler.GetCourse)
				teacher.PUT("/courses/:id", hm.teacherHandler.UpdateCourse)
				teacher.DELETE("/courses/:id", hm.teacherHandler.DeleteCourse)
				teacher.GET("/courses/:id/enrollments", hm.teacherHandler.ListCourseEnrollments)
				teacher.GET("/courses/:id/assignments", hm.teacherHandler.ListCourseAssignments)

				teacher.POST("/assignments", hm.teacherHandler.CreateAssignment)
				teacher.GET("/assignments", hm.teacherHandler.ListAssignments)
				teacher.PUT("/assignments/:id", hm.teacherHandler.UpdateAssignment)
				teacher.DELETE("/assignments/:id", hm.teacherHandler.DeleteAssignment)
				teacher.GET("/assignments/:id/submissions", hm.teacherHandler.ListSubmissions)

				teacher.POST("/grades", hm.teacherHandler.RecordGrade)
				teacher.PUT("/grades/:id", hm.teacherHandler.UpdateGrade)
				teacher.DELETE("/grades/:id", hm.teacherHandler.DeleteGrade)

				teacher.GET("/dashboard", hm.teacherHandler.GetDashboard)
			}

			// Student routes
			student := authed.Group("/student")
			student.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
			{
				student.GET("/courses", hm.studentHandler.ListCourses)
				student.GET("/assignments", hm.studentHandler.ListAssignments)
				student.POST("/assignments/:id/submit", hm.studentHandler.SubmitAssignment)
				student.GET("/submissions", hm.studentHandler.ListSubmissions)
				student.GET("/grades", hm.studentHandler.ListGrades)
				student.GET("/dashboard", hm.studentHandler.GetDashboard)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "portal-service",
		})
	})
}
