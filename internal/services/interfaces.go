package services

import (
	"context"

	"github.com/akalan-edu/portal-service/internal/models"
)

// AccountService manages user accounts and authentication
type AccountService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListUsersParams) (*models.PaginatedResponse, error)

	// Authenticate checks credentials against the requested role. The
	// identifier matches either username or email.
	Authenticate(ctx context.Context, identifier, password string, role models.UserRole) (*models.User, error)
}

// ClassService manages classes and teacher assignments
type ClassService interface {
	Create(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error)
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	GetDetail(ctx context.Context, id uint) (*models.ClassDetail, error)
	Update(ctx context.Context, id uint, req *models.UpdateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, size int) (*models.PaginatedResponse, error)

	AssignTeacher(ctx context.Context, classID, teacherID uint) (alreadyAssigned bool, err error)
	RemoveTeacher(ctx context.Context, classID, teacherID uint) error
	ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)
}

// InvitationService runs the email onboarding flow
type InvitationService interface {
	Create(ctx context.Context, req *models.CreateInvitationRequest, creatorID uint) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	GetInfo(ctx context.Context, token string) (*models.InvitationInfo, error)
	Accept(ctx context.Context, token string, req *models.AcceptInvitationRequest) (*models.User, error)
	List(ctx context.Context, params models.ListInvitationsParams) (*models.PaginatedResponse, error)
}

// EnrollmentService keeps class membership and course enrollments in sync.
// All operations are idempotent.
type EnrollmentService interface {
	// SyncForAccount enrolls a student into every course of their class
	SyncForAccount(ctx context.Context, student *models.User) error
	// SyncForCourse enrolls every student of the course's class
	SyncForCourse(ctx context.Context, course *models.Course) error
	// ReconcileCourseClass moves a course's enrollments when its class changes
	ReconcileCourseClass(ctx context.Context, course *models.Course, oldClassID, newClassID *uint) error

	Enroll(ctx context.Context, courseID, studentID uint) (created bool, err error)
	IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error)
	ListForCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error)
}

// CourseService manages teacher-scoped courses
type CourseService interface {
	Create(ctx context.Context, teacherID uint, req *models.CreateCourseRequest) (*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, teacherID, id uint, req *models.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, teacherID, id uint) error
	List(ctx context.Context, params models.ListCoursesParams) (*models.PaginatedResponse, error)
	ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	ListForStudent(ctx context.Context, studentID uint) ([]*models.Course, error)
}

// AssignmentService manages assignments and student submissions
type AssignmentService interface {
	Create(ctx context.Context, teacherID uint, req *models.CreateAssignmentRequest) (*models.Assignment, error)
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, teacherID, id uint, req *models.UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, teacherID, id uint) error
	ListForCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error)
	ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error)

	// Student side
	Submit(ctx context.Context, studentID, assignmentID uint, req *models.SubmitAssignmentRequest) (*models.Submission, error)
	ListSubmissions(ctx context.Context, teacherID, assignmentID uint) ([]*models.Submission, error)
	ListStudentSubmissions(ctx context.Context, studentID uint) ([]*models.Submission, error)
	ListForStudent(ctx context.Context, studentID uint) ([]*models.AssignmentStatus, error)
}

// GradingService records and maintains grades on the 0-20 scale
type GradingService interface {
	RecordGrade(ctx context.Context, teacherID uint, req *models.RecordGradeRequest) (*models.Grade, error)
	UpdateGrade(ctx context.Context, teacherID, gradeID uint, req *models.UpdateGradeRequest) (*models.Grade, error)
	DeleteGrade(ctx context.Context, teacherID, gradeID uint) error
	ListForStudent(ctx context.Context, studentID uint) ([]*models.Grade, error)
	StudentAverage(ctx context.Context, studentID uint) (float64, error)
	ClassGradeSummaries(ctx context.Context, teacherID, classID uint) ([]*models.StudentGradeSummary, error)
}

// DashboardService aggregates role-scoped overview data
type DashboardService interface {
	AdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	TeacherDashboard(ctx context.Context, teacherID uint) (*models.TeacherDashboard, error)
	StudentDashboard(ctx context.Context, studentID uint) (*models.StudentDashboard, error)
}

// ExportService produces xlsx exports
type ExportService interface {
	// ClassGradeSheet renders one row per student with per-assignment grades
	ClassGradeSheet(ctx context.Context, teacherID, classID uint) ([]byte, error)
	// ClassRoster renders the student list of a class
	ClassRoster(ctx context.Context, classID uint) ([]byte, error)
}

// NotificationEventService publishes domain events. Failures are logged,
// never propagated to the triggering operation.
type NotificationEventService interface {
	InvitationCreated(ctx context.Context, invitation *models.Invitation)
	InvitationAccepted(ctx context.Context, invitation *models.Invitation)
	EnrollmentCreated(ctx context.Context, enrollment *models.Enrollment)
	SubmissionReceived(ctx context.Context, submission *models.Submission)
	GradeRecorded(ctx context.Context, grade *models.Grade)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Account() AccountService
	Class() ClassService
	Invitation() InvitationService
	Enrollment() EnrollmentService
	Course() CourseService
	Assignment() AssignmentService
	Grading() GradingService
	Dashboard() DashboardService
	Export() ExportService
	Notification() NotificationEventService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
