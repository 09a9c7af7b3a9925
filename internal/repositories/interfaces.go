package repositories

import (
	"context"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role    *models.UserRole `json:"role"`
	ClassID *uint            `json:"class_id"`
	Search  string           `json:"search"` // matches username, email, first/last name
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type InvitationFilters struct {
	Role   *models.UserRole         `json:"role"`
	Status *models.InvitationStatus `json:"status"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

type CourseFilters struct {
	TeacherID *uint  `json:"teacher_id"`
	ClassID   *uint  `json:"class_id"`
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

type AssignmentFilters struct {
	CourseID     *uint      `json:"course_id"`
	TeacherID    *uint      `json:"teacher_id"`
	DeadlineFrom *time.Time `json:"deadline_from"`
	DeadlineTo   *time.Time `json:"deadline_to"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

type GradeFilters struct {
	StudentID    *uint `json:"student_id"`
	TeacherID    *uint `json:"teacher_id"`
	AssignmentID *uint `json:"assignment_id"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

// ===== ACCOUNT DOMAIN =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	FindByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
	FindStudentsByClass(ctx context.Context, classID uint) ([]*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// ===== CLASS DOMAIN =====

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	GetByIDWithMembers(ctx context.Context, id uint) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Class, int64, error)

	ExistsByName(ctx context.Context, name string) (bool, error)

	// Teacher assignment (class_teachers join table)
	AddTeacher(ctx context.Context, classID, teacherID uint) error
	RemoveTeacher(ctx context.Context, classID, teacherID uint) error
	HasTeacher(ctx context.Context, classID, teacherID uint) (bool, error)
	FindByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uint) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	Update(ctx context.Context, invitation *models.Invitation) error
	List(ctx context.Context, filters InvitationFilters) ([]*models.Invitation, int64, error)

	ExistsPending(ctx context.Context, email string, role models.UserRole) (bool, error)
}

// ===== COURSE DOMAIN =====

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)

	FindByClass(ctx context.Context, classID uint) ([]*models.Course, error)
	FindByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	FindByStudent(ctx context.Context, studentID uint) ([]*models.Course, error)
}

type EnrollmentRepository interface {
	// GetOrCreate is idempotent; created reports whether a new row was written.
	// Concurrent callers racing on the same pair resolve at the unique constraint.
	GetOrCreate(ctx context.Context, courseID, studentID uint) (*models.Enrollment, bool, error)
	Delete(ctx context.Context, courseID, studentID uint) error
	DeleteForCourseAndStudents(ctx context.Context, courseID uint, studentIDs []uint) error

	Exists(ctx context.Context, courseID, studentID uint) (bool, error)
	FindByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error)
	FindByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

// ===== ASSIGNMENT DOMAIN =====

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AssignmentFilters) ([]*models.Assignment, int64, error)

	FindByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error)
	FindByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error)
	FindByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error)
	FindByStudent(ctx context.Context, studentID uint) ([]*models.Submission, error)
	Exists(ctx context.Context, assignmentID, studentID uint) (bool, error)
}

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id uint) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters GradeFilters) ([]*models.Grade, int64, error)

	FindByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error)
	AverageForStudent(ctx context.Context, studentID uint) (float64, error)
}

// ===== DASHBOARD DOMAIN =====

// SubmissionTimeliness splits the submission count by deadline comparison
type SubmissionTimeliness struct {
	OnTime int64 `json:"on_time"`
	Late   int64 `json:"late"`
}

type DashboardRepository interface {
	CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error)
	CountClasses(ctx context.Context) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	CountAssignments(ctx context.Context) (int64, error)
	CountEnrollments(ctx context.Context) (int64, error)
	CountSubmissions(ctx context.Context) (int64, error)
	GetSubmissionTimeliness(ctx context.Context) (*SubmissionTimeliness, error)

	// Teacher scope
	CountCoursesByTeacher(ctx context.Context, teacherID uint) (int64, error)
	CountAssignmentsByTeacher(ctx context.Context, teacherID uint) (int64, error)
}
