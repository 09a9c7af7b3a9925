package models

import (
	"time"
)

// ===== ACCOUNT DTOs =====

type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,min=3,max=150"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8,max=128"`
	FirstName string   `json:"first_name" validate:"max=150"`
	LastName  string   `json:"last_name" validate:"max=150"`
	Role      UserRole `json:"role" validate:"required,oneof=admin teacher student"`
	ClassID   *uint    `json:"class_id"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	ClassID   *uint   `json:"class_id"`
	IsActive  *bool   `json:"is_active"`
}

type LoginRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role" validate:"required,oneof=admin teacher student"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ===== CLASS DTOs =====

type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateClassRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type AssignTeacherRequest struct {
	TeacherID uint `json:"teacher_id" validate:"required"`
}

type ClassDetail struct {
	Class    *Class `json:"class"`
	Teachers []User `json:"teachers"`
	Students []User `json:"students"`
}

// ===== INVITATION DTOs =====

type CreateInvitationRequest struct {
	Email   string   `json:"email" validate:"required,email"`
	Role    UserRole `json:"role" validate:"required,oneof=teacher student"`
	ClassID *uint    `json:"class_id"`
}

type AcceptInvitationRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type InvitationInfo struct {
	Email     string           `json:"email"`
	Role      UserRole         `json:"role"`
	ClassName *string          `json:"class_name,omitempty"`
	Status    InvitationStatus `json:"status"`
	ExpiresAt time.Time        `json:"expires_at"`
	Valid     bool             `json:"valid"`
}

// ===== COURSE DTOs =====

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ClassID     *uint   `json:"class_id"`
	FilePath    *string `json:"file_path" validate:"omitempty,max=500"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ClassID     *uint   `json:"class_id"`
	FilePath    *string `json:"file_path" validate:"omitempty,max=500"`
}

// ===== ASSIGNMENT DTOs =====

type CreateAssignmentRequest struct {
	CourseID    uint      `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	FilePath    *string   `json:"file_path" validate:"omitempty,max=500"`
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Deadline    *time.Time `json:"deadline"`
	FilePath    *string    `json:"file_path" validate:"omitempty,max=500"`
}

type SubmitAssignmentRequest struct {
	FilePath    string  `json:"file_path" validate:"required,max=500"`
	FileName    string  `json:"file_name" validate:"required,max=255"`
	FileSize    int64   `json:"file_size" validate:"min=0"`
	ContentType *string `json:"content_type" validate:"omitempty,max=100"`
}

// AssignmentStatus is the student-facing view of an assignment: whether it is
// still open, and whether/when the student submitted.
type AssignmentStatus struct {
	Assignment  *Assignment `json:"assignment"`
	Submitted   bool        `json:"submitted"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`
	OnTime      *bool       `json:"on_time,omitempty"`
	Open        bool        `json:"open"`
}

// ===== GRADE DTOs =====

type RecordGradeRequest struct {
	StudentID    uint    `json:"student_id" validate:"required"`
	AssignmentID uint    `json:"assignment_id" validate:"required"`
	Value        float64 `json:"value" validate:"min=0,max=20"`
	Comment      *string `json:"comment" validate:"omitempty,max=1000"`
}

type UpdateGradeRequest struct {
	Value   *float64 `json:"value" validate:"omitempty,min=0,max=20"`
	Comment *string  `json:"comment" validate:"omitempty,max=1000"`
}

type StudentGradeSummary struct {
	Student *User   `json:"student"`
	Grades  []Grade `json:"grades"`
	Average float64 `json:"average"`
}

// ===== PAGINATION & FILTERING =====

type ListUsersParams struct {
	Page    int      `json:"page" validate:"min=0"`
	Size    int      `json:"size" validate:"min=1,max=100"`
	Role    UserRole `json:"role"`
	ClassID *uint    `json:"class_id"`
	Search  string   `json:"search"`
}

type ListInvitationsParams struct {
	Page   int              `json:"page" validate:"min=0"`
	Size   int              `json:"size" validate:"min=1,max=100"`
	Role   UserRole         `json:"role"`
	Status InvitationStatus `json:"status"`
}

type ListCoursesParams struct {
	Page      int    `json:"page" validate:"min=0"`
	Size      int    `json:"size" validate:"min=1,max=100"`
	TeacherID *uint  `json:"teacher_id"`
	ClassID   *uint  `json:"class_id"`
	Search    string `json:"search"`
}

type PaginatedResponse struct {
	Content       interface{} `json:"content"`
	TotalElements int64       `json:"total_elements"`
	TotalPages    int         `json:"total_pages"`
	Size          int         `json:"size"`
	Page          int         `json:"page"`
}

// ===== DASHBOARD DTOs =====

type AdminDashboard struct {
	StudentCount      int64 `json:"student_count"`
	TeacherCount      int64 `json:"teacher_count"`
	ClassCount        int64 `json:"class_count"`
	CourseCount       int64 `json:"course_count"`
	AssignmentCount   int64 `json:"assignment_count"`
	EnrollmentCount   int64 `json:"enrollment_count"`
	SubmissionCount   int64 `json:"submission_count"`
	OnTimeSubmissions int64 `json:"on_time_submissions"`
	LateSubmissions   int64 `json:"late_submissions"`
}

type TeacherDashboard struct {
	ClassCount          int64        `json:"class_count"`
	CourseCount         int64        `json:"course_count"`
	AssignmentCount     int64        `json:"assignment_count"`
	OverdueAssignments  []Assignment `json:"overdue_assignments"`
	UpcomingAssignments []Assignment `json:"upcoming_assignments"`
}

type StudentDashboard struct {
	Courses            []Course           `json:"courses"`
	PendingAssignments []AssignmentStatus `json:"pending_assignments"`
	RecentGrades       []Grade            `json:"recent_grades"`
	Average            float64            `json:"average"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
