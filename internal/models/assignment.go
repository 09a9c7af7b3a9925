package models

import (
	"time"

	"gorm.io/datatypes"
)

type Assignment struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`

	CourseID uint    `json:"course_id" gorm:"not null;index"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	Deadline time.Time `json:"deadline" gorm:"not null;index" validate:"required"`

	FilePath *string `json:"file_path" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed fields (not stored)
	SubmissionCount int `json:"submission_count" gorm:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// IsOpen reports whether new submissions are still accepted.
func (a *Assignment) IsOpen(now time.Time) bool {
	return !now.After(a.Deadline)
}

type Submission struct {
	ID uint `json:"id" gorm:"primaryKey"`

	AssignmentID uint        `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student"`
	Assignment   *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	StudentID    uint        `json:"student_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student;index"`
	Student      *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	FilePath string `json:"file_path" gorm:"not null;size:500"`
	// Uploaded file metadata (name, size, content type) as a JSON column
	FileMeta datatypes.JSON `json:"file_meta" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`

	// OnTime is derived from the assignment deadline at read time, never stored
	OnTime bool `json:"on_time" gorm:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ComputeOnTime sets OnTime from the given deadline. Submitting at the exact
// deadline counts as on time.
func (s *Submission) ComputeOnTime(deadline time.Time) {
	s.OnTime = !s.SubmittedAt.After(deadline)
}
