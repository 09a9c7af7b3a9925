package models

import (
	"time"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`

	TeacherID uint  `json:"teacher_id" gorm:"not null;index"`
	Teacher   *User `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	// Courses may target a whole class; class students are auto-enrolled
	ClassID *uint  `json:"class_id" gorm:"index"`
	Class   *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	// Path to an optional support document; storage itself is out of scope
	FilePath *string `json:"file_path" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed fields (not stored)
	EnrollmentCount int `json:"enrollment_count" gorm:"-"`
	AssignmentCount int `json:"assignment_count" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

type Enrollment struct {
	ID uint `json:"id" gorm:"primaryKey"`

	CourseID  uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_course_student"`
	Course    *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	StudentID uint    `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_course_student;index"`
	Student   *User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
