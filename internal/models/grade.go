package models

import (
	"time"
)

// Grading scale bounds. Grades are recorded on the 0-20 scale with two
// decimal places.
const (
	GradeMin = 0.0
	GradeMax = 20.0
)

type Grade struct {
	ID uint `json:"id" gorm:"primaryKey"`

	StudentID uint  `json:"student_id" gorm:"not null;index"`
	Student   *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	TeacherID uint  `json:"teacher_id" gorm:"not null;index"`
	Teacher   *User `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	AssignmentID uint        `json:"assignment_id" gorm:"not null;index"`
	Assignment   *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`

	// Value on the 0-20 scale, two decimals
	Value   float64 `json:"value" gorm:"not null;type:numeric(4,2)" validate:"min=0,max=20"`
	Comment *string `json:"comment" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Grade) TableName() string {
	return "grades"
}
