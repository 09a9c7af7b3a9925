package models

import (
	"time"
)

type Class struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	// Relations
	Teachers []User `json:"teachers,omitempty" gorm:"many2many:class_teachers"`
	Students []User `json:"students,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed fields (not stored)
	StudentCount int `json:"student_count" gorm:"-"`
	CourseCount  int `json:"course_count" gorm:"-"`
}

func (Class) TableName() string {
	return "classes"
}
