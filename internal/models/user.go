package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// ParseUserRole maps an input string onto the closed role set.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return UserRole(s), true
	}
	return "", false
}

func (r UserRole) Valid() bool {
	_, ok := ParseUserRole(string(r))
	return ok
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,min=3,max=150"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	FirstName    string   `json:"first_name" gorm:"size:150" validate:"max=150"`
	LastName     string   `json:"last_name" gorm:"size:150" validate:"max=150"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,oneof=admin teacher student"`

	// Students belong to at most one class; unused for other roles
	ClassID *uint  `json:"class_id" gorm:"index"`
	Class   *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
