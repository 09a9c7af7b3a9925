package models

import (
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// InvitationTokenLength is the length of the hex token embedded in invitation links.
const InvitationTokenLength = 64

// DefaultInvitationMaxAge is the validity window applied at creation.
const DefaultInvitationMaxAge = 7 * 24 * time.Hour

type Invitation struct {
	ID     uint             `json:"id" gorm:"primaryKey"`
	Email  string           `json:"email" gorm:"not null;size:255;index" validate:"required,email"`
	Role   UserRole         `json:"role" gorm:"not null;size:20" validate:"required,oneof=teacher student"`
	Status InvitationStatus `json:"status" gorm:"not null;size:20;default:pending;index"`

	// Token is generated exactly once at creation and never rotated
	Token string `json:"token" gorm:"uniqueIndex;not null;size:64"`

	// Student invitations carry the class the account will join
	ClassID *uint  `json:"class_id" gorm:"index"`
	Class   *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	CreatedByID uint  `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null"`
	AcceptedAt *time.Time `json:"accepted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// IsExpired reports whether the validity window has passed, regardless of status.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsValid reports whether the invitation can still be accepted.
// An invitation at exactly its expiry instant is still valid.
func (i *Invitation) IsValid() bool {
	return i.Status == InvitationPending && !i.IsExpired()
}
