package events

import (
	"time"
)

// Event types published by the portal service
const (
	InvitationCreated  = "invitation.created"
	InvitationAccepted = "invitation.accepted"
	EnrollmentCreated  = "enrollment.created"
	SubmissionReceived = "submission.received"
	GradeRecorded      = "grade.recorded"
)

// Source identifies this service in the event envelope
const Source = "portal-service"

// Version of the event envelope schema
const Version = "1.0"

// Event is the envelope published to the event bus
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// ===== EVENT PAYLOADS =====

type InvitationEvent struct {
	InvitationID uint   `json:"invitation_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ClassID      *uint  `json:"class_id,omitempty"`
}

type EnrollmentEvent struct {
	EnrollmentID uint `json:"enrollment_id"`
	CourseID     uint `json:"course_id"`
	StudentID    uint `json:"student_id"`
}

type SubmissionEvent struct {
	SubmissionID uint      `json:"submission_id"`
	AssignmentID uint      `json:"assignment_id"`
	StudentID    uint      `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	OnTime       bool      `json:"on_time"`
}

type GradeEvent struct {
	GradeID      uint    `json:"grade_id"`
	StudentID    uint    `json:"student_id"`
	TeacherID    uint    `json:"teacher_id"`
	AssignmentID uint    `json:"assignment_id"`
	Value        float64 `json:"value"`
}
