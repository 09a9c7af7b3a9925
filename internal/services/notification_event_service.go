package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/events"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

// notificationEventService publishes domain events fire-and-forget: a failed
// publish is logged and the triggering operation proceeds.
type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationEventService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

func (s *notificationEventService) publish(ctx context.Context, eventType string, data interface{}) {
	if err := s.eventPublisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event",
			"event_type", eventType,
			"error", err)
	}
}

func (s *notificationEventService) InvitationCreated(ctx context.Context, invitation *models.Invitation) {
	s.publish(ctx, events.InvitationCreated, events.InvitationEvent{
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
		ClassID:      invitation.ClassID,
	})
}

func (s *notificationEventService) InvitationAccepted(ctx context.Context, invitation *models.Invitation) {
	s.publish(ctx, events.InvitationAccepted, events.InvitationEvent{
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
		ClassID:      invitation.ClassID,
	})
}

func (s *notificationEventService) EnrollmentCreated(ctx context.Context, enrollment *models.Enrollment) {
	s.publish(ctx, events.EnrollmentCreated, events.EnrollmentEvent{
		EnrollmentID: enrollment.ID,
		CourseID:     enrollment.CourseID,
		StudentID:    enrollment.StudentID,
	})
}

func (s *notificationEventService) SubmissionReceived(ctx context.Context, submission *models.Submission) {
	onTime := submission.OnTime
	if submission.Assignment != nil {
		onTime = !submission.SubmittedAt.After(submission.Assignment.Deadline)
	}
	s.publish(ctx, events.SubmissionReceived, events.SubmissionEvent{
		SubmissionID: submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		SubmittedAt:  submission.SubmittedAt.Truncate(time.Millisecond),
		OnTime:       onTime,
	})
}

func (s *notificationEventService) GradeRecorded(ctx context.Context, grade *models.Grade) {
	s.publish(ctx, events.GradeRecorded, events.GradeEvent{
		GradeID:      grade.ID,
		StudentID:    grade.StudentID,
		TeacherID:    grade.TeacherID,
		AssignmentID: grade.AssignmentID,
		Value:        grade.Value,
	})
}
