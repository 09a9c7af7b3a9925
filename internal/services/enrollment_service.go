package services

import (
	"context"
	"log/slog"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

// enrollmentService is the single place that changes enrollments in response
// to class membership. Callers that move students or courses between classes
// invoke it explicitly; there are no hidden persistence hooks.
type enrollmentService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	notification NotificationEventService
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, notification NotificationEventService) EnrollmentService {
	return &enrollmentService{
		repo:         repo,
		logger:       logger,
		notification: notification,
	}
}

// SyncForAccount enrolls a student into every course of their class.
// Safe to call on every account save: existing enrollments are kept as-is.
// Students without a class, and non-students, are a no-op.
func (s *enrollmentService) SyncForAccount(ctx context.Context, student *models.User) error {
	if student.Role != models.RoleStudent || student.ClassID == nil {
		return nil
	}

	courses, err := s.repo.Course().FindByClass(ctx, *student.ClassID)
	if err != nil {
		return err
	}

	for _, course := range courses {
		if _, err := s.Enroll(ctx, course.ID, student.ID); err != nil {
			return err
		}
	}

	return nil
}

// SyncForCourse enrolls every student of the course's class. Courses without
// a class are a no-op.
func (s *enrollmentService) SyncForCourse(ctx context.Context, course *models.Course) error {
	if course.ClassID == nil {
		return nil
	}

	students, err := s.repo.User().FindStudentsByClass(ctx, *course.ClassID)
	if err != nil {
		return err
	}

	for _, student := range students {
		if _, err := s.Enroll(ctx, course.ID, student.ID); err != nil {
			return err
		}
	}

	return nil
}

// ReconcileCourseClass handles a course moving between classes: enrollments
// of the old class's students are removed, the new class is enrolled. This is
// the only path that retracts enrollments in bulk.
func (s *enrollmentService) ReconcileCourseClass(ctx context.Context, course *models.Course, oldClassID, newClassID *uint) error {
	if oldClassID != nil && (newClassID == nil || *oldClassID != *newClassID) {
		oldStudents, err := s.repo.User().FindStudentsByClass(ctx, *oldClassID)
		if err != nil {
			return err
		}
		studentIDs := make([]uint, 0, len(oldStudents))
		for _, st := range oldStudents {
			studentIDs = append(studentIDs, st.ID)
		}
		if err := s.repo.Enrollment().DeleteForCourseAndStudents(ctx, course.ID, studentIDs); err != nil {
			return err
		}
		s.logger.Info("removed enrollments for reassigned course",
			"course_id", course.ID,
			"old_class_id", *oldClassID,
			"students", len(studentIDs))
	}

	if newClassID != nil {
		courseCopy := *course
		courseCopy.ClassID = newClassID
		return s.SyncForCourse(ctx, &courseCopy)
	}

	return nil
}

// Enroll is idempotent; created reports whether a new enrollment was written
func (s *enrollmentService) Enroll(ctx context.Context, courseID, studentID uint) (bool, error) {
	enrollment, created, err := s.repo.Enrollment().GetOrCreate(ctx, courseID, studentID)
	if err != nil {
		return false, err
	}

	if created {
		s.logger.Info("student enrolled",
			"course_id", courseID,
			"student_id", studentID)
		if s.notification != nil {
			s.notification.EnrollmentCreated(ctx, enrollment)
		}
	}

	return created, nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	return s.repo.Enrollment().Exists(ctx, courseID, studentID)
}

func (s *enrollmentService) ListForCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	return s.repo.Enrollment().FindByCourse(ctx, courseID)
}
