package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

type gradingService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationEventService
}

func NewGradingService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, notification NotificationEventService) GradingService {
	return &gradingService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		notification: notification,
	}
}

// RecordGrade stores a grade on the 0-20 scale. The teacher must own the
// assignment's course and the student must be enrolled in it. Multiple grades
// for the same student and assignment are allowed; each is a separate record.
func (s *gradingService) RecordGrade(ctx context.Context, teacherID uint, req *models.RecordGradeRequest) (*models.Grade, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}
	if errs := s.validator.ValidateGradeValue(req.Value); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, req.AssignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if err := s.checkCourseOwnership(ctx, teacherID, assignment.CourseID); err != nil {
		return nil, err
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, NewValidationError("student_id", "user is not a student", req.StudentID)
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, assignment.CourseID, student.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, NewBusinessError("not_enrolled", "student is not enrolled in the assignment's course")
	}

	grade := &models.Grade{
		StudentID:    req.StudentID,
		TeacherID:    teacherID,
		AssignmentID: req.AssignmentID,
		Value:        req.Value,
		Comment:      req.Comment,
	}

	if err := s.repo.Grade().Create(ctx, grade); err != nil {
		return nil, err
	}

	s.logger.Info("grade recorded",
		"grade_id", grade.ID,
		"student_id", grade.StudentID,
		"assignment_id", grade.AssignmentID,
		"value", grade.Value)

	if s.notification != nil {
		s.notification.GradeRecorded(ctx, grade)
	}

	return grade, nil
}

func (s *gradingService) UpdateGrade(ctx context.Context, teacherID, gradeID uint, req *models.UpdateGradeRequest) (*models.Grade, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	grade, err := s.getOwned(ctx, teacherID, gradeID)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		if errs := s.validator.ValidateGradeValue(*req.Value); errs != nil {
			return nil, NewValidationErrors(errs)
		}
		grade.Value = *req.Value
	}
	if req.Comment != nil {
		grade.Comment = req.Comment
	}

	grade.UpdatedAt = time.Now()
	if err := s.repo.Grade().Update(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

func (s *gradingService) DeleteGrade(ctx context.Context, teacherID, gradeID uint) error {
	if _, err := s.getOwned(ctx, teacherID, gradeID); err != nil {
		return err
	}
	return s.repo.Grade().Delete(ctx, gradeID)
}

func (s *gradingService) ListForStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	return s.repo.Grade().FindByStudent(ctx, studentID)
}

func (s *gradingService) StudentAverage(ctx context.Context, studentID uint) (float64, error) {
	return s.repo.Grade().AverageForStudent(ctx, studentID)
}

// ClassGradeSummaries returns the grade list and average of every student in
// the class. The teacher must be assigned to the class.
func (s *gradingService) ClassGradeSummaries(ctx context.Context, teacherID, classID uint) ([]*models.StudentGradeSummary, error) {
	assigned, err := s.repo.Class().HasTeacher(ctx, classID, teacherID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, NewPermissionError(teacherID, classID, "class", "view grades", "teacher is not assigned to this class")
	}

	students, err := s.repo.User().FindStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.StudentGradeSummary, 0, len(students))
	for _, student := range students {
		grades, err := s.repo.Grade().FindByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		average, err := s.repo.Grade().AverageForStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		values := make([]models.Grade, 0, len(grades))
		for _, g := range grades {
			values = append(values, *g)
		}

		summaries = append(summaries, &models.StudentGradeSummary{
			Student: student,
			Grades:  values,
			Average: average,
		})
	}

	return summaries, nil
}

func (s *gradingService) getOwned(ctx context.Context, teacherID, gradeID uint) (*models.Grade, error) {
	grade, err := s.repo.Grade().GetByID(ctx, gradeID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}
	if grade.TeacherID != teacherID {
		return nil, NewPermissionError(teacherID, gradeID, "grade", "modify", "grade was recorded by another teacher")
	}
	return grade, nil
}

func (s *gradingService) checkCourseOwnership(ctx context.Context, teacherID, courseID uint) error {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return err
	}
	if course.TeacherID != teacherID {
		return NewPermissionError(teacherID, courseID, "course", "grade", "course belongs to another teacher")
	}
	return nil
}
