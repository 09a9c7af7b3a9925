package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

type assignmentService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationEventService
}

func NewAssignmentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, notification NotificationEventService) AssignmentService {
	return &assignmentService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		notification: notification,
	}
}

func (s *assignmentService) Create(ctx context.Context, teacherID uint, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}
	if errs := s.validator.ValidateDeadline(req.Deadline); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	if _, err := s.getOwnedCourse(ctx, teacherID, req.CourseID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		FilePath:    req.FilePath,
	}

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		"assignment_id", assignment.ID,
		"course_id", assignment.CourseID)

	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, teacherID, id uint, req *models.UpdateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	assignment, err := s.getOwned(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}
	if req.Deadline != nil {
		assignment.Deadline = *req.Deadline
	}
	if req.FilePath != nil {
		assignment.FilePath = req.FilePath
	}

	assignment.UpdatedAt = time.Now()
	if err := s.repo.Assignment().Update(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, teacherID, id uint) error {
	if _, err := s.getOwned(ctx, teacherID, id); err != nil {
		return err
	}
	return s.repo.Assignment().Delete(ctx, id)
}

func (s *assignmentService) ListForCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error) {
	return s.repo.Assignment().FindByCourse(ctx, courseID)
}

func (s *assignmentService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error) {
	filters := repositories.AssignmentFilters{TeacherID: &teacherID}
	assignments, _, err := s.repo.Assignment().List(ctx, filters)
	return assignments, err
}

// Submit records a student's hand-in. The student must be enrolled, the
// deadline must not have passed, and only one submission per assignment is
// accepted. Timeliness is derived from the deadline, not stored.
func (s *assignmentService) Submit(ctx context.Context, studentID, assignmentID uint, req *models.SubmitAssignmentRequest) (*models.Submission, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	assignment, err := s.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, assignment.CourseID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, NewPermissionError(studentID, assignmentID, "assignment", "submit", "student is not enrolled in this course")
	}

	if exists, err := s.repo.Submission().Exists(ctx, assignmentID, studentID); err != nil {
		return nil, err
	} else if exists {
		return nil, NewConflictError("submission", "assignment already submitted")
	}

	now := time.Now()
	if !assignment.IsOpen(now) {
		return nil, NewBusinessError("deadline_passed", "the submission deadline has passed")
	}

	fileMeta, err := json.Marshal(map[string]interface{}{
		"file_name":    req.FileName,
		"file_size":    req.FileSize,
		"content_type": req.ContentType,
	})
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     req.FilePath,
		FileMeta:     fileMeta,
		SubmittedAt:  now,
	}

	if err := s.repo.Submission().Create(ctx, submission); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("submission", "assignment already submitted")
		}
		return nil, err
	}

	submission.Assignment = assignment
	submission.ComputeOnTime(assignment.Deadline)

	s.logger.Info("submission received",
		"submission_id", submission.ID,
		"assignment_id", assignmentID,
		"student_id", studentID,
		"on_time", submission.OnTime)

	if s.notification != nil {
		s.notification.SubmissionReceived(ctx, submission)
	}

	return submission, nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, teacherID, assignmentID uint) ([]*models.Submission, error) {
	assignment, err := s.getOwned(ctx, teacherID, assignmentID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission().FindByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	for _, sub := range submissions {
		sub.ComputeOnTime(assignment.Deadline)
	}
	return submissions, nil
}

func (s *assignmentService) ListStudentSubmissions(ctx context.Context, studentID uint) ([]*models.Submission, error) {
	submissions, err := s.repo.Submission().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, sub := range submissions {
		if sub.Assignment != nil {
			sub.ComputeOnTime(sub.Assignment.Deadline)
		}
	}
	return submissions, nil
}

// ListForStudent builds the status view over every assignment of the
// student's enrolled courses.
func (s *assignmentService) ListForStudent(ctx context.Context, studentID uint) ([]*models.AssignmentStatus, error) {
	courses, err := s.repo.Course().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []*models.AssignmentStatus{}, nil
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	assignments, err := s.repo.Assignment().FindByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byAssignment := make(map[uint]*models.Submission, len(submissions))
	for _, sub := range submissions {
		byAssignment[sub.AssignmentID] = sub
	}

	now := time.Now()
	statuses := make([]*models.AssignmentStatus, 0, len(assignments))
	for _, assignment := range assignments {
		status := &models.AssignmentStatus{
			Assignment: assignment,
			Open:       assignment.IsOpen(now),
		}
		if sub, ok := byAssignment[assignment.ID]; ok {
			status.Submitted = true
			submittedAt := sub.SubmittedAt
			status.SubmittedAt = &submittedAt
			onTime := !sub.SubmittedAt.After(assignment.Deadline)
			status.OnTime = &onTime
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (s *assignmentService) getOwned(ctx context.Context, teacherID, assignmentID uint) (*models.Assignment, error) {
	assignment, err := s.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedCourse(ctx, teacherID, assignment.CourseID); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) getOwnedCourse(ctx context.Context, teacherID, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, NewPermissionError(teacherID, courseID, "course", "modify", "course belongs to another teacher")
	}
	return course, nil
}
