package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

type courseService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	enrollment EnrollmentService
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, enrollment EnrollmentService) CourseService {
	return &courseService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		enrollment: enrollment,
	}
}

// Create registers a course owned by the teacher. Attaching a class requires
// the teacher to be assigned to that class, and enrolls its students.
func (s *courseService) Create(ctx context.Context, teacherID uint, req *models.CreateCourseRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	if req.ClassID != nil {
		if err := s.checkClassAccess(ctx, teacherID, *req.ClassID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
		ClassID:     req.ClassID,
		FilePath:    req.FilePath,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"course_id", course.ID,
		"teacher_id", teacherID)

	if err := s.enrollment.SyncForCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// Update applies partial changes. Moving the course to a different class
// retracts the old class's enrollments and enrolls the new class; re-saving
// with the same class only re-syncs, so late class joiners get picked up.
func (s *courseService) Update(ctx context.Context, teacherID, id uint, req *models.UpdateCourseRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	course, err := s.getOwned(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}

	oldClassID := course.ClassID

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.FilePath != nil {
		course.FilePath = req.FilePath
	}

	classChanged := false
	if req.ClassID != nil {
		if oldClassID == nil || *oldClassID != *req.ClassID {
			if err := s.checkClassAccess(ctx, teacherID, *req.ClassID); err != nil {
				return nil, err
			}
			classChanged = true
		}
		course.ClassID = req.ClassID
	}

	course.UpdatedAt = time.Now()
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, err
	}

	if classChanged {
		if err := s.enrollment.ReconcileCourseClass(ctx, course, oldClassID, course.ClassID); err != nil {
			return nil, err
		}
	} else if course.ClassID != nil {
		if err := s.enrollment.SyncForCourse(ctx, course); err != nil {
			return nil, err
		}
	}

	return course, nil
}

func (s *courseService) Delete(ctx context.Context, teacherID, id uint) error {
	if _, err := s.getOwned(ctx, teacherID, id); err != nil {
		return err
	}
	return s.repo.Course().Delete(ctx, id)
}

func (s *courseService) List(ctx context.Context, params models.ListCoursesParams) (*models.PaginatedResponse, error) {
	page, size := normalizePage(params.Page, params.Size)

	filters := repositories.CourseFilters{
		TeacherID: params.TeacherID,
		ClassID:   params.ClassID,
		Search:    params.Search,
		Limit:     size,
		Offset:    page * size,
	}

	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return paginated(courses, total, page, size), nil
}

func (s *courseService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	return s.repo.Course().FindByTeacher(ctx, teacherID)
}

func (s *courseService) ListForStudent(ctx context.Context, studentID uint) ([]*models.Course, error) {
	return s.repo.Course().FindByStudent(ctx, studentID)
}

func (s *courseService) getOwned(ctx context.Context, teacherID, courseID uint) (*models.Course, error) {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, NewPermissionError(teacherID, courseID, "course", "modify", "course belongs to another teacher")
	}
	return course, nil
}

func (s *courseService) checkClassAccess(ctx context.Context, teacherID, classID uint) error {
	if _, err := s.repo.Class().GetByID(ctx, classID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassNotFound
		}
		return err
	}

	assigned, err := s.repo.Class().HasTeacher(ctx, classID, teacherID)
	if err != nil {
		return err
	}
	if !assigned {
		return NewPermissionError(teacherID, classID, "class", "attach course", "teacher is not assigned to this class")
	}
	return nil
}
