package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *classService) Create(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	if exists, err := s.repo.Class().ExistsByName(ctx, req.Name); err != nil {
		return nil, err
	} else if exists {
		return nil, NewConflictError("class", "a class with this name already exists")
	}

	class := &models.Class{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Class().Create(ctx, class); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("class", "a class with this name already exists")
		}
		return nil, err
	}

	s.logger.Info("class created", "class_id", class.ID, "name", class.Name)
	return class, nil
}

func (s *classService) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	class, err := s.repo.Class().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (s *classService) GetDetail(ctx context.Context, id uint) (*models.ClassDetail, error) {
	class, err := s.repo.Class().GetByIDWithMembers(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	detail := &models.ClassDetail{
		Class:    class,
		Teachers: class.Teachers,
		Students: class.Students,
	}
	return detail, nil
}

func (s *classService) Update(ctx context.Context, id uint, req *models.UpdateClassRequest) (*models.Class, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	class, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != class.Name {
		if exists, err := s.repo.Class().ExistsByName(ctx, *req.Name); err != nil {
			return nil, err
		} else if exists {
			return nil, NewConflictError("class", "a class with this name already exists")
		}
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = req.Description
	}

	class.UpdatedAt = time.Now()
	if err := s.repo.Class().Update(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Class().Delete(ctx, id)
}

func (s *classService) List(ctx context.Context, page, size int) (*models.PaginatedResponse, error) {
	page, size = normalizePage(page, size)

	classes, total, err := s.repo.Class().List(ctx, size, page*size)
	if err != nil {
		return nil, err
	}

	return paginated(classes, total, page, size), nil
}

// AssignTeacher is idempotent; alreadyAssigned reports a repeated assignment
// so the caller can surface it without treating it as a failure.
func (s *classService) AssignTeacher(ctx context.Context, classID, teacherID uint) (bool, error) {
	if _, err := s.GetByID(ctx, classID); err != nil {
		return false, err
	}

	teacher, err := s.repo.User().GetByID(ctx, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	if teacher.Role != models.RoleTeacher {
		return false, NewValidationError("teacher_id", "user is not a teacher", teacherID)
	}

	assigned, err := s.repo.Class().HasTeacher(ctx, classID, teacherID)
	if err != nil {
		return false, err
	}
	if assigned {
		return true, nil
	}

	if err := s.repo.Class().AddTeacher(ctx, classID, teacherID); err != nil {
		return false, err
	}

	s.logger.Info("teacher assigned to class", "class_id", classID, "teacher_id", teacherID)
	return false, nil
}

func (s *classService) RemoveTeacher(ctx context.Context, classID, teacherID uint) error {
	if _, err := s.GetByID(ctx, classID); err != nil {
		return err
	}
	return s.repo.Class().RemoveTeacher(ctx, classID, teacherID)
}

func (s *classService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	return s.repo.Class().FindByTeacher(ctx, teacherID)
}
