package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

type accountService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	enrollment EnrollmentService
}

func NewAccountService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, enrollment EnrollmentService) AccountService {
	return &accountService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		enrollment: enrollment,
	}
}

func (s *accountService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	email := validator.NormalizeEmail(req.Email)

	if exists, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, NewConflictError("user", "username already taken")
	}
	if exists, err := s.repo.User().ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, NewConflictError("user", "email already registered")
	}

	if req.ClassID != nil && req.Role != models.RoleStudent {
		return nil, NewValidationError("class_id", "only students belong to a class", *req.ClassID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		ClassID:      req.ClassID,
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("user", "username or email already taken")
		}
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)

	// New students join their class's courses immediately
	if err := s.enrollment.SyncForAccount(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *accountService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := validator.NormalizeEmail(*req.Email)
		if email != user.Email {
			if exists, err := s.repo.User().ExistsByEmail(ctx, email); err != nil {
				return nil, err
			} else if exists {
				return nil, NewConflictError("user", "email already registered")
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	classChanged := false
	if req.ClassID != nil {
		if user.Role != models.RoleStudent {
			return nil, NewValidationError("class_id", "only students belong to a class", *req.ClassID)
		}
		if user.ClassID == nil || *user.ClassID != *req.ClassID {
			if _, err := s.repo.Class().GetByID(ctx, *req.ClassID); err != nil {
				if repositories.IsNotFoundError(err) {
					return nil, ErrClassNotFound
				}
				return nil, err
			}
			user.ClassID = req.ClassID
			classChanged = true
		}
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}

	// Moving a student into a class enrolls them in its courses. Enrollments
	// from a previous class are kept; only course reassignment retracts.
	if classChanged {
		if err := s.enrollment.SyncForAccount(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *accountService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.User().Delete(ctx, id)
}

func (s *accountService) List(ctx context.Context, params models.ListUsersParams) (*models.PaginatedResponse, error) {
	page, size := normalizePage(params.Page, params.Size)

	filters := repositories.UserFilters{
		ClassID: params.ClassID,
		Search:  params.Search,
		Limit:   size,
		Offset:  page * size,
	}
	if params.Role != "" {
		if !params.Role.Valid() {
			return nil, NewValidationError("role", "unknown role", params.Role)
		}
		filters.Role = &params.Role
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return paginated(users, total, page, size), nil
}

// Authenticate verifies credentials and the requested role together.
// Inactive accounts cannot log in.
func (s *accountService) Authenticate(ctx context.Context, identifier, password string, role models.UserRole) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, identifier)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, err
		}
		user, err = s.repo.User().GetByEmail(ctx, validator.NormalizeEmail(identifier))
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if !user.IsActive || user.Role != role {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ===== SHARED PAGINATION HELPERS =====

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func paginated(content interface{}, total int64, page, size int) *models.PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	return &models.PaginatedResponse{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Page:          page,
	}
}
