package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/email"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
	"github.com/akalan-edu/portal-service/internal/validator"
)

// InvitationConfig carries the deployment-specific invitation settings
type InvitationConfig struct {
	SiteURL string
	MaxAge  time.Duration
}

type invitationService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	sender       email.Sender
	account      AccountService
	notification NotificationEventService
	config       InvitationConfig
}

func NewInvitationService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	sender email.Sender,
	account AccountService,
	notification NotificationEventService,
	config InvitationConfig,
) InvitationService {
	if config.MaxAge <= 0 {
		config.MaxAge = models.DefaultInvitationMaxAge
	}
	return &invitationService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		sender:       sender,
		account:      account,
		notification: notification,
		config:       config,
	}
}

// Create issues an invitation and emails the acceptance link. The token is
// generated exactly once here and never rotated. A failed email send is
// reported in the logs but does not roll back the invitation; admins can
// re-issue from the invitation list.
func (s *invitationService) Create(ctx context.Context, req *models.CreateInvitationRequest, creatorID uint) (*models.Invitation, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}
	if errs := s.validator.ValidateInvitationRole(req.Role); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	emailAddr := validator.NormalizeEmail(req.Email)

	if exists, err := s.repo.User().ExistsByEmail(ctx, emailAddr); err != nil {
		return nil, err
	} else if exists {
		return nil, NewConflictError("invitation", "an account with this email already exists")
	}

	if pending, err := s.repo.Invitation().ExistsPending(ctx, emailAddr, req.Role); err != nil {
		return nil, err
	} else if pending {
		return nil, NewConflictError("invitation", "a pending invitation for this email and role already exists")
	}

	if req.Role == models.RoleStudent {
		if req.ClassID == nil {
			return nil, NewValidationError("class_id", "is required for student invitations", nil)
		}
		if _, err := s.repo.Class().GetByID(ctx, *req.ClassID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
	} else if req.ClassID != nil {
		return nil, NewValidationError("class_id", "only student invitations carry a class", *req.ClassID)
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, err
	}

	invitation := &models.Invitation{
		Email:       emailAddr,
		Role:        req.Role,
		Status:      models.InvitationPending,
		Token:       token,
		ClassID:     req.ClassID,
		CreatedByID: creatorID,
		ExpiresAt:   time.Now().Add(s.config.MaxAge),
	}

	if err := s.repo.Invitation().Create(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation created",
		"invitation_id", invitation.ID,
		"role", invitation.Role)

	if err := s.sendInvitationEmail(ctx, invitation); err != nil {
		s.logger.Error("Failed to send invitation email",
			"invitation_id", invitation.ID,
			"error", err)
	}

	if s.notification != nil {
		s.notification.InvitationCreated(ctx, invitation)
	}

	return invitation, nil
}

// GetByToken returns the invitation for a link token. A pending invitation
// past its expiry is marked expired here, on access, rather than by a
// background job.
func (s *invitationService) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	invitation, err := s.repo.Invitation().GetByToken(ctx, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if invitation.Status == models.InvitationPending && invitation.IsExpired() {
		invitation.Status = models.InvitationExpired
		invitation.UpdatedAt = time.Now()
		if err := s.repo.Invitation().Update(ctx, invitation); err != nil {
			return nil, err
		}
	}

	return invitation, nil
}

func (s *invitationService) GetInfo(ctx context.Context, token string) (*models.InvitationInfo, error) {
	invitation, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	info := &models.InvitationInfo{
		Email:     invitation.Email,
		Role:      invitation.Role,
		Status:    invitation.Status,
		ExpiresAt: invitation.ExpiresAt,
		Valid:     invitation.IsValid(),
	}
	if invitation.Class != nil {
		info.ClassName = &invitation.Class.Name
	}
	return info, nil
}

// Accept creates the account for a valid invitation and marks it accepted.
// Account creation and the status update are two steps; if the account exists
// from an earlier attempt the invitation is closed as expired.
func (s *invitationService) Accept(ctx context.Context, token string, req *models.AcceptInvitationRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationErrors(errs)
	}

	invitation, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !invitation.IsValid() {
		return nil, NewBusinessError("invitation_invalid", fmt.Sprintf("invitation is %s", invitation.Status))
	}

	if exists, err := s.repo.User().ExistsByEmail(ctx, invitation.Email); err != nil {
		return nil, err
	} else if exists {
		invitation.Status = models.InvitationExpired
		invitation.UpdatedAt = time.Now()
		if err := s.repo.Invitation().Update(ctx, invitation); err != nil {
			return nil, err
		}
		return nil, NewConflictError("invitation", "an account with this email already exists")
	}

	user, err := s.account.Create(ctx, &models.CreateUserRequest{
		Username:  req.Username,
		Email:     invitation.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      invitation.Role,
		ClassID:   invitation.ClassID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invitation.Status = models.InvitationAccepted
	invitation.AcceptedAt = &now
	invitation.UpdatedAt = now
	if err := s.repo.Invitation().Update(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation accepted",
		"invitation_id", invitation.ID,
		"user_id", user.ID)

	if s.notification != nil {
		s.notification.InvitationAccepted(ctx, invitation)
	}

	return user, nil
}

func (s *invitationService) List(ctx context.Context, params models.ListInvitationsParams) (*models.PaginatedResponse, error) {
	page, size := normalizePage(params.Page, params.Size)

	filters := repositories.InvitationFilters{
		Limit:  size,
		Offset: page * size,
	}
	if params.Role != "" {
		filters.Role = &params.Role
	}
	if params.Status != "" {
		filters.Status = &params.Status
	}

	invitations, total, err := s.repo.Invitation().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return paginated(invitations, total, page, size), nil
}

func (s *invitationService) sendInvitationEmail(ctx context.Context, invitation *models.Invitation) error {
	link := fmt.Sprintf("%s/api/v1/invitations/%s/accept", s.config.SiteURL, invitation.Token)

	body := fmt.Sprintf(
		"You have been invited to join the school portal as a %s.\n\n"+
			"Follow this link to create your account:\n%s\n\n"+
			"The invitation expires on %s.",
		invitation.Role, link, invitation.ExpiresAt.Format("Monday, 2 January 2006 at 15:04"))

	return s.sender.Send(ctx, email.Message{
		ToAddress: invitation.Email,
		Subject:   "Your invitation to the school portal",
		Text:      body,
	})
}

func generateInvitationToken() (string, error) {
	buf := make([]byte, models.InvitationTokenLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
