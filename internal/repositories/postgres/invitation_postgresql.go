package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type InvitationPostgreSQL struct {
	db *gorm.DB
}

func NewInvitationPostgreSQL(db *gorm.DB) repositories.InvitationRepository {
	return &InvitationPostgreSQL{db: db}
}

func (r *InvitationPostgreSQL) Create(ctx context.Context, invitation *models.Invitation) error {
	if err := r.db.WithContext(ctx).Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *InvitationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Preload("Class").
		First(&invitation, id).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByToken looks up an invitation by its link token. Tokens are unique so
// this is the acceptance-flow entry point.
func (r *InvitationPostgreSQL) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("token = ?", token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationPostgreSQL) Update(ctx context.Context, invitation *models.Invitation) error {
	if err := r.db.WithContext(ctx).Model(&models.Invitation{}).Where("id = ?", invitation.ID).Updates(map[string]interface{}{
		"status":      invitation.Status,
		"accepted_at": invitation.AcceptedAt,
		"updated_at":  invitation.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}

func (r *InvitationPostgreSQL) List(ctx context.Context, filters repositories.InvitationFilters) ([]*models.Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Invitation{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var invitations []*models.Invitation
	if err := query.Preload("Class").Find(&invitations).Error; err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}

func (r *InvitationPostgreSQL) ExistsPending(ctx context.Context, email string, role models.UserRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("email = ? AND role = ? AND status = ?", email, role, models.InvitationPending).
		Count(&count).Error
	return count > 0, err
}
