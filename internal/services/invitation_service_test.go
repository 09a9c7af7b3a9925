package services

import (
	"context"
	"testing"
	"time"

	"github.com/akalan-edu/portal-service/internal/email"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/validator"
)

func newInvitationFixture(t *testing.T) (*fakeRepository, InvitationService, *email.ConsoleSender) {
	t.Helper()
	repo := newFakeRepository()
	logger := testLogger()
	v := validator.New()
	sender := email.NewConsoleSenderSilent()

	enrollment := NewEnrollmentService(repo, logger, nil)
	account := NewAccountService(repo, logger, v, enrollment)
	service := NewInvitationService(repo, logger, v, sender, account, nil, InvitationConfig{
		SiteURL: "https://portal.school.test",
		MaxAge:  7 * 24 * time.Hour,
	})
	return repo, service, sender
}

func TestInvitationService_Create(t *testing.T) {
	ctx := context.Background()
	repo, service, sender := newInvitationFixture(t)

	class := &models.Class{Name: "6A"}
	if err := repo.Class().Create(ctx, class); err != nil {
		t.Fatalf("failed to create class: %v", err)
	}

	invitation, err := service.Create(ctx, &models.CreateInvitationRequest{
		Email:   "Student@School.Test",
		Role:    models.RoleStudent,
		ClassID: &class.ID,
	}, 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(invitation.Token) != models.InvitationTokenLength {
		t.Errorf("expected %d-char token, got %d", models.InvitationTokenLength, len(invitation.Token))
	}
	if invitation.Email != "student@school.test" {
		t.Errorf("email should be normalized, got %q", invitation.Email)
	}
	if invitation.Status != models.InvitationPending {
		t.Errorf("expected pending status, got %s", invitation.Status)
	}

	remaining := time.Until(invitation.ExpiresAt)
	if remaining < 7*24*time.Hour-time.Minute || remaining > 7*24*time.Hour {
		t.Errorf("expiry should be about 7 days out, got %v", remaining)
	}

	messages := sender.SentMessages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 invitation email, got %d", len(messages))
	}
	if messages[0].ToAddress != "student@school.test" {
		t.Errorf("email sent to wrong address: %s", messages[0].ToAddress)
	}

	t.Run("duplicate pending invitation rejected", func(t *testing.T) {
		_, err := service.Create(ctx, &models.CreateInvitationRequest{
			Email:   "student@school.test",
			Role:    models.RoleStudent,
			ClassID: &class.ID,
		}, 1)
		if !IsConflictError(err) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("teacher invitation with class rejected", func(t *testing.T) {
		_, err := service.Create(ctx, &models.CreateInvitationRequest{
			Email:   "teacher@school.test",
			Role:    models.RoleTeacher,
			ClassID: &class.ID,
		}, 1)
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("student invitation without class rejected", func(t *testing.T) {
		_, err := service.Create(ctx, &models.CreateInvitationRequest{
			Email: "other@school.test",
			Role:  models.RoleStudent,
		}, 1)
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("admin role not invitable", func(t *testing.T) {
		_, err := service.Create(ctx, &models.CreateInvitationRequest{
			Email: "admin@school.test",
			Role:  models.RoleAdmin,
		}, 1)
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestInvitationService_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	repo, service, _ := newInvitationFixture(t)

	invitation := &models.Invitation{
		Email:       "late@school.test",
		Role:        models.RoleTeacher,
		Status:      models.InvitationPending,
		Token:       "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		CreatedByID: 1,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	if err := repo.Invitation().Create(ctx, invitation); err != nil {
		t.Fatalf("failed to seed invitation: %v", err)
	}

	got, err := service.GetByToken(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got.Status != models.InvitationExpired {
		t.Errorf("expected expired status after access, got %s", got.Status)
	}

	// The flip must be persisted, not just returned
	stored, err := repo.Invitation().GetByToken(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != models.InvitationExpired {
		t.Errorf("expired status was not persisted, got %s", stored.Status)
	}

	info, err := service.GetInfo(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if info.Valid {
		t.Error("expired invitation should not be valid")
	}
}

func TestInvitationService_Accept(t *testing.T) {
	ctx := context.Background()
	repo, service, _ := newInvitationFixture(t)

	class := &models.Class{Name: "7C"}
	if err := repo.Class().Create(ctx, class); err != nil {
		t.Fatalf("failed to create class: %v", err)
	}
	course := &models.Course{Title: "Biology", TeacherID: 1, ClassID: &class.ID}
	if err := repo.Course().Create(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	invitation, err := service.Create(ctx, &models.CreateInvitationRequest{
		Email:   "fresh@school.test",
		Role:    models.RoleStudent,
		ClassID: &class.ID,
	}, 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, err := service.Accept(ctx, invitation.Token, &models.AcceptInvitationRequest{
		Username:  "fresh",
		Password:  "correct-horse-battery",
		FirstName: "Fresh",
		LastName:  "Student",
	})
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	if user.Role != models.RoleStudent {
		t.Errorf("expected student role, got %s", user.Role)
	}
	if user.ClassID == nil || *user.ClassID != class.ID {
		t.Error("accepted user should carry the invitation's class")
	}
	if user.Email != "fresh@school.test" {
		t.Errorf("account email must come from the invitation, got %q", user.Email)
	}

	// Class membership propagates to course enrollment on accept
	enrolled, err := repo.Enrollment().Exists(ctx, course.ID, user.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !enrolled {
		t.Error("accepted student should be enrolled in the class's course")
	}

	stored, _ := repo.Invitation().GetByToken(ctx, invitation.Token)
	if stored.Status != models.InvitationAccepted {
		t.Errorf("expected accepted status, got %s", stored.Status)
	}
	if stored.AcceptedAt == nil {
		t.Error("AcceptedAt should be set")
	}

	t.Run("second accept rejected", func(t *testing.T) {
		_, err := service.Accept(ctx, invitation.Token, &models.AcceptInvitationRequest{
			Username: "fresh2",
			Password: "correct-horse-battery",
		})
		if !IsBusinessError(err) {
			t.Errorf("expected business error for used invitation, got %v", err)
		}
	})
}

func TestInvitationService_Accept_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	repo, service, _ := newInvitationFixture(t)

	class := &models.Class{Name: "8A"}
	if err := repo.Class().Create(ctx, class); err != nil {
		t.Fatalf("failed to create class: %v", err)
	}

	existing := &models.User{Username: "taken", Email: "taken@school.test", Role: models.RoleStudent, IsActive: true}
	if err := repo.User().Create(ctx, existing); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	invitation, err := service.Create(ctx, &models.CreateInvitationRequest{
		Email:   "someone@school.test",
		Role:    models.RoleStudent,
		ClassID: &class.ID,
	}, 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = service.Accept(ctx, invitation.Token, &models.AcceptInvitationRequest{
		Username: "taken",
		Password: "correct-horse-battery",
	})
	if !IsConflictError(err) {
		t.Errorf("expected conflict for taken username, got %v", err)
	}

	// A failed accept leaves the invitation usable
	stored, _ := repo.Invitation().GetByToken(ctx, invitation.Token)
	if stored.Status != models.InvitationPending {
		t.Errorf("invitation should stay pending after failed accept, got %s", stored.Status)
	}
}

func TestInvitation_ValidAtExactExpiry(t *testing.T) {
	now := time.Now()
	invitation := &models.Invitation{
		Status:    models.InvitationPending,
		ExpiresAt: now.Add(time.Hour),
	}
	if !invitation.IsValid() {
		t.Error("pending invitation before expiry should be valid")
	}

	invitation.ExpiresAt = now.Add(-time.Nanosecond)
	if invitation.IsValid() {
		t.Error("pending invitation past expiry should be invalid")
	}
}
