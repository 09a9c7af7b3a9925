package validator

import (
	"testing"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
)

func TestValidateGradeValue(t *testing.T) {
	v := New()

	valid := []float64{0, 20, 10, 12.5, 19.99, 0.01}
	for _, value := range valid {
		if errs := v.ValidateGradeValue(value); errs != nil {
			t.Errorf("value %v should be valid, got %v", value, errs)
		}
	}

	invalid := []float64{-0.01, 20.01, 21, -5, 12.345, 9.999}
	for _, value := range invalid {
		if errs := v.ValidateGradeValue(value); errs == nil {
			t.Errorf("value %v should be rejected", value)
		}
	}
}

func TestValidateInvitationRole(t *testing.T) {
	v := New()

	for _, role := range []models.UserRole{models.RoleTeacher, models.RoleStudent} {
		if errs := v.ValidateInvitationRole(role); errs != nil {
			t.Errorf("role %s should be invitable, got %v", role, errs)
		}
	}

	if errs := v.ValidateInvitationRole(models.RoleAdmin); errs == nil {
		t.Error("admin role should not be invitable")
	}
	if errs := v.ValidateInvitationRole("janitor"); errs == nil {
		t.Error("unknown role should be rejected")
	}
}

func TestValidateDeadline(t *testing.T) {
	v := New()

	if errs := v.ValidateDeadline(time.Time{}); errs == nil {
		t.Error("zero deadline should be rejected")
	}
	if errs := v.ValidateDeadline(time.Now().Add(time.Hour)); errs != nil {
		t.Errorf("future deadline should be valid, got %v", errs)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"User@Example.COM":      "user@example.com",
		"  padded@school.test ": "padded@school.test",
		"plain@school.test":     "plain@school.test",
	}
	for input, want := range cases {
		if got := NormalizeEmail(input); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStructValidation(t *testing.T) {
	v := New()

	t.Run("missing required fields", func(t *testing.T) {
		errs := v.Validate(&models.CreateUserRequest{})
		if errs == nil {
			t.Fatal("empty request should fail validation")
		}
		fields := map[string]bool{}
		for _, e := range errs {
			fields[e.Field] = true
		}
		for _, field := range []string{"Username", "Email", "Password", "Role"} {
			if !fields[field] {
				t.Errorf("expected a validation error on %s", field)
			}
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		errs := v.Validate(&models.CreateUserRequest{
			Username: "someone",
			Email:    "not-an-email",
			Password: "correct-horse-battery",
			Role:     models.RoleStudent,
		})
		if errs == nil {
			t.Fatal("malformed email should fail validation")
		}
		if errs[0].Field != "Email" {
			t.Errorf("expected error on Email, got %s", errs[0].Field)
		}
	})

	t.Run("valid request passes", func(t *testing.T) {
		errs := v.Validate(&models.CreateUserRequest{
			Username: "someone",
			Email:    "someone@school.test",
			Password: "correct-horse-battery",
			Role:     models.RoleStudent,
		})
		if errs != nil {
			t.Errorf("valid request should pass, got %v", errs)
		}
	})
}
