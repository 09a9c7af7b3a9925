package validator

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/akalan-edu/portal-service/internal/models"
)

// registerDomainRules registers custom domain rule validators
func registerDomainRules(validate *validator.Validate) {
	// Grade value on the 0-20 scale
	validate.RegisterValidation("grade_value", func(fl validator.FieldLevel) bool {
		value := fl.Field().Float()
		return value >= models.GradeMin && value <= models.GradeMax
	})

	// Deadlines and expiry dates must be in the future
	validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		field := fl.Field()

		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true // optional field
		}

		var t time.Time
		if field.Kind() == reflect.Ptr {
			t = field.Elem().Interface().(time.Time)
		} else {
			t = field.Interface().(time.Time)
		}

		return t.After(time.Now())
	})

	// Closed role set
	validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseUserRole(fl.Field().String())
		return ok
	})
}

// ValidateGradeValue checks a grade against the 0-20 scale with at most two
// decimal places.
func (v *Validator) ValidateGradeValue(value float64) ValidationErrors {
	var errors ValidationErrors

	if value < models.GradeMin || value > models.GradeMax {
		errors = append(errors, ValidationError{
			Field:   "value",
			Message: "must be between 0 and 20",
			Value:   value,
			Rule:    "grade_value",
		})
	}

	// Tolerate float noise: 19.99*100 is not exactly 1999 in float64
	scaled := value * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		errors = append(errors, ValidationError{
			Field:   "value",
			Message: "must have at most two decimal places",
			Value:   value,
			Rule:    "grade_value",
		})
	}

	return errors
}

// ValidateDeadline checks an assignment deadline at creation time
func (v *Validator) ValidateDeadline(deadline time.Time) ValidationErrors {
	if deadline.IsZero() {
		return ValidationErrors{{
			Field:   "deadline",
			Message: "is required",
			Rule:    "required",
		}}
	}
	return nil
}

// ValidateInvitationRole restricts invitations to onboardable roles
func (v *Validator) ValidateInvitationRole(role models.UserRole) ValidationErrors {
	if role != models.RoleTeacher && role != models.RoleStudent {
		return ValidationErrors{{
			Field:   "role",
			Message: "must be teacher or student",
			Value:   role,
			Rule:    "user_role",
		}}
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for uniqueness checks
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
