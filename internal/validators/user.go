package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

// Field name constants used to scope user validation.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAge      = "age"
)

// MinPasswordLength is the minimal length of a trimmed plaintext password.
const MinPasswordLength = 6

// passwordForbiddenSubstring must not appear inside a password.
const passwordForbiddenSubstring = "password"

// UserValidator validates account payloads: SignupRequest and UserUpdate.
// Inputs are expected to be normalized with [NormalizeSignupRequest] or
// [NormalizeUserUpdate] first.
type UserValidator struct{}

// NewUserValidator returns a Validator for user payloads.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj.
// Both value and pointer forms are accepted.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.UserUpdate:
		return v.validateUpdate(value)
	case *models.UserUpdate:
		return v.validateUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldAge}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = validateName(req.Name)
		case FieldEmail:
			err = validateEmail(req.Email)
		case FieldPassword:
			err = validatePassword(req.Password)
		case FieldAge:
			if req.Age != nil {
				err = validateAge(*req.Age)
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateUpdate checks only the fields present in the update. An empty
// update is valid.
func (v *UserValidator) validateUpdate(u models.UserUpdate) error {
	if u.Name != nil {
		if err := validateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := validateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Password != nil {
		if err := validatePassword(*u.Password); err != nil {
			return err
		}
	}
	if u.Age != nil {
		if err := validateAge(*u.Age); err != nil {
			return err
		}
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return nil
}

// validateEmail accepts a bare address only: no display name, no angle brackets.
func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}

	at := strings.LastIndexByte(email, '@')
	if at < 1 || !strings.Contains(email[at+1:], ".") || strings.HasSuffix(email, ".") {
		return ErrInvalidEmail
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.Contains(password, passwordForbiddenSubstring) {
		return ErrPasswordContainsPassword
	}
	return nil
}

func validateAge(age int) error {
	if age < 0 {
		return ErrNegativeAge
	}
	return nil
}
