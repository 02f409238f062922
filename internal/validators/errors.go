package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName                = errors.New("name is required")
	ErrInvalidEmail             = errors.New("not a valid email")
	ErrPasswordTooShort         = errors.New("password must be at least 6 characters long")
	ErrPasswordContainsPassword = errors.New(`password can not contain the string "password"`)
	ErrNegativeAge              = errors.New("age must be a positive number")

	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidOwnerID   = errors.New("invalid owner ID")
	ErrInvalidSort      = errors.New("invalid sort")
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidUpdate is returned when an update payload names a field
	// outside of the allow-list of the resource.
	ErrInvalidUpdate = errors.New("invalid update")
)
