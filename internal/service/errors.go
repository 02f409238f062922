package service

import "errors"

var (
	// ErrValidation wraps a validators error describing malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthenticationFailed covers a missing, malformed, forged or revoked
	// token and a token of a deleted user alike.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidUpdate is returned for an update naming a field outside the
	// allow-list of the resource.
	ErrInvalidUpdate = errors.New("invalid update")

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAvatarNotFound     = errors.New("avatar not found")

	// ErrInvalidAvatar is returned for an upload that is too large, has a
	// disallowed file name or cannot be decoded as an image.
	ErrInvalidAvatar = errors.New("invalid avatar")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
