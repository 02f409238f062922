// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. They are logged but never sent to the client.
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header does not use
	// the Bearer scheme or carries no token part.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the header has the Bearer prefix but the
	// token value itself is blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request decoding errors, answered with 400.
var (
	ErrInvalidJSON   = errors.New("invalid JSON was passed")
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidQuery  = errors.New("invalid query parameter")
	ErrInvalidUpload = errors.New("invalid upload")
)

// ErrNoIdentity means a protected handler ran without the auth middleware.
var ErrNoIdentity = errors.New("no identity in request context")
