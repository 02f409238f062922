// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields (password hash, avatar bytes) are never serialized.
type User struct {
	// ID is the server-generated identifier of the user. Immutable.
	ID uuid.UUID `json:"id"`

	// Name is the display name of the user, whitespace-trimmed.
	Name string `json:"name"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// Age is a non-negative integer, 0 when not provided.
	Age int `json:"age"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Avatar holds the PNG-encoded avatar image, if any.
	// Served separately via the avatar endpoint.
	Avatar []byte `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SignupRequest is the payload accepted by the signup endpoint.
// Age is a pointer so that an omitted value can be told apart from 0.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age,omitempty"`
}

// Credentials is the payload accepted by the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate describes a partial update of the user profile.
// Only non-nil fields are applied. Password carries the plaintext value
// as received; PasswordHash is filled by the service before persisting.
type UserUpdate struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Password     *string `json:"password,omitempty"`
	PasswordHash *string `json:"-"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
