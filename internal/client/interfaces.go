// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the contract of a one-shot command runner.
type Client interface {
	// Run executes the command named by args[0] with the remaining operands.
	Run(ctx context.Context, args []string) error
}

// TokenStore persists the bearer token between client invocations.
type TokenStore interface {
	// Load returns the stored token, or "" if none was saved.
	Load() (string, error)
	Save(token string) error
	Clear() error
}
