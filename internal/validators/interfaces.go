// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators normalizes and checks user and task input before it
// reaches storage.
//
// Normalization (trimming, lower-casing e-mails) is done by the Normalize*
// helpers and is idempotent. Validation is done by a [Validator] for the
// resource and reports the first broken rule as one of the sentinel errors
// of this package. Update allow-lists live in allow_list.go.
package validators

import "context"

// Validator checks one kind of input value.
//
// Validate returns [ErrUnsupportedType] when v is not a type the validator
// knows. When fields are given, only those fields are checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
