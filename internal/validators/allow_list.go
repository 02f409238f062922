package validators

import "fmt"

// AllowList is the explicit set of fields a payload may carry.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from field names.
func NewAllowList(fields ...string) AllowList {
	a := make(AllowList, len(fields))
	for _, f := range fields {
		a[f] = struct{}{}
	}
	return a
}

var (
	// UserUpdateFields lists the profile fields a user may change.
	UserUpdateFields = NewAllowList(FieldName, FieldAge, FieldEmail, FieldPassword)
	// TaskUpdateFields lists the task fields an owner may change.
	TaskUpdateFields = NewAllowList(FieldDescription, FieldCompleted)
)

// Check returns ErrInvalidUpdate when any of keys is outside the list.
// It is all-or-nothing: a single unknown key rejects the whole payload.
func (a AllowList) Check(keys ...string) error {
	for _, k := range keys {
		if _, ok := a[k]; !ok {
			return fmt.Errorf("%w: field %q is not allowed", ErrInvalidUpdate, k)
		}
	}
	return nil
}
