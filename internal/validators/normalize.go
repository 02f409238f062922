package validators

import (
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSignupRequest trims text fields and lower-cases the email in place.
func NormalizeSignupRequest(req *models.SignupRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)
	req.Password = strings.TrimSpace(req.Password)
}

// NormalizeCredentials prepares login credentials the same way signup
// stores them.
func NormalizeCredentials(c *models.Credentials) {
	c.Email = NormalizeEmail(c.Email)
	c.Password = strings.TrimSpace(c.Password)
}

// NormalizeUserUpdate normalizes the fields present in u.
func NormalizeUserUpdate(u *models.UserUpdate) {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}
	if u.Email != nil {
		email := NormalizeEmail(*u.Email)
		u.Email = &email
	}
	if u.Password != nil {
		password := strings.TrimSpace(*u.Password)
		u.Password = &password
	}
}

// NormalizeNewTask trims the description.
func NormalizeNewTask(t *models.NewTask) {
	t.Description = strings.TrimSpace(t.Description)
}

// NormalizeTaskUpdate trims the description when present.
func NormalizeTaskUpdate(u *models.TaskUpdate) {
	if u.Description != nil {
		d := strings.TrimSpace(*u.Description)
		u.Description = &d
	}
}
