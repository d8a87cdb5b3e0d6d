package catalog

import (
	"errors"
	"regexp"
	"strings"
)

// Client-side form checks. These block submission before any network call
// is made; server-side validation still applies independently.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// ValidateRegistration checks a registration form. It returns the first
// failure in display order.
func ValidateRegistration(username, email, password, confirm string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("Username is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Please enter a valid email address")
	}
	if password != confirm {
		return errors.New("Passwords do not match")
	}
	if len(password) < minPasswordLen {
		return errors.New("Password must be at least 6 characters long")
	}
	return nil
}

// ValidateLogin checks a login form.
func ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("Username and password are required")
	}
	return nil
}

// ValidateAnalysisText checks the ad-hoc analyzer input.
func ValidateAnalysisText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("Please enter some text to analyze")
	}
	return nil
}
