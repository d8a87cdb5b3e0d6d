package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		wantErr  string
	}{
		{"valid", "alice", "alice@example.com", "secret1", "secret1", ""},
		{"missing username", "  ", "alice@example.com", "secret1", "secret1", "Username is required"},
		{"bad email", "alice", "not-an-email", "secret1", "secret1", "Please enter a valid email address"},
		{"email without tld", "alice", "alice@host", "secret1", "secret1", "Please enter a valid email address"},
		{"mismatched passwords", "alice", "alice@example.com", "secret1", "secret2", "Passwords do not match"},
		{"short password", "alice", "alice@example.com", "abc", "abc", "Password must be at least 6 characters long"},
		// Mismatch is reported before length: the short-and-mismatched
		// case shows the mismatch message.
		{"short and mismatched", "alice", "alice@example.com", "abc", "abcd", "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.email, tt.password, tt.confirm)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("alice", "secret"))
	assert.EqualError(t, ValidateLogin("", "secret"), "Username and password are required")
	assert.EqualError(t, ValidateLogin("alice", ""), "Username and password are required")
	assert.EqualError(t, ValidateLogin("   ", "secret"), "Username and password are required")
}

func TestValidateAnalysisText(t *testing.T) {
	assert.NoError(t, ValidateAnalysisText("this kettle is great"))
	assert.EqualError(t, ValidateAnalysisText(""), "Please enter some text to analyze")
	assert.EqualError(t, ValidateAnalysisText("   \t"), "Please enter some text to analyze")
}
