package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@example.com",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@" + strings.Repeat("a", 250) + ".com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct-horse-battery"))

	assert.Error(t, ValidatePassword("short"), "below minimum length")
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)), "above bcrypt limit")
	assert.Error(t, ValidatePassword("mypassword12345"), "contains a common pattern")
	assert.Error(t, ValidatePassword("Qwerty9876543"), "contains a common pattern")
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Anna"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("a", 101)))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Run a marathon"))
	assert.Error(t, ValidateTitle(""))
	assert.Error(t, ValidateTitle(strings.Repeat("a", 201)))
}
