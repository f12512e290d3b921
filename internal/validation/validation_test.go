package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		fields := ValidateRegistration("Jane Doe", "jane@example.com", "secret1")
		assert.Empty(t, fields)
	})

	t.Run("collects every violation", func(t *testing.T) {
		fields := ValidateRegistration("", "not-an-email", "abc")
		assert.Len(t, fields, 3)

		params := make([]string, 0, len(fields))
		for _, f := range fields {
			params = append(params, f.Field)
		}
		assert.Contains(t, params, "name")
		assert.Contains(t, params, "email")
		assert.Contains(t, params, "password")
	})

	t.Run("whitespace name is rejected", func(t *testing.T) {
		fields := ValidateRegistration("   ", "jane@example.com", "secret1")
		assert.Len(t, fields, 1)
		assert.Equal(t, "name", fields[0].Field)
	})

	t.Run("password length boundary", func(t *testing.T) {
		assert.Empty(t, ValidateRegistration("Jane", "jane@example.com", "123456"))
		assert.Len(t, ValidateRegistration("Jane", "jane@example.com", "12345"), 1)
	})
}

func TestValidateLogin(t *testing.T) {
	assert.Empty(t, ValidateLogin("jane@example.com", "whatever"))
	assert.Len(t, ValidateLogin("nope", ""), 2)
}

func TestValidateProfile(t *testing.T) {
	assert.Empty(t, ValidateProfile("Developer", []string{"Go"}))
	assert.Len(t, ValidateProfile("", nil), 2)
	assert.Len(t, ValidateProfile("  ", []string{"Go"}), 1)
}

func TestValidateExperience(t *testing.T) {
	assert.Empty(t, ValidateExperience("Engineer", "Acme", "2020-01-01"))

	fields := ValidateExperience("", "", "")
	assert.Len(t, fields, 3)
}

func TestValidateEducation(t *testing.T) {
	assert.Empty(t, ValidateEducation("MIT", "BSc", "CS", "2015-09-01"))
	assert.Len(t, ValidateEducation("", "", "", ""), 4)
}

func TestValidateText(t *testing.T) {
	assert.Empty(t, ValidateText("hello"))
	assert.Len(t, ValidateText("   "), 1)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"JS", "Go", "PHP"}, ParseSkills("JS, Go,,PHP"))
	assert.Equal(t, []string{"Rust"}, ParseSkills("  Rust  "))
	assert.Empty(t, ParseSkills(" , , "))
}
