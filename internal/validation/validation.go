// Package validation holds the request validation rules for the API. Rules
// collect every violation instead of stopping at the first so clients can
// render all field errors at once.
package validation

import (
	"regexp"
	"strings"

	"devlink/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const MinPasswordLength = 6

// ValidateRegistration checks the signup payload and returns every violated
// rule.
func ValidateRegistration(name, email, password string) []models.FieldError {
	var fields []models.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, models.FieldError{Field: "name", Msg: "Name is required"})
	}
	if !emailRegex.MatchString(email) {
		fields = append(fields, models.FieldError{Field: "email", Msg: "Please include a valid email"})
	}
	if len(password) < MinPasswordLength {
		fields = append(fields, models.FieldError{Field: "password", Msg: "Please enter a password with 6 or more characters"})
	}
	return fields
}

// ValidateLogin checks the login payload.
func ValidateLogin(email, password string) []models.FieldError {
	var fields []models.FieldError
	if !emailRegex.MatchString(email) {
		fields = append(fields, models.FieldError{Field: "email", Msg: "Please include a valid email"})
	}
	if password == "" {
		fields = append(fields, models.FieldError{Field: "password", Msg: "Password is required"})
	}
	return fields
}

// ValidateProfile checks the profile upsert payload.
func ValidateProfile(status string, skills []string) []models.FieldError {
	var fields []models.FieldError
	if strings.TrimSpace(status) == "" {
		fields = append(fields, models.FieldError{Field: "status", Msg: "Status is required"})
	}
	if len(skills) == 0 {
		fields = append(fields, models.FieldError{Field: "skills", Msg: "Skills is required"})
	}
	return fields
}

// ValidateExperience checks a work history entry.
func ValidateExperience(title, company, from string) []models.FieldError {
	var fields []models.FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, models.FieldError{Field: "title", Msg: "Title is required"})
	}
	if strings.TrimSpace(company) == "" {
		fields = append(fields, models.FieldError{Field: "company", Msg: "Company is required"})
	}
	if strings.TrimSpace(from) == "" {
		fields = append(fields, models.FieldError{Field: "from", Msg: "From date is required"})
	}
	return fields
}

// ValidateEducation checks a schooling entry.
func ValidateEducation(school, degree, fieldOfStudy, from string) []models.FieldError {
	var fields []models.FieldError
	if strings.TrimSpace(school) == "" {
		fields = append(fields, models.FieldError{Field: "school", Msg: "School is required"})
	}
	if strings.TrimSpace(degree) == "" {
		fields = append(fields, models.FieldError{Field: "degree", Msg: "Degree is required"})
	}
	if strings.TrimSpace(fieldOfStudy) == "" {
		fields = append(fields, models.FieldError{Field: "fieldofstudy", Msg: "Field of study is required"})
	}
	if strings.TrimSpace(from) == "" {
		fields = append(fields, models.FieldError{Field: "from", Msg: "From date is required"})
	}
	return fields
}

// ValidateText checks the body of a post or comment.
func ValidateText(text string) []models.FieldError {
	if strings.TrimSpace(text) == "" {
		return []models.FieldError{{Field: "text", Msg: "Text is required"}}
	}
	return nil
}

// ParseSkills splits a comma separated skills string, trims whitespace and
// drops empty entries. "JS, Go,,PHP" becomes ["JS" "Go" "PHP"].
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
