package common

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every comparison and every stored value goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the normalized address for a plausible shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidateName enforces the 2-50 character rule on a trimmed name field.
// Lengths are counted in characters, not bytes.
func ValidateName(value, fieldName string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < 2 || n > 50 {
		return fmt.Errorf("%s must be between 2 and 50 characters", fieldName)
	}
	return nil
}

// ValidatePassword enforces the registration strength rule: at least 8
// characters with one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter and a digit")
	}
	return nil
}

// ValidateBoundedString enforces a character-count range on a trimmed
// string.
func ValidateBoundedString(value, fieldName string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min {
		if min == 1 {
			return fmt.Errorf("%s is required", fieldName)
		}
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if n > max {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, max)
	}
	return nil
}

// ValidateHexColor checks the #RGB / #RRGGBB form.
func ValidateHexColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("color must be a hex value like #fff or #ffffff")
	}
	return nil
}

// NormalizeTags trims each tag and drops the ones that are empty after
// trimming. Duplicates are kept; order is preserved.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ValidateTags enforces the tag count and per-tag length limits on an
// already normalized tag list.
func ValidateTags(tags []string, maxTags, maxTagLength int) error {
	if len(tags) > maxTags {
		return fmt.Errorf("a note cannot have more than %d tags", maxTags)
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > maxTagLength {
			return fmt.Errorf("each tag cannot exceed %d characters", maxTagLength)
		}
	}
	return nil
}

// ValidateSortOrder normalizes a sort direction, defaulting to DESC.
func ValidateSortOrder(sortOrder string) string {
	if strings.ToLower(sortOrder) == "asc" {
		return "ASC"
	}
	return "DESC"
}
