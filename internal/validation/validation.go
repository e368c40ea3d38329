// Package validation holds the field-level checks shared by the access layer
// and the HTTP handlers.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks basic email shape. Matching is case-sensitive
// everywhere else in the portal; this only rejects obviously malformed input.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// RequireFields returns an error naming the first empty field in fields,
// which maps field name to value.
func RequireFields(fields map[string]string) error {
	// Deterministic order matters for error messages; iterate a sorted copy.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

// ValidateResumeFilename enforces the portal's PDF-only resume rule.
func ValidateResumeFilename(name string) error {
	if name == "" {
		return fmt.Errorf("resume filename is required")
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return fmt.Errorf("resume must be a PDF file")
	}
	return nil
}
