package errors

import (
	"strings"
	"unicode"
)

// maxConfigurationName bounds names passed on to the build tool.
const maxConfigurationName = 256

// ValidateConfigurationName checks a configuration name before it is handed
// to `gradle dependencies --configuration` or used as a filter.
//
// Gradle configuration names are identifiers: letters, digits, '.', '_' and
// '-'. Anything else (spaces, quotes, path separators, control characters)
// is rejected.
func ValidateConfigurationName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfiguration, "configuration name cannot be empty")
	}
	if len(name) > maxConfigurationName {
		return New(ErrCodeInvalidConfiguration, "configuration name too long (max %d characters)", maxConfigurationName)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			continue
		}
		return New(ErrCodeInvalidConfiguration, "configuration name contains invalid character %q", r)
	}
	return nil
}

// ValidatePath validates a project directory or report path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}
