package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MaxBioLength      = 150
	MinPhoneDigits    = 7
	MaxPhoneDigits    = 15
)

// Rejection codes consumed by the UI layer.
const (
	CodeFormatInvalid     = "FORMAT_INVALID"
	CodeUsernameTaken     = "UNIQUENESS_CONFLICT"
	CodeCooldownActive    = "COOLDOWN_ACTIVE"
	CodeCredentialInvalid = "CREDENTIAL_INVALID"
	CodeValueMismatch     = "VALUE_MISMATCH"
	CodeMissingRequired   = "MISSING_REQUIRED"
	CodeSizeExceeded      = "SIZE_EXCEEDED"
	CodeRecordNotFound    = "RECORD_NOT_FOUND"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.]{3,20}$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// ValidationError represents a rejected field value.
type ValidationError struct {
	Field   string
	Code    string
	Message string
	Days    int // remaining wait, only set for COOLDOWN_ACTIVE
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername validates a proposed username change.
// Rules: 3-20 characters, letters, numbers, underscores and dots, and
// not already used (case-insensitively) by another account. A candidate
// equal to the current username is always accepted as a no-op.
func ValidateUsername(candidate, current string, taken []string) error {
	if candidate == current {
		return nil
	}

	if !usernameRegex.MatchString(candidate) {
		return &ValidationError{
			Field:   "username",
			Code:    CodeFormatInvalid,
			Message: fmt.Sprintf("Username must be %d-%d characters: letters, numbers, _ or .", MinUsernameLength, MaxUsernameLength),
		}
	}

	for _, t := range taken {
		if strings.EqualFold(t, candidate) {
			return &ValidationError{
				Field:   "username",
				Code:    CodeUsernameTaken,
				Message: "Username is already taken",
			}
		}
	}

	return nil
}

// NormalizePhone strips every non-digit character from raw and returns
// the digit string. A non-empty input must yield 7-15 digits.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigitRegex.ReplaceAllString(raw, "")
	if raw != "" && (len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits) {
		return "", &ValidationError{
			Field:   "phone",
			Code:    CodeFormatInvalid,
			Message: fmt.Sprintf("Phone number must be %d-%d digits", MinPhoneDigits, MaxPhoneDigits),
		}
	}
	return digits, nil
}

// ValidateBio rejects bios longer than 150 characters.
func ValidateBio(text string) error {
	if utf8.RuneCountInString(text) > MaxBioLength {
		return &ValidationError{
			Field:   "bio",
			Code:    CodeFormatInvalid,
			Message: fmt.Sprintf("Bio must be at most %d characters", MaxBioLength),
		}
	}
	return nil
}

// NormalizeUsername converts a username to lowercase for comparisons.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
