package utils

import (
	"regexp"
	"strings"
)

var (
	idPattern       = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	scanCodePattern = regexp.MustCompile(`^QR-S-\d{4}-\d{2}$`)
)

// ValidateEssaiID checks a URL-supplied essai id: non-empty, safe charset,
// bounded length.
func ValidateEssaiID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	if len(id) > 64 {
		return ErrIDTooLong
	}
	return nil
}

// ValidateEchantillonCode checks the S-NNNN/YY business code format.
func ValidateEchantillonCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	matched, _ := regexp.MatchString(`^S-\d{4}/\d{2}$`, code)
	if !matched {
		return ErrInvalidCodeFormat
	}
	return nil
}

// ValidateClientCode checks the CLI-NNN client code format.
func ValidateClientCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	matched, _ := regexp.MatchString(`^CLI-\d{3}$`, code)
	if !matched {
		return ErrInvalidCodeFormat
	}
	return nil
}

// ValidateScanCode checks the QR-S-NNNN-YY scan code format.
func ValidateScanCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	if !scanCodePattern.MatchString(code) {
		return ErrInvalidCodeFormat
	}
	return nil
}

// NormalizeEchantillonCode accepts the URL-safe dash form S-NNNN-YY and
// returns the canonical S-NNNN/YY. The canonical form passes through.
func NormalizeEchantillonCode(code string) string {
	matched, _ := regexp.MatchString(`^S-\d{4}-\d{2}$`, code)
	if matched {
		idx := strings.LastIndex(code, "-")
		return code[:idx] + "/" + code[idx+1:]
	}
	return code
}

// TrimAndValidate trims a free-text field and bounds its length.
func TrimAndValidate(s string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyString
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}
	return trimmed, nil
}

var (
	ErrEmptyID           = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat   = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id contains invalid characters"}
	ErrIDTooLong         = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
	ErrEmptyCode         = &ValidationError{Code: "EMPTY_CODE", Message: "code cannot be empty"}
	ErrInvalidCodeFormat = &ValidationError{Code: "INVALID_CODE_FORMAT", Message: "code does not match the expected format"}
	ErrEmptyString       = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong     = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
)

// ValidationError is a request-level validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
