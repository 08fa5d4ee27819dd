package workflow

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Business code formats are persisted and must stay byte-for-byte stable:
// echantillon S-NNNN/YY, client CLI-NNN, scan code QR-<code with dashes>.

var (
	echantillonCodeRe = regexp.MustCompile(`^S-(\d{4})/(\d{2})$`)
	clientCodeRe      = regexp.MustCompile(`^CLI-(\d{3})$`)
)

// FormatEchantillonCode renders the year-scoped sequential sample code.
func FormatEchantillonCode(seq int, year time.Time) string {
	return fmt.Sprintf("S-%04d/%02d", seq, year.Year()%100)
}

// FormatClientCode renders the sequential client code.
func FormatClientCode(seq int) string {
	return fmt.Sprintf("CLI-%03d", seq)
}

// ScanCode derives the public lookup code from an echantillon code by
// replacing the slash: S-0001/25 → QR-S-0001-25.
func ScanCode(echantillonCode string) string {
	return "QR-" + strings.ReplaceAll(echantillonCode, "/", "-")
}

// ParseEchantillonCode extracts the sequence number from a sample code, or
// a validation error for a malformed one.
func ParseEchantillonCode(code string) (seq int, err error) {
	m := echantillonCodeRe.FindStringSubmatch(code)
	if m == nil {
		return 0, Validationf("malformed echantillon code %q", code)
	}
	fmt.Sscanf(m[1], "%d", &seq)
	return seq, nil
}

// ValidEchantillonCode reports whether code matches the S-NNNN/YY format.
func ValidEchantillonCode(code string) bool {
	return echantillonCodeRe.MatchString(code)
}

// ValidClientCode reports whether code matches the CLI-NNN format.
func ValidClientCode(code string) bool {
	return clientCodeRe.MatchString(code)
}
