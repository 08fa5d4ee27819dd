package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEchantillonCode(t *testing.T) {
	year2025 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "S-0001/25", FormatEchantillonCode(1, year2025))
	assert.Equal(t, "S-0042/25", FormatEchantillonCode(42, year2025))
	assert.Equal(t, "S-1234/25", FormatEchantillonCode(1234, year2025))

	year2031 := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "S-0007/31", FormatEchantillonCode(7, year2031))
}

func TestFormatClientCode(t *testing.T) {
	assert.Equal(t, "CLI-001", FormatClientCode(1))
	assert.Equal(t, "CLI-099", FormatClientCode(99))
	assert.Equal(t, "CLI-123", FormatClientCode(123))
}

func TestScanCode(t *testing.T) {
	assert.Equal(t, "QR-S-0001-25", ScanCode("S-0001/25"))
	assert.Equal(t, "QR-S-0310-24", ScanCode("S-0310/24"))
}

func TestParseEchantillonCode(t *testing.T) {
	seq, err := ParseEchantillonCode("S-0042/25")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	for _, bad := range []string{"", "S-42/25", "S-0042-25", "CLI-001", "s-0042/25", "S-0042/2025"} {
		_, err := ParseEchantillonCode(bad)
		assert.ErrorIs(t, err, ErrValidation, "code %q", bad)
	}
}

func TestValidCodes(t *testing.T) {
	assert.True(t, ValidEchantillonCode("S-0001/25"))
	assert.False(t, ValidEchantillonCode("S-0001-25"))
	assert.False(t, ValidEchantillonCode("QR-S-0001-25"))

	assert.True(t, ValidClientCode("CLI-010"))
	assert.False(t, ValidClientCode("CLI-10"))
	assert.False(t, ValidClientCode("CLI-0100"))
}
