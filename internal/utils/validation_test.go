package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEssaiID(t *testing.T) {
	assert.NoError(t, ValidateEssaiID("a3f0c9b2-1d44-4a4e-9f2d-0c8e7e6b5a41"))
	assert.NoError(t, ValidateEssaiID("essai_01"))

	assert.Error(t, ValidateEssaiID(""))
	assert.Error(t, ValidateEssaiID("id with spaces"))
	assert.Error(t, ValidateEssaiID("id;drop"))
}

func TestValidateEchantillonCode(t *testing.T) {
	assert.NoError(t, ValidateEchantillonCode("S-0001/25"))

	assert.Error(t, ValidateEchantillonCode(""))
	assert.Error(t, ValidateEchantillonCode("S-0001-25"))
	assert.Error(t, ValidateEchantillonCode("S-1/25"))
}

func TestValidateClientCode(t *testing.T) {
	assert.NoError(t, ValidateClientCode("CLI-042"))

	assert.Error(t, ValidateClientCode("CLI-42"))
	assert.Error(t, ValidateClientCode("CL-042"))
}

func TestValidateScanCode(t *testing.T) {
	assert.NoError(t, ValidateScanCode("QR-S-0001-25"))

	assert.Error(t, ValidateScanCode("QR-S-0001/25"))
	assert.Error(t, ValidateScanCode("S-0001-25"))
}

func TestNormalizeEchantillonCode(t *testing.T) {
	// URL segments carry the dash form, storage carries the slash form.
	assert.Equal(t, "S-0001/25", NormalizeEchantillonCode("S-0001-25"))
	assert.Equal(t, "S-0001/25", NormalizeEchantillonCode("S-0001/25"))
	assert.Equal(t, "S-1234/31", NormalizeEchantillonCode("S-1234-31"))
}
