package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResultatsAG(t *testing.T) {
	err := ValidateResultats(TypeAG, []byte(`{"pct2mm": 62.5, "pct80um": 28.1, "cu": 14.2}`))
	assert.NoError(t, err)
}

func TestValidateResultatsMissingField(t *testing.T) {
	err := ValidateResultats(TypeAG, []byte(`{"pct2mm": 62.5, "pct80um": 28.1}`))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "cu")
}

func TestValidateResultatsNullField(t *testing.T) {
	err := ValidateResultats(TypeCisaillement, []byte(`{"cohesion": 12.0, "phi": null}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateResultatsEmptyStringField(t *testing.T) {
	err := ValidateResultats(TypeProctor, []byte(`{"type": "", "densiteOpt": 1.92, "teneurEauOpt": 11.4}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateResultatsProctorTypeIsString(t *testing.T) {
	err := ValidateResultats(TypeProctor, []byte(`{"type": "modifie", "densiteOpt": 1.92, "teneurEauOpt": 11.4}`))
	assert.NoError(t, err)
}

func TestValidateResultatsNotAnObject(t *testing.T) {
	err := ValidateResultats(TypeCBR, []byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateResultatsEmptyPayload(t *testing.T) {
	err := ValidateResultats(TypeOedometre, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateResultatsUnknownType(t *testing.T) {
	err := ValidateResultats(EssaiType("Triaxial"), []byte(`{}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateResultatsAllTypes(t *testing.T) {
	payloads := map[EssaiType]string{
		TypeAG:           `{"pct2mm": 60, "pct80um": 25, "cu": 10}`,
		TypeProctor:      `{"type": "normal", "densiteOpt": 1.85, "teneurEauOpt": 12.5}`,
		TypeCBR:          `{"cbr95": 18, "cbr98": 25, "cbr100": 32, "gonflement": 0.4}`,
		TypeOedometre:    `{"cc": 0.21, "cs": 0.04, "gp": 110}`,
		TypeCisaillement: `{"cohesion": 15, "phi": 28}`,
	}
	for _, typ := range EssaiTypes() {
		assert.NoError(t, ValidateResultats(typ, []byte(payloads[typ])), "type %s", typ)
	}
}
