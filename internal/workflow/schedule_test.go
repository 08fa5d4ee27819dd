package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalDurationNormale(t *testing.T) {
	// nominal + 2 days administrative margin
	tests := map[EssaiType]int{
		TypeAG:           7,
		TypeProctor:      6,
		TypeCBR:          7,
		TypeOedometre:    20,
		TypeCisaillement: 10,
	}
	for typ, want := range tests {
		got, err := TotalDuration(typ, PrioriteNormale)
		require.NoError(t, err)
		assert.Equal(t, want, got, "type %s", typ)
	}
}

func TestTotalDurationUrgente(t *testing.T) {
	// ceil(nominal * 0.7) + 2
	tests := map[EssaiType]int{
		TypeAG:           6,  // ceil(3.5) + 2
		TypeProctor:      5,  // ceil(2.8) + 2
		TypeCBR:          6,  // ceil(3.5) + 2
		TypeOedometre:    15, // ceil(12.6) + 2
		TypeCisaillement: 8,  // ceil(5.6) + 2
	}
	for typ, want := range tests {
		got, err := TotalDuration(typ, PrioriteUrgente)
		require.NoError(t, err)
		assert.Equal(t, want, got, "type %s", typ)
	}
}

func TestUrgenteNeverLater(t *testing.T) {
	for _, typ := range EssaiTypes() {
		normale, err := TotalDuration(typ, PrioriteNormale)
		require.NoError(t, err)
		urgente, err := TotalDuration(typ, PrioriteUrgente)
		require.NoError(t, err)
		assert.LessOrEqual(t, urgente, normale, "type %s", typ)
	}
}

func TestTotalDurationUnknownType(t *testing.T) {
	_, err := TotalDuration(EssaiType("Triaxial"), PrioriteNormale)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProposeDate(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	date, err := ProposeDate(TypeProctor, PrioriteNormale, today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), date)
}

func TestComputeReturnDate(t *testing.T) {
	envoi := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	date, err := ComputeReturnDate(envoi, TypeOedometre, PrioriteNormale)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), date)

	urgente, err := ComputeReturnDate(envoi, TypeOedometre, PrioriteUrgente)
	require.NoError(t, err)
	assert.True(t, !urgente.After(date))
}

func TestAdjustDate(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	shifted, err := AdjustDate(base, 3)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 3), shifted)

	pulled, err := AdjustDate(base, -2)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, -2), pulled)

	same, err := AdjustDate(base, 0)
	require.NoError(t, err)
	assert.Equal(t, base, same)
}

func TestAdjustDateBounds(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := AdjustDate(base, -6)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AdjustDate(base, 6)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AdjustDate(base, 5)
	assert.NoError(t, err)

	_, err = AdjustDate(base, -5)
	assert.NoError(t, err)
}
