package workflow

import (
	"testing"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEssai(typ EssaiType) *model.Essai {
	return &model.Essai{
		ID:               "essai-1",
		EchantillonCode:  "S-0001/25",
		Type:             string(typ),
		Section:          string(SectionRoute),
		Statut:           EssaiAttente,
		StatutValidation: ValidationPending,
		Priorite:         string(PrioriteNormale),
	}
}

var agResultats = []byte(`{"pct2mm": 62.5, "pct80um": 28.1, "cu": 14.2}`)

func TestStartEssai(t *testing.T) {
	e := newTestEssai(TypeAG)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, StartEssai(e, "Diallo", start))

	assert.Equal(t, EssaiEnCours, e.Statut)
	assert.Equal(t, "Diallo", e.Operateur)
	assert.Equal(t, start, *e.DateDebut)
	// AG nominal duration is 5 days
	assert.Equal(t, start.AddDate(0, 0, 5), *e.DateFin)
}

func TestStartEssaiNotAttente(t *testing.T) {
	e := newTestEssai(TypeAG)
	e.Statut = EssaiTermine

	err := StartEssai(e, "Diallo", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteEssai(t *testing.T) {
	e := newTestEssai(TypeAG)
	require.NoError(t, StartEssai(e, "Diallo", time.Now()))

	end := time.Now()
	require.NoError(t, CompleteEssai(e, end, agResultats, "RAS"))

	assert.Equal(t, EssaiTermine, e.Statut)
	assert.Equal(t, ValidationPending, e.StatutValidation)
	assert.JSONEq(t, string(agResultats), string(e.Resultats))
	assert.Equal(t, "RAS", e.Commentaires)
}

func TestCompleteEssaiRejectsBadResults(t *testing.T) {
	e := newTestEssai(TypeAG)
	require.NoError(t, StartEssai(e, "Diallo", time.Now()))

	err := CompleteEssai(e, time.Now(), []byte(`{"pct2mm": 62.5}`), "")
	assert.ErrorIs(t, err, ErrValidation)
	// nothing committed
	assert.Equal(t, EssaiEnCours, e.Statut)
	assert.Empty(t, e.Resultats)
}

func TestCompleteEssaiNotEnCours(t *testing.T) {
	e := newTestEssai(TypeAG)
	err := CompleteEssai(e, time.Now(), agResultats, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAcceptEssai(t *testing.T) {
	e := newTestEssai(TypeAG)
	require.NoError(t, StartEssai(e, "Diallo", time.Now()))
	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, ""))

	require.NoError(t, AcceptEssai(e, "conforme"))
	assert.Equal(t, ValidationAccepted, e.StatutValidation)
	assert.False(t, e.WasResumed())
}

func TestAcceptEssaiOnlyFromTermine(t *testing.T) {
	e := newTestEssai(TypeAG)
	assert.ErrorIs(t, AcceptEssai(e, "ok"), ErrInvalidTransition)
}

func TestRejectEssaiRequiresComment(t *testing.T) {
	e := newTestEssai(TypeAG)
	require.NoError(t, StartEssai(e, "Diallo", time.Now()))
	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, ""))

	assert.ErrorIs(t, RejectEssai(e, "  ", time.Now()), ErrValidation)
	assert.Equal(t, EssaiTermine, e.Statut)
}

// The full correction loop: reject a finished essai, resume it, finish it
// again, accept. The rejection date must survive the whole cycle and the
// essai must surface as resumed once re-accepted.
func TestRejectResumeCycle(t *testing.T) {
	e := newTestEssai(TypeAG)
	require.NoError(t, StartEssai(e, "Diallo", time.Now()))
	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, ""))

	rejet := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, RejectEssai(e, "courbe incohérente", rejet))

	assert.Equal(t, EssaiAttente, e.Statut)
	assert.Equal(t, ValidationRejected, e.StatutValidation)
	assert.Equal(t, string(PrioriteUrgente), e.Priorite)
	require.NotNil(t, e.DateRejet)
	assert.Equal(t, rejet, *e.DateRejet)
	assert.False(t, e.WasResumed())

	require.NoError(t, ResumeEssai(e, "Diallo", time.Now()))
	assert.Equal(t, EssaiEnCours, e.Statut)
	assert.Equal(t, ValidationPending, e.StatutValidation)
	// sticky: resuming does not clear the rejection date
	assert.Equal(t, rejet, *e.DateRejet)

	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, "reprise"))
	require.NoError(t, AcceptEssai(e, "conforme"))

	assert.Equal(t, ValidationAccepted, e.StatutValidation)
	assert.Equal(t, rejet, *e.DateRejet)
	assert.True(t, e.WasResumed())
}

func TestRejectTwiceKeepsFirstDate(t *testing.T) {
	e := newTestEssai(TypeAG)
	first := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, StartEssai(e, "Diallo", time.Now()))
	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, ""))
	require.NoError(t, RejectEssai(e, "refaire", first))

	require.NoError(t, ResumeEssai(e, "Diallo", time.Now()))
	require.NoError(t, CompleteEssai(e, time.Now(), agResultats, ""))
	require.NoError(t, RejectEssai(e, "encore", second))

	assert.Equal(t, first, *e.DateRejet)
}

func TestResumeRequiresRejected(t *testing.T) {
	e := newTestEssai(TypeAG)
	assert.ErrorIs(t, ResumeEssai(e, "Diallo", time.Now()), ErrInvalidTransition)
}
