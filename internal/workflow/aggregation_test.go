package workflow

import (
	"testing"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/stretchr/testify/assert"
)

func essaiWith(typ EssaiType, statut, validation string) model.Essai {
	return model.Essai{
		Type:             string(typ),
		Statut:           statut,
		StatutValidation: validation,
	}
}

func TestAllTermine(t *testing.T) {
	types := []string{"AG", "Proctor", "CBR"}

	partial := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationPending),
		essaiWith(TypeProctor, EssaiTermine, ValidationPending),
		essaiWith(TypeCBR, EssaiEnCours, ValidationPending),
	}
	assert.False(t, AllTermine(types, partial))

	complete := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationPending),
		essaiWith(TypeProctor, EssaiTermine, ValidationPending),
		essaiWith(TypeCBR, EssaiTermine, ValidationPending),
	}
	assert.True(t, AllTermine(types, complete))
}

func TestAllTermineEmptyTypes(t *testing.T) {
	assert.False(t, AllTermine(nil, nil))
}

// A rejected essai sits back in attente: it no longer counts as termine even
// though it once was, so the denominator stays the requested type set.
func TestAllTermineRejectedEssaiBlocks(t *testing.T) {
	types := []string{"AG", "Proctor"}
	essais := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationAccepted),
		essaiWith(TypeProctor, EssaiAttente, ValidationRejected),
	}
	assert.False(t, AllTermine(types, essais))
	assert.False(t, AllAccepted(types, essais))
}

func TestAllAccepted(t *testing.T) {
	types := []string{"AG", "Proctor", "CBR"}

	pendingOne := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationAccepted),
		essaiWith(TypeProctor, EssaiTermine, ValidationAccepted),
		essaiWith(TypeCBR, EssaiTermine, ValidationPending),
	}
	assert.False(t, AllAccepted(types, pendingOne))

	allIn := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationAccepted),
		essaiWith(TypeProctor, EssaiTermine, ValidationAccepted),
		essaiWith(TypeCBR, EssaiTermine, ValidationAccepted),
	}
	assert.True(t, AllAccepted(types, allIn))
}

func TestNextStageOnCompletion(t *testing.T) {
	types := []string{"AG"}
	done := []model.Essai{essaiWith(TypeAG, EssaiTermine, ValidationPending)}

	assert.Equal(t, StageDecodification, NextStageOnCompletion(StageEssais, types, done))
	// only from essais
	assert.Equal(t, StageStockage, NextStageOnCompletion(StageStockage, types, done))

	notDone := []model.Essai{essaiWith(TypeAG, EssaiEnCours, ValidationPending)}
	assert.Equal(t, StageEssais, NextStageOnCompletion(StageEssais, types, notDone))
}

func TestNextStageOnValidation(t *testing.T) {
	types := []string{"AG", "Cisaillement"}
	accepted := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationAccepted),
		essaiWith(TypeCisaillement, EssaiTermine, ValidationAccepted),
	}

	assert.Equal(t, StageTraitement, NextStageOnValidation(StageDecodification, types, accepted))
	assert.Equal(t, StageEssais, NextStageOnValidation(StageEssais, types, accepted))

	oneRejected := []model.Essai{
		essaiWith(TypeAG, EssaiTermine, ValidationAccepted),
		essaiWith(TypeCisaillement, EssaiAttente, ValidationRejected),
	}
	assert.Equal(t, StageDecodification, NextStageOnValidation(StageDecodification, types, oneRejected))
}
