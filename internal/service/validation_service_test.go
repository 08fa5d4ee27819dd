package service

import (
	"testing"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processEchantillon drives a fresh single-AG echantillon through essais and
// decodification up to traitement.
func processEchantillon(t *testing.T, env *testEnv, clientCode, chefProjet string) *model.Echantillon {
	t.Helper()
	ech, err := env.echantillons.CreateEchantillon(&CreateEchantillonRequest{
		ClientCode:  clientCode,
		Nature:      "Grave latéritique",
		EssaisTypes: []string{"AG"},
		ChefProjet:  chefProjet,
	})
	require.NoError(t, err)

	essais := env.essaisOf(t, ech.Code)
	require.Len(t, essais, 1)
	id := essais[0].ID
	_, err = env.essais.Start(id, &StartEssaiRequest{Operateur: "K. Traoré"})
	require.NoError(t, err)
	_, err = env.essais.Complete(id, &CompleteEssaiRequest{Resultats: resultatsFor("AG")})
	require.NoError(t, err)
	_, err = env.essais.Accept(id, &DecodeEssaiRequest{})
	require.NoError(t, err)

	ech = env.reload(t, ech.Code)
	require.Equal(t, string(workflow.StageTraitement), ech.Statut)
	return ech
}

func TestSubmitRequiresTraitement(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)
	ech := env.createEchantillon(t, client.Code, "AG")

	_, err := env.validation.SubmitForValidation(ech.Code)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = env.validation.SubmitForValidation("S-9999/25")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestFullApprovalChain(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)
	ech := processEchantillon(t, env, client.Code, "A. Mensah")

	submitted, err := env.validation.SubmitForValidation(ech.Code)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StageValidation), submitted.Statut)
	assert.Equal(t, 0, submitted.NiveauValidation)

	// The chain advances strictly in order.
	_, err = env.validation.Approve(ech.Code, workflow.RoleDirecteurGeneral, "")
	assert.ErrorIs(t, err, workflow.ErrForbidden)

	for i, role := range workflow.ChainOrder {
		approved, err := env.validation.Approve(ech.Code, role, "RAS")
		require.NoError(t, err, "level %d (%s)", i, role)
		if i < len(workflow.ChainOrder)-1 {
			assert.Equal(t, string(workflow.StageValidation), approved.Statut)
			assert.Equal(t, i+1, approved.NiveauValidation)
		} else {
			assert.Equal(t, string(workflow.StageValide), approved.Statut)
			assert.Equal(t, len(workflow.ChainOrder), approved.NiveauValidation)
		}
	}

	history, err := env.validation.History(ech.Code)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, entry := range history {
		assert.Equal(t, workflow.ChainOrder[i], entry.Niveau)
		assert.Equal(t, "valide", entry.Action)
	}
}

func TestRejectShortCircuitsChain(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)
	ech := processEchantillon(t, env, client.Code, "A. Mensah")

	_, err := env.validation.SubmitForValidation(ech.Code)
	require.NoError(t, err)
	_, err = env.validation.Approve(ech.Code, workflow.RoleChefProjet, "")
	require.NoError(t, err)

	_, err = env.validation.Reject(ech.Code, workflow.RoleChefService, "")
	assert.ErrorIs(t, err, workflow.ErrValidation, "a rejection needs a comment")

	_, err = env.validation.Reject(ech.Code, workflow.RoleDirecteurGeneral, "Hors de mon niveau")
	assert.ErrorIs(t, err, workflow.ErrForbidden)

	rejected, err := env.validation.Reject(ech.Code, workflow.RoleChefService, "Valeurs CBR incohérentes")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StageRejete), rejected.Statut)
	assert.Equal(t, -1, rejected.NiveauValidation)

	history, err := env.validation.History(ech.Code)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, workflow.RoleChefProjet, history[0].Niveau)
	assert.Equal(t, "valide", history[0].Action)
	assert.Equal(t, workflow.RoleChefService, history[1].Niveau)
	assert.Equal(t, "rejete", history[1].Action)
}

func TestApproveOutsideValidation(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)
	ech := env.createEchantillon(t, client.Code, "AG")

	_, err := env.validation.Approve(ech.Code, workflow.RoleChefProjet, "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestPendingForRole(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)

	first := processEchantillon(t, env, client.Code, "A. Mensah")
	second := processEchantillon(t, env, client.Code, "A. Mensah")
	third := processEchantillon(t, env, client.Code, "B. Koné")
	for _, ech := range []*model.Echantillon{first, second, third} {
		_, err := env.validation.SubmitForValidation(ech.Code)
		require.NoError(t, err)
	}
	// One dossier moves past the first level.
	_, err := env.validation.Approve(third.Code, workflow.RoleChefProjet, "")
	require.NoError(t, err)

	pending, err := env.validation.PendingForRole(workflow.RoleChefProjet)
	require.NoError(t, err)
	require.Len(t, pending["A. Mensah"], 2)
	assert.Empty(t, pending["B. Koné"])

	next, err := env.validation.PendingForRole(workflow.RoleChefService)
	require.NoError(t, err)
	require.Len(t, next["B. Koné"], 1)
	assert.Equal(t, third.Code, next["B. Koné"][0].Code)

	_, err = env.validation.PendingForRole("receptionniste")
	assert.ErrorIs(t, err, workflow.ErrForbidden)
}

func TestHistoryUnknownEchantillon(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.validation.History("S-9999/25")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
