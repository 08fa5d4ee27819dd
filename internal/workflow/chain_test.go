package workflow

import (
	"testing"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEchantillon(statut Stage) *model.Echantillon {
	return &model.Echantillon{
		ID:               "ech-1",
		Code:             "S-0001/25",
		ClientCode:       "CLI-001",
		Statut:           string(statut),
		NiveauValidation: -1,
	}
}

func TestEnterValidation(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	require.NoError(t, EnterValidation(e))
	assert.Equal(t, string(StageValidation), e.Statut)
	assert.Equal(t, 0, e.NiveauValidation)
}

func TestEnterValidationOnlyFromTraitement(t *testing.T) {
	for _, s := range []Stage{StageAttente, StageEssais, StageValidation, StageValide} {
		e := newTestEchantillon(s)
		assert.ErrorIs(t, EnterValidation(e), ErrInvalidTransition, "from %s", s)
	}
}

func TestFullApprovalChain(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	require.NoError(t, EnterValidation(e))

	for i, role := range ChainOrder {
		expected, err := ExpectedRole(e)
		require.NoError(t, err)
		assert.Equal(t, role, expected)

		require.NoError(t, ApproveLevel(e, role), "level %d", i)
	}

	assert.Equal(t, string(StageValide), e.Statut)
	assert.Equal(t, len(ChainOrder), e.NiveauValidation)
}

func TestApproveOutOfOrderForbidden(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	require.NoError(t, EnterValidation(e))

	// the directeur general cannot jump the queue
	err := ApproveLevel(e, RoleDirecteurGeneral)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, string(StageValidation), e.Statut)
	assert.Equal(t, 0, e.NiveauValidation)
}

func TestApproveOutsideValidation(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	err := ApproveLevel(e, RoleChefProjet)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectAtAnyLevelShortCircuits(t *testing.T) {
	for level := 0; level < len(ChainOrder); level++ {
		e := newTestEchantillon(StageTraitement)
		require.NoError(t, EnterValidation(e))
		for i := 0; i < level; i++ {
			require.NoError(t, ApproveLevel(e, ChainOrder[i]))
		}

		require.NoError(t, RejectLevel(e, ChainOrder[level], "rapport incomplet"))
		assert.Equal(t, string(StageRejete), e.Statut, "reject at level %d", level)
		assert.Equal(t, -1, e.NiveauValidation)
	}
}

func TestRejectRequiresComment(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	require.NoError(t, EnterValidation(e))

	assert.ErrorIs(t, RejectLevel(e, RoleChefProjet, ""), ErrValidation)
	assert.Equal(t, string(StageValidation), e.Statut)
}

func TestRejectWrongRoleForbidden(t *testing.T) {
	e := newTestEchantillon(StageTraitement)
	require.NoError(t, EnterValidation(e))
	require.NoError(t, ApproveLevel(e, RoleChefProjet))

	assert.ErrorIs(t, RejectLevel(e, RoleChefProjet, "non"), ErrForbidden)
}

func TestKnownRole(t *testing.T) {
	assert.True(t, KnownRole(RoleChefProjet))
	assert.True(t, KnownRole(RoleDirecteurGeneral))
	assert.False(t, KnownRole(RoleReceptionniste))
	assert.False(t, KnownRole("stagiaire"))
}
