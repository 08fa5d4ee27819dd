package service

import (
	"testing"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAndMarkRead(t *testing.T) {
	env := newTestEnv(t)

	env.notifications.Notify(workflow.RoleOperateurRoute, "info", "Essais à réaliser", "message", true, "S-0001/25", "")

	list, err := env.notifications.ListForRole(workflow.RoleOperateurRoute, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Essais à réaliser", list[0].Title)
	assert.True(t, list[0].ActionRequired)
	assert.False(t, list[0].Read)

	require.NoError(t, env.notifications.MarkRead(list[0].ID))

	unread, err := env.notifications.ListForRole(workflow.RoleOperateurRoute, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := env.notifications.ListForRole(workflow.RoleOperateurRoute, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)
	require.NotNil(t, all[0].ReadAt)
}

func TestNotificationsFollowTheWorkflow(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t)

	// Reception notifies the responsable materiaux.
	ech := env.createEchantillon(t, client.Code, "AG")
	list, err := env.notifications.ListForRole(workflow.RoleResponsableMateriaux, true)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, ech.Code, list[0].EchantillonCode)

	// A rejection warns the operator of the owning section.
	essais := env.essaisOf(t, ech.Code)
	id := essais[0].ID
	_, err = env.essais.Start(id, &StartEssaiRequest{Operateur: "K. Traoré"})
	require.NoError(t, err)
	_, err = env.essais.Complete(id, &CompleteEssaiRequest{Resultats: resultatsFor("AG")})
	require.NoError(t, err)
	_, err = env.essais.Reject(id, &DecodeEssaiRequest{Commentaire: "Non conforme"})
	require.NoError(t, err)

	route, err := env.notifications.ListForRole(workflow.RoleOperateurRoute, true)
	require.NoError(t, err)
	var rejet *model.Notification
	for _, n := range route {
		if n.Type == "warning" {
			rejet = n
		}
	}
	require.NotNil(t, rejet)
	assert.Equal(t, id, rejet.EssaiID)
	assert.Contains(t, rejet.Message, "Non conforme")
}
