package service

import (
	"encoding/json"
	"testing"

	"github.com/fadelsew02/maxime-app-sub000/internal/database"
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires all services against an in-memory sqlite database.
type testEnv struct {
	db            *gorm.DB
	echantillons  EchantillonService
	essais        EssaiService
	scheduler     SchedulerService
	validation    ValidationService
	notifications NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	notif := NewNotificationService(repository.NewNotificationRepository(db), nil, nil)
	return &testEnv{
		db:            db,
		notifications: notif,
		echantillons: NewEchantillonService(db,
			repository.NewClientRepository(db),
			repository.NewEchantillonRepository(db),
			repository.NewEssaiRepository(db),
			notif),
		essais:     NewEssaiService(db, repository.NewEssaiRepository(db), notif),
		scheduler:  NewSchedulerService(db, repository.NewCapaciteRepository(db), repository.NewPlanificationRepository(db)),
		validation: NewValidationService(db, repository.NewEchantillonRepository(db), repository.NewValidationHistoryRepository(db), notif),
	}
}

func (env *testEnv) createClient(t *testing.T) *model.Client {
	t.Helper()
	client, err := env.echantillons.CreateClient(&CreateClientRequest{
		Nom:    "Entreprise Kossou",
		Projet: "Route nationale 7",
	})
	require.NoError(t, err)
	return client
}

func (env *testEnv) createEchantillon(t *testing.T, clientCode string, types ...string) *model.Echantillon {
	t.Helper()
	ech, err := env.echantillons.CreateEchantillon(&CreateEchantillonRequest{
		ClientCode:  clientCode,
		Nature:      "Argile latéritique",
		EssaisTypes: types,
		ChefProjet:  "A. Mensah",
	})
	require.NoError(t, err)
	return ech
}

func (env *testEnv) essaisOf(t *testing.T, code string) []model.Essai {
	t.Helper()
	list, err := repository.NewEssaiRepository(env.db).FindByEchantillonCode(code)
	require.NoError(t, err)
	return list
}

// resultatsFor returns a complete result payload for an essai type.
func resultatsFor(typ string) json.RawMessage {
	payloads := map[string]string{
		"AG":           `{"pct2mm": 62.5, "pct80um": 28.1, "cu": 14.2}`,
		"Proctor":      `{"type": "modifie", "densiteOpt": 1.98, "teneurEauOpt": 12.4}`,
		"CBR":          `{"cbr95": 18, "cbr98": 27, "cbr100": 41, "gonflement": 0.4}`,
		"Oedometre":    `{"cc": 0.21, "cs": 0.04, "gp": 1.1}`,
		"Cisaillement": `{"cohesion": 12.5, "phi": 28.3}`,
	}
	return json.RawMessage(payloads[typ])
}
