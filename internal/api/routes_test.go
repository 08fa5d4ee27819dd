package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/config"
	"github.com/fadelsew02/maxime-app-sub000/internal/container"
	"github.com/fadelsew02/maxime-app-sub000/internal/database"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gin.Engine, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := config.Default()
	c := container.NewContainerWithDB(cfg, db, nil, logrus.New())
	return SetupRoutes(cfg, c), c
}

func issueToken(t *testing.T, c *container.Container, role string) string {
	t.Helper()
	token, err := c.TokenValidator().IssueToken("test-user", role, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected an object payload, got %s", w.Body.String())
	return data
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/echantillons", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/echantillons", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIntakeAndLookup(t *testing.T) {
	router, c := setupTestServer(t)
	token := issueToken(t, c, workflow.RoleReceptionniste)

	w := doRequest(router, http.MethodPost, "/api/v1/clients", token, gin.H{
		"nom":    "Entreprise Kossou",
		"projet": "Route nationale 7",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	client := decodeData(t, w)
	assert.Equal(t, "CLI-001", client["code"])

	w = doRequest(router, http.MethodPost, "/api/v1/echantillons", token, gin.H{
		"client_code":  "CLI-001",
		"nature":       "Argile latéritique",
		"essais_types": []string{"AG", "Proctor"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ech := decodeData(t, w)
	code, _ := ech["code"].(string)
	assert.Equal(t, workflow.FormatEchantillonCode(1, time.Now()), code)

	// The URL carries the dash form of the code.
	urlCode := workflow.ScanCode(code)[len("QR-"):]
	w = doRequest(router, http.MethodGet, "/api/v1/echantillons/"+urlCode, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, code, decodeData(t, w)["code"])

	// The scan lookup is public.
	w = doRequest(router, http.MethodGet, "/public/scan/"+workflow.ScanCode(code), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	scan := decodeData(t, w)
	assert.Equal(t, code, scan["code"])
}

func TestStoreConflict(t *testing.T) {
	router, c := setupTestServer(t)
	token := issueToken(t, c, workflow.RoleReceptionniste)

	doRequest(router, http.MethodPost, "/api/v1/clients", token, gin.H{"nom": "Client"})
	w := doRequest(router, http.MethodPost, "/api/v1/echantillons", token, gin.H{
		"client_code":  "CLI-001",
		"nature":       "Sable",
		"essais_types": []string{"AG"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	urlCode := fmt.Sprintf("S-0001-%02d", time.Now().Year()%100)

	w = doRequest(router, http.MethodPost, "/api/v1/echantillons/"+urlCode+"/stockage", token, gin.H{"emplacement": "Hangar A"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Storing twice is a state conflict.
	w = doRequest(router, http.MethodPost, "/api/v1/echantillons/"+urlCode+"/stockage", token, gin.H{"emplacement": "Hangar B"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestErrorMapping(t *testing.T) {
	router, c := setupTestServer(t)
	token := issueToken(t, c, workflow.RoleReceptionniste)

	w := doRequest(router, http.MethodGet, "/api/v1/echantillons/S-9999-25", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/echantillons/not-a-code", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	doRequest(router, http.MethodPost, "/api/v1/clients", token, gin.H{"nom": "Client"})
	w = doRequest(router, http.MethodPost, "/api/v1/echantillons", token, gin.H{
		"client_code":  "CLI-001",
		"nature":       "Sable",
		"essais_types": []string{"Triaxial"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, "/public/scan/garbage", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApprovalUsesTokenRole(t *testing.T) {
	router, c := setupTestServer(t)
	token := issueToken(t, c, workflow.RoleReceptionniste)

	doRequest(router, http.MethodPost, "/api/v1/clients", token, gin.H{"nom": "Client"})
	w := doRequest(router, http.MethodPost, "/api/v1/echantillons", token, gin.H{
		"client_code":  "CLI-001",
		"nature":       "Sable",
		"essais_types": []string{"AG"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	ech := decodeData(t, w)
	code, _ := ech["code"].(string)
	urlCode := workflow.ScanCode(code)[len("QR-"):]

	// Drive the single essai to traitement through the services directly.
	essais, err := c.EssaiService().List(nil)
	require.NoError(t, err)
	require.Len(t, essais, 1)
	id := essais[0].ID
	_, err = c.EssaiService().Start(id, &service.StartEssaiRequest{Operateur: "K. Traoré"})
	require.NoError(t, err)
	_, err = c.EssaiService().Complete(id, &service.CompleteEssaiRequest{
		Resultats: json.RawMessage(`{"pct2mm": 62.5, "pct80um": 28.1, "cu": 14.2}`),
	})
	require.NoError(t, err)
	_, err = c.EssaiService().Accept(id, &service.DecodeEssaiRequest{})
	require.NoError(t, err)

	w = doRequest(router, http.MethodPost, "/api/v1/echantillons/"+urlCode+"/validation", token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A receptionniste token cannot sign off the first level.
	w = doRequest(router, http.MethodPost, "/api/v1/echantillons/"+urlCode+"/validation/approuver", token, gin.H{"commentaire": "ok"})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	chefToken := issueToken(t, c, workflow.RoleChefProjet)
	w = doRequest(router, http.MethodPost, "/api/v1/echantillons/"+urlCode+"/validation/approuver", chefToken, gin.H{"commentaire": "RAS"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
