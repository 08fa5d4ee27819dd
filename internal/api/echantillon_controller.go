package api

import (
	"net/http"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// EchantillonController exposes client and echantillon intake, storage,
// dispatch and the dashboard listings.
type EchantillonController struct {
	echantillonService service.EchantillonService
}

// NewEchantillonController creates the echantillon controller.
func NewEchantillonController(echantillonService service.EchantillonService) *EchantillonController {
	return &EchantillonController{echantillonService: echantillonService}
}

func (c *EchantillonController) bindCode(ctx *gin.Context) (string, bool) {
	code := utils.NormalizeEchantillonCode(ctx.Param("code"))
	if err := utils.ValidateEchantillonCode(code); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid echantillon code", err.Error())
		return "", false
	}
	return code, true
}

// CreateClient registers a new client.
func (c *EchantillonController) CreateClient(ctx *gin.Context) {
	var req service.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	client, err := c.echantillonService.CreateClient(&req)
	if err != nil {
		ServiceError(ctx, err, "create client")
		return
	}

	Success(ctx, client)
}

// ListClients lists all clients.
func (c *EchantillonController) ListClients(ctx *gin.Context) {
	clients, err := c.echantillonService.ListClients()
	if err != nil {
		ServiceError(ctx, err, "list clients")
		return
	}

	Success(ctx, clients)
}

// ClientOverview returns the per-client worst stage rollup.
func (c *EchantillonController) ClientOverview(ctx *gin.Context) {
	overview, err := c.echantillonService.WorstStageByClient()
	if err != nil {
		ServiceError(ctx, err, "build client overview")
		return
	}

	Success(ctx, overview)
}

// Create registers a new echantillon at reception.
func (c *EchantillonController) Create(ctx *gin.Context) {
	var req service.CreateEchantillonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ech, err := c.echantillonService.CreateEchantillon(&req)
	if err != nil {
		ServiceError(ctx, err, "create echantillon")
		return
	}

	Success(ctx, ech)
}

// List lists echantillons, filtered by the optional query parameters.
func (c *EchantillonController) List(ctx *gin.Context) {
	filter := &repository.EchantillonFilter{}
	if v := ctx.Query("statut"); v != "" {
		filter.Statut = &v
	}
	if v := ctx.Query("priorite"); v != "" {
		filter.Priorite = &v
	}
	if v := ctx.Query("client_code"); v != "" {
		filter.ClientCode = &v
	}
	if v := ctx.Query("chef_projet"); v != "" {
		filter.ChefProjet = &v
	}

	list, err := c.echantillonService.List(filter)
	if err != nil {
		ServiceError(ctx, err, "list echantillons")
		return
	}

	Success(ctx, list)
}

// Get fetches an echantillon by code.
func (c *EchantillonController) Get(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	ech, err := c.echantillonService.Get(code)
	if err != nil {
		ServiceError(ctx, err, "echantillon")
		return
	}

	Success(ctx, ech)
}

// StoreRequest names the storage location.
type StoreRequest struct {
	Emplacement string `json:"emplacement" binding:"required"`
}

// Store places a received echantillon in storage.
func (c *EchantillonController) Store(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	var req StoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ech, err := c.echantillonService.Store(code, req.Emplacement)
	if err != nil {
		ServiceError(ctx, err, "store echantillon")
		return
	}

	Success(ctx, ech)
}

// DispatchRequest carries the optional send date, defaulting to now.
type DispatchRequest struct {
	DateEnvoi *time.Time `json:"date_envoi"`
}

// Dispatch sends the echantillon's essais to the sections.
func (c *EchantillonController) Dispatch(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	var req DispatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	dateEnvoi := time.Now()
	if req.DateEnvoi != nil {
		dateEnvoi = *req.DateEnvoi
	}

	ech, err := c.echantillonService.Dispatch(code, dateEnvoi)
	if err != nil {
		ServiceError(ctx, err, "dispatch echantillon")
		return
	}

	Success(ctx, ech)
}

// Scan resolves a public scan code. Served without authentication, the
// response never contains internal ids.
func (c *EchantillonController) Scan(ctx *gin.Context) {
	scanCode := ctx.Param("code")
	if err := utils.ValidateScanCode(scanCode); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid scan code", err.Error())
		return
	}

	result, err := c.echantillonService.LookupByScanCode(scanCode)
	if err != nil {
		ServiceError(ctx, err, "scan code")
		return
	}

	Success(ctx, result)
}
