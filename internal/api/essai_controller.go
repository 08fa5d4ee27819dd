package api

import (
	"net/http"

	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// EssaiController exposes the essai lifecycle to the section operators and
// the decodification verdicts to the responsable matériaux.
type EssaiController struct {
	essaiService service.EssaiService
}

// NewEssaiController creates the essai controller.
func NewEssaiController(essaiService service.EssaiService) *EssaiController {
	return &EssaiController{essaiService: essaiService}
}

func (c *EssaiController) bindID(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")
	if err := utils.ValidateEssaiID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid essai ID", err.Error())
		return "", false
	}
	return id, true
}

// List lists essais, urgent first, filtered by the optional query
// parameters.
func (c *EssaiController) List(ctx *gin.Context) {
	filter := &repository.EssaiFilter{}
	if v := ctx.Query("statut"); v != "" {
		filter.Statut = &v
	}
	if v := ctx.Query("statut_validation"); v != "" {
		filter.StatutValidation = &v
	}
	if v := ctx.Query("section"); v != "" {
		filter.Section = &v
	}
	if v := ctx.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := ctx.Query("echantillon_code"); v != "" {
		code := utils.NormalizeEchantillonCode(v)
		filter.EchantillonCode = &code
	}

	list, err := c.essaiService.List(filter)
	if err != nil {
		ServiceError(ctx, err, "list essais")
		return
	}

	Success(ctx, list)
}

// ListRejected lists essais rejected at least once, optionally per section.
func (c *EssaiController) ListRejected(ctx *gin.Context) {
	list, err := c.essaiService.ListRejected(ctx.Query("section"))
	if err != nil {
		ServiceError(ctx, err, "list rejected essais")
		return
	}

	Success(ctx, list)
}

// Get fetches an essai by id.
func (c *EssaiController) Get(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	essai, err := c.essaiService.Get(id)
	if err != nil {
		ServiceError(ctx, err, "essai")
		return
	}

	Success(ctx, essai)
}

// Start begins (or resumes) an essai.
func (c *EssaiController) Start(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	var req service.StartEssaiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	essai, err := c.essaiService.Start(id, &req)
	if err != nil {
		ServiceError(ctx, err, "start essai")
		return
	}

	Success(ctx, essai)
}

// Complete finishes an essai with its results payload.
func (c *EssaiController) Complete(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	var req service.CompleteEssaiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	essai, err := c.essaiService.Complete(id, &req)
	if err != nil {
		ServiceError(ctx, err, "complete essai")
		return
	}

	Success(ctx, essai)
}

// Accept records a positive decodification verdict.
func (c *EssaiController) Accept(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	var req service.DecodeEssaiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	essai, err := c.essaiService.Accept(id, &req)
	if err != nil {
		ServiceError(ctx, err, "accept essai")
		return
	}

	Success(ctx, essai)
}

// Reject records a negative decodification verdict, which sends the essai
// back to the section.
func (c *EssaiController) Reject(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	var req service.DecodeEssaiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	essai, err := c.essaiService.Reject(id, &req)
	if err != nil {
		ServiceError(ctx, err, "reject essai")
		return
	}

	Success(ctx, essai)
}

// AttachFileRequest names the stored report file.
type AttachFileRequest struct {
	Fichier string `json:"fichier" binding:"required"`
}

// AttachFile records a report file reference on an essai.
func (c *EssaiController) AttachFile(ctx *gin.Context) {
	id, ok := c.bindID(ctx)
	if !ok {
		return
	}

	var req AttachFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	essai, err := c.essaiService.AttachFile(id, req.Fichier)
	if err != nil {
		ServiceError(ctx, err, "attach file")
		return
	}

	Success(ctx, essai)
}
