package api

import (
	"net/http"

	"github.com/fadelsew02/maxime-app-sub000/internal/auth"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// ValidationController walks echantillon reports through the approval chain.
// The acting role comes from the bearer token, never from the request body.
type ValidationController struct {
	validationService service.ValidationService
}

// NewValidationController creates the validation controller.
func NewValidationController(validationService service.ValidationService) *ValidationController {
	return &ValidationController{validationService: validationService}
}

func (c *ValidationController) bindCode(ctx *gin.Context) (string, bool) {
	code := utils.NormalizeEchantillonCode(ctx.Param("code"))
	if err := utils.ValidateEchantillonCode(code); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid echantillon code", err.Error())
		return "", false
	}
	return code, true
}

// VerdictRequest carries the approval or rejection commentary.
type VerdictRequest struct {
	Commentaire string `json:"commentaire"`
}

// Submit moves a processed echantillon into the approval chain.
func (c *ValidationController) Submit(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	ech, err := c.validationService.SubmitForValidation(code)
	if err != nil {
		ServiceError(ctx, err, "submit for validation")
		return
	}

	Success(ctx, ech)
}

// Approve records a positive verdict at the caller's chain level.
func (c *ValidationController) Approve(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	var req VerdictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ech, err := c.validationService.Approve(code, auth.CallerRole(ctx), req.Commentaire)
	if err != nil {
		ServiceError(ctx, err, "approve report")
		return
	}

	Success(ctx, ech)
}

// Reject records a negative verdict, which short-circuits the chain.
func (c *ValidationController) Reject(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	var req VerdictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ech, err := c.validationService.Reject(code, auth.CallerRole(ctx), req.Commentaire)
	if err != nil {
		ServiceError(ctx, err, "reject report")
		return
	}

	Success(ctx, ech)
}

// History lists the verdict trail of an echantillon.
func (c *ValidationController) History(ctx *gin.Context) {
	code, ok := c.bindCode(ctx)
	if !ok {
		return
	}

	history, err := c.validationService.History(code)
	if err != nil {
		ServiceError(ctx, err, "load validation history")
		return
	}

	Success(ctx, history)
}

// Pending lists the echantillons waiting on the caller's chain role,
// grouped by chef de projet.
func (c *ValidationController) Pending(ctx *gin.Context) {
	pending, err := c.validationService.PendingForRole(auth.CallerRole(ctx))
	if err != nil {
		ServiceError(ctx, err, "list pending validations")
		return
	}

	Success(ctx, pending)
}
