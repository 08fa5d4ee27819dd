package api

import (
	"net/http"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// SchedulerController exposes the planning operations: date proposals,
// capacity checks, reservations, adjustments and the calendar view.
type SchedulerController struct {
	schedulerService service.SchedulerService
}

// NewSchedulerController creates the scheduler controller.
func NewSchedulerController(schedulerService service.SchedulerService) *SchedulerController {
	return &SchedulerController{schedulerService: schedulerService}
}

// ProposeDate suggests the earliest completion date for an essai type.
func (c *SchedulerController) ProposeDate(ctx *gin.Context) {
	typeEssai := ctx.Query("type")
	priorite := ctx.DefaultQuery("priorite", "normale")

	date, err := c.schedulerService.ProposeDate(typeEssai, priorite)
	if err != nil {
		ServiceError(ctx, err, "propose date")
		return
	}

	Success(ctx, gin.H{
		"type":          typeEssai,
		"priorite":      priorite,
		"date_proposee": date.Format("2006-01-02"),
	})
}

// CheckCapacity reports the load of an essai type on a day.
func (c *SchedulerController) CheckCapacity(ctx *gin.Context) {
	typeEssai := ctx.Query("type")
	date, err := time.Parse("2006-01-02", ctx.Query("date"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	check, err := c.schedulerService.CheckCapacity(typeEssai, date)
	if err != nil {
		ServiceError(ctx, err, "check capacity")
		return
	}

	Success(ctx, check)
}

// ReserveRequest books a planning slot for an essai.
type ReserveRequest struct {
	EssaiID string `json:"essai_id" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Force   bool   `json:"force"`
}

// Reserve books a planning slot, refusing saturated days unless forced.
func (c *SchedulerController) Reserve(ctx *gin.Context) {
	var req ReserveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateEssaiID(req.EssaiID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid essai ID", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	planif, err := c.schedulerService.Reserve(req.EssaiID, date, req.Force)
	if err != nil {
		ServiceError(ctx, err, "reserve slot")
		return
	}

	Success(ctx, planif)
}

// AdjustRequest shifts a reservation by a signed number of days.
type AdjustRequest struct {
	DeltaJours int `json:"delta_jours" binding:"required"`
}

// AdjustDate shifts an existing reservation by up to five days either way.
func (c *SchedulerController) AdjustDate(ctx *gin.Context) {
	essaiID := ctx.Param("id")
	if err := utils.ValidateEssaiID(essaiID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid essai ID", err.Error())
		return
	}

	var req AdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	planif, err := c.schedulerService.AdjustDate(essaiID, req.DeltaJours)
	if err != nil {
		ServiceError(ctx, err, "adjust date")
		return
	}

	Success(ctx, planif)
}

// Calendar lists reservations in a date range, defaulting to the coming
// month.
func (c *SchedulerController) Calendar(ctx *gin.Context) {
	from := time.Now()
	to := from.AddDate(0, 1, 0)
	if v := ctx.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid from date", "expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := ctx.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid to date", "expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	list, err := c.schedulerService.Calendar(from, to)
	if err != nil {
		ServiceError(ctx, err, "load calendar")
		return
	}

	Success(ctx, list)
}
