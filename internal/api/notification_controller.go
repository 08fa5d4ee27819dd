package api

import (
	"net/http"

	"github.com/fadelsew02/maxime-app-sub000/internal/auth"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// NotificationController lists and acknowledges role-targeted notifications.
type NotificationController struct {
	notificationService service.NotificationService
}

// NewNotificationController creates the notification controller.
func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller role's notifications, newest first.
func (c *NotificationController) List(ctx *gin.Context) {
	role := auth.CallerRole(ctx)
	if role == "" {
		Error(ctx, http.StatusForbidden, "missing role", "no role claim on the token")
		return
	}

	list, err := c.notificationService.ListForRole(role, ctx.Query("unread") == "true")
	if err != nil {
		ServiceError(ctx, err, "list notifications")
		return
	}

	Success(ctx, list)
}

// MarkRead acknowledges a notification.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateEssaiID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid notification ID", err.Error())
		return
	}

	if err := c.notificationService.MarkRead(id); err != nil {
		ServiceError(ctx, err, "mark notification read")
		return
	}

	Success(ctx, nil)
}
