package api

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/config"
	"github.com/fadelsew02/maxime-app-sub000/internal/container"
	"github.com/fadelsew02/maxime-app-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the gin engine: middleware chain, health and metrics
// endpoints, the public scan lookup, the websocket endpoint and the
// authenticated /api/v1 groups.
func SetupRoutes(cfg *config.Config, c *container.Container) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(RateLimitMiddleware(100, 200))

	healthController := NewHealthController(c.DB())
	router.GET("/health", healthController.Check)

	router.GET("/metrics", MetricsHandler)

	echantillonController := NewEchantillonController(c.EchantillonService())
	essaiController := NewEssaiController(c.EssaiService())
	schedulerController := NewSchedulerController(c.SchedulerService())
	validationController := NewValidationController(c.ValidationService())
	notificationController := NewNotificationController(c.NotificationService())

	// public lookup, no auth: this is what the printed scan code resolves to
	router.GET("/public/scan/:code", echantillonController.Scan)

	if c.Hub() != nil {
		router.GET("/ws/notifications", websocket.Handler(c.Hub(), c.TokenValidator()))
	}

	v1 := router.Group("/api/v1")
	v1.Use(c.TokenValidator().Middleware())
	{
		clients := v1.Group("/clients")
		{
			clients.POST("", echantillonController.CreateClient)
			clients.GET("", echantillonController.ListClients)
			clients.GET("/overview", echantillonController.ClientOverview)
		}

		echantillons := v1.Group("/echantillons")
		{
			echantillons.POST("", echantillonController.Create)
			echantillons.GET("", echantillonController.List)
			echantillons.GET("/:code", echantillonController.Get)
			echantillons.POST("/:code/stockage", echantillonController.Store)
			echantillons.POST("/:code/envoi", echantillonController.Dispatch)

			echantillons.POST("/:code/validation", validationController.Submit)
			echantillons.POST("/:code/validation/approuver", validationController.Approve)
			echantillons.POST("/:code/validation/rejeter", validationController.Reject)
			echantillons.GET("/:code/validation/historique", validationController.History)
		}

		essais := v1.Group("/essais")
		{
			essais.GET("", essaiController.List)
			essais.GET("/rejetes", essaiController.ListRejected)
			essais.GET("/:id", essaiController.Get)
			essais.POST("/:id/demarrer", essaiController.Start)
			essais.POST("/:id/terminer", essaiController.Complete)
			essais.POST("/:id/accepter", essaiController.Accept)
			essais.POST("/:id/rejeter", essaiController.Reject)
			essais.POST("/:id/fichier", essaiController.AttachFile)
		}

		planification := v1.Group("/planification")
		{
			planification.GET("/proposition", schedulerController.ProposeDate)
			planification.GET("/capacite", schedulerController.CheckCapacity)
			planification.GET("/calendrier", schedulerController.Calendar)
			planification.POST("/reservations", schedulerController.Reserve)
			planification.PATCH("/reservations/:id", schedulerController.AdjustDate)
		}

		validation := v1.Group("/validation")
		{
			validation.GET("/en-attente", validationController.Pending)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.POST("/:id/lu", notificationController.MarkRead)
		}
	}

	return router
}
