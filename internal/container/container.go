package container

import (
	"fmt"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/auth"
	"github.com/fadelsew02/maxime-app-sub000/internal/config"
	"github.com/fadelsew02/maxime-app-sub000/internal/database"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/service"
	"github.com/fadelsew02/maxime-app-sub000/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container wires the database, repositories, services and the push hub.
type Container struct {
	db   *gorm.DB
	hub  *websocket.Hub
	auth *auth.TokenValidator

	echantillonService  service.EchantillonService
	essaiService        service.EssaiService
	schedulerService    service.SchedulerService
	validationService   service.ValidationService
	notificationService service.NotificationService
}

// NewContainer connects the database, runs the migrations and builds the
// service graph.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// retry 3 times with exponential backoff, the db container may lag
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	hub := websocket.NewHub(logger)
	go hub.Run()

	return NewContainerWithDB(cfg, db, hub, logger), nil
}

// NewContainerWithDB builds the service graph over an existing connection.
// The tests use it with in-memory sqlite and a nil hub.
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, hub *websocket.Hub, logger *logrus.Logger) *Container {
	clients := repository.NewClientRepository(db)
	echantillons := repository.NewEchantillonRepository(db)
	essais := repository.NewEssaiRepository(db)
	capacites := repository.NewCapaciteRepository(db)
	planifs := repository.NewPlanificationRepository(db)
	notifications := repository.NewNotificationRepository(db)
	history := repository.NewValidationHistoryRepository(db)

	var broadcaster service.Broadcaster
	if hub != nil {
		broadcaster = hub
	}
	notificationService := service.NewNotificationService(notifications, broadcaster, logger)

	return &Container{
		db:                  db,
		hub:                 hub,
		auth:                auth.NewTokenValidator(cfg.Auth.JWTSecret),
		echantillonService:  service.NewEchantillonService(db, clients, echantillons, essais, notificationService),
		essaiService:        service.NewEssaiService(db, essais, notificationService),
		schedulerService:    service.NewSchedulerService(db, capacites, planifs),
		validationService:   service.NewValidationService(db, echantillons, history, notificationService),
		notificationService: notificationService,
	}
}

// DB returns the database connection.
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Hub returns the websocket hub, nil when push is disabled.
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// TokenValidator returns the bearer-token validator.
func (c *Container) TokenValidator() *auth.TokenValidator {
	return c.auth
}

// EchantillonService returns the echantillon service.
func (c *Container) EchantillonService() service.EchantillonService {
	return c.echantillonService
}

// EssaiService returns the essai service.
func (c *Container) EssaiService() service.EssaiService {
	return c.essaiService
}

// SchedulerService returns the scheduler service.
func (c *Container) SchedulerService() service.SchedulerService {
	return c.schedulerService
}

// ValidationService returns the validation chain service.
func (c *Container) ValidationService() service.ValidationService {
	return c.validationService
}

// NotificationService returns the notification service.
func (c *Container) NotificationService() service.NotificationService {
	return c.notificationService
}

// Close releases the container's resources.
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
