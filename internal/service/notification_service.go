package service

import (
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Broadcaster pushes a notification to connected subscribers. The websocket
// hub implements it; a nil broadcaster disables push without touching the
// persisted trail.
type Broadcaster interface {
	BroadcastNotification(n *model.Notification)
}

// NotificationService emits fire-and-forget events toward roles. Emission
// never fails the calling transition: a lost notification is an
// inconvenience, a blocked workflow is a defect.
type NotificationService interface {
	Notify(targetRole, kind, title, message string, actionRequired bool, echantillonCode, essaiID string)
	ListForRole(role string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(id string) error
}

type notificationService struct {
	repo        repository.NotificationRepository
	broadcaster Broadcaster
	logger      *logrus.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(repo repository.NotificationRepository, broadcaster Broadcaster, logger *logrus.Logger) NotificationService {
	return &notificationService{repo: repo, broadcaster: broadcaster, logger: logger}
}

// Notify persists and broadcasts one event. Errors are logged and swallowed.
func (s *notificationService) Notify(targetRole, kind, title, message string, actionRequired bool, echantillonCode, essaiID string) {
	n := &model.Notification{
		ID:              uuid.NewString(),
		TargetRole:      targetRole,
		Type:            kind,
		Title:           title,
		Message:         message,
		ActionRequired:  actionRequired,
		EchantillonCode: echantillonCode,
		EssaiID:         essaiID,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Save(n); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("target_role", targetRole).Warn("failed to persist notification")
		}
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastNotification(n)
	}
}

// ListForRole returns the notifications of a role.
func (s *notificationService) ListForRole(role string, unreadOnly bool) ([]*model.Notification, error) {
	return s.repo.FindByRole(role, unreadOnly)
}

// MarkRead marks a notification as read.
func (s *notificationService) MarkRead(id string) error {
	return s.repo.MarkRead(id, time.Now())
}
