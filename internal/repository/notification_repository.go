package repository

import (
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// NotificationRepository persists role-targeted notifications.
type NotificationRepository interface {
	Save(n *model.Notification) error
	FindByRole(role string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(id string, at time.Time) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Save persists a notification.
func (r *notificationRepository) Save(n *model.Notification) error {
	return r.db.Save(n).Error
}

// FindByRole returns notifications for a role, newest first.
func (r *notificationRepository) FindByRole(role string, unreadOnly bool) ([]*model.Notification, error) {
	var list []*model.Notification
	query := r.db.Where("target_role = ?", role)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	err := query.Order("created_at DESC").Find(&list).Error
	return list, err
}

// MarkRead marks one notification as read.
func (r *notificationRepository) MarkRead(id string, at time.Time) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": at}).Error
}
