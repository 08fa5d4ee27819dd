package model

import (
	"errors"
	"time"
)

// Notification is a fire-and-forget event targeted at a role. The core
// persists it and hands it to the push hub; delivery is never awaited.
type Notification struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TargetRole     string     `gorm:"type:varchar(30);not null;index:idx_notifications_role_read,priority:1" json:"target_role"`
	Type           string     `gorm:"type:varchar(10);not null" json:"type"` // info/success/warning/error
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	ActionRequired bool       `gorm:"not null;default:false" json:"action_required"`
	Read           bool       `gorm:"not null;default:false;index:idx_notifications_role_read,priority:2" json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`

	// Optional references.
	EchantillonCode string `gorm:"type:varchar(20);index" json:"echantillon_code,omitempty"`
	EssaiID         string `gorm:"type:varchar(64)" json:"essai_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}

// Validate checks the notification record.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return errors.New("notification ID is required")
	}
	if n.TargetRole == "" {
		return errors.New("target role is required")
	}
	if n.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
